// Copyright 2026 The go-helioledger Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tx

import (
	"github.com/helioledger/go-helioledger/account"
	"github.com/helioledger/go-helioledger/crypto"
	"github.com/helioledger/go-helioledger/ledger"
	"github.com/helioledger/go-helioledger/log"
)

// checkSeqProxy validates the transaction's sequence or ticket
// against the account without consuming anything.
func checkSeqProxy(v ledger.View, t *Tx) Result {
	source, err := account.Read(v, t.Account)
	if err != nil {
		return AccountNotFound
	}

	if !t.Seq.Ticket {
		switch {
		case t.Seq.Value > source.Sequence():
			return FutureSequence
		case t.Seq.Value < source.Sequence():
			return PastSequence
		}
		return Success
	}

	// A ticket's sequence value is burned out of the account's
	// sequence space when the ticket is created, so the account
	// sequence must already be past it.
	if source.Sequence() <= t.Seq.Value {
		return FutureTicket
	}
	if !v.Exists(ledger.TicketIndex(t.Account, t.Seq.Value)) {
		return TicketNotFound
	}
	return Success
}

// checkPriorTxAndLastLedger validates the optional ordering fields
// and rejects replays of an already applied transaction.
func checkPriorTxAndLastLedger(v ledger.View, t *Tx) Result {
	if t.AccountTxnID != nil {
		source, err := account.Read(v, t.Account)
		if err != nil {
			return AccountNotFound
		}
		last, ok := source.AccountTxnID()
		if !ok || last != *t.AccountTxnID {
			return WrongPriorTransaction
		}
	}
	if t.LastLedgerSeq != nil && v.Seq() > *t.LastLedgerSeq {
		return LastLedgerExceeded
	}
	if v.TxApplied(t.ID()) {
		return AlreadyApplied
	}
	return Success
}

// consumeSeqProxy consumes the sequence or ticket on the already
// peeked source editor. Sequence consumption advances the account
// sequence by exactly one; ticket consumption deletes the ticket and
// releases its reserve slot.
func consumeSeqProxy(v ledger.ApplyView, source *account.Editor, t *Tx) Result {
	if !t.Seq.Ticket {
		source.SetSequence(source.Sequence() + 1)
		return Success
	}
	return ticketDelete(v, source, t.Account, t.Seq.Value)
}

// ticketDelete removes one ticket: the entry, its owner directory
// slot, the ticket counter and the reserve slot.
func ticketDelete(v ledger.ApplyView, owner *account.Editor, id crypto.AccountID, ticketSeq uint32) Result {
	idx := ledger.TicketIndex(id, ticketSeq)
	e := v.Peek(idx)
	if e == nil {
		log.Errorw("ticket missing at consumption", "account", id.String(), "ticketSeq", ticketSeq)
		return InternalError
	}
	ticket, ok := e.(*ledger.Ticket)
	if !ok {
		log.Errorw("entry at ticket index is not a ticket", "account", id.String(), "ticketSeq", ticketSeq)
		return InternalError
	}

	if !ledger.DirRemove(v, id, ticket.OwnerPage, idx, true) {
		log.Errorw("ticket not in owner directory", "account", id.String(), "ticketSeq", ticketSeq)
		return InternalError
	}
	if err := v.Erase(idx); err != nil {
		log.Errorf("erase ticket failed: %v", err)
		return InternalError
	}

	count := owner.TicketCount()
	if count == 0 {
		log.Errorw("ticket count already zero", "account", id.String())
		return InternalError
	}
	owner.SetTicketCount(count - 1)
	owner.AdjustOwnerCount(-1)
	return Success
}
