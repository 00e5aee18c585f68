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
	"github.com/helioledger/go-helioledger/ledger"
	"github.com/helioledger/go-helioledger/log"
)

// ticketCreateTransactor mints a batch of tickets, burning the
// matching range of sequence numbers.
type ticketCreateTransactor struct{}

func (ticketCreateTransactor) Preflight(ctx *PreflightContext) Result {
	f := ctx.Tx.TicketCreate
	if f == nil {
		return InvalidTx
	}
	if f.Count < 1 || f.Count > ctx.Rules.MaxTicketCount {
		return Malformed
	}
	return Success
}

func (ticketCreateTransactor) Preclaim(ctx *PreclaimContext) Result {
	source, err := account.Read(ctx.View, ctx.Tx.Account)
	if err != nil {
		return AccountNotFound
	}
	if source.TicketCount()+ctx.Tx.TicketCreate.Count > ctx.Rules.MaxTicketCount {
		return DirectoryFull
	}
	return Success
}

func (ticketCreateTransactor) DoApply(ctx *ApplyContext) Result {
	f := ctx.Tx.TicketCreate

	source, err := account.Edit(ctx.View, ctx.Tx.Account)
	if err != nil {
		log.Errorf("source missing in ticket create apply: %v", err)
		return InternalError
	}

	reserve := ctx.View.Fees().AccountReserve(source.OwnerCount() + f.Count)
	if source.Balance() < reserve {
		return InsufficientReserve
	}

	// The gate already advanced the sequence past the consumed slot;
	// the tickets burn the next Count values.
	firstTicketSeq := source.Sequence()
	for i := uint32(0); i < f.Count; i++ {
		ticket := &ledger.Ticket{
			Account:        ctx.Tx.Account,
			TicketSequence: firstTicketSeq + i,
		}
		page, err := ledger.DirInsert(ctx.View, ctx.Tx.Account, ticket.Index())
		if err != nil {
			log.Errorf("add ticket to directory failed: %v", err)
			return InternalError
		}
		ticket.OwnerPage = page
		if err := ctx.View.Insert(ticket); err != nil {
			log.Errorf("insert ticket failed: %v", err)
			return InternalError
		}
	}

	source.SetSequence(firstTicketSeq + f.Count)
	source.SetTicketCount(source.TicketCount() + f.Count)
	source.AdjustOwnerCount(int32(f.Count))
	if err := source.Flush(); err != nil {
		return InternalError
	}
	return Success
}
