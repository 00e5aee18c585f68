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
	"github.com/helioledger/go-helioledger/exchange"
	"github.com/helioledger/go-helioledger/ledger"
	"github.com/helioledger/go-helioledger/log"
)

// accountDeleteTransactor removes an account and everything it owns,
// transferring the residual balance to a destination.
type accountDeleteTransactor struct{}

// BaseFee for deletion is one owner reserve rather than the
// reference fee, making deletion deliberately expensive.
func (accountDeleteTransactor) BaseFee(v ledger.View, t *Tx) ledger.FeeUnits {
	fu, ok := v.Fees().OwnerReserveFeeUnits()
	if !ok {
		return calculateBaseFee(v, t)
	}
	return fu
}

func (accountDeleteTransactor) Preflight(ctx *PreflightContext) Result {
	f := ctx.Tx.AccountDelete
	if f == nil {
		return InvalidTx
	}
	if f.Destination.IsZero() {
		return Malformed
	}
	if f.Destination == ctx.Tx.Account {
		return Malformed
	}
	return Success
}

// deletableEntryType reports whether an owned entry is on the
// allow-list of non-obligation types that deletion may cascade over.
func deletableEntryType(typ ledger.EntryType) bool {
	switch typ {
	case ledger.EntryTypeOffer, ledger.EntryTypeSignerList,
		ledger.EntryTypeTicket, ledger.EntryTypeDepositPreauth:
		return true
	}
	return false
}

func (accountDeleteTransactor) Preclaim(ctx *PreclaimContext) Result {
	f := ctx.Tx.AccountDelete

	dest, err := account.Read(ctx.View, f.Destination)
	if err != nil {
		return DestinationNotFound
	}
	if dest.HasFlag(account.FlagRequireDestTag) && f.DestinationTag == nil {
		return DestinationTagNeeded
	}
	if dest.HasFlag(account.FlagDepositAuth) {
		if !ctx.View.Exists(ledger.DepositPreauthIndex(f.Destination, ctx.Tx.Account)) {
			return NotAuthorized
		}
	}

	// The account's sequence must be old enough that none of its
	// recent transactions could still be floating around; otherwise a
	// deleted account could be resurrected and its history replayed.
	source, err := account.Read(ctx.View, ctx.Tx.Account)
	if err != nil {
		return AccountNotFound
	}
	if source.Sequence()+ctx.Rules.DeleteSeqDelta > ctx.View.Seq() {
		return TooSoon
	}

	// Scan everything the account owns. Obligations block deletion
	// outright; too many deletable entries bound the apply work.
	deletable := 0
	page := uint64(0)
	for {
		e := ctx.View.Read(ledger.OwnerDirPageIndex(ctx.Tx.Account, page))
		if e == nil {
			break
		}
		node, ok := e.(*ledger.DirectoryNode)
		if !ok {
			return InternalError
		}
		for _, idx := range node.Indexes {
			owned := ctx.View.Read(idx)
			if owned == nil {
				log.Errorw("owner directory references missing entry", "account", ctx.Tx.Account.String())
				return InternalError
			}
			if !deletableEntryType(owned.Type()) {
				return HasObligations
			}
			deletable++
			if deletable > ctx.Rules.MaxDeletableEntries {
				return TooBig
			}
		}
		if node.IndexNext == 0 {
			break
		}
		page = node.IndexNext
	}
	return Success
}

func (accountDeleteTransactor) DoApply(ctx *ApplyContext) Result {
	f := ctx.Tx.AccountDelete
	owner := ctx.Tx.Account
	v := ctx.View

	// Walk the directory pages, always deleting the first remaining
	// index of the current page. Each deleter removes the entry's
	// directory slot itself, so the page shrinks as we go.
	for it := ledger.NewDirPageIter(v, owner); !it.Done(); it.Next() {
		for {
			page := it.Page()
			if page == nil || len(page.Indexes) == 0 {
				break
			}
			if r := deleteOwnedEntry(v, owner, page.Indexes[0]); !r.IsSuccess() {
				return r
			}
		}
	}

	// Defensive: preclaim guaranteed only deletable types, so the
	// directory must be empty now.
	if !ledger.EmptyDirDelete(v, owner) {
		log.Errorw("owner directory not empty after cascade", "account", owner.String())
		return HasObligations
	}

	source, err := account.Edit(v, owner)
	if err != nil {
		log.Errorf("source missing in account delete apply: %v", err)
		return InternalError
	}
	dest, err := account.Edit(v, f.Destination)
	if err != nil {
		log.Errorf("destination missing in account delete apply: %v", err)
		return InternalError
	}

	residual := source.Balance()
	if residual < 0 {
		log.Errorw("negative residual at account delete", "account", owner.String())
		return InternalError
	}
	dest.SetBalance(dest.Balance() + residual)
	if residual > 0 && dest.HasFlag(account.FlagPasswordSpent) {
		dest.ClearFlag(account.FlagPasswordSpent)
	}
	source.SetBalance(0)

	if err := dest.Flush(); err != nil {
		return InternalError
	}
	if err := v.Erase(ledger.AccountIndex(owner)); err != nil {
		log.Errorf("erase account root failed: %v", err)
		return InternalError
	}
	return Success
}

// deleteOwnedEntry dispatches one owned entry to its deleter. A type
// outside the allow-list reaching this point means preclaim was
// bypassed or the ledger is corrupt.
func deleteOwnedEntry(v ledger.ApplyView, owner crypto.AccountID, idx ledger.Index) Result {
	e := v.Peek(idx)
	if e == nil {
		log.Errorw("owned entry vanished during cascade", "account", owner.String())
		return InternalError
	}
	switch entry := e.(type) {
	case *ledger.Offer:
		if err := exchange.DeleteOffer(v, entry); err != nil {
			log.Errorf("delete offer in cascade failed: %v", err)
			return InternalError
		}
		return Success
	case *ledger.SignerList:
		return deleteSignerList(v, owner)
	case *ledger.Ticket:
		source, err := account.Edit(v, owner)
		if err != nil {
			return InternalError
		}
		if r := ticketDelete(v, source, owner, entry.TicketSequence); !r.IsSuccess() {
			return r
		}
		if err := source.Flush(); err != nil {
			return InternalError
		}
		return Success
	case *ledger.DepositPreauth:
		return deleteDepositPreauth(v, entry)
	}
	log.Errorw("undeletable entry type in cascade", "account", owner.String(), "type", e.Type().String())
	return InternalError
}
