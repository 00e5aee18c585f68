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

// A signer list costs one owner reserve unit regardless of its entry
// count.
const signerListReserveUnits = 1

// signerListSetTransactor installs, replaces or deletes the
// account's signer list. Replacement is destroy-then-recreate, never
// an incremental edit.
type signerListSetTransactor struct{}

func (signerListSetTransactor) Preflight(ctx *PreflightContext) Result {
	f := ctx.Tx.SignerListSet
	if f == nil {
		return InvalidTx
	}
	if f.Quorum == 0 {
		// Delete operation carries no entries.
		if len(f.Entries) != 0 {
			return Malformed
		}
		return Success
	}
	if r := ValidateSignerEntries(ctx.Tx.Account, f.Entries); !r.IsSuccess() {
		return r
	}
	if SignerWeightSum(f.Entries) < uint64(f.Quorum) {
		// The quorum could never be reached.
		return Malformed
	}
	return Success
}

func (signerListSetTransactor) Preclaim(ctx *PreclaimContext) Result {
	return Success
}

func (signerListSetTransactor) DoApply(ctx *ApplyContext) Result {
	f := ctx.Tx.SignerListSet
	owner := ctx.Tx.Account

	if f.Quorum == 0 {
		if readSignerList(ctx.View, owner) == nil {
			return NoEntry
		}
		return deleteSignerList(ctx.View, owner)
	}

	// Replace by destroying any existing list first.
	if readSignerList(ctx.View, owner) != nil {
		if r := deleteSignerList(ctx.View, owner); !r.IsSuccess() {
			return r
		}
	}

	source, err := account.Edit(ctx.View, owner)
	if err != nil {
		log.Errorf("source missing in signer list apply: %v", err)
		return InternalError
	}
	reserve := ctx.View.Fees().AccountReserve(source.OwnerCount() + signerListReserveUnits)
	if source.Balance() < reserve {
		return InsufficientReserve
	}

	list := &ledger.SignerList{
		Account: owner,
		Quorum:  f.Quorum,
		Entries: append([]ledger.SignerEntry(nil), f.Entries...),
	}
	page, err := ledger.DirInsert(ctx.View, owner, list.Index())
	if err != nil {
		log.Errorf("add signer list to directory failed: %v", err)
		return InternalError
	}
	list.OwnerPage = page
	if err := ctx.View.Insert(list); err != nil {
		log.Errorf("insert signer list failed: %v", err)
		return InternalError
	}
	source.AdjustOwnerCount(signerListReserveUnits)
	if err := source.Flush(); err != nil {
		return InternalError
	}
	return Success
}

// deleteSignerList removes the owner's signer list entry, its
// directory slot and its reserve unit.
func deleteSignerList(v ledger.ApplyView, owner crypto.AccountID) Result {
	list := readSignerList(v, owner)
	if list == nil {
		return Success
	}
	if !ledger.DirRemove(v, owner, list.OwnerPage, list.Index(), true) {
		log.Errorw("signer list not in owner directory", "account", owner.String())
		return InternalError
	}
	if err := v.Erase(list.Index()); err != nil {
		log.Errorf("erase signer list failed: %v", err)
		return InternalError
	}
	source, err := account.Edit(v, owner)
	if err != nil {
		return InternalError
	}
	source.AdjustOwnerCount(-signerListReserveUnits)
	if err := source.Flush(); err != nil {
		return InternalError
	}
	return Success
}
