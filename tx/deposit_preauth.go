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

// depositPreauthTransactor grants or revokes permission for another
// account to deposit while deposit authorization is enabled.
type depositPreauthTransactor struct{}

func (depositPreauthTransactor) Preflight(ctx *PreflightContext) Result {
	f := ctx.Tx.DepositPreauth
	if f == nil {
		return InvalidTx
	}
	if (f.Authorize == nil) == (f.Unauthorize == nil) {
		return Malformed
	}
	if f.Authorize != nil && *f.Authorize == ctx.Tx.Account {
		// Preauthorizing oneself is meaningless.
		return Malformed
	}
	if f.Unauthorize != nil && *f.Unauthorize == ctx.Tx.Account {
		return Malformed
	}
	return Success
}

func (depositPreauthTransactor) Preclaim(ctx *PreclaimContext) Result {
	f := ctx.Tx.DepositPreauth
	if f.Authorize != nil {
		if _, err := account.Read(ctx.View, *f.Authorize); err != nil {
			return DestinationNotFound
		}
		if ctx.View.Exists(ledger.DepositPreauthIndex(ctx.Tx.Account, *f.Authorize)) {
			return Duplicate
		}
		return Success
	}
	if !ctx.View.Exists(ledger.DepositPreauthIndex(ctx.Tx.Account, *f.Unauthorize)) {
		return NoEntry
	}
	return Success
}

func (depositPreauthTransactor) DoApply(ctx *ApplyContext) Result {
	f := ctx.Tx.DepositPreauth
	owner := ctx.Tx.Account

	if f.Authorize != nil {
		source, err := account.Edit(ctx.View, owner)
		if err != nil {
			log.Errorf("source missing in deposit preauth apply: %v", err)
			return InternalError
		}
		reserve := ctx.View.Fees().AccountReserve(source.OwnerCount() + 1)
		if source.Balance() < reserve {
			return InsufficientReserve
		}

		preauth := &ledger.DepositPreauth{Account: owner, Authorized: *f.Authorize}
		page, err := ledger.DirInsert(ctx.View, owner, preauth.Index())
		if err != nil {
			log.Errorf("add deposit preauth to directory failed: %v", err)
			return InternalError
		}
		preauth.OwnerPage = page
		if err := ctx.View.Insert(preauth); err != nil {
			log.Errorf("insert deposit preauth failed: %v", err)
			return InternalError
		}
		source.AdjustOwnerCount(1)
		if err := source.Flush(); err != nil {
			return InternalError
		}
		return Success
	}

	e := ctx.View.Peek(ledger.DepositPreauthIndex(owner, *f.Unauthorize))
	preauth, ok := e.(*ledger.DepositPreauth)
	if !ok {
		log.Errorw("deposit preauth missing in apply", "account", owner.String())
		return InternalError
	}
	return deleteDepositPreauth(ctx.View, preauth)
}

// deleteDepositPreauth removes a preauthorization entry, its
// directory slot and its reserve unit.
func deleteDepositPreauth(v ledger.ApplyView, preauth *ledger.DepositPreauth) Result {
	if !ledger.DirRemove(v, preauth.Account, preauth.OwnerPage, preauth.Index(), true) {
		log.Errorw("deposit preauth not in owner directory", "account", preauth.Account.String())
		return InternalError
	}
	if err := v.Erase(preauth.Index()); err != nil {
		log.Errorf("erase deposit preauth failed: %v", err)
		return InternalError
	}
	source, err := account.Edit(v, preauth.Account)
	if err != nil {
		return InternalError
	}
	source.AdjustOwnerCount(-1)
	if err := source.Flush(); err != nil {
		return InternalError
	}
	return Success
}
