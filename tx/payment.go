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

// paymentTransactor moves native drops between two funded accounts.
type paymentTransactor struct{}

func (paymentTransactor) Preflight(ctx *PreflightContext) Result {
	p := ctx.Tx.Payment
	if p == nil {
		return InvalidTx
	}
	if p.Amount <= 0 || !p.Amount.Legal() {
		return BadAmount
	}
	if p.Destination.IsZero() {
		return Malformed
	}
	if p.Destination == ctx.Tx.Account {
		return RedundantTx
	}
	return Success
}

func (paymentTransactor) Preclaim(ctx *PreclaimContext) Result {
	p := ctx.Tx.Payment
	dest, err := account.Read(ctx.View, p.Destination)
	if err != nil {
		return DestinationNotFound
	}
	if dest.HasFlag(account.FlagRequireDestTag) && p.DestinationTag == nil {
		return DestinationTagNeeded
	}
	if dest.HasFlag(account.FlagDepositAuth) {
		if !ctx.View.Exists(ledger.DepositPreauthIndex(p.Destination, ctx.Tx.Account)) {
			return NoPermission
		}
	}
	return Success
}

func (paymentTransactor) DoApply(ctx *ApplyContext) Result {
	p := ctx.Tx.Payment

	source, err := account.Edit(ctx.View, ctx.Tx.Account)
	if err != nil {
		log.Errorf("payment source missing in apply: %v", err)
		return InternalError
	}
	// The sender's reserve stays locked; only the balance above it is
	// spendable.
	reserve := ctx.View.Fees().AccountReserve(source.OwnerCount())
	if source.Balance()-p.Amount < reserve {
		return Unfunded
	}

	dest, err := account.Edit(ctx.View, p.Destination)
	if err != nil {
		log.Errorf("payment destination missing in apply: %v", err)
		return InternalError
	}

	source.SetBalance(source.Balance() - p.Amount)
	dest.SetBalance(dest.Balance() + p.Amount)
	if err := source.Flush(); err != nil {
		return InternalError
	}
	if err := dest.Flush(); err != nil {
		return InternalError
	}
	return Success
}
