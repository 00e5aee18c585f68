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

// setRegularKeyTransactor sets or clears the account's regular key.
type setRegularKeyTransactor struct{}

// BaseFee grants one free re-key per account: zero fee when the
// free-allowance flag is unspent and the transaction is single-signed
// with the master key. Used for password recovery after a regular key
// is compromised.
func (setRegularKeyTransactor) BaseFee(v ledger.View, t *Tx) ledger.FeeUnits {
	standard := calculateBaseFee(v, t)
	if t.MultiSigned() || t.Fee != 0 {
		return standard
	}
	source, err := account.Read(v, t.Account)
	if err != nil || source.HasFlag(account.FlagPasswordSpent) {
		return standard
	}
	if crypto.DeriveAccountID(t.SigningPubKey) != t.Account {
		return standard
	}
	return 0
}

func (setRegularKeyTransactor) Preflight(ctx *PreflightContext) Result {
	f := ctx.Tx.SetRegularKey
	if f == nil {
		return InvalidTx
	}
	if f.RegularKey != nil && *f.RegularKey == ctx.Tx.Account {
		return Malformed
	}
	return Success
}

func (setRegularKeyTransactor) Preclaim(ctx *PreclaimContext) Result {
	f := ctx.Tx.SetRegularKey
	if f.RegularKey != nil {
		return Success
	}
	// Clearing the key must leave some way to sign: master key or a
	// signer list.
	source, err := account.Read(ctx.View, ctx.Tx.Account)
	if err != nil {
		return AccountNotFound
	}
	if source.HasFlag(account.FlagDisableMaster) && readSignerList(ctx.View, ctx.Tx.Account) == nil {
		return NoAuthMethod
	}
	return Success
}

func (setRegularKeyTransactor) DoApply(ctx *ApplyContext) Result {
	f := ctx.Tx.SetRegularKey
	source, err := account.Edit(ctx.View, ctx.Tx.Account)
	if err != nil {
		log.Errorf("source missing in set regular key apply: %v", err)
		return InternalError
	}

	if f.RegularKey != nil {
		source.SetRegularKey(*f.RegularKey)
	} else {
		source.ClearRegularKey()
	}
	// A zero-fee re-key consumes the free allowance.
	if ctx.Tx.Fee == 0 {
		source.SetFlag(account.FlagPasswordSpent)
	}

	if err := source.Flush(); err != nil {
		return InternalError
	}
	return Success
}
