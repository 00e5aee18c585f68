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
	"math"

	"github.com/helioledger/go-helioledger/account"
	"github.com/helioledger/go-helioledger/ledger"
)

// LoadScaler converts base fee units into the units this node
// currently demands, reflecting local congestion. Opaque to the
// engine beyond this method.
type LoadScaler interface {
	ScaleFeeLoad(fu ledger.FeeUnits, admin bool) ledger.FeeUnits
}

// LoadTracker is the standard LoadScaler: a load factor over a base
// level. At rest factor == base and fees pass through unscaled.
// Admin submissions bypass scaling.
type LoadTracker struct {
	factor uint64
	base   uint64
}

// NewLoadTracker creates a tracker at the rest level.
func NewLoadTracker() *LoadTracker {
	return &LoadTracker{factor: 256, base: 256}
}

// SetFactor raises or lowers the local load factor. Values below the
// base are clamped to the base.
func (lt *LoadTracker) SetFactor(factor uint64) {
	if factor < lt.base {
		factor = lt.base
	}
	lt.factor = factor
}

func (lt *LoadTracker) ScaleFeeLoad(fu ledger.FeeUnits, admin bool) ledger.FeeUnits {
	if admin || lt.factor == lt.base {
		return fu
	}
	scaled, ok := ledger.MulDiv(uint64(fu), lt.factor, lt.base)
	if !ok {
		return ledger.FeeUnits(math.MaxUint64)
	}
	return ledger.FeeUnits(scaled)
}

// calculateBaseFee computes the protocol-required fee of the
// transaction in fee units: one reference fee, plus one more per
// declared co-signer. Transaction types with a nonstandard cost
// override this through the BaseFeeCalculator interface.
func calculateBaseFee(v ledger.View, t *Tx) ledger.FeeUnits {
	base := v.Fees().Units
	return base + ledger.FeeUnits(len(t.Signers))*base
}

// minimumFee converts load-scaled fee units to the drop amount this
// node requires.
func minimumFee(v ledger.View, baseFee ledger.FeeUnits, scaler LoadScaler) ledger.Amount {
	scaled := baseFee
	if scaler != nil {
		scaled = scaler.ScaleFeeLoad(baseFee, false)
	}
	drops, ok := v.Fees().ToDrops(scaled)
	if !ok {
		return ledger.MaxAmount
	}
	return drops
}

// checkFee validates the declared fee against the required minimum
// and the account balance. Only open ledgers re-check sufficiency
// against the local minimum; closed ledgers trust history.
func checkFee(v ledger.View, t *Tx, baseFee ledger.FeeUnits, scaler LoadScaler) Result {
	if !t.Fee.Legal() {
		return BadFee
	}

	if v.Open() {
		if t.Fee < minimumFee(v, baseFee, scaler) {
			return InsufficientFeePaid
		}
	}

	source, err := account.Read(v, t.Account)
	if err != nil {
		return AccountNotFound
	}
	if source.Balance() < t.Fee {
		if v.Open() {
			return InsufficientBalanceFee
		}
		return InsufficientBalanceFeeC
	}
	return Success
}

// payFee debits the fee without re-checking sufficiency. Callers
// validate first; the reset path relies on being able to debit a
// clamped fee unconditionally. Paying any positive fee re-arms the
// account's free password-change allowance.
func payFee(ed *account.Editor, fee ledger.Amount) {
	ed.SetBalance(ed.Balance() - fee)
	if fee > 0 && ed.HasFlag(account.FlagPasswordSpent) {
		ed.ClearFlag(account.FlagPasswordSpent)
	}
}
