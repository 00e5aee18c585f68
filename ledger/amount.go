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

package ledger

import (
	"math"
	"math/bits"
)

// Amount is a quantity of the native currency in drops. Committed
// ledger state never holds a negative balance; the signed type exists
// so that arithmetic underflow is representable and checkable.
type Amount int64

// MaxAmount is the largest legal drop quantity.
const MaxAmount Amount = 100000000000 * 1000000

// Legal reports whether the amount is within the representable
// range of the native currency.
func (a Amount) Legal() bool {
	return a >= 0 && a <= MaxAmount
}

// FeeUnits is the load-scalable unit in which transaction fees are
// computed before being converted to drops.
type FeeUnits uint64

// Fees is the fee schedule of a ledger.
type Fees struct {
	// Base is the fee of a reference transaction in drops.
	Base Amount
	// Units is the fee of a reference transaction in fee units.
	Units FeeUnits
	// ReserveBase is the account reserve in drops.
	ReserveBase Amount
	// ReserveIncrement is the extra reserve per owned object in drops.
	ReserveIncrement Amount
}

// DefaultFees mirrors the genesis fee schedule.
var DefaultFees = Fees{
	Base:             10,
	Units:            10,
	ReserveBase:      10 * 1000000,
	ReserveIncrement: 2 * 1000000,
}

// MulDiv computes value*mul/div with intermediate overflow detection.
// The second return is false on overflow or division by zero.
func MulDiv(value, mul, div uint64) (uint64, bool) {
	if div == 0 {
		return 0, false
	}
	hi, lo := bits.Mul64(value, mul)
	if hi >= div {
		return 0, false
	}
	quo, _ := bits.Div64(hi, lo, div)
	return quo, true
}

// ToDrops converts fee units to drops using the schedule's reference
// transaction cost. The second return is false on overflow.
func (f Fees) ToDrops(fu FeeUnits) (Amount, bool) {
	if f.Units == 0 {
		return 0, false
	}
	drops, ok := MulDiv(uint64(fu), uint64(f.Base), uint64(f.Units))
	if !ok || drops > math.MaxInt64 {
		return 0, false
	}
	return Amount(drops), true
}

// OwnerReserveFeeUnits converts the per-object reserve increment into
// fee units. The second return is false on overflow.
func (f Fees) OwnerReserveFeeUnits() (FeeUnits, bool) {
	if f.Base == 0 {
		return 0, false
	}
	fu, ok := MulDiv(uint64(f.ReserveIncrement), uint64(f.Units), uint64(f.Base))
	if !ok {
		return 0, false
	}
	return FeeUnits(fu), true
}

// AccountReserve is the balance an account must retain given the
// number of objects it owns.
func (f Fees) AccountReserve(ownerCount uint32) Amount {
	return f.ReserveBase + Amount(ownerCount)*f.ReserveIncrement
}
