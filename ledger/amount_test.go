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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountLegal(t *testing.T) {
	assert.True(t, Amount(0).Legal())
	assert.True(t, Amount(1000000).Legal())
	assert.True(t, MaxAmount.Legal())
	assert.False(t, Amount(-1).Legal())
	assert.False(t, (MaxAmount + 1).Legal())
}

func TestMulDiv(t *testing.T) {
	v, ok := MulDiv(10, 3, 2)
	assert.True(t, ok)
	assert.Equal(t, uint64(15), v)

	// Intermediate product exceeds 64 bits but the quotient fits.
	v, ok = MulDiv(math.MaxUint64/2, 4, 8)
	assert.True(t, ok)
	assert.Equal(t, uint64(math.MaxUint64/4), v)

	_, ok = MulDiv(math.MaxUint64, 2, 1)
	assert.False(t, ok)

	_, ok = MulDiv(1, 1, 0)
	assert.False(t, ok)
}

func TestFeesToDrops(t *testing.T) {
	fees := Fees{Base: 10, Units: 10, ReserveBase: 10000000, ReserveIncrement: 2000000}

	d, ok := fees.ToDrops(10)
	assert.True(t, ok)
	assert.Equal(t, Amount(10), d)

	d, ok = fees.ToDrops(25)
	assert.True(t, ok)
	assert.Equal(t, Amount(25), d)

	fu, ok := fees.OwnerReserveFeeUnits()
	assert.True(t, ok)
	assert.Equal(t, FeeUnits(2000000), fu)
}

func TestAccountReserve(t *testing.T) {
	fees := DefaultFees
	assert.Equal(t, Amount(10000000), fees.AccountReserve(0))
	assert.Equal(t, Amount(12000000), fees.AccountReserve(1))
	assert.Equal(t, Amount(20000000), fees.AccountReserve(5))
}
