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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helioledger/go-helioledger/account"
	"github.com/helioledger/go-helioledger/ledger"
)

func TestDropsConserved(t *testing.T) {
	state := ledger.NewState(1, true, ledger.DefaultFees)
	alice := newActor(t)
	fund(t, state, alice, 1000, 1)

	sb := ledger.NewSandbox(state)
	ed, err := account.Edit(sb, alice.id)
	require.Nil(t, err)
	ed.SetBalance(990)
	require.Nil(t, ed.Flush())

	assert.True(t, dropsConserved{}.Check(sb, 10, Success))
	// A drop leaked somewhere.
	assert.False(t, dropsConserved{}.Check(sb, 11, Success))
}

func TestNoNegativeBalance(t *testing.T) {
	state := ledger.NewState(1, true, ledger.DefaultFees)
	alice := newActor(t)
	fund(t, state, alice, 1000, 1)

	sb := ledger.NewSandbox(state)
	ed, err := account.Edit(sb, alice.id)
	require.Nil(t, err)
	ed.SetBalance(-1)
	require.Nil(t, ed.Flush())

	assert.False(t, noNegativeBalance{}.Check(sb, 0, Success))
}

func TestSequenceNeverDecreases(t *testing.T) {
	state := ledger.NewState(1, true, ledger.DefaultFees)
	alice := newActor(t)
	fund(t, state, alice, 1000, 5)

	sb := ledger.NewSandbox(state)
	ed, err := account.Edit(sb, alice.id)
	require.Nil(t, err)
	ed.SetSequence(4)
	require.Nil(t, ed.Flush())

	assert.False(t, sequenceNeverDecreases{}.Check(sb, 0, Success))

	sb.Discard()
	ed, err = account.Edit(sb, alice.id)
	require.Nil(t, err)
	ed.SetSequence(6)
	require.Nil(t, ed.Flush())
	assert.True(t, sequenceNeverDecreases{}.Check(sb, 0, Success))
}
