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
	"github.com/helioledger/go-helioledger/crypto"
	"github.com/helioledger/go-helioledger/ledger"
)

func setRegularKey(from *actor, key *crypto.AccountID, seq uint32, fee ledger.Amount) *Tx {
	return &Tx{
		Type:          TypeSetRegularKey,
		Account:       from.id,
		Fee:           fee,
		Seq:           Seq(seq),
		SetRegularKey: &SetRegularKeyFields{RegularKey: key},
	}
}

func TestSetRegularKeyPreflight(t *testing.T) {
	alice := newActor(t)

	p := setRegularKey(alice, &alice.id, 1, 10)
	r := setRegularKeyTransactor{}.Preflight(&PreflightContext{Rules: DefaultRules, Tx: p})
	assert.Equal(t, Malformed, r)

	p = setRegularKey(alice, nil, 1, 10)
	p.SetRegularKey = nil
	r = setRegularKeyTransactor{}.Preflight(&PreflightContext{Rules: DefaultRules, Tx: p})
	assert.Equal(t, InvalidTx, r)
}

func TestSetRegularKeyFreeRekey(t *testing.T) {
	state := ledger.NewState(1, true, ledger.DefaultFees)
	alice := newActor(t)
	regular := newActor(t)
	fund(t, state, alice, 50000000, 1)

	e := NewEngine(DefaultRules, nil)

	// First re-key with the master key rides the free allowance.
	p := setRegularKey(alice, &regular.id, 1, 0)
	require.Nil(t, p.SignWith(alice.seed))
	res, applied := e.Apply(state, p)
	assert.Equal(t, Success, res)
	assert.True(t, applied)

	src := readAccount(t, state, alice.id)
	key, ok := src.RegularKey()
	require.True(t, ok)
	assert.Equal(t, regular.id, key)
	assert.True(t, src.HasFlag(account.FlagPasswordSpent))
	assert.Equal(t, ledger.Amount(50000000), src.Balance())

	// The allowance is spent; a second free attempt underpays.
	other := newActor(t)
	p = setRegularKey(alice, &other.id, 2, 0)
	require.Nil(t, p.SignWith(alice.seed))
	res, applied = e.Apply(state, p)
	assert.Equal(t, InsufficientFeePaid, res)
	assert.False(t, applied)

	// Paying the fee works and re-arms the allowance.
	p = setRegularKey(alice, &other.id, 2, 10)
	require.Nil(t, p.SignWith(alice.seed))
	res, applied = e.Apply(state, p)
	assert.Equal(t, Success, res)
	assert.True(t, applied)

	src = readAccount(t, state, alice.id)
	key, ok = src.RegularKey()
	require.True(t, ok)
	assert.Equal(t, other.id, key)
	assert.False(t, src.HasFlag(account.FlagPasswordSpent))
}

func TestSetRegularKeyNoFreeRekeyWithRegularKey(t *testing.T) {
	state := ledger.NewState(1, true, ledger.DefaultFees)
	alice := newActor(t)
	regular := newActor(t)
	other := newActor(t)
	fund(t, state, alice, 50000000, 1)

	ed, err := account.Edit(state, alice.id)
	require.Nil(t, err)
	ed.SetRegularKey(regular.id)
	ed.SetFlag(account.FlagPasswordSpent)
	require.Nil(t, ed.Flush())

	// Signed with the regular key, the discount never applies.
	e := NewEngine(DefaultRules, nil)
	p := setRegularKey(alice, &other.id, 1, 0)
	require.Nil(t, p.SignWith(regular.seed))
	res, applied := e.Apply(state, p)
	assert.Equal(t, InsufficientFeePaid, res)
	assert.False(t, applied)
}

func TestSetRegularKeyClear(t *testing.T) {
	state := ledger.NewState(1, true, ledger.DefaultFees)
	alice := newActor(t)
	regular := newActor(t)
	fund(t, state, alice, 50000000, 1)

	ed, err := account.Edit(state, alice.id)
	require.Nil(t, err)
	ed.SetRegularKey(regular.id)
	require.Nil(t, ed.Flush())

	e := NewEngine(DefaultRules, nil)
	p := setRegularKey(alice, nil, 1, 10)
	require.Nil(t, p.SignWith(alice.seed))
	res, applied := e.Apply(state, p)
	assert.Equal(t, Success, res)
	assert.True(t, applied)

	_, ok := readAccount(t, state, alice.id).RegularKey()
	assert.False(t, ok)
}

func TestSetRegularKeyClearNoAuthMethod(t *testing.T) {
	state := ledger.NewState(1, true, ledger.DefaultFees)
	alice := newActor(t)
	regular := newActor(t)
	fund(t, state, alice, 50000000, 1)

	ed, err := account.Edit(state, alice.id)
	require.Nil(t, err)
	ed.SetRegularKey(regular.id)
	ed.SetFlag(account.FlagDisableMaster)
	require.Nil(t, ed.Flush())

	// Clearing the only remaining auth method is refused.
	e := NewEngine(DefaultRules, nil)
	p := setRegularKey(alice, nil, 1, 10)
	require.Nil(t, p.SignWith(regular.seed))
	res, applied := e.Apply(state, p)
	assert.Equal(t, NoAuthMethod, res)
	assert.False(t, applied)
}
