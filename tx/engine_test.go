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

	"github.com/helioledger/go-helioledger/ledger"
)

func TestEngineApplyPayment(t *testing.T) {
	state := ledger.NewState(1, true, ledger.DefaultFees)
	alice := newActor(t)
	bob := newActor(t)
	fund(t, state, alice, 50000000, 5)
	fund(t, state, bob, 50000000, 1)

	e := NewEngine(DefaultRules, nil)
	p := signedPayment(t, alice, bob.id, 1000, 5, 10)

	res, applied := e.Apply(state, p)
	assert.Equal(t, Success, res)
	assert.True(t, applied)
	assert.True(t, state.TxApplied(p.ID()))

	src := readAccount(t, state, alice.id)
	assert.Equal(t, uint32(6), src.Sequence())
	assert.Equal(t, ledger.Amount(50000000-10-1000), src.Balance())
	assert.Equal(t, ledger.Amount(50000000+1000), readAccount(t, state, bob.id).Balance())

	// The consumed sequence makes a resubmission stale.
	res, applied = e.Apply(state, p)
	assert.Equal(t, PastSequence, res)
	assert.False(t, applied)
}

func TestEngineApplyTicketed(t *testing.T) {
	state := ledger.NewState(1, true, ledger.DefaultFees)
	alice := newActor(t)
	bob := newActor(t)
	fund(t, state, alice, 50000000, 6)
	fund(t, state, bob, 50000000, 1)
	installTicket(t, state, alice.id, 3)

	e := NewEngine(DefaultRules, nil)
	p := payment(alice, bob.id, 1000, 0, 10)
	p.Seq = TicketSeq(3)
	require.Nil(t, p.SignWith(alice.seed))

	res, applied := e.Apply(state, p)
	assert.Equal(t, Success, res)
	assert.True(t, applied)

	// A ticket spend leaves the account sequence alone and releases
	// the ticket's reserve slot.
	src := readAccount(t, state, alice.id)
	assert.Equal(t, uint32(6), src.Sequence())
	assert.Equal(t, uint32(0), src.TicketCount())
	assert.Equal(t, uint32(0), src.OwnerCount())
	assert.False(t, state.Exists(ledger.TicketIndex(alice.id, 3)))

	// The same ticket cannot be spent twice.
	res, applied = e.Apply(state, p)
	assert.Equal(t, TicketNotFound, res)
	assert.False(t, applied)
}

func TestEngineClaimsFeeOnTec(t *testing.T) {
	state := ledger.NewState(1, true, ledger.DefaultFees)
	alice := newActor(t)
	bob := newActor(t)
	// Just above the reserve; the payment amount would dip below it.
	fund(t, state, alice, 10000500, 1)
	fund(t, state, bob, 50000000, 1)

	e := NewEngine(DefaultRules, nil)
	p := signedPayment(t, alice, bob.id, 10000, 1, 10)

	res, applied := e.Apply(state, p)
	assert.Equal(t, Unfunded, res)
	assert.True(t, applied)

	// Fee claimed, sequence burned, no transfer.
	src := readAccount(t, state, alice.id)
	assert.Equal(t, uint32(2), src.Sequence())
	assert.Equal(t, ledger.Amount(10000490), src.Balance())
	assert.Equal(t, ledger.Amount(50000000), readAccount(t, state, bob.id).Balance())
	assert.True(t, state.TxApplied(p.ID()))
}

func TestEnginePreclaimFailureLeavesStateAlone(t *testing.T) {
	state := ledger.NewState(1, true, ledger.DefaultFees)
	alice := newActor(t)
	bob := newActor(t)
	fund(t, state, alice, 50000000, 1)

	e := NewEngine(DefaultRules, nil)
	// Destination was never funded.
	p := signedPayment(t, alice, bob.id, 1000, 1, 10)

	res, applied := e.Apply(state, p)
	assert.Equal(t, DestinationNotFound, res)
	assert.False(t, applied)

	src := readAccount(t, state, alice.id)
	assert.Equal(t, uint32(1), src.Sequence())
	assert.Equal(t, ledger.Amount(50000000), src.Balance())
	assert.False(t, state.TxApplied(p.ID()))
}

func TestEngineDestroysFeeOnClosedLedger(t *testing.T) {
	state := ledger.NewState(4, false, ledger.DefaultFees)
	state.SetTotalDrops(100000000)
	alice := newActor(t)
	bob := newActor(t)
	fund(t, state, alice, 50000000, 1)
	fund(t, state, bob, 40000000, 1)

	e := NewEngine(DefaultRules, nil)
	p := signedPayment(t, alice, bob.id, 1000, 1, 10)

	res, applied := e.Apply(state, p)
	assert.Equal(t, Success, res)
	assert.True(t, applied)
	assert.Equal(t, ledger.Amount(100000000-10), state.TotalDrops())
}

func TestEngineOversizeBecomesFeeOnly(t *testing.T) {
	state := ledger.NewState(1, true, ledger.DefaultFees)
	alice := newActor(t)
	bob := newActor(t)
	fund(t, state, alice, 50000000, 1)
	fund(t, state, bob, 50000000, 1)

	e := NewEngine(DefaultRules, nil)
	// A successful payment touches two account roots.
	e.maxChangedEntries = 1
	p := signedPayment(t, alice, bob.id, 1000, 1, 10)

	res, applied := e.Apply(state, p)
	assert.Equal(t, Oversize, res)
	assert.True(t, applied)

	src := readAccount(t, state, alice.id)
	assert.Equal(t, uint32(2), src.Sequence())
	assert.Equal(t, ledger.Amount(50000000-10), src.Balance())
	assert.Equal(t, ledger.Amount(50000000), readAccount(t, state, bob.id).Balance())
}

// vetoChecker fails every outcome except the one it allows.
type vetoChecker struct {
	allow Result
}

func (vetoChecker) Name() string { return "veto" }

func (c vetoChecker) Check(_ *ledger.Sandbox, _ ledger.Amount, res Result) bool {
	return res == c.allow
}

func TestEngineInvariantRetry(t *testing.T) {
	state := ledger.NewState(1, true, ledger.DefaultFees)
	alice := newActor(t)
	bob := newActor(t)
	fund(t, state, alice, 50000000, 1)
	fund(t, state, bob, 50000000, 1)

	e := NewEngine(DefaultRules, nil)
	// Veto the full outcome; the fee-only retry is allowed through.
	e.checkers = append(e.checkers, vetoChecker{allow: InvariantFailed})
	p := signedPayment(t, alice, bob.id, 1000, 1, 10)

	res, applied := e.Apply(state, p)
	assert.Equal(t, InvariantFailed, res)
	assert.True(t, applied)

	src := readAccount(t, state, alice.id)
	assert.Equal(t, uint32(2), src.Sequence())
	assert.Equal(t, ledger.Amount(50000000-10), src.Balance())
	assert.Equal(t, ledger.Amount(50000000), readAccount(t, state, bob.id).Balance())
}

func TestEngineInvariantFatal(t *testing.T) {
	state := ledger.NewState(1, true, ledger.DefaultFees)
	alice := newActor(t)
	bob := newActor(t)
	fund(t, state, alice, 50000000, 1)
	fund(t, state, bob, 50000000, 1)

	e := NewEngine(DefaultRules, nil)
	// Nothing passes, not even the fee-only retry.
	e.checkers = append(e.checkers, vetoChecker{allow: InternalError})
	p := signedPayment(t, alice, bob.id, 1000, 1, 10)

	res, applied := e.Apply(state, p)
	assert.Equal(t, InvariantFailedFatal, res)
	assert.False(t, applied)

	src := readAccount(t, state, alice.id)
	assert.Equal(t, uint32(1), src.Sequence())
	assert.Equal(t, ledger.Amount(50000000), src.Balance())
	assert.False(t, state.TxApplied(p.ID()))
}

func TestEngineResetClampsFee(t *testing.T) {
	state := ledger.NewState(1, true, ledger.DefaultFees)
	alice := newActor(t)
	bob := newActor(t)
	fund(t, state, alice, 4, 1)

	e := NewEngine(DefaultRules, nil)
	sb := ledger.NewSandbox(state)
	p := payment(alice, bob.id, 100, 1, 10)
	fee := p.Fee

	require.Equal(t, Success, e.reset(sb, p, &fee))
	assert.Equal(t, ledger.Amount(4), fee)
	assert.Equal(t, 1, sb.Size())

	src := readAccount(t, sb, alice.id)
	assert.Equal(t, ledger.Amount(0), src.Balance())
	assert.Equal(t, uint32(2), src.Sequence())
}

func TestRemovedUntradedOffers(t *testing.T) {
	state := ledger.NewState(1, true, ledger.DefaultFees)
	alice := newActor(t)
	fund(t, state, alice, 50000000, 1)
	offer := installOffer(t, state, alice.id, 7, 500, 500)
	traded := installOffer(t, state, alice.id, 8, 900, 900)

	sb := ledger.NewSandbox(state)

	// One offer is deleted untouched, the other is consumed first.
	require.Nil(t, sb.Erase(offer.Index()))
	partial := sb.Peek(traded.Index()).(*ledger.Offer)
	partial.TakerPays = 100
	require.Nil(t, sb.Update(partial))
	require.Nil(t, sb.Erase(traded.Index()))

	removed := removedUntradedOffers(sb)
	require.Len(t, removed, 1)
	assert.Equal(t, offer.Index(), removed[0])
}

func TestEngineSweepsUnfundedOffers(t *testing.T) {
	state := ledger.NewState(1, true, ledger.DefaultFees)
	alice := newActor(t)
	fund(t, state, alice, 50000000, 1)
	// The owner cannot cover TakerGets above the reserve, so the offer
	// is unfunded from the start.
	offer := installOffer(t, state, alice.id, 7, 1000, 45000000)

	e := NewEngine(DefaultRules, nil)
	sb := ledger.NewSandbox(state)
	e.sweepUnfundedOffers(sb, []ledger.Index{offer.Index()})
	require.Nil(t, sb.Apply())

	assert.False(t, state.Exists(offer.Index()))
	assert.Equal(t, uint32(0), readAccount(t, state, alice.id).OwnerCount())
}
