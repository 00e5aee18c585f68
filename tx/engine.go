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
	lru "github.com/hashicorp/golang-lru"

	"github.com/helioledger/go-helioledger/account"
	"github.com/helioledger/go-helioledger/crypto"
	"github.com/helioledger/go-helioledger/exchange"
	"github.com/helioledger/go-helioledger/ledger"
	"github.com/helioledger/go-helioledger/log"
)

const (
	// Change sets larger than this are force-converted to a
	// fee-only outcome.
	DefaultMaxChangedEntries = 5120

	// Upper bound on the best-effort unfunded-offer sweep after an
	// oversize or killed outcome.
	maxSweptOffers = 1000

	preflightCacheSize = 16384
)

// Engine runs submitted transactions through the three-phase
// pipeline and the outer retry, invariant and commit state machine.
// It assumes exclusive ownership of the ledger state for the
// duration of one Apply call.
type Engine struct {
	rules             Rules
	scaler            LoadScaler
	checkers          []Checker
	maxChangedEntries int
	preflightCache    *lru.Cache
}

// NewEngine creates an engine with the given rules. A nil scaler
// disables load scaling; the standard invariant checkers are always
// installed.
func NewEngine(rules Rules, scaler LoadScaler) *Engine {
	cache, err := lru.New(preflightCacheSize)
	if err != nil {
		log.Fatalf("create preflight cache failed: %v", err)
	}
	return &Engine{
		rules:             rules,
		scaler:            scaler,
		checkers:          StandardCheckers(),
		maxChangedEntries: DefaultMaxChangedEntries,
		preflightCache:    cache,
	}
}

// preflight runs the stateless phase once per transaction identity.
func (e *Engine) preflight(t *Tx) Result {
	id := t.ID()
	if cached, ok := e.preflightCache.Get(id); ok {
		return cached.(Result)
	}
	r := Preflight(e.rules, t)
	e.preflightCache.Add(id, r)
	return r
}

// Apply runs one transaction against the ledger state and commits or
// discards the outcome. The returned bool reports whether the ledger
// changed (full effects or a claimed fee).
func (e *Engine) Apply(state *ledger.State, t *Tx) (Result, bool) {
	pf := e.preflight(t)
	pc := Preclaim(e.rules, pf, state, t, e.scaler)
	if !pc.IsSuccess() {
		log.Debugw("transaction rejected before apply", "tx", t.ID().String(), "result", pc.String())
		return pc, false
	}

	tr := transactorFor(t.Type)
	sb := ledger.NewSandbox(state)
	fee := t.Fee

	res := e.applyGate(sb, t, tr)

	// Oversize guard: a change set beyond the cap is forced into the
	// claimed-fee class.
	if res.IsSuccess() && sb.Size() > e.maxChangedEntries {
		log.Warnw("oversized change set", "tx", t.ID().String(), "size", sb.Size())
		res = Oversize
	}

	switch {
	case res.IsSuccess():
		// Keep the full change set.
	case res == Oversize || res == Killed:
		// Offers that were swept away as a side effect of the
		// discarded changes get a separate best-effort cleanup pass
		// against the surviving view.
		removed := removedUntradedOffers(sb)
		if r := e.reset(sb, t, &fee); !r.IsSuccess() {
			return r, false
		}
		e.sweepUnfundedOffers(sb, removed)
	case res.IsTecClaim():
		if r := e.reset(sb, t, &fee); !r.IsSuccess() {
			return r, false
		}
	default:
		// Hard failure or retry: nothing is applied.
		sb.Discard()
		return res, false
	}

	if !e.checkInvariants(sb, fee, res) {
		if res.IsTecClaim() {
			// The fee-only outcome itself violates invariants; give
			// up entirely.
			sb.Discard()
			return InvariantFailedFatal, false
		}
		log.Warnw("invariant check failed, retrying fee-only", "tx", t.ID().String())
		res = InvariantFailed
		if r := e.reset(sb, t, &fee); !r.IsSuccess() {
			return r, false
		}
		if !e.checkInvariants(sb, fee, res) {
			sb.Discard()
			return InvariantFailedFatal, false
		}
	}

	if !state.Open() {
		state.DestroyDrops(fee)
	}
	if err := sb.Apply(); err != nil {
		log.Errorf("commit change set failed: %v", err)
		return InternalError, false
	}
	state.RecordTx(t.ID())
	log.Infow("applied transaction", "tx", t.ID().String(), "type", t.Type.String(), "result", res.String(), "fee", int64(fee))
	return res, true
}

// applyGate is the mandatory prelude of the mutating phase: consume
// the sequence or ticket, debit the fee, track the transaction id,
// then hand off to the type-specific effect.
func (e *Engine) applyGate(sb *ledger.Sandbox, t *Tx, tr Transactor) Result {
	source, err := account.Edit(sb, t.Account)
	if err != nil {
		log.Errorf("source account vanished between preclaim and apply: %v", err)
		return InternalError
	}

	if r := consumeSeqProxy(sb, source, t); !r.IsSuccess() {
		return r
	}
	payFee(source, t.Fee)
	if _, tracked := source.AccountTxnID(); tracked {
		source.SetAccountTxnID(t.ID())
	}
	if err := source.Flush(); err != nil {
		log.Errorf("flush source account failed: %v", err)
		return InternalError
	}

	return tr.DoApply(&ApplyContext{
		View:    sb,
		Tx:      t,
		BaseFee: baseFeeFor(sb, t, tr),
		Rules:   e.rules,
	})
}

// reset discards every pending change and rebuilds the minimal
// fee-only outcome: re-consume the sequence or ticket and debit the
// fee, clamped to what the account still holds. A failure here is an
// internal-consistency condition, not a normal error.
func (e *Engine) reset(sb *ledger.Sandbox, t *Tx, fee *ledger.Amount) Result {
	sb.Discard()

	source, err := account.Edit(sb, t.Account)
	if err != nil {
		log.Errorf("reset: source account missing: %v", err)
		return InternalError
	}
	if *fee > source.Balance() {
		*fee = source.Balance()
	}
	if r := consumeSeqProxy(sb, source, t); !r.IsSuccess() {
		log.Errorw("reset: seq proxy re-consumption failed", "tx", t.ID().String(), "result", r.String())
		return InternalError
	}
	payFee(source, *fee)
	if _, tracked := source.AccountTxnID(); tracked {
		source.SetAccountTxnID(t.ID())
	}
	if err := source.Flush(); err != nil {
		log.Errorf("reset: flush source account failed: %v", err)
		return InternalError
	}
	return Success
}

// removedUntradedOffers scans a change set about to be discarded for
// offers that were deleted without their funding amount changing,
// meaning they were removed as a side effect rather than consumed.
func removedUntradedOffers(sb *ledger.Sandbox) []ledger.Index {
	var offers []ledger.Index
	sb.Visit(func(idx ledger.Index, isDelete bool, before, after ledger.Entry) {
		if !isDelete {
			return
		}
		b, wasOffer := before.(*ledger.Offer)
		if !wasOffer {
			return
		}
		a, stillOffer := after.(*ledger.Offer)
		if !stillOffer || b.TakerPays != a.TakerPays {
			return
		}
		offers = append(offers, idx)
	})
	return offers
}

// sweepUnfundedOffers deletes the given offers from the surviving
// view if they are unfunded there. Best effort, bounded.
func (e *Engine) sweepUnfundedOffers(sb *ledger.Sandbox, offers []ledger.Index) {
	if len(offers) > maxSweptOffers {
		offers = offers[:maxSweptOffers]
	}
	for _, idx := range offers {
		entry := sb.Peek(idx)
		if entry == nil {
			continue
		}
		offer, ok := entry.(*ledger.Offer)
		if !ok {
			continue
		}
		if !exchange.IsUnfunded(sb, offer) {
			continue
		}
		if err := exchange.DeleteOffer(sb, offer); err != nil {
			log.Warnf("unfunded offer sweep failed: %v", err)
		}
	}
}

func (e *Engine) checkInvariants(sb *ledger.Sandbox, fee ledger.Amount, res Result) bool {
	for _, c := range e.checkers {
		if !c.Check(sb, fee, res) {
			log.Errorw("invariant violated", "invariant", c.Name(), "fee", int64(fee), "result", res.String())
			return false
		}
	}
	return true
}

// ForgetPreflight drops one memoized preflight outcome. Used when
// protocol rules change between runs.
func (e *Engine) ForgetPreflight(id crypto.Hash) {
	e.preflightCache.Remove(id)
}
