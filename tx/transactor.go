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
	"github.com/helioledger/go-helioledger/crypto"
	"github.com/helioledger/go-helioledger/ledger"
)

// Rules are the protocol knobs preflight consults. Preflight sees no
// ledger, so everything it needs travels here.
type Rules struct {
	// MaxTicketCount bounds one TicketCreate.
	MaxTicketCount uint32
	// MaxDeletableEntries bounds the owned objects AccountDelete will
	// cascade over.
	MaxDeletableEntries int
	// DeleteSeqDelta is how far behind the current ledger sequence an
	// account's sequence must be before the account may be deleted.
	DeleteSeqDelta uint32
}

// DefaultRules is the production rule set.
var DefaultRules = Rules{
	MaxTicketCount:      250,
	MaxDeletableEntries: 1000,
	DeleteSeqDelta:      255,
}

// PreflightContext is the input of the stateless phase.
type PreflightContext struct {
	Rules Rules
	Tx    *Tx
}

// PreclaimContext is the input of the read-only phase.
type PreclaimContext struct {
	Rules Rules
	View  ledger.View
	Tx    *Tx
}

// ApplyContext is the input of the mutating phase. View is the
// sandbox the whole attempt writes into; discarding it voids the
// attempt.
type ApplyContext struct {
	View    ledger.ApplyView
	Tx      *Tx
	BaseFee ledger.FeeUnits
	Rules   Rules
}

// Transactor is the per-type specialization of the three-phase
// pipeline. The shared gate (fee, sequence, signatures) runs outside
// these methods; implementations check and apply only their own
// semantics.
type Transactor interface {
	Preflight(ctx *PreflightContext) Result
	Preclaim(ctx *PreclaimContext) Result
	DoApply(ctx *ApplyContext) Result
}

// BaseFeeCalculator is implemented by transactors whose protocol fee
// differs from the reference fee.
type BaseFeeCalculator interface {
	BaseFee(v ledger.View, t *Tx) ledger.FeeUnits
}

// transactorFor maps a transaction type to its implementation. The
// switch is closed: an unknown type yields nil and is rejected in
// preflight, never later.
func transactorFor(typ TxType) Transactor {
	switch typ {
	case TypePayment:
		return paymentTransactor{}
	case TypeSetRegularKey:
		return setRegularKeyTransactor{}
	case TypeSignerListSet:
		return signerListSetTransactor{}
	case TypeTicketCreate:
		return ticketCreateTransactor{}
	case TypeDepositPreauth:
		return depositPreauthTransactor{}
	case TypeAccountDelete:
		return accountDeleteTransactor{}
	}
	return nil
}

func baseFeeFor(v ledger.View, t *Tx, tr Transactor) ledger.FeeUnits {
	if bc, ok := tr.(BaseFeeCalculator); ok {
		return bc.BaseFee(v, t)
	}
	return calculateBaseFee(v, t)
}

// Preflight is the stateless phase: structural validation plus the
// cryptographic signature pass. It consults no ledger, so its result
// is a pure function of the transaction and rules and is memoized by
// transaction id.
func Preflight(rules Rules, t *Tx) Result {
	if t.Account.IsZero() {
		return BadSource
	}
	if !t.Fee.Legal() {
		return BadFee
	}
	if t.Seq.Ticket && t.AccountTxnID != nil {
		// A ticketed transaction has no defined position in the
		// account's history, so it cannot anchor on a prior tx.
		return Malformed
	}
	if len(t.SigningPubKey) > 0 {
		if _, ok := crypto.PublicKeyType(t.SigningPubKey); !ok {
			return BadSignature
		}
		if len(t.Signers) > 0 {
			return InvalidTx
		}
	}

	tr := transactorFor(t.Type)
	if tr == nil {
		return UnknownTxType
	}
	if r := tr.Preflight(&PreflightContext{Rules: rules, Tx: t}); !r.IsSuccess() {
		return r
	}

	return VerifySignatures(t)
}

// Preclaim is the read-only phase against one ledger view: fee
// affordability, sequencing, authorization policy, then the type's
// own preconditions. Never mutates.
func Preclaim(rules Rules, preflight Result, v ledger.View, t *Tx, scaler LoadScaler) Result {
	if !preflight.IsSuccess() {
		return preflight
	}
	tr := transactorFor(t.Type)
	if tr == nil {
		return UnknownTxType
	}

	if r := checkFee(v, t, baseFeeFor(v, t, tr), scaler); !r.IsSuccess() {
		return r
	}
	if r := checkSeqProxy(v, t); !r.IsSuccess() {
		return r
	}
	if r := checkPriorTxAndLastLedger(v, t); !r.IsSuccess() {
		return r
	}
	if r := checkSign(v, t); !r.IsSuccess() {
		return r
	}
	return tr.Preclaim(&PreclaimContext{Rules: rules, View: v, Tx: t})
}
