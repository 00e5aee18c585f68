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
	"github.com/helioledger/go-helioledger/ledger"
)

// Checker verifies one ledger invariant over a proposed change set
// before it commits. Checkers see the sandbox holding all pending
// changes, the fee about to be destroyed, and the provisional result.
type Checker interface {
	Name() string
	Check(sb *ledger.Sandbox, fee ledger.Amount, res Result) bool
}

// StandardCheckers is the invariant set the engine runs by default.
func StandardCheckers() []Checker {
	return []Checker{
		noNegativeBalance{},
		dropsConserved{},
		sequenceNeverDecreases{},
	}
}

// noNegativeBalance rejects any surviving account root whose balance
// left the legal range.
type noNegativeBalance struct{}

func (noNegativeBalance) Name() string { return "no negative balance" }

func (noNegativeBalance) Check(sb *ledger.Sandbox, fee ledger.Amount, res Result) bool {
	ok := true
	sb.Visit(func(idx ledger.Index, isDelete bool, before, after ledger.Entry) {
		if isDelete {
			return
		}
		if acc, isAcc := after.(*ledger.AccountRoot); isAcc {
			if !acc.Balance.Legal() {
				ok = false
			}
		}
	})
	return ok
}

// dropsConserved requires the net balance change across all touched
// account roots to equal exactly the destroyed fee.
type dropsConserved struct{}

func (dropsConserved) Name() string { return "drops conserved" }

func (dropsConserved) Check(sb *ledger.Sandbox, fee ledger.Amount, res Result) bool {
	var delta ledger.Amount
	sb.Visit(func(idx ledger.Index, isDelete bool, before, after ledger.Entry) {
		if acc, isAcc := before.(*ledger.AccountRoot); isAcc {
			delta -= acc.Balance
		}
		if isDelete {
			return
		}
		if acc, isAcc := after.(*ledger.AccountRoot); isAcc {
			delta += acc.Balance
		}
	})
	return delta == -fee
}

// sequenceNeverDecreases rejects updates that move an account
// sequence backwards.
type sequenceNeverDecreases struct{}

func (sequenceNeverDecreases) Name() string { return "sequence never decreases" }

func (sequenceNeverDecreases) Check(sb *ledger.Sandbox, fee ledger.Amount, res Result) bool {
	ok := true
	sb.Visit(func(idx ledger.Index, isDelete bool, before, after ledger.Entry) {
		if isDelete || before == nil {
			return
		}
		b, isAcc := before.(*ledger.AccountRoot)
		if !isAcc {
			return
		}
		a, isAcc := after.(*ledger.AccountRoot)
		if !isAcc {
			return
		}
		if a.Sequence < b.Sequence {
			ok = false
		}
	})
	return ok
}
