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

// Signer list size bounds.
const (
	MinSignerEntries = 1
	MaxSignerEntries = 32
)

// ValidateSignerEntries checks the entries of a signer list to be
// persisted for the owner: count within bounds, sorted strictly
// ascending by account, nonzero weights, and no entry naming the
// owner itself.
func ValidateSignerEntries(owner crypto.AccountID, entries []ledger.SignerEntry) Result {
	if len(entries) < MinSignerEntries || len(entries) > MaxSignerEntries {
		return Malformed
	}
	for i, e := range entries {
		if e.Weight == 0 {
			return Malformed
		}
		if e.Account == owner {
			return Malformed
		}
		if i > 0 && !entries[i-1].Account.Less(e.Account) {
			return BadSignerOrder
		}
	}
	return Success
}

// SignerWeightSum sums the weights of a signer list.
func SignerWeightSum(entries []ledger.SignerEntry) uint64 {
	var sum uint64
	for _, e := range entries {
		sum += uint64(e.Weight)
	}
	return sum
}

// checkSignersSorted enforces the transaction-format rule that signer
// tuples arrive sorted strictly ascending by account with no
// duplicates. It is checked once; nothing downstream re-sorts.
func checkSignersSorted(signers []Signer) Result {
	for i := 1; i < len(signers); i++ {
		if !signers[i-1].Account.Less(signers[i].Account) {
			return BadSignerOrder
		}
	}
	return Success
}

// readSignerList loads the owner's signer list, or nil if none.
func readSignerList(v ledger.View, owner crypto.AccountID) *ledger.SignerList {
	e := v.Read(ledger.SignerListIndex(owner))
	if e == nil {
		return nil
	}
	list, ok := e.(*ledger.SignerList)
	if !ok {
		return nil
	}
	return list
}
