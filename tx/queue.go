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
	"sort"
	"sync"

	mapset "github.com/deckarep/golang-set"

	"github.com/helioledger/go-helioledger/account"
	"github.com/helioledger/go-helioledger/crypto"
	"github.com/helioledger/go-helioledger/ledger"
)

// Queue holds transactions accepted locally but not yet applied to a
// closed ledger. It enforces cheap per-account sanity (aggregate fee
// affordability, no duplicate sequence numbers) before transactions
// reach the engine. Safe for concurrent use.
type Queue struct {
	mu      sync.Mutex
	seen    mapset.Set
	pending map[crypto.AccountID][]*Tx
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{
		seen:    mapset.NewSet(),
		pending: make(map[crypto.AccountID][]*Tx),
	}
}

// Add admits a transaction to the queue after local checks against
// the given ledger view.
func (q *Queue) Add(v ledger.View, t *Tx) Result {
	q.mu.Lock()
	defer q.mu.Unlock()

	id := t.ID()
	if q.seen.Contains(id) {
		return RedundantTx
	}

	source, err := account.Read(v, t.Account)
	if err != nil {
		return AccountNotFound
	}

	list := q.pending[t.Account]
	totalFee := t.Fee
	for _, p := range list {
		totalFee += p.Fee
		if !t.Seq.Ticket && !p.Seq.Ticket && p.Seq.Value == t.Seq.Value {
			return RedundantTx
		}
	}
	if totalFee > source.Balance() {
		return InsufficientBalanceFee
	}
	if !t.Seq.Ticket && t.Seq.Value < source.Sequence() {
		return PastSequence
	}

	q.pending[t.Account] = append(list, t)
	q.seen.Add(id)
	return Success
}

// Pending returns the queued transactions of one account, sequence
// consumers first in ascending sequence order, then ticket consumers.
func (q *Queue) Pending(id crypto.AccountID) []*Tx {
	q.mu.Lock()
	defer q.mu.Unlock()

	list := append([]*Tx(nil), q.pending[id]...)
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Seq.Ticket != list[j].Seq.Ticket {
			return !list[i].Seq.Ticket
		}
		return list[i].Seq.Value < list[j].Seq.Value
	})
	return list
}

// Remove drops a transaction from the queue, typically after it has
// been applied or terminally rejected.
func (q *Queue) Remove(t *Tx) {
	q.mu.Lock()
	defer q.mu.Unlock()

	id := t.ID()
	if !q.seen.Contains(id) {
		return
	}
	q.seen.Remove(id)

	list := q.pending[t.Account]
	for i, p := range list {
		if p.ID() == id {
			q.pending[t.Account] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(q.pending[t.Account]) == 0 {
		delete(q.pending, t.Account)
	}
}

// Size is the total number of queued transactions.
func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.seen.Cardinality()
}
