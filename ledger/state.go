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
	"errors"

	"github.com/helioledger/go-helioledger/crypto"
)

var (
	ErrEntryExists   = errors.New("ledger entry already exists")
	ErrEntryNotFound = errors.New("ledger entry not found")
)

// State is the base mutable ledger: the entry table plus header
// fields. It is not safe for concurrent use; the transaction engine
// assumes exclusive ownership for the duration of one apply.
type State struct {
	seq        uint32
	open       bool
	fees       Fees
	totalDrops Amount

	entries map[Index]Entry
	txIDs   map[crypto.Hash]bool
}

// NewState creates an empty ledger at the given sequence.
func NewState(seq uint32, open bool, fees Fees) *State {
	return &State{
		seq:     seq,
		open:    open,
		fees:    fees,
		entries: make(map[Index]Entry),
		txIDs:   make(map[crypto.Hash]bool),
	}
}

// Clone returns a deep copy sharing nothing with the receiver. Used
// by the snapshot store so cached snapshots stay unaffected by later
// mutation of the live ledger.
func (s *State) Clone() *State {
	c := &State{
		seq:        s.seq,
		open:       s.open,
		fees:       s.fees,
		totalDrops: s.totalDrops,
		entries:    make(map[Index]Entry, len(s.entries)),
		txIDs:      make(map[crypto.Hash]bool, len(s.txIDs)),
	}
	for idx, e := range s.entries {
		c.entries[idx] = e.Clone()
	}
	for id := range s.txIDs {
		c.txIDs[id] = true
	}
	return c
}

func (s *State) Read(idx Index) Entry {
	return s.entries[idx]
}

func (s *State) Exists(idx Index) bool {
	_, ok := s.entries[idx]
	return ok
}

func (s *State) TxApplied(id crypto.Hash) bool {
	return s.txIDs[id]
}

func (s *State) Seq() uint32 {
	return s.seq
}

func (s *State) Open() bool {
	return s.open
}

func (s *State) Fees() Fees {
	return s.fees
}

func (s *State) Peek(idx Index) Entry {
	e, ok := s.entries[idx]
	if !ok {
		return nil
	}
	return e.Clone()
}

func (s *State) Insert(e Entry) error {
	idx := e.Index()
	if _, ok := s.entries[idx]; ok {
		return ErrEntryExists
	}
	s.entries[idx] = e
	return nil
}

func (s *State) Update(e Entry) error {
	idx := e.Index()
	if _, ok := s.entries[idx]; !ok {
		return ErrEntryNotFound
	}
	s.entries[idx] = e
	return nil
}

func (s *State) Erase(idx Index) error {
	if _, ok := s.entries[idx]; !ok {
		return ErrEntryNotFound
	}
	delete(s.entries, idx)
	return nil
}

// RecordTx marks the transaction id as applied in this ledger.
func (s *State) RecordTx(id crypto.Hash) {
	s.txIDs[id] = true
}

// TotalDrops is the aggregate amount of native currency in existence.
func (s *State) TotalDrops() Amount {
	return s.totalDrops
}

// SetTotalDrops initializes the aggregate drop count. Used when
// bootstrapping or loading a ledger.
func (s *State) SetTotalDrops(a Amount) {
	s.totalDrops = a
}

// DestroyDrops accounts for drops permanently removed from
// circulation, such as transaction fees.
func (s *State) DestroyDrops(a Amount) {
	s.totalDrops -= a
}

// AdvanceSeq moves the ledger to the next sequence number.
func (s *State) AdvanceSeq() {
	s.seq++
}

// SetOpen flips the ledger between open and closed.
func (s *State) SetOpen(open bool) {
	s.open = open
}

// EntryCount is the number of entries in the ledger.
func (s *State) EntryCount() int {
	return len(s.entries)
}

// VisitEntries calls fn for every entry. The iteration order is
// unspecified. Entries must not be mutated by fn.
func (s *State) VisitEntries(fn func(Entry)) {
	for _, e := range s.entries {
		fn(e)
	}
}

// VisitTxIDs calls fn for every applied transaction id.
func (s *State) VisitTxIDs(fn func(crypto.Hash)) {
	for id := range s.txIDs {
		fn(id)
	}
}
