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
	"github.com/helioledger/go-helioledger/crypto"
)

// View is read-only access to one ledger snapshot. Entries returned
// by Read must not be mutated; use an ApplyView's Peek for mutation.
type View interface {
	// Read returns the entry at the index, or nil if absent.
	Read(Index) Entry
	// Exists reports whether an entry is present at the index.
	Exists(Index) bool
	// TxApplied reports whether the transaction id is already
	// recorded in this ledger.
	TxApplied(crypto.Hash) bool
	// Seq is the sequence number of this ledger.
	Seq() uint32
	// Open reports whether this is an open (speculative) ledger as
	// opposed to a closed one being validated.
	Open() bool
	// Fees is the fee schedule of this ledger.
	Fees() Fees
}

// ApplyView extends a View with copy-on-write mutation.
type ApplyView interface {
	View
	// Peek returns a mutable copy of the entry at the index, or nil
	// if absent. Mutations take effect only through Update.
	Peek(Index) Entry
	// Insert adds a new entry. It is an error if the index is taken.
	Insert(Entry) error
	// Update writes back a previously peeked or inserted entry.
	Update(Entry) error
	// Erase removes the entry at the index.
	Erase(Index) error
}
