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

type itemAction uint8

const (
	actionInsert itemAction = iota + 1
	actionUpdate
	actionErase
)

type item struct {
	action itemAction
	// entry is the pending value; for erased items it holds the
	// value the entry had when it was erased.
	entry Entry
}

// Sandbox is a copy-on-write layer over another view. All mutations
// stay in the sandbox until Apply pushes them into the parent;
// Discard drops them in one cheap operation, which is the rollback
// path of the transaction engine.
type Sandbox struct {
	parent ApplyView
	items  map[Index]*item
}

// NewSandbox creates an empty change layer over the parent view.
func NewSandbox(parent ApplyView) *Sandbox {
	return &Sandbox{
		parent: parent,
		items:  make(map[Index]*item),
	}
}

func (sb *Sandbox) Read(idx Index) Entry {
	if it, ok := sb.items[idx]; ok {
		if it.action == actionErase {
			return nil
		}
		return it.entry
	}
	return sb.parent.Read(idx)
}

func (sb *Sandbox) Exists(idx Index) bool {
	if it, ok := sb.items[idx]; ok {
		return it.action != actionErase
	}
	return sb.parent.Exists(idx)
}

func (sb *Sandbox) TxApplied(id crypto.Hash) bool {
	return sb.parent.TxApplied(id)
}

func (sb *Sandbox) Seq() uint32 {
	return sb.parent.Seq()
}

func (sb *Sandbox) Open() bool {
	return sb.parent.Open()
}

func (sb *Sandbox) Fees() Fees {
	return sb.parent.Fees()
}

func (sb *Sandbox) Peek(idx Index) Entry {
	e := sb.Read(idx)
	if e == nil {
		return nil
	}
	return e.Clone()
}

func (sb *Sandbox) Insert(e Entry) error {
	idx := e.Index()
	if it, ok := sb.items[idx]; ok {
		if it.action != actionErase {
			return ErrEntryExists
		}
		// Erased earlier in this layer; the insert becomes a
		// replacement in the parent.
		it.action = actionUpdate
		it.entry = e
		if !sb.parent.Exists(idx) {
			it.action = actionInsert
		}
		return nil
	}
	if sb.parent.Exists(idx) {
		return ErrEntryExists
	}
	sb.items[idx] = &item{action: actionInsert, entry: e}
	return nil
}

func (sb *Sandbox) Update(e Entry) error {
	idx := e.Index()
	if it, ok := sb.items[idx]; ok {
		if it.action == actionErase {
			return ErrEntryNotFound
		}
		it.entry = e
		return nil
	}
	if !sb.parent.Exists(idx) {
		return ErrEntryNotFound
	}
	sb.items[idx] = &item{action: actionUpdate, entry: e}
	return nil
}

func (sb *Sandbox) Erase(idx Index) error {
	if it, ok := sb.items[idx]; ok {
		switch it.action {
		case actionErase:
			return ErrEntryNotFound
		case actionInsert:
			// Created and destroyed within this layer; net no-op.
			delete(sb.items, idx)
			return nil
		case actionUpdate:
			it.action = actionErase
			return nil
		}
	}
	e := sb.parent.Read(idx)
	if e == nil {
		return ErrEntryNotFound
	}
	sb.items[idx] = &item{action: actionErase, entry: e}
	return nil
}

// Size is the number of entries this layer would change.
func (sb *Sandbox) Size() int {
	return len(sb.items)
}

// Discard drops every pending change.
func (sb *Sandbox) Discard() {
	sb.items = make(map[Index]*item)
}

// Apply pushes all pending changes into the parent view.
func (sb *Sandbox) Apply() error {
	for idx, it := range sb.items {
		var err error
		switch it.action {
		case actionInsert:
			err = sb.parent.Insert(it.entry)
		case actionUpdate:
			err = sb.parent.Update(it.entry)
		case actionErase:
			err = sb.parent.Erase(idx)
		}
		if err != nil {
			return err
		}
	}
	sb.items = make(map[Index]*item)
	return nil
}

// Visit calls fn for every pending change: the entry index, whether
// the change is a deletion, the entry as the parent holds it (nil for
// creations), and the pending entry (for deletions, its value at
// erase time).
func (sb *Sandbox) Visit(fn func(idx Index, isDelete bool, before, after Entry)) {
	for idx, it := range sb.items {
		before := sb.parent.Read(idx)
		fn(idx, it.action == actionErase, before, it.entry)
	}
}
