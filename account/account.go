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

// Package account provides typed read and edit access to account
// root entries.
package account

import (
	"errors"
	"math"

	"github.com/helioledger/go-helioledger/crypto"
	"github.com/helioledger/go-helioledger/ledger"
	"github.com/helioledger/go-helioledger/log"
)

// Account root flag bits.
const (
	FlagPasswordSpent  uint32 = 0x00010000
	FlagRequireDestTag uint32 = 0x00020000
	FlagRequireAuth    uint32 = 0x00040000
	FlagDisableMaster  uint32 = 0x00100000
	FlagDepositAuth    uint32 = 0x01000000
)

var (
	ErrNotFound       = errors.New("account not found")
	ErrWrongEntryType = errors.New("entry is not an account root")
)

// View is read-only access to one account root.
type View struct {
	root *ledger.AccountRoot
}

// Read looks up the account root in the ledger view.
func Read(v ledger.View, id crypto.AccountID) (*View, error) {
	e := v.Read(ledger.AccountIndex(id))
	if e == nil {
		return nil, ErrNotFound
	}
	root, ok := e.(*ledger.AccountRoot)
	if !ok {
		return nil, ErrWrongEntryType
	}
	return &View{root: root}, nil
}

func (v *View) ID() crypto.AccountID {
	return v.root.Account
}

func (v *View) Balance() ledger.Amount {
	return v.root.Balance
}

func (v *View) Sequence() uint32 {
	return v.root.Sequence
}

func (v *View) OwnerCount() uint32 {
	return v.root.OwnerCount
}

func (v *View) Flags() uint32 {
	return v.root.Flags
}

func (v *View) HasFlag(flag uint32) bool {
	return v.root.Flags&flag != 0
}

// RegularKey returns the regular key and whether one is set.
func (v *View) RegularKey() (crypto.AccountID, bool) {
	if v.root.RegularKey == nil {
		return crypto.AccountID{}, false
	}
	return *v.root.RegularKey, true
}

// AccountTxnID returns the id of the last applied transaction and
// whether tracking is enabled for this account.
func (v *View) AccountTxnID() (crypto.Hash, bool) {
	if v.root.AccountTxnID == nil {
		return crypto.Hash{}, false
	}
	return *v.root.AccountTxnID, true
}

// TicketCount returns the number of outstanding tickets.
func (v *View) TicketCount() uint32 {
	if v.root.TicketCount == nil {
		return 0
	}
	return *v.root.TicketCount
}

// TransferRate returns the configured transfer rate and whether one
// is set.
func (v *View) TransferRate() (uint32, bool) {
	if v.root.TransferRate == nil {
		return 0, false
	}
	return *v.root.TransferRate, true
}

// TickSize returns the configured tick size and whether one is set.
func (v *View) TickSize() (uint8, bool) {
	if v.root.TickSize == nil {
		return 0, false
	}
	return *v.root.TickSize, true
}

func (v *View) Domain() []byte {
	return v.root.Domain
}

func (v *View) MessageKey() []byte {
	return v.root.MessageKey
}

// WalletLocator returns the wallet locator hash and whether one is
// set.
func (v *View) WalletLocator() (crypto.Hash, bool) {
	if v.root.WalletLocator == nil {
		return crypto.Hash{}, false
	}
	return *v.root.WalletLocator, true
}

// EmailHash returns the email hash and whether one is set.
func (v *View) EmailHash() ([16]byte, bool) {
	if v.root.EmailHash == nil {
		return [16]byte{}, false
	}
	return *v.root.EmailHash, true
}

// Editor is mutable access to one account root. Changes are local to
// the editor until Flush writes them back to the view.
type Editor struct {
	View
	view ledger.ApplyView
}

// Edit peeks the account root for mutation.
func Edit(v ledger.ApplyView, id crypto.AccountID) (*Editor, error) {
	e := v.Peek(ledger.AccountIndex(id))
	if e == nil {
		return nil, ErrNotFound
	}
	root, ok := e.(*ledger.AccountRoot)
	if !ok {
		return nil, ErrWrongEntryType
	}
	return &Editor{View: View{root: root}, view: v}, nil
}

// Create inserts a fresh account root with the given starting balance
// and sequence and returns an editor over it.
func Create(v ledger.ApplyView, id crypto.AccountID, balance ledger.Amount, seq uint32) (*Editor, error) {
	root := &ledger.AccountRoot{
		Account:  id,
		Balance:  balance,
		Sequence: seq,
	}
	if err := v.Insert(root); err != nil {
		return nil, err
	}
	return &Editor{View: View{root: root}, view: v}, nil
}

// Root exposes the underlying entry, mainly for deletion paths that
// erase it wholesale.
func (e *Editor) Root() *ledger.AccountRoot {
	return e.root
}

func (e *Editor) SetBalance(a ledger.Amount) {
	e.root.Balance = a
}

func (e *Editor) SetSequence(seq uint32) {
	e.root.Sequence = seq
}

func (e *Editor) SetFlag(flag uint32) {
	e.root.Flags |= flag
}

func (e *Editor) ClearFlag(flag uint32) {
	e.root.Flags &^= flag
}

func (e *Editor) SetRegularKey(id crypto.AccountID) {
	e.root.RegularKey = &id
}

func (e *Editor) ClearRegularKey() {
	e.root.RegularKey = nil
}

func (e *Editor) SetAccountTxnID(id crypto.Hash) {
	e.root.AccountTxnID = &id
}

func (e *Editor) SetTicketCount(n uint32) {
	if n == 0 {
		e.root.TicketCount = nil
		return
	}
	e.root.TicketCount = &n
}

// AdjustOwnerCount changes the owner count by delta, clamping at the
// uint32 bounds. Going out of range indicates a bug elsewhere, so it
// is logged loudly but not fatal.
func (e *Editor) AdjustOwnerCount(delta int32) {
	current := int64(e.root.OwnerCount)
	next := current + int64(delta)
	if next < 0 {
		log.Errorw("owner count underflow", "account", e.root.Account.String(), "current", current, "delta", delta)
		next = 0
	}
	if next > math.MaxUint32 {
		log.Errorw("owner count overflow", "account", e.root.Account.String(), "current", current, "delta", delta)
		next = math.MaxUint32
	}
	e.root.OwnerCount = uint32(next)
}

// Flush writes the edited account root back to the view.
func (e *Editor) Flush() error {
	return e.view.Update(e.root)
}
