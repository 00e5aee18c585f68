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

// Index is the 256-bit key of a ledger entry.
type Index [32]byte

var ZeroIndex Index

func (i Index) IsZero() bool {
	return i == ZeroIndex
}

func (i Index) String() string {
	return crypto.Hash(i).String()
}

// EntryType discriminates the kinds of ledger entries.
type EntryType uint16

const (
	EntryTypeAccountRoot EntryType = iota + 1
	EntryTypeSignerList
	EntryTypeTicket
	EntryTypeOffer
	EntryTypeDepositPreauth
	EntryTypeDirectoryNode
	EntryTypeEscrow
)

func (t EntryType) String() string {
	switch t {
	case EntryTypeAccountRoot:
		return "AccountRoot"
	case EntryTypeSignerList:
		return "SignerList"
	case EntryTypeTicket:
		return "Ticket"
	case EntryTypeOffer:
		return "Offer"
	case EntryTypeDepositPreauth:
		return "DepositPreauth"
	case EntryTypeDirectoryNode:
		return "DirectoryNode"
	case EntryTypeEscrow:
		return "Escrow"
	}
	return "Unknown"
}

// Entry is one typed record of ledger state. Concrete entry structs
// carry explicit fields; optional fields are pointers so that absence
// stays distinct from a present default.
type Entry interface {
	Type() EntryType
	Index() Index
	Clone() Entry
}

// AccountRoot is the per-account record.
type AccountRoot struct {
	Account    crypto.AccountID
	Balance    Amount
	Sequence   uint32
	Flags      uint32
	OwnerCount uint32

	RegularKey    *crypto.AccountID
	TicketCount   *uint32
	TransferRate  *uint32
	TickSize      *uint8
	AccountTxnID  *crypto.Hash
	EmailHash     *[16]byte
	WalletLocator *crypto.Hash
	Domain        []byte
	MessageKey    []byte
}

func (a *AccountRoot) Type() EntryType { return EntryTypeAccountRoot }

func (a *AccountRoot) Index() Index { return AccountIndex(a.Account) }

func (a *AccountRoot) Clone() Entry {
	c := *a
	if a.RegularKey != nil {
		v := *a.RegularKey
		c.RegularKey = &v
	}
	if a.TicketCount != nil {
		v := *a.TicketCount
		c.TicketCount = &v
	}
	if a.TransferRate != nil {
		v := *a.TransferRate
		c.TransferRate = &v
	}
	if a.TickSize != nil {
		v := *a.TickSize
		c.TickSize = &v
	}
	if a.AccountTxnID != nil {
		v := *a.AccountTxnID
		c.AccountTxnID = &v
	}
	if a.EmailHash != nil {
		v := *a.EmailHash
		c.EmailHash = &v
	}
	if a.WalletLocator != nil {
		v := *a.WalletLocator
		c.WalletLocator = &v
	}
	c.Domain = append([]byte(nil), a.Domain...)
	c.MessageKey = append([]byte(nil), a.MessageKey...)
	return &c
}

// SignerEntry is one weighted signer of a signer list.
type SignerEntry struct {
	Account crypto.AccountID
	Weight  uint16
}

// SignerList is the quorum plus weighted-signer record of an account.
// Entries are sorted ascending by account with no duplicates whenever
// the list is persisted.
type SignerList struct {
	Account crypto.AccountID
	// ListID distinguishes multiple signer lists per account in the
	// future. Only id zero is in use.
	ListID    uint32
	Quorum    uint32
	Entries   []SignerEntry
	OwnerPage uint64
}

func (s *SignerList) Type() EntryType { return EntryTypeSignerList }

func (s *SignerList) Index() Index { return SignerListIndex(s.Account) }

func (s *SignerList) Clone() Entry {
	c := *s
	c.Entries = append([]SignerEntry(nil), s.Entries...)
	return &c
}

// Ticket is a single-use stand-in for a sequence number.
type Ticket struct {
	Account        crypto.AccountID
	TicketSequence uint32
	OwnerPage      uint64
}

func (t *Ticket) Type() EntryType { return EntryTypeTicket }

func (t *Ticket) Index() Index { return TicketIndex(t.Account, t.TicketSequence) }

func (t *Ticket) Clone() Entry {
	c := *t
	return &c
}

// Offer is an order-book entry. The matching engine that trades
// against offers lives outside this core; offers matter here only as
// deletable owned objects.
type Offer struct {
	Account   crypto.AccountID
	Sequence  uint32
	TakerPays Amount
	TakerGets Amount
	OwnerPage uint64
}

func (o *Offer) Type() EntryType { return EntryTypeOffer }

func (o *Offer) Index() Index { return OfferIndex(o.Account, o.Sequence) }

func (o *Offer) Clone() Entry {
	c := *o
	return &c
}

// DepositPreauth records that Account preauthorized Authorized to
// deposit funds even while deposit authorization is enabled.
type DepositPreauth struct {
	Account    crypto.AccountID
	Authorized crypto.AccountID
	OwnerPage  uint64
}

func (d *DepositPreauth) Type() EntryType { return EntryTypeDepositPreauth }

func (d *DepositPreauth) Index() Index { return DepositPreauthIndex(d.Account, d.Authorized) }

func (d *DepositPreauth) Clone() Entry {
	c := *d
	return &c
}

// DirectoryNode is one page of an owner directory. Page zero is the
// root. Pages link forward through IndexNext; the root's
// IndexPrevious holds the number of the last page.
type DirectoryNode struct {
	Owner         crypto.AccountID
	Page          uint64
	Indexes       []Index
	IndexNext     uint64
	IndexPrevious uint64
}

func (d *DirectoryNode) Type() EntryType { return EntryTypeDirectoryNode }

func (d *DirectoryNode) Index() Index { return OwnerDirPageIndex(d.Owner, d.Page) }

func (d *DirectoryNode) Clone() Entry {
	c := *d
	c.Indexes = append([]Index(nil), d.Indexes...)
	return &c
}

// Escrow is a held payment. It is an obligation: an account owning
// one cannot be deleted.
type Escrow struct {
	Account     crypto.AccountID
	Destination crypto.AccountID
	Sequence    uint32
	Amount      Amount
	OwnerPage   uint64
}

func (e *Escrow) Type() EntryType { return EntryTypeEscrow }

func (e *Escrow) Index() Index { return EscrowIndex(e.Account, e.Sequence) }

func (e *Escrow) Clone() Entry {
	c := *e
	return &c
}
