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
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/helioledger/go-helioledger/crypto"
)

// ErrBadEncoding reports a malformed serialized entry.
var ErrBadEncoding = errors.New("malformed entry encoding")

type entryWriter struct {
	buf bytes.Buffer
}

func (w *entryWriter) u8(v uint8)   { w.buf.WriteByte(v) }
func (w *entryWriter) u16(v uint16) { binary.Write(&w.buf, binary.BigEndian, v) }
func (w *entryWriter) u32(v uint32) { binary.Write(&w.buf, binary.BigEndian, v) }
func (w *entryWriter) u64(v uint64) { binary.Write(&w.buf, binary.BigEndian, v) }
func (w *entryWriter) i64(v int64)  { binary.Write(&w.buf, binary.BigEndian, v) }

func (w *entryWriter) account(id crypto.AccountID) { w.buf.Write(id[:]) }
func (w *entryWriter) hash(h crypto.Hash)          { w.buf.Write(h[:]) }
func (w *entryWriter) index(idx Index)             { w.buf.Write(idx[:]) }

func (w *entryWriter) blob(b []byte) {
	w.u16(uint16(len(b)))
	w.buf.Write(b)
}

func (w *entryWriter) present(p bool) {
	if p {
		w.u8(1)
	} else {
		w.u8(0)
	}
}

type entryReader struct {
	buf *bytes.Reader
	err error
}

func (r *entryReader) u8() uint8 {
	if r.err != nil {
		return 0
	}
	b, err := r.buf.ReadByte()
	if err != nil {
		r.err = ErrBadEncoding
		return 0
	}
	return b
}

func (r *entryReader) u16() uint16 {
	var v uint16
	r.read(&v)
	return v
}

func (r *entryReader) u32() uint32 {
	var v uint32
	r.read(&v)
	return v
}

func (r *entryReader) u64() uint64 {
	var v uint64
	r.read(&v)
	return v
}

func (r *entryReader) i64() int64 {
	var v int64
	r.read(&v)
	return v
}

func (r *entryReader) read(v interface{}) {
	if r.err != nil {
		return
	}
	if err := binary.Read(r.buf, binary.BigEndian, v); err != nil {
		r.err = ErrBadEncoding
	}
}

func (r *entryReader) account() crypto.AccountID {
	var id crypto.AccountID
	r.fill(id[:])
	return id
}

func (r *entryReader) hash() crypto.Hash {
	var h crypto.Hash
	r.fill(h[:])
	return h
}

func (r *entryReader) index() Index {
	var idx Index
	r.fill(idx[:])
	return idx
}

func (r *entryReader) fill(b []byte) {
	if r.err != nil {
		return
	}
	if _, err := io.ReadFull(r.buf, b); err != nil {
		r.err = ErrBadEncoding
	}
}

func (r *entryReader) blob() []byte {
	n := int(r.u16())
	if r.err != nil || n == 0 {
		return nil
	}
	if n > r.buf.Len() {
		r.err = ErrBadEncoding
		return nil
	}
	b := make([]byte, n)
	r.fill(b)
	return b
}

func (r *entryReader) present() bool {
	return r.u8() == 1
}

// EncodeEntry serializes a ledger entry to its canonical binary form.
// The encoding is deterministic so stored ledgers hash identically
// across nodes.
func EncodeEntry(e Entry) ([]byte, error) {
	w := &entryWriter{}
	w.u16(uint16(e.Type()))
	switch v := e.(type) {
	case *AccountRoot:
		w.account(v.Account)
		w.i64(int64(v.Balance))
		w.u32(v.Sequence)
		w.u32(v.Flags)
		w.u32(v.OwnerCount)
		w.present(v.RegularKey != nil)
		if v.RegularKey != nil {
			w.account(*v.RegularKey)
		}
		w.present(v.TicketCount != nil)
		if v.TicketCount != nil {
			w.u32(*v.TicketCount)
		}
		w.present(v.TransferRate != nil)
		if v.TransferRate != nil {
			w.u32(*v.TransferRate)
		}
		w.present(v.TickSize != nil)
		if v.TickSize != nil {
			w.u8(*v.TickSize)
		}
		w.present(v.AccountTxnID != nil)
		if v.AccountTxnID != nil {
			w.hash(*v.AccountTxnID)
		}
		w.present(v.EmailHash != nil)
		if v.EmailHash != nil {
			w.buf.Write(v.EmailHash[:])
		}
		w.present(v.WalletLocator != nil)
		if v.WalletLocator != nil {
			w.hash(*v.WalletLocator)
		}
		w.blob(v.Domain)
		w.blob(v.MessageKey)
	case *SignerList:
		w.account(v.Account)
		w.u32(v.ListID)
		w.u32(v.Quorum)
		w.u16(uint16(len(v.Entries)))
		for _, se := range v.Entries {
			w.account(se.Account)
			w.u16(se.Weight)
		}
		w.u64(v.OwnerPage)
	case *Ticket:
		w.account(v.Account)
		w.u32(v.TicketSequence)
		w.u64(v.OwnerPage)
	case *Offer:
		w.account(v.Account)
		w.u32(v.Sequence)
		w.i64(int64(v.TakerPays))
		w.i64(int64(v.TakerGets))
		w.u64(v.OwnerPage)
	case *DepositPreauth:
		w.account(v.Account)
		w.account(v.Authorized)
		w.u64(v.OwnerPage)
	case *DirectoryNode:
		w.account(v.Owner)
		w.u64(v.Page)
		w.u16(uint16(len(v.Indexes)))
		for _, idx := range v.Indexes {
			w.index(idx)
		}
		w.u64(v.IndexNext)
		w.u64(v.IndexPrevious)
	case *Escrow:
		w.account(v.Account)
		w.account(v.Destination)
		w.u32(v.Sequence)
		w.i64(int64(v.Amount))
		w.u64(v.OwnerPage)
	default:
		return nil, fmt.Errorf("cannot encode entry type %v", e.Type())
	}
	return w.buf.Bytes(), nil
}

// DecodeEntry deserializes an entry encoded by EncodeEntry.
func DecodeEntry(data []byte) (Entry, error) {
	r := &entryReader{buf: bytes.NewReader(data)}
	typ := EntryType(r.u16())
	if r.err != nil {
		return nil, r.err
	}

	var e Entry
	switch typ {
	case EntryTypeAccountRoot:
		a := &AccountRoot{}
		a.Account = r.account()
		a.Balance = Amount(r.i64())
		a.Sequence = r.u32()
		a.Flags = r.u32()
		a.OwnerCount = r.u32()
		if r.present() {
			id := r.account()
			a.RegularKey = &id
		}
		if r.present() {
			v := r.u32()
			a.TicketCount = &v
		}
		if r.present() {
			v := r.u32()
			a.TransferRate = &v
		}
		if r.present() {
			v := r.u8()
			a.TickSize = &v
		}
		if r.present() {
			h := r.hash()
			a.AccountTxnID = &h
		}
		if r.present() {
			var eh [16]byte
			r.fill(eh[:])
			a.EmailHash = &eh
		}
		if r.present() {
			h := r.hash()
			a.WalletLocator = &h
		}
		a.Domain = r.blob()
		a.MessageKey = r.blob()
		e = a
	case EntryTypeSignerList:
		s := &SignerList{}
		s.Account = r.account()
		s.ListID = r.u32()
		s.Quorum = r.u32()
		n := int(r.u16())
		for i := 0; i < n && r.err == nil; i++ {
			s.Entries = append(s.Entries, SignerEntry{
				Account: r.account(),
				Weight:  r.u16(),
			})
		}
		s.OwnerPage = r.u64()
		e = s
	case EntryTypeTicket:
		t := &Ticket{}
		t.Account = r.account()
		t.TicketSequence = r.u32()
		t.OwnerPage = r.u64()
		e = t
	case EntryTypeOffer:
		o := &Offer{}
		o.Account = r.account()
		o.Sequence = r.u32()
		o.TakerPays = Amount(r.i64())
		o.TakerGets = Amount(r.i64())
		o.OwnerPage = r.u64()
		e = o
	case EntryTypeDepositPreauth:
		d := &DepositPreauth{}
		d.Account = r.account()
		d.Authorized = r.account()
		d.OwnerPage = r.u64()
		e = d
	case EntryTypeDirectoryNode:
		d := &DirectoryNode{}
		d.Owner = r.account()
		d.Page = r.u64()
		n := int(r.u16())
		for i := 0; i < n && r.err == nil; i++ {
			d.Indexes = append(d.Indexes, r.index())
		}
		d.IndexNext = r.u64()
		d.IndexPrevious = r.u64()
		e = d
	case EntryTypeEscrow:
		es := &Escrow{}
		es.Account = r.account()
		es.Destination = r.account()
		es.Sequence = r.u32()
		es.Amount = Amount(r.i64())
		es.OwnerPage = r.u64()
		e = es
	default:
		return nil, fmt.Errorf("cannot decode entry type %d", typ)
	}
	if r.err != nil {
		return nil, r.err
	}
	return e, nil
}
