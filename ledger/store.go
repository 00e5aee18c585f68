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
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"github.com/helioledger/go-helioledger/crypto"
	"github.com/helioledger/go-helioledger/db"
	"github.com/helioledger/go-helioledger/log"
)

const (
	headerBucket = "LEDGERHEADER"
	entryBucket  = "LEDGERENTRY"
	txIDBucket   = "LEDGERTXID"

	// Number of decoded snapshots kept in memory.
	snapshotCacheSize = 16
)

var headKey = []byte("HEAD")

// Store persists closed ledger snapshots in a database. Each snapshot
// is keyed by its sequence number; recently loaded snapshots stay in
// an in-memory cache.
type Store struct {
	database db.Database
	cache    *lru.Cache
}

// NewStore creates a ledger store over the database, creating the
// buckets it needs.
func NewStore(d db.Database) (*Store, error) {
	if err := d.NewBucket(headerBucket); err != nil {
		return nil, fmt.Errorf("create header bucket failed: %v", err)
	}
	if err := d.NewBucket(entryBucket); err != nil {
		return nil, fmt.Errorf("create entry bucket failed: %v", err)
	}
	if err := d.NewBucket(txIDBucket); err != nil {
		return nil, fmt.Errorf("create txid bucket failed: %v", err)
	}
	cache, err := lru.New(snapshotCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create snapshot cache failed: %v", err)
	}
	return &Store{database: d, cache: cache}, nil
}

// SaveSnapshot writes a closed ledger to the database atomically.
func (st *Store) SaveSnapshot(s *State) error {
	if s.Open() {
		return fmt.Errorf("cannot persist an open ledger")
	}

	dbTx, err := st.database.Begin()
	if err != nil {
		return fmt.Errorf("begin db tx failed: %v", err)
	}

	seqKey := u32bytes(s.Seq())

	w := &entryWriter{}
	w.u32(s.Seq())
	w.i64(int64(s.TotalDrops()))
	w.i64(int64(s.fees.Base))
	w.u64(uint64(s.fees.Units))
	w.i64(int64(s.fees.ReserveBase))
	w.i64(int64(s.fees.ReserveIncrement))
	w.u32(uint32(s.EntryCount()))
	if err := dbTx.Put(headerBucket, seqKey, w.buf.Bytes()); err != nil {
		dbTx.Rollback()
		return fmt.Errorf("save ledger header failed: %v", err)
	}
	if err := dbTx.Put(headerBucket, headKey, seqKey); err != nil {
		dbTx.Rollback()
		return fmt.Errorf("save head pointer failed: %v", err)
	}

	var saveErr error
	s.VisitEntries(func(e Entry) {
		if saveErr != nil {
			return
		}
		b, err := EncodeEntry(e)
		if err != nil {
			saveErr = err
			return
		}
		idx := e.Index()
		saveErr = dbTx.Put(entryBucket, append(append([]byte{}, seqKey...), idx[:]...), b)
	})
	if saveErr != nil {
		dbTx.Rollback()
		return fmt.Errorf("save ledger entries failed: %v", saveErr)
	}

	s.VisitTxIDs(func(id crypto.Hash) {
		if saveErr != nil {
			return
		}
		saveErr = dbTx.Put(txIDBucket, append(append([]byte{}, seqKey...), id[:]...), id[:])
	})
	if saveErr != nil {
		dbTx.Rollback()
		return fmt.Errorf("save ledger txids failed: %v", saveErr)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("commit ledger snapshot failed: %v", err)
	}

	// The caller keeps mutating s as the next open ledger, so the
	// cache holds its own copy.
	st.cache.Add(s.Seq(), s.Clone())
	log.Debugw("persisted ledger snapshot", "seq", s.Seq(), "entries", s.EntryCount())
	return nil
}

// HeadSeq returns the sequence of the latest persisted snapshot, or
// zero if none exists.
func (st *Store) HeadSeq() (uint32, error) {
	b, err := st.database.Get(headerBucket, headKey)
	if err != nil {
		return 0, fmt.Errorf("get head pointer failed: %v", err)
	}
	if len(b) != 4 {
		return 0, nil
	}
	r := &entryReader{buf: bytes.NewReader(b)}
	return r.u32(), r.err
}

// LoadSnapshot reads the closed ledger with the given sequence back
// into memory.
func (st *Store) LoadSnapshot(seq uint32) (*State, error) {
	if cached, ok := st.cache.Get(seq); ok {
		return cached.(*State).Clone(), nil
	}

	seqKey := u32bytes(seq)
	hb, err := st.database.Get(headerBucket, seqKey)
	if err != nil {
		return nil, fmt.Errorf("get ledger header failed: %v", err)
	}
	if hb == nil {
		return nil, fmt.Errorf("ledger snapshot %d not found", seq)
	}

	r := &entryReader{buf: bytes.NewReader(hb)}
	gotSeq := r.u32()
	totalDrops := Amount(r.i64())
	fees := Fees{
		Base:             Amount(r.i64()),
		Units:            FeeUnits(r.u64()),
		ReserveBase:      Amount(r.i64()),
		ReserveIncrement: Amount(r.i64()),
	}
	entryCount := int(r.u32())
	if r.err != nil {
		return nil, fmt.Errorf("decode ledger header failed: %v", r.err)
	}
	if gotSeq != seq {
		return nil, fmt.Errorf("ledger header seq mismatch: want %d got %d", seq, gotSeq)
	}

	s := NewState(seq, false, fees)
	s.SetTotalDrops(totalDrops)

	values, err := st.database.GetAll(entryBucket, seqKey)
	if err != nil {
		return nil, fmt.Errorf("get ledger entries failed: %v", err)
	}
	for _, v := range values {
		e, err := DecodeEntry(v)
		if err != nil {
			return nil, fmt.Errorf("decode ledger entry failed: %v", err)
		}
		if err := s.Insert(e); err != nil {
			return nil, fmt.Errorf("restore ledger entry failed: %v", err)
		}
	}
	if s.EntryCount() != entryCount {
		return nil, fmt.Errorf("ledger %d entry count mismatch: want %d got %d", seq, entryCount, s.EntryCount())
	}

	ids, err := st.database.GetAll(txIDBucket, seqKey)
	if err != nil {
		return nil, fmt.Errorf("get ledger txids failed: %v", err)
	}
	for _, v := range ids {
		if len(v) != 32 {
			return nil, ErrBadEncoding
		}
		var id crypto.Hash
		copy(id[:], v)
		s.RecordTx(id)
	}

	st.cache.Add(seq, s.Clone())
	return s, nil
}
