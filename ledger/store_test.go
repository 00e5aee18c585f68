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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helioledger/go-helioledger/crypto"
	"github.com/helioledger/go-helioledger/db"
	_ "github.com/helioledger/go-helioledger/db/memdb"
)

func TestEncodeDecodeAccountRoot(t *testing.T) {
	rk := testAccountID(9)
	txnID := crypto.Sum256([]byte("prior"))
	tickets := uint32(3)
	acc := &AccountRoot{
		Account:      testAccountID(1),
		Balance:      25000000,
		Sequence:     17,
		Flags:        0x00100000,
		OwnerCount:   4,
		RegularKey:   &rk,
		TicketCount:  &tickets,
		AccountTxnID: &txnID,
		Domain:       []byte("example.com"),
	}

	b, err := EncodeEntry(acc)
	require.Nil(t, err)

	got, err := DecodeEntry(b)
	require.Nil(t, err)
	assert.Equal(t, acc, got)
}

func TestEncodeDecodeSignerList(t *testing.T) {
	sl := &SignerList{
		Account: testAccountID(1),
		Quorum:  5,
		Entries: []SignerEntry{
			{Account: testAccountID(2), Weight: 2},
			{Account: testAccountID(3), Weight: 3},
		},
		OwnerPage: 1,
	}

	b, err := EncodeEntry(sl)
	require.Nil(t, err)

	got, err := DecodeEntry(b)
	require.Nil(t, err)
	assert.Equal(t, sl, got)
}

func TestDecodeEntryMalformed(t *testing.T) {
	_, err := DecodeEntry(nil)
	assert.NotNil(t, err)

	_, err = DecodeEntry([]byte{0xff, 0xff})
	assert.NotNil(t, err)

	b, err := EncodeEntry(&Ticket{Account: testAccountID(1), TicketSequence: 9})
	require.Nil(t, err)
	_, err = DecodeEntry(b[:len(b)-1])
	assert.NotNil(t, err)
}

func TestStoreSaveLoadSnapshot(t *testing.T) {
	d, err := db.New("memory", "")
	require.Nil(t, err)
	defer d.Close()

	store, err := NewStore(d)
	require.Nil(t, err)

	state := NewState(7, false, DefaultFees)
	state.SetTotalDrops(100000000)
	require.Nil(t, state.Insert(testAccountRoot(1, 40000000)))
	require.Nil(t, state.Insert(testAccountRoot(2, 60000000)))
	require.Nil(t, state.Insert(&Ticket{Account: testAccountID(1), TicketSequence: 5}))
	txID := crypto.Sum256([]byte("payment"))
	state.RecordTx(txID)

	require.Nil(t, store.SaveSnapshot(state))

	head, err := store.HeadSeq()
	require.Nil(t, err)
	assert.Equal(t, uint32(7), head)

	// Drop the cache so the load exercises the database path.
	store.cache.Purge()

	got, err := store.LoadSnapshot(7)
	require.Nil(t, err)
	assert.Equal(t, uint32(7), got.Seq())
	assert.False(t, got.Open())
	assert.Equal(t, Amount(100000000), got.TotalDrops())
	assert.Equal(t, DefaultFees, got.Fees())
	assert.Equal(t, 3, got.EntryCount())
	assert.True(t, got.TxApplied(txID))

	acc := got.Read(AccountIndex(testAccountID(2)))
	require.NotNil(t, acc)
	assert.Equal(t, Amount(60000000), acc.(*AccountRoot).Balance)
}

func TestStoreSnapshotUnaffectedByLiveMutation(t *testing.T) {
	d, err := db.New("memory", "")
	require.Nil(t, err)
	defer d.Close()

	store, err := NewStore(d)
	require.Nil(t, err)

	state := NewState(1, false, DefaultFees)
	require.Nil(t, state.Insert(testAccountRoot(1, 40000000)))
	require.Nil(t, store.SaveSnapshot(state))

	// Keep using the same object as the next open ledger, the way a
	// node does after closing.
	state.SetOpen(true)
	state.AdvanceSeq()
	require.Nil(t, state.Insert(testAccountRoot(2, 60000000)))

	got, err := store.LoadSnapshot(1)
	require.Nil(t, err)
	assert.Equal(t, uint32(1), got.Seq())
	assert.False(t, got.Open())
	assert.Equal(t, 1, got.EntryCount())

	// Mutating a loaded snapshot does not leak into later loads.
	got.AdvanceSeq()
	require.Nil(t, got.Erase(AccountIndex(testAccountID(1))))

	again, err := store.LoadSnapshot(1)
	require.Nil(t, err)
	assert.Equal(t, uint32(1), again.Seq())
	assert.Equal(t, 1, again.EntryCount())
}

func TestStoreRejectsOpenLedger(t *testing.T) {
	d, err := db.New("memory", "")
	require.Nil(t, err)
	defer d.Close()

	store, err := NewStore(d)
	require.Nil(t, err)

	assert.NotNil(t, store.SaveSnapshot(NewState(1, true, DefaultFees)))
}

func TestStoreLoadMissingSnapshot(t *testing.T) {
	d, err := db.New("memory", "")
	require.Nil(t, err)
	defer d.Close()

	store, err := NewStore(d)
	require.Nil(t, err)

	_, err = store.LoadSnapshot(42)
	assert.NotNil(t, err)
}
