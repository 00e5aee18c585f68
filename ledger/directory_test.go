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
)

func testIndex(n int) Index {
	var idx Index
	idx[0] = byte(n >> 8)
	idx[1] = byte(n)
	idx[31] = 0x7f
	return idx
}

func TestDirInsertFillsPages(t *testing.T) {
	state := NewState(1, true, DefaultFees)
	owner := testAccountID(1)

	for i := 0; i < DirPageCap; i++ {
		page, err := DirInsert(state, owner, testIndex(i))
		require.Nil(t, err)
		assert.Equal(t, uint64(0), page)
	}

	// Entry 33 spills onto a second page.
	page, err := DirInsert(state, owner, testIndex(DirPageCap))
	require.Nil(t, err)
	assert.Equal(t, uint64(1), page)

	root := state.Read(OwnerDirIndex(owner)).(*DirectoryNode)
	assert.Len(t, root.Indexes, DirPageCap)
	assert.Equal(t, uint64(1), root.IndexNext)
	assert.Equal(t, uint64(1), root.IndexPrevious)

	second := state.Read(OwnerDirPageIndex(owner, 1)).(*DirectoryNode)
	assert.Len(t, second.Indexes, 1)
	assert.Equal(t, uint64(0), second.IndexNext)
	assert.Equal(t, uint64(0), second.IndexPrevious)
}

func TestDirRemoveUnlinksEmptyPage(t *testing.T) {
	state := NewState(1, true, DefaultFees)
	owner := testAccountID(1)

	for i := 0; i < 3*DirPageCap; i++ {
		_, err := DirInsert(state, owner, testIndex(i))
		require.Nil(t, err)
	}

	// Empty out the middle page.
	for i := DirPageCap; i < 2*DirPageCap; i++ {
		assert.True(t, DirRemove(state, owner, 1, testIndex(i), true))
	}
	assert.False(t, state.Exists(OwnerDirPageIndex(owner, 1)))

	root := state.Read(OwnerDirIndex(owner)).(*DirectoryNode)
	assert.Equal(t, uint64(2), root.IndexNext)
	assert.Equal(t, uint64(2), root.IndexPrevious)
	third := state.Read(OwnerDirPageIndex(owner, 2)).(*DirectoryNode)
	assert.Equal(t, uint64(0), third.IndexPrevious)
}

func TestDirRemoveTailPageUpdatesRoot(t *testing.T) {
	state := NewState(1, true, DefaultFees)
	owner := testAccountID(1)

	for i := 0; i < 2*DirPageCap; i++ {
		_, err := DirInsert(state, owner, testIndex(i))
		require.Nil(t, err)
	}

	for i := DirPageCap; i < 2*DirPageCap; i++ {
		assert.True(t, DirRemove(state, owner, 1, testIndex(i), true))
	}
	assert.False(t, state.Exists(OwnerDirPageIndex(owner, 1)))

	root := state.Read(OwnerDirIndex(owner)).(*DirectoryNode)
	assert.Equal(t, uint64(0), root.IndexNext)
	assert.Equal(t, uint64(0), root.IndexPrevious)

	// The root page is still full, so the next insert spills again.
	page, err := DirInsert(state, owner, testIndex(1000))
	require.Nil(t, err)
	assert.Equal(t, uint64(1), page)

	// With a root slot free, the insert lands back on the root page.
	assert.True(t, DirRemove(state, owner, 1, testIndex(1000), true))
	assert.True(t, DirRemove(state, owner, 0, testIndex(0), true))
	page, err = DirInsert(state, owner, testIndex(1001))
	require.Nil(t, err)
	assert.Equal(t, uint64(0), page)
}

func TestDirRemoveRoot(t *testing.T) {
	state := NewState(1, true, DefaultFees)
	owner := testAccountID(1)

	_, err := DirInsert(state, owner, testIndex(0))
	require.Nil(t, err)

	// keepRoot preserves an empty root page.
	assert.True(t, DirRemove(state, owner, 0, testIndex(0), true))
	assert.True(t, state.Exists(OwnerDirIndex(owner)))
	assert.True(t, DirIsEmpty(state, owner))

	_, err = DirInsert(state, owner, testIndex(1))
	require.Nil(t, err)
	assert.True(t, DirRemove(state, owner, 0, testIndex(1), false))
	assert.False(t, state.Exists(OwnerDirIndex(owner)))
}

func TestDirRemoveMissing(t *testing.T) {
	state := NewState(1, true, DefaultFees)
	owner := testAccountID(1)

	assert.False(t, DirRemove(state, owner, 0, testIndex(0), true))

	_, err := DirInsert(state, owner, testIndex(0))
	require.Nil(t, err)
	assert.False(t, DirRemove(state, owner, 0, testIndex(9), true))
	assert.False(t, DirRemove(state, owner, 7, testIndex(0), true))
}

func TestEmptyDirDelete(t *testing.T) {
	state := NewState(1, true, DefaultFees)
	owner := testAccountID(1)

	assert.True(t, EmptyDirDelete(state, owner))

	_, err := DirInsert(state, owner, testIndex(0))
	require.Nil(t, err)
	assert.False(t, EmptyDirDelete(state, owner))

	assert.True(t, DirRemove(state, owner, 0, testIndex(0), true))
	assert.True(t, EmptyDirDelete(state, owner))
	assert.False(t, state.Exists(OwnerDirIndex(owner)))
}

func TestDirPageIterWalksAllPages(t *testing.T) {
	state := NewState(1, true, DefaultFees)
	owner := testAccountID(1)

	total := 2*DirPageCap + 5
	for i := 0; i < total; i++ {
		_, err := DirInsert(state, owner, testIndex(i))
		require.Nil(t, err)
	}

	count := 0
	for it := NewDirPageIter(state, owner); !it.Done(); it.Next() {
		page := it.Page()
		require.NotNil(t, page)
		count += len(page.Indexes)
	}
	assert.Equal(t, total, count)
}

func TestDirPageIterSurvivesPageDeletion(t *testing.T) {
	state := NewState(1, true, DefaultFees)
	owner := testAccountID(1)

	total := 3 * DirPageCap
	for i := 0; i < total; i++ {
		_, err := DirInsert(state, owner, testIndex(i))
		require.Nil(t, err)
	}

	// Drain each page through the iterator the way account deletion
	// does: remove index zero until the page is gone.
	removed := 0
	for it := NewDirPageIter(state, owner); !it.Done(); it.Next() {
		for {
			page := it.Page()
			if page == nil || len(page.Indexes) == 0 {
				break
			}
			assert.True(t, DirRemove(state, owner, page.Page, page.Indexes[0], true))
			removed++
		}
	}
	assert.Equal(t, total, removed)
	assert.True(t, DirIsEmpty(state, owner))
}
