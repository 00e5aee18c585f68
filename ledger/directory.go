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

// DirPageCap is the maximum number of indexes one directory page holds.
const DirPageCap = 32

func peekDirPage(v ApplyView, owner crypto.AccountID, page uint64) *DirectoryNode {
	e := v.Peek(OwnerDirPageIndex(owner, page))
	if e == nil {
		return nil
	}
	node, ok := e.(*DirectoryNode)
	if !ok {
		return nil
	}
	return node
}

// DirInsert adds an entry index to the owner's directory, creating
// the directory or a new page as needed. It returns the page number
// holding the index, which owned entries keep as a removal hint.
func DirInsert(v ApplyView, owner crypto.AccountID, idx Index) (uint64, error) {
	root := peekDirPage(v, owner, 0)
	if root == nil {
		root = &DirectoryNode{Owner: owner, Page: 0, Indexes: []Index{idx}}
		if err := v.Insert(root); err != nil {
			return 0, err
		}
		return 0, nil
	}

	lastPage := root.IndexPrevious
	last := root
	if lastPage != 0 {
		last = peekDirPage(v, owner, lastPage)
		if last == nil {
			return 0, ErrEntryNotFound
		}
	}

	if len(last.Indexes) < DirPageCap {
		last.Indexes = append(last.Indexes, idx)
		if err := v.Update(last); err != nil {
			return 0, err
		}
		return lastPage, nil
	}

	// The last page is full; link a fresh one after it.
	newPage := lastPage + 1
	node := &DirectoryNode{
		Owner:         owner,
		Page:          newPage,
		Indexes:       []Index{idx},
		IndexPrevious: lastPage,
	}
	last.IndexNext = newPage
	if lastPage == 0 {
		// The last page is the root; record the new tail on the same
		// peeked copy before writing it back.
		last.IndexPrevious = newPage
		if err := v.Update(last); err != nil {
			return 0, err
		}
	} else {
		if err := v.Update(last); err != nil {
			return 0, err
		}
		root.IndexPrevious = newPage
		if err := v.Update(root); err != nil {
			return 0, err
		}
	}
	if err := v.Insert(node); err != nil {
		return 0, err
	}
	return newPage, nil
}

// DirRemove removes an entry index from the given page of the
// owner's directory, unlinking the page when it empties. The root
// page is erased only when the whole directory is empty and keepRoot
// is false. It reports whether the index was found and removed.
func DirRemove(v ApplyView, owner crypto.AccountID, page uint64, idx Index, keepRoot bool) bool {
	node := peekDirPage(v, owner, page)
	if node == nil {
		return false
	}

	found := -1
	for i, candidate := range node.Indexes {
		if candidate == idx {
			found = i
			break
		}
	}
	if found < 0 {
		return false
	}
	node.Indexes = append(node.Indexes[:found], node.Indexes[found+1:]...)

	if len(node.Indexes) > 0 {
		return v.Update(node) == nil
	}

	if page == 0 {
		if !keepRoot && node.IndexNext == 0 {
			return v.Erase(node.Index()) == nil
		}
		return v.Update(node) == nil
	}

	// Unlink the emptied page.
	prev, next := node.IndexPrevious, node.IndexNext
	prevNode := peekDirPage(v, owner, prev)
	if prevNode == nil {
		return false
	}
	prevNode.IndexNext = next
	if next != 0 {
		nextNode := peekDirPage(v, owner, next)
		if nextNode == nil {
			return false
		}
		nextNode.IndexPrevious = prev
		if v.Update(nextNode) != nil {
			return false
		}
		if v.Update(prevNode) != nil {
			return false
		}
	} else {
		// The removed page was the tail; the root tracks the new one.
		if prev == 0 {
			prevNode.IndexPrevious = 0
			if v.Update(prevNode) != nil {
				return false
			}
		} else {
			if v.Update(prevNode) != nil {
				return false
			}
			root := peekDirPage(v, owner, 0)
			if root == nil {
				return false
			}
			root.IndexPrevious = prev
			if v.Update(root) != nil {
				return false
			}
		}
	}
	return v.Erase(node.Index()) == nil
}

// DirIsEmpty reports whether the owner's directory holds no entries.
func DirIsEmpty(v View, owner crypto.AccountID) bool {
	e := v.Read(OwnerDirIndex(owner))
	if e == nil {
		return true
	}
	root, ok := e.(*DirectoryNode)
	if !ok {
		return true
	}
	return len(root.Indexes) == 0 && root.IndexNext == 0
}

// EmptyDirDelete erases the owner's directory root if the directory
// is empty. It returns false if entries remain.
func EmptyDirDelete(v ApplyView, owner crypto.AccountID) bool {
	root := peekDirPage(v, owner, 0)
	if root == nil {
		return true
	}
	if len(root.Indexes) > 0 || root.IndexNext != 0 {
		return false
	}
	return v.Erase(root.Index()) == nil
}

// DirPageIter walks the pages of an owner directory front to back.
// Pages may shrink or vanish while iterating (entry deleters unlink
// emptied pages); Page rereads the current page on every call so the
// caller always observes the live list.
type DirPageIter struct {
	view  ApplyView
	owner crypto.AccountID
	page  uint64
	next  uint64
	done  bool
}

// NewDirPageIter positions an iterator on the root page of the
// owner's directory.
func NewDirPageIter(v ApplyView, owner crypto.AccountID) *DirPageIter {
	it := &DirPageIter{view: v, owner: owner}
	root := peekDirPage(v, owner, 0)
	if root == nil {
		it.done = true
		return it
	}
	it.next = root.IndexNext
	return it
}

func (it *DirPageIter) Done() bool {
	return it.done
}

// Page returns a fresh mutable copy of the current page, or nil if
// the page has been deleted since the iterator reached it.
func (it *DirPageIter) Page() *DirectoryNode {
	if it.done {
		return nil
	}
	return peekDirPage(it.view, it.owner, it.page)
}

// Next advances to the following page.
func (it *DirPageIter) Next() {
	if it.done {
		return
	}
	next := it.next
	if node := peekDirPage(it.view, it.owner, it.page); node != nil {
		next = node.IndexNext
	}
	if next == 0 {
		it.done = true
		return
	}
	it.page = next
	it.next = 0
	if node := peekDirPage(it.view, it.owner, it.page); node != nil {
		it.next = node.IndexNext
	}
}

// OwnerRootIndex is the index of the iterator's directory root.
func (it *DirPageIter) OwnerRootIndex() Index {
	return OwnerDirIndex(it.owner)
}
