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

package crypto

import (
	"crypto/sha256"

	b58 "github.com/mr-tron/base58/base58"
)

// Hash is a 256-bit digest used for transaction ids and ledger
// entry indexes.
type Hash [32]byte

var ZeroHash Hash

func (h Hash) IsZero() bool {
	return h == ZeroHash
}

func (h Hash) String() string {
	return b58.Encode(h[:])
}

// Sum256 computes the sha256 digest of the input.
func Sum256(b []byte) Hash {
	return sha256.Sum256(b)
}

// SumPrefixed computes the sha256 digest of the inputs prepended
// with a namespace prefix. Distinct prefixes keep digests of
// different object families from colliding.
func SumPrefixed(prefix byte, chunks ...[]byte) Hash {
	hasher := sha256.New()
	hasher.Write([]byte{prefix})
	for _, c := range chunks {
		hasher.Write(c)
	}
	var h Hash
	copy(h[:], hasher.Sum(nil))
	return h
}
