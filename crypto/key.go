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
	"bytes"
	"encoding/binary"
	"errors"

	b58 "github.com/mr-tron/base58/base58"
	"golang.org/x/crypto/ripemd160"
)

// KeyAlgo identifies the cryptographic algorithm of a public key.
// The algorithm is carried as the first byte of the serialized key.
type KeyAlgo uint8

const (
	// KeyAlgoEd25519 marks an ed25519 public key.
	KeyAlgoEd25519 KeyAlgo = 0xED
)

// PublicKeySize is the byte length of a serialized public key:
// one algorithm prefix byte plus 32 key bytes.
const PublicKeySize = 33

var (
	ErrInvalidKey       = errors.New("invalid key string")
	ErrInvalidAccountID = errors.New("invalid account id string")
)

// PublicKeyType reports the algorithm of a serialized public key.
// The second return is false if the key is empty, has the wrong
// length, or carries an unrecognized algorithm prefix.
func PublicKeyType(pubKey []byte) (KeyAlgo, bool) {
	if len(pubKey) != PublicKeySize {
		return 0, false
	}
	algo := KeyAlgo(pubKey[0])
	switch algo {
	case KeyAlgoEd25519:
		return algo, true
	}
	return 0, false
}

// AccountID is the 160-bit identity of a ledger account, derived
// from a public key by hashing with sha256 then ripemd160.
type AccountID [20]byte

var ZeroAccountID AccountID

func (id AccountID) IsZero() bool {
	return id == ZeroAccountID
}

func (id AccountID) String() string {
	return b58.Encode(id[:])
}

// Less reports whether id sorts before other. Signer lists and
// transaction signer arrays are ordered by this relation.
func (id AccountID) Less(other AccountID) bool {
	return bytes.Compare(id[:], other[:]) < 0
}

// DeriveAccountID computes the account id of a serialized public key.
func DeriveAccountID(pubKey []byte) AccountID {
	sha := Sum256(pubKey)
	ripe := ripemd160.New()
	ripe.Write(sha[:])
	var id AccountID
	copy(id[:], ripe.Sum(nil))
	return id
}

// DecodeAccountID decodes the base58 representation of an account id.
func DecodeAccountID(s string) (AccountID, error) {
	var id AccountID
	if s == "" {
		return id, ErrInvalidAccountID
	}
	b, err := b58.Decode(s)
	if err != nil || len(b) != len(id) {
		return id, ErrInvalidAccountID
	}
	copy(id[:], b)
	return id, nil
}

// KeyType marks the kind of material carried by a typed key string.
type KeyType uint8

const (
	_ KeyType = iota // skip zero
	KeyTypeSeed
	KeyTypeNodeID
)

// TypedKey is the internal representation of base58 typed key
// strings: a type code followed by 32 bytes of key material.
type TypedKey struct {
	Code KeyType
	Hash [32]byte
}

// EncodeKey encodes a TypedKey into its base58 string form.
func EncodeKey(key *TypedKey) string {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, key)
	return b58.Encode(buf.Bytes())
}

// DecodeKey decodes a base58 typed key string.
func DecodeKey(key string) (*TypedKey, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}
	b, err := b58.Decode(key)
	if err != nil {
		return nil, ErrInvalidKey
	}

	var tk TypedKey
	r := bytes.NewReader(b)
	err = binary.Read(r, binary.BigEndian, &tk)
	if err != nil {
		return nil, ErrInvalidKey
	}

	switch tk.Code {
	case KeyTypeSeed, KeyTypeNodeID:
		return &tk, nil
	}
	return nil, ErrInvalidKey
}
