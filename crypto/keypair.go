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
	"crypto/rand"
	"errors"
	"io"

	"golang.org/x/crypto/ed25519"
)

// Generate an account keypair with the ed25519 algorithm. Since we
// can always reconstruct the true private key from the same seed, the
// randomly generated seed acts as an equivalent private key and is
// returned as a typed base58 string.
func GenerateKeypair() ([]byte, string, error) {
	var seed [32]byte
	_, err := io.ReadFull(rand.Reader, seed[:])
	if err != nil {
		return nil, "", err
	}
	return keypairFromSeedBytes(seed[:])
}

// KeypairFromSeed reconstructs the public key of a typed seed string.
func KeypairFromSeed(seed string) ([]byte, error) {
	pk, err := getPrivateKey(seed)
	if err != nil {
		return nil, err
	}
	return serializePublicKey(pk.Public().(ed25519.PublicKey)), nil
}

func keypairFromSeedBytes(seed []byte) ([]byte, string, error) {
	if len(seed) != 32 {
		return nil, "", errors.New("invalid seed, byte length is not 32")
	}
	privateKey := ed25519.NewKeyFromSeed(seed)
	publicKey := privateKey.Public().(ed25519.PublicKey)

	var sd [32]byte
	copy(sd[:], seed)
	seedStr := EncodeKey(&TypedKey{Code: KeyTypeSeed, Hash: sd})

	return serializePublicKey(publicKey), seedStr, nil
}

func serializePublicKey(pub ed25519.PublicKey) []byte {
	out := make([]byte, 0, PublicKeySize)
	out = append(out, byte(KeyAlgoEd25519))
	out = append(out, pub...)
	return out
}

// Reconstruct the true private key from the seed. It is supposed to
// be used only in situations where data needs to be signed so that
// the authenticity can be verified with the public key.
func getPrivateKey(seed string) (ed25519.PrivateKey, error) {
	if seed == "" {
		return nil, errors.New("empty seed")
	}
	tk, err := DecodeKey(seed)
	if err != nil {
		return nil, err
	}
	if tk.Code != KeyTypeSeed {
		return nil, ErrInvalidKey
	}
	return ed25519.NewKeyFromSeed(tk.Hash[:]), nil
}

// Sign the data with the provided seed (equivalent private key).
func Sign(seed string, data []byte) ([]byte, error) {
	pk, err := getPrivateKey(seed)
	if err != nil {
		return nil, err
	}
	return ed25519.Sign(pk, data), nil
}

// Verify the data signature with the serialized public key. Keys of
// unrecognized algorithms never verify.
func Verify(pubKey []byte, data []byte, signature []byte) bool {
	algo, ok := PublicKeyType(pubKey)
	if !ok {
		return false
	}
	switch algo {
	case KeyAlgoEd25519:
		return ed25519.Verify(ed25519.PublicKey(pubKey[1:]), data, signature)
	}
	return false
}
