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

package tx

import (
	"github.com/helioledger/go-helioledger/crypto"
)

// VerifySignatures is the pure cryptographic pass: every signature on
// the envelope must verify against the signing data. It consults no
// ledger state; authorization policy is checked separately against a
// ledger view.
func VerifySignatures(t *Tx) Result {
	if t.MultiSigned() {
		if len(t.Signers) == 0 {
			return BadSignature
		}
		for _, s := range t.Signers {
			if _, ok := crypto.PublicKeyType(s.PubKey); !ok {
				return BadSignature
			}
			if !crypto.Verify(s.PubKey, t.MultiSigningData(s.Account), s.Signature) {
				return BadSignature
			}
		}
		return Success
	}

	if _, ok := crypto.PublicKeyType(t.SigningPubKey); !ok {
		return BadSignature
	}
	if !crypto.Verify(t.SigningPubKey, t.SigningData(), t.Signature) {
		return BadSignature
	}
	return Success
}
