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
	"github.com/helioledger/go-helioledger/account"
	"github.com/helioledger/go-helioledger/crypto"
	"github.com/helioledger/go-helioledger/ledger"
)

// checkSign is the authorization policy pass: given a transaction
// whose signatures already verified cryptographically, decide whether
// the signers may act for the source account. Pure decision function,
// no mutation.
func checkSign(v ledger.View, t *Tx) Result {
	if t.MultiSigned() {
		return checkMultiSign(v, t)
	}
	return checkSingleSign(v, t)
}

func checkSingleSign(v ledger.View, t *Tx) Result {
	if _, ok := crypto.PublicKeyType(t.SigningPubKey); !ok {
		return BadSignature
	}
	signerID := crypto.DeriveAccountID(t.SigningPubKey)

	source, err := account.Read(v, t.Account)
	if err != nil {
		return AccountNotFound
	}

	if signerID == t.Account {
		if source.HasFlag(account.FlagDisableMaster) {
			return MasterKeyDisabled
		}
		return Success
	}

	regular, ok := source.RegularKey()
	if !ok {
		return NoAuthMethod
	}
	if regular != signerID {
		return NotAuthorized
	}
	return Success
}

func checkMultiSign(v ledger.View, t *Tx) Result {
	list := readSignerList(v, t.Account)
	if list == nil {
		return NotMultiSigningAccount
	}
	if r := checkSignersSorted(t.Signers); !r.IsSuccess() {
		return r
	}

	// Both lists are sorted ascending, so one lockstep walk matches
	// every transaction signer against the registered entries.
	var weightSum uint64
	cursor := 0
	for _, s := range t.Signers {
		for cursor < len(list.Entries) && list.Entries[cursor].Account.Less(s.Account) {
			cursor++
		}
		if cursor >= len(list.Entries) || list.Entries[cursor].Account != s.Account {
			return SignerNotInList
		}
		entry := list.Entries[cursor]
		cursor++

		derived := crypto.DeriveAccountID(s.PubKey)
		if derived == s.Account {
			// Signing with the signer's own master key. A signer with
			// no ledger record (a phantom) is accepted; a funded
			// signer must not have its master key disabled.
			signerAcct, err := account.Read(v, s.Account)
			if err == nil && signerAcct.HasFlag(account.FlagDisableMaster) {
				return MasterKeyDisabled
			}
		} else {
			// Signing with a regular key, which requires a funded
			// signer account with that key configured.
			signerAcct, err := account.Read(v, s.Account)
			if err != nil {
				return SignerNotInList
			}
			regular, ok := signerAcct.RegularKey()
			if !ok || regular != derived {
				return SignerNotInList
			}
		}

		weightSum += uint64(entry.Weight)
	}

	if weightSum < uint64(list.Quorum) {
		return QuorumNotMet
	}
	return Success
}
