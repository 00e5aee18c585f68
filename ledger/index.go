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
	"encoding/binary"

	"github.com/helioledger/go-helioledger/crypto"
)

// Index namespace prefixes. Every entry family hashes its identifying
// fields under a distinct prefix so indexes cannot collide across
// families.
const (
	nsAccount        = 'a'
	nsSignerList     = 's'
	nsTicket         = 't'
	nsOwnerDir       = 'd'
	nsOffer          = 'o'
	nsDepositPreauth = 'p'
	nsEscrow         = 'e'
)

func u32bytes(v uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return b[:]
}

func u64bytes(v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return b[:]
}

// AccountIndex is the index of an account root entry.
func AccountIndex(id crypto.AccountID) Index {
	return Index(crypto.SumPrefixed(nsAccount, id[:]))
}

// SignerListIndex is the index of an account's signer list. The list
// id is fixed at zero until multiple signer lists are supported.
func SignerListIndex(id crypto.AccountID) Index {
	return Index(crypto.SumPrefixed(nsSignerList, id[:], u32bytes(0)))
}

// TicketIndex is the index of the ticket created with the given
// ticket sequence.
func TicketIndex(id crypto.AccountID, ticketSeq uint32) Index {
	return Index(crypto.SumPrefixed(nsTicket, id[:], u32bytes(ticketSeq)))
}

// OwnerDirIndex is the index of the root page of an owner directory.
func OwnerDirIndex(id crypto.AccountID) Index {
	return OwnerDirPageIndex(id, 0)
}

// OwnerDirPageIndex is the index of one page of an owner directory.
func OwnerDirPageIndex(id crypto.AccountID, page uint64) Index {
	return Index(crypto.SumPrefixed(nsOwnerDir, id[:], u64bytes(page)))
}

// OfferIndex is the index of the offer created by the transaction
// with the given sequence.
func OfferIndex(id crypto.AccountID, seq uint32) Index {
	return Index(crypto.SumPrefixed(nsOffer, id[:], u32bytes(seq)))
}

// DepositPreauthIndex is the index of the preauthorization granted by
// owner to authorized.
func DepositPreauthIndex(owner, authorized crypto.AccountID) Index {
	return Index(crypto.SumPrefixed(nsDepositPreauth, owner[:], authorized[:]))
}

// EscrowIndex is the index of the escrow created by the transaction
// with the given sequence.
func EscrowIndex(id crypto.AccountID, seq uint32) Index {
	return Index(crypto.SumPrefixed(nsEscrow, id[:], u32bytes(seq)))
}
