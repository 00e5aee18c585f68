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

// Package tx implements the transaction protocol: the envelope,
// authorization checking, the fee and sequence gate, per-type
// transactors and the apply engine.
package tx

import (
	"bytes"
	"encoding/binary"

	"github.com/helioledger/go-helioledger/crypto"
	"github.com/helioledger/go-helioledger/ledger"
)

// TxType discriminates transaction kinds.
type TxType uint16

const (
	TypePayment TxType = iota + 1
	TypeSetRegularKey
	TypeSignerListSet
	TypeTicketCreate
	TypeDepositPreauth
	TypeAccountDelete
)

func (t TxType) String() string {
	switch t {
	case TypePayment:
		return "Payment"
	case TypeSetRegularKey:
		return "SetRegularKey"
	case TypeSignerListSet:
		return "SignerListSet"
	case TypeTicketCreate:
		return "TicketCreate"
	case TypeDepositPreauth:
		return "DepositPreauth"
	case TypeAccountDelete:
		return "AccountDelete"
	}
	return "Unknown"
}

// SeqProxy is the sequence-or-ticket slot of a transaction. A
// transaction consumes either the account's next sequence number or
// one previously created ticket.
type SeqProxy struct {
	Value  uint32
	Ticket bool
}

// Seq builds a sequence proxy.
func Seq(v uint32) SeqProxy {
	return SeqProxy{Value: v}
}

// TicketSeq builds a ticket proxy.
func TicketSeq(v uint32) SeqProxy {
	return SeqProxy{Value: v, Ticket: true}
}

// Signer is one signature tuple of a multi-signed transaction.
type Signer struct {
	Account   crypto.AccountID
	PubKey    []byte
	Signature []byte
}

// PaymentFields is the payload of a Payment transaction.
type PaymentFields struct {
	Destination    crypto.AccountID
	DestinationTag *uint32
	Amount         ledger.Amount
}

// SetRegularKeyFields is the payload of a SetRegularKey transaction.
// A nil RegularKey clears the key.
type SetRegularKeyFields struct {
	RegularKey *crypto.AccountID
}

// SignerListSetFields is the payload of a SignerListSet transaction.
// Quorum zero with no entries deletes the list.
type SignerListSetFields struct {
	Quorum  uint32
	Entries []ledger.SignerEntry
}

// TicketCreateFields is the payload of a TicketCreate transaction.
type TicketCreateFields struct {
	Count uint32
}

// DepositPreauthFields is the payload of a DepositPreauth
// transaction. Exactly one of the two fields must be set.
type DepositPreauthFields struct {
	Authorize   *crypto.AccountID
	Unauthorize *crypto.AccountID
}

// AccountDeleteFields is the payload of an AccountDelete transaction.
type AccountDeleteFields struct {
	Destination    crypto.AccountID
	DestinationTag *uint32
}

// Tx is a submitted transaction. An empty SigningPubKey marks the
// multi-sign path, in which case Signers carries the signature
// tuples. Exactly one payload field matching Type is set.
type Tx struct {
	Type    TxType
	Account crypto.AccountID
	Fee     ledger.Amount
	Seq     SeqProxy
	Flags   uint32

	SigningPubKey []byte
	Signature     []byte
	Signers       []Signer

	// AccountTxnID, when set, requires the account's last applied
	// transaction to match it.
	AccountTxnID *crypto.Hash
	// LastLedgerSeq, when set, is the last ledger sequence in which
	// the transaction may be applied.
	LastLedgerSeq *uint32

	Payment        *PaymentFields
	SetRegularKey  *SetRegularKeyFields
	SignerListSet  *SignerListSetFields
	TicketCreate   *TicketCreateFields
	DepositPreauth *DepositPreauthFields
	AccountDelete  *AccountDeleteFields
}

const (
	signingPrefix = 'X'
	txIDPrefix    = 'T'
)

type txWriter struct {
	buf bytes.Buffer
}

func (w *txWriter) u8(v uint8)   { w.buf.WriteByte(v) }
func (w *txWriter) u16(v uint16) { binary.Write(&w.buf, binary.BigEndian, v) }
func (w *txWriter) u32(v uint32) { binary.Write(&w.buf, binary.BigEndian, v) }
func (w *txWriter) i64(v int64)  { binary.Write(&w.buf, binary.BigEndian, v) }

func (w *txWriter) account(id crypto.AccountID) { w.buf.Write(id[:]) }

func (w *txWriter) blob(b []byte) {
	w.u16(uint16(len(b)))
	w.buf.Write(b)
}

func (w *txWriter) optU32(v *uint32) {
	if v == nil {
		w.u8(0)
		return
	}
	w.u8(1)
	w.u32(*v)
}

func (w *txWriter) optAccount(id *crypto.AccountID) {
	if id == nil {
		w.u8(0)
		return
	}
	w.u8(1)
	w.account(*id)
}

func (w *txWriter) optHash(h *crypto.Hash) {
	if h == nil {
		w.u8(0)
		return
	}
	w.u8(1)
	w.buf.Write(h[:])
}

// encodeCommon writes every field that is covered by signatures:
// everything except the signatures themselves.
func (tx *Tx) encodeCommon(w *txWriter) {
	w.u16(uint16(tx.Type))
	w.account(tx.Account)
	w.i64(int64(tx.Fee))
	if tx.Seq.Ticket {
		w.u8(1)
	} else {
		w.u8(0)
	}
	w.u32(tx.Seq.Value)
	w.u32(tx.Flags)
	w.blob(tx.SigningPubKey)
	w.optHash(tx.AccountTxnID)
	w.optU32(tx.LastLedgerSeq)

	switch tx.Type {
	case TypePayment:
		if tx.Payment != nil {
			w.account(tx.Payment.Destination)
			w.optU32(tx.Payment.DestinationTag)
			w.i64(int64(tx.Payment.Amount))
		}
	case TypeSetRegularKey:
		if tx.SetRegularKey != nil {
			w.optAccount(tx.SetRegularKey.RegularKey)
		}
	case TypeSignerListSet:
		if tx.SignerListSet != nil {
			w.u32(tx.SignerListSet.Quorum)
			w.u16(uint16(len(tx.SignerListSet.Entries)))
			for _, e := range tx.SignerListSet.Entries {
				w.account(e.Account)
				w.u16(e.Weight)
			}
		}
	case TypeTicketCreate:
		if tx.TicketCreate != nil {
			w.u32(tx.TicketCreate.Count)
		}
	case TypeDepositPreauth:
		if tx.DepositPreauth != nil {
			w.optAccount(tx.DepositPreauth.Authorize)
			w.optAccount(tx.DepositPreauth.Unauthorize)
		}
	case TypeAccountDelete:
		if tx.AccountDelete != nil {
			w.account(tx.AccountDelete.Destination)
			w.optU32(tx.AccountDelete.DestinationTag)
		}
	}
}

// SigningData is the byte string the single signature covers.
func (tx *Tx) SigningData() []byte {
	w := &txWriter{}
	w.u8(signingPrefix)
	tx.encodeCommon(w)
	return w.buf.Bytes()
}

// MultiSigningData is the byte string one co-signer's signature
// covers: the common signing data suffixed with the signer's own
// account, so signatures cannot be transplanted between signers.
func (tx *Tx) MultiSigningData(signer crypto.AccountID) []byte {
	data := tx.SigningData()
	return append(data, signer[:]...)
}

// ID is the unique hash of the transaction including signatures.
func (tx *Tx) ID() crypto.Hash {
	w := &txWriter{}
	w.u8(txIDPrefix)
	tx.encodeCommon(w)
	w.blob(tx.Signature)
	w.u16(uint16(len(tx.Signers)))
	for _, s := range tx.Signers {
		w.account(s.Account)
		w.blob(s.PubKey)
		w.blob(s.Signature)
	}
	return crypto.Sum256(w.buf.Bytes())
}

// SignWith single-signs the transaction with the seed and records the
// public key and signature on the envelope.
func (tx *Tx) SignWith(seed string) error {
	pubKey, err := crypto.KeypairFromSeed(seed)
	if err != nil {
		return err
	}
	tx.SigningPubKey = pubKey
	sig, err := crypto.Sign(seed, tx.SigningData())
	if err != nil {
		return err
	}
	tx.Signature = sig
	return nil
}

// MultiSignWith appends one co-signer tuple, signing on behalf of the
// given signer account. Callers must keep Signers sorted ascending by
// account, matching the format rule checked at verification.
func (tx *Tx) MultiSignWith(signer crypto.AccountID, seed string) error {
	pubKey, err := crypto.KeypairFromSeed(seed)
	if err != nil {
		return err
	}
	sig, err := crypto.Sign(seed, tx.MultiSigningData(signer))
	if err != nil {
		return err
	}
	tx.Signers = append(tx.Signers, Signer{
		Account:   signer,
		PubKey:    pubKey,
		Signature: sig,
	})
	return nil
}

// MultiSigned reports whether the envelope takes the multi-sign path.
func (tx *Tx) MultiSigned() bool {
	return len(tx.SigningPubKey) == 0
}
