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
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/helioledger/go-helioledger/account"
	"github.com/helioledger/go-helioledger/crypto"
	"github.com/helioledger/go-helioledger/ledger"
)

// actor is one keypair plus its derived account id.
type actor struct {
	seed string
	pub  []byte
	id   crypto.AccountID
}

func newActor(t *testing.T) *actor {
	t.Helper()
	pub, seed, err := crypto.GenerateKeypair()
	require.Nil(t, err)
	return &actor{seed: seed, pub: pub, id: crypto.DeriveAccountID(pub)}
}

// newActors generates n actors sorted ascending by account id.
func newActors(t *testing.T, n int) []*actor {
	t.Helper()
	actors := make([]*actor, n)
	for i := range actors {
		actors[i] = newActor(t)
	}
	sort.Slice(actors, func(i, j int) bool {
		return actors[i].id.Less(actors[j].id)
	})
	return actors
}

func fund(t *testing.T, v ledger.ApplyView, a *actor, balance ledger.Amount, seq uint32) {
	t.Helper()
	_, err := account.Create(v, a.id, balance, seq)
	require.Nil(t, err)
}

func readAccount(t *testing.T, v ledger.View, id crypto.AccountID) *account.View {
	t.Helper()
	acc, err := account.Read(v, id)
	require.Nil(t, err)
	return acc
}

func payment(from *actor, to crypto.AccountID, amount ledger.Amount, seq uint32, fee ledger.Amount) *Tx {
	return &Tx{
		Type:    TypePayment,
		Account: from.id,
		Fee:     fee,
		Seq:     Seq(seq),
		Payment: &PaymentFields{Destination: to, Amount: amount},
	}
}

func signedPayment(t *testing.T, from *actor, to crypto.AccountID, amount ledger.Amount, seq uint32, fee ledger.Amount) *Tx {
	t.Helper()
	p := payment(from, to, amount, seq, fee)
	require.Nil(t, p.SignWith(from.seed))
	return p
}

// installSignerList writes a signer list for the owner directly into
// the view, including the directory slot and reserve unit.
func installSignerList(t *testing.T, v ledger.ApplyView, owner crypto.AccountID, quorum uint32, entries []ledger.SignerEntry) {
	t.Helper()
	list := &ledger.SignerList{Account: owner, Quorum: quorum, Entries: entries}
	page, err := ledger.DirInsert(v, owner, list.Index())
	require.Nil(t, err)
	list.OwnerPage = page
	require.Nil(t, v.Insert(list))

	ed, err := account.Edit(v, owner)
	require.Nil(t, err)
	ed.AdjustOwnerCount(1)
	require.Nil(t, ed.Flush())
}

// installOffer writes an offer owned by the account directly into the
// view.
func installOffer(t *testing.T, v ledger.ApplyView, owner crypto.AccountID, seq uint32, pays, gets ledger.Amount) *ledger.Offer {
	t.Helper()
	offer := &ledger.Offer{Account: owner, Sequence: seq, TakerPays: pays, TakerGets: gets}
	page, err := ledger.DirInsert(v, owner, offer.Index())
	require.Nil(t, err)
	offer.OwnerPage = page
	require.Nil(t, v.Insert(offer))

	ed, err := account.Edit(v, owner)
	require.Nil(t, err)
	ed.AdjustOwnerCount(1)
	require.Nil(t, ed.Flush())
	return offer
}

// installTicket writes a ticket owned by the account directly into
// the view and bumps the ticket counter.
func installTicket(t *testing.T, v ledger.ApplyView, owner crypto.AccountID, ticketSeq uint32) {
	t.Helper()
	ticket := &ledger.Ticket{Account: owner, TicketSequence: ticketSeq}
	page, err := ledger.DirInsert(v, owner, ticket.Index())
	require.Nil(t, err)
	ticket.OwnerPage = page
	require.Nil(t, v.Insert(ticket))

	ed, err := account.Edit(v, owner)
	require.Nil(t, err)
	ed.SetTicketCount(ed.TicketCount() + 1)
	ed.AdjustOwnerCount(1)
	require.Nil(t, ed.Flush())
}
