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

// Package exchange holds order-book helpers. The matching engine is
// out of scope for this node; what remains is offer lifecycle
// management used by the transaction engine when sweeping or
// cascading deletions.
package exchange

import (
	"fmt"

	"github.com/helioledger/go-helioledger/account"
	"github.com/helioledger/go-helioledger/ledger"
	"github.com/helioledger/go-helioledger/log"
)

// DeleteOffer removes an offer from the ledger: the entry itself, its
// owner directory slot and the reserve it held.
func DeleteOffer(v ledger.ApplyView, offer *ledger.Offer) error {
	if !ledger.DirRemove(v, offer.Account, offer.OwnerPage, offer.Index(), true) {
		return fmt.Errorf("offer %s not in owner directory page %d", offer.Index(), offer.OwnerPage)
	}
	if err := v.Erase(offer.Index()); err != nil {
		return fmt.Errorf("erase offer failed: %v", err)
	}
	owner, err := account.Edit(v, offer.Account)
	if err != nil {
		return fmt.Errorf("edit offer owner failed: %v", err)
	}
	owner.AdjustOwnerCount(-1)
	if err := owner.Flush(); err != nil {
		return fmt.Errorf("update offer owner failed: %v", err)
	}
	log.Debugw("deleted offer", "account", offer.Account.String(), "seq", offer.Sequence)
	return nil
}

// IsUnfunded reports whether the offer can no longer deliver what it
// promises given its owner's spendable balance.
func IsUnfunded(v ledger.View, offer *ledger.Offer) bool {
	owner, err := account.Read(v, offer.Account)
	if err != nil {
		return true
	}
	reserve := v.Fees().AccountReserve(owner.OwnerCount())
	spendable := owner.Balance() - reserve
	return spendable < offer.TakerGets
}
