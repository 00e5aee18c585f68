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

package node

import (
	"fmt"

	"github.com/helioledger/go-helioledger/db"
	"github.com/helioledger/go-helioledger/ledger"
	"github.com/helioledger/go-helioledger/log"
	"github.com/helioledger/go-helioledger/tx"
)

// Node owns the open ledger and runs transactions against it. One
// goroutine drives a node; the queue is the only concurrent-safe
// surface.
type Node struct {
	config   *Config
	database db.Database
	store    *ledger.Store
	state    *ledger.State
	engine   *tx.Engine
	tracker  *tx.LoadTracker
	queue    *tx.Queue
}

// NewNode opens the database and restores the latest persisted
// ledger, or bootstraps a fresh one.
func NewNode(conf *Config) (*Node, error) {
	database, err := db.New(conf.DBBackend, conf.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database failed: %v", err)
	}
	store, err := ledger.NewStore(database)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("create ledger store failed: %v", err)
	}

	var state *ledger.State
	head, err := store.HeadSeq()
	if err != nil {
		database.Close()
		return nil, err
	}
	if head == 0 {
		state = ledger.NewState(1, true, conf.Fees())
		log.Infow("bootstrapped fresh ledger", "network", conf.NetworkID)
	} else {
		closed, err := store.LoadSnapshot(head)
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("restore ledger %d failed: %v", head, err)
		}
		state = closed
		state.SetOpen(true)
		state.AdvanceSeq()
		log.Infow("restored ledger", "network", conf.NetworkID, "seq", head)
	}

	tracker := tx.NewLoadTracker()
	return &Node{
		config:   conf,
		database: database,
		store:    store,
		state:    state,
		engine:   tx.NewEngine(tx.DefaultRules, tracker),
		tracker:  tracker,
		queue:    tx.NewQueue(),
	}, nil
}

// Submit queues a transaction and immediately runs it against the
// open ledger.
func (n *Node) Submit(t *tx.Tx) (tx.Result, bool) {
	if r := n.queue.Add(n.state, t); !r.IsSuccess() {
		return r, false
	}
	res, applied := n.engine.Apply(n.state, t)
	if applied || !res.IsRetry() {
		// Retry-class outcomes stay queued for the next ledger.
		n.queue.Remove(t)
	}
	return res, applied
}

// CloseLedger seals the open ledger, persists it and opens the next
// one.
func (n *Node) CloseLedger() error {
	n.state.SetOpen(false)
	if err := n.store.SaveSnapshot(n.state); err != nil {
		n.state.SetOpen(true)
		return fmt.Errorf("persist closed ledger failed: %v", err)
	}
	seq := n.state.Seq()
	n.state.SetOpen(true)
	n.state.AdvanceSeq()
	log.Infow("closed ledger", "seq", seq, "entries", n.state.EntryCount())
	return nil
}

// State exposes the open ledger, for read paths and tests.
func (n *Node) State() *ledger.State {
	return n.state
}

// Store exposes the snapshot store.
func (n *Node) Store() *ledger.Store {
	return n.store
}

// Close releases the database.
func (n *Node) Close() error {
	return n.database.Close()
}
