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

// Package node wires the storage, ledger and transaction engine into
// one runnable unit.
package node

import (
	"errors"

	"github.com/spf13/viper"

	"github.com/helioledger/go-helioledger/ledger"
)

// Config holds the node settings read from the config file.
type Config struct {
	// NetworkID names the network this node participates in.
	NetworkID string
	// DBBackend selects the registered database backend.
	DBBackend string
	// DBPath is the database file location.
	DBPath string

	// Fee schedule of ledgers this node builds.
	BaseFee          int64
	FeeUnits         uint64
	ReserveBase      int64
	ReserveIncrement int64
}

// NewConfig builds a Config from loaded viper settings, applying
// defaults for everything optional.
func NewConfig(v *viper.Viper) (*Config, error) {
	v.SetDefault("network_id", "helioledger")
	v.SetDefault("db_backend", "boltdb")
	v.SetDefault("base_fee", int64(ledger.DefaultFees.Base))
	v.SetDefault("fee_units", uint64(ledger.DefaultFees.Units))
	v.SetDefault("reserve_base", int64(ledger.DefaultFees.ReserveBase))
	v.SetDefault("reserve_increment", int64(ledger.DefaultFees.ReserveIncrement))

	conf := &Config{
		NetworkID:        v.GetString("network_id"),
		DBBackend:        v.GetString("db_backend"),
		DBPath:           v.GetString("db_path"),
		BaseFee:          v.GetInt64("base_fee"),
		FeeUnits:         uint64(v.GetInt64("fee_units")),
		ReserveBase:      v.GetInt64("reserve_base"),
		ReserveIncrement: v.GetInt64("reserve_increment"),
	}
	if conf.DBBackend != "memory" && conf.DBPath == "" {
		return nil, errors.New("db_path is required")
	}
	if conf.BaseFee <= 0 || conf.FeeUnits == 0 {
		return nil, errors.New("fee schedule must be positive")
	}
	return conf, nil
}

// Fees is the configured fee schedule.
func (c *Config) Fees() ledger.Fees {
	return ledger.Fees{
		Base:             ledger.Amount(c.BaseFee),
		Units:            ledger.FeeUnits(c.FeeUnits),
		ReserveBase:      ledger.Amount(c.ReserveBase),
		ReserveIncrement: ledger.Amount(c.ReserveIncrement),
	}
}
