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

package app

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/helioledger/go-helioledger/db"
	"github.com/helioledger/go-helioledger/ledger"
	"github.com/helioledger/go-helioledger/log"
	"github.com/helioledger/go-helioledger/node"

	_ "github.com/helioledger/go-helioledger/db/boltdb"
	_ "github.com/helioledger/go-helioledger/db/memdb"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the latest persisted ledger summary",
	Run: func(cmd *cobra.Command, args []string) {
		if cfgFile == "" {
			log.Fatal(errors.New("config file not provided"))
		}
		v := viper.New()
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			log.Fatal(err)
		}
		c, err := node.NewConfig(v)
		if err != nil {
			log.Fatal(err)
		}

		database, err := db.New(c.DBBackend, c.DBPath)
		if err != nil {
			log.Fatal(err)
		}
		defer database.Close()

		store, err := ledger.NewStore(database)
		if err != nil {
			log.Fatal(err)
		}
		head, err := store.HeadSeq()
		if err != nil {
			log.Fatal(err)
		}
		if head == 0 {
			fmt.Println("no persisted ledger")
			return
		}
		state, err := store.LoadSnapshot(head)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("ledger seq:   %d\n", state.Seq())
		fmt.Printf("entries:      %d\n", state.EntryCount())
		fmt.Printf("total drops:  %d\n", state.TotalDrops())
		fmt.Printf("base fee:     %d\n", state.Fees().Base)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
