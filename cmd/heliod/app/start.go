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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/helioledger/go-helioledger/log"
	"github.com/helioledger/go-helioledger/node"

	_ "github.com/helioledger/go-helioledger/db/boltdb"
	_ "github.com/helioledger/go-helioledger/db/memdb"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the node with config",
	Long: `Start a helioledger node with the specified configuration. The node
restores the latest persisted ledger if one exists, or bootstraps a
fresh one.`,
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
		n, err := node.NewNode(c)
		if err != nil {
			log.Fatal(err)
		}
		defer n.Close()
		log.Infow("node started", "network", c.NetworkID, "seq", n.State().Seq())
		select {}
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
