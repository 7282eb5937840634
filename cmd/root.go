// Copyright 2020 Silvio Böhler
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

// Package cmd is the main command file for Cobra
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sboehler/kasse/cmd/commands"
	"github.com/sboehler/kasse/cmd/completion"
	"github.com/sboehler/kasse/cmd/flags"
)

// CreateCmd creates the root command. Without a subcommand, it runs the
// interactive menu.
func CreateCmd() *cobra.Command {
	var gf flags.GlobalFlags
	menu := commands.CreateMenuCommand(&gf)
	c := &cobra.Command{
		Use:   "kasse",
		Short: "kasse is a small account ledger",
		Long:  `kasse keeps account numbers, holder names and balances in a SQL database.`,

		Args: cobra.NoArgs,

		RunE: menu.RunE,

		SilenceErrors: true,
		SilenceUsage:  true,
	}
	gf.Setup(c)
	c.AddCommand(
		menu,
		commands.CreateInitCommand(&gf),
		commands.CreateNewAccountCommand(&gf),
		commands.CreateListCommand(&gf),
		commands.CreateDepositCommand(&gf),
		commands.CreateWithdrawCommand(&gf),
		commands.CreateUpdateCommand(&gf),
		commands.CreateDeleteCommand(&gf),
		commands.CreateExportCommand(&gf),
		commands.CreateImportCommand(&gf),
		completion.CreateCmd(c),
	)
	return c
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	c := CreateCmd()
	if err := c.Execute(); err != nil {
		fmt.Fprintln(c.ErrOrStderr(), err)
		os.Exit(1)
	}
}
