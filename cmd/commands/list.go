// Copyright 2021 Silvio Böhler
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

package commands

import (
	"bufio"

	"github.com/spf13/cobra"

	"github.com/sboehler/kasse/cmd/flags"
	"github.com/sboehler/kasse/lib/account"
	"github.com/sboehler/kasse/lib/common/table"
)

// CreateListCommand creates the command.
func CreateListCommand(gf *flags.GlobalFlags) *cobra.Command {
	r := listRunner{global: gf}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "list all accounts",
		Long:  `List all accounts in storage order.`,

		Args: cobra.NoArgs,

		RunE: r.run,
	}
	r.setupFlags(cmd)
	return cmd
}

type listRunner struct {
	global *flags.GlobalFlags
	csv    bool
	color  bool
}

func (r *listRunner) setupFlags(c *cobra.Command) {
	c.Flags().BoolVar(&r.csv, "csv", false, "render the listing as CSV")
	c.Flags().BoolVar(&r.color, "color", false, "print balances in color")
	c.MarkFlagsMutuallyExclusive("csv", "color")
}

func (r *listRunner) run(cmd *cobra.Command, args []string) error {
	return withEnvironment(cmd, r.global, func(env *environment) error {
		accounts, err := env.service.List(cmd.Context())
		if err != nil || len(accounts) == 0 {
			return err
		}
		w := bufio.NewWriter(cmd.OutOrStdout())
		defer w.Flush()
		if r.csv {
			renderer := table.CSVRenderer{Round: account.Places}
			return renderer.Render(account.Listing(accounts), w)
		}
		return account.NewTextRenderer(r.color).Render(account.Listing(accounts), w)
	})
}
