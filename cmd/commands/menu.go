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
	"github.com/spf13/cobra"

	"github.com/sboehler/kasse/cmd/flags"
	"github.com/sboehler/kasse/lib/menu"
)

// CreateMenuCommand creates the command.
func CreateMenuCommand(gf *flags.GlobalFlags) *cobra.Command {
	r := menuRunner{global: gf}
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "run the interactive menu",
		Long:  `Run the interactive menu. It reads choices from standard input until the operator exits or the input ends.`,

		Args: cobra.NoArgs,

		RunE: r.run,
	}
	r.setupFlags(cmd)
	return cmd
}

type menuRunner struct {
	global *flags.GlobalFlags
	color  bool
}

func (r *menuRunner) setupFlags(c *cobra.Command) {
	c.Flags().BoolVar(&r.color, "color", false, "print balances in color")
}

func (r *menuRunner) run(cmd *cobra.Command, args []string) error {
	return withEnvironment(cmd, r.global, func(env *environment) error {
		m := menu.New(env.service, cmd.InOrStdin(), cmd.OutOrStdout(), env.logger)
		m.Color = r.color
		return m.Run(cmd.Context())
	})
}
