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
	"github.com/sboehler/kasse/lib/account"
)

// CreateNewAccountCommand creates the command.
func CreateNewAccountCommand(gf *flags.GlobalFlags) *cobra.Command {
	r := createRunner{global: gf}
	cmd := &cobra.Command{
		Use:   "create NUMBER NAME BALANCE",
		Short: "create an account",
		Long:  `Create an account with the given number, holder name and initial balance.`,

		Args: cobra.ExactArgs(3),

		RunE: r.run,
	}
	// Amounts and balances may be negative.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

type createRunner struct {
	global *flags.GlobalFlags
}

func (r *createRunner) run(cmd *cobra.Command, args []string) error {
	no, err := account.ParseNo(args[0])
	if err != nil {
		return err
	}
	balance, err := account.ParseAmount(args[2])
	if err != nil {
		return err
	}
	return withEnvironment(cmd, r.global, func(env *environment) error {
		_, err := env.service.Create(cmd.Context(), no, args[1], balance)
		return err
	})
}
