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

// CreateUpdateCommand creates the command.
func CreateUpdateCommand(gf *flags.GlobalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update NUMBER BALANCE",
		Short: "overwrite the balance of an account",
		Long:  `Set the balance of the account to the given value, regardless of the current balance.`,

		Args: cobra.ExactArgs(2),

		RunE: func(cmd *cobra.Command, args []string) error {
			no, err := account.ParseNo(args[0])
			if err != nil {
				return err
			}
			balance, err := account.ParseAmount(args[1])
			if err != nil {
				return err
			}
			return withEnvironment(cmd, gf, func(env *environment) error {
				return env.service.UpdateBalance(cmd.Context(), no, balance)
			})
		},
	}
	// Amounts and balances may be negative.
	cmd.Flags().SetInterspersed(false)
	return cmd
}
