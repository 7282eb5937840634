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
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/sboehler/kasse/cmd/flags"
	"github.com/sboehler/kasse/lib/account"
)

// CreateDepositCommand creates the command.
func CreateDepositCommand(gf *flags.GlobalFlags) *cobra.Command {
	r := transactionRunner{
		global: gf,
		apply: func(ctx context.Context, s *account.Service, no account.No, amount decimal.Decimal) (decimal.Decimal, error) {
			return s.Deposit(ctx, no, amount)
		},
	}
	cmd := &cobra.Command{
		Use:   "deposit NUMBER AMOUNT",
		Short: "deposit money",
		Long:  `Add the amount to the balance of the account and print the new balance.`,

		Args: cobra.ExactArgs(2),

		RunE: r.run,
	}
	// Amounts and balances may be negative.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

// CreateWithdrawCommand creates the command.
func CreateWithdrawCommand(gf *flags.GlobalFlags) *cobra.Command {
	r := transactionRunner{
		global: gf,
		apply: func(ctx context.Context, s *account.Service, no account.No, amount decimal.Decimal) (decimal.Decimal, error) {
			return s.Withdraw(ctx, no, amount)
		},
	}
	cmd := &cobra.Command{
		Use:   "withdraw NUMBER AMOUNT",
		Short: "withdraw money",
		Long:  `Subtract the amount from the balance of the account and print the new balance. The balance must cover the amount.`,

		Args: cobra.ExactArgs(2),

		RunE: r.run,
	}
	// Amounts and balances may be negative.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

type transactionRunner struct {
	global *flags.GlobalFlags
	apply  func(context.Context, *account.Service, account.No, decimal.Decimal) (decimal.Decimal, error)
}

func (r *transactionRunner) run(cmd *cobra.Command, args []string) error {
	no, err := account.ParseNo(args[0])
	if err != nil {
		return err
	}
	amount, err := account.ParseAmount(args[1])
	if err != nil {
		return err
	}
	return withEnvironment(cmd, r.global, func(env *environment) error {
		balance, err := r.apply(cmd.Context(), env.service, no, amount)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), balance.StringFixed(account.Places))
		return err
	})
}
