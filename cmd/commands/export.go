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
	"bytes"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sboehler/kasse/cmd/flags"
	"github.com/sboehler/kasse/lib/account"
	"github.com/sboehler/kasse/lib/common/table"
)

// CreateExportCommand creates the command.
func CreateExportCommand(gf *flags.GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "export all accounts to a CSV file",
		Long:  `Write all accounts to a CSV file. The file is replaced atomically.`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnvironment(cmd, gf, func(env *environment) error {
				accounts, err := env.service.List(cmd.Context())
				if err != nil {
					return err
				}
				var (
					buf      bytes.Buffer
					renderer = table.CSVRenderer{Round: account.Places}
				)
				if err := renderer.Render(account.Listing(accounts), &buf); err != nil {
					return err
				}
				if err := atomic.WriteFile(args[0], &buf); err != nil {
					return err
				}
				env.logger.Info("Accounts exported", zap.String("file", args[0]), zap.Int("count", len(accounts)))
				return nil
			})
		},
	}
}
