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
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/sboehler/kasse/cmd/flags"
)

// CreateInitCommand creates the command.
func CreateInitCommand(gf *flags.GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "create the accounts table",
		Long:  `Create the accounts table if it does not exist yet. Every other command does this as well.`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()
			env, err := newEnvironment(ctx, cmd, gf)
			if err != nil {
				return err
			}
			defer func() { err = multierr.Append(err, env.close()) }()
			env.logger.Info("Schema is up to date", zap.String("driver", env.gateway.Driver()))
			return nil
		},
	}
}
