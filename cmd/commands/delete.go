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

// CreateDeleteCommand creates the command.
func CreateDeleteCommand(gf *flags.GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete NUMBER",
		Short: "delete an account",

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			no, err := account.ParseNo(args[0])
			if err != nil {
				return err
			}
			return withEnvironment(cmd, gf, func(env *environment) error {
				return env.service.Delete(cmd.Context(), no)
			})
		},
	}
}
