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
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/sboehler/kasse/cmd/flags"
	"github.com/sboehler/kasse/lib/account"
)

// CreateImportCommand creates the command.
func CreateImportCommand(gf *flags.GlobalFlags) *cobra.Command {
	r := importRunner{global: gf}
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "import accounts from a CSV file",
		Long: `Create an account for every record of a CSV file with the columns
account number, name and balance. A header line as written by the export
command is skipped. Records which cannot be imported are reported at the end.`,

		Args: cobra.ExactArgs(1),

		RunE: r.run,
	}
	r.setupFlags(cmd)
	return cmd
}

type importRunner struct {
	global *flags.GlobalFlags
	latin1 bool
}

func (r *importRunner) setupFlags(c *cobra.Command) {
	c.Flags().BoolVar(&r.latin1, "latin1", false, "decode the file as ISO 8859-1")
}

func (r *importRunner) run(cmd *cobra.Command, args []string) error {
	records, err := r.readRecords(args[0])
	if err != nil {
		return err
	}
	return withEnvironment(cmd, r.global, func(env *environment) error {
		var (
			errs     error
			imported int
			bar      = pb.New(len(records)).SetWriter(cmd.ErrOrStderr()).Start()
		)
		for i, record := range records {
			if err := r.importRecord(cmd, env, record); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("record %d: %w", i+1, err))
			} else {
				imported++
			}
			bar.Increment()
		}
		bar.Finish()
		env.logger.Info("Accounts imported", zap.String("file", args[0]), zap.Int("count", imported))
		return errs
	})
}

func (r *importRunner) readRecords(path string) ([][]string, error) {
	f, c, err := flags.OpenFile(path, r.latin1)
	if err != nil {
		return nil, err
	}
	defer c.Close()
	reader := csv.NewReader(f)
	reader.FieldsPerRecord = len(account.Header)
	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if len(records) > 0 && strings.TrimSpace(records[0][0]) == account.Header[0] {
		records = records[1:]
	}
	return records, nil
}

func (r *importRunner) importRecord(cmd *cobra.Command, env *environment, record []string) error {
	no, err := account.ParseNo(record[0])
	if err != nil {
		return err
	}
	balance, err := account.ParseAmount(record[2])
	if err != nil {
		return err
	}
	_, err = env.service.Create(cmd.Context(), no, record[1], balance)
	return err
}
