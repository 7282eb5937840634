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

package flags

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/text/encoding/charmap"

	"github.com/sboehler/kasse/lib/config"
	"github.com/sboehler/kasse/lib/store"
)

// DriverFlag manages a flag to select a database driver.
type DriverFlag string

var _ pflag.Value = (*DriverFlag)(nil)

func (df DriverFlag) String() string {
	return string(df)
}

// Set implements pflag.Value.
func (df *DriverFlag) Set(v string) error {
	if !store.Supported(v) {
		return fmt.Errorf("unsupported driver %q", v)
	}
	*df = DriverFlag(v)
	return nil
}

// Type implements pflag.Value.
func (df DriverFlag) Type() string {
	return strings.Join(store.Drivers, "|")
}

// Value returns the flag value.
func (df DriverFlag) Value() string {
	return string(df)
}

// GlobalFlags are the persistent flags of the root command. Flags which are
// set take precedence over the configuration file and the environment.
type GlobalFlags struct {
	config    string
	driver    DriverFlag
	dsn       string
	db        string
	logLevel  string
	logFormat string
}

// Setup configures the flags.
func (gf *GlobalFlags) Setup(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&gf.config, "config", "c", "", "YAML configuration file")
	cmd.PersistentFlags().Var(&gf.driver, "driver", "database driver")
	cmd.PersistentFlags().StringVar(&gf.dsn, "dsn", "", "data source name")
	cmd.PersistentFlags().StringVar(&gf.db, "db", "", "sqlite3 database file")
	cmd.PersistentFlags().StringVar(&gf.logLevel, "log-level", "", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&gf.logFormat, "log-format", "", "log format (console|json)")
}

// Config loads the configuration.
func (gf *GlobalFlags) Config() (config.Config, error) {
	return config.Load(gf.config, gf.apply)
}

func (gf *GlobalFlags) apply(c *config.Config) {
	if v := gf.driver.Value(); v != "" {
		c.Database.Driver = v
	}
	if gf.dsn != "" {
		c.Database.DSN = gf.dsn
	}
	if gf.db != "" {
		c.Database.Path = gf.db
	}
	if gf.logLevel != "" {
		c.Log.Level = gf.logLevel
	}
	if gf.logFormat != "" {
		c.Log.Format = gf.logFormat
	}
}

// OpenFile opens the file at the given path as a buffered reader. Latin-1
// content is decoded to UTF-8.
func OpenFile(p string, latin1 bool) (*bufio.Reader, io.Closer, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, nil, err
	}
	var r io.Reader = f
	if latin1 {
		r = charmap.ISO8859_1.NewDecoder().Reader(f)
	}
	return bufio.NewReader(r), f, nil
}
