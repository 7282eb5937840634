// Copyright 2022 Silvio Böhler
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

// Package config loads the settings of kasse. Values are taken from the
// defaults, an optional YAML file and the environment, in that order.
package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v2"

	"github.com/sboehler/kasse/lib/store"
)

// Config is the complete configuration.
type Config struct {
	Database Database `yaml:"database"`
	Log      Log      `yaml:"log"`
	Policy   Policy   `yaml:"policy"`
}

// Database configures the store connection.
type Database struct {
	Driver string `yaml:"driver"`
	// DSN overrides all other connection settings when set.
	DSN string `yaml:"dsn"`
	// Path is the database file used with sqlite3.
	Path     string `yaml:"path"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

// Log configures logging.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Policy configures business rules.
type Policy struct {
	RejectNegativeAmounts bool `yaml:"reject_negative_amounts"`
}

// Log levels and formats.
var (
	Levels  = []string{"debug", "info", "warn", "error"}
	Formats = []string{"console", "json"}
)

// Default returns the default configuration.
func Default() Config {
	return Config{
		Database: Database{
			Driver:   store.SQLite3,
			Path:     "kasse.db",
			Host:     "localhost",
			Port:     5432,
			User:     "root",
			Password: "password",
			Name:     "bank",
			SSLMode:  "disable",
		},
		Log: Log{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads the configuration. The file is optional; pass an empty path to
// skip it. The overrides are applied last, before validation.
func Load(path string, overrides ...func(*Config)) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return cfg, err
		}
	}
	cfg.readEnv(os.LookupEnv)
	for _, override := range overrides {
		override(&cfg)
	}
	return cfg, cfg.Validate()
}

func (c *Config) readFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.SetStrict(true)
	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

type lookupFunc func(string) (string, bool)

func (c *Config) readEnv(lookup lookupFunc) {
	setString(lookup, "KASSE_DB_DRIVER", &c.Database.Driver)
	setString(lookup, "KASSE_DB_DSN", &c.Database.DSN)
	setString(lookup, "KASSE_DB_PATH", &c.Database.Path)
	setString(lookup, "KASSE_DB_HOST", &c.Database.Host)
	setInt(lookup, "KASSE_DB_PORT", &c.Database.Port)
	setString(lookup, "KASSE_DB_USER", &c.Database.User)
	setString(lookup, "KASSE_DB_PASSWORD", &c.Database.Password)
	setString(lookup, "KASSE_DB_NAME", &c.Database.Name)
	setString(lookup, "KASSE_DB_SSLMODE", &c.Database.SSLMode)
	setString(lookup, "KASSE_LOG_LEVEL", &c.Log.Level)
	setString(lookup, "KASSE_LOG_FORMAT", &c.Log.Format)
}

func setString(lookup lookupFunc, key string, target *string) {
	if value, ok := lookup(key); ok {
		*target = value
	}
}

func setInt(lookup lookupFunc, key string, target *int) {
	if value, ok := lookup(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			*target = i
		}
	}
}

// Validate checks the configuration for unsupported values.
func (c Config) Validate() error {
	if !store.Supported(c.Database.Driver) {
		return fmt.Errorf("unsupported database driver %q, want one of %v", c.Database.Driver, store.Drivers)
	}
	if !slices.Contains(Levels, c.Log.Level) {
		return fmt.Errorf("unsupported log level %q, want one of %v", c.Log.Level, Levels)
	}
	if !slices.Contains(Formats, c.Log.Format) {
		return fmt.Errorf("unsupported log format %q, want one of %v", c.Log.Format, Formats)
	}
	return nil
}

// DataSourceName returns the data source name for the configured driver.
func (d Database) DataSourceName() string {
	if d.DSN != "" {
		return d.DSN
	}
	switch d.Driver {
	case store.SQLite3:
		return fmt.Sprintf("file:%s", d.Path)
	case store.PGX:
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(d.User, d.Password),
			Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
			Path:     d.Name,
			RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
		}
		return u.String()
	default:
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
	}
}
