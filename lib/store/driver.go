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

package store

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slices"

	// registers the "pgx" driver
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Supported drivers.
const (
	SQLite3  = "sqlite3"
	Postgres = "postgres"
	PGX      = "pgx"
)

// Drivers lists the supported drivers.
var Drivers = []string{SQLite3, Postgres, PGX}

// Supported returns whether the driver can be used with Open.
func Supported(driver string) bool {
	return slices.Contains(Drivers, driver)
}

var (
	// ErrStore is returned for any failure reported by the store.
	ErrStore = errors.New("store error")
	// ErrDuplicateKey is returned when a unique constraint is violated.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrClosed is returned when the gateway is used after Close.
	ErrClosed = errors.New("store is closed")
)

// postgres unique_violation
const uniqueViolation = "23505"

func classify(err error) error {
	var (
		sqliteErr sqlite3.Error
		pqErr     *pq.Error
		pgErr     *pgconn.PgError
	)
	switch {
	case errors.As(err, &sqliteErr) &&
		(sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey || sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique):
		return fmt.Errorf("%w: %w", ErrDuplicateKey, err)
	case errors.As(err, &pqErr) && pqErr.Code == uniqueViolation:
		return fmt.Errorf("%w: %w", ErrDuplicateKey, err)
	case errors.As(err, &pgErr) && pgErr.Code == uniqueViolation:
		return fmt.Errorf("%w: %w", ErrDuplicateKey, err)
	}
	return fmt.Errorf("%w: %w", ErrStore, err)
}

// rebind rewrites '?' placeholders to the numbered form used by postgres.
func rebind(driver, query string) string {
	if driver == SQLite3 {
		return query
	}
	var (
		b strings.Builder
		n int
	)
	for _, ch := range query {
		if ch != '?' {
			b.WriteRune(ch)
			continue
		}
		n++
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}
