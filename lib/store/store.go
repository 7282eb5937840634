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

// Package store is the only place where statements are issued against the
// relational store.
package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"path"
	"sort"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

//go:embed idem
var schema embed.FS

// Row is a result row, with columns in select order.
type Row []any

// Statement is a parameterized statement. Placeholders are written as '?'
// regardless of the driver.
type Statement struct {
	Query string
	Args  []any
	// Fetch requests the result rows. Fetching statements are not committed.
	Fetch bool
}

// Result is the outcome of a statement.
type Result struct {
	Rows         []Row
	RowsAffected int64
}

// Gateway owns the connection to the store.
type Gateway struct {
	db     *sql.DB
	driver string
	logger *zap.Logger
	closed bool
}

// Open opens a store using the given driver and data source name.
func Open(ctx context.Context, driver, dsn string, logger *zap.Logger) (*Gateway, error) {
	if !Supported(driver) {
		return nil, fmt.Errorf("%w: unsupported driver %q", ErrStore, driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}
	// single operator, single connection
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		return nil, multierr.Append(fmt.Errorf("%w: %w", ErrStore, err), db.Close())
	}
	logger.Debug("Connected to database", zap.String("driver", driver))
	return &Gateway{
		db:     db,
		driver: driver,
		logger: logger,
	}, nil
}

// Driver returns the name of the driver in use.
func (g *Gateway) Driver() string {
	return g.driver
}

// EnsureSchema creates the tables if they do not exist yet. The scripts are
// idempotent and run on every start.
func (g *Gateway) EnsureSchema(ctx context.Context) error {
	files, err := schema.ReadDir("idem")
	if err != nil {
		return err
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].Name() < files[j].Name()
	})
	for _, f := range files {
		s, err := schema.ReadFile(path.Join("idem", f.Name()))
		if err != nil {
			return err
		}
		if _, err := g.Execute(ctx, Statement{Query: string(s)}); err != nil {
			return fmt.Errorf("%s: %w", f.Name(), err)
		}
	}
	return nil
}

// Execute runs a single statement. Writes are committed before Execute
// returns. Failures are logged and returned; a failed statement had no effect.
func (g *Gateway) Execute(ctx context.Context, st Statement) (*Result, error) {
	if g.closed {
		return nil, ErrClosed
	}
	var (
		query = rebind(g.driver, st.Query)
		res   *Result
		err   error
	)
	if st.Fetch {
		res, err = g.fetch(ctx, query, st.Args)
	} else {
		res, err = g.write(ctx, query, st.Args)
	}
	if err != nil {
		err = classify(err)
		g.logger.Error("Database error", zap.String("query", query), zap.Error(err))
		return nil, err
	}
	return res, nil
}

func (g *Gateway) fetch(ctx context.Context, query string, args []any) (*Result, error) {
	rows, err := g.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var res Result
	for rows.Next() {
		var (
			row  = make(Row, len(cols))
			dest = make([]any, len(cols))
		)
		for i := range row {
			dest[i] = &row[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		res.Rows = append(res.Rows, row)
	}
	return &res, rows.Err()
}

func (g *Gateway) write(ctx context.Context, query string, args []any) (*Result, error) {
	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	r, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, multierr.Append(err, tx.Rollback())
	}
	var res Result
	// DDL statements do not report a count on every driver
	if n, err := r.RowsAffected(); err == nil {
		res.RowsAffected = n
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &res, nil
}

// Close releases the connection. The gateway must not be used afterwards.
func (g *Gateway) Close() error {
	if g.closed {
		return ErrClosed
	}
	g.closed = true
	if err := g.db.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrStore, err)
	}
	g.logger.Debug("Database connection closed")
	return nil
}
