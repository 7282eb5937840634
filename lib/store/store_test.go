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
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	var (
		ctx = context.Background()
		g   = openInMemory(ctx, t, zap.NewNop())
	)

	if err := g.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema() returned unexpected error: %v", err)
	}
	if err := g.EnsureSchema(ctx); err != nil {
		t.Fatalf("second EnsureSchema() returned unexpected error: %v", err)
	}
}

func TestExecuteWriteAndFetch(t *testing.T) {
	var (
		ctx = context.Background()
		g   = openMigrated(ctx, t, zap.NewNop())
	)

	res, err := g.Execute(ctx, Statement{
		Query: "INSERT INTO accounts (account_no, name, balance) VALUES (?, ?, ?)",
		Args:  []any{int64(1001), "Alice", "500.00"},
	})

	if err != nil {
		t.Fatalf("Execute() returned unexpected error: %v", err)
	}
	if res.RowsAffected != 1 {
		t.Errorf("Execute() affected %d rows, want 1", res.RowsAffected)
	}
	got := fetch(ctx, t, g, "SELECT account_no FROM accounts WHERE account_no = ?", int64(1001))
	if diff := cmp.Diff([]Row{{int64(1001)}}, got); diff != "" {
		t.Errorf("Execute() mismatch (-want +got):\n%s", diff)
	}
}

func TestExecuteFetchEmpty(t *testing.T) {
	var (
		ctx = context.Background()
		g   = openMigrated(ctx, t, zap.NewNop())
	)

	res, err := g.Execute(ctx, Statement{Query: "SELECT account_no FROM accounts", Fetch: true})

	if err != nil {
		t.Fatalf("Execute() returned unexpected error: %v", err)
	}
	if len(res.Rows) != 0 {
		t.Errorf("Execute() returned %d rows, want none", len(res.Rows))
	}
}

func TestExecuteRowsAffected(t *testing.T) {
	var (
		ctx = context.Background()
		g   = openMigrated(ctx, t, zap.NewNop())
	)
	insert(ctx, t, g, 1, 2, 3)

	res, err := g.Execute(ctx, Statement{
		Query: "UPDATE accounts SET balance = ? WHERE account_no > ?",
		Args:  []any{"10.00", int64(1)},
	})

	if err != nil {
		t.Fatalf("Execute() returned unexpected error: %v", err)
	}
	if res.RowsAffected != 2 {
		t.Errorf("Execute() affected %d rows, want 2", res.RowsAffected)
	}
}

func TestExecuteDuplicateKey(t *testing.T) {
	var (
		ctx          = context.Background()
		core, logged = observer.New(zapcore.ErrorLevel)
		g            = openMigrated(ctx, t, zap.New(core))
	)
	insert(ctx, t, g, 1001)

	_, err := g.Execute(ctx, Statement{
		Query: "INSERT INTO accounts (account_no, name, balance) VALUES (?, ?, ?)",
		Args:  []any{int64(1001), "Bob", "1.00"},
	})

	if !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("Execute() returned %v, want %v", err, ErrDuplicateKey)
	}
	if n := logged.FilterMessage("Database error").Len(); n != 1 {
		t.Errorf("got %d logged database errors, want 1", n)
	}
	got := fetch(ctx, t, g, "SELECT COUNT(*) FROM accounts")
	if diff := cmp.Diff([]Row{{int64(1)}}, got); diff != "" {
		t.Errorf("row count mismatch (-want +got):\n%s", diff)
	}
}

func TestExecuteMalformedStatement(t *testing.T) {
	var (
		ctx = context.Background()
		g   = openMigrated(ctx, t, zap.NewNop())
	)

	for _, fetch := range []bool{true, false} {
		_, err := g.Execute(ctx, Statement{Query: "SELEKT nothing", Fetch: fetch})

		if !errors.Is(err, ErrStore) {
			t.Errorf("Execute(fetch=%t) returned %v, want %v", fetch, err, ErrStore)
		}
		if errors.Is(err, ErrDuplicateKey) {
			t.Errorf("Execute(fetch=%t) classified a syntax error as duplicate key", fetch)
		}
	}
}

func TestClose(t *testing.T) {
	var ctx = context.Background()
	g, err := Open(ctx, SQLite3, "file::memory:", zap.NewNop())
	if err != nil {
		t.Fatalf("Open() returned unexpected error: %v", err)
	}

	if err := g.Close(); err != nil {
		t.Fatalf("Close() returned unexpected error: %v", err)
	}
	if _, err := g.Execute(ctx, Statement{Query: "SELECT 1", Fetch: true}); !errors.Is(err, ErrClosed) {
		t.Errorf("Execute() after Close() returned %v, want %v", err, ErrClosed)
	}
	if err := g.Close(); !errors.Is(err, ErrClosed) {
		t.Errorf("second Close() returned %v, want %v", err, ErrClosed)
	}
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "root:password@/bank", zap.NewNop())

	if !errors.Is(err, ErrStore) {
		t.Errorf("Open() returned %v, want %v", err, ErrStore)
	}
}

func TestRebind(t *testing.T) {
	tests := []struct {
		driver, query, want string
	}{
		{SQLite3, "SELECT * FROM t WHERE a = ? AND b = ?", "SELECT * FROM t WHERE a = ? AND b = ?"},
		{Postgres, "SELECT * FROM t WHERE a = ? AND b = ?", "SELECT * FROM t WHERE a = $1 AND b = $2"},
		{PGX, "INSERT INTO t VALUES (?, ?, ?)", "INSERT INTO t VALUES ($1, $2, $3)"},
		{PGX, "SELECT 1", "SELECT 1"},
	}
	for _, test := range tests {
		test := test
		t.Run(test.driver+"/"+test.query, func(t *testing.T) {
			got := rebind(test.driver, test.query)
			if got != test.want {
				t.Errorf("rebind(%q, %q) = %q, want %q", test.driver, test.query, got, test.want)
			}
		})
	}
}

func openInMemory(ctx context.Context, t *testing.T, logger *zap.Logger) *Gateway {
	t.Helper()
	g, err := Open(ctx, SQLite3, "file::memory:", logger)
	if err != nil {
		t.Fatalf("error creating in-memory database: %v", err)
	}
	t.Cleanup(func() {
		if err := g.Close(); err != nil {
			t.Errorf("Close(): %v", err)
		}
	})
	return g
}

func openMigrated(ctx context.Context, t *testing.T, logger *zap.Logger) *Gateway {
	t.Helper()
	g := openInMemory(ctx, t, logger)
	if err := g.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema(): %v", err)
	}
	return g
}

func insert(ctx context.Context, t *testing.T, g *Gateway, nos ...int64) {
	t.Helper()
	for _, no := range nos {
		_, err := g.Execute(ctx, Statement{
			Query: "INSERT INTO accounts (account_no, name, balance) VALUES (?, ?, ?)",
			Args:  []any{no, "holder", "0.00"},
		})
		if err != nil {
			t.Fatalf("inserting account %d: %v", no, err)
		}
	}
}

func fetch(ctx context.Context, t *testing.T, g *Gateway, query string, args ...any) []Row {
	t.Helper()
	res, err := g.Execute(ctx, Statement{Query: query, Args: args, Fetch: true})
	if err != nil {
		t.Fatalf("Execute(%q): %v", query, err)
	}
	return res.Rows
}
