package chat

import (
	"context"
	"strings"
	"testing"

	"github.com/chbabble/chbabble/internal/testutil"
	"github.com/chbabble/chbabble/pkg/db"
)

func testSession(t *testing.T) *Session {
	t.Helper()

	conn := &testutil.FakeConn{
		Results: map[string]testutil.Result{
			"SHOW TABLES": {
				Columns: []string{"name"},
				Rows:    [][]any{{"orders"}, {"users"}},
			},
			"DESCRIBE TABLE orders": {
				Columns: []string{"name", "type"},
				Rows:    [][]any{{"id", "UInt64"}},
			},
			"DESCRIBE TABLE users": {
				Columns: []string{"name", "type"},
				Rows:    [][]any{{"id", "UInt64"}},
			},
		},
	}

	database, err := db.NewDatabase(context.Background(), conn, "default", db.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return NewSession(database, "claude-sonnet-4-0")
}

func TestHandleCommand_Errors(t *testing.T) {
	s := testSession(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		command string
		errPart string
	}{
		{"unknown command", "/bogus", "unknown command"},
		{"describe without table", "/describe", "usage: /describe"},
		{"run without query", "/run", "usage: /run"},
		{"check without query", "/check", "usage: /check"},
		{"check without agent", "/check SELECT 1", "ANTHROPIC_API_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.handleCommand(ctx, tt.command)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("expected error containing %q, got %q", tt.errPart, err.Error())
			}
		})
	}
}

func TestHandleCommand_Success(t *testing.T) {
	s := testSession(t)
	ctx := context.Background()

	for _, cmd := range []string{"/help", "/tables", "/schema", "/describe orders", "/refresh"} {
		if err := s.handleCommand(ctx, cmd); err != nil {
			t.Errorf("command %q: unexpected error: %v", cmd, err)
		}
	}
}

func TestRunQuery(t *testing.T) {
	s := testSession(t)
	ctx := context.Background()

	// Queries route through the guarded executor, so even a failing query
	// never returns an error from runQuery.
	if err := s.runQuery(ctx, "SELECT broken FROM nowhere"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
