package db

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/chbabble/chbabble/internal/testutil"
)

func executorDatabase(t *testing.T, conn *testutil.FakeConn) *Database {
	t.Helper()
	d, err := NewDatabase(context.Background(), conn, "testdb", Options{})
	if err != nil {
		t.Fatalf("failed to build database: %v", err)
	}
	return d
}

func TestRun_FailingCommandReturnsErrorString(t *testing.T) {
	conn := catalogConn("orders")
	conn.Errors = map[string]error{
		"SELECT * FROM nonexistent": fmt.Errorf("code: 60. DB::Exception: Table testdb.nonexistent does not exist"),
	}
	d := executorDatabase(t, conn)

	result := d.Run(context.Background(), "SELECT * FROM nonexistent")
	if !strings.HasPrefix(result, "Error:") {
		t.Errorf("expected Error: prefix, got %q", result)
	}
	if !strings.Contains(result, "does not exist") {
		t.Errorf("error text should carry the driver message: %q", result)
	}
}

func TestRun_NoRowsReturnsEmptyString(t *testing.T) {
	conn := catalogConn("orders")
	conn.Results["SELECT id FROM orders WHERE id = 0"] = testutil.Result{
		Columns: []string{"id"},
	}
	d := executorDatabase(t, conn)

	result := d.Run(context.Background(), "SELECT id FROM orders WHERE id = 0")
	if result != "" {
		t.Errorf("expected empty string for no rows, got %q", result)
	}
}

func TestRun_ScalarRendersBare(t *testing.T) {
	conn := catalogConn("orders")
	conn.Results["SELECT count() FROM orders"] = testutil.Result{
		Columns: []string{"count()"},
		Rows:    [][]any{{uint64(42)}},
	}
	d := executorDatabase(t, conn)

	result := d.Run(context.Background(), "SELECT count() FROM orders")
	if result != "42" {
		t.Errorf("expected scalar 42, got %q", result)
	}
}

func TestRun_RowsRenderAsTuples(t *testing.T) {
	conn := catalogConn("orders")
	conn.Results["SELECT id, amount FROM orders LIMIT 2"] = testutil.Result{
		Columns: []string{"id", "amount"},
		Rows:    [][]any{{uint64(1), 3.5}, {uint64(2), 7.25}},
	}
	d := executorDatabase(t, conn)

	result := d.Run(context.Background(), "SELECT id, amount FROM orders LIMIT 2")
	expected := "(1, 3.5)\n(2, 7.25)"
	if result != expected {
		t.Errorf("expected %q, got %q", expected, result)
	}
}

func TestRun_NeverPanicsOnWeirdValues(t *testing.T) {
	conn := catalogConn("orders")
	conn.Results["SELECT name, note FROM orders"] = testutil.Result{
		Columns: []string{"name", "note"},
		Rows:    [][]any{{"widget", nil}},
	}
	d := executorDatabase(t, conn)

	result := d.Run(context.Background(), "SELECT name, note FROM orders")
	if !strings.HasPrefix(result, "(widget, ") {
		t.Errorf("expected tuple rendering, got %q", result)
	}
}
