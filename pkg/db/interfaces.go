package db

import (
	"context"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// Conn defines the driver operations the database wrapper depends on.
// This allows for dependency injection and easier testing with fakes.
type Conn interface {
	Query(ctx context.Context, sql string, args ...any) (driver.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) driver.Row
	Exec(ctx context.Context, sql string, args ...any) error
	Ping(ctx context.Context) error
	Close() error
}

// Ensure that the concrete Connection struct implements the interface
var _ Conn = (*Connection)(nil)
