package db

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/chbabble/chbabble/pkg/config"
)

// Dialect identifies the SQL dialect spoken by this wrapper. It is fixed;
// downstream prompt templates key off it.
const Dialect = "clickhouse"

// Connection wraps a single ClickHouse native-protocol connection. The handle
// lives for the lifetime of the process; there is no pooling and no retry.
type Connection struct {
	conn   driver.Conn
	config *config.DBConfig
}

// Connect establishes a connection to ClickHouse using the provided config
func Connect(ctx context.Context, cfg *config.DBConfig) (*Connection, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database configuration cannot be nil")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database configuration: %w", err)
	}

	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{cfg.Addr()},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.User,
			Password: cfg.Password,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := conn.Ping(ctx); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close connection: %v\n", closeErr)
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Connection{
		conn:   conn,
		config: cfg,
	}, nil
}

// Close closes the database connection
func (c *Connection) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Query executes a query and returns the rows
func (c *Connection) Query(ctx context.Context, sql string, args ...any) (driver.Rows, error) {
	return c.conn.Query(ctx, sql, args...)
}

// QueryRow executes a query that returns at most one row
func (c *Connection) QueryRow(ctx context.Context, sql string, args ...any) driver.Row {
	return c.conn.QueryRow(ctx, sql, args...)
}

// Exec executes a query without returning any rows
func (c *Connection) Exec(ctx context.Context, sql string, args ...any) error {
	return c.conn.Exec(ctx, sql, args...)
}

// Ping verifies the connection is still alive
func (c *Connection) Ping(ctx context.Context) error {
	return c.conn.Ping(ctx)
}

// DatabaseInfo holds information about the connected database
type DatabaseInfo struct {
	Host     string
	Port     int
	Database string
	User     string
	Version  string
}

// GetDatabaseInfo returns basic information about the connected database
func (c *Connection) GetDatabaseInfo(ctx context.Context) (*DatabaseInfo, error) {
	info := &DatabaseInfo{
		Host:     c.config.Host,
		Port:     c.config.Port,
		Database: c.config.Database,
		User:     c.config.User,
	}

	var version string
	if err := c.conn.QueryRow(ctx, "SELECT version()").Scan(&version); err != nil {
		return nil, fmt.Errorf("failed to get ClickHouse version: %w", err)
	}
	info.Version = version

	return info, nil
}
