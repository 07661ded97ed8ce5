package db

import (
	"context"
	"fmt"
)

// Options configure which tables the wrapper exposes and how much detail
// table descriptions carry.
type Options struct {
	// IncludeTables restricts the usable set to exactly these tables. Every
	// name must exist in the database. Mutually exclusive with IgnoreTables.
	IncludeTables []string

	// IgnoreTables removes these tables from the usable set. Names that do
	// not exist are ignored.
	IgnoreTables []string

	// CustomTableInfo maps table names to preformatted description text that
	// replaces the introspected description. Entries for tables outside the
	// usable set are dropped at construction.
	CustomTableInfo map[string]string

	// SampleRowsInTableInfo is the number of sample rows appended to each
	// table description. The table must have sampling enabled or the sample
	// block is skipped with a warning.
	SampleRowsInTableInfo int

	// IndexesInTableInfo includes primary key columns in table descriptions.
	IndexesInTableInfo bool
}

// Database wraps a connection with table-visibility rules and schema
// rendering for consumption by an LLM agent. The usable table set is resolved
// once at construction; call RefreshTables after schema changes. The wrapper
// is not safe for concurrent use with a shared connection.
type Database struct {
	conn Conn
	name string
	opts Options

	allTables  []string
	usable     []string
	usableSet  map[string]struct{}
	customInfo map[string]string
}

// NewDatabase builds a Database on top of an established connection.
// It fails with a ConfigError if both include and ignore lists are given, or
// if an included table does not exist.
func NewDatabase(ctx context.Context, conn Conn, database string, opts Options) (*Database, error) {
	if len(opts.IncludeTables) > 0 && len(opts.IgnoreTables) > 0 {
		return nil, &ConfigError{Message: "cannot specify both include_tables and ignore_tables"}
	}
	if opts.SampleRowsInTableInfo < 0 {
		return nil, &ConfigError{Message: fmt.Sprintf("sample_rows_in_table_info must be >= 0, got %d", opts.SampleRowsInTableInfo)}
	}

	d := &Database{
		conn: conn,
		name: database,
		opts: opts,
	}

	if err := d.RefreshTables(ctx); err != nil {
		return nil, err
	}

	// Only keep custom info for tables that are actually usable
	d.customInfo = make(map[string]string)
	for table, info := range opts.CustomTableInfo {
		if _, ok := d.usableSet[table]; ok {
			d.customInfo[table] = info
		}
	}

	return d, nil
}

// Dialect returns the SQL dialect identifier for prompt templating
func (d *Database) Dialect() string {
	return Dialect
}

// RefreshTables re-reads the table catalog and re-resolves the usable set.
// The set is otherwise fixed at construction time.
func (d *Database) RefreshTables(ctx context.Context) error {
	all, err := d.listAllTables(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tables: %w", err)
	}

	usable, err := resolveUsableTables(all, d.opts.IncludeTables, d.opts.IgnoreTables)
	if err != nil {
		return err
	}

	d.allTables = all
	d.usable = usable
	d.usableSet = make(map[string]struct{}, len(usable))
	for _, t := range usable {
		d.usableSet[t] = struct{}{}
	}
	return nil
}

// AllTableNames returns every table name in the database, in store-reported order
func (d *Database) AllTableNames() []string {
	out := make([]string, len(d.allTables))
	copy(out, d.allTables)
	return out
}

// UsableTableNames returns the tables this wrapper exposes to callers
func (d *Database) UsableTableNames() []string {
	out := make([]string, len(d.usable))
	copy(out, d.usable)
	return out
}

// listAllTables issues a catalog listing and returns names in store order
func (d *Database) listAllTables(ctx context.Context) ([]string, error) {
	rows, err := d.conn.Query(ctx, "SHOW TABLES")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// resolveUsableTables applies the include/ignore rules to the full table
// list. With a non-empty include list every name must exist; otherwise the
// result is the full list minus the ignore list, preserving store order.
func resolveUsableTables(all, include, ignore []string) ([]string, error) {
	allSet := make(map[string]struct{}, len(all))
	for _, t := range all {
		allSet[t] = struct{}{}
	}

	if len(include) > 0 {
		var missing []string
		for _, t := range include {
			if _, ok := allSet[t]; !ok {
				missing = append(missing, t)
			}
		}
		if len(missing) > 0 {
			return nil, missingTablesError("include_tables", missing)
		}
		usable := make([]string, len(include))
		copy(usable, include)
		return usable, nil
	}

	ignoreSet := make(map[string]struct{}, len(ignore))
	for _, t := range ignore {
		ignoreSet[t] = struct{}{}
	}

	usable := make([]string, 0, len(all))
	for _, t := range all {
		if _, ok := ignoreSet[t]; !ok {
			usable = append(usable, t)
		}
	}
	return usable, nil
}
