package db

import (
	"context"
	"fmt"
	"strings"
)

// TableInfo renders textual descriptions for the requested tables, suitable
// for inclusion in an LLM prompt. With a nil tableNames every usable table is
// described. Requested names outside the usable set fail with a ConfigError.
//
// Each description is the bracketed column list, followed by an optional
// comment block carrying primary keys and sample rows when those options are
// enabled. A CustomTableInfo entry replaces the whole description for its
// table. A failing primary-key lookup aborts the call; a failing sample query
// only skips that table's sample block.
func (d *Database) TableInfo(ctx context.Context, tableNames []string) (string, error) {
	targets := d.usable
	if tableNames != nil {
		var missing []string
		for _, t := range tableNames {
			if _, ok := d.usableSet[t]; !ok {
				missing = append(missing, t)
			}
		}
		if len(missing) > 0 {
			return "", missingTablesError("table_names", missing)
		}
		targets = tableNames
	}

	blocks := make([]string, 0, len(targets))
	for _, table := range targets {
		if custom, ok := d.customInfo[table]; ok {
			blocks = append(blocks, custom)
			continue
		}

		block, err := d.describeTable(ctx, table)
		if err != nil {
			return "", err
		}
		blocks = append(blocks, block)
	}

	return strings.Join(blocks, "\n\n"), nil
}

// TableInfoNoThrow is the variant facing tool-style callers: any failure is
// returned as an "Error: <message>" string instead of an error value.
func (d *Database) TableInfoNoThrow(ctx context.Context, tableNames []string) string {
	info, err := d.TableInfo(ctx, tableNames)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	return info
}

// describeTable renders the introspected description for a single table
func (d *Database) describeTable(ctx context.Context, table string) (string, error) {
	columns, err := d.listColumns(ctx, table)
	if err != nil {
		return "", fmt.Errorf("failed to describe table %s: %w", table, err)
	}

	desc := "[" + strings.Join(columns, ", ") + "]"

	hasExtra := d.opts.IndexesInTableInfo || d.opts.SampleRowsInTableInfo > 0
	if !hasExtra {
		return desc, nil
	}

	var sections []string

	if d.opts.IndexesInTableInfo {
		pks, err := d.primaryKeyColumns(ctx, table)
		if err != nil {
			// Primary keys are essential schema information, so this is
			// fatal for the whole call, unlike sampling below.
			return "", fmt.Errorf("failed to get primary keys for %s: %w", table, err)
		}
		if len(pks) > 0 {
			lines := make([]string, len(pks))
			for i, pk := range pks {
				lines[i] = "Primary keys are " + pk
			}
			sections = append(sections, strings.Join(lines, "\n"))
		}
	}

	if d.opts.SampleRowsInTableInfo > 0 {
		if sample := d.sampleRowsSection(ctx, table); sample != "" {
			sections = append(sections, sample)
		}
	}

	desc += "\n\n/*"
	if len(sections) > 0 {
		desc += "\n" + strings.Join(sections, "\n\n") + "\n"
	}
	desc += "*/"
	return desc, nil
}

// listColumns returns the column names of a table in definition order
func (d *Database) listColumns(ctx context.Context, table string) ([]string, error) {
	rows, err := d.conn.Query(ctx, fmt.Sprintf("DESCRIBE TABLE %s", table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		// DESCRIBE returns name, type, default kind and more; only the
		// first column matters here.
		vals, err := scanRowValues(rows)
		if err != nil {
			return nil, err
		}
		if len(vals) == 0 {
			continue
		}
		columns = append(columns, formatValue(vals[0]))
	}
	return columns, rows.Err()
}

// primaryKeyColumns returns the table's primary key column names
func (d *Database) primaryKeyColumns(ctx context.Context, table string) ([]string, error) {
	query := "SELECT name FROM system.columns WHERE database = ? AND table = ? AND is_in_primary_key = 1"
	rows, err := d.conn.Query(ctx, query, d.name, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		columns = append(columns, name)
	}
	return columns, rows.Err()
}

// sampleRowsSection renders the sample-rows block for one table. Sampling is
// best effort: any failure (most commonly a table without sampling enabled)
// prints a warning and returns an empty section rather than failing the
// describe call.
func (d *Database) sampleRowsSection(ctx context.Context, table string) string {
	query := fmt.Sprintf("SELECT * FROM %s SAMPLE 0.3 LIMIT %d", table, d.opts.SampleRowsInTableInfo)
	rows, err := d.conn.Query(ctx, query)
	if err != nil {
		fmt.Printf("Warning: table %s cannot be sampled: %v. Remove sample_rows_in_table_info or set it to 0 if sampling is not enabled.\n", table, err)
		return ""
	}
	defer rows.Close()

	columns := rows.Columns()
	var lines []string
	for rows.Next() {
		vals, err := scanRowValues(rows)
		if err != nil {
			fmt.Printf("Warning: failed to read sample row from %s: %v\n", table, err)
			return ""
		}
		lines = append(lines, formatTuple(vals))
	}
	if err := rows.Err(); err != nil {
		fmt.Printf("Warning: table %s cannot be sampled: %v\n", table, err)
		return ""
	}

	section := "-- Sample Rows:\n-- " + strings.Join(columns, ", ")
	if len(lines) > 0 {
		section += "\n" + strings.Join(lines, "\n")
	}
	return section
}
