package db

import (
	"context"
	"fmt"
	"strings"
)

// Run executes a read command and renders the outcome as a string. It never
// returns an error: failures come back as "Error: <message>", an empty result
// comes back as "", and rows come back as their string rendering. This is the
// contract that lets an automated caller treat every outcome as text.
func (d *Database) Run(ctx context.Context, command string) string {
	rows, err := d.conn.Query(ctx, command)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close rows: %v\n", closeErr)
		}
	}()

	var results [][]any
	for rows.Next() {
		vals, err := scanRowValues(rows)
		if err != nil {
			return fmt.Sprintf("Error: %v", err)
		}
		results = append(results, vals)
	}
	if err := rows.Err(); err != nil {
		return fmt.Sprintf("Error: %v", err)
	}

	if len(results) == 0 {
		return ""
	}

	// A single scalar renders bare, anything else as one tuple per line
	if len(results) == 1 && len(results[0]) == 1 {
		return formatValue(results[0][0])
	}

	lines := make([]string, len(results))
	for i, vals := range results {
		lines[i] = formatTuple(vals)
	}
	return strings.Join(lines, "\n")
}
