package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/chbabble/chbabble/pkg/db"
)

// CreateDatabaseTools creates the four database tools exposed to the LLM.
// The checker is optional; without it the check_query tool is omitted.
func CreateDatabaseTools(database *db.Database, checker *QueryChecker) []*Tool {
	tools := []*Tool{
		createListTablesTool(database),
		createSchemaInfoTool(database),
		createRunQueryTool(database),
	}
	if checker != nil {
		tools = append(tools, createCheckQueryTool(checker))
	}
	return tools
}

// createListTablesTool creates a tool listing the usable tables
func createListTablesTool(database *db.Database) *Tool {
	return &Tool{
		Name:        "list_tables",
		Description: "Lists the tables available in the database as a comma-separated string. Call this first to see what can be queried.",
		InputSchema: ToolSchema{
			Type:       "object",
			Properties: map[string]any{},
			Required:   []string{},
		},
		Handler: func(ctx context.Context, input map[string]any) (*ToolResult, error) {
			return &ToolResult{
				Content: strings.Join(database.UsableTableNames(), ", "),
			}, nil
		},
	}
}

// createSchemaInfoTool creates a tool describing table schemas
func createSchemaInfoTool(database *db.Database) *Tool {
	return &Tool{
		Name:        "schema_info",
		Description: "Gets the schema and optional sample rows for the given tables. Input is a list of table names from list_tables; omit it to describe every table. Be sure the tables exist by calling list_tables first.",
		InputSchema: ToolSchema{
			Type: "object",
			Properties: map[string]any{
				"table_names": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"description": "Names of the tables to describe. Omit to describe all usable tables.",
				},
			},
			Required: []string{},
		},
		Handler: func(ctx context.Context, input map[string]any) (*ToolResult, error) {
			names, err := stringSliceParam(input, "table_names")
			if err != nil {
				return &ToolResult{
					Content: fmt.Sprintf("Error: %v", err),
					IsError: true,
				}, err
			}

			// Never raises: configuration problems come back as text the
			// model can react to.
			return &ToolResult{
				Content: database.TableInfoNoThrow(ctx, names),
			}, nil
		},
	}
}

// createRunQueryTool creates the guarded query execution tool
func createRunQueryTool(database *db.Database) *Tool {
	return &Tool{
		Name:        "run_query",
		Description: "Executes a ClickHouse query and returns the result. Returns an empty string when the query yields no rows, and an error message starting with 'Error:' when it fails. If you get an error, rewrite the query and try again.",
		InputSchema: ToolSchema{
			Type: "object",
			Properties: map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "A syntactically correct ClickHouse query to execute",
				},
			},
			Required: []string{"query"},
		},
		Handler: func(ctx context.Context, input map[string]any) (*ToolResult, error) {
			query, ok := input["query"].(string)
			if !ok {
				return &ToolResult{
					Content: "Error: query must be a string",
					IsError: true,
				}, fmt.Errorf("invalid query parameter")
			}

			return &ToolResult{
				Content: database.Run(ctx, query),
			}, nil
		},
	}
}

// createCheckQueryTool creates the query double-checking tool
func createCheckQueryTool(checker *QueryChecker) *Tool {
	return &Tool{
		Name:        "check_query",
		Description: "Double checks a ClickHouse query for common mistakes before it is executed. Always use this tool before run_query.",
		InputSchema: ToolSchema{
			Type: "object",
			Properties: map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "The ClickHouse query to double check",
				},
			},
			Required: []string{"query"},
		},
		Handler: func(ctx context.Context, input map[string]any) (*ToolResult, error) {
			query, ok := input["query"].(string)
			if !ok {
				return &ToolResult{
					Content: "Error: query must be a string",
					IsError: true,
				}, fmt.Errorf("invalid query parameter")
			}

			checked, err := checker.Check(ctx, query)
			if err != nil {
				return &ToolResult{
					Content: fmt.Sprintf("Error: %v", err),
					IsError: true,
				}, nil
			}
			return &ToolResult{Content: checked}, nil
		},
	}
}

// stringSliceParam extracts an optional []string parameter from tool input.
// A missing key returns nil, which callers treat as "all tables".
func stringSliceParam(input map[string]any, key string) ([]string, error) {
	raw, ok := input[key]
	if !ok || raw == nil {
		return nil, nil
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s must be an array of strings", key)
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		name, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s must contain only strings", key)
		}
		names = append(names, name)
	}
	return names, nil
}
