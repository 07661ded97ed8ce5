package agent

import "context"

// Tool represents a function that the LLM can call
type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema ToolSchema  `json:"input_schema"`
	Handler     ToolHandler `json:"-"`
}

// ToolSchema defines the JSON schema for tool input
type ToolSchema struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Required   []string       `json:"required,omitempty"`
}

// ToolHandler is a function that executes a tool
type ToolHandler func(ctx context.Context, input map[string]any) (*ToolResult, error)

// ToolResult represents the result of tool execution
type ToolResult struct {
	Content string `json:"content"`
	IsError bool   `json:"is_error,omitempty"`
}
