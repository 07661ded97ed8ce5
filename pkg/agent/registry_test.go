package agent

import (
	"context"
	"reflect"
	"strings"
	"testing"
)

func textTool(name, content string) *Tool {
	return &Tool{
		Name:        name,
		Description: "test tool",
		InputSchema: ToolSchema{Type: "object", Properties: map[string]any{}},
		Handler: func(ctx context.Context, input map[string]any) (*ToolResult, error) {
			return &ToolResult{Content: content}, nil
		},
	}
}

func TestToolRegistry_RegisterValidation(t *testing.T) {
	tr := NewToolRegistry()

	if err := tr.RegisterTool(nil); err == nil {
		t.Error("expected error registering nil tool")
	}
	if err := tr.RegisterTool(&Tool{Handler: func(context.Context, map[string]any) (*ToolResult, error) { return nil, nil }}); err == nil {
		t.Error("expected error registering unnamed tool")
	}
	if err := tr.RegisterTool(&Tool{Name: "no_handler"}); err == nil {
		t.Error("expected error registering tool without handler")
	}
	if err := tr.RegisterTool(textTool("ok", "fine")); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestToolRegistry_PreservesRegistrationOrder(t *testing.T) {
	tr := NewToolRegistry()
	names := []string{"list_tables", "schema_info", "run_query", "check_query"}
	for _, name := range names {
		if err := tr.RegisterTool(textTool(name, name)); err != nil {
			t.Fatalf("failed to register %s: %v", name, err)
		}
	}

	if got := tr.ListToolNames(); !reflect.DeepEqual(got, names) {
		t.Errorf("expected %v, got %v", names, got)
	}

	all := tr.GetAllTools()
	for i, tool := range all {
		if tool.Name != names[i] {
			t.Errorf("expected tool %d to be %s, got %s", i, names[i], tool.Name)
		}
	}
}

func TestToolRegistry_ExecuteUnknownTool(t *testing.T) {
	tr := NewToolRegistry()

	result, err := tr.ExecuteTool(context.Background(), "nope", nil)
	if err == nil {
		t.Error("expected error for unknown tool")
	}
	if result == nil || !result.IsError {
		t.Error("expected an error result for unknown tool")
	}
	if !strings.Contains(result.Content, "nope") {
		t.Errorf("result should name the missing tool: %q", result.Content)
	}
}

func TestToolRegistry_ExecuteTool(t *testing.T) {
	tr := NewToolRegistry()
	if err := tr.RegisterTool(textTool("greet", "hello")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := tr.ExecuteTool(context.Background(), "greet", map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Content != "hello" {
		t.Errorf("expected hello, got %q", result.Content)
	}
}
