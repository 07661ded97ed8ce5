package agent

import (
	"context"
	"fmt"
	"sync"
)

// ToolRegistry manages available tools for the LLM
type ToolRegistry struct {
	tools map[string]*Tool
	order []string
	mutex sync.RWMutex
}

// NewToolRegistry creates a new tool registry
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{
		tools: make(map[string]*Tool),
	}
}

// RegisterTool adds a tool to the registry
func (tr *ToolRegistry) RegisterTool(tool *Tool) error {
	if tool == nil {
		return fmt.Errorf("tool cannot be nil")
	}
	if tool.Name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if tool.Handler == nil {
		return fmt.Errorf("tool handler cannot be nil")
	}

	tr.mutex.Lock()
	defer tr.mutex.Unlock()

	if _, exists := tr.tools[tool.Name]; !exists {
		tr.order = append(tr.order, tool.Name)
	}
	tr.tools[tool.Name] = tool
	return nil
}

// GetTool retrieves a tool by name
func (tr *ToolRegistry) GetTool(name string) (*Tool, bool) {
	tr.mutex.RLock()
	defer tr.mutex.RUnlock()

	tool, exists := tr.tools[name]
	return tool, exists
}

// GetAllTools returns all registered tools in registration order
func (tr *ToolRegistry) GetAllTools() []*Tool {
	tr.mutex.RLock()
	defer tr.mutex.RUnlock()

	tools := make([]*Tool, 0, len(tr.tools))
	for _, name := range tr.order {
		tools = append(tools, tr.tools[name])
	}
	return tools
}

// ExecuteTool executes a tool by name with given input
func (tr *ToolRegistry) ExecuteTool(ctx context.Context, name string, input map[string]any) (*ToolResult, error) {
	tool, exists := tr.GetTool(name)
	if !exists {
		return &ToolResult{
			Content: fmt.Sprintf("Tool '%s' not found", name),
			IsError: true,
		}, fmt.Errorf("tool '%s' not found", name)
	}

	result, err := tool.Handler(ctx, input)
	if err != nil {
		return &ToolResult{
			Content: fmt.Sprintf("Tool execution failed: %v", err),
			IsError: true,
		}, err
	}

	return result, nil
}

// ListToolNames returns all tool names in registration order
func (tr *ToolRegistry) ListToolNames() []string {
	tr.mutex.RLock()
	defer tr.mutex.RUnlock()

	names := make([]string, len(tr.order))
	copy(names, tr.order)
	return names
}
