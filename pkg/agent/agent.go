package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
)

// DefaultModel is used when no model is configured
const DefaultModel = "claude-sonnet-4-0"

// Agent drives the conversation loop between the model and the database tools
type Agent struct {
	client       *anthropic.Client
	registry     *ToolRegistry
	conversation []anthropic.MessageParam
	model        string
}

// NewAgent creates an agent around an already-constructed Anthropic client
func NewAgent(client *anthropic.Client, model string) (*Agent, error) {
	if client == nil {
		return nil, fmt.Errorf("anthropic client is required")
	}
	if model == "" {
		model = DefaultModel
	}

	return &Agent{
		client:       client,
		registry:     NewToolRegistry(),
		conversation: []anthropic.MessageParam{},
		model:        model,
	}, nil
}

// AddTool registers a tool with the agent
func (a *Agent) AddTool(tool *Tool) error {
	return a.registry.RegisterTool(tool)
}

// ClearConversation clears the conversation history
func (a *Agent) ClearConversation() {
	a.conversation = []anthropic.MessageParam{}
}

// systemMessage builds the agent instructions. The wording follows the
// ClickHouse SQL-agent prefix: columnar guidance, a result limit, and a hard
// read-only rule.
func (a *Agent) systemMessage() string {
	return `You are an agent designed to interact with a ClickHouse database, which is a column-oriented database management system.
Given an input question, create a syntactically correct ClickHouse query to run, then look at the results of the query and return the answer.
Unless the user specifies a specific number of examples they wish to obtain, always limit your query to at most 10 results.
You can order the results by a relevant column to return the most interesting examples in the database.
When querying, only ask for the relevant columns given the question, as accessing a large number of columns in a single query can be computationally expensive.
Remember that columnar databases can offer high compression rates, so if you're querying for a small number of columns, the amount of data you're scanning may be much less than the size of the actual table.
You have access to tools for interacting with the database.
Only use the below tools. Only use the information returned by the below tools to construct your final answer.
Pay attention to use only the column names you can see in the tables below. Be careful to not query for columns that do not exist. Also, pay attention to which column is in which table.
Pay attention to use today() function to get the current date, if the question involves "today".
You MUST double check your query before executing it. If you get an error while executing a query, rewrite the query and try again.

DO NOT make any DML statements (INSERT, UPDATE, DELETE, DROP etc.) to the database.

Available tools:
- list_tables: See the tables available in the database
- schema_info: Get the schema and sample rows for specific tables
- check_query: Double check a query before running it
- run_query: Execute a ClickHouse query and get the result

Unless the user has provided specific table names, always start by calling list_tables, then schema_info for the relevant tables.

If the question does not seem related to the database, just return "I don't know" as the answer.`
}

// SendMessage sends a message and handles tool calling until the model
// produces a plain text answer
func (a *Agent) SendMessage(ctx context.Context, userMessage string) (string, error) {
	a.conversation = append(a.conversation, anthropic.NewUserMessage(anthropic.NewTextBlock(userMessage)))

	systemMessage := a.systemMessage()

	for {
		message, err := a.runInference(ctx, a.conversation, systemMessage)
		if err != nil {
			return "", err
		}
		a.conversation = append(a.conversation, message.ToParam())

		var textResponse string
		toolResults := []anthropic.ContentBlockParamUnion{}

		for _, content := range message.Content {
			switch content.Type {
			case "text":
				textResponse += content.Text
			case "tool_use":
				fmt.Printf("🛠️  LLM called tool: %s\n", content.Name)
				result := a.executeTool(ctx, content.ID, content.Name, content.Input)
				toolResults = append(toolResults, result)
			}
		}

		// If no tools were used, return the text response
		if len(toolResults) == 0 {
			return textResponse, nil
		}

		// Add tool results and continue the conversation
		a.conversation = append(a.conversation, anthropic.NewUserMessage(toolResults...))
	}
}

// runInference makes the API call
func (a *Agent) runInference(ctx context.Context, conversation []anthropic.MessageParam, systemMessage string) (*anthropic.Message, error) {
	tools := a.registry.GetAllTools()
	anthropicTools := make([]anthropic.ToolUnionParam, len(tools))
	for i, tool := range tools {
		schema := anthropic.ToolInputSchemaParam{
			Type:       "object",
			Properties: tool.InputSchema.Properties,
			Required:   tool.InputSchema.Required,
		}
		anthropicTools[i] = anthropic.ToolUnionParamOfTool(schema, tool.Name)
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: 4000,
		System: []anthropic.TextBlockParam{
			{Text: systemMessage},
		},
		Messages: conversation,
	}

	if len(anthropicTools) > 0 {
		params.Tools = anthropicTools
	}

	return a.client.Messages.New(ctx, params)
}

// executeTool runs a tool through the registry and wraps the outcome as a
// tool result block
func (a *Agent) executeTool(ctx context.Context, id, name string, input json.RawMessage) anthropic.ContentBlockParamUnion {
	var inputMap map[string]any
	if len(input) > 0 {
		if err := json.Unmarshal(input, &inputMap); err != nil {
			return toolResultBlock(id, fmt.Sprintf("invalid tool input: %v", err), true)
		}
	}

	result, err := a.registry.ExecuteTool(ctx, name, inputMap)
	if err != nil {
		return toolResultBlock(id, result.Content, true)
	}

	return toolResultBlock(id, result.Content, result.IsError)
}

func toolResultBlock(id, content string, isError bool) anthropic.ContentBlockParamUnion {
	return anthropic.ContentBlockParamUnion{
		OfToolResult: &anthropic.ToolResultBlockParam{
			ToolUseID: id,
			IsError:   anthropic.Bool(isError),
			Content: []anthropic.ToolResultBlockParamContentUnion{
				{OfText: &anthropic.TextBlockParam{Text: content}},
			},
		},
	}
}
