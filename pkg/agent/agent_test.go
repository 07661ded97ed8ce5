package agent

import (
	"strings"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
)

func TestNewAgent_RequiresClient(t *testing.T) {
	if _, err := NewAgent(nil, ""); err == nil {
		t.Error("expected error for nil client")
	}
}

func TestNewAgent_Defaults(t *testing.T) {
	client := anthropic.NewClient()

	a, err := NewAgent(&client, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.model != DefaultModel {
		t.Errorf("expected default model, got %s", a.model)
	}
	if len(a.conversation) != 0 {
		t.Errorf("expected empty conversation, got %d messages", len(a.conversation))
	}
}

func TestAgent_AddToolAndClear(t *testing.T) {
	client := anthropic.NewClient()
	a, err := NewAgent(&client, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := a.AddTool(textTool("list_tables", "orders")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := a.AddTool(&Tool{Name: ""}); err == nil {
		t.Error("expected error for invalid tool")
	}

	a.conversation = append(a.conversation, anthropic.NewUserMessage(anthropic.NewTextBlock("hi")))
	a.ClearConversation()
	if len(a.conversation) != 0 {
		t.Error("expected conversation to be cleared")
	}
}

func TestAgent_SystemMessage(t *testing.T) {
	client := anthropic.NewClient()
	a, err := NewAgent(&client, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msg := a.systemMessage()
	for _, fragment := range []string{
		"ClickHouse",
		"DO NOT make any DML statements",
		"list_tables",
		"schema_info",
		"check_query",
		"run_query",
		"I don't know",
	} {
		if !strings.Contains(msg, fragment) {
			t.Errorf("system message should mention %q", fragment)
		}
	}
}
