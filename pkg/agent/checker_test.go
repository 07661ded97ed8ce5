package agent

import (
	"strings"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
)

func TestNewQueryChecker_RequiresClient(t *testing.T) {
	if _, err := NewQueryChecker(nil, "", "clickhouse"); err == nil {
		t.Error("expected error for nil client")
	}
}

func TestNewQueryChecker_DefaultModel(t *testing.T) {
	client := anthropic.NewClient()

	qc, err := NewQueryChecker(&client, "", "clickhouse")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if qc.model != DefaultModel {
		t.Errorf("expected default model %s, got %s", DefaultModel, qc.model)
	}

	qc, err = NewQueryChecker(&client, "claude-3-5-haiku-latest", "clickhouse")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if qc.model != "claude-3-5-haiku-latest" {
		t.Errorf("expected explicit model to win, got %s", qc.model)
	}
}

func TestQueryCheckerPrompt(t *testing.T) {
	prompt := strings.ReplaceAll(queryCheckerTemplate, "%s", "X")

	for _, fragment := range []string{
		"NOT IN with NULL values",
		"UNION ALL",
		"BETWEEN for exclusive ranges",
		"reproduce the original query",
	} {
		if !strings.Contains(prompt, fragment) {
			t.Errorf("checker prompt should mention %q", fragment)
		}
	}
}
