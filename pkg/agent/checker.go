package agent

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
)

// queryCheckerTemplate asks the model to audit a candidate query for the
// classic SQL mistakes and either rewrite it or reproduce it unchanged.
const queryCheckerTemplate = `%s
Double check the %s query above for common mistakes, including:
- Using NOT IN with NULL values
- Using UNION when UNION ALL should have been used
- Using BETWEEN for exclusive ranges
- Data type mismatch in predicates
- Properly quoting identifiers
- Using the correct number of arguments for functions
- Casting to the correct data type
- Using the proper columns for joins

If there are any of the above mistakes, rewrite the query. If there are no mistakes, just reproduce the original query.`

// QueryChecker validates or rewrites candidate queries through a single
// completion round-trip. The client must be constructed by the caller; the
// checker never builds one with hidden defaults.
type QueryChecker struct {
	client  *anthropic.Client
	model   string
	dialect string
}

// NewQueryChecker creates a QueryChecker for the given dialect
func NewQueryChecker(client *anthropic.Client, model, dialect string) (*QueryChecker, error) {
	if client == nil {
		return nil, fmt.Errorf("anthropic client is required")
	}
	if model == "" {
		model = DefaultModel
	}
	return &QueryChecker{
		client:  client,
		model:   model,
		dialect: dialect,
	}, nil
}

// Check submits the query for review and returns the model's version of it
func (qc *QueryChecker) Check(ctx context.Context, query string) (string, error) {
	prompt := fmt.Sprintf(queryCheckerTemplate, query, qc.dialect)

	message, err := qc.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(qc.model),
		MaxTokens: 1024,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("query check failed: %w", err)
	}

	var text string
	for _, content := range message.Content {
		if content.Type == "text" {
			text += content.Text
		}
	}
	return text, nil
}
