package chat

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/chzyer/readline"

	"github.com/chbabble/chbabble/pkg/agent"
	"github.com/chbabble/chbabble/pkg/db"
	"github.com/chbabble/chbabble/pkg/display"
	uerrors "github.com/chbabble/chbabble/pkg/errors"
)

// Session represents an interactive chat session
type Session struct {
	database   *db.Database
	rl         *readline.Instance
	agent      *agent.Agent
	checker    *agent.QueryChecker
	model      string
	agentReady bool
}

// NewSession creates a new chat session around a database wrapper
func NewSession(database *db.Database, model string) *Session {
	return &Session{
		database: database,
		model:    model,
	}
}

// Start begins the interactive chat session
func (s *Session) Start(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "chbabble> ",
		HistoryFile: os.ExpandEnv("$HOME/.chbabble_history"),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer rl.Close()

	s.rl = rl

	// Initialize agent if API key is available
	s.initializeAgent()

	// Main chat loop
	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if len(line) == 0 {
					break
				}
				continue
			}
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if err := s.handleCommand(ctx, line); err != nil {
				uerrors.UserError("%v", err)
			}
			continue
		}

		if err := s.handleQuery(ctx, line); err != nil {
			uerrors.UserError("%v", err)
		}
	}

	fmt.Println("Goodbye!")
	return nil
}

// handleCommand processes slash commands
func (s *Session) handleCommand(ctx context.Context, cmd string) error {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return nil
	}

	switch parts[0] {
	case "/quit", "/exit", "/q":
		os.Exit(0)

	case "/help", "/h":
		s.showHelp()

	case "/tables", "/t":
		fmt.Println(strings.Join(s.database.UsableTableNames(), ", "))

	case "/schema", "/s":
		fmt.Println(s.database.TableInfoNoThrow(ctx, nil))

	case "/describe", "/d":
		if len(parts) < 2 {
			return fmt.Errorf("usage: /describe <table_name>")
		}
		fmt.Println(s.database.TableInfoNoThrow(ctx, []string{parts[1]}))

	case "/run", "/r":
		if len(parts) < 2 {
			return fmt.Errorf("usage: /run <query>")
		}
		query := strings.TrimSpace(strings.TrimPrefix(cmd, parts[0]))
		return s.runQuery(ctx, query)

	case "/check", "/c":
		if len(parts) < 2 {
			return fmt.Errorf("usage: /check <query>")
		}
		if !s.agentReady {
			return fmt.Errorf("query checking requires the AI assistant (set ANTHROPIC_API_KEY)")
		}
		query := strings.TrimSpace(strings.TrimPrefix(cmd, parts[0]))
		checked, err := s.checker.Check(ctx, query)
		if err != nil {
			return err
		}
		fmt.Println(checked)

	case "/refresh":
		if err := s.database.RefreshTables(ctx); err != nil {
			return fmt.Errorf("failed to refresh tables: %w", err)
		}
		uerrors.UserInfo("Table list refreshed: %s", strings.Join(s.database.UsableTableNames(), ", "))

	default:
		return fmt.Errorf("unknown command: %s (type /help for available commands)", parts[0])
	}

	return nil
}

// runQuery executes a query through the guarded executor and prints the result
func (s *Session) runQuery(ctx context.Context, query string) error {
	result := s.database.Run(ctx, query)
	if result == "" {
		uerrors.UserInfo("Query returned no rows")
		return nil
	}
	fmt.Println(display.Rule("-", 50))
	fmt.Println(result)
	fmt.Println(display.Rule("-", 50))
	return nil
}

// handleQuery processes natural language queries using the LLM agent
func (s *Session) handleQuery(ctx context.Context, query string) error {
	if !s.agentReady {
		fmt.Println("❌ LLM agent not available")
		fmt.Println("💡 To enable AI features, set your ANTHROPIC_API_KEY environment variable")
		fmt.Println()
		fmt.Println("🔍 In the meantime, you can explore the database using:")
		fmt.Println("   /tables   - List the usable tables")
		fmt.Println("   /schema   - View the full schema")
		fmt.Println("   /describe <table> - Describe a specific table")
		fmt.Println("   /run <query> - Execute a query")
		return nil
	}

	fmt.Printf("🤔 Processing: %s\n", query)
	fmt.Println()

	response, err := s.agent.SendMessage(ctx, query)
	if err != nil {
		uerrors.APIError("Anthropic", err)
		return nil
	}

	fmt.Println("🤖 AI Response:")
	fmt.Println(display.Rule("=", 50))
	fmt.Println(response)
	fmt.Println()

	return nil
}

// initializeAgent sets up the LLM agent with the database tools
func (s *Session) initializeAgent() {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		uerrors.UserInfo("LLM features not available: ANTHROPIC_API_KEY is not set")
		fmt.Println()
		return
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	checker, err := agent.NewQueryChecker(&client, s.model, s.database.Dialect())
	if err != nil {
		uerrors.UserError("Failed to create query checker: %v", err)
		return
	}

	agentClient, err := agent.NewAgent(&client, s.model)
	if err != nil {
		uerrors.UserError("Failed to create agent: %v", err)
		return
	}

	for _, tool := range agent.CreateDatabaseTools(s.database, checker) {
		if err := agentClient.AddTool(tool); err != nil {
			uerrors.UserError("Failed to register tool: %v", err)
			return
		}
	}

	s.agent = agentClient
	s.checker = checker
	s.agentReady = true
	fmt.Println("✅ AI assistant ready with database schema tools!")
	fmt.Println()
}

// showHelp displays available commands
func (s *Session) showHelp() {
	fmt.Println("Available commands:")
	fmt.Println("  /help, /h          Show this help message")
	fmt.Println("  /quit, /exit, /q   Exit chbabble")
	fmt.Println("  /tables, /t        List the usable tables")
	fmt.Println("  /schema, /s        Show schema info for all usable tables")
	fmt.Println("  /describe <table>  Describe a specific table")
	fmt.Println("  /run <query>       Execute a query directly")
	fmt.Println("  /check <query>     Ask the AI to double check a query")
	fmt.Println("  /refresh           Re-read the table list from the server")
	fmt.Println()
	fmt.Println("Or just type a natural language question about your data!")
}
