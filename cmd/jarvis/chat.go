package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/arunavtnt-prog/jarvis/internal/config"
	"github.com/arunavtnt-prog/jarvis/internal/memory/sqlite"
	"github.com/arunavtnt-prog/jarvis/internal/provider"
	"github.com/arunavtnt-prog/jarvis/internal/rag"
	"github.com/arunavtnt-prog/jarvis/internal/vector"
)

// Styles
var (
	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat [question]",
		Short: "Talk to the assistant (interactive without arguments)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}
			logger := newLogger(cmd)
			verbose, _ := cmd.Flags().GetBool("verbose")
			interactive := len(args) == 0

			if interactive {
				fmt.Println("🤖 Initializing Jarvis...")
			}

			store, err := sqlite.Open(cfg.Paths.FactsDB, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			index, err := openIndex(cfg, logger)
			if err != nil {
				return err
			}

			llm, err := newProvider(cfg.LLM, logger)
			if err != nil {
				return err
			}

			engine, err := rag.NewEngine(index, llm, rag.NewLog(cfg.Paths.HistoryLog), rag.Config{
				UserName:      cfg.User.Name,
				TopK:          cfg.Retrieval.TopK,
				HistoryWindow: cfg.History.Window,
				HistoryLoad:   cfg.History.Load,
			}, logger)
			if err != nil {
				return err
			}
			defer engine.Close()

			if !interactive {
				return runOnce(cmd.Context(), engine, args[0], verbose)
			}

			fmt.Printf("✓ Jarvis ready for %s\n", cfg.User.Name)
			fmt.Printf("✓ Memory loaded: %d facts indexed\n", index.Count())
			fmt.Println()

			return runREPL(cmd.Context(), engine, store, index, cfg.User.Name, verbose)
		},
	}
}

// runOnce answers a single question and exits. Only the response (and
// optional metadata) goes to stdout, so the output can be piped.
func runOnce(ctx context.Context, engine *rag.Engine, query string, verbose bool) error {
	answer, err := engine.Query(ctx, query)
	if err != nil {
		return err
	}

	fmt.Println(answer.Text)
	if verbose {
		fmt.Println(metaStyle.Render(fmt.Sprintf("\n[Model: %s]", answer.Model)))
		fmt.Println(metaStyle.Render(fmt.Sprintf("[Retrieved %d memories]", answer.FactsRetrieved)))
	}
	return nil
}

func runREPL(ctx context.Context, engine *rag.Engine, store *sqlite.Store, index *vector.Index, name string, verbose bool) error {
	line := strings.Repeat("=", 60)
	fmt.Println(bannerStyle.Render(line))
	fmt.Println(bannerStyle.Render("  JARVIS - Personal AI Assistant for " + name))
	fmt.Println(bannerStyle.Render(line))
	fmt.Println("\nType /help for commands or start asking questions!")
	fmt.Println("Press Ctrl+C or type /exit to quit")

	sc := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("\n%s ", promptStyle.Render(name+":"))
		if !sc.Scan() {
			break
		}
		input := strings.TrimSpace(sc.Text())
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if !handleCommand(ctx, input, engine, store, index) {
				break
			}
			continue
		}

		answer, err := engine.Query(ctx, input)
		if err != nil {
			fmt.Printf("\n⚠ Error: %v\n", err)
			if provider.IsRetryable(err) {
				fmt.Println("This looks temporary; try again in a moment.")
			} else {
				fmt.Println("Please try again or check your API configuration.")
			}
			continue
		}

		fmt.Printf("\n%s %s\n", promptStyle.Render("Jarvis:"), answer.Text)
		if verbose {
			fmt.Println(metaStyle.Render(fmt.Sprintf("\n[Retrieved %d memories]", answer.FactsRetrieved)))
		}
	}

	fmt.Println("\n👋 Goodbye!")
	return sc.Err()
}

// handleCommand runs a slash command and reports whether the REPL
// should keep going.
func handleCommand(ctx context.Context, command string, engine *rag.Engine, store *sqlite.Store, index *vector.Index) bool {
	switch strings.ToLower(command) {
	case "/exit", "/quit":
		return false

	case "/help":
		printHelp()

	case "/stats":
		stats, err := store.Stats(ctx)
		if err != nil {
			fmt.Printf("\n⚠ Error: %v\n", err)
			return true
		}
		fmt.Println("\n=== Memory Statistics ===")
		fmt.Printf("Total facts: %d\n", stats.Total)
		fmt.Printf("Vector indexed: %d\n", index.Count())
		fmt.Println("\nFacts by type:")
		for _, tc := range stats.ByType {
			fmt.Printf("  %s: %d\n", tc.Type, tc.Count)
		}
		fmt.Println()

	case "/history":
		printHistory(engine.History())

	case "/clear":
		engine.ClearHistory()
		fmt.Println("✓ Conversation history cleared")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		fmt.Println("Type /help for available commands")
	}
	return true
}

func printHelp() {
	fmt.Println(`
Available commands:
  /help       - Show this help message
  /stats      - Show memory statistics
  /history    - Show recent conversation history
  /clear      - Clear conversation history
  /exit       - Exit Jarvis

Ask anything about yourself, get advice, or have a conversation!`)
}

func printHistory(turns []rag.Turn) {
	if len(turns) == 0 {
		fmt.Println("\nNo conversation history yet.")
		fmt.Println()
		return
	}

	if len(turns) > 10 {
		turns = turns[len(turns)-10:]
	}

	fmt.Println("\n=== Recent Conversations ===")
	for i, turn := range turns {
		fmt.Printf("\n%d. Q: %s\n", i+1, turn.Query)
		fmt.Printf("   A: %s...\n", clip(turn.Response, 150))
	}
	fmt.Println()
}
