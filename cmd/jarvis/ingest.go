package main

import (
	"cmp"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/arunavtnt-prog/jarvis/internal/extract"
	"github.com/arunavtnt-prog/jarvis/internal/memory"
	"github.com/arunavtnt-prog/jarvis/internal/memory/sqlite"
)

func ingestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <export.json>",
		Short: "Extract facts from a chat export into the memory store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(cmd)

			author, _ := cmd.Flags().GetString("author")
			if author == "" {
				author = cfg.User.Name
			}

			fmt.Printf("Loading chat export from %s...\n", args[0])
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			msgs, err := extract.ParseExport(raw)
			if err != nil {
				return err
			}
			fmt.Printf("✓ Loaded %d messages\n", len(msgs))

			mine := extract.FilterByAuthor(msgs, author)
			fmt.Printf("✓ Filtered %d messages from %s\n", len(mine), author)

			fmt.Println("Extracting facts from messages...")
			facts := extract.Extract(mine)
			fmt.Printf("✓ Extracted %d facts\n", len(facts))

			store, err := sqlite.Open(cfg.Paths.FactsDB, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			fmt.Println("Saving facts to database...")
			inserted, err := store.InsertMany(cmd.Context(), facts)
			if err != nil {
				return err
			}
			fmt.Printf("✓ Saved %d facts to %s\n", inserted, cfg.Paths.FactsDB)

			fmt.Println("\n=== Processing Complete ===")
			fmt.Printf("Total messages processed: %d\n", len(msgs))
			fmt.Printf("User messages: %d\n", len(mine))
			fmt.Printf("Facts extracted: %d\n", len(facts))

			printDistribution(facts)
			return nil
		},
	}
	cmd.Flags().String("author", "", "Author to filter by (default: user.name from config)")
	return cmd
}

// printDistribution prints this run's per-type fact counts, most common
// first.
func printDistribution(facts []memory.Fact) {
	if len(facts) == 0 {
		return
	}

	counts := make(map[string]int)
	for _, f := range facts {
		counts[f.Type]++
	}

	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	slices.SortFunc(types, func(a, b string) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	fmt.Println("\nFact Distribution:")
	for _, t := range types {
		fmt.Printf("  %s: %d\n", t, counts[t])
	}
}
