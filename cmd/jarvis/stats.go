package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arunavtnt-prog/jarvis/internal/memory/sqlite"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show memory store statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(cmd)

			store, err := sqlite.Open(cfg.Paths.FactsDB, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}

			// The vector count is best-effort: a missing or mismatched
			// index should not hide the fact store numbers.
			indexed := 0
			if index, err := openIndex(cfg, logger); err == nil {
				indexed = index.Count()
			} else {
				logger.Warn("vector index unavailable", "error", err)
			}

			fmt.Println("\n=== Memory Store Statistics ===")
			fmt.Printf("Total facts: %d\n", stats.Total)
			fmt.Printf("Vector indexed: %d\n", indexed)
			fmt.Println("\nFacts by type:")
			for _, tc := range stats.ByType {
				fmt.Printf("  %s: %d\n", tc.Type, tc.Count)
			}
			return nil
		},
	}
}
