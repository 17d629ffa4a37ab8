package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arunavtnt-prog/jarvis/internal/config"
)

func searchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the memory index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.ValidateEmbedding(cfg); err != nil {
				return err
			}
			logger := newLogger(cmd)

			topK, _ := cmd.Flags().GetInt("top-k")
			if topK <= 0 {
				topK = cfg.Retrieval.TopK
			}

			index, err := openIndex(cfg, logger)
			if err != nil {
				return err
			}

			fmt.Printf("\nSearching for: %s\n\n", args[0])
			results, err := index.Search(cmd.Context(), args[0], topK)
			if err != nil {
				return err
			}

			fmt.Printf("Found %d relevant facts:\n\n", len(results))
			for i, r := range results {
				fmt.Printf("%d. [%s] %s\n", i+1, r.Type, clip(r.Content, 200))
				fmt.Printf("   Distance: %.4f\n\n", r.Distance)
			}
			return nil
		},
	}
	cmd.Flags().Int("top-k", 0, "Number of results (default: retrieval.top_k from config)")
	return cmd
}
