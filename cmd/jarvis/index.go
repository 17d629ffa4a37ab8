package main

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/arunavtnt-prog/jarvis/internal/config"
	"github.com/arunavtnt-prog/jarvis/internal/memory/sqlite"
)

func indexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Vector index maintenance",
	}
	cmd.AddCommand(indexBuildCmd())
	return cmd
}

func indexBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the vector index from the fact store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.ValidateEmbedding(cfg); err != nil {
				return err
			}
			logger := newLogger(cmd)

			batchSize, _ := cmd.Flags().GetInt("batch-size")
			if batchSize <= 0 {
				batchSize = cfg.Embedding.BatchSize
			}
			assumeYes, _ := cmd.Flags().GetBool("yes")

			store, err := sqlite.Open(cfg.Paths.FactsDB, logger)
			if err != nil {
				return err
			}
			defer store.Close()

			fmt.Println("Building vector index from facts...")
			facts, err := store.LoadAll(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Loaded %d facts from database\n", len(facts))

			if len(facts) == 0 {
				fmt.Println("⚠ No facts found in database. Run ingest first.")
				return nil
			}

			index, err := openIndex(cfg, logger)
			if err != nil {
				return err
			}

			if existing := index.Count(); existing > 0 {
				fmt.Printf("⚠ Index already contains %d entries\n", existing)
				if !assumeYes && !confirmRebuild() {
					fmt.Println("Skipping index rebuild")
					return nil
				}
				if err := index.Reset(); err != nil {
					return err
				}
			}

			indexed, err := index.Build(cmd.Context(), facts, batchSize)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Vector index built with %d facts\n", indexed)
			return nil
		},
	}
	cmd.Flags().Int("batch-size", 0, "Embedding batch size (default: embedding.batch_size from config)")
	cmd.Flags().Bool("yes", false, "Rebuild without confirmation")
	return cmd
}

// confirmRebuild asks before wiping an existing index. Any prompt error,
// including a non-interactive terminal, counts as a refusal.
func confirmRebuild() bool {
	var confirmed bool
	err := huh.NewConfirm().
		Title("Do you want to rebuild the index?").
		Value(&confirmed).
		Run()
	return err == nil && confirmed
}
