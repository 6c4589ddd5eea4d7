package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prpkit/prpflow/internal/state"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List planning runs",
	Long:  `List all persisted planning runs and their status, newest first.`,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	store, err := state.NewStore(cfg.StateDir, cfg.LockTimeoutDuration())
	if err != nil {
		return fmt.Errorf("failed to initialize state: %w", err)
	}

	runs, err := store.ListRuns()
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs found")
		return nil
	}

	currentID, _ := store.GetCurrentRunID()

	fmt.Printf("%-10s %-12s %-40s %-14s %s\n", "ID", "STATUS", "FEATURE", "CATEGORY", "TIER")
	fmt.Printf("%-10s %-12s %-40s %-14s %s\n", "---", "------", "-------", "--------", "----")

	for _, run := range runs {
		feature := run.FeatureText
		if len(feature) > 38 {
			feature = feature[:35] + "..."
		}

		marker := " "
		if run.ID == currentID {
			marker = "*"
		}

		fmt.Printf("%s%-9s %-12s %-40s %-14s %s\n",
			marker,
			run.ID,
			run.Status,
			feature,
			run.Feature.Category,
			run.Feature.ComplexityTier)
	}

	fmt.Printf("\n* = current run\n")
	return nil
}
