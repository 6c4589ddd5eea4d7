package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prpkit/prpflow/internal/state"
)

var (
	cleanAll   bool
	cleanForce bool
)

var cleanCmd = &cobra.Command{
	Use:   "clean [run-id...]",
	Short: "Remove planning run(s)",
	Long: `Remove persisted planning run(s). Scaffolded artifacts stay on disk.

Examples:
  prpflow clean abc123      # Clean specific run
  prpflow clean --all       # Clean all runs
  prpflow clean -f abc123   # Force clean without confirmation`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&cleanAll, "all", "a", false, "clean all runs")
	cleanCmd.Flags().BoolVarP(&cleanForce, "force", "f", false, "skip confirmation")
}

func runClean(cmd *cobra.Command, args []string) error {
	store, err := state.NewStore(cfg.StateDir, cfg.LockTimeoutDuration())
	if err != nil {
		return fmt.Errorf("failed to initialize state: %w", err)
	}

	var runsToClean []*state.Run

	if cleanAll {
		runsToClean, err = store.ListRuns()
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}
	} else if len(args) > 0 {
		for _, id := range args {
			run, err := store.LoadRun(id)
			if err != nil {
				fmt.Printf("Warning: run %s not found\n", id)
				continue
			}
			runsToClean = append(runsToClean, run)
		}
	} else {
		return fmt.Errorf("specify run ID(s) or use --all")
	}

	if len(runsToClean) == 0 {
		fmt.Println("No runs to clean")
		return nil
	}

	if !cleanForce {
		fmt.Printf("This will remove %d run(s):\n", len(runsToClean))
		for _, run := range runsToClean {
			fmt.Printf("  - %s: %s\n", run.ID, run.FeatureText)
		}
		fmt.Print("\nContinue? [y/N] ")

		var response string
		fmt.Scanln(&response)
		if strings.ToLower(response) != "y" && strings.ToLower(response) != "yes" {
			fmt.Println("Cancelled")
			return nil
		}
	}

	for _, run := range runsToClean {
		if err := store.DeleteRun(run.ID); err != nil {
			fmt.Printf("Warning: failed to remove run %s: %v\n", run.ID, err)
		} else {
			fmt.Printf("Removed run: %s\n", run.ID)
		}
	}

	fmt.Printf("\nCleaned %d run(s)\n", len(runsToClean))
	return nil
}
