package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prpkit/prpflow/internal/state"
)

var statusCmd = &cobra.Command{
	Use:   "status [run-id]",
	Short: "Show a planning run",
	Long:  `Show a persisted planning run: classification, detected stacks, phases and artifacts.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	store, err := state.NewStore(cfg.StateDir, cfg.LockTimeoutDuration())
	if err != nil {
		return fmt.Errorf("failed to initialize state: %w", err)
	}

	var run *state.Run
	if len(args) > 0 {
		run, err = store.LoadRun(args[0])
	} else {
		run, err = store.GetCurrentRun()
		if err == nil && run == nil {
			return fmt.Errorf("no current run; specify a run ID or plan a new feature")
		}
	}
	if err != nil {
		return fmt.Errorf("failed to load run: %w", err)
	}

	fmt.Printf("Run: %s\n", run.ID)
	fmt.Printf("Feature: %s\n", run.FeatureText)
	fmt.Printf("Status: %s\n", run.Status)
	fmt.Printf("Project: %s\n", run.ProjectRoot)
	fmt.Printf("Category: %s   Complexity: %s (score %d)\n",
		run.Feature.Category, run.Feature.ComplexityTier, run.Feature.ComplexityScore)
	fmt.Printf("Stacks: %s\n", strings.Join(run.StackIDs(), ", "))
	fmt.Printf("Created: %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Updated: %s\n", run.UpdatedAt.Format("2006-01-02 15:04:05"))

	if run.Error != "" {
		fmt.Printf("\nError: %s\n", run.Error)
	}

	if run.Plan != nil {
		fmt.Printf("\nPhases:\n")
		for i, ph := range run.Plan.Phases {
			fmt.Printf("  %d. %s (%s)\n", i+1, ph.Name, ph.Mode)
			for _, a := range ph.Assignments {
				fmt.Printf("       %s: %d task(s)\n", a.Role, len(a.Tasks))
			}
		}
	}

	if len(run.Layout.DocumentPaths) > 0 {
		fmt.Printf("\nArtifacts:\n")
		for _, doc := range sortedPaths(run) {
			fmt.Printf("  %s\n", doc)
		}
	}

	return nil
}

func sortedPaths(run *state.Run) []string {
	var paths []string
	for _, p := range run.Layout.DocumentPaths {
		paths = append(paths, p)
	}
	for _, p := range run.Layout.ImageSubdirs {
		paths = append(paths, p+"/")
	}
	sort.Strings(paths)
	return paths
}
