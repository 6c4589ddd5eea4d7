package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/prpkit/prpflow/internal/archdoc"
	"github.com/prpkit/prpflow/internal/classify"
	"github.com/prpkit/prpflow/internal/layout"
	"github.com/prpkit/prpflow/internal/plan"
	"github.com/prpkit/prpflow/internal/scaffold"
	"github.com/prpkit/prpflow/internal/state"
	"github.com/prpkit/prpflow/internal/tui"
	"github.com/prpkit/prpflow/pkg/git"
)

var (
	planRoot     string
	planDeploy   bool
	planYes      bool
	planNoCommit bool
)

var planCmd = &cobra.Command{
	Use:   "plan [feature-description]",
	Short: "Plan a feature and scaffold its artifact layout",
	Long: `Plan a feature implementation.

This command will:
1. Detect which template stacks are present in the project root
2. Classify the feature description by category and complexity
3. Assemble a phased task plan with role assignments and quality gates
4. Show the plan for review, then scaffold the feature's artifact layout`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planRoot, "root", "", "project root (default: discovered from cwd)")
	planCmd.Flags().BoolVar(&planDeploy, "deploy", false, "include the Deployment phase regardless of complexity")
	planCmd.Flags().BoolVarP(&planYes, "yes", "y", false, "skip the review screen and scaffold immediately")
	planCmd.Flags().BoolVar(&planNoCommit, "no-commit", false, "do not git-commit scaffolded artifacts")
}

func runPlan(cmd *cobra.Command, args []string) error {
	featureText := args[0]

	projectRoot, err := resolveProjectRoot(planRoot)
	if err != nil {
		return err
	}

	entries, err := readRootEntries(projectRoot)
	if err != nil {
		return fmt.Errorf("failed to read project root: %w", err)
	}

	// Detection and classification are independent of each other
	stacks := cfg.Registry().Detect(entries)
	feature := classify.Classify(featureText)

	p, err := plan.Assemble(stacks, feature, plan.Options{
		ForceDeployment: planDeploy,
		GateParams:      cfg.Gates,
	})
	if err != nil {
		return err
	}

	artifactLayout := layout.Build(featureText, stacks)

	store, err := state.NewStore(cfg.StateDir, cfg.LockTimeoutDuration())
	if err != nil {
		return fmt.Errorf("failed to initialize state: %w", err)
	}

	run, err := store.CreateRun(featureText, projectRoot)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	run.Feature = feature
	run.Stacks = stacks
	run.Plan = p
	run.Layout = artifactLayout
	if err := store.SaveRun(run); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	archPack, err := archdoc.NewBuilder(projectRoot, cfg.ContextMaxTokens).BuildPack(stacks)
	if err != nil {
		return fmt.Errorf("failed to build architecture pack: %w", err)
	}

	commit := cfg.CommitArtifacts && !planNoCommit && git.IsGitRepo(projectRoot)
	scaffolder := scaffold.New(projectRoot, commit)

	var result *scaffold.Result
	if planYes {
		result, err = scaffolder.Materialize(run, archPack)
	} else {
		outcome, tuiErr := tui.Run(run, scaffolder, archPack)
		if tuiErr != nil {
			return tuiErr
		}
		if !outcome.Confirmed {
			fmt.Printf("Plan %s saved; scaffolding skipped\n", run.ID)
			return nil
		}
		result, err = outcome.Result, outcome.Err
	}

	if err != nil {
		_ = store.SetRunStatus(run.ID, state.RunStatusFailed, err.Error())
		return err
	}
	if err := store.SetRunStatus(run.ID, state.RunStatusScaffolded, ""); err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}

	printScaffoldResult(run, result)
	return nil
}

func printScaffoldResult(run *state.Run, result *scaffold.Result) {
	fmt.Printf("Run: %s\n", run.ID)
	fmt.Printf("Category: %s   Complexity: %s (score %d)\n",
		run.Feature.Category, run.Feature.ComplexityTier, run.Feature.ComplexityScore)
	fmt.Printf("Phases: %d\n", run.PhaseCount())
	fmt.Printf("\nScaffolded under %s:\n", result.FeatureDir)
	for _, doc := range result.Documents {
		fmt.Printf("  %s\n", doc)
	}
	for _, p := range result.Prompts {
		fmt.Printf("  %s\n", p)
	}
	dirs := append([]string(nil), result.ImageSubdirs...)
	sort.Strings(dirs)
	for _, d := range dirs {
		fmt.Printf("  %s/\n", d)
	}
	if result.CommitSHA != "" {
		fmt.Printf("\nCommitted as %s\n", result.CommitSHA[:8])
	}
}

// resolveProjectRoot returns the explicit root when given, otherwise
// the enclosing git repository root, otherwise the current directory.
func resolveProjectRoot(explicit string) (string, error) {
	if explicit != "" {
		info, err := os.Stat(explicit)
		if err != nil {
			return "", fmt.Errorf("project root %q: %w", explicit, err)
		}
		if !info.IsDir() {
			return "", fmt.Errorf("project root %q is not a directory", explicit)
		}
		return explicit, nil
	}

	if root, err := git.FindRepoRootFromCwd(); err == nil {
		return root, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return cwd, nil
}

// readRootEntries lists the top-level directory names of the project
// root. This listing is the only filesystem input detection sees.
func readRootEntries(projectRoot string) ([]string, error) {
	dirEntries, err := os.ReadDir(projectRoot)
	if err != nil {
		return nil, err
	}

	var entries []string
	for _, e := range dirEntries {
		if e.IsDir() {
			entries = append(entries, e.Name())
		}
	}
	return entries, nil
}
