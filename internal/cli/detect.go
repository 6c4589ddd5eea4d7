package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var detectRoot string

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect template stacks in the project root",
	Long:  `Detect which known template stacks are present, printed in registry order.`,
	RunE:  runDetect,
}

func init() {
	detectCmd.Flags().StringVar(&detectRoot, "root", "", "project root (default: discovered from cwd)")
}

func runDetect(cmd *cobra.Command, args []string) error {
	projectRoot, err := resolveProjectRoot(detectRoot)
	if err != nil {
		return err
	}

	entries, err := readRootEntries(projectRoot)
	if err != nil {
		return fmt.Errorf("failed to read project root: %w", err)
	}

	stacks := cfg.Registry().Detect(entries)
	if len(stacks) == 0 {
		fmt.Println("No template stacks detected")
		return nil
	}

	fmt.Printf("%-10s %-28s %s\n", "KIND", "STACK", "PATH")
	fmt.Printf("%-10s %-28s %s\n", "----", "-----", "----")
	for _, s := range stacks {
		fmt.Printf("%-10s %-28s %s\n", s.Kind, s.ID, s.RootPath)
	}

	return nil
}
