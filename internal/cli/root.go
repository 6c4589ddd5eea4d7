package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prpkit/prpflow/internal/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "prpflow",
	Short: "Template detection and task planning for PRP projects",
	Long: `prpflow turns a feature request into a deterministic task plan:
  • Detects which technology stacks are present in the project root
  • Classifies the feature by category and complexity
  • Assembles a phased plan with role assignments and quality gates
  • Scaffolds the feature's PRP artifact layout on disk`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.prpflow/config.toml)")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(cleanCmd)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// GetConfig returns the loaded configuration
func GetConfig() *config.Config {
	return cfg
}
