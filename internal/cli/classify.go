package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prpkit/prpflow/internal/classify"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [feature-description]",
	Short: "Classify a feature description",
	Long:  `Classify a feature description by category and complexity tier.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runClassify,
}

func runClassify(cmd *cobra.Command, args []string) error {
	feature := classify.Classify(args[0])

	fmt.Printf("Category: %s\n", feature.Category)
	fmt.Printf("Complexity: %s (score %d)\n", feature.ComplexityTier, feature.ComplexityScore)

	return nil
}
