package archdoc

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/prpkit/prpflow/internal/stack"
)

// Builder assembles the architecture-doc context pack for a project.
// Each detected stack's architecture document is read as opaque text
// and fitted into a token budget; documents are never parsed.
type Builder struct {
	projectRoot string
	maxTokens   int
}

// NewBuilder creates a builder rooted at the project directory
func NewBuilder(projectRoot string, maxTokens int) *Builder {
	return &Builder{
		projectRoot: projectRoot,
		maxTokens:   maxTokens,
	}
}

// BuildPack reads the architecture doc of every detected stack and
// joins them into one pack, in stack detection order. Missing docs
// are skipped; a stack without an architecture doc is not an error.
func (b *Builder) BuildPack(stacks []stack.Descriptor) (string, error) {
	budget := NewTokenBudget(b.maxTokens, 500) // Reserve for prompt template

	var parts []string
	for _, s := range stacks {
		fullPath := filepath.Join(b.projectRoot, filepath.FromSlash(s.ArchDocPath))
		content, err := os.ReadFile(fullPath)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return "", fmt.Errorf("failed to read %s: %w", s.ArchDocPath, err)
		}

		formatted := fmt.Sprintf("## Architecture: %s\n\n%s", s.ID, string(content))
		tokens := EstimateTokens(formatted)

		if budget.CanFit(tokens) {
			budget.Use(tokens)
			parts = append(parts, formatted)
			continue
		}

		minTokens := 100
		if truncated, ok := budget.TryFitContent(formatted, minTokens); ok {
			parts = append(parts, truncated)
		}
	}

	if len(parts) == 0 {
		return "", nil
	}

	return "# Stack Conventions\n\n" + strings.Join(parts, "\n\n---\n\n"), nil
}
