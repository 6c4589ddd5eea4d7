package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/prpkit/prpflow/internal/layout"
	"github.com/prpkit/prpflow/internal/plan"
	"github.com/prpkit/prpflow/internal/prompt"
	"github.com/prpkit/prpflow/internal/state"
	"github.com/prpkit/prpflow/pkg/git"
)

// PlanFileName is the rendered plan document inside the feature folder
const PlanFileName = "plan.md"

// PromptsDir holds the rendered per-role prompts inside the feature folder
const PromptsDir = "prompts"

// Scaffolder materializes a run's artifact layout on disk
type Scaffolder struct {
	projectRoot string
	commit      bool
}

// New creates a scaffolder rooted at the project directory.
// When commit is true, scaffolded artifacts are staged and committed.
func New(projectRoot string, commit bool) *Scaffolder {
	return &Scaffolder{projectRoot: projectRoot, commit: commit}
}

// Result lists what was written
type Result struct {
	FeatureDir   string
	Documents    []string
	Prompts      []string
	ImageSubdirs []string
	CommitSHA    string
}

// Materialize writes the feature folder: document skeletons, the
// rendered plan, per-role prompts and the image subdirectories. The
// run must carry an assembled plan and a non-degenerate layout.
func (s *Scaffolder) Materialize(run *state.Run, archPack string) (*Result, error) {
	if run.Plan == nil {
		return nil, fmt.Errorf("run %s has no assembled plan", run.ID)
	}
	featureDir := run.Layout.FeatureDir()
	if featureDir == "" {
		return nil, fmt.Errorf("run %s has a degenerate layout; nothing to scaffold", run.ID)
	}

	absFeatureDir := filepath.Join(s.projectRoot, filepath.FromSlash(featureDir))
	if err := os.MkdirAll(absFeatureDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create feature directory: %w", err)
	}

	result := &Result{FeatureDir: featureDir}

	data := docData{
		FeatureText: run.FeatureText,
		Slug:        run.Layout.FeatureSlug,
		Category:    string(run.Feature.Category),
		Tier:        string(run.Feature.ComplexityTier),
		Stacks:      run.Stacks,
	}

	// Document skeletons, contract first
	for _, kind := range documentOrder(run.Layout) {
		relPath := run.Layout.DocumentPaths[kind]
		content, err := renderDocument(kind, data)
		if err != nil {
			return nil, err
		}
		if err := s.writeFile(relPath, content); err != nil {
			return nil, err
		}
		result.Documents = append(result.Documents, relPath)
	}

	// Rendered plan
	planPath := featureDir + "/" + PlanFileName
	if err := s.writeFile(planPath, renderPlan(run.Plan)); err != nil {
		return nil, err
	}
	result.Documents = append(result.Documents, planPath)

	// Per-role prompts, in phase order
	for i, ph := range run.Plan.Phases {
		for _, a := range ph.Assignments {
			name := fmt.Sprintf("%02d-%s-%s.md", i+1, strings.ToLower(ph.Name), roleSlug(a.Role))
			relPath := featureDir + "/" + PromptsDir + "/" + name
			content := prompt.BuildRolePrompt(a, run.FeatureText, run.Stacks, archPack)
			if err := s.writeFile(relPath, content); err != nil {
				return nil, err
			}
			result.Prompts = append(result.Prompts, relPath)
		}
	}

	// Image subdirectories with .gitkeep so they survive a commit
	for _, sub := range layout.ImageSubdirNames() {
		relPath, ok := run.Layout.ImageSubdirs[sub]
		if !ok {
			continue
		}
		absPath := filepath.Join(s.projectRoot, filepath.FromSlash(relPath))
		if err := os.MkdirAll(absPath, 0755); err != nil {
			return nil, fmt.Errorf("failed to create image directory: %w", err)
		}
		if err := os.WriteFile(filepath.Join(absPath, ".gitkeep"), nil, 0644); err != nil {
			return nil, fmt.Errorf("failed to write .gitkeep: %w", err)
		}
		result.ImageSubdirs = append(result.ImageSubdirs, relPath)
	}

	if s.commit {
		sha, err := s.commitArtifacts(run)
		if err != nil {
			// Scaffolding succeeded; a failed commit is reported, not fatal
			return result, fmt.Errorf("artifacts written but not committed: %w", err)
		}
		result.CommitSHA = sha
	}

	return result, nil
}

// documentOrder returns the layout's document kinds in a fixed order:
// the API contract first, then backend, frontend, mobile.
func documentOrder(l layout.Layout) []layout.DocKind {
	order := []layout.DocKind{layout.DocContratoAPI, layout.DocBackend, layout.DocFrontend, layout.DocMobile}
	var present []layout.DocKind
	for _, kind := range order {
		if _, ok := l.DocumentPaths[kind]; ok {
			present = append(present, kind)
		}
	}
	return present
}

func (s *Scaffolder) writeFile(relPath, content string) error {
	absPath := filepath.Join(s.projectRoot, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", relPath, err)
	}
	if err := os.WriteFile(absPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", relPath, err)
	}
	return nil
}

func (s *Scaffolder) commitArtifacts(run *state.Run) (string, error) {
	repo, err := git.Open(s.projectRoot)
	if err != nil {
		return "", err
	}

	dirty, err := repo.IsDirty()
	if err != nil {
		return "", err
	}
	if !dirty {
		return "", nil // Nothing to commit
	}

	if err := repo.StageAll(); err != nil {
		return "", err
	}

	return repo.Commit(fmt.Sprintf("prpflow: scaffold %s", run.Layout.FeatureSlug))
}

// roleSlug converts a CamelCase role name to a hyphenated file slug,
// keeping acronym runs together (APIDesigner -> api-designer)
func roleSlug(role plan.Role) string {
	runes := []rune(string(role))
	var b strings.Builder
	for i, r := range runes {
		if !unicode.IsUpper(r) {
			b.WriteRune(r)
			continue
		}
		prevLower := i > 0 && unicode.IsLower(runes[i-1])
		acronymEnd := i > 0 && unicode.IsUpper(runes[i-1]) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
		if prevLower || acronymEnd {
			b.WriteByte('-')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
