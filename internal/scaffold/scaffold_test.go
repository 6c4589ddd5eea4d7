package scaffold

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prpkit/prpflow/internal/classify"
	"github.com/prpkit/prpflow/internal/layout"
	"github.com/prpkit/prpflow/internal/plan"
	"github.com/prpkit/prpflow/internal/stack"
	"github.com/prpkit/prpflow/internal/state"
)

func newTestRun(t *testing.T, entries []string, featureText string) *state.Run {
	t.Helper()

	stacks := stack.Detect(entries)
	feature := classify.Classify(featureText)
	p, err := plan.Assemble(stacks, feature, plan.Options{})
	require.NoError(t, err)

	return &state.Run{
		ID:          "test0001",
		FeatureText: featureText,
		Feature:     feature,
		Stacks:      stacks,
		Plan:        p,
		Layout:      layout.Build(featureText, stacks),
		Status:      state.RunStatusPlanned,
		CreatedAt:   time.Now(),
	}
}

func TestMaterializeFullstack(t *testing.T) {
	root := t.TempDir()
	run := newTestRun(t, []string{"backend_fastapi_sqlalchemy", "frontend_nextjs"}, "User Auth")

	result, err := New(root, false).Materialize(run, "")
	require.NoError(t, err)
	assert.Equal(t, "features/user-auth", result.FeatureDir)

	// Documents: contract first, then backend, frontend, plan
	require.Len(t, result.Documents, 4)
	assert.Equal(t, "features/user-auth/contrato_api.md", result.Documents[0])
	assert.Equal(t, "features/user-auth/backend.md", result.Documents[1])
	assert.Equal(t, "features/user-auth/frontend.md", result.Documents[2])
	assert.Equal(t, "features/user-auth/plan.md", result.Documents[3])

	for _, doc := range result.Documents {
		_, err := os.Stat(filepath.Join(root, filepath.FromSlash(doc)))
		assert.NoError(t, err, "expected %s on disk", doc)
	}

	// One prompt per assignment across all phases
	assert.Len(t, result.Prompts, len(run.Plan.Roles()))
	data, err := os.ReadFile(filepath.Join(root, "features/user-auth/prompts/01-foundation-database-architect.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "database architect")

	// Image subdirs present with .gitkeep
	require.Len(t, result.ImageSubdirs, 4)
	_, err = os.Stat(filepath.Join(root, "features/user-auth/telas/desktop/.gitkeep"))
	assert.NoError(t, err)

	assert.Empty(t, result.CommitSHA)
}

func TestMaterializeBackendOnlySkipsImages(t *testing.T) {
	root := t.TempDir()
	run := newTestRun(t, []string{"backend_fastify_api"}, "order export api")

	result, err := New(root, false).Materialize(run, "")
	require.NoError(t, err)
	assert.Empty(t, result.ImageSubdirs)
	_, err = os.Stat(filepath.Join(root, "features/order-export-api/telas"))
	assert.True(t, os.IsNotExist(err))
}

func TestMaterializeRendersPlanAndContract(t *testing.T) {
	root := t.TempDir()
	run := newTestRun(t, []string{"backend_fastapi_sqlalchemy"}, "auth with payment integration and real-time sync")

	_, err := New(root, false).Materialize(run, "# Stack Conventions\n\nbackend rules")
	require.NoError(t, err)

	planData, err := os.ReadFile(filepath.Join(root, "features", run.Layout.FeatureSlug, "plan.md"))
	require.NoError(t, err)
	assert.Contains(t, string(planData), "Phase 1: Foundation (sequential)")
	assert.Contains(t, string(planData), "Phase 2: Development (parallel)")
	assert.Contains(t, string(planData), "Quality gates:")
	// High complexity feature includes the Deployment phase
	assert.Contains(t, string(planData), "Deployment")

	contractData, err := os.ReadFile(filepath.Join(root, "features", run.Layout.FeatureSlug, "contrato_api.md"))
	require.NoError(t, err)
	assert.Contains(t, string(contractData), "API Contract")
	assert.Contains(t, string(contractData), run.FeatureText)

	promptData, err := os.ReadFile(filepath.Join(root, "features", run.Layout.FeatureSlug, "prompts", "02-development-backend-engineer.md"))
	require.NoError(t, err)
	assert.Contains(t, string(promptData), "backend rules")
}

func TestMaterializeRequiresPlan(t *testing.T) {
	root := t.TempDir()
	run := &state.Run{ID: "x", Layout: layout.Build("x", nil)}

	_, err := New(root, false).Materialize(run, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no assembled plan")
}

func TestMaterializeRejectsDegenerateLayout(t *testing.T) {
	root := t.TempDir()
	run := newTestRun(t, []string{"backend_fastapi_sqlalchemy"}, "x")
	run.Layout = layout.Build("x", nil)

	_, err := New(root, false).Materialize(run, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "degenerate layout")
}

func TestRoleSlug(t *testing.T) {
	assert.Equal(t, "database-architect", roleSlug(plan.RoleDatabaseArchitect))
	assert.Equal(t, "api-designer", roleSlug(plan.RoleAPIDesigner))
	assert.Equal(t, "qa-engineer", roleSlug(plan.RoleQAEngineer))
}
