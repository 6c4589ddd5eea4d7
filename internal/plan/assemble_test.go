package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prpkit/prpflow/internal/classify"
	"github.com/prpkit/prpflow/internal/stack"
)

func detectStacks(t *testing.T, entries ...string) []stack.Descriptor {
	t.Helper()
	return stack.Detect(entries)
}

func TestAssembleEmptyStacksFails(t *testing.T) {
	feature := classify.Classify("anything")

	p, err := Assemble(nil, feature, Options{})
	require.ErrorIs(t, err, ErrNoStackDetected)
	assert.Nil(t, p)

	p, err = Assemble([]stack.Descriptor{}, feature, Options{})
	require.ErrorIs(t, err, ErrNoStackDetected)
	assert.Nil(t, p)
}

func TestAssemblePhaseOrder(t *testing.T) {
	stacks := detectStacks(t, "backend_fastapi_sqlalchemy", "frontend_nextjs", "mobile_flutter")

	// Low complexity: no Deployment phase
	p, err := Assemble(stacks, classify.Classify("hello world"), Options{})
	require.NoError(t, err)
	require.Len(t, p.Phases, 3)
	assert.Equal(t, PhaseFoundation, p.Phases[0].Name)
	assert.Equal(t, PhaseDevelopment, p.Phases[1].Name)
	assert.Equal(t, PhaseQuality, p.Phases[2].Name)

	// High complexity: Deployment appended last
	p, err = Assemble(stacks, classify.Classify("integration, real-time, payment"), Options{})
	require.NoError(t, err)
	require.Len(t, p.Phases, 4)
	assert.Equal(t, PhaseDeployment, p.Phases[3].Name)
}

func TestAssemblePhaseModes(t *testing.T) {
	stacks := detectStacks(t, "backend_fastapi_sqlalchemy", "frontend_nextjs")
	p, err := Assemble(stacks, classify.Classify("crud for products"), Options{ForceDeployment: true})
	require.NoError(t, err)

	assert.Equal(t, ModeSequential, p.FindPhase(PhaseFoundation).Mode)
	assert.Equal(t, ModeParallel, p.FindPhase(PhaseDevelopment).Mode)
	assert.Equal(t, ModeSequential, p.FindPhase(PhaseQuality).Mode)
	assert.Equal(t, ModeSequential, p.FindPhase(PhaseDeployment).Mode)
}

func TestAssembleRolesFollowStackKinds(t *testing.T) {
	tests := []struct {
		name          string
		entries       []string
		wantDev       []Role
		wantArchitect bool
	}{
		{
			name:          "backend only",
			entries:       []string{"backend_fastify_api"},
			wantDev:       []Role{RoleBackendEngineer},
			wantArchitect: true,
		},
		{
			name:          "frontend only",
			entries:       []string{"frontend_nextjs"},
			wantDev:       []Role{RoleFrontendEngineer},
			wantArchitect: false,
		},
		{
			name:          "all kinds",
			entries:       []string{"mobile_flutter", "frontend_nextjs", "backend_fastapi_sqlalchemy"},
			wantDev:       []Role{RoleBackendEngineer, RoleFrontendEngineer, RoleMobileEngineer},
			wantArchitect: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Assemble(detectStacks(t, tt.entries...), classify.Classify("feature"), Options{})
			require.NoError(t, err)

			foundation := p.FindPhase(PhaseFoundation)
			require.NotNil(t, foundation)
			if tt.wantArchitect {
				assert.NotNil(t, foundation.FindAssignment(RoleDatabaseArchitect))
			} else {
				assert.Nil(t, foundation.FindAssignment(RoleDatabaseArchitect))
			}
			// APIDesigner is always present
			assert.NotNil(t, foundation.FindAssignment(RoleAPIDesigner))

			dev := p.FindPhase(PhaseDevelopment)
			require.NotNil(t, dev)
			var got []Role
			for _, a := range dev.Assignments {
				got = append(got, a.Role)
			}
			assert.Equal(t, tt.wantDev, got)
		})
	}
}

func TestAssembleQualityRoleOrder(t *testing.T) {
	p, err := Assemble(detectStacks(t, "backend_fastapi_sqlalchemy"), classify.Classify("api"), Options{})
	require.NoError(t, err)

	quality := p.FindPhase(PhaseQuality)
	require.NotNil(t, quality)
	require.Len(t, quality.Assignments, 2)
	assert.Equal(t, RoleQAEngineer, quality.Assignments[0].Role)
	assert.Equal(t, RoleIntegrationExpert, quality.Assignments[1].Role)
}

func TestAssembleDeploymentTriggers(t *testing.T) {
	stacks := detectStacks(t, "backend_fastapi_sqlalchemy")

	p, err := Assemble(stacks, classify.Classify("simple change"), Options{})
	require.NoError(t, err)
	assert.Nil(t, p.FindPhase(PhaseDeployment))

	p, err = Assemble(stacks, classify.Classify("simple change"), Options{ForceDeployment: true})
	require.NoError(t, err)
	assert.NotNil(t, p.FindPhase(PhaseDeployment))
}

func TestAssembleIdempotent(t *testing.T) {
	stacks := detectStacks(t, "backend_fastapi_sqlalchemy", "backend_fastify_api", "frontend_nextjs")
	feature := classify.Classify("auth with payment integration")

	first, err := Assemble(stacks, feature, Options{})
	require.NoError(t, err)
	second, err := Assemble(stacks, feature, Options{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAssembleGatesParameterized(t *testing.T) {
	stacks := detectStacks(t, "backend_fastapi_sqlalchemy")
	opts := Options{GateParams: GateParams{CoverageThreshold: 95, ResponseTimeMs: 50}}

	p, err := Assemble(stacks, classify.Classify("crud"), opts)
	require.NoError(t, err)

	dev := p.FindPhase(PhaseDevelopment)
	require.NotEmpty(t, dev.Gates)
	assert.Contains(t, dev.Gates[0].Description, "95%")

	quality := p.FindPhase(PhaseQuality)
	require.Len(t, quality.Gates, 2)
	assert.Contains(t, quality.Gates[1].Description, "50ms")
}

func TestAssembleEndToEndScenario(t *testing.T) {
	stacks := stack.Detect([]string{"backend_fastapi_sqlalchemy", "frontend_nextjs"})
	feature := classify.Classify("User authentication with JWT tokens and email verification")

	assert.Equal(t, classify.CategoryAuthentication, feature.Category)
	assert.GreaterOrEqual(t, feature.ComplexityScore, 1)

	p, err := Assemble(stacks, feature, Options{})
	require.NoError(t, err)

	foundation := p.FindPhase(PhaseFoundation)
	require.NotNil(t, foundation)
	assert.NotNil(t, foundation.FindAssignment(RoleDatabaseArchitect))
	assert.NotNil(t, foundation.FindAssignment(RoleAPIDesigner))

	dev := p.FindPhase(PhaseDevelopment)
	require.NotNil(t, dev)
	assert.Equal(t, ModeParallel, dev.Mode)
	assert.NotNil(t, dev.FindAssignment(RoleBackendEngineer))
	assert.NotNil(t, dev.FindAssignment(RoleFrontendEngineer))
	assert.Nil(t, dev.FindAssignment(RoleMobileEngineer))
}
