package plan

import (
	"fmt"

	"github.com/prpkit/prpflow/internal/classify"
	"github.com/prpkit/prpflow/internal/stack"
)

// Options adjusts assembly beyond what classification decides
type Options struct {
	// ForceDeployment includes the Deployment phase even when the
	// feature's complexity tier alone would not.
	ForceDeployment bool

	// GateParams parameterizes the quality gate templates.
	// Zero value falls back to DefaultGateParams.
	GateParams GateParams
}

// Assemble builds the phased task plan for a feature from the detected
// stacks. The phase order is fixed (Foundation, Development, Quality,
// then Deployment when applicable) and role lists are built in stack
// detection order, so identical inputs always yield structurally
// identical plans.
func Assemble(stacks []stack.Descriptor, feature classify.Feature, opts Options) (*Plan, error) {
	if len(stacks) == 0 {
		return nil, ErrNoStackDetected
	}

	params := opts.GateParams
	if params == (GateParams{}) {
		params = DefaultGateParams()
	}

	p := &Plan{
		Feature: feature,
		Stacks:  append([]stack.Descriptor(nil), stacks...),
	}

	p.Phases = append(p.Phases, foundationPhase(stacks, feature, params))
	p.Phases = append(p.Phases, developmentPhase(stacks, feature, params))
	p.Phases = append(p.Phases, qualityPhase(stacks, params))

	if feature.ComplexityTier == classify.TierHigh || opts.ForceDeployment {
		p.Phases = append(p.Phases, deploymentPhase(stacks, params))
	}

	return p, nil
}

func foundationPhase(stacks []stack.Descriptor, feature classify.Feature, params GateParams) Phase {
	ph := Phase{
		Name:  PhaseFoundation,
		Mode:  ModeSequential,
		Gates: foundationGates(params),
	}

	if stack.HasKind(stacks, stack.KindBackend) {
		var tasks []string
		for _, s := range stacks {
			if s.Kind == stack.KindBackend {
				tasks = append(tasks, fmt.Sprintf("Design entities and relationships for %s", s.ID))
			}
		}
		if feature.Category == classify.CategoryAuthentication {
			tasks = append(tasks, "Model credential and session storage")
		}
		ph.Assignments = append(ph.Assignments, Assignment{Role: RoleDatabaseArchitect, Tasks: tasks})
	}

	ph.Assignments = append(ph.Assignments, Assignment{
		Role: RoleAPIDesigner,
		Tasks: []string{
			"Define endpoint contracts, payloads and status codes",
			"Write the API contract document consumed by all downstream roles",
		},
	})

	return ph
}

// developmentPhase marks its assignments parallel: when several
// engineer roles are present they are independent tasks with no
// ordering guarantee between them. The frontend/mobile dependency on a
// stable API contract is a documented logical dependency only; no
// barrier is emitted here.
func developmentPhase(stacks []stack.Descriptor, feature classify.Feature, params GateParams) Phase {
	ph := Phase{
		Name:  PhaseDevelopment,
		Mode:  ModeParallel,
		Gates: developmentGates(params),
	}

	roleForKind := []struct {
		kind stack.Kind
		role Role
		verb string
	}{
		{stack.KindBackend, RoleBackendEngineer, "Implement service and data layers in"},
		{stack.KindFrontend, RoleFrontendEngineer, "Implement screens and client integration in"},
		{stack.KindMobile, RoleMobileEngineer, "Implement mobile screens and client integration in"},
	}

	for _, rk := range roleForKind {
		if !stack.HasKind(stacks, rk.kind) {
			continue
		}
		var tasks []string
		for _, s := range stacks {
			if s.Kind == rk.kind {
				tasks = append(tasks, fmt.Sprintf("%s %s", rk.verb, s.RootPath))
			}
		}
		ph.Assignments = append(ph.Assignments, Assignment{Role: rk.role, Tasks: tasks})
	}

	return ph
}

// qualityPhase is strictly sequential: IntegrationExpert runs after
// QAEngineer because integration tests assume unit and service level
// correctness has already been validated.
func qualityPhase(stacks []stack.Descriptor, params GateParams) Phase {
	ph := Phase{
		Name:  PhaseQuality,
		Mode:  ModeSequential,
		Gates: qualityGates(params),
	}

	ph.Assignments = append(ph.Assignments, Assignment{
		Role: RoleQAEngineer,
		Tasks: []string{
			"Write and run unit and service level tests for every stack",
			"Verify edge cases and error paths against the API contract",
		},
	})

	integrationTasks := []string{"Run cross-stack integration tests"}
	if len(stacks) > 1 {
		integrationTasks = append(integrationTasks, "Verify contract compatibility between stacks")
	}
	ph.Assignments = append(ph.Assignments, Assignment{
		Role:  RoleIntegrationExpert,
		Tasks: integrationTasks,
	})

	return ph
}

func deploymentPhase(stacks []stack.Descriptor, params GateParams) Phase {
	var tasks []string
	for _, s := range stacks {
		tasks = append(tasks, fmt.Sprintf("Prepare build and release configuration for %s", s.ID))
	}
	tasks = append(tasks, "Document rollout and rollback steps")

	return Phase{
		Name: PhaseDeployment,
		Mode: ModeSequential,
		Assignments: []Assignment{
			{Role: RoleDevOpsEngineer, Tasks: tasks},
		},
		Gates: deploymentGates(params),
	}
}
