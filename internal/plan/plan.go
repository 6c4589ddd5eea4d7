package plan

import (
	"errors"

	"github.com/prpkit/prpflow/internal/classify"
	"github.com/prpkit/prpflow/internal/stack"
)

// ErrNoStackDetected is returned by Assemble when no template
// directories were detected in the project root.
var ErrNoStackDetected = errors.New("no template directories detected; check project root")

// Mode declares how a phase's assignments may be executed by the
// downstream agent runner. It is a scheduling hint, not a mechanism:
// this package never runs anything itself.
type Mode string

const (
	ModeSequential Mode = "sequential"
	ModeParallel   Mode = "parallel"
)

// Role names a specialization of agent work
type Role string

const (
	RoleDatabaseArchitect Role = "DatabaseArchitect"
	RoleAPIDesigner       Role = "APIDesigner"
	RoleBackendEngineer   Role = "BackendEngineer"
	RoleFrontendEngineer  Role = "FrontendEngineer"
	RoleMobileEngineer    Role = "MobileEngineer"
	RoleQAEngineer        Role = "QAEngineer"
	RoleIntegrationExpert Role = "IntegrationExpert"
	RoleDevOpsEngineer    Role = "DevOpsEngineer"
)

// Assignment binds a role to its ordered task list within a phase
type Assignment struct {
	Role  Role     `json:"role"`
	Tasks []string `json:"tasks"`
}

// Gate is a pass/fail checkpoint attached to a phase. Gates are
// opaque configuration rendered into the plan, never evaluated here.
type Gate struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Phase is one named stage of the plan
type Phase struct {
	Name        string       `json:"name"`
	Mode        Mode         `json:"mode"`
	Assignments []Assignment `json:"assignments"`
	Gates       []Gate       `json:"gates"`
}

// Plan is the ordered, phased task plan for one feature
type Plan struct {
	Feature classify.Feature   `json:"feature"`
	Stacks  []stack.Descriptor `json:"stacks"`
	Phases  []Phase            `json:"phases"`
}

// Phase names, in their fixed execution order
const (
	PhaseFoundation  = "Foundation"
	PhaseDevelopment = "Development"
	PhaseQuality     = "Quality"
	PhaseDeployment  = "Deployment"
)

// FindPhase returns the named phase, or nil if absent
func (p *Plan) FindPhase(name string) *Phase {
	for i := range p.Phases {
		if p.Phases[i].Name == name {
			return &p.Phases[i]
		}
	}
	return nil
}

// Roles returns every role assigned in the plan, in phase order
func (p *Plan) Roles() []Role {
	var roles []Role
	for _, ph := range p.Phases {
		for _, a := range ph.Assignments {
			roles = append(roles, a.Role)
		}
	}
	return roles
}

// FindAssignment returns the assignment for a role within a phase
func (ph *Phase) FindAssignment(role Role) *Assignment {
	for i := range ph.Assignments {
		if ph.Assignments[i].Role == role {
			return &ph.Assignments[i]
		}
	}
	return nil
}
