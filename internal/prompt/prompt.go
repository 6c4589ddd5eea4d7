package prompt

import (
	"fmt"
	"strings"

	"github.com/prpkit/prpflow/internal/plan"
	"github.com/prpkit/prpflow/internal/stack"
)

// roleInstructions holds the per-role system prompt bodies. These are
// handed to an external agent runtime; prpflow never invokes a model.
var roleInstructions = map[plan.Role]string{
	plan.RoleDatabaseArchitect: `You are a database architect. Design the entities, relationships,
indexes and migrations this feature needs. Follow the conventions in the
stack architecture documents. Output a schema design the backend
engineers can implement without further decisions.`,

	plan.RoleAPIDesigner: `You are an API designer. Define every endpoint this feature needs:
method, path, request and response payloads, status codes and error
shapes. The contract you write is the interface boundary for every
other role; keep it complete and unambiguous.`,

	plan.RoleBackendEngineer: `You are a backend engineer. Implement the service and data layers for
this feature inside the assigned template directory, following the
patterns its architecture document describes. Do not deviate from the
API contract.`,

	plan.RoleFrontendEngineer: `You are a frontend engineer. Implement the screens and client
integration for this feature inside the assigned template directory.
Consume the API exactly as the contract defines it. Reference the
visual materials under the feature's telas folder when present.`,

	plan.RoleMobileEngineer: `You are a mobile engineer. Implement the mobile screens and client
integration for this feature inside the assigned template directory.
Consume the API exactly as the contract defines it. Reference the
visual materials under the feature's telas folder when present.`,

	plan.RoleQAEngineer: `You are a QA engineer. Write and run unit and service level tests for
every stack touched by this feature. Cover the edge cases and error
paths the contract defines. Report anything the implementation does
that the contract does not.`,

	plan.RoleIntegrationExpert: `You are an integration expert. Run cross-stack integration tests for
this feature. You run after QA: assume unit and service level
correctness is already validated and focus on contract compatibility
between stacks.`,

	plan.RoleDevOpsEngineer: `You are a DevOps engineer. Prepare build and release configuration for
every stack touched by this feature, and document rollout and rollback
steps.`,
}

// Instructions returns the system prompt body for a role
func Instructions(role plan.Role) string {
	return roleInstructions[role]
}

// BuildRolePrompt assembles the full prompt for one role assignment:
// role instructions, the feature request, the detected stacks, the
// assigned tasks and the architecture-doc pack.
func BuildRolePrompt(a plan.Assignment, featureText string, stacks []stack.Descriptor, archPack string) string {
	var b strings.Builder

	b.WriteString(Instructions(a.Role))
	b.WriteString("\n\n## Feature Request\n\n")
	b.WriteString(featureText)
	b.WriteString("\n\n## Detected Stacks\n\n")
	for _, s := range stacks {
		b.WriteString(fmt.Sprintf("- %s (%s) at %s\n", s.ID, s.Kind, s.RootPath))
	}

	b.WriteString("\n## Your Tasks\n\n")
	for i, task := range a.Tasks {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, task))
	}

	if archPack != "" {
		b.WriteString("\n")
		b.WriteString(archPack)
		b.WriteString("\n")
	}

	return b.String()
}
