package state

import (
	"time"

	"github.com/prpkit/prpflow/internal/classify"
	"github.com/prpkit/prpflow/internal/layout"
	"github.com/prpkit/prpflow/internal/plan"
	"github.com/prpkit/prpflow/internal/stack"
)

// RunStatus represents the overall status of a planning run
type RunStatus string

const (
	RunStatusPlanned    RunStatus = "planned"
	RunStatusScaffolded RunStatus = "scaffolded"
	RunStatusFailed     RunStatus = "failed"
)

// Run records one complete planning pass for a feature: the raw
// request, its classification, the detected stacks, the assembled
// plan and the computed artifact layout.
type Run struct {
	ID          string             `json:"id"`
	FeatureText string             `json:"feature_text"`
	ProjectRoot string             `json:"project_root"`
	Feature     classify.Feature   `json:"feature"`
	Stacks      []stack.Descriptor `json:"stacks"`
	Plan        *plan.Plan         `json:"plan,omitempty"`
	Layout      layout.Layout      `json:"layout"`
	Status      RunStatus          `json:"status"`
	Error       string             `json:"error,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// StackIDs returns the detected stack identifiers in detection order
func (r *Run) StackIDs() []string {
	ids := make([]string, 0, len(r.Stacks))
	for _, s := range r.Stacks {
		ids = append(ids, s.ID)
	}
	return ids
}

// PhaseCount returns the number of phases in the assembled plan
func (r *Run) PhaseCount() int {
	if r.Plan == nil {
		return 0
	}
	return len(r.Plan.Phases)
}

// IsScaffolded reports whether artifacts were written for this run
func (r *Run) IsScaffolded() bool {
	return r.Status == RunStatusScaffolded
}
