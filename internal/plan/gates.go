package plan

import "fmt"

// GateParams are the pass-through thresholds rendered into gate
// descriptions. They come from configuration and are never computed
// or evaluated by this package.
type GateParams struct {
	CoverageThreshold int `toml:"coverage_threshold" json:"coverage_threshold"`
	ResponseTimeMs    int `toml:"response_time_ms" json:"response_time_ms"`
}

// DefaultGateParams returns the thresholds used when config is silent
func DefaultGateParams() GateParams {
	return GateParams{
		CoverageThreshold: 80,
		ResponseTimeMs:    200,
	}
}

func foundationGates(params GateParams) []Gate {
	return []Gate{
		{Name: "schema-review", Description: "Entity model reviewed against the feature requirements"},
		{Name: "contract-complete", Description: "API contract covers every operation with request and response shapes"},
	}
}

func developmentGates(params GateParams) []Gate {
	return []Gate{
		{Name: "unit-coverage", Description: fmt.Sprintf("Unit test coverage at or above %d%% per stack", params.CoverageThreshold)},
		{Name: "lint-clean", Description: "Linters pass with no new warnings"},
	}
}

func qualityGates(params GateParams) []Gate {
	return []Gate{
		{Name: "integration-green", Description: "Integration suite passes across all stacks"},
		{Name: "response-time", Description: fmt.Sprintf("Endpoint response time at or below %dms", params.ResponseTimeMs)},
	}
}

func deploymentGates(params GateParams) []Gate {
	return []Gate{
		{Name: "release-checklist", Description: "Build artifacts produced and rollout steps verified"},
	}
}
