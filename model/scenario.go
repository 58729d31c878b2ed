package model

import "fmt"

// Scenario is a half-open time interval [t0, t1) of a run with an intent
// and tags. Mining always adds rule_id into tags.
// Field order tracks sorted json tag names (eval_profile, intent, run_id,
// scenario_id, t0, t1, tags).
type Scenario struct {
	EvalProfile *string           `json:"eval_profile"`
	Intent      string            `json:"intent"`
	RunID       string            `json:"run_id"`
	ScenarioID  string            `json:"scenario_id"`
	T0          float64           `json:"t0"`
	T1          float64           `json:"t1"`
	Tags        map[string]string `json:"tags"`
}

// NewScenario validates t1 > t0 before returning a Scenario.
func NewScenario(scenarioID, runID string, t0, t1 float64, intent string, tags map[string]string, evalProfile *string) (*Scenario, error) {
	if t1 <= t0 {
		return nil, fmt.Errorf("scenario t1 (%v) must be greater than t0 (%v)", t1, t0)
	}
	if tags == nil {
		tags = map[string]string{}
	}
	return &Scenario{
		ScenarioID:  scenarioID,
		RunID:       runID,
		T0:          t0,
		T1:          t1,
		Intent:      intent,
		Tags:        tags,
		EvalProfile: evalProfile,
	}, nil
}
