package model

import "fmt"

// ScenarioSet is the artifact produced by a mining run: the scenarios
// extracted across one or more input runs, plus per-run provenance.
// Field order tracks sorted json tag names (created_at, runs,
// scenario_set_id, scenarios, spec_version).
type ScenarioSet struct {
	CreatedAt     string                    `json:"created_at"`
	Runs          map[string]map[string]any `json:"runs"`
	ScenarioSetID string                    `json:"scenario_set_id"`
	Scenarios     []Scenario                `json:"scenarios"`
	SpecVersion   string                    `json:"spec_version"`
}

// NewScenarioSet returns a ScenarioSet stamped with the build's spec
// version, with nil runs and scenarios replaced by empty ones. It never
// returns an error.
func NewScenarioSet(scenarioSetID, createdAt string, runs map[string]map[string]any, scenarios []Scenario) (*ScenarioSet, error) {
	if runs == nil {
		runs = map[string]map[string]any{}
	}
	if scenarios == nil {
		scenarios = []Scenario{}
	}
	return &ScenarioSet{
		SpecVersion:   SpecVersion,
		ScenarioSetID: scenarioSetID,
		CreatedAt:     createdAt,
		Runs:          runs,
		Scenarios:     scenarios,
	}, nil
}

// ValidateScenarioSet checks the spec_version gate on a deserialized
// ScenarioSet, mirroring the constructor check the Python dataclass applies
// on construction.
func ValidateScenarioSet(s *ScenarioSet) error {
	if s.SpecVersion != SpecVersion {
		return fmt.Errorf("scenario set spec_version %s != %s", s.SpecVersion, SpecVersion)
	}
	return nil
}
