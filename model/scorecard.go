package model

import "fmt"

// ScoreCard is the artifact produced by evaluating a set of metrics
// against a single scenario: the metric results plus enough provenance to
// reproduce the evaluation.
// Field order tracks sorted json tag names (created_at, metrics,
// provenance, run_id, scenario, scorecard_id, spec_version).
type ScoreCard struct {
	CreatedAt   string                  `json:"created_at"`
	Metrics     map[string]MetricResult `json:"metrics"`
	Provenance  map[string]any          `json:"provenance"`
	RunID       string                  `json:"run_id"`
	Scenario    Scenario                `json:"scenario"`
	ScorecardID string                  `json:"scorecard_id"`
	SpecVersion string                  `json:"spec_version"`
}

// NewScoreCard returns a ScoreCard stamped with the build's spec version.
func NewScoreCard(scorecardID, runID string, scenario Scenario, provenance map[string]any, metrics map[string]MetricResult, createdAt string) *ScoreCard {
	if provenance == nil {
		provenance = map[string]any{}
	}
	if metrics == nil {
		metrics = map[string]MetricResult{}
	}
	return &ScoreCard{
		SpecVersion: SpecVersion,
		ScorecardID: scorecardID,
		RunID:       runID,
		Scenario:    scenario,
		Provenance:  provenance,
		Metrics:     metrics,
		CreatedAt:   createdAt,
	}
}

// ValidateScoreCard checks the spec_version gate on a deserialized
// ScoreCard.
func ValidateScoreCard(s *ScoreCard) error {
	if s.SpecVersion != SpecVersion {
		return fmt.Errorf("scorecard spec_version %s != %s", s.SpecVersion, SpecVersion)
	}
	return nil
}
