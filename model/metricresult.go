package model

import "fmt"

// MetricResult is the outcome of evaluating one metric against one
// scenario. value is nil when valid is false.
// Field order tracks sorted json tag names (direction, notes, units,
// valid, value).
type MetricResult struct {
	Direction string  `json:"direction"`
	Notes     *string `json:"notes"`
	Units     *string `json:"units"`
	Valid     bool    `json:"valid"`
	Value     any     `json:"value"`
}

// NewMetricResult validates direction before returning a MetricResult.
func NewMetricResult(value any, units *string, direction string, valid bool, notes *string) (*MetricResult, error) {
	switch direction {
	case "higher", "lower", "neutral":
	default:
		return nil, fmt.Errorf("metric result direction must be higher, lower, or neutral, got %q", direction)
	}
	return &MetricResult{
		Value:     value,
		Units:     units,
		Direction: direction,
		Valid:     valid,
		Notes:     notes,
	}, nil
}

// Invalid builds the canonical failure-isolation result: no value, the
// metric's declared direction, valid=false, and an explanatory note.
func Invalid(direction, note string) *MetricResult {
	n := note
	return &MetricResult{Direction: direction, Valid: false, Notes: &n}
}
