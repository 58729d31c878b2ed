package ruleset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitishsanghi/robometrics/ruleset"
)

const eventRuleYAML = `
version: "1"
scenarios:
  - id: approach
    intent: approach_obstacle
    window:
      pre_s: 1.0
      post_s: 2.0
    event:
      name: obstacle_detected
      where:
        severity: high
`

const thresholdRuleYAML = `
version: "1"
scenarios:
  - id: fast
    intent: high_speed
    window:
      pre_s: 0
      post_s: 0
    threshold:
      stream: state.twist2d
      signal: linear_speed
      op: gt
      value: 1.5
      for_s: 0.5
      min_gap_s: 1.0
`

func TestParseEventRule(t *testing.T) {
	rs, err := ruleset.Parse([]byte(eventRuleYAML))
	require.NoError(t, err)
	require.Len(t, rs.Scenarios, 1)

	rule := rs.Scenarios[0]
	assert.Equal(t, "approach", rule.RuleID)
	require.NotNil(t, rule.Event)
	assert.Nil(t, rule.Threshold)
	assert.Equal(t, "obstacle_detected", rule.Event.Name)
	assert.Equal(t, "high", rule.Event.Where["severity"])
}

func TestParseThresholdRule(t *testing.T) {
	rs, err := ruleset.Parse([]byte(thresholdRuleYAML))
	require.NoError(t, err)
	require.Len(t, rs.Scenarios, 1)

	rule := rs.Scenarios[0]
	require.NotNil(t, rule.Threshold)
	assert.Equal(t, "gt", rule.Threshold.Op)
	require.NotNil(t, rule.Threshold.MinGapS)
	assert.Equal(t, 1.0, *rule.Threshold.MinGapS)
	assert.Nil(t, rule.Threshold.CooldownS)
}

func TestParseRejectsDuplicateRuleIDs(t *testing.T) {
	yaml := `
version: "1"
scenarios:
  - id: a
    intent: x
    window: {pre_s: 0, post_s: 0}
    event: {name: e}
  - id: a
    intent: y
    window: {pre_s: 0, post_s: 0}
    event: {name: e}
`
	_, err := ruleset.Parse([]byte(yaml))
	require.Error(t, err)
	assert.Equal(t, "Rule 'a': duplicate rule id", err.Error())
}

func TestParseRejectsBothEventAndThreshold(t *testing.T) {
	yaml := `
version: "1"
scenarios:
  - id: a
    intent: x
    window: {pre_s: 0, post_s: 0}
    event: {name: e}
    threshold: {stream: s, signal: v, op: gt, value: 1, for_s: 0}
`
	_, err := ruleset.Parse([]byte(yaml))
	require.Error(t, err)
}

func TestParseRejectsInvalidOp(t *testing.T) {
	yaml := `
version: "1"
scenarios:
  - id: a
    intent: x
    window: {pre_s: 0, post_s: 0}
    threshold: {stream: s, signal: v, op: eq, value: 1, for_s: 0}
`
	_, err := ruleset.Parse([]byte(yaml))
	require.Error(t, err)
}

func TestParseRejectsMissingVersion(t *testing.T) {
	_, err := ruleset.Parse([]byte("scenarios: []"))
	require.Error(t, err)
}
