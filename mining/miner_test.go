package mining_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitishsanghi/robometrics/mining"
	"github.com/nitishsanghi/robometrics/model"
	"github.com/nitishsanghi/robometrics/ruleset"
)

func buildRun(t *testing.T) *model.Run {
	t.Helper()
	stream, err := model.NewStream("state.twist2d", []float64{0, 1, 2, 3, 4, 5},
		map[string][]any{"vx": {0.0, 0.0, 2.0, 2.0, 2.0, 0.0}, "vy": {0.0, 0.0, 0.0, 0.0, 0.0, 0.0}})
	require.NoError(t, err)
	return &model.Run{
		RunID:   "run-1",
		Meta:    map[string]any{},
		Streams: map[string]*model.Stream{"state.twist2d": stream},
		Events: []model.Event{
			{T: 2.5, Name: "obstacle_detected", Attrs: map[string]any{"severity": "high"}},
		},
	}
}

func TestMineEventRuleAppliesWindow(t *testing.T) {
	run := buildRun(t)
	rules := &ruleset.Ruleset{
		Version: "1",
		Scenarios: []ruleset.RuleSpec{
			{
				RuleID: "approach",
				Intent: "approach_obstacle",
				Window: ruleset.WindowSpec{PreS: 1.0, PostS: 1.0},
				Event:  &ruleset.EventSpec{Name: "obstacle_detected"},
			},
		},
	}

	set, report := mining.MineScenarios(run, rules, "set-1", "2026-01-01T00:00:00Z")
	assert.True(t, report.OK())
	require.Len(t, set.Scenarios, 1)

	sc := set.Scenarios[0]
	assert.InDelta(t, 1.5, sc.T0, 1e-9)
	assert.InDelta(t, 3.5, sc.T1, 1e-9)
	assert.Equal(t, "approach", sc.Tags["rule_id"])
}

func TestMineThresholdRuleWithMinDuration(t *testing.T) {
	run := buildRun(t)
	rules := &ruleset.Ruleset{
		Version: "1",
		Scenarios: []ruleset.RuleSpec{
			{
				RuleID: "fast",
				Intent: "high_speed",
				Window: ruleset.WindowSpec{PreS: 0, PostS: 0},
				Threshold: &ruleset.ThresholdSpec{
					Stream: "state.twist2d",
					Signal: "linear_speed",
					Op:     "gt",
					Value:  1.0,
					ForS:   1.0,
				},
			},
		},
	}

	set, report := mining.MineScenarios(run, rules, "set-1", "2026-01-01T00:00:00Z")
	assert.True(t, report.OK())
	require.Len(t, set.Scenarios, 1)

	sc := set.Scenarios[0]
	assert.InDelta(t, 2.0, sc.T0, 1e-9)
	assert.InDelta(t, 4.0, sc.T1, 1e-9)
}

func TestMineThresholdRuleWarnsOnMissingStream(t *testing.T) {
	run := buildRun(t)
	rules := &ruleset.Ruleset{
		Version: "1",
		Scenarios: []ruleset.RuleSpec{
			{
				RuleID: "missing",
				Intent: "x",
				Window: ruleset.WindowSpec{},
				Threshold: &ruleset.ThresholdSpec{
					Stream: "does.not.exist",
					Signal: "v",
					Op:     "gt",
					Value:  1.0,
				},
			},
		},
	}

	set, report := mining.MineScenarios(run, rules, "set-1", "2026-01-01T00:00:00Z")
	assert.True(t, report.OK())
	assert.NotEmpty(t, report.Warnings)
	assert.Empty(t, set.Scenarios)
}

func TestMineScenariosClampsToRunBounds(t *testing.T) {
	run := buildRun(t)
	rules := &ruleset.Ruleset{
		Version: "1",
		Scenarios: []ruleset.RuleSpec{
			{
				RuleID: "approach",
				Intent: "approach_obstacle",
				Window: ruleset.WindowSpec{PreS: 10.0, PostS: 10.0},
				Event:  &ruleset.EventSpec{Name: "obstacle_detected"},
			},
		},
	}

	set, _ := mining.MineScenarios(run, rules, "set-1", "2026-01-01T00:00:00Z")
	require.Len(t, set.Scenarios, 1)
	sc := set.Scenarios[0]
	assert.Equal(t, 0.0, sc.T0)
	assert.Equal(t, 5.0, sc.T1)
}
