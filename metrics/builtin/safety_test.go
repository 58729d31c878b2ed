package builtin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitishsanghi/robometrics/metrics"
	"github.com/nitishsanghi/robometrics/model"
)

func TestEstopCountTallies(t *testing.T) {
	run := &model.Run{
		RunID: "run1",
		Events: []model.Event{
			{T: 0.5, Name: "safety.estop"},
			{T: 0.9, Name: "safety.fallback"},
			{T: 1.5, Name: "safety.estop"},
		},
	}
	res := metrics.RunMetric("safety.estop_count", run, scenario(0, 2), nil)
	require.True(t, res.Valid)
	assert.Equal(t, 2, res.Value)
}

func TestSpeedLimitViolationsRequiresConfig(t *testing.T) {
	twist, err := model.NewStream("state.twist2d", []float64{0, 1},
		map[string][]any{"vx": {5.0, 5.0}, "vy": {0.0, 0.0}, "wz": {0.0, 0.0}})
	require.NoError(t, err)
	run := &model.Run{RunID: "run1", Streams: map[string]*model.Stream{"state.twist2d": twist}}

	res := metrics.RunMetric("safety.speed_limit_violations", run, scenario(0, 2), nil)
	assert.False(t, res.Valid)

	res = metrics.RunMetric("safety.speed_limit_violations", run, scenario(0, 2), map[string]any{"speed_limit_mps": 1.0})
	require.True(t, res.Valid)
	assert.Equal(t, 2, res.Value)
}

func TestMinClearanceSkipsNonFinite(t *testing.T) {
	obstacle, err := model.NewStream("obstacle", []float64{0, 1, 2},
		map[string][]any{"min_distance": {1.5, nil, 0.5}})
	require.NoError(t, err)
	run := &model.Run{RunID: "run1", Streams: map[string]*model.Stream{"obstacle": obstacle}}

	res := metrics.RunMetric("safety.min_clearance", run, scenario(0, 3), nil)
	require.True(t, res.Valid)
	assert.InDelta(t, 0.5, res.Value, 1e-9)
}
