package builtin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/nitishsanghi/robometrics/metrics/builtin"

	"github.com/nitishsanghi/robometrics/metrics"
	"github.com/nitishsanghi/robometrics/model"
)

func scenario(t0, t1 float64) model.Scenario {
	sc, _ := model.NewScenario("sc1", "run1", t0, t1, "test", nil, nil)
	return *sc
}

func TestPathEfficiencyStraightLine(t *testing.T) {
	pose, err := model.NewStream("state.pose2d", []float64{0, 1, 2},
		map[string][]any{"x": {0.0, 1.0, 2.0}, "y": {0.0, 0.0, 0.0}, "yaw": {0.0, 0.0, 0.0}})
	require.NoError(t, err)
	goal, err := model.NewStream("mission.goal2d", []float64{0, 1, 2},
		map[string][]any{"x": {2.0, 2.0, 2.0}, "y": {0.0, 0.0, 0.0}, "yaw": {0.0, 0.0, 0.0}})
	require.NoError(t, err)
	run := &model.Run{
		RunID:   "run1",
		Streams: map[string]*model.Stream{"state.pose2d": pose, "mission.goal2d": goal},
	}

	res := metrics.RunMetric("eff.path_efficiency", run, scenario(0, 3), nil)
	require.True(t, res.Valid)
	assert.InDelta(t, 1.0, res.Value, 1e-9)
}

func TestPathEfficiencyInvalidWhenPathShorterThanStartDistance(t *testing.T) {
	pose, err := model.NewStream("state.pose2d", []float64{0, 1, 2},
		map[string][]any{"x": {0.0, 0.1, 0.0}, "y": {0.0, 0.0, 0.0}, "yaw": {0.0, 0.0, 0.0}})
	require.NoError(t, err)
	goal, err := model.NewStream("mission.goal2d", []float64{0, 1, 2},
		map[string][]any{"x": {10.0, 10.0, 10.0}, "y": {0.0, 0.0, 0.0}, "yaw": {0.0, 0.0, 0.0}})
	require.NoError(t, err)
	run := &model.Run{
		RunID:   "run1",
		Streams: map[string]*model.Stream{"state.pose2d": pose, "mission.goal2d": goal},
	}

	res := metrics.RunMetric("eff.path_efficiency", run, scenario(0, 3), nil)
	require.False(t, res.Valid)
	require.NotNil(t, res.Notes)
	assert.Equal(t, "path shorter than start distance", *res.Notes)
}

func TestStopTimeRatioAllStopped(t *testing.T) {
	twist, err := model.NewStream("state.twist2d", []float64{0, 1, 2},
		map[string][]any{"vx": {0.0, 0.0, 0.0}, "vy": {0.0, 0.0, 0.0}, "wz": {0.0, 0.0, 0.0}})
	require.NoError(t, err)
	run := &model.Run{RunID: "run1", Streams: map[string]*model.Stream{"state.twist2d": twist}}

	res := metrics.RunMetric("eff.stop_time_ratio", run, scenario(0, 3), nil)
	require.True(t, res.Valid)
	assert.InDelta(t, 1.0, res.Value, 1e-9)
}
