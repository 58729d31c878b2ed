package metrics_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitishsanghi/robometrics/metrics"
	"github.com/nitishsanghi/robometrics/model"
)

func scenario(t0, t1 float64) model.Scenario {
	sc, _ := model.NewScenario("sc1", "run1", t0, t1, "test", nil, nil)
	return *sc
}

func TestRunMetricUnknownMetric(t *testing.T) {
	run := &model.Run{RunID: "run1"}
	res := metrics.RunMetric("no.such.metric", run, scenario(0, 1), nil)
	assert.False(t, res.Valid)
	require.NotNil(t, res.Notes)
}

func TestRunMetricMissingRequiredStream(t *testing.T) {
	metrics.Register(metrics.MetricSpec{
		Name:            "test.needs_stream",
		RequiresStreams: []string{"state.missing"},
		Fn: func(ctx metrics.MetricContext) (*model.MetricResult, error) {
			return model.NewMetricResult(1.0, nil, "neutral", true, nil)
		},
	})
	run := &model.Run{RunID: "run1"}
	res := metrics.RunMetric("test.needs_stream", run, scenario(0, 1), nil)
	assert.False(t, res.Valid)
}

func TestRunMetricRecoversFromPanic(t *testing.T) {
	metrics.Register(metrics.MetricSpec{
		Name: "test.panics",
		Fn: func(ctx metrics.MetricContext) (*model.MetricResult, error) {
			panic("boom")
		},
	})
	run := &model.Run{RunID: "run1"}
	res := metrics.RunMetric("test.panics", run, scenario(0, 1), nil)
	assert.False(t, res.Valid)
	require.NotNil(t, res.Notes)
	assert.Contains(t, *res.Notes, "panic")
}

func TestRunMetricConvertsErrorToInvalid(t *testing.T) {
	metrics.Register(metrics.MetricSpec{
		Name: "test.errors",
		Fn: func(ctx metrics.MetricContext) (*model.MetricResult, error) {
			return nil, fmt.Errorf("computation failed")
		},
	})
	run := &model.Run{RunID: "run1"}
	res := metrics.RunMetric("test.errors", run, scenario(0, 1), nil)
	assert.False(t, res.Valid)
}

func TestRunMetricSlicesStreamsToScenarioWindow(t *testing.T) {
	stream, err := model.NewStream("s", []float64{0, 1, 2, 3}, map[string][]any{"v": {0.0, 1.0, 2.0, 3.0}})
	require.NoError(t, err)
	run := &model.Run{RunID: "run1", Streams: map[string]*model.Stream{"s": stream}}

	var seenLen int
	metrics.Register(metrics.MetricSpec{
		Name:            "test.counts_samples",
		RequiresStreams: []string{"s"},
		Fn: func(ctx metrics.MetricContext) (*model.MetricResult, error) {
			seenLen = len(ctx.Streams["s"].T)
			return model.NewMetricResult(float64(seenLen), nil, "neutral", true, nil)
		},
	})

	res := metrics.RunMetric("test.counts_samples", run, scenario(1, 3), nil)
	assert.True(t, res.Valid)
	assert.Equal(t, 2, seenLen)
}
