package metrics

import (
	"fmt"

	"github.com/nitishsanghi/robometrics/model"
	"github.com/nitishsanghi/robometrics/telemetry/obsmetrics"
)

func unknownMetric(name string) *model.MetricResult {
	return &model.MetricResult{Direction: "neutral", Notes: strPtr(fmt.Sprintf("unknown metric: %s", name))}
}

func missingRequiredStream(name string) *model.MetricResult {
	return &model.MetricResult{Direction: "neutral", Notes: strPtr(fmt.Sprintf("missing required stream: %s", name))}
}

func missingRequiredEvent(name string) *model.MetricResult {
	return &model.MetricResult{Direction: "neutral", Notes: strPtr(fmt.Sprintf("missing required event: %s", name))}
}

func strPtr(s string) *string { return &s }

// RunMetric evaluates a single named metric against a scenario, isolating
// every possible failure mode (unknown metric, missing required data, a
// metric error, or a metric panic) into a MetricResult with valid=false
// rather than propagating it to the caller.
func RunMetric(metricName string, run *model.Run, scenario model.Scenario, config map[string]any) (result *model.MetricResult) {
	start := obsmetrics.Now()
	defer func() {
		if r := recover(); r != nil {
			result = &model.MetricResult{
				Direction: "neutral",
				Notes:     strPtr(fmt.Sprintf("panic: %v", r)),
			}
		}
		obsmetrics.ObserveMetricEvaluation(metricName, result.Valid, obsmetrics.Since(start))
	}()

	spec, ok := Lookup(metricName)
	if !ok || spec.Fn == nil {
		result = unknownMetric(metricName)
		return result
	}

	streams := map[string]*model.Stream{}
	for _, name := range spec.RequiresStreams {
		stream := run.GetStream(name)
		if stream == nil {
			result = missingRequiredStream(name)
			return result
		}
		sliced, err := stream.Slice(scenario.T0, scenario.T1, "left")
		if err != nil {
			result = &model.MetricResult{Direction: "neutral", Notes: strPtr(err.Error())}
			return result
		}
		streams[name] = sliced
	}
	for _, name := range spec.OptionalStreams {
		if stream := run.GetStream(name); stream != nil {
			sliced, err := stream.Slice(scenario.T0, scenario.T1, "left")
			if err == nil {
				streams[name] = sliced
			}
		}
	}

	t0, t1 := scenario.T0, scenario.T1
	events := filterEvents(run.Events, t0, t1)
	for _, name := range spec.RequiresEvents {
		found := false
		for _, ev := range events {
			if ev.Name == name {
				found = true
				break
			}
		}
		if !found {
			result = missingRequiredEvent(name)
			return result
		}
	}

	ctx := MetricContext{
		Run:      run,
		Scenario: scenario,
		Streams:  streams,
		Events:   events,
		Config:   config,
	}

	res, err := spec.Fn(ctx)
	if err != nil {
		result = &model.MetricResult{Direction: "neutral", Notes: strPtr(err.Error())}
		return result
	}
	result = res
	return result
}

// RunMetrics evaluates every name in metricNames against scenario,
// keyed by metric name. config maps a metric name to its per-metric
// config, if any.
func RunMetrics(metricNames []string, run *model.Run, scenario model.Scenario, config map[string]map[string]any) map[string]model.MetricResult {
	results := make(map[string]model.MetricResult, len(metricNames))
	for _, name := range metricNames {
		results[name] = *RunMetric(name, run, scenario, config[name])
	}
	return results
}

func filterEvents(events []model.Event, t0, t1 float64) []model.Event {
	var out []model.Event
	for _, e := range events {
		if t0 <= e.T && e.T < t1 {
			out = append(out, e)
		}
	}
	return out
}
