// Package metrics implements the metric registry and evaluation engine:
// the process-wide catalog of metric functions and the dispatcher that
// runs one against a scenario with strict failure isolation.
package metrics

import (
	"fmt"

	"github.com/nitishsanghi/robometrics/model"
)

// MetricContext is the input a metric function receives: the parent run
// (for access outside the scenario window, when a metric legitimately
// needs it), the scenario being scored, the streams and events already
// sliced to [scenario.T0, scenario.T1), and any per-metric config.
type MetricContext struct {
	Run      *model.Run
	Scenario model.Scenario
	Streams  map[string]*model.Stream
	Events   []model.Event
	Config   map[string]any
}

// MetricFn computes a MetricResult from a MetricContext. A metric fn may
// return an error; the engine converts it to an invalid result rather than
// letting it escape. A metric fn must not panic, but the engine recovers
// if one does.
type MetricFn func(ctx MetricContext) (*model.MetricResult, error)

// MetricSpec describes a registered metric: its data requirements and
// implementation.
type MetricSpec struct {
	Name            string
	RequiresStreams []string
	OptionalStreams []string
	RequiresEvents  []string
	OptionalEvents  []string
	Description     string
	Fn              MetricFn
}

var registry = map[string]MetricSpec{}

// Register adds spec to the global registry. It panics if the name is
// already registered, matching the Python decorator's fail-fast behavior
// at import time: a duplicate metric name is a programming error, not a
// runtime condition to recover from.
func Register(spec MetricSpec) {
	if _, exists := registry[spec.Name]; exists {
		panic(fmt.Sprintf("metric already registered: %s", spec.Name))
	}
	registry[spec.Name] = spec
}

// Lookup returns the spec registered under name, if any.
func Lookup(name string) (MetricSpec, bool) {
	spec, ok := registry[name]
	return spec, ok
}

// Names returns every registered metric name, in no particular order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
