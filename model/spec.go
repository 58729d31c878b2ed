// Package model defines the invariant-checked value types shared by the
// scenario miner and the metric evaluation engine: Stream, Event, Run,
// Scenario, ScenarioSet, MetricResult, and ScoreCard.
package model

// SpecVersion is the artifact schema version this build produces and
// accepts. Any ScenarioSet or ScoreCard carrying a different value is
// rejected at deserialization.
const SpecVersion = "0.1.0"
