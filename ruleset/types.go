// Package ruleset loads and validates mining rule files: the YAML
// documents that tell the scenario miner which windows of a run to carve
// out as scenarios.
package ruleset

// WindowSpec is the padding applied around a matched interval before it
// becomes a scenario.
type WindowSpec struct {
	PreS  float64
	PostS float64
}

// EventSpec triggers a scenario at every event named Name whose attrs
// match Where (a subset-equality match; an empty Where matches any event
// with that name).
type EventSpec struct {
	Name  string
	Where map[string]any
}

// ThresholdSpec triggers a scenario whenever Signal (resolved against
// Stream) satisfies Op against Value for at least ForS seconds
// continuously. MinGapS merges adjacent matches whose gap is at most that
// value; CooldownS suppresses a new match for that long after one ends.
type ThresholdSpec struct {
	Stream    string
	Signal    string
	Op        string
	Value     float64
	ForS      float64
	MinGapS   *float64
	CooldownS *float64
}

// RuleSpec is one entry in a rules file. Exactly one of Event or
// Threshold is set.
type RuleSpec struct {
	RuleID    string
	Intent    string
	Tags      map[string]string
	Window    WindowSpec
	Event     *EventSpec
	Threshold *ThresholdSpec
}

// Ruleset is a parsed, validated rules file.
type Ruleset struct {
	Version   string
	Scenarios []RuleSpec
}
