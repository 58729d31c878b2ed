package ruleset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a rules file from disk.
func Load(path string) (*Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	return Parse(data)
}

// Parse validates a rules file already in memory.
func Parse(data []byte) (*Ruleset, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("rules file must contain a top-level mapping")
	}
	return parseRules(raw)
}

func parseRules(payload map[string]any) (*Ruleset, error) {
	version, ok := payload["version"].(string)
	if !ok || version == "" {
		return nil, fmt.Errorf("rules file must specify a non-empty version")
	}

	rawScenarios, ok := payload["scenarios"].([]any)
	if !ok {
		return nil, fmt.Errorf("rules file must include a scenarios list")
	}

	rules := make([]RuleSpec, 0, len(rawScenarios))
	seenIDs := make(map[string]bool, len(rawScenarios))
	for idx, item := range rawScenarios {
		m, ok := asMap(item)
		if !ok {
			return nil, fmt.Errorf("rule at index %d must be a mapping", idx)
		}

		ruleID, err := requireStr(m, "id", "")
		if err != nil {
			return nil, err
		}
		if seenIDs[ruleID] {
			return nil, fmtErr(ruleID, "duplicate rule id")
		}
		seenIDs[ruleID] = true

		intent, err := requireStr(m, "intent", ruleID)
		if err != nil {
			return nil, err
		}

		tags, err := parseTags(m["tags"], ruleID)
		if err != nil {
			return nil, err
		}

		window, err := parseWindow(m["window"], ruleID)
		if err != nil {
			return nil, err
		}

		eventRaw, hasEvent := m["event"]
		thresholdRaw, hasThreshold := m["threshold"]
		hasEvent = hasEvent && eventRaw != nil
		hasThreshold = hasThreshold && thresholdRaw != nil
		if hasEvent == hasThreshold {
			return nil, fmtErr(ruleID, "must define exactly one of event or threshold")
		}

		var event *EventSpec
		var threshold *ThresholdSpec
		if hasEvent {
			event, err = parseEvent(eventRaw, ruleID)
		} else {
			threshold, err = parseThreshold(thresholdRaw, ruleID)
		}
		if err != nil {
			return nil, err
		}

		rules = append(rules, RuleSpec{
			RuleID:    ruleID,
			Intent:    intent,
			Tags:      tags,
			Window:    window,
			Event:     event,
			Threshold: threshold,
		})
	}

	return &Ruleset{Version: version, Scenarios: rules}, nil
}

func parseTags(value any, ruleID string) (map[string]string, error) {
	if value == nil {
		return map[string]string{}, nil
	}
	m, ok := asMap(value)
	if !ok {
		return nil, fmtErr(ruleID, "tags must be a mapping")
	}
	tags := make(map[string]string, len(m))
	for k, v := range m {
		tags[k] = fmt.Sprintf("%v", v)
	}
	return tags, nil
}

func parseWindow(value any, ruleID string) (WindowSpec, error) {
	m, ok := asMap(value)
	if !ok {
		return WindowSpec{}, fmtErr(ruleID, "window must be a mapping")
	}
	preS, err := requireFloat(m, "pre_s", ruleID)
	if err != nil {
		return WindowSpec{}, err
	}
	postS, err := requireFloat(m, "post_s", ruleID)
	if err != nil {
		return WindowSpec{}, err
	}
	if preS < 0 || postS < 0 {
		return WindowSpec{}, fmtErr(ruleID, "window values must be >= 0")
	}
	return WindowSpec{PreS: preS, PostS: postS}, nil
}

func parseEvent(value any, ruleID string) (*EventSpec, error) {
	m, ok := asMap(value)
	if !ok {
		return nil, fmtErr(ruleID, "event must be a mapping")
	}
	name, err := requireStr(m, "name", ruleID)
	if err != nil {
		return nil, err
	}
	where := map[string]any{}
	if raw, present := m["where"]; present && raw != nil {
		wm, ok := asMap(raw)
		if !ok {
			return nil, fmtErr(ruleID, "event.where must be a mapping")
		}
		where = wm
	}
	return &EventSpec{Name: name, Where: where}, nil
}

func parseThreshold(value any, ruleID string) (*ThresholdSpec, error) {
	m, ok := asMap(value)
	if !ok {
		return nil, fmtErr(ruleID, "threshold must be a mapping")
	}
	stream, err := requireStr(m, "stream", ruleID)
	if err != nil {
		return nil, err
	}
	signal, err := requireStr(m, "signal", ruleID)
	if err != nil {
		return nil, err
	}
	op, err := requireStr(m, "op", ruleID)
	if err != nil {
		return nil, err
	}
	switch op {
	case "lt", "le", "gt", "ge":
	default:
		return nil, fmtErr(ruleID, "threshold.op must be one of lt/le/gt/ge")
	}
	thresholdValue, err := requireFloat(m, "value", ruleID)
	if err != nil {
		return nil, err
	}

	forS, err := optionalFloat(m, "for_s", ruleID, 0.0)
	if err != nil {
		return nil, err
	}
	if forS == nil || *forS < 0 {
		return nil, fmtErr(ruleID, "threshold.for_s must be >= 0")
	}

	minGapS, err := optionalFloatPtr(m, "min_gap_s", ruleID)
	if err != nil {
		return nil, err
	}
	if minGapS != nil && *minGapS < 0 {
		return nil, fmtErr(ruleID, "threshold.min_gap_s must be >= 0")
	}

	cooldownS, err := optionalFloatPtr(m, "cooldown_s", ruleID)
	if err != nil {
		return nil, err
	}
	if cooldownS != nil && *cooldownS < 0 {
		return nil, fmtErr(ruleID, "threshold.cooldown_s must be >= 0")
	}

	return &ThresholdSpec{
		Stream:    stream,
		Signal:    signal,
		Op:        op,
		Value:     thresholdValue,
		ForS:      *forS,
		MinGapS:   minGapS,
		CooldownS: cooldownS,
	}, nil
}

func requireStr(m map[string]any, key, ruleID string) (string, error) {
	raw, ok := m[key]
	s, isStr := raw.(string)
	if !ok || !isStr || s == "" {
		if ruleID != "" {
			return "", fmtErr(ruleID, fmt.Sprintf("%s must be a non-empty string", key))
		}
		return "", fmt.Errorf("%s must be a non-empty string", key)
	}
	return s, nil
}

func requireFloat(m map[string]any, key, ruleID string) (float64, error) {
	raw, ok := m[key]
	f, isFloat := toFloat(raw)
	if !ok || !isFloat {
		return 0, fmtErr(ruleID, fmt.Sprintf("%s must be a float", key))
	}
	return f, nil
}

// optionalFloat returns a non-nil pointer to the resolved value (falling
// back to default when absent), or an error if present but not numeric.
func optionalFloat(m map[string]any, key, ruleID string, def float64) (*float64, error) {
	raw, present := m[key]
	if !present || raw == nil {
		v := def
		return &v, nil
	}
	f, ok := toFloat(raw)
	if !ok {
		return nil, fmtErr(ruleID, fmt.Sprintf("%s must be a float", key))
	}
	return &f, nil
}

// optionalFloatPtr returns nil when the key is absent or null, mirroring a
// Python default of None (as opposed to optionalFloat's numeric default).
func optionalFloatPtr(m map[string]any, key, ruleID string) (*float64, error) {
	raw, present := m[key]
	if !present || raw == nil {
		return nil, nil
	}
	f, ok := toFloat(raw)
	if !ok {
		return nil, fmtErr(ruleID, fmt.Sprintf("%s must be a float", key))
	}
	return &f, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		var f float64
		if _, err := fmt.Sscanf(n, "%g", &f); err == nil {
			return f, true
		}
	}
	return 0, false
}

// asMap normalizes both map[string]any and yaml.v3's map[any]any decode
// shapes into map[string]any.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprintf("%v", k)] = val
		}
		return out, true
	}
	return nil, false
}

func fmtErr(ruleID, message string) error {
	return fmt.Errorf("Rule '%s': %s", ruleID, message)
}
