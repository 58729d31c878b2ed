// Package mining implements the scenario miner: turning a run and a
// ruleset into a ScenarioSet by extracting event-triggered and
// threshold-triggered time windows.
package mining

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"sort"

	"github.com/nitishsanghi/robometrics/model"
	"github.com/nitishsanghi/robometrics/ruleset"
	"github.com/nitishsanghi/robometrics/telemetry/obsmetrics"
)

type segment struct {
	start float64
	end   float64
}

type bounds struct {
	min, max float64
	ok       bool
}

// MineScenarios extracts scenarios from run per rules, returning the
// resulting ScenarioSet alongside a SchemaReport of non-fatal mining
// warnings (e.g. a threshold rule referencing a missing stream).
func MineScenarios(run *model.Run, rules *ruleset.Ruleset, scenarioSetID, createdAt string) (*model.ScenarioSet, *model.SchemaReport) {
	report := model.NewSchemaReport()
	var scenarios []model.Scenario

	b := runTimeBounds(run)

	for _, rule := range rules.Scenarios {
		var mined []model.Scenario
		switch {
		case rule.Event != nil:
			mined = mineEventRule(run, rule, b, report)
		case rule.Threshold != nil:
			mined = mineThresholdRule(run, rule, b, report)
		}
		obsmetrics.ObserveScenariosMined(rule.RuleID, len(mined))
		scenarios = append(scenarios, mined...)
	}

	sort.Slice(scenarios, func(i, j int) bool {
		a, c := scenarios[i], scenarios[j]
		if a.RunID != c.RunID {
			return a.RunID < c.RunID
		}
		if a.T0 != c.T0 {
			return a.T0 < c.T0
		}
		if a.T1 != c.T1 {
			return a.T1 < c.T1
		}
		if a.Intent != c.Intent {
			return a.Intent < c.Intent
		}
		return a.ScenarioID < c.ScenarioID
	})

	scenarioSet, _ := model.NewScenarioSet(
		scenarioSetID,
		createdAt,
		map[string]map[string]any{run.RunID: {"run_id": run.RunID}},
		scenarios,
	)

	return scenarioSet, report
}

func mineEventRule(run *model.Run, rule ruleset.RuleSpec, b bounds, report *model.SchemaReport) []model.Scenario {
	name := rule.Event.Name
	filtered := run.FilterEvents(&name, nil, nil)
	if len(rule.Event.Where) > 0 {
		kept := filtered[:0:0]
		for _, ev := range filtered {
			if ev.MatchesWhere(rule.Event.Where) {
				kept = append(kept, ev)
			}
		}
		filtered = kept
	}

	sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].T < filtered[j].T })

	var matches []model.Scenario
	for idx, ev := range filtered {
		t0 := ev.T - rule.Window.PreS
		t1 := ev.T + rule.Window.PostS
		t0, t1 = clampWindow(t0, t1, b)
		scenarioID := scenarioID(rule.RuleID, run.RunID, t0, t1, idx)
		if t1 <= t0 {
			warn(report, rule.RuleID, fmt.Sprintf(
				"rule %q run %q scenario %q skipped due to non-positive window (%.3f, %.3f)",
				rule.RuleID, run.RunID, scenarioID, t0, t1))
			continue
		}
		tags := mergeTags(rule.Tags, rule.RuleID)
		s, err := model.NewScenario(scenarioID, run.RunID, t0, t1, rule.Intent, tags, nil)
		if err != nil {
			warn(report, rule.RuleID, fmt.Sprintf("rule %q: %s", rule.RuleID, err))
			continue
		}
		matches = append(matches, *s)
	}
	return matches
}

func mineThresholdRule(run *model.Run, rule ruleset.RuleSpec, b bounds, report *model.SchemaReport) []model.Scenario {
	stream := run.GetStream(rule.Threshold.Stream)
	if stream == nil {
		warn(report, rule.RuleID, fmt.Sprintf("rule %q: stream %q missing", rule.RuleID, rule.Threshold.Stream))
		return nil
	}

	signalValues, ok := resolveSignal(stream, rule.Threshold, report, rule.RuleID)
	if !ok {
		return nil
	}

	condition := make([]bool, len(signalValues))
	for i, v := range signalValues {
		condition[i] = compare(v, rule.Threshold.Op, rule.Threshold.Value)
	}

	segments := segmentsFromCondition(stream.T, condition)
	segments = applyMinDuration(segments, rule.Threshold.ForS)
	segments = applyMinGap(segments, rule.Threshold.MinGapS)
	segments = applyCooldown(segments, rule.Threshold.CooldownS)

	var scenarios []model.Scenario
	for idx, seg := range segments {
		t0 := seg.start - rule.Window.PreS
		t1 := seg.end + rule.Window.PostS
		t0, t1 = clampWindow(t0, t1, b)
		scenarioID := scenarioID(rule.RuleID, run.RunID, t0, t1, idx)
		if t1 <= t0 {
			warn(report, rule.RuleID, fmt.Sprintf(
				"rule %q run %q scenario %q skipped due to non-positive window (%.3f, %.3f)",
				rule.RuleID, run.RunID, scenarioID, t0, t1))
			continue
		}
		tags := mergeTags(rule.Tags, rule.RuleID)
		s, err := model.NewScenario(scenarioID, run.RunID, t0, t1, rule.Intent, tags, nil)
		if err != nil {
			warn(report, rule.RuleID, fmt.Sprintf("rule %q: %s", rule.RuleID, err))
			continue
		}
		scenarios = append(scenarios, *s)
	}
	return scenarios
}

func warn(report *model.SchemaReport, ruleID, msg string) {
	report.AddWarning(msg)
	obsmetrics.ObserveMiningWarning(ruleID)
}

func mergeTags(ruleTags map[string]string, ruleID string) map[string]string {
	tags := make(map[string]string, len(ruleTags)+1)
	for k, v := range ruleTags {
		tags[k] = v
	}
	tags["rule_id"] = ruleID
	return tags
}

func runTimeBounds(run *model.Run) bounds {
	tmin, tmax, ok := run.TimeBounds()
	return bounds{min: tmin, max: tmax, ok: ok}
}

func clampWindow(t0, t1 float64, b bounds) (float64, float64) {
	if !b.ok {
		return t0, t1
	}
	return math.Max(t0, b.min), math.Min(t1, b.max)
}

func scenarioID(ruleID, runID string, t0, t1 float64, idx int) string {
	payload := fmt.Sprintf("%s:%s:%.4f:%.4f:%d", ruleID, runID, t0, t1, idx)
	sum := sha256.Sum256([]byte(payload))
	return ruleID + ":" + hex.EncodeToString(sum[:])[:10]
}

func resolveSignal(stream *model.Stream, threshold *ruleset.ThresholdSpec, report *model.SchemaReport, ruleID string) ([]float64, bool) {
	if col, ok := stream.Data[threshold.Signal]; ok {
		out := make([]float64, len(col))
		for i, v := range col {
			f, _ := toFloat(v)
			out[i] = f
		}
		return out, true
	}

	if threshold.Signal == "linear_speed" {
		vx, okx := stream.Data["vx"]
		vy, oky := stream.Data["vy"]
		if okx && oky {
			out := make([]float64, len(vx))
			for i := range vx {
				x, _ := toFloat(vx[i])
				y, _ := toFloat(vy[i])
				out[i] = math.Hypot(x, y)
			}
			return out, true
		}
		warn(report, ruleID, fmt.Sprintf("rule %q: signal 'linear_speed' requires vx/vy", ruleID))
		return nil, false
	}

	warn(report, ruleID, fmt.Sprintf("rule %q: signal %q not found", ruleID, threshold.Signal))
	return nil, false
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
	}
	return 0, false
}

func compare(value float64, op string, target float64) bool {
	switch op {
	case "lt":
		return value < target
	case "le":
		return value <= target
	case "gt":
		return value > target
	case "ge":
		return value >= target
	}
	return false
}

func segmentsFromCondition(times []float64, mask []bool) []segment {
	var segments []segment
	var start *float64
	var lastTime *float64
	for i, t := range times {
		flag := mask[i]
		tt := t
		if flag && start == nil {
			start = &tt
		}
		if !flag && start != nil {
			end := tt
			if lastTime != nil {
				end = *lastTime
			}
			segments = append(segments, segment{start: *start, end: end})
			start = nil
		}
		lastTime = &tt
	}
	if start != nil && lastTime != nil {
		segments = append(segments, segment{start: *start, end: *lastTime})
	}
	return segments
}

func applyMinDuration(segments []segment, forS float64) []segment {
	if forS <= 0 {
		return segments
	}
	var out []segment
	for _, s := range segments {
		if s.end-s.start >= forS {
			out = append(out, s)
		}
	}
	return out
}

func applyMinGap(segments []segment, minGapS *float64) []segment {
	if len(segments) == 0 || minGapS == nil || *minGapS <= 0 {
		return segments
	}
	merged := []segment{segments[0]}
	for _, s := range segments[1:] {
		last := &merged[len(merged)-1]
		if s.start-last.end <= *minGapS {
			if s.end > last.end {
				last.end = s.end
			}
		} else {
			merged = append(merged, s)
		}
	}
	return merged
}

func applyCooldown(segments []segment, cooldownS *float64) []segment {
	if len(segments) == 0 || cooldownS == nil || *cooldownS <= 0 {
		return segments
	}
	var filtered []segment
	var lastEnd *float64
	for _, s := range segments {
		if lastEnd == nil || s.start-*lastEnd >= *cooldownS {
			filtered = append(filtered, s)
			end := s.end
			lastEnd = &end
		}
	}
	return filtered
}
