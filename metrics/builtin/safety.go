package builtin

import (
	"math"

	"github.com/nitishsanghi/robometrics/metrics"
	"github.com/nitishsanghi/robometrics/model"
)

func init() {
	metrics.Register(metrics.MetricSpec{
		Name:        "safety.fallback_count",
		Description: "Count of safety.fallback events.",
		Fn:          countEvents("safety.fallback"),
	})
	metrics.Register(metrics.MetricSpec{
		Name:        "safety.estop_count",
		Description: "Count of safety.estop events.",
		Fn:          countEvents("safety.estop"),
	})
	metrics.Register(metrics.MetricSpec{
		Name:        "safety.contact_count",
		Description: "Count of safety.contact events.",
		Fn:          countEvents("safety.contact"),
	})
	metrics.Register(metrics.MetricSpec{
		Name:            "safety.speed_limit_violations",
		RequiresStreams: []string{"state.twist2d"},
		Description:     "Count of samples exceeding configured speed limit.",
		Fn:              safetySpeedLimitViolations,
	})
	metrics.Register(metrics.MetricSpec{
		Name:            "safety.min_clearance",
		RequiresStreams: []string{"obstacle"},
		Description:     "Minimum obstacle clearance.",
		Fn:              safetyMinClearance,
	})
}

func countEvents(name string) metrics.MetricFn {
	return func(ctx metrics.MetricContext) (*model.MetricResult, error) {
		count := 0
		for _, ev := range ctx.Events {
			if ev.Name == name {
				count++
			}
		}
		r, _ := model.NewMetricResult(count, nil, "lower", true, nil)
		return r, nil
	}
}

func safetySpeedLimitViolations(ctx metrics.MetricContext) (*model.MetricResult, error) {
	speedLimit := 0.0
	if v, ok := ctx.Config["speed_limit_mps"]; ok {
		if f, ok := toFloat(v); ok {
			speedLimit = f
		}
	}
	if speedLimit <= 0 {
		return model.Invalid("lower", "missing speed_limit_mps config"), nil
	}

	stream := ctx.Streams["state.twist2d"]
	vx, vxOk := stream.Data["vx"]
	vy, vyOk := stream.Data["vy"]
	if !vxOk || !vyOk {
		return model.Invalid("lower", "missing vx/vy"), nil
	}

	count := 0
	for i := range vx {
		x, _ := toFloat(vx[i])
		y, _ := toFloat(vy[i])
		if math.Hypot(x, y) > speedLimit {
			count++
		}
	}
	r, _ := model.NewMetricResult(count, nil, "lower", true, nil)
	return r, nil
}

func safetyMinClearance(ctx metrics.MetricContext) (*model.MetricResult, error) {
	units := "m"
	stream := ctx.Streams["obstacle"]
	distances, ok := stream.Data["min_distance"]
	if !ok || len(distances) == 0 {
		return &model.MetricResult{Direction: "higher", Units: &units, Notes: strPtr("missing min_distance")}, nil
	}

	var values []float64
	for _, v := range distances {
		f, ok := toFloat(v)
		if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		values = append(values, f)
	}
	if len(values) == 0 {
		return &model.MetricResult{Direction: "higher", Units: &units, Notes: strPtr("no valid min_distance samples")}, nil
	}

	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	r, _ := model.NewMetricResult(min, &units, "higher", true, nil)
	return r, nil
}
