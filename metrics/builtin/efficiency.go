package builtin

import (
	"math"

	"github.com/nitishsanghi/robometrics/metrics"
	"github.com/nitishsanghi/robometrics/model"
)

func init() {
	metrics.Register(metrics.MetricSpec{
		Name:            "eff.path_efficiency",
		RequiresStreams: []string{"state.pose2d", "mission.goal2d"},
		Description:     "Straight-line distance to goal divided by path length.",
		Fn:              effPathEfficiency,
	})
	metrics.Register(metrics.MetricSpec{
		Name:            "eff.stop_time_ratio",
		RequiresStreams: []string{"state.twist2d"},
		Description:     "Ratio of time with linear_speed < stop_speed_mps.",
		Fn:              effStopTimeRatio,
	})
}

func effPathEfficiency(ctx metrics.MetricContext) (*model.MetricResult, error) {
	pose := ctx.Streams["state.pose2d"]
	goal := ctx.Streams["mission.goal2d"]
	if len(pose.T) < 2 {
		return model.Invalid("higher", "insufficient pose samples"), nil
	}

	xs := floatColumn(pose.Data["x"])
	ys := floatColumn(pose.Data["y"])
	pathLength := pathLength(xs, ys)
	if pathLength <= 0 {
		return model.Invalid("higher", "non-positive path length"), nil
	}

	goalXs := floatColumn(goal.Data["x"])
	goalYs := floatColumn(goal.Data["y"])
	startX, startY := firstOr(xs, 0), firstOr(ys, 0)
	goalX, goalY := firstOr(goalXs, 0), firstOr(goalYs, 0)

	startDist := distance(startX, startY, goalX, goalY)
	if startDist > pathLength {
		return model.Invalid("higher", "path shorter than start distance"), nil
	}
	efficiency := math.Max(0.0, math.Min(1.0, startDist/pathLength))
	r, _ := model.NewMetricResult(efficiency, nil, "higher", true, nil)
	return r, nil
}

func effStopTimeRatio(ctx metrics.MetricContext) (*model.MetricResult, error) {
	threshold := 0.05
	if v, ok := ctx.Config["stop_speed_mps"]; ok {
		if f, ok := toFloat(v); ok {
			threshold = f
		}
	}

	stream := ctx.Streams["state.twist2d"]
	vx, vxOk := stream.Data["vx"]
	vy, vyOk := stream.Data["vy"]
	if !vxOk || !vyOk || len(stream.T) < 2 {
		return model.Invalid("lower", "insufficient samples"), nil
	}

	duration := stream.T[len(stream.T)-1] - stream.T[0]
	if duration <= 0 {
		return model.Invalid("lower", "non-positive duration"), nil
	}

	stopTime := 0.0
	for i := 1; i < len(stream.T); i++ {
		dt := stream.T[i] - stream.T[i-1]
		if dt <= 0 {
			continue
		}
		x, _ := toFloat(vx[i])
		y, _ := toFloat(vy[i])
		speed := math.Hypot(x, y)
		if speed < threshold {
			stopTime += dt
		}
	}

	r, _ := model.NewMetricResult(stopTime/duration, nil, "lower", true, nil)
	return r, nil
}

func pathLength(xs, ys []float64) float64 {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	if n < 2 {
		return 0.0
	}
	length := 0.0
	for i := 1; i < n; i++ {
		length += distance(xs[i-1], ys[i-1], xs[i], ys[i])
	}
	return length
}

func firstOr(values []float64, def float64) float64 {
	if len(values) == 0 {
		return def
	}
	return values[0]
}
