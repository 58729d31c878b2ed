package builtin

import (
	"github.com/nitishsanghi/robometrics/metrics"
	"github.com/nitishsanghi/robometrics/model"
)

func init() {
	metrics.Register(metrics.MetricSpec{
		Name:            "task.success",
		RequiresStreams: []string{"mission.status"},
		Description:     "Whether the mission status ends in succeeded.",
		Fn:              taskSuccess,
	})
	metrics.Register(metrics.MetricSpec{
		Name:            "task.time_to_goal",
		RequiresStreams: []string{"mission.status"},
		Description:     "Seconds from first active to first succeeded.",
		Fn:              taskTimeToGoal,
	})
	metrics.Register(metrics.MetricSpec{
		Name:            "task.progress_rate",
		RequiresStreams: []string{"state.pose2d", "mission.goal2d"},
		Description:     "(start distance - end distance) / duration.",
		Fn:              taskProgressRate,
	})
	metrics.Register(metrics.MetricSpec{
		Name:        "task.recovery_count",
		Description: "Count of task.recovery events.",
		Fn:          countEvents("task.recovery"),
	})
}

func taskSuccess(ctx metrics.MetricContext) (*model.MetricResult, error) {
	stream := ctx.Streams["mission.status"]
	statuses := stream.Data["status"]
	if len(statuses) == 0 {
		return model.Invalid("higher", "missing status samples"), nil
	}
	succeeded := asString(statuses[len(statuses)-1]) == "succeeded"
	r, _ := model.NewMetricResult(succeeded, nil, "higher", true, nil)
	return r, nil
}

func taskTimeToGoal(ctx metrics.MetricContext) (*model.MetricResult, error) {
	units := "s"
	stream := ctx.Streams["mission.status"]
	times := stream.T
	statuses := stream.Data["status"]
	if len(times) == 0 || len(statuses) == 0 {
		return &model.MetricResult{Direction: "lower", Units: &units, Notes: strPtr("missing status samples")}, nil
	}

	var tActive, tSucceeded *float64
	for i, status := range statuses {
		if asString(status) == "active" {
			t := times[i]
			tActive = &t
			break
		}
	}
	for i, status := range statuses {
		if asString(status) == "succeeded" {
			t := times[i]
			tSucceeded = &t
			break
		}
	}

	if tActive == nil {
		v := ctx.Scenario.T0
		tActive = &v
	}
	if tSucceeded == nil {
		v := ctx.Scenario.T1
		tSucceeded = &v
	}

	value := *tSucceeded - *tActive
	if value < 0 {
		value = 0
	}
	r, _ := model.NewMetricResult(value, &units, "lower", true, nil)
	return r, nil
}

func taskProgressRate(ctx metrics.MetricContext) (*model.MetricResult, error) {
	units := "m/s"
	state := ctx.Streams["state.pose2d"]
	goal := ctx.Streams["mission.goal2d"]
	if len(state.T) == 0 || len(goal.T) == 0 {
		return &model.MetricResult{Direction: "higher", Units: &units, Notes: strPtr("missing pose or goal samples")}, nil
	}
	stateX, stateY := state.Data["x"], state.Data["y"]
	goalX, goalY := goal.Data["x"], goal.Data["y"]
	if len(stateX) == 0 || len(stateY) == 0 || len(goalX) == 0 || len(goalY) == 0 {
		return &model.MetricResult{Direction: "higher", Units: &units, Notes: strPtr("missing pose or goal coordinates")}, nil
	}

	duration := state.T[len(state.T)-1] - state.T[0]
	if duration <= 0 {
		return &model.MetricResult{Direction: "higher", Units: &units, Notes: strPtr("non-positive duration")}, nil
	}

	sx0, _ := toFloat(stateX[0])
	sy0, _ := toFloat(stateY[0])
	gx0, _ := toFloat(goalX[0])
	gy0, _ := toFloat(goalY[0])
	sxN, _ := toFloat(stateX[len(stateX)-1])
	syN, _ := toFloat(stateY[len(stateY)-1])
	gxN, _ := toFloat(goalX[len(goalX)-1])
	gyN, _ := toFloat(goalY[len(goalY)-1])

	startDist := distance(sx0, sy0, gx0, gy0)
	endDist := distance(sxN, syN, gxN, gyN)

	r, _ := model.NewMetricResult((startDist-endDist)/duration, &units, "higher", true, nil)
	return r, nil
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
