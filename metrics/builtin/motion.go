package builtin

import (
	"math"

	"github.com/nitishsanghi/robometrics/metrics"
	"github.com/nitishsanghi/robometrics/model"
)

func init() {
	metrics.Register(metrics.MetricSpec{
		Name:            "motion.jerk_p95",
		RequiresStreams: []string{"state.twist2d"},
		Description:     "95th percentile of linear jerk magnitude from vx/vy.",
		Fn:              func(ctx metrics.MetricContext) (*model.MetricResult, error) { return linearJerkPercentile(ctx, 95.0) },
	})
	metrics.Register(metrics.MetricSpec{
		Name:            "motion.jerk_p99",
		RequiresStreams: []string{"state.twist2d"},
		Description:     "99th percentile of linear jerk magnitude from vx/vy.",
		Fn:              func(ctx metrics.MetricContext) (*model.MetricResult, error) { return linearJerkPercentile(ctx, 99.0) },
	})
	metrics.Register(metrics.MetricSpec{
		Name:            "motion.angular_jerk_p95",
		RequiresStreams: []string{"state.twist2d"},
		Description:     "95th percentile of angular jerk magnitude from wz.",
		Fn:              motionAngularJerkP95,
	})
	metrics.Register(metrics.MetricSpec{
		Name:            "motion.oscillation_score",
		RequiresStreams: []string{"command.twist2d"},
		Description:     "Sign-change rate of command.vx per second.",
		Fn:              motionOscillationScore,
	})
}

func motionAngularJerkP95(ctx metrics.MetricContext) (*model.MetricResult, error) {
	units := "rad/s^3"
	stream := ctx.Streams["state.twist2d"]
	wz, ok := stream.Data["wz"]
	if !ok {
		return model.Invalid("lower", "missing wz"), nil
	}
	jerks := scalarJerk(stream.T, floatColumn(wz))
	if len(jerks) == 0 {
		return &model.MetricResult{Direction: "lower", Units: &units, Notes: strPtr("insufficient samples")}, nil
	}
	value := percentile(jerks, 95.0)
	r, _ := model.NewMetricResult(value, &units, "lower", true, nil)
	return r, nil
}

func motionOscillationScore(ctx metrics.MetricContext) (*model.MetricResult, error) {
	units := "1/s"
	stream := ctx.Streams["command.twist2d"]
	vx, ok := stream.Data["vx"]
	if !ok || len(stream.T) < 2 {
		return &model.MetricResult{Direction: "lower", Units: &units, Notes: strPtr("insufficient samples")}, nil
	}
	duration := stream.T[len(stream.T)-1] - stream.T[0]
	if duration <= 0 {
		return &model.MetricResult{Direction: "lower", Units: &units, Notes: strPtr("non-positive duration")}, nil
	}
	changes := signChanges(floatColumn(vx))
	r, _ := model.NewMetricResult(float64(changes)/duration, &units, "lower", true, nil)
	return r, nil
}

func linearJerkPercentile(ctx metrics.MetricContext, p float64) (*model.MetricResult, error) {
	units := "m/s^3"
	stream := ctx.Streams["state.twist2d"]
	vx, vxOk := stream.Data["vx"]
	vy, vyOk := stream.Data["vy"]
	if !vxOk || !vyOk {
		return &model.MetricResult{Direction: "lower", Units: &units, Notes: strPtr("missing vx/vy")}, nil
	}
	jerks := vectorJerk(stream.T, floatColumn(vx), floatColumn(vy))
	if len(jerks) == 0 {
		return &model.MetricResult{Direction: "lower", Units: &units, Notes: strPtr("insufficient samples")}, nil
	}
	value := percentile(jerks, p)
	r, _ := model.NewMetricResult(value, &units, "lower", true, nil)
	return r, nil
}

func vectorJerk(times, vx, vy []float64) []float64 {
	type accel struct{ t, ax, ay float64 }
	var accels []accel
	for i := 1; i < len(times); i++ {
		dt := times[i] - times[i-1]
		if dt <= 0 {
			continue
		}
		accels = append(accels, accel{
			t:  times[i],
			ax: (vx[i] - vx[i-1]) / dt,
			ay: (vy[i] - vy[i-1]) / dt,
		})
	}

	var jerks []float64
	for i := 1; i < len(accels); i++ {
		dt := accels[i].t - accels[i-1].t
		if dt <= 0 {
			continue
		}
		jx := (accels[i].ax - accels[i-1].ax) / dt
		jy := (accels[i].ay - accels[i-1].ay) / dt
		jerks = append(jerks, math.Hypot(jx, jy))
	}
	return jerks
}

func scalarJerk(times, values []float64) []float64 {
	type accel struct{ t, a float64 }
	var accels []accel
	for i := 1; i < len(times); i++ {
		dt := times[i] - times[i-1]
		if dt <= 0 {
			continue
		}
		accels = append(accels, accel{t: times[i], a: (values[i] - values[i-1]) / dt})
	}

	var jerks []float64
	for i := 1; i < len(accels); i++ {
		dt := accels[i].t - accels[i-1].t
		if dt <= 0 {
			continue
		}
		jerks = append(jerks, math.Abs((accels[i].a-accels[i-1].a)/dt))
	}
	return jerks
}

func strPtr(s string) *string { return &s }
