package builtin

import "github.com/nitishsanghi/robometrics/metrics"

func init() {
	metrics.Register(metrics.MetricSpec{
		Name:        "sys.deadline_miss_count",
		Description: "Count of sys.deadline_miss events.",
		Fn:          countEvents("sys.deadline_miss"),
	})
	metrics.Register(metrics.MetricSpec{
		Name:        "sys.sensor_degraded_count",
		Description: "Count of sys.sensor_degraded events.",
		Fn:          countEvents("sys.sensor_degraded"),
	})
}
