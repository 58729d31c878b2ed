package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nitishsanghi/robometrics/ioartifact"
	"github.com/nitishsanghi/robometrics/metrics"
	"github.com/nitishsanghi/robometrics/metrics/plugin"
	"github.com/nitishsanghi/robometrics/model"
	"github.com/nitishsanghi/robometrics/telemetry/obsmetrics"
)

var evalCmd = &cobra.Command{
	Use:   "eval",
	Args:  cobra.NoArgs,
	Short: "Evaluate metrics over a scenario set and write scorecards",
	RunE:  runEval,
}

func init() {
	evalCmd.Flags().String("run", "", "run artifact directory")
	evalCmd.Flags().String("scenario-set", "", "scenario set artifact file")
	evalCmd.Flags().String("out", "", "output directory for scorecards")
	evalCmd.Flags().StringArray("metrics", nil, "metric names to evaluate (default: config engine.default_metrics)")
	evalCmd.Flags().StringArray("plugin", nil, "metric plugin .so files to load before evaluation")
	evalCmd.Flags().String("metrics-addr", "", "if set, serve Prometheus instrumentation on this address")
	_ = evalCmd.MarkFlagRequired("run")
	_ = evalCmd.MarkFlagRequired("scenario-set")
	_ = evalCmd.MarkFlagRequired("out")
}

func runEval(cmd *cobra.Command, args []string) error {
	runDir, _ := cmd.Flags().GetString("run")
	scenarioSetPath, _ := cmd.Flags().GetString("scenario-set")
	out, _ := cmd.Flags().GetString("out")
	metricNames, _ := cmd.Flags().GetStringArray("metrics")
	pluginPaths, _ := cmd.Flags().GetStringArray("plugin")
	metricsAddr, _ := cmd.Flags().GetString("metrics-addr")

	cfg, err := loadConfig()
	if err != nil {
		return newExitError(1, err)
	}
	logger := newLogger(cfg)

	allPlugins := append(append([]string{}, cfg.Plugins.Paths...), pluginPaths...)
	if len(allPlugins) > 0 {
		if err := plugin.Load(allPlugins); err != nil {
			return newExitError(1, fmt.Errorf("load plugins: %w", err))
		}
	}

	if len(metricNames) == 0 {
		metricNames = cfg.Engine.DefaultMetrics
	}
	if len(metricNames) == 0 {
		return newExitError(1, fmt.Errorf("no metrics requested: pass --metrics or set engine.default_metrics"))
	}

	if metricsAddr != "" {
		go func() {
			if err := obsmetrics.Serve(metricsAddr); err != nil {
				logger.Warn("metrics server stopped", "error", err)
			}
		}()
	}

	logger.Info("loading run", "dir", runDir)
	run, _, err := ioartifact.ReadRun(runDir)
	if err != nil {
		return newExitError(1, fmt.Errorf("read run: %w", err))
	}

	logger.Info("loading scenario set", "file", scenarioSetPath)
	set, err := ioartifact.ReadScenarioSet(scenarioSetPath)
	if err != nil {
		return newExitError(1, fmt.Errorf("read scenario set: %w", err))
	}

	metricConfig := map[string]map[string]any{}
	for _, name := range metricNames {
		metricConfig[name] = map[string]any{
			"stop_speed_mps":  cfg.Engine.StopSpeedMPS,
			"speed_limit_mps": cfg.Engine.SpeedLimitMPS,
		}
	}

	for _, scenario := range set.Scenarios {
		results := metrics.RunMetrics(metricNames, run, scenario, metricConfig)
		card := model.NewScoreCard(
			uuid.NewString(),
			scenario.RunID,
			scenario,
			map[string]any{"scenario_set_id": set.ScenarioSetID},
			results,
			time.Now().UTC().Format(time.RFC3339),
		)
		path, err := ioartifact.WriteScoreCard(card, out)
		if err != nil {
			return newExitError(1, fmt.Errorf("write scorecard: %w", err))
		}
		fmt.Println(path)
	}

	return nil
}
