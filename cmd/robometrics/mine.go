package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nitishsanghi/robometrics/ioartifact"
	"github.com/nitishsanghi/robometrics/mining"
	"github.com/nitishsanghi/robometrics/ruleset"
)

var mineCmd = &cobra.Command{
	Use:   "mine",
	Args:  cobra.NoArgs,
	Short: "Mine scenarios out of a run artifact against a ruleset",
	RunE:  runMine,
}

func init() {
	mineCmd.Flags().String("run", "", "run artifact directory")
	mineCmd.Flags().String("rules", "", "ruleset YAML file")
	mineCmd.Flags().String("out", "", "output directory for the scenario set artifact")
	mineCmd.Flags().String("scenario-set-id", "", "scenario set id (default: generated)")
	mineCmd.Flags().String("created-at", "", "scenario set creation timestamp (default: now)")
	_ = mineCmd.MarkFlagRequired("run")
	_ = mineCmd.MarkFlagRequired("rules")
	_ = mineCmd.MarkFlagRequired("out")
}

func runMine(cmd *cobra.Command, args []string) error {
	runDir, _ := cmd.Flags().GetString("run")
	rulesPath, _ := cmd.Flags().GetString("rules")
	out, _ := cmd.Flags().GetString("out")
	scenarioSetID, _ := cmd.Flags().GetString("scenario-set-id")
	createdAt, _ := cmd.Flags().GetString("created-at")

	cfg, err := loadConfig()
	if err != nil {
		return newExitError(1, err)
	}
	logger := newLogger(cfg)

	if scenarioSetID == "" {
		scenarioSetID = cfg.Mining.DefaultScenarioSetID
	}
	if scenarioSetID == "" {
		scenarioSetID = uuid.NewString()
	}
	if createdAt == "" {
		createdAt = cfg.Mining.DefaultCreatedAt
	}
	if createdAt == "" {
		createdAt = time.Now().UTC().Format(time.RFC3339)
	}

	logger.Info("loading run", "dir", runDir)
	run, _, err := ioartifact.ReadRun(runDir)
	if err != nil {
		return newExitError(1, fmt.Errorf("read run: %w", err))
	}

	logger.Info("loading ruleset", "file", rulesPath)
	rules, err := ruleset.Load(rulesPath)
	if err != nil {
		return newExitError(1, fmt.Errorf("load ruleset: %w", err))
	}

	set, report := mining.MineScenarios(run, rules, scenarioSetID, createdAt)
	for _, w := range report.Warnings {
		logger.Warn("mining warning", "detail", w)
	}
	if !report.OK() {
		for _, e := range report.Errors {
			logger.Error("mining error", "detail", e)
		}
		return newExitError(1, fmt.Errorf("mining failed schema validation"))
	}

	path, err := ioartifact.WriteScenarioSet(set, out)
	if err != nil {
		return newExitError(1, fmt.Errorf("write scenario set: %w", err))
	}

	fmt.Println(path)
	return nil
}
