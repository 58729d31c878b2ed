package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nitishsanghi/robometrics/adapters/demolog"
	"github.com/nitishsanghi/robometrics/ioartifact"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Args:  cobra.NoArgs,
	Short: "Read a run from an adapter and write a run artifact",
	RunE:  runIngest,
}

func init() {
	ingestCmd.Flags().String("adapter", "", "adapter name (demolog)")
	ingestCmd.Flags().String("input", "", "adapter input directory")
	ingestCmd.Flags().String("out", "", "output directory for the run artifact")
	_ = ingestCmd.MarkFlagRequired("adapter")
	_ = ingestCmd.MarkFlagRequired("input")
	_ = ingestCmd.MarkFlagRequired("out")
}

func runIngest(cmd *cobra.Command, args []string) error {
	adapterName, _ := cmd.Flags().GetString("adapter")
	input, _ := cmd.Flags().GetString("input")
	out, _ := cmd.Flags().GetString("out")

	cfg, err := loadConfig()
	if err != nil {
		return newExitError(1, err)
	}
	logger := newLogger(cfg)

	if strings.ToLower(adapterName) != "demolog" {
		return newExitError(2, fmt.Errorf("unsupported adapter: %s", adapterName))
	}

	logger.Info("ingesting run", "adapter", adapterName, "input", input)
	run, report, err := demolog.Read(input)
	if err != nil {
		return newExitError(1, fmt.Errorf("read run: %w", err))
	}
	if !report.OK() {
		for _, e := range report.Errors {
			logger.Error("schema error", "detail", e)
		}
		return newExitError(1, fmt.Errorf("run failed schema validation"))
	}
	for _, w := range report.Warnings {
		logger.Warn("schema warning", "detail", w)
	}

	runDir, err := ioartifact.WriteRun(run, report, out)
	if err != nil {
		return newExitError(1, fmt.Errorf("write run artifact: %w", err))
	}

	fmt.Println(runDir)
	return nil
}
