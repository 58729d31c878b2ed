// Command robometrics ingests robot run logs, mines scenarios from
// them against a ruleset, and evaluates metrics over the resulting
// scenarios.
package main

import (
	"os"

	"github.com/spf13/cobra"

	_ "github.com/nitishsanghi/robometrics/metrics/builtin"
)

var (
	cfgFile string
	verbose bool
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:     "robometrics",
	Short:   "Scenario-based offline evaluation for robotics logs",
	Long:    `robometrics mines time-bounded scenarios out of robot run logs and scores them against a registry of metrics.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is built-in defaults)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(mineCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(compareCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCodeFor(err))
	}
}
