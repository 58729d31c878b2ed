package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Args:  cobra.NoArgs,
	Short: "Compare two scorecards (reserved)",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Subcommand 'compare' is not implemented in bootstrap.")
		return nil
	},
}
