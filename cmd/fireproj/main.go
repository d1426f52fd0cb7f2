// Command fireproj projects how many years a portfolio needs to reach a
// target net worth.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "fireproj",
		Short:         "Net worth projection calculator",
		Long:          "fireproj compounds a portfolio year by year, adding post-tax income minus expenses, until it reaches a target value.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(
		newProjectCmd(),
		newServeCmd(),
		newInitCmd(),
		newValidateCmd(),
		newFormatsCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
