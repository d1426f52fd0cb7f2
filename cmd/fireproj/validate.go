package main

import (
	"fmt"

	"github.com/rpgo/fire-projector/internal/config"
	"github.com/rpgo/fire-projector/internal/output"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config>",
		Short: "Check a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			p := cfg.Parameters
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Configuration %s is valid\n", args[0])
			fmt.Fprintf(out, "  Portfolio %s, target %s, return %s, max %d years\n",
				output.FormatAmount(p.InitialPortfolio, cfg.Display),
				output.FormatAmount(p.TargetValue, cfg.Display),
				output.FormatRate(p.XIRR),
				cfg.Projection.MaxYears)
			return nil
		},
	}
}
