package main

import (
	"fmt"
	"sort"

	"github.com/rpgo/fire-projector/internal/output"
	"github.com/spf13/cobra"
)

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List report formats and aliases",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Formats:")
			for _, name := range output.AvailableFormatterNames() {
				fmt.Fprintf(out, "  %-13s .%s\n", name, output.ExtensionFor(output.GetFormatterByName(name)))
			}
			fmt.Fprintln(out, "  all           every format above")

			byTarget := map[string][]string{}
			for _, alias := range output.AvailableFormatAliases() {
				target := output.NormalizeFormatName(alias)
				byTarget[target] = append(byTarget[target], alias)
			}
			targets := make([]string, 0, len(byTarget))
			for t := range byTarget {
				targets = append(targets, t)
			}
			sort.Strings(targets)
			fmt.Fprintln(out, "Aliases:")
			for _, t := range targets {
				fmt.Fprintf(out, "  %-13s %v\n", t, byTarget[t])
			}
		},
	}
}
