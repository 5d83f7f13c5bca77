package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Show which extraction strategies are available for each format",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		parser, err := newParser()
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "FORMAT\tORDER\tSTRATEGY\tSTATUS")
		for _, c := range parser.Capabilities() {
			for i, s := range c.Strategies {
				status := "available"
				if !s.Available {
					status = "unavailable: " + s.Reason
				}
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", c.Format, i+1, s.Name, status)
			}
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}
