package main

import (
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a CV file and print the normalized document as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		parser, err := newParser()
		if err != nil {
			return err
		}
		doc, err := parser.ParseDocument(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		textOnly, _ := cmd.Flags().GetBool("text")
		return printDocument(cmd.OutOrStdout(), doc, textOnly)
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolP("text", "t", false, "print only the normalized plain text")
}
