// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-fetch/internal/output"
	"github.com/pdiddy/arxiv-fetch/internal/search"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the recognized arXiv categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		printer.Print("Available arXiv categories:\n")

		table := output.NewTable(printer.Out(), []string{"Code", "Description"})
		for _, c := range search.Categories() {
			table.AddRow(c.Code, c.Description)
		}
		if err := table.Render(); err != nil {
			return err
		}

		printer.Print("\nUse these categories with the --categories/-c option")
		printer.Print("   Example: arxiv-fetch search 'machine learning' -c cs.LG -c cs.AI")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
