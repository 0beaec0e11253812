package main

import (
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of arxiv-fetch",
	Run: func(cmd *cobra.Command, args []string) {
		printer.Print("arxiv-fetch %s", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
