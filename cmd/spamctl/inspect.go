package main

import (
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show what the model artifacts contain",
	Long:  "Load both artifacts, verify they fit together, and print their metadata as JSON",
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	engine, err := loadEngine()
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), engine.Info())
}
