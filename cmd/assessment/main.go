// Package main provides the entry point for the RevOps maturity assessment service and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/revops-assessment/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "assessment",
	Short: "RevOps Maturity Assessment",
	Long: "Scores the RevOps maturity questionnaire, composes the narrative report and " +
		"delivers completed submissions by email and spreadsheet webhook.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config.yaml file (optional)")
}

func main() {
	config.LoadDotEnv()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
