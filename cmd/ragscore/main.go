// Package main provides the ragscore command line interface.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ragscore",
	Short: "Rule-based RAG answer scoring",
	Long: "ragscore scores RAG answers against their retrieved context with " +
		"deterministic, rule-based metrics: faithfulness, context precision, and relevance.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
