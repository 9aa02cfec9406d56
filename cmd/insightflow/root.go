package main

import "github.com/spf13/cobra"

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "insightflow",
	Short: "InsightFlow analysis client",
	Long:  "Upload a data file to a running InsightFlow server and view the AI analysis.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "base URL of the InsightFlow server")
	rootCmd.AddCommand(analyzeCmd)
}
