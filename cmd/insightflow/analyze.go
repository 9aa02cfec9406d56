package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/xailabs/insightflow/internal/client"
	"github.com/xailabs/insightflow/internal/dashboard"
	"github.com/xailabs/insightflow/internal/extractor"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a data file",
	Long:  "Extract text from a file (CSV, JSON, TXT, XML, LOG, MD or PDF) and run it through the analysis engine.",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	file := extractor.UploadedFile{
		Name:        filepath.Base(path),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
		Data:        data,
	}

	store := dashboard.NewStore()
	c := client.New(serverURL, store)

	onProgress := func(p client.Progress) {
		fmt.Fprintf(os.Stderr, "[%3d%%] %s\n", p.Percent, p.Label)
	}

	result, err := c.Analyze(cmd.Context(), file, onProgress)
	if err != nil {
		return err
	}

	fmt.Printf("\nSummary\n  %s\n", result.Summary)

	fmt.Println("\nKey Findings")
	for i, f := range result.KeyFindings {
		fmt.Printf("  %d. %s\n", i+1, f)
	}

	fmt.Printf("\nSentiment: %s (score %.2f)\n", result.Sentiment.Overall, result.Sentiment.Score)

	if len(result.Recommendations) > 0 {
		fmt.Println("\nRecommendations")
		for _, r := range result.Recommendations {
			fmt.Printf("  - %s\n", r)
		}
	}

	if len(result.Anomalies) > 0 {
		fmt.Println("\nAnomalies")
		for _, a := range result.Anomalies {
			fmt.Printf("  [%s] %s (confidence %.2f)\n", a.Severity, a.Description, a.Confidence)
		}
	}

	fmt.Printf("\nModel: %s  tokens=%d  latency=%dms\n",
		result.ModelInfo.Model, result.ModelInfo.TokensUsed, result.ModelInfo.LatencyMs)

	return nil
}
