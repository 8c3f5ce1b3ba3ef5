package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/ragscore/internal/loader"
	"github.com/kailas-cloud/ragscore/internal/metric"
	"github.com/kailas-cloud/ragscore/internal/report"
	"github.com/kailas-cloud/ragscore/internal/usecase/evaluate"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score a dataset of query/context/answer records",
	Long: "Load records from a CSV, JSON, or BibTeX file, score them with the " +
		"selected metrics, and print average scores. Optionally writes a " +
		"per-record CSV and JSONL report pair.",
	RunE: runEvaluate,
}

var (
	evalInputFile  string
	evalFormat     string
	evalMetrics    []string
	evalOutputFile string
	evalReportDir  string
	evalVerbose    bool
)

func init() {
	evaluateCmd.Flags().StringVarP(&evalInputFile, "input", "i", "", "Path to the dataset file (required)")
	evaluateCmd.Flags().StringVarP(&evalFormat, "format", "f", "", "Input format: csv, json, bibtex (default: by extension)")
	evaluateCmd.Flags().StringSliceVarP(&evalMetrics, "metrics", "m", nil, "Metrics to run (default: all)")
	evaluateCmd.Flags().StringVarP(&evalOutputFile, "output", "o", "", "Write full results as JSON to this file")
	evaluateCmd.Flags().StringVar(&evalReportDir, "report-dir", "", "Write per-record CSV and JSONL reports to this directory")
	evaluateCmd.Flags().BoolVarP(&evalVerbose, "verbose", "v", false, "Print per-record scores with details")
	_ = evaluateCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(_ *cobra.Command, _ []string) error {
	format := loader.Format(evalFormat)
	if evalFormat == "" {
		var err error
		format, err = loader.DetectFormat(evalInputFile)
		if err != nil {
			return err
		}
	} else if !format.IsValid() {
		return fmt.Errorf("unsupported format %q (want csv, json, or bibtex)", evalFormat)
	}

	recs, err := loader.Load(evalInputFile, format)
	if err != nil {
		return fmt.Errorf("load %s: %w", evalInputFile, err)
	}
	if len(recs) == 0 {
		return fmt.Errorf("no records in %s", evalInputFile)
	}

	names := make([]metric.Name, len(evalMetrics))
	for i, n := range evalMetrics {
		names[i] = metric.Name(n)
	}
	svc, err := evaluate.New(nil, names)
	if err != nil {
		return err
	}

	batch := svc.EvaluateBatch(recs)

	if evalVerbose {
		if err := printRecords(batch); err != nil {
			return err
		}
	}
	printAverages(evaluate.AverageScores(batch), len(batch))

	if evalOutputFile != "" {
		if err := writeJSONOutput(evalOutputFile, batch); err != nil {
			return err
		}
		fmt.Printf("\nResults written to %s\n", evalOutputFile)
	}

	if evalReportDir != "" {
		csvPath, jsonlPath, err := report.NewWriter(evalReportDir).Write(recs, batch)
		if err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Printf("\nReports written:\n  %s\n  %s\n", csvPath, jsonlPath)
	}

	return nil
}

func writeJSONOutput(path string, batch []evaluate.Evaluation) error {
	out := struct {
		Results  []map[string]any   `json:"results"`
		Averages map[string]float64 `json:"averages"`
		Count    int                `json:"count"`
	}{
		Results:  make([]map[string]any, len(batch)),
		Averages: make(map[string]float64),
		Count:    len(batch),
	}
	for i, ev := range batch {
		out.Results[i] = wireEvaluation(ev)
	}
	for name, avg := range evaluate.AverageScores(batch) {
		out.Averages[string(name)] = avg
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func wireEvaluation(ev evaluate.Evaluation) map[string]any {
	out := make(map[string]any, len(ev))
	for name, res := range ev {
		out[string(name)] = map[string]any{
			"score":   res.Score(),
			"details": res.Details(),
		}
	}
	return out
}

func printRecords(batch []evaluate.Evaluation) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	for i, ev := range batch {
		fmt.Printf("--- record %d ---\n", i)
		if err := enc.Encode(wireEvaluation(ev)); err != nil {
			return fmt.Errorf("encode record %d: %w", i, err)
		}
	}
	return nil
}

func printAverages(averages map[metric.Name]float64, count int) {
	names := make([]string, 0, len(averages))
	for name := range averages {
		names = append(names, string(name))
	}
	sort.Strings(names)

	fmt.Printf("Scored %d records\n", count)
	for _, name := range names {
		fmt.Printf("  %-20s %.4f\n", name, averages[metric.Name(name)])
	}
}
