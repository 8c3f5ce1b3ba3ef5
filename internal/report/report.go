// Package report writes batch evaluation results to disk as a flat CSV
// summary and a structured JSONL log.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/kailas-cloud/ragscore/internal/domain"
	"github.com/kailas-cloud/ragscore/internal/domain/record"
	"github.com/kailas-cloud/ragscore/internal/metric"
	"github.com/kailas-cloud/ragscore/internal/usecase/evaluate"
)

// Writer emits one timestamped file pair per run into its output
// directory. The CSV keeps only scores (details dropped for flat
// output); the JSONL line per record preserves full details.
type Writer struct {
	dir string
	now func() time.Time
}

// NewWriter creates a report writer for the given output directory.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir, now: time.Now}
}

// jsonlEntry is the structured form of one evaluated record.
type jsonlEntry struct {
	Index       int                      `json:"index"`
	Query       string                   `json:"query"`
	Context     string                   `json:"context"`
	Answer      string                   `json:"answer"`
	GroundTruth string                   `json:"ground_truth,omitempty"`
	Scores      map[string]jsonlScore    `json:"scores"`
}

type jsonlScore struct {
	Score   float64        `json:"score"`
	Details map[string]any `json:"details"`
}

// Write stores the batch and returns the CSV and JSONL paths. Records
// and results must be parallel.
func (w *Writer) Write(recs []record.Record, results []evaluate.Evaluation) (csvPath, jsonlPath string, err error) {
	if len(recs) != len(results) {
		return "", "", fmt.Errorf("%w: %d records, %d results",
			domain.ErrLengthMismatch, len(recs), len(results))
	}
	if err := os.MkdirAll(w.dir, 0o750); err != nil {
		return "", "", fmt.Errorf("create report dir: %w", err)
	}

	stamp := w.now().Format("2006-01-02_150405")
	csvPath = filepath.Join(w.dir, fmt.Sprintf("evaluations_%s.csv", stamp))
	jsonlPath = filepath.Join(w.dir, fmt.Sprintf("evaluations_%s.jsonl", stamp))

	names := metricColumns(results)

	if err := w.writeCSV(csvPath, recs, results, names); err != nil {
		return "", "", err
	}
	if err := w.writeJSONL(jsonlPath, recs, results); err != nil {
		return "", "", err
	}
	return csvPath, jsonlPath, nil
}

// metricColumns returns the built-in metric order, restricted to
// metrics that appear somewhere in the batch, then any registered
// extras in name order of first appearance.
func metricColumns(results []evaluate.Evaluation) []metric.Name {
	present := map[metric.Name]struct{}{}
	var extras []metric.Name
	for _, ev := range results {
		for name := range ev {
			if _, seen := present[name]; seen {
				continue
			}
			present[name] = struct{}{}
			if !isBuiltin(name) {
				extras = append(extras, name)
			}
		}
	}

	var out []metric.Name
	for _, name := range metric.BuiltinNames() {
		if _, ok := present[name]; ok {
			out = append(out, name)
		}
	}
	return append(out, extras...)
}

func isBuiltin(name metric.Name) bool {
	for _, b := range metric.BuiltinNames() {
		if name == b {
			return true
		}
	}
	return false
}

func (w *Writer) writeCSV(path string, recs []record.Record, results []evaluate.Evaluation, names []metric.Name) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv report: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	header := []string{"index", "query", "answer"}
	for _, name := range names {
		header = append(header, string(name))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for i, rec := range recs {
		row := []string{strconv.Itoa(i), rec.Query(), rec.Answer()}
		for _, name := range names {
			if res, ok := results[i][name]; ok {
				row = append(row, strconv.FormatFloat(res.Score(), 'f', 4, 64))
			} else {
				row = append(row, "")
			}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv report: %w", err)
	}
	return nil
}

func (w *Writer) writeJSONL(path string, recs []record.Record, results []evaluate.Evaluation) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create jsonl report: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for i, rec := range recs {
		scores := make(map[string]jsonlScore, len(results[i]))
		for name, res := range results[i] {
			scores[string(name)] = jsonlScore{Score: res.Score(), Details: res.Details()}
		}

		gt, _ := rec.GroundTruth()
		entry := jsonlEntry{
			Index:       i,
			Query:       rec.Query(),
			Context:     rec.Context(),
			Answer:      rec.Answer(),
			GroundTruth: gt,
			Scores:      scores,
		}
		if err := enc.Encode(entry); err != nil {
			return fmt.Errorf("write jsonl row %d: %w", i, err)
		}
	}
	return nil
}
