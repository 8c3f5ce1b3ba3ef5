package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kailas-cloud/ragscore/internal/domain/record"
)

// Column names recognized in CSV headers, case-insensitive.
const (
	columnQuery       = "query"
	columnContext     = "context"
	columnAnswer      = "answer"
	columnGroundTruth = "ground_truth"
)

// loadCSV reads a header-first CSV file. Rows missing a ground truth
// cell produce records without one.
func loadCSV(path string) ([]record.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows tolerated; missing cells read as ""

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var recs []record.Record
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", len(recs)+2, err)
		}

		cell := func(name string) string {
			i, ok := columns[name]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}

		rec := record.New(cell(columnQuery), cell(columnContext), cell(columnAnswer))
		recs = append(recs, rec.WithGroundTruth(cell(columnGroundTruth)))
	}
	return recs, nil
}
