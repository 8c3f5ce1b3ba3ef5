package loader

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kailas-cloud/ragscore/internal/domain/record"
)

// jsonEntry is one dataset row. Question and title serve as query
// aliases so bibliography exports load without renaming keys.
type jsonEntry struct {
	Query       string `json:"query"`
	Question    string `json:"question"`
	Title       string `json:"title"`
	Context     string `json:"context"`
	Abstract    string `json:"abstract"`
	Answer      string `json:"answer"`
	GroundTruth string `json:"ground_truth"`
}

func (e jsonEntry) toRecord() record.Record {
	query := e.Query
	if query == "" {
		query = e.Question
	}
	if query == "" {
		query = e.Title
	}
	context := e.Context
	if context == "" {
		context = e.Abstract
	}
	gt := e.GroundTruth
	if gt == "" {
		gt = e.Abstract
	}
	return record.New(query, context, e.Answer).WithGroundTruth(gt)
}

// loadJSON reads either an array of entries or a single entry object.
func loadJSON(path string) ([]record.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}

	var entries []jsonEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		var single jsonEntry
		if singleErr := json.Unmarshal(data, &single); singleErr != nil {
			return nil, fmt.Errorf("parse json dataset: %w", err)
		}
		entries = []jsonEntry{single}
	}

	recs := make([]record.Record, len(entries))
	for i, e := range entries {
		recs[i] = e.toRecord()
	}
	return recs, nil
}
