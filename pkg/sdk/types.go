package sdk

// EvaluateRequest scores one query/context/answer triple. GroundTruth
// is optional; Metrics selects a subset (empty = server default).
type EvaluateRequest struct {
	Query       string   `json:"query"`
	Context     string   `json:"context"`
	Answer      string   `json:"answer"`
	GroundTruth *string  `json:"ground_truth,omitempty"`
	Metrics     []string `json:"metrics,omitempty"`
}

// BatchRequest scores parallel columns of inputs. GroundTruths may be
// nil; a nil cell marks the ground truth absent for that row.
type BatchRequest struct {
	Queries      []string  `json:"queries"`
	Contexts     []string  `json:"contexts"`
	Answers      []string  `json:"answers"`
	GroundTruths []*string `json:"ground_truths,omitempty"`
	Metrics      []string  `json:"metrics,omitempty"`
}

// MetricResult is one metric's score with its breakdown.
type MetricResult struct {
	Score   float64        `json:"score"`
	Details map[string]any `json:"details,omitempty"`
}

// Scores maps metric names to results for a single record.
type Scores map[string]MetricResult

// BatchResult holds per-record scores and batch averages.
type BatchResult struct {
	Results  []Scores           `json:"results"`
	Averages map[string]float64 `json:"averages"`
	Count    int                `json:"count"`
}

type evaluateResponse struct {
	Scores Scores `json:"scores"`
}

type healthResponse struct {
	Status string `json:"status"`
}
