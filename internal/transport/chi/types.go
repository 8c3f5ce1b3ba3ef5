package chi

// Wire types for the evaluation HTTP API.

type evaluateRequest struct {
	Query       string   `json:"query"`
	Context     string   `json:"context"`
	Answer      string   `json:"answer"`
	GroundTruth *string  `json:"ground_truth,omitempty"`
	Metrics     []string `json:"metrics,omitempty"`
}

type batchEvaluateRequest struct {
	Queries      []string  `json:"queries"`
	Contexts     []string  `json:"contexts"`
	Answers      []string  `json:"answers"`
	GroundTruths []*string `json:"ground_truths,omitempty"`
	Metrics      []string  `json:"metrics,omitempty"`
}

type metricResult struct {
	Score   float64        `json:"score"`
	Details map[string]any `json:"details,omitempty"`
}

type evaluateResponse struct {
	Scores map[string]metricResult `json:"scores"`
}

type batchEvaluateResponse struct {
	Results  []map[string]metricResult `json:"results"`
	Averages map[string]float64        `json:"averages"`
	Count    int                       `json:"count"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type healthResponse struct {
	Status string `json:"status"`
}

const (
	codeBadRequest     = "bad_request"
	codeUnknownMetric  = "unknown_metric"
	codeLengthMismatch = "length_mismatch"
	codeInternalError  = "internal_error"
)
