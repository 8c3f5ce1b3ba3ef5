// Package record holds the inputs for one evaluation instance.
package record

// Record carries the four input strings of a single RAG interaction.
// Ground truth is optional; metrics that require it are excluded from
// the result when it is absent.
type Record struct {
	query          string
	context        string
	answer         string
	groundTruth    string
	hasGroundTruth bool
}

// New creates a record without a ground truth.
func New(query, context, answer string) Record {
	return Record{query: query, context: context, answer: answer}
}

// WithGroundTruth returns a copy of the record carrying the ground
// truth. An empty string is treated as absent.
func (r Record) WithGroundTruth(gt string) Record {
	if gt == "" {
		return r
	}
	r.groundTruth = gt
	r.hasGroundTruth = true
	return r
}

// Query returns the user's question.
func (r Record) Query() string { return r.query }

// Context returns the retrieved context.
func (r Record) Context() string { return r.context }

// Answer returns the generated answer.
func (r Record) Answer() string { return r.answer }

// GroundTruth returns the reference answer and whether one was provided.
func (r Record) GroundTruth() (string, bool) {
	return r.groundTruth, r.hasGroundTruth
}
