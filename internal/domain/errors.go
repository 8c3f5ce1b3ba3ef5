package domain

import "errors"

var (
	// ErrUnknownMetric signals an unrecognized metric name at construction.
	ErrUnknownMetric = errors.New("unknown metric")
	// ErrLengthMismatch signals unequal column lengths in a batch call.
	ErrLengthMismatch = errors.New("input length mismatch")
	// ErrMissingGroundTruth signals a metric invoked without its required ground truth.
	ErrMissingGroundTruth = errors.New("ground truth required")
	// ErrUnsupportedFormat signals an unrecognized dataset file format.
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
)
