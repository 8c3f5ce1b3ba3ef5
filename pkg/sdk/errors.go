package sdk

import "fmt"

// APIError is an error response from the ragscore API.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ragscore api: %s (%s, http %d)", e.Message, e.Code, e.StatusCode)
}
