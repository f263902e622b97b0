package api

import "superservice-backend/internal/validation"

// ErrorResponse is a generic structure for returning errors via API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ValidationErrorResponse is returned when a request body fails validation.
type ValidationErrorResponse struct {
	Error  string             `json:"error"`
	Issues []validation.Issue `json:"issues"`
}

// EchoResponse is the success body of the echo endpoint.
type EchoResponse struct {
	OK   bool   `json:"ok"`
	Echo string `json:"echo"`
}
