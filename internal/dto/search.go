package dto

import "github.com/octobees/employee-search/api/internal/people"

// SearchEmployeesRequest is the payload of POST /api/search-employees.
type SearchEmployeesRequest struct {
	APIKey       string              `json:"apiKey,omitempty"`
	SearchParams people.SearchParams `json:"searchParams"`
}

// ErrorResponse is the body of every failed search. Details is always present, empty
// when there is nothing to add.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// HealthResponse is the static liveness payload.
type HealthResponse struct {
	Message   string `json:"message"`
	Status    string `json:"status"`
	Provider  string `json:"provider"`
	Timestamp string `json:"timestamp"`
}
