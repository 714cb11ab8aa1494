package models

import (
	"time"
)

// APIResponse represents a standard API response structure
type APIResponse struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message,omitempty"`
	Data      any       `json:"data,omitempty"`
	Error     *APIError `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// APIError represents an API error response
type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// FieldValidationError represents a field validation error
type FieldValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func NewSuccessResponse(data any, message string) *APIResponse {
	return &APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

func NewErrorResponse(code, message string, details map[string]string) *APIResponse {
	return &APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
		Timestamp: time.Now(),
	}
}

// HealthResponse is returned by the health check endpoint
type HealthResponse struct {
	Status          string    `json:"status"`
	Version         string    `json:"version"`
	Database        string    `json:"database"`
	CatalogFetched  time.Time `json:"catalogFetchedAt,omitempty"`
	CatalogStale    bool      `json:"catalogStale"`
	CatalogQuests   int       `json:"catalogQuests"`
	CatalogStations int       `json:"catalogStations"`
}
