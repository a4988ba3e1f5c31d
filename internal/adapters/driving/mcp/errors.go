package mcp

import "errors"

// Port validation errors.
var (
	ErrMissingSearchService  = errors.New("mcp: search service is required")
	ErrMissingCalorieService = errors.New("mcp: calorie service is required")
)
