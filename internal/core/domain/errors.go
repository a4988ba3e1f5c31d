package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrValidation indicates client input is missing or malformed.
	// Terminal for the request; never retried.
	ErrValidation = errors.New("validation failed")

	// ErrUnavailable indicates a required resource, such as the food
	// dataset file, is absent.
	ErrUnavailable = errors.New("resource unavailable")

	// ErrParse indicates persisted data is corrupt. Only whole-document
	// datasets surface this; streamed datasets skip bad records instead.
	ErrParse = errors.New("parse failed")

	// ErrUpstream indicates the text-generation service failed.
	// Callers replace the output with ForagingFallback instead of failing.
	ErrUpstream = errors.New("upstream generation failed")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid configuration input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown dataset format or provider.
	ErrUnsupportedType = errors.New("unsupported type")
)
