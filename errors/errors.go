package errors

import "errors"

// Sentinel errors for common error conditions
var (
	// ErrInvalidInput indicates that input validation failed
	ErrInvalidInput = errors.New("invalid input")

	// ErrSchemaValidation indicates that the LLM output did not conform to
	// the agricultural analysis schema and cannot be safely presented
	ErrSchemaValidation = errors.New("analysis schema validation failed")

	// ErrIrrelevantInput indicates that every uploaded document was
	// classified as non-agricultural
	ErrIrrelevantInput = errors.New("no agriculturally relevant input")

	// ErrProviderUnavailable indicates that no LLM provider is configured
	ErrProviderUnavailable = errors.New("llm provider unavailable")
)
