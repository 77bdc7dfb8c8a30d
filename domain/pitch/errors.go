// Package pitch holds the pitch analysis domain: feedback types, content
// statistics, input validation and the feedback output schema.
package pitch

import "errors"

// Error taxonomy for the analysis surface. Handlers map these to HTTP
// statuses: validation 400, PDF processing 422, analysis 500.
var (
	// ErrValidation indicates the caller's input was rejected.
	ErrValidation = errors.New("validation error")

	// ErrPDFProcessing indicates text could not be extracted from an
	// uploaded document.
	ErrPDFProcessing = errors.New("pdf processing error")

	// ErrAnalysis indicates the AI analysis itself failed. The wrapped
	// detail is for logs only and must not reach API clients.
	ErrAnalysis = errors.New("analysis error")
)
