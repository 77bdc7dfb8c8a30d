package middleware

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/adavadkardhruv13/Polaris-backend/domain/investor"
	"github.com/adavadkardhruv13/Polaris-backend/domain/pitch"
	"github.com/adavadkardhruv13/Polaris-backend/internal/log"
)

// ErrorResponse is the error body returned by every endpoint.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// genericAnalysisMessage hides provider and model detail from clients.
const genericAnalysisMessage = "Analysis failed. Please try again later."

// WriteError maps a service error onto an HTTP status and writes the error
// body. Validation errors are 400, extraction errors 422, missing investors
// 404. Analysis failures and anything unrecognized become a generic 500; the
// real cause stays in the logs.
func WriteError(w http.ResponseWriter, r *http.Request, err error, logger *log.Logger) {
	status := http.StatusInternalServerError
	detail := "Internal server error"

	switch {
	case errors.Is(err, pitch.ErrValidation):
		status = http.StatusBadRequest
		detail = err.Error()
	case errors.Is(err, pitch.ErrPDFProcessing):
		status = http.StatusUnprocessableEntity
		detail = err.Error()
	case errors.Is(err, pitch.ErrAnalysis):
		status = http.StatusInternalServerError
		detail = genericAnalysisMessage
	case errors.Is(err, investor.ErrNotFound):
		status = http.StatusNotFound
		detail = "Investor not found"
	}

	logger.ErrorContext(r.Context(), "request error",
		"status", status,
		"error", err,
		"path", r.URL.Path,
	)

	WriteJSON(w, status, ErrorResponse{Detail: detail})
}

// WriteJSON writes a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
