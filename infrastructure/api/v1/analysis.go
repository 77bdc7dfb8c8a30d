// Package v1 provides the public API routes.
package v1

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/adavadkardhruv13/Polaris-backend/application/service"
	"github.com/adavadkardhruv13/Polaris-backend/domain/pitch"
	"github.com/adavadkardhruv13/Polaris-backend/infrastructure/api/middleware"
	"github.com/adavadkardhruv13/Polaris-backend/infrastructure/api/v1/dto"
	"github.com/adavadkardhruv13/Polaris-backend/internal/log"
)

// multipartMemoryLimit caps how much of an upload is buffered in memory
// before spilling to disk.
const multipartMemoryLimit = 4 << 20

// AnalysisRouter handles the pitch analysis endpoints.
type AnalysisRouter struct {
	analyzer    *service.Analyzer
	logger      *log.Logger
	maxBodySize int64
}

// NewAnalysisRouter creates an AnalysisRouter. maxBodySize bounds the
// request body for both endpoints.
func NewAnalysisRouter(analyzer *service.Analyzer, logger *log.Logger, maxBodySize int64) *AnalysisRouter {
	return &AnalysisRouter{
		analyzer:    analyzer,
		logger:      logger,
		maxBodySize: maxBodySize,
	}
}

// Routes returns the chi router for the analysis endpoints.
func (a *AnalysisRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/analyze_pitch", a.AnalyzePitch)
	router.Post("/analyze_pdf", a.AnalyzePDF)

	return router
}

// AnalyzePitch handles POST /analyze_pitch.
func (a *AnalysisRouter) AnalyzePitch(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	var body dto.PitchRequest
	reader := http.MaxBytesReader(w, req.Body, a.maxBodySize)
	if err := json.NewDecoder(reader).Decode(&body); err != nil {
		middleware.WriteError(w, req, fmt.Errorf("%w: invalid request body", pitch.ErrValidation), a.logger)
		return
	}

	fb, err := a.analyzer.AnalyzeText(ctx, body.Pitch)
	if err != nil {
		middleware.WriteError(w, req, err, a.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.NewAnalysisResponse(fb))
}

// AnalyzePDF handles POST /analyze_pdf. The upload is a multipart form with
// a single "file" part.
func (a *AnalysisRouter) AnalyzePDF(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	req.Body = http.MaxBytesReader(w, req.Body, a.maxBodySize)
	if err := req.ParseMultipartForm(multipartMemoryLimit); err != nil {
		middleware.WriteError(w, req, fmt.Errorf("%w: invalid multipart upload", pitch.ErrValidation), a.logger)
		return
	}

	file, header, err := req.FormFile("file")
	if err != nil {
		middleware.WriteError(w, req, fmt.Errorf("%w: missing file field", pitch.ErrValidation), a.logger)
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		middleware.WriteError(w, req, fmt.Errorf("%w: reading upload", pitch.ErrValidation), a.logger)
		return
	}

	fb, err := a.analyzer.AnalyzePDF(ctx, data, header.Filename)
	if err != nil {
		middleware.WriteError(w, req, err, a.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.NewAnalysisResponse(fb))
}
