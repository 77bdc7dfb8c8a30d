package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/adavadkardhruv13/Polaris-backend/application/service"
	"github.com/adavadkardhruv13/Polaris-backend/domain/investor"
	"github.com/adavadkardhruv13/Polaris-backend/domain/pitch"
	"github.com/adavadkardhruv13/Polaris-backend/infrastructure/api/middleware"
	"github.com/adavadkardhruv13/Polaris-backend/infrastructure/api/v1/dto"
	"github.com/adavadkardhruv13/Polaris-backend/internal/log"
)

// maxBulkRecords bounds a single bulk insert request.
const maxBulkRecords = 1000

// InvestorsRouter handles the investor catalog endpoints.
type InvestorsRouter struct {
	investors *service.Investors
	logger    *log.Logger
}

// NewInvestorsRouter creates an InvestorsRouter.
func NewInvestorsRouter(investors *service.Investors, logger *log.Logger) *InvestorsRouter {
	return &InvestorsRouter{
		investors: investors,
		logger:    logger,
	}
}

// Routes returns the chi router for the catalog endpoints.
func (i *InvestorsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", i.List)
	router.Post("/", i.Create)
	router.Post("/bulk", i.BulkCreate)
	router.Get("/{id}", i.Get)
	router.Patch("/{id}", i.Update)
	router.Delete("/{id}", i.Delete)

	return router
}

// List handles GET /investors.
func (i *InvestorsRouter) List(w http.ResponseWriter, req *http.Request) {
	page, err := i.investors.List(req.Context(), ParseListRequest(req))
	if err != nil {
		middleware.WriteError(w, req, err, i.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.NewInvestorListResponse(page))
}

// Create handles POST /investors.
func (i *InvestorsRouter) Create(w http.ResponseWriter, req *http.Request) {
	var body dto.InvestorRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, fmt.Errorf("%w: invalid request body", pitch.ErrValidation), i.logger)
		return
	}

	id, err := i.investors.Create(req.Context(), toRecord(body))
	if err != nil {
		middleware.WriteError(w, req, invalidRecordToValidation(err), i.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, dto.CreatedResponse{
		ID:      id,
		Message: "Investor created successfully",
	})
}

// BulkCreate handles POST /investors/bulk.
func (i *InvestorsRouter) BulkCreate(w http.ResponseWriter, req *http.Request) {
	var body []dto.InvestorRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, fmt.Errorf("%w: invalid request body", pitch.ErrValidation), i.logger)
		return
	}
	if len(body) == 0 {
		middleware.WriteError(w, req, fmt.Errorf("%w: no records provided", pitch.ErrValidation), i.logger)
		return
	}
	if len(body) > maxBulkRecords {
		middleware.WriteError(w, req, fmt.Errorf("%w: too many records, limit is %d", pitch.ErrValidation, maxBulkRecords), i.logger)
		return
	}

	recs := make([]service.InvestorRecord, 0, len(body))
	for _, item := range body {
		recs = append(recs, toRecord(item))
	}

	count, err := i.investors.BulkCreate(req.Context(), recs)
	if err != nil {
		middleware.WriteError(w, req, err, i.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, dto.BulkCreatedResponse{
		InsertedCount: count,
		Message:       fmt.Sprintf("%d investors created successfully", count),
	})
}

// Get handles GET /investors/{id}.
func (i *InvestorsRouter) Get(w http.ResponseWriter, req *http.Request) {
	inv, err := i.investors.GetByID(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		middleware.WriteError(w, req, err, i.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.NewInvestorResponse(inv))
}

// Update handles PATCH /investors/{id}. Fields absent from the body are left
// unchanged; an update that matches no investor is a 404.
func (i *InvestorsRouter) Update(w http.ResponseWriter, req *http.Request) {
	var body dto.InvestorUpdateRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, fmt.Errorf("%w: invalid request body", pitch.ErrValidation), i.logger)
		return
	}

	update := body.ToUpdate()
	if update.IsEmpty() {
		middleware.WriteError(w, req, fmt.Errorf("%w: no fields to update", pitch.ErrValidation), i.logger)
		return
	}

	changed, err := i.investors.Update(req.Context(), chi.URLParam(req, "id"), update)
	if err != nil {
		middleware.WriteError(w, req, err, i.logger)
		return
	}
	if !changed {
		middleware.WriteError(w, req, investor.ErrNotFound, i.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.UpdatedResponse{
		Updated: true,
		Message: "Investor updated successfully",
	})
}

// Delete handles DELETE /investors/{id}.
func (i *InvestorsRouter) Delete(w http.ResponseWriter, req *http.Request) {
	removed, err := i.investors.Delete(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		middleware.WriteError(w, req, err, i.logger)
		return
	}
	if !removed {
		middleware.WriteError(w, req, investor.ErrNotFound, i.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.DeletedResponse{
		Deleted: true,
		Message: "Investor deleted successfully",
	})
}

func toRecord(body dto.InvestorRequest) service.InvestorRecord {
	return service.InvestorRecord{
		Name:              body.Name,
		Type:              body.Type,
		GlobalHQ:          body.GlobalHQ,
		StageOfInvestment: body.StageOfInvestment,
		Website:           body.Website,
	}
}

func invalidRecordToValidation(err error) error {
	if errors.Is(err, investor.ErrInvalidRecord) {
		return fmt.Errorf("%w: %s", pitch.ErrValidation, err)
	}
	return err
}
