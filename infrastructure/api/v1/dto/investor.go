package dto

import (
	"time"

	"github.com/adavadkardhruv13/Polaris-backend/domain/investor"
)

// InvestorRequest is the body of POST /investors and the element type of
// POST /investors/bulk. The field names mirror the catalog's import format.
type InvestorRequest struct {
	Name              string `json:"Investor_name"`
	Type              string `json:"Investor_type,omitempty"`
	GlobalHQ          string `json:"Global_HQ,omitempty"`
	StageOfInvestment string `json:"Stage_of_investment,omitempty"`
	Website           string `json:"Website,omitempty"`
}

// InvestorUpdateRequest is the body of PATCH /investors/{id}. Absent fields
// are left unchanged.
type InvestorUpdateRequest struct {
	Name              *string `json:"Investor_name"`
	Type              *string `json:"Investor_type"`
	GlobalHQ          *string `json:"Global_HQ"`
	StageOfInvestment *string `json:"Stage_of_investment"`
	Website           *string `json:"Website"`
}

// ToUpdate converts the request into a domain update.
func (r InvestorUpdateRequest) ToUpdate() investor.Update {
	return investor.Update{
		Name:              r.Name,
		Type:              r.Type,
		GlobalHQ:          r.GlobalHQ,
		StageOfInvestment: r.StageOfInvestment,
		Website:           r.Website,
	}
}

// InvestorResponse is a single catalog entry.
type InvestorResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"Investor_name"`
	Type              string    `json:"Investor_type,omitempty"`
	GlobalHQ          string    `json:"Global_HQ,omitempty"`
	StageOfInvestment string    `json:"Stage_of_investment,omitempty"`
	Website           string    `json:"Website,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NewInvestorResponse converts a domain investor.
func NewInvestorResponse(inv investor.Investor) InvestorResponse {
	return InvestorResponse{
		ID:                inv.ID(),
		Name:              inv.Name(),
		Type:              inv.Type(),
		GlobalHQ:          inv.GlobalHQ(),
		StageOfInvestment: inv.StageOfInvestment(),
		Website:           inv.Website(),
		CreatedAt:         inv.CreatedAt(),
		UpdatedAt:         inv.UpdatedAt(),
	}
}

// InvestorListResponse is one page of catalog results.
type InvestorListResponse struct {
	Investors  []InvestorResponse `json:"investors"`
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
	HasNext    bool               `json:"has_next"`
	HasPrev    bool               `json:"has_prev"`
}

// NewInvestorListResponse converts a domain result page.
func NewInvestorListResponse(page investor.Page) InvestorListResponse {
	items := make([]InvestorResponse, 0, len(page.Investors))
	for _, inv := range page.Investors {
		items = append(items, NewInvestorResponse(inv))
	}
	return InvestorListResponse{
		Investors:  items,
		TotalCount: page.TotalCount,
		Page:       page.PageNumber,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
		HasNext:    page.HasNext,
		HasPrev:    page.HasPrev,
	}
}

// CreatedResponse is returned by POST /investors.
type CreatedResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// BulkCreatedResponse is returned by POST /investors/bulk.
type BulkCreatedResponse struct {
	InsertedCount int    `json:"inserted_count"`
	Message       string `json:"message"`
}

// UpdatedResponse is returned by PATCH /investors/{id}.
type UpdatedResponse struct {
	Updated bool   `json:"updated"`
	Message string `json:"message"`
}

// DeletedResponse is returned by DELETE /investors/{id}.
type DeletedResponse struct {
	Deleted bool   `json:"deleted"`
	Message string `json:"message"`
}
