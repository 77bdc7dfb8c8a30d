package investor

import "math"

// Pagination limits.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Sort field names accepted by the list operation.
const (
	SortByName  = "Investor_name"
	SortByType  = "Investor_type"
	SortByHQ    = "Global_HQ"
	SortByStage = "Stage_of_investment"
)

// SortOrder values.
const (
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// Filters narrows a catalog listing. Search is OR-matched case-insensitively
// across name, type, HQ and stage; the remaining fields are AND-matched.
type Filters struct {
	Search          string
	Type            string
	Location        string
	InvestmentStage string
}

// IsZero reports whether no filter is set.
func (f Filters) IsZero() bool {
	return f == Filters{}
}

// ListRequest describes a catalog listing: filters, sorting and pagination.
type ListRequest struct {
	Page      int
	PageSize  int
	Filters   Filters
	SortBy    string
	SortOrder string
}

// Normalize clamps pagination values and falls back to default sorting for
// unknown fields or orders.
func (r ListRequest) Normalize() ListRequest {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize < 1 {
		r.PageSize = DefaultPageSize
	}
	if r.PageSize > MaxPageSize {
		r.PageSize = MaxPageSize
	}

	switch r.SortBy {
	case SortByName, SortByType, SortByHQ, SortByStage:
	default:
		r.SortBy = SortByName
	}

	if r.SortOrder != SortOrderDesc {
		r.SortOrder = SortOrderAsc
	}
	return r
}

// Page is one page of catalog results with pagination metadata.
type Page struct {
	Investors  []Investor
	TotalCount int64
	PageNumber int
	PageSize   int
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

// NewPage assembles a result page, deriving the pagination metadata from the
// total match count.
func NewPage(investors []Investor, totalCount int64, page, pageSize int) Page {
	totalPages := 1
	if pageSize > 0 {
		totalPages = int(math.Ceil(float64(totalCount) / float64(pageSize)))
	}

	return Page{
		Investors:  investors,
		TotalCount: totalCount,
		PageNumber: page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
