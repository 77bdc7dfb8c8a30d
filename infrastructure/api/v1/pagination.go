package v1

import (
	"net/http"
	"strconv"

	"github.com/adavadkardhruv13/Polaris-backend/domain/investor"
)

// ParseListRequest reads the catalog list query parameters. Out-of-range
// values are normalized by the domain, not rejected.
func ParseListRequest(req *http.Request) investor.ListRequest {
	q := req.URL.Query()

	return investor.ListRequest{
		Filters: investor.Filters{
			Search:          q.Get("search"),
			Type:            q.Get("type"),
			Location:        q.Get("location"),
			InvestmentStage: q.Get("investment_stage"),
		},
		Page:      parseInt(q.Get("page"), 1),
		PageSize:  parseInt(q.Get("page_size"), investor.DefaultPageSize),
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
	}
}

func parseInt(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
