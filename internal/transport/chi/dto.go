package chi

import (
	searchuc "github.com/kailas-cloud/chardex/internal/usecase/search"
)

// ErrorResponseCode is a machine-readable error code.
type ErrorResponseCode string

// Error codes returned in ErrorResponse.
const (
	ErrorResponseCodeBadRequest         ErrorResponseCode = "bad_request"
	ErrorResponseCodeUnauthorized       ErrorResponseCode = "unauthorized"
	ErrorResponseCodeNotFound           ErrorResponseCode = "not_found"
	ErrorResponseCodeBackendUnavailable ErrorResponseCode = "backend_unavailable"
	ErrorResponseCodeBackendError       ErrorResponseCode = "backend_error"
	ErrorResponseCodeInternalError      ErrorResponseCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// FilterValue is a selectable filter value with its label.
type FilterValue struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// FilterGroup is one filter field with its values.
type FilterGroup struct {
	Key         string        `json:"key"`
	DisplayName string        `json:"displayName"`
	Values      []FilterValue `json:"values"`
}

// ListingItem is one result row.
type ListingItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ListingResponse is the body of GET /characters.
// AvailableFilters is null when nothing matched.
type ListingResponse struct {
	AppliedFilters   []FilterGroup `json:"appliedFilters"`
	PageURLPrefix    string        `json:"pageUrlPrefix"`
	IsSearch         bool          `json:"isSearch"`
	SearchQuery      *string       `json:"searchQuery,omitempty"`
	TotalCount       int           `json:"totalCount"`
	TotalPages       int           `json:"totalPages"`
	CurrentPage      int           `json:"currentPage"`
	StartIndex       int           `json:"startIndex"`
	EndIndex         int           `json:"endIndex"`
	AvailableFilters []FilterGroup `json:"availableFilters"`
	Results          []ListingItem `json:"results"`
}

// SuggestResponse is the body of GET /suggest.
type SuggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func listingToResponse(l *searchuc.Listing) ListingResponse {
	resp := ListingResponse{
		AppliedFilters: make([]FilterGroup, len(l.AppliedFilters)),
		PageURLPrefix:  l.PageURLPrefix,
		IsSearch:       l.IsSearch,
		TotalCount:     l.TotalCount,
		TotalPages:     l.TotalPages,
		CurrentPage:    l.CurrentPage,
		StartIndex:     l.StartIndex,
		EndIndex:       l.EndIndex,
		Results:        make([]ListingItem, len(l.Results)),
	}
	if l.IsSearch {
		q := l.SearchQuery
		resp.SearchQuery = &q
	}

	for i, f := range l.AppliedFilters {
		values := make([]FilterValue, len(f.Values))
		for j, v := range f.Values {
			values[j] = FilterValue{Key: v.Key, Label: v.Label}
		}
		resp.AppliedFilters[i] = FilterGroup{Key: f.Key, DisplayName: f.DisplayName, Values: values}
	}

	if l.AvailableFilters != nil {
		resp.AvailableFilters = make([]FilterGroup, len(l.AvailableFilters))
		for i, f := range l.AvailableFilters {
			values := make([]FilterValue, len(f.Values))
			for j, v := range f.Values {
				values[j] = FilterValue{Key: v.Key, Label: v.Label}
			}
			resp.AvailableFilters[i] = FilterGroup{Key: f.Key, DisplayName: f.DisplayName, Values: values}
		}
	}

	for i, it := range l.Results {
		resp.Results[i] = ListingItem{ID: it.ID, Name: it.Name}
	}
	return resp
}
