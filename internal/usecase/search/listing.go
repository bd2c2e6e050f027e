package search

import (
	"net/url"
	"strings"

	"github.com/kailas-cloud/chardex/internal/domain/catalog"
	"github.com/kailas-cloud/chardex/internal/domain/search/facet"
	"github.com/kailas-cloud/chardex/internal/domain/search/filter"
	"github.com/kailas-cloud/chardex/internal/domain/search/result"
)

// TextParam is the query-string parameter carrying the search text.
const TextParam = "q"

// PageParam is the query-string parameter carrying the page number.
const PageParam = "page"

// AppliedFilter echoes one active filter with display labels.
type AppliedFilter struct {
	Key         string
	DisplayName string
	Values      []catalog.Value
}

// Listing is the complete answer to a browse or search request.
// AvailableFilters is nil when nothing matched.
type Listing struct {
	AppliedFilters   []AppliedFilter
	PageURLPrefix    string
	IsSearch         bool
	SearchQuery      string
	TotalCount       int
	TotalPages       int
	CurrentPage      int
	StartIndex       int
	EndIndex         int
	AvailableFilters facet.Available
	Results          []result.Item
}

func appliedFilters(cat *catalog.Catalog, applied filter.Applied) []AppliedFilter {
	selections := applied.Selections()
	out := make([]AppliedFilter, 0, len(selections))
	for _, s := range selections {
		def, ok := cat.Definition(s.Key())
		if !ok {
			continue
		}
		keys := s.Values()
		values := make([]catalog.Value, len(keys))
		for i, k := range keys {
			label, ok := def.Label(k)
			if !ok {
				label = k
			}
			values[i] = catalog.Value{Key: k, Label: label}
		}
		out = append(out, AppliedFilter{Key: def.Key(), DisplayName: def.DisplayName(), Values: values})
	}
	return out
}

// pageURLPrefix reproduces the current text and filters as a query string
// ending in "page=", ready for a page number to be appended.
func pageURLPrefix(text string, applied filter.Applied) string {
	var b strings.Builder
	b.WriteByte('?')
	if text != "" {
		b.WriteString(TextParam + "=" + url.QueryEscape(text) + "&")
	}
	for _, s := range applied.Selections() {
		values := s.Values()
		for i, v := range values {
			values[i] = url.QueryEscape(v)
		}
		b.WriteString(url.QueryEscape(s.Key()) + "=" + strings.Join(values, filter.ValueSeparator) + "&")
	}
	b.WriteString(PageParam + "=")
	return b.String()
}
