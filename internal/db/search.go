package db

import (
	"github.com/kailas-cloud/chardex/internal/domain/search/facet"
	"github.com/kailas-cloud/chardex/internal/domain/search/query"
)

// Query is the input for FT.SEARCH / FT.AGGREGATE over one index.
type Query struct {
	IndexName    string
	Root         query.Node
	Aggregations []query.Aggregation
	Sort         []query.SortKey
	Offset       int
	Limit        int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
// Total is the match count for FT.SEARCH pages and the row count for
// score-ordered pages.
type SearchResult struct {
	Total        int
	Entries      []SearchEntry
	Aggregations facet.Aggregations
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}

// Suggestion is an autocomplete entry with its weight.
type Suggestion struct {
	Text  string
	Score float64
}
