package search

import (
	"context"

	domchar "github.com/kailas-cloud/chardex/internal/domain/character"
	"github.com/kailas-cloud/chardex/internal/domain/search/facet"
	"github.com/kailas-cloud/chardex/internal/domain/search/query"
	"github.com/kailas-cloud/chardex/internal/domain/search/result"
)

// Backend defines the search backend contract.
type Backend interface {
	// Count returns the number of matches, without hits or aggregations.
	Count(ctx context.Context, q query.Compiled) (int, error)
	// Search returns the hits of one page, in ranking order, plus the
	// aggregations of the whole query.
	Search(ctx context.Context, q query.Compiled, from, size int) ([]result.Hit, facet.Aggregations, error)
}

// RecordStore resolves hit identifiers to display records.
// The returned order is not significant.
type RecordStore interface {
	GetByIDs(ctx context.Context, ids []string) ([]domchar.Character, error)
}
