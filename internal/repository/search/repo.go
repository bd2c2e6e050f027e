package search

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/chardex/internal/db"
	"github.com/kailas-cloud/chardex/internal/domain"
	"github.com/kailas-cloud/chardex/internal/domain/search/facet"
	"github.com/kailas-cloud/chardex/internal/domain/search/query"
	"github.com/kailas-cloud/chardex/internal/domain/search/result"
	"github.com/kailas-cloud/chardex/internal/metrics"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	SearchCount(ctx context.Context, q *db.Query) (int, error)
	Search(ctx context.Context, q *db.Query) (*db.SearchResult, error)
	SuggestAdd(ctx context.Context, key string, items []db.Suggestion) error
	SuggestGet(ctx context.Context, key, prefix string, limit int) ([]string, error)
}

// returnFields keeps the page payload minimal; ids come from keys.
var returnFields = []string{query.NameField}

// Repo implements the search backend over the character index.
type Repo struct {
	store store
	keys  domain.Keyspace
}

// New creates a search repository.
func New(s store, keys domain.Keyspace) *Repo {
	return &Repo{store: s, keys: keys}
}

// Count returns the number of characters matching the compiled query.
func (r *Repo) Count(ctx context.Context, q query.Compiled) (_ int, err error) {
	start := time.Now()
	defer func() { metrics.ObserveBackend(metrics.OpCount, start, err) }()

	n, err := r.store.SearchCount(ctx, &db.Query{
		IndexName: r.keys.IndexName(),
		Root:      q.Root,
	})
	if err != nil {
		return 0, fmt.Errorf("count: %w", db.DomainError(err))
	}
	return n, nil
}

// Search returns one page of hits in backend order plus the per-field
// aggregations of the full (unpaged) query.
func (r *Repo) Search(
	ctx context.Context, q query.Compiled, from, size int,
) (_ []result.Hit, _ facet.Aggregations, err error) {
	start := time.Now()
	defer func() { metrics.ObserveBackend(metrics.OpSearch, start, err) }()

	sr, err := r.store.Search(ctx, &db.Query{
		IndexName:    r.keys.IndexName(),
		Root:         q.Root,
		Aggregations: q.Aggregations,
		Sort:         q.Sort,
		Offset:       from,
		Limit:        size,
		ReturnFields: returnFields,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("search: %w", db.DomainError(err))
	}
	if sr == nil {
		return []result.Hit{}, facet.Aggregations{}, nil
	}

	hits := make([]result.Hit, len(sr.Entries))
	for i, e := range sr.Entries {
		hits[i] = result.NewHit(r.keys.CharacterID(e.Key), e.Score)
	}

	aggs := sr.Aggregations
	if aggs == nil {
		aggs = facet.Aggregations{}
	}
	return hits, aggs, nil
}

// Suggest returns up to limit name completions for prefix.
func (r *Repo) Suggest(ctx context.Context, prefix string, limit int) (_ []string, err error) {
	start := time.Now()
	defer func() { metrics.ObserveBackend(metrics.OpSuggest, start, err) }()

	names, err := r.store.SuggestGet(ctx, r.keys.SuggestKey(), prefix, limit)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", db.DomainError(err))
	}
	return names, nil
}

// AddSuggestions adds names to the autocomplete dictionary.
func (r *Repo) AddSuggestions(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	items := make([]db.Suggestion, len(names))
	for i, n := range names {
		items[i] = db.Suggestion{Text: n, Score: 1}
	}
	if err := r.store.SuggestAdd(ctx, r.keys.SuggestKey(), items); err != nil {
		return fmt.Errorf("add %d suggestions: %w", len(names), db.DomainError(err))
	}
	return nil
}
