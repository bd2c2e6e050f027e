package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/chardex/internal/domain/catalog"
	domchar "github.com/kailas-cloud/chardex/internal/domain/character"
	"github.com/kailas-cloud/chardex/internal/domain/search/facet"
	"github.com/kailas-cloud/chardex/internal/domain/search/page"
	"github.com/kailas-cloud/chardex/internal/domain/search/query"
	"github.com/kailas-cloud/chardex/internal/domain/search/request"
	"github.com/kailas-cloud/chardex/internal/domain/search/result"
	"github.com/kailas-cloud/chardex/internal/logger"
)

// Service runs the browse/search pipeline: count, paginate, fetch one page
// with aggregations, build available filters, resolve records.
// Backend calls are strictly sequential.
type Service struct {
	backend  Backend
	records  RecordStore
	cat      *catalog.Catalog
	pageSize int
}

// New creates a search service with the fixed page size.
func New(backend Backend, records RecordStore, cat *catalog.Catalog) *Service {
	return &Service{backend: backend, records: records, cat: cat, pageSize: page.Size}
}

// List validates raw request input and answers it. Over-long search text
// fails with domain.ErrInvalidInput before any backend call.
func (s *Service) List(
	ctx context.Context, pageNum int, text string, params map[string]string,
) (*Listing, error) {
	req, err := request.New(pageNum, text, params, s.cat)
	if err != nil {
		return nil, fmt.Errorf("parse request: %w", err)
	}
	return s.Browse(ctx, &req)
}

// Browse answers one validated listing request.
func (s *Service) Browse(ctx context.Context, req *request.Request) (*Listing, error) {
	log := logger.FromContext(ctx)

	compiled, err := query.Compile(req.Filters(), req.Text(), s.cat)
	if err != nil {
		return nil, fmt.Errorf("compile query: %w", err)
	}

	total, err := s.backend.Count(ctx, compiled)
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}

	desc := page.Compute(req.Page(), s.pageSize, total)
	log.Debug("listing window",
		zap.String("mode", string(req.Mode())),
		zap.Stringer("query", compiled.Root),
		zap.Int("total", desc.TotalCount),
		zap.Int("page", desc.CurrentPage),
	)

	listing := &Listing{
		AppliedFilters: appliedFilters(s.cat, req.Filters()),
		PageURLPrefix:  pageURLPrefix(compiled.Text, req.Filters()),
		IsSearch:       compiled.IsSearch(),
		SearchQuery:    compiled.Text,
		TotalCount:     desc.TotalCount,
		TotalPages:     desc.TotalPages,
		CurrentPage:    desc.CurrentPage,
		StartIndex:     desc.StartIndex,
		EndIndex:       desc.EndIndex,
		Results:        []result.Item{},
	}
	if desc.IsEmpty() {
		return listing, nil
	}

	hits, aggs, err := s.backend.Search(ctx, compiled, desc.Offset(), desc.PageSize)
	if err != nil {
		return nil, fmt.Errorf("search page %d: %w", desc.CurrentPage, err)
	}

	available, unlabeled := facet.Build(s.cat, req.Filters(), aggs)
	for _, u := range unlabeled {
		log.Warn("dropping aggregation bucket without catalog label",
			zap.String("field", u.Field), zap.String("key", u.Key))
	}
	if available == nil {
		available = facet.Available{}
	}
	listing.AvailableFilters = available

	items, err := s.resolve(ctx, hits)
	if err != nil {
		return nil, err
	}
	listing.Results = items

	return listing, nil
}

// resolve loads records for hits and returns them in hit order, whatever
// order the record store answered in.
func (s *Service) resolve(ctx context.Context, hits []result.Hit) ([]result.Item, error) {
	if len(hits) == 0 {
		return []result.Item{}, nil
	}

	ids := result.IDs(hits)
	chars, err := s.records.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get records: %w", err)
	}

	byID := make(map[string]domchar.Character, len(chars))
	for _, c := range chars {
		byID[c.ID()] = c
	}

	items := make([]result.Item, 0, len(ids))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			logger.FromContext(ctx).Warn("search hit missing from record store", zap.String("id", id))
			continue
		}
		items = append(items, result.Item{ID: c.ID(), Name: c.Name()})
	}
	return items, nil
}
