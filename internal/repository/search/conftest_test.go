package search

import (
	"context"
	"testing"

	"github.com/kailas-cloud/chardex/internal/db"
	"github.com/kailas-cloud/chardex/internal/domain"
	"github.com/kailas-cloud/chardex/internal/domain/catalog"
	"github.com/kailas-cloud/chardex/internal/domain/search/filter"
	"github.com/kailas-cloud/chardex/internal/domain/search/query"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchCountFn func(ctx context.Context, q *db.Query) (int, error)
	searchFn      func(ctx context.Context, q *db.Query) (*db.SearchResult, error)
	suggestAddFn  func(ctx context.Context, key string, items []db.Suggestion) error
	suggestGetFn  func(ctx context.Context, key, prefix string, limit int) ([]string, error)
}

func (m *mockStore) SearchCount(ctx context.Context, q *db.Query) (int, error) {
	if m.searchCountFn != nil {
		return m.searchCountFn(ctx, q)
	}
	return 0, nil
}

func (m *mockStore) Search(ctx context.Context, q *db.Query) (*db.SearchResult, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) SuggestAdd(ctx context.Context, key string, items []db.Suggestion) error {
	if m.suggestAddFn != nil {
		return m.suggestAddFn(ctx, key, items)
	}
	return nil
}

func (m *mockStore) SuggestGet(ctx context.Context, key, prefix string, limit int) ([]string, error) {
	if m.suggestGetFn != nil {
		return m.suggestGetFn(ctx, key, prefix, limit)
	}
	return []string{}, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms, domain.NewKeyspace(""))
	return repo, ms
}

func compile(t *testing.T, params map[string]string, text string) query.Compiled {
	t.Helper()
	cat := catalog.Default()
	q, err := query.Compile(filter.Parse(params, cat), text, cat)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return q
}
