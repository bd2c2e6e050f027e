package character

import (
	"context"
	"testing"

	"github.com/kailas-cloud/chardex/internal/db"
	"github.com/kailas-cloud/chardex/internal/domain"
	"github.com/kailas-cloud/chardex/internal/domain/catalog"
	domchar "github.com/kailas-cloud/chardex/internal/domain/character"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hsetMultiFn    func(ctx context.Context, items []db.HashSetItem) error
	hgetAllMultiFn func(ctx context.Context, keys []string) ([]map[string]string, error)
	createIndexFn  func(ctx context.Context, def *db.IndexDefinition) error
	indexExistsFn  func(ctx context.Context, name string) (bool, error)
	dropIndexFn    func(ctx context.Context, name string) error
}

func (m *mockStore) HSetMulti(ctx context.Context, items []db.HashSetItem) error {
	if m.hsetMultiFn != nil {
		return m.hsetMultiFn(ctx, items)
	}
	return nil
}

func (m *mockStore) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	if m.hgetAllMultiFn != nil {
		return m.hgetAllMultiFn(ctx, keys)
	}
	return make([]map[string]string, len(keys)), nil
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, def)
	}
	return nil
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	if m.indexExistsFn != nil {
		return m.indexExistsFn(ctx, name)
	}
	return false, nil
}

func (m *mockStore) DropIndex(ctx context.Context, name string) error {
	if m.dropIndexFn != nil {
		return m.dropIndexFn(ctx, name)
	}
	return nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms, domain.NewKeyspace(""), catalog.Default())
	return repo, ms
}

func testCharacter(t *testing.T) domchar.Character {
	t.Helper()
	c, err := domchar.New("ace", "Ace", "07-04", map[string]string{
		catalog.Gender:      "male",
		catalog.Species:     "cat",
		catalog.Personality: "jock",
		catalog.Hobby:       "fitness",
	})
	if err != nil {
		t.Fatalf("testCharacter: %v", err)
	}
	return c
}
