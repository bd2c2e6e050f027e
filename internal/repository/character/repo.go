package character

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/chardex/internal/db"
	"github.com/kailas-cloud/chardex/internal/domain"
	"github.com/kailas-cloud/chardex/internal/domain/catalog"
	domchar "github.com/kailas-cloud/chardex/internal/domain/character"
	"github.com/kailas-cloud/chardex/internal/metrics"
)

// store is the consumer interface for character records (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	DropIndex(ctx context.Context, name string) error
}

// Repo implements the persistent record store over Redis hashes.
type Repo struct {
	store store
	keys  domain.Keyspace
	cat   *catalog.Catalog
}

// New creates a character repository.
func New(s store, keys domain.Keyspace, cat *catalog.Catalog) *Repo {
	return &Repo{store: s, keys: keys, cat: cat}
}

// GetByIDs loads characters with one pipelined HGETALL. Records missing from
// the store are skipped; every returned record carries the id it was asked by.
// Callers must not rely on the order of the result.
func (r *Repo) GetByIDs(ctx context.Context, ids []string) (_ []domchar.Character, err error) {
	if len(ids) == 0 {
		return []domchar.Character{}, nil
	}

	start := time.Now()
	defer func() { metrics.ObserveBackend(metrics.OpGetByIDs, start, err) }()

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.keys.CharacterKey(id)
	}

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("get characters: %w", db.DomainError(err))
	}

	out := make([]domchar.Character, 0, len(hashes))
	for i, m := range hashes {
		if i >= len(ids) || len(m) == 0 {
			continue
		}
		out = append(out, parseHashFields(ids[i], m, r.cat))
	}
	return out, nil
}

// Upsert writes characters with one pipelined HSET.
func (r *Repo) Upsert(ctx context.Context, chars []domchar.Character) (err error) {
	if len(chars) == 0 {
		return nil
	}

	start := time.Now()
	defer func() { metrics.ObserveBackend(metrics.OpUpsert, start, err) }()

	items := make([]db.HashSetItem, len(chars))
	for i := range chars {
		items[i] = db.HashSetItem{
			Key:    r.keys.CharacterKey(chars[i].ID()),
			Fields: buildHashFields(&chars[i]),
		}
	}

	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("upsert %d characters: %w", len(chars), db.DomainError(err))
	}
	return nil
}

// EnsureIndex creates the character index unless it is already present.
// Returns true if the index was created by this call.
func (r *Repo) EnsureIndex(ctx context.Context) (bool, error) {
	name := r.keys.IndexName()

	exists, err := r.store.IndexExists(ctx, name)
	if err != nil {
		return false, fmt.Errorf("check index %s: %w", name, db.DomainError(err))
	}
	if exists {
		return false, nil
	}

	def, err := buildIndex(r.keys, r.cat)
	if err != nil {
		return false, err
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		// Concurrent bootstrap won the race.
		if errors.Is(err, db.ErrIndexExists) {
			return false, nil
		}
		return false, fmt.Errorf("create index %s: %w", name, db.DomainError(err))
	}
	return true, nil
}

// DropIndex removes the character index, keeping the hashes it covers.
// A missing index is not an error.
func (r *Repo) DropIndex(ctx context.Context) error {
	name := r.keys.IndexName()
	if err := r.store.DropIndex(ctx, name); err != nil {
		if errors.Is(err, db.ErrIndexNotFound) {
			return nil
		}
		return fmt.Errorf("drop index %s: %w", name, db.DomainError(err))
	}
	return nil
}
