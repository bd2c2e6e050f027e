package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/chardex/internal/db"
)

// SuggestAdd adds entries to an autocomplete dictionary in one pipeline.
func (s *Store) SuggestAdd(ctx context.Context, key string, items []db.Suggestion) error {
	if len(items) == 0 {
		return nil
	}

	cmds := make([]rueidis.Completed, len(items))
	for i, it := range items {
		score := it.Score
		if score <= 0 {
			score = 1
		}
		cmds[i] = s.b().Arbitrary("FT.SUGADD").Keys(key).
			Args(it.Text, strconv.FormatFloat(score, 'f', -1, 64)).
			Build()
	}

	for i, res := range s.doMulti(ctx, cmds...) {
		if err := res.Error(); err != nil {
			return &db.Error{Op: db.OpSugAdd, Err: fmt.Errorf("entry %q: %w", items[i].Text, err)}
		}
	}
	return nil
}

// SuggestGet returns up to limit fuzzy prefix completions.
// A missing dictionary yields an empty list.
func (s *Store) SuggestGet(ctx context.Context, key, prefix string, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be positive")
	}

	cmd := s.b().Arbitrary("FT.SUGGET").Keys(key).
		Args(prefix, "FUZZY", "MAX", strconv.Itoa(limit)).
		Build()
	out, err := s.do(ctx, cmd).AsStrSlice()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return []string{}, nil
		}
		return nil, &db.Error{Op: db.OpSugGet, Err: err}
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}
