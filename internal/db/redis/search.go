package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/chardex/internal/db"
	"github.com/kailas-cloud/chardex/internal/domain/search/facet"
	"github.com/kailas-cloud/chardex/internal/domain/search/query"
)

const (
	countAlias = "count"
	keyField   = "__key"
)

// SearchCount returns the number of documents matching q via FT.SEARCH with LIMIT 0 0.
func (s *Store) SearchCount(ctx context.Context, q *db.Query) (int, error) {
	if q == nil || q.IndexName == "" {
		return 0, errors.New("index name is required")
	}

	cmd := s.b().Arbitrary("FT.SEARCH").
		Args(q.IndexName, renderQuery(q.Root), "LIMIT", "0", "0", "DIALECT", "2").
		Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return 0, &db.Error{Op: db.OpSearch, Err: err}
	}
	if len(raw) == 0 {
		return 0, nil
	}
	total, err := raw[0].AsInt64()
	if err != nil {
		return 0, &db.Error{Op: db.OpSearch, Err: fmt.Errorf("parse count: %w", err)}
	}
	return int(total), nil
}

// Search fetches one page of documents plus per-field aggregations.
// The page command and every facet FT.AGGREGATE go out in a single DoMulti
// round-trip.
//
// Score-ordered pages go through FT.AGGREGATE with ADDSCORES, since FT.SEARCH
// cannot combine relevance ordering with a secondary SORTBY key. Other pages
// use FT.SEARCH with SORTBY on the first sort key.
func (s *Store) Search(ctx context.Context, q *db.Query) (*db.SearchResult, error) {
	if q == nil || q.IndexName == "" {
		return nil, errors.New("index name is required")
	}
	if q.Limit <= 0 {
		return nil, errors.New("limit must be positive")
	}
	if q.Offset < 0 {
		return nil, errors.New("offset must not be negative")
	}

	queryStr := renderQuery(q.Root)
	byScore := len(q.Sort) > 0 && q.Sort[0].Field == query.ScoreField

	cmds := make([]rueidis.Completed, 0, 1+len(q.Aggregations))
	if byScore {
		cmds = append(cmds, s.b().Arbitrary("FT.AGGREGATE").Args(scoredPageArgs(q, queryStr)...).Build())
	} else {
		cmds = append(cmds, s.b().Arbitrary("FT.SEARCH").Args(searchArgs(q, queryStr)...).Build())
	}
	for _, agg := range q.Aggregations {
		cmds = append(cmds, s.b().Arbitrary("FT.AGGREGATE").Args(aggregateArgs(q.IndexName, queryStr, agg)...).Build())
	}

	results := s.doMulti(ctx, cmds...)

	raw, err := results[0].ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	var res *db.SearchResult
	if byScore {
		res, err = parseScoredPage(raw)
	} else {
		res, err = parseListResult(raw)
	}
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	res.Aggregations = make(facet.Aggregations, len(q.Aggregations))
	for i, agg := range q.Aggregations {
		rows, err := results[i+1].ToArray()
		if err != nil {
			return nil, &db.Error{Op: db.OpAggregate, Err: fmt.Errorf("field %s: %w", agg.Field, err)}
		}
		res.Aggregations[agg.Field] = parseAggregateResult(rows, agg.Field)
	}

	return res, nil
}

func searchArgs(q *db.Query, queryStr string) []string {
	args := []string{q.IndexName, queryStr}

	if len(q.Sort) > 0 {
		dir := "ASC"
		if q.Sort[0].Desc {
			dir = "DESC"
		}
		args = append(args, "SORTBY", q.Sort[0].Field, dir)
	}

	args = append(args, "LIMIT", strconv.Itoa(q.Offset), strconv.Itoa(q.Limit))

	if len(q.ReturnFields) > 0 {
		args = append(args, "RETURN", strconv.Itoa(len(q.ReturnFields)))
		args = append(args, q.ReturnFields...)
	}

	return append(args, "DIALECT", "2")
}

// scoredPageArgs builds
// FT.AGGREGATE idx q LOAD n @__key @f... ADDSCORES SORTBY 2k @k1 DIR ... LIMIT off size.
func scoredPageArgs(q *db.Query, queryStr string) []string {
	args := []string{q.IndexName, queryStr}

	args = append(args, "LOAD", strconv.Itoa(1+len(q.ReturnFields)), "@"+keyField)
	for _, f := range q.ReturnFields {
		args = append(args, "@"+f)
	}

	args = append(args, "ADDSCORES", "SORTBY", strconv.Itoa(2*len(q.Sort)))
	for _, k := range q.Sort {
		dir := "ASC"
		if k.Desc {
			dir = "DESC"
		}
		args = append(args, "@"+k.Field, dir)
	}

	args = append(args, "LIMIT", strconv.Itoa(q.Offset), strconv.Itoa(q.Limit))
	return append(args, "DIALECT", "2")
}

func aggregateArgs(index, queryStr string, agg query.Aggregation) []string {
	size := strconv.Itoa(agg.Size)
	return []string{
		index, queryStr,
		"GROUPBY", "1", "@" + agg.Field,
		"REDUCE", "COUNT", "0", "AS", countAlias,
		"SORTBY", "2", "@" + countAlias, "DESC", "MAX", size,
		"LIMIT", "0", size,
		"DIALECT", "2",
	}
}

// --- Result parsing ---

// parseScoredPage reads FT.AGGREGATE rows: [n, [__key, k, __score, s, f, v, ...], ...].
// The leading count is not the match total; callers take that from SearchCount.
func parseScoredPage(raw []rueidis.RedisMessage) (*db.SearchResult, error) {
	if len(raw) < 2 {
		return &db.SearchResult{}, nil
	}

	entries := make([]db.SearchEntry, 0, len(raw)-1)
	for i, row := range raw[1:] {
		pairs, err := row.ToArray()
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		fields, err := parseFieldPairsStrict(pairs)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}

		key, ok := fields[keyField]
		if !ok || key == "" {
			return nil, fmt.Errorf("row %d: missing %s", i, keyField)
		}
		score, err := strconv.ParseFloat(fields[query.ScoreField], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: parse score: %w", i, err)
		}
		delete(fields, keyField)
		delete(fields, query.ScoreField)

		entries = append(entries, db.SearchEntry{Key: key, Score: score, Fields: fields})
	}

	return &db.SearchResult{Total: len(entries), Entries: entries}, nil
}

func parseListResult(raw []rueidis.RedisMessage) (*db.SearchResult, error) {
	if len(raw) == 0 {
		return &db.SearchResult{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return &db.SearchResult{}, nil
	}
	if len(raw)%2 != 1 {
		return nil, fmt.Errorf("odd reply length %d", len(raw))
	}

	entries := make([]db.SearchEntry, 0, (len(raw)-1)/2)
	// 2-stride: [total, key1, fields1, key2, fields2, ...]
	for i := 1; i+1 < len(raw); i += 2 {
		key, err := raw[i].ToString()
		if err != nil {
			return nil, fmt.Errorf("row %d key: %w", i/2, err)
		}

		pairs, err := raw[i+1].ToArray()
		if err != nil {
			return nil, fmt.Errorf("row %d fields: %w", i/2, err)
		}
		fields, err := parseFieldPairsStrict(pairs)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i/2, err)
		}

		entries = append(entries, db.SearchEntry{Key: key, Fields: fields})
	}

	return &db.SearchResult{Total: int(total), Entries: entries}, nil
}

// parseAggregateResult reads GROUPBY rows: [n, [field, key, count, c], ...].
// Rows without a key (documents missing the field) are skipped.
func parseAggregateResult(raw []rueidis.RedisMessage, field string) []facet.Bucket {
	if len(raw) < 2 {
		return nil
	}

	buckets := make([]facet.Bucket, 0, len(raw)-1)
	for _, row := range raw[1:] {
		pairs, err := row.ToArray()
		if err != nil {
			continue
		}
		m := parseFieldPairs(pairs)

		key := m[field]
		if key == "" {
			continue
		}
		count, err := strconv.Atoi(m[countAlias])
		if err != nil {
			continue
		}
		buckets = append(buckets, facet.Bucket{Key: key, Count: count})
	}
	return buckets
}

func parseFieldPairs(fields []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			continue
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}

func parseFieldPairsStrict(fields []rueidis.RedisMessage) (map[string]string, error) {
	if len(fields)%2 != 0 {
		return nil, fmt.Errorf("odd field list length %d", len(fields))
	}
	m := make(map[string]string, len(fields)/2)
	for j := 0; j < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			return nil, fmt.Errorf("field name: %w", err)
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		m[name] = value
	}
	return m, nil
}
