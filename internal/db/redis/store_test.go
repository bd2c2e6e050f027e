package redis

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/redis/rueidis"
	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/kailas-cloud/chardex/internal/db"
	"github.com/kailas-cloud/chardex/internal/domain/search/query"
)

// --- client.go tests ---

func TestPing_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.Result(mock.RedisString("PONG")))

	s := NewStoreForTest(c)
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPing_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("PING")).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	if err := s.Ping(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestContainsIgnoreCase(t *testing.T) {
	tests := []struct {
		s, sub string
		want   bool
	}{
		{"Index Already Exists", "index already exists", true},
		{"UNKNOWN INDEX NAME", "unknown index name", true},
		{"short", "longer than input", false},
		{"", "", true},
	}
	for _, tc := range tests {
		got := containsIgnoreCase(tc.s, tc.sub)
		if got != tc.want {
			t.Errorf("containsIgnoreCase(%q, %q) = %v, want %v", tc.s, tc.sub, got, tc.want)
		}
	}
}

// --- hash.go tests ---

func TestHSetMulti_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisInt64(2)),
			mock.Result(mock.RedisInt64(2)),
		})

	s := NewStoreForTest(c)
	err := s.HSetMulti(context.Background(), []db.HashSetItem{
		{Key: "k1", Fields: map[string]string{"f1": "v1"}},
		{Key: "k2", Fields: map[string]string{"f2": "v2"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHSetMulti_PartialError(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisInt64(2)),
			mock.ErrorResult(errors.New("OOM")),
		})

	s := NewStoreForTest(c)
	err := s.HSetMulti(context.Background(), []db.HashSetItem{
		{Key: "k1", Fields: map[string]string{"f": "v"}},
		{Key: "k2", Fields: map[string]string{"f": "v"}},
	})
	if !isDBError(err) {
		t.Fatalf("expected db.Error, got %v", err)
	}
}

func TestHSetMulti_Empty(t *testing.T) {
	s := NewStoreForTest(nil)
	if err := s.HSetMulti(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHGetAllMulti_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisMap(map[string]rueidis.RedisMessage{
				"name": mock.RedisString("Ace"),
			})),
			mock.Result(mock.RedisMap(map[string]rueidis.RedisMessage{})),
		})

	s := NewStoreForTest(c)
	results, err := s.HGetAllMulti(context.Background(), []string{"k1", "k2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0]["name"] != "Ace" || len(results[1]) != 0 {
		t.Errorf("unexpected results: %v", results)
	}
}

func TestHGetAllMulti_Empty(t *testing.T) {
	s := NewStoreForTest(nil)
	results, err := s.HGetAllMulti(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results != nil {
		t.Errorf("expected nil, got %v", results)
	}
}

// --- index.go tests ---

func TestCreateIndex_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match(
			"FT.CREATE", "chardex:character:idx", "ON", "HASH",
			"PREFIX", "1", "chardex:character:",
			"SCHEMA", "name", "TEXT", "SORTABLE", "species", "TAG",
		)).
		Return(mock.Result(mock.RedisString("OK")))

	s := NewStoreForTest(c)
	idx := &db.IndexDefinition{
		Name:        "chardex:character:idx",
		StorageType: db.StorageHash,
		Prefixes:    []string{"chardex:character:"},
		Fields: []db.IndexField{
			{Name: "name", Type: db.IndexFieldText, Sortable: true},
			{Name: "species", Type: db.IndexFieldTag},
		},
	}
	if err := s.CreateIndex(context.Background(), idx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateIndex_AlreadyExists(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		Return(mock.Result(mock.RedisError("Index already exists")))

	s := NewStoreForTest(c)
	idx := &db.IndexDefinition{
		Name:   "idx",
		Fields: []db.IndexField{{Name: "f", Type: db.IndexFieldTag}},
	}
	err := s.CreateIndex(context.Background(), idx)
	if !errors.Is(err, db.ErrIndexExists) {
		t.Errorf("expected ErrIndexExists, got %v", err)
	}
}

func TestDropIndex_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT.DROPINDEX", "idx")).
		Return(mock.Result(mock.RedisError("Unknown Index name")))

	s := NewStoreForTest(c)
	if err := s.DropIndex(context.Background(), "idx"); !errors.Is(err, db.ErrIndexNotFound) {
		t.Errorf("expected ErrIndexNotFound, got %v", err)
	}
}

func TestIndexExists_False(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT.INFO", "idx")).
		Return(mock.Result(mock.RedisError("Unknown index name")))

	s := NewStoreForTest(c)
	exists, err := s.IndexExists(context.Background(), "idx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Error("expected false")
	}
}

func TestBuildFieldArgs(t *testing.T) {
	args, err := buildFieldArgs(&db.IndexField{Name: "name", Type: db.IndexFieldText, TextWeight: 2, Sortable: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"name", "TEXT", "WEIGHT", "2", "SORTABLE"}
	if !slices.Equal(args, want) {
		t.Errorf("got %v, want %v", args, want)
	}

	args, err = buildFieldArgs(&db.IndexField{
		Name: "hobby", Alias: "h", Type: db.IndexFieldTag, TagSeparator: ";", TagCaseSensitive: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want = []string{"hobby", "AS", "h", "TAG", "SEPARATOR", ";", "CASESENSITIVE"}
	if !slices.Equal(args, want) {
		t.Errorf("got %v, want %v", args, want)
	}

	if _, err := buildFieldArgs(&db.IndexField{Type: db.IndexFieldTag}); err == nil {
		t.Error("expected error for empty name")
	}
	if _, err := buildFieldArgs(&db.IndexField{Name: "f", Type: db.IndexFieldType(0)}); err == nil {
		t.Error("expected error for unknown type")
	}
}

func TestBuildCreateArgs_Validation(t *testing.T) {
	if _, err := buildCreateArgs(&db.IndexDefinition{}); err == nil {
		t.Error("expected error for empty name")
	}
	if _, err := buildCreateArgs(&db.IndexDefinition{Name: "idx"}); err == nil {
		t.Error("expected error for no fields")
	}
}

// --- query.go tests ---

func TestRenderQuery(t *testing.T) {
	tests := []struct {
		name string
		node query.Node
		want string
	}{
		{"everything", query.Everything(), "*"},
		{"term", query.Term("species", "cat"), "@species:{cat}"},
		{"term escaped", query.Term("personality", "big sister"), `@personality:{big\ sister}`},
		{"text", query.Text("name", "bob  o'hare"), `@name:(bob o\'hare)`},
		{"fuzzy", query.Fuzzy("name", "bob ace"), "@name:(%bob% %ace%)"},
		{
			"and of ors",
			query.And(
				query.Or(query.Term("gender", "male")),
				query.Or(query.Term("species", "cat"), query.Term("species", "dog")),
			),
			"((@gender:{male}) (@species:{cat} | @species:{dog}))",
		},
		{
			"text with filters",
			query.And(
				query.Or(query.Text("name", "bob"), query.Fuzzy("name", "bob")),
				query.And(query.Or(query.Term("hobby", "play"))),
			),
			"((@name:(bob) | @name:(%bob%)) ((@hobby:{play})))",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := renderQuery(tc.node); got != tc.want {
				t.Errorf("renderQuery() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEscapeQuery(t *testing.T) {
	if got := escapeQuery("a-b(c)"); got != `a\-b\(c\)` {
		t.Errorf("escapeQuery() = %q", got)
	}
}

// --- search.go tests ---

func TestSearchCount_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT.SEARCH", "idx", "@species:{cat}", "LIMIT", "0", "0", "DIALECT", "2")).
		Return(mock.Result(mock.RedisArray(mock.RedisInt64(42))))

	s := NewStoreForTest(c)
	count, err := s.SearchCount(context.Background(), &db.Query{
		IndexName: "idx",
		Root:      query.Term("species", "cat"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 42 {
		t.Errorf("expected 42, got %d", count)
	}
}

func TestSearchCount_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	_, err := s.SearchCount(context.Background(), &db.Query{IndexName: "idx", Root: query.Everything()})
	if !isDBError(err) {
		t.Fatalf("expected db.Error, got %v", err)
	}
	if !db.IsUnavailable(err) {
		t.Error("expected unavailable classification")
	}
}

func aggregateReply(field string, rows ...[2]string) rueidis.RedisResult {
	msgs := []rueidis.RedisMessage{mock.RedisInt64(int64(len(rows)))}
	for _, r := range rows {
		msgs = append(msgs, mock.RedisArray(
			mock.RedisString(field), mock.RedisString(r[0]),
			mock.RedisString("count"), mock.RedisString(r[1]),
		))
	}
	return mock.Result(mock.RedisArray(msgs...))
}

func TestSearch_BrowsePipeline(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(),
			mock.Match(
				"FT.SEARCH", "idx", "*", "SORTBY", "name", "ASC",
				"LIMIT", "25", "25", "RETURN", "1", "name", "DIALECT", "2",
			),
			mock.Match(
				"FT.AGGREGATE", "idx", "*", "GROUPBY", "1", "@gender",
				"REDUCE", "COUNT", "0", "AS", "count",
				"SORTBY", "2", "@count", "DESC", "MAX", "2",
				"LIMIT", "0", "2", "DIALECT", "2",
			),
			mock.MatchFn(func(cmd []string) bool {
				return cmd[0] == "FT.AGGREGATE" && cmd[5] == "@species"
			}),
		).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisArray(
				mock.RedisInt64(30),
				mock.RedisString("chardex:character:ace"),
				mock.RedisArray(mock.RedisString("name"), mock.RedisString("Ace")),
				mock.RedisString("chardex:character:bob"),
				mock.RedisArray(mock.RedisString("name"), mock.RedisString("Bob")),
			)),
			aggregateReply("gender", [2]string{"male", "20"}, [2]string{"female", "10"}),
			aggregateReply("species", [2]string{"cat", "12"}, [2]string{"", "3"}),
		})

	s := NewStoreForTest(c)
	res, err := s.Search(context.Background(), &db.Query{
		IndexName: "idx",
		Root:      query.Everything(),
		Aggregations: []query.Aggregation{
			{Field: "gender", Size: 2},
			{Field: "species", Size: 50},
		},
		Sort:         []query.SortKey{{Field: "name"}},
		Offset:       25,
		Limit:        25,
		ReturnFields: []string{"name"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 30 || len(res.Entries) != 2 {
		t.Fatalf("unexpected result: total=%d entries=%d", res.Total, len(res.Entries))
	}
	if res.Entries[0].Fields["name"] != "Ace" {
		t.Errorf("unexpected first entry: %+v", res.Entries[0])
	}
	gender := res.Aggregations["gender"]
	if len(gender) != 2 || gender[0].Key != "male" || gender[0].Count != 20 {
		t.Errorf("unexpected gender buckets: %+v", gender)
	}
	if species := res.Aggregations["species"]; len(species) != 1 || species[0].Key != "cat" {
		t.Errorf("empty group key should be skipped: %+v", species)
	}
}

func scoredRow(key, score, name string) rueidis.RedisMessage {
	return mock.RedisArray(
		mock.RedisString("__key"), mock.RedisString(key),
		mock.RedisString("__score"), mock.RedisString(score),
		mock.RedisString("name"), mock.RedisString(name),
	)
}

func TestSearch_ScoredPageSortsGloballyByScoreThenName(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			joined := strings.Join(cmd, " ")
			return cmd[0] == "FT.AGGREGATE" &&
				strings.Contains(joined, " LOAD 2 @__key @name ADDSCORES ") &&
				strings.HasSuffix(joined, " SORTBY 4 @__score DESC @name ASC LIMIT 25 25 DIALECT 2")
		}, "scored page aggregate")).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisArray(
				mock.RedisInt64(3),
				scoredRow("k:top", "3", "Top"),
				scoredRow("k:amy", "1.5", "Amy"),
				scoredRow("k:zed", "1.5", "Zed"),
			)),
		})

	s := NewStoreForTest(c)
	res, err := s.Search(context.Background(), &db.Query{
		IndexName:    "idx",
		Root:         query.Text("name", "a"),
		Sort:         []query.SortKey{{Field: query.ScoreField, Desc: true}, {Field: "name"}},
		Offset:       25,
		Limit:        25,
		ReturnFields: []string{"name"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := make([]string, len(res.Entries))
	for i, e := range res.Entries {
		got[i] = e.Key
	}
	want := []string{"k:top", "k:amy", "k:zed"}
	if !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	if res.Entries[0].Score != 3 || res.Entries[1].Score != 1.5 {
		t.Errorf("unexpected scores: %+v", res.Entries)
	}
	if f := res.Entries[1].Fields; f["name"] != "Amy" || len(f) != 1 {
		t.Errorf("unexpected fields: %v", f)
	}
}

func TestSearch_MalformedRowsFail(t *testing.T) {
	tests := []struct {
		name  string
		sort  []query.SortKey
		reply rueidis.RedisMessage
	}{
		{
			name: "list row without field array",
			sort: []query.SortKey{{Field: "name"}},
			reply: mock.RedisArray(
				mock.RedisInt64(2),
				mock.RedisString("k:ace"),
				mock.RedisArray(mock.RedisString("name"), mock.RedisString("Ace")),
				mock.RedisString("k:bob"),
				mock.RedisString("not-an-array"),
			),
		},
		{
			name: "list reply missing fields of last row",
			sort: []query.SortKey{{Field: "name"}},
			reply: mock.RedisArray(
				mock.RedisInt64(1),
				mock.RedisString("k:ace"),
			),
		},
		{
			name: "scored row without score",
			sort: []query.SortKey{{Field: query.ScoreField, Desc: true}, {Field: "name"}},
			reply: mock.RedisArray(
				mock.RedisInt64(1),
				mock.RedisArray(mock.RedisString("__key"), mock.RedisString("k:ace")),
			),
		},
		{
			name: "scored row without key",
			sort: []query.SortKey{{Field: query.ScoreField, Desc: true}},
			reply: mock.RedisArray(
				mock.RedisInt64(1),
				mock.RedisArray(mock.RedisString("__score"), mock.RedisString("1")),
			),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			c := mock.NewClient(ctrl)
			c.EXPECT().
				DoMulti(gomock.Any(), gomock.Any()).
				Return([]rueidis.RedisResult{mock.Result(tc.reply)})

			s := NewStoreForTest(c)
			_, err := s.Search(context.Background(), &db.Query{
				IndexName: "idx",
				Root:      query.Everything(),
				Sort:      tc.sort,
				Limit:     25,
			})
			var dbErr *db.Error
			if !errors.As(err, &dbErr) || dbErr.Op != db.OpSearch {
				t.Fatalf("expected search error, got %v", err)
			}
		})
	}
}

func TestSearch_AggregateError(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisArray(mock.RedisInt64(0))),
			mock.Result(mock.RedisError("bad query")),
		})

	s := NewStoreForTest(c)
	_, err := s.Search(context.Background(), &db.Query{
		IndexName:    "idx",
		Root:         query.Everything(),
		Aggregations: []query.Aggregation{{Field: "gender", Size: 2}},
		Limit:        25,
	})
	var dbErr *db.Error
	if !errors.As(err, &dbErr) || dbErr.Op != db.OpAggregate {
		t.Fatalf("expected FT.AGGREGATE error, got %v", err)
	}
}

func TestSearch_Validation(t *testing.T) {
	s := &Store{}
	ctx := context.Background()

	if _, err := s.Search(ctx, &db.Query{Limit: 10}); err == nil {
		t.Error("expected error for empty index name")
	}
	if _, err := s.Search(ctx, &db.Query{IndexName: "idx"}); err == nil {
		t.Error("expected error for zero limit")
	}
	if _, err := s.Search(ctx, &db.Query{IndexName: "idx", Limit: 1, Offset: -1}); err == nil {
		t.Error("expected error for negative offset")
	}
}

// --- suggest.go tests ---

func TestSuggestAdd_Pipelined(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		DoMulti(gomock.Any(),
			mock.Match("FT.SUGADD", "names", "Ace", "1"),
			mock.Match("FT.SUGADD", "names", "Bob", "2.5"),
		).
		Return([]rueidis.RedisResult{
			mock.Result(mock.RedisInt64(1)),
			mock.Result(mock.RedisInt64(2)),
		})

	s := NewStoreForTest(c)
	err := s.SuggestAdd(context.Background(), "names", []db.Suggestion{
		{Text: "Ace"},
		{Text: "Bob", Score: 2.5},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSuggestGet(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT.SUGGET", "names", "ac", "FUZZY", "MAX", "5")).
		Return(mock.Result(mock.RedisArray(mock.RedisString("Ace"), mock.RedisString("Acorn"))))

	s := NewStoreForTest(c)
	got, err := s.SuggestGet(context.Background(), "names", "ac", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(got, []string{"Ace", "Acorn"}) {
		t.Errorf("unexpected suggestions: %v", got)
	}
}

func TestSuggestGet_InvalidLimit(t *testing.T) {
	s := &Store{}
	if _, err := s.SuggestGet(context.Background(), "names", "a", 0); err == nil {
		t.Error("expected error for zero limit")
	}
}

// --- helpers ---

// isDBError is a test helper for checking wrapped db.Error.
func isDBError(err error) bool {
	var dbErr *db.Error
	return errors.As(err, &dbErr)
}

func TestDropIndex_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match("FT.DROPINDEX", "chardex:character:idx")).
		Return(mock.Result(mock.RedisString("OK")))

	s := NewStoreForTest(c)
	if err := s.DropIndex(context.Background(), "chardex:character:idx"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
