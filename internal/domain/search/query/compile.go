package query

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/chardex/internal/domain"
	"github.com/kailas-cloud/chardex/internal/domain/catalog"
	"github.com/kailas-cloud/chardex/internal/domain/search/filter"
)

// MaxTextLength bounds search text, in characters, after trimming.
const MaxTextLength = 64

// Indexed fields outside the filter catalog.
const (
	// NameField is the display name; the secondary sort key in every mode.
	NameField = "name"
	// ScoreField sorts by backend relevance.
	ScoreField = "__score"
)

// Aggregation requests the most frequent values of a field.
type Aggregation struct {
	Field string
	Size  int
}

// SortKey orders results by a field.
type SortKey struct {
	Field string
	Desc  bool
}

// Compiled is the query envelope handed to the search backend.
type Compiled struct {
	Root         Node
	Aggregations []Aggregation
	Sort         []SortKey
	Text         string
}

// IsSearch reports whether the query carries search text.
func (c Compiled) IsSearch() bool { return c.Text != "" }

// NormalizeText trims search text and enforces MaxTextLength.
func NormalizeText(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if n := utf8.RuneCountInString(text); n > MaxTextLength {
		return "", fmt.Errorf("%w: search text is %d characters, max %d", domain.ErrInvalidInput, n, MaxTextLength)
	}
	return text, nil
}

// Compile turns applied filters and optional search text into a query envelope.
//
// Each applied key becomes an OR over its values; those clauses are ANDed.
// Search text adds OR(name match, fuzzy name match) in front of the facet
// clauses. Aggregations are requested for every catalog field over the same
// query, including fields that are themselves applied.
func Compile(applied filter.Applied, rawText string, cat *catalog.Catalog) (Compiled, error) {
	text, err := NormalizeText(rawText)
	if err != nil {
		return Compiled{}, err
	}

	clauses := facetClauses(applied)

	var root Node
	switch {
	case text == "" && len(clauses) == 0:
		root = Everything()
	case text == "":
		root = And(clauses...)
	case len(clauses) == 0:
		root = textClause(text)
	default:
		root = And(textClause(text), And(clauses...))
	}

	return Compiled{
		Root:         root,
		Aggregations: aggregations(cat),
		Sort:         sortOrder(text != ""),
		Text:         text,
	}, nil
}

func facetClauses(applied filter.Applied) []Node {
	selections := applied.Selections()
	clauses := make([]Node, 0, len(selections))
	for _, s := range selections {
		values := s.Values()
		leaves := make([]Node, len(values))
		for i, v := range values {
			leaves[i] = Term(s.Key(), v)
		}
		clauses = append(clauses, Or(leaves...))
	}
	return clauses
}

func textClause(text string) Node {
	return Or(Text(NameField, text), Fuzzy(NameField, text))
}

func aggregations(cat *catalog.Catalog) []Aggregation {
	defs := cat.Definitions()
	aggs := make([]Aggregation, len(defs))
	for i, d := range defs {
		aggs[i] = Aggregation{Field: d.Key(), Size: d.AggregationSize()}
	}
	return aggs
}

func sortOrder(search bool) []SortKey {
	if search {
		return []SortKey{{Field: ScoreField, Desc: true}, {Field: NameField}}
	}
	return []SortKey{{Field: NameField}}
}
