package filter

import (
	"strings"

	"github.com/kailas-cloud/chardex/internal/domain/catalog"
)

// ValueSeparator joins several selected values of one filter in a request parameter.
const ValueSeparator = ","

// Selection is one applied filter: a catalog key and its requested values.
type Selection struct {
	key    string
	values []string
}

// Key returns the filter key.
func (s Selection) Key() string { return s.key }

// Values returns the requested value keys in request order.
func (s Selection) Values() []string {
	out := make([]string, len(s.values))
	copy(out, s.values)
	return out
}

// Applied is the validated set of filters of one request, ordered by catalog.
// It never holds a key with an empty value set.
type Applied struct {
	selections []Selection
}

// Parse converts raw request parameters into applied filters.
//
// Keys unknown to the catalog are ignored. Values are split on ValueSeparator
// and otherwise passed through unchanged (whitespace, duplicates, unknown
// value keys); a key whose value list is empty is dropped.
func Parse(params map[string]string, cat *catalog.Catalog) Applied {
	var selections []Selection
	for _, key := range cat.Keys() {
		raw, ok := params[key]
		if !ok {
			continue
		}
		values := splitValues(raw)
		if len(values) == 0 {
			continue
		}
		selections = append(selections, Selection{key: key, values: values})
	}
	return Applied{selections: selections}
}

// NewApplied builds applied filters directly, in catalog order.
// Unknown keys and empty value sets are dropped as in Parse.
func NewApplied(values map[string][]string, cat *catalog.Catalog) Applied {
	var selections []Selection
	for _, key := range cat.Keys() {
		vs := values[key]
		if len(vs) == 0 {
			continue
		}
		cp := make([]string, len(vs))
		copy(cp, vs)
		selections = append(selections, Selection{key: key, values: cp})
	}
	return Applied{selections: selections}
}

// splitValues drops empty segments ("a,,b", ","), which can never match a tag.
func splitValues(raw string) []string {
	var out []string
	for _, v := range strings.Split(raw, ValueSeparator) {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Selections returns applied filters in catalog order.
func (a Applied) Selections() []Selection {
	out := make([]Selection, len(a.selections))
	copy(out, a.selections)
	return out
}

// Has reports whether key is applied.
func (a Applied) Has(key string) bool {
	_, ok := a.Get(key)
	return ok
}

// Get returns the requested values of an applied key.
func (a Applied) Get(key string) ([]string, bool) {
	for _, s := range a.selections {
		if s.key == key {
			return s.Values(), true
		}
	}
	return nil, false
}

// Len returns the number of applied keys.
func (a Applied) Len() int { return len(a.selections) }

// IsEmpty reports whether no filter is applied.
func (a Applied) IsEmpty() bool { return len(a.selections) == 0 }

// Map returns applied filters as key -> values.
func (a Applied) Map() map[string][]string {
	m := make(map[string][]string, len(a.selections))
	for _, s := range a.selections {
		m[s.key] = s.Values()
	}
	return m
}
