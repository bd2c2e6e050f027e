// Package catalog declares the filterable fields of a character listing.
//
// A Catalog is immutable once built. Its declared field order is the only
// iteration order used by the parser, the query compiler and the facet
// builder, so output never depends on map ordering.
package catalog

import "fmt"

// Aggregation caps applied when a field does not declare its own.
const (
	DefaultAggregationSize = 50
	BinaryAggregationSize  = 2
)

// Value is one selectable value of a filter: its key and display label.
type Value struct {
	Key   string
	Label string
}

// Definition describes a single filterable field.
type Definition struct {
	key             string
	displayName     string
	values          []Value
	labels          map[string]string
	aggregationSize int
}

// NewDefinition validates and creates a filter definition.
// aggregationSize <= 0 defaults to DefaultAggregationSize.
func NewDefinition(key, displayName string, aggregationSize int, values ...Value) (Definition, error) {
	if key == "" {
		return Definition{}, fmt.Errorf("filter key is required")
	}
	if len(values) == 0 {
		return Definition{}, fmt.Errorf("filter %q has no values", key)
	}
	if aggregationSize <= 0 {
		aggregationSize = DefaultAggregationSize
	}

	labels := make(map[string]string, len(values))
	for _, v := range values {
		if v.Key == "" {
			return Definition{}, fmt.Errorf("filter %q: empty value key", key)
		}
		if _, dup := labels[v.Key]; dup {
			return Definition{}, fmt.Errorf("filter %q: duplicate value %q", key, v.Key)
		}
		labels[v.Key] = v.Label
	}

	vals := make([]Value, len(values))
	copy(vals, values)

	return Definition{
		key:             key,
		displayName:     displayName,
		values:          vals,
		labels:          labels,
		aggregationSize: aggregationSize,
	}, nil
}

// Key returns the filter key (also the indexed field name).
func (d Definition) Key() string { return d.key }

// DisplayName returns the human-readable field name.
func (d Definition) DisplayName() string { return d.displayName }

// Values returns the allowed values in declared order.
func (d Definition) Values() []Value {
	out := make([]Value, len(d.values))
	copy(out, d.values)
	return out
}

// Label returns the display label for a value key.
func (d Definition) Label(valueKey string) (string, bool) {
	l, ok := d.labels[valueKey]
	return l, ok
}

// AggregationSize is the maximum number of buckets requested for this field.
func (d Definition) AggregationSize() int { return d.aggregationSize }

// Catalog is the ordered, read-only registry of filter definitions.
type Catalog struct {
	defs  []Definition
	index map[string]int
}

// New builds a catalog. Keys must be unique.
func New(defs ...Definition) (*Catalog, error) {
	index := make(map[string]int, len(defs))
	for i, d := range defs {
		if d.key == "" {
			return nil, fmt.Errorf("definition %d has no key", i)
		}
		if _, dup := index[d.key]; dup {
			return nil, fmt.Errorf("duplicate filter key %q", d.key)
		}
		index[d.key] = i
	}
	out := make([]Definition, len(defs))
	copy(out, defs)
	return &Catalog{defs: out, index: index}, nil
}

// MustNew calls New and panics on error.
func MustNew(defs ...Definition) *Catalog {
	c, err := New(defs...)
	if err != nil {
		panic(err)
	}
	return c
}

// Definition looks up a filter by key.
func (c *Catalog) Definition(key string) (Definition, bool) {
	i, ok := c.index[key]
	if !ok {
		return Definition{}, false
	}
	return c.defs[i], true
}

// Has reports whether key is a registered filter.
func (c *Catalog) Has(key string) bool {
	_, ok := c.index[key]
	return ok
}

// Definitions returns all definitions in declared order.
func (c *Catalog) Definitions() []Definition {
	out := make([]Definition, len(c.defs))
	copy(out, c.defs)
	return out
}

// Keys returns filter keys in declared order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.defs))
	for i, d := range c.defs {
		keys[i] = d.key
	}
	return keys
}
