// Package facet derives which filter values remain selectable for the next request.
package facet

import (
	"github.com/kailas-cloud/chardex/internal/domain/catalog"
	"github.com/kailas-cloud/chardex/internal/domain/search/filter"
)

// Bucket is a value of a field and the number of matching documents carrying it.
type Bucket struct {
	Key   string
	Count int
}

// Aggregations holds bucket lists per field, in backend order.
type Aggregations map[string][]Bucket

// Filter is one field the UI may offer, with its selectable values.
type Filter struct {
	Key         string
	DisplayName string
	Values      []catalog.Value
}

// Available lists offerable filters in catalog order.
type Available []Filter

// Get returns the available filter for key.
func (a Available) Get(key string) (Filter, bool) {
	for _, f := range a {
		if f.Key == key {
			return f, true
		}
	}
	return Filter{}, false
}

// Unlabeled is a bucket key with no catalog label; it is dropped from output.
type Unlabeled struct {
	Field string
	Key   string
}

// Build computes the filters to present after a query.
//
// A field that is already applied keeps its full catalog value set in
// declared order, whatever its buckets say: the buckets were computed with
// the field's own selection in effect and would hide the alternatives.
// Any other field offers only the values present in its buckets, in bucket
// order; a field with no buckets is omitted.
func Build(cat *catalog.Catalog, applied filter.Applied, aggs Aggregations) (Available, []Unlabeled) {
	var (
		out     Available
		dropped []Unlabeled
	)
	for _, def := range cat.Definitions() {
		if applied.Has(def.Key()) {
			out = append(out, Filter{
				Key:         def.Key(),
				DisplayName: def.DisplayName(),
				Values:      def.Values(),
			})
			continue
		}

		buckets := aggs[def.Key()]
		if len(buckets) == 0 {
			continue
		}

		values := make([]catalog.Value, 0, len(buckets))
		seen := make(map[string]struct{}, len(buckets))
		for _, b := range buckets {
			if _, dup := seen[b.Key]; dup {
				continue
			}
			label, ok := def.Label(b.Key)
			if !ok {
				dropped = append(dropped, Unlabeled{Field: def.Key(), Key: b.Key})
				continue
			}
			seen[b.Key] = struct{}{}
			values = append(values, catalog.Value{Key: b.Key, Label: label})
		}
		if len(values) == 0 {
			continue
		}
		out = append(out, Filter{Key: def.Key(), DisplayName: def.DisplayName(), Values: values})
	}
	return out, dropped
}
