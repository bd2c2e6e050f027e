// Package character holds the catalog entry shown in listings.
package character

import (
	"fmt"
	"time"

	"github.com/kailas-cloud/chardex/internal/domain/catalog"
)

// BirthdayLayout is the storage format of birthdays (month-day, no year).
const BirthdayLayout = "01-02"

// Character is a single catalog record.
type Character struct {
	id       string
	name     string
	birthday string
	facets   map[string]string
}

// New validates and creates a character. facets maps catalog keys to value keys.
func New(id, name, birthday string, facets map[string]string) (Character, error) {
	if id == "" {
		return Character{}, fmt.Errorf("character id is required")
	}
	if name == "" {
		return Character{}, fmt.Errorf("character %q: name is required", id)
	}
	if birthday != "" {
		if _, err := time.Parse(BirthdayLayout, birthday); err != nil {
			return Character{}, fmt.Errorf("character %q: birthday %q must be MM-DD", id, birthday)
		}
	}
	return Reconstruct(id, name, birthday, facets), nil
}

// Reconstruct restores a character from storage without validation.
func Reconstruct(id, name, birthday string, facets map[string]string) Character {
	cp := make(map[string]string, len(facets))
	for k, v := range facets {
		cp[k] = v
	}
	return Character{id: id, name: name, birthday: birthday, facets: cp}
}

// ID returns the identifier.
func (c Character) ID() string { return c.id }

// Name returns the display name.
func (c Character) Name() string { return c.name }

// Birthday returns the MM-DD birthday, empty if unknown.
func (c Character) Birthday() string { return c.birthday }

// Facet returns the value of a catalog field.
func (c Character) Facet(key string) string { return c.facets[key] }

// Facets returns a copy of all catalog field values.
func (c Character) Facets() map[string]string {
	cp := make(map[string]string, len(c.facets))
	for k, v := range c.facets {
		cp[k] = v
	}
	return cp
}

// UnknownFacets lists facet keys or values not present in the catalog.
func (c Character) UnknownFacets(cat *catalog.Catalog) []string {
	var bad []string
	for _, key := range sortedKeys(c.facets) {
		def, ok := cat.Definition(key)
		if !ok {
			bad = append(bad, key)
			continue
		}
		if _, ok := def.Label(c.facets[key]); !ok {
			bad = append(bad, key+"="+c.facets[key])
		}
	}
	return bad
}
