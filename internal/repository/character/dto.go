package character

import (
	"github.com/kailas-cloud/chardex/internal/domain/catalog"
	domchar "github.com/kailas-cloud/chardex/internal/domain/character"
)

// Hash field names besides the catalog fields.
const (
	fieldName     = "name"
	fieldBirthday = "birthday"
)

// buildHashFields flattens a character into a map for HSET.
// Catalog fields are stored under their catalog key so the index can TAG them.
func buildHashFields(c *domchar.Character) map[string]string {
	facets := c.Facets()
	m := make(map[string]string, 2+len(facets))
	m[fieldName] = c.Name()
	if c.Birthday() != "" {
		m[fieldBirthday] = c.Birthday()
	}
	for k, v := range facets {
		if v != "" {
			m[k] = v
		}
	}
	return m
}

// parseHashFields restores a character from a hash. Fields outside the
// catalog are ignored.
func parseHashFields(id string, m map[string]string, cat *catalog.Catalog) domchar.Character {
	facets := make(map[string]string, len(cat.Keys()))
	for _, key := range cat.Keys() {
		if v, ok := m[key]; ok {
			facets[key] = v
		}
	}
	return domchar.Reconstruct(id, m[fieldName], m[fieldBirthday], facets)
}
