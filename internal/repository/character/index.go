package character

import (
	"fmt"

	"github.com/kailas-cloud/chardex/internal/db"
	"github.com/kailas-cloud/chardex/internal/domain"
	"github.com/kailas-cloud/chardex/internal/domain/catalog"
	"github.com/kailas-cloud/chardex/internal/domain/search/query"
)

// buildIndex creates the character index: a sortable TEXT name plus one TAG
// per catalog field, in catalog order.
func buildIndex(keys domain.Keyspace, cat *catalog.Catalog) (*db.IndexDefinition, error) {
	b := db.NewIndex(keys.IndexName()).
		OnHash().
		Prefix(keys.CharacterPrefix()).
		SortableText(query.NameField, 0)

	for _, d := range cat.Definitions() {
		b = b.Tag(d.Key())
	}

	def, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("index definition: %w", err)
	}
	return def, nil
}
