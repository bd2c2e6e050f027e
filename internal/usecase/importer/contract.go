package importer

import (
	"context"

	domchar "github.com/kailas-cloud/chardex/internal/domain/character"
)

// RecordWriter persists characters and owns the search index lifecycle.
type RecordWriter interface {
	Upsert(ctx context.Context, chars []domchar.Character) error
	EnsureIndex(ctx context.Context) (bool, error)
	DropIndex(ctx context.Context) error
}

// SuggestionWriter feeds the autocomplete dictionary.
type SuggestionWriter interface {
	AddSuggestions(ctx context.Context, names []string) error
}
