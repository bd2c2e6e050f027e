package suggest

import "context"

// Backend returns autocomplete completions from the name dictionary.
type Backend interface {
	Suggest(ctx context.Context, prefix string, limit int) ([]string, error)
}
