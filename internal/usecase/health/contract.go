package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// IndexProber reports whether a search index exists.
type IndexProber interface {
	IndexExists(ctx context.Context, name string) (bool, error)
}
