package suggest

import (
	"context"
	"fmt"
	"strings"
)

// Limit bounds.
const (
	MinLimit     = 1
	MaxLimit     = 20
	DefaultLimit = 8
)

// Service answers name autocomplete requests.
type Service struct {
	backend      Backend
	defaultLimit int
}

// New creates a suggest service. A defaultLimit outside [MinLimit, MaxLimit]
// falls back to DefaultLimit.
func New(backend Backend, defaultLimit int) *Service {
	if defaultLimit < MinLimit || defaultLimit > MaxLimit {
		defaultLimit = DefaultLimit
	}
	return &Service{backend: backend, defaultLimit: defaultLimit}
}

// Suggest returns up to limit names completing prefix. limit 0 means the
// default; other values are clamped to [MinLimit, MaxLimit]. An empty prefix
// yields an empty list without touching the backend.
func (s *Service) Suggest(ctx context.Context, prefix string, limit int) ([]string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return []string{}, nil
	}

	switch {
	case limit == 0:
		limit = s.defaultLimit
	case limit < MinLimit:
		limit = MinLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}

	names, err := s.backend.Suggest(ctx, prefix, limit)
	if err != nil {
		return nil, fmt.Errorf("suggest %q: %w", prefix, err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}
