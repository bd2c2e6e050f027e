package importer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/chardex/internal/domain/catalog"
	domchar "github.com/kailas-cloud/chardex/internal/domain/character"
	"github.com/kailas-cloud/chardex/internal/logger"
)

// BatchSize is the number of records written per pipeline.
const BatchSize = 100

// Rejection explains why a record was skipped.
type Rejection struct {
	Index  int
	ID     string
	Reason string
}

// Report summarizes an import run.
type Report struct {
	Imported     int
	Rejected     []Rejection
	IndexCreated bool
}

// Service loads character records into the record store and name dictionary.
type Service struct {
	records     RecordWriter
	suggestions SuggestionWriter
	cat         *catalog.Catalog
	batchSize   int
	reindex     bool
}

// New creates an import service.
func New(records RecordWriter, suggestions SuggestionWriter, cat *catalog.Catalog) *Service {
	return &Service{records: records, suggestions: suggestions, cat: cat, batchSize: BatchSize}
}

// WithBatchSize configures the write batch size.
func (s *Service) WithBatchSize(size int) *Service {
	if size > 0 {
		s.batchSize = size
	}
	return s
}

// WithReindex drops the search index before importing so it is rebuilt
// over every stored record, e.g. after the catalog gained a field.
func (s *Service) WithReindex(reindex bool) *Service {
	s.reindex = reindex
	return s
}

// Import validates records, ensures the index, then writes valid records
// and their names batch by batch. Invalid or duplicate records are reported,
// not fatal; a storage failure aborts the run.
func (s *Service) Import(ctx context.Context, records []Record) (Report, error) {
	log := logger.FromContext(ctx)

	valid, rejected := s.validate(records)
	for _, r := range rejected {
		log.Warn("rejected record", zap.Int("index", r.Index), zap.String("id", r.ID), zap.String("reason", r.Reason))
	}

	report := Report{Rejected: rejected}

	if s.reindex {
		if err := s.records.DropIndex(ctx); err != nil {
			return report, fmt.Errorf("drop index: %w", err)
		}
	}

	created, err := s.records.EnsureIndex(ctx)
	if err != nil {
		return report, fmt.Errorf("ensure index: %w", err)
	}
	report.IndexCreated = created

	for start := 0; start < len(valid); start += s.batchSize {
		end := min(start+s.batchSize, len(valid))
		batch := valid[start:end]

		if err := s.records.Upsert(ctx, batch); err != nil {
			return report, fmt.Errorf("write records %d-%d: %w", start, end-1, err)
		}

		names := make([]string, len(batch))
		for i, c := range batch {
			names[i] = c.Name()
		}
		if err := s.suggestions.AddSuggestions(ctx, names); err != nil {
			return report, fmt.Errorf("add suggestions %d-%d: %w", start, end-1, err)
		}

		report.Imported += len(batch)
		log.Debug("batch imported", zap.Int("from", start), zap.Int("count", len(batch)))
	}

	return report, nil
}

func (s *Service) validate(records []Record) ([]domchar.Character, []Rejection) {
	valid := make([]domchar.Character, 0, len(records))
	var rejected []Rejection
	seen := make(map[string]struct{}, len(records))

	for i, r := range records {
		c, err := domchar.New(r.ID, r.Name, r.Birthday, r.Facets)
		if err != nil {
			rejected = append(rejected, Rejection{Index: i, ID: r.ID, Reason: err.Error()})
			continue
		}
		if _, dup := seen[c.ID()]; dup {
			rejected = append(rejected, Rejection{Index: i, ID: r.ID, Reason: "duplicate id"})
			continue
		}
		if unknown := c.UnknownFacets(s.cat); len(unknown) > 0 {
			rejected = append(rejected, Rejection{
				Index: i, ID: r.ID, Reason: fmt.Sprintf("values outside catalog: %v", unknown),
			})
			continue
		}
		seen[c.ID()] = struct{}{}
		valid = append(valid, c)
	}
	return valid, rejected
}
