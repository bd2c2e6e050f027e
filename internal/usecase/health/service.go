package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
	// CheckMissing indicates the search index has not been created yet.
	CheckMissing CheckResult = "missing"
)

// Check names.
const (
	CheckDatabase    = "database"
	CheckSearchIndex = "search_index"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db        DBPinger
	index     IndexProber
	indexName string
}

// New creates a Service. index can be nil to skip the index probe.
func New(db DBPinger, index IndexProber, indexName string) *Service {
	return &Service{db: db, index: index, indexName: indexName}
}

// Check pings the database and, when it answers, probes the search index.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, 2)

	if err := s.db.Ping(ctx); err != nil {
		checks[CheckDatabase] = CheckError
	} else {
		checks[CheckDatabase] = CheckOK
	}

	if s.index != nil && checks[CheckDatabase] == CheckOK {
		exists, err := s.index.IndexExists(ctx, s.indexName)
		switch {
		case err != nil:
			checks[CheckSearchIndex] = CheckError
		case !exists:
			checks[CheckSearchIndex] = CheckMissing
		default:
			checks[CheckSearchIndex] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v != CheckOK {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}
