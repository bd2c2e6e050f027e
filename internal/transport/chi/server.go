package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/chardex/internal/domain"
	"github.com/kailas-cloud/chardex/internal/domain/catalog"
	"github.com/kailas-cloud/chardex/internal/domain/search/filter"
	"github.com/kailas-cloud/chardex/internal/domain/search/page"
	"github.com/kailas-cloud/chardex/internal/logger"
	healthuc "github.com/kailas-cloud/chardex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/chardex/internal/usecase/search"
	suggestuc "github.com/kailas-cloud/chardex/internal/usecase/suggest"
)

// Query parameters outside the filter catalog.
const (
	paramLimit = "limit"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the character listing API.
type Server struct {
	search        *searchuc.Service
	suggest       *suggestuc.Service
	health        *healthuc.Service
	cat           *catalog.Catalog
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	suggest *suggestuc.Service,
	health *healthuc.Service,
	cat *catalog.Catalog,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:  search,
		suggest: suggest,
		health:  health,
		cat:     cat,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, ErrorResponseCodeBadRequest),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorResponseCodeNotFound),
		sentinelHandler(domain.ErrBackendUnavailable,
			http.StatusServiceUnavailable, ErrorResponseCodeBackendUnavailable),
		sentinelHandler(domain.ErrBackendError, http.StatusBadGateway, ErrorResponseCodeBackendError),
	}
	return s
}

// Routes registers the API endpoints on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/characters", s.ListCharacters)
	r.Get("/suggest", s.Suggest)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, ErrorResponseCodeNotFound, "route not found")
	})
}

// ListCharacters handles GET /characters?page=&q=&<filter>=v1,v2.
func (s *Server) ListCharacters(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	pageNum := page.ParseNumber(query.Get(searchuc.PageParam))
	text := query.Get(searchuc.TextParam)

	listing, err := s.search.List(r.Context(), pageNum, text, filterParams(query, s.cat))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listingToResponse(listing))
}

// Suggest handles GET /suggest?q=&limit=.
func (s *Server) Suggest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	names, err := s.suggest.Suggest(r.Context(), query.Get(searchuc.TextParam), bindInt(query, paramLimit, 0))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, SuggestResponse{Suggestions: names})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// bindInt binds an optional integer query parameter. Absent or malformed
// values yield def.
func bindInt(query url.Values, name string, def int) int {
	if !query.Has(name) {
		return def
	}
	var v int
	if err := runtime.BindQueryParameter("form", true, false, name, query, &v); err != nil {
		return def
	}
	return v
}

// filterParams collects catalog filter parameters. Repeated parameters are
// merged as if they had been comma-joined.
func filterParams(query url.Values, cat *catalog.Catalog) map[string]string {
	params := make(map[string]string)
	for _, key := range cat.Keys() {
		if vs, ok := query[key]; ok {
			params[key] = strings.Join(vs, filter.ValueSeparator)
		}
	}
	return params
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidInput,
		domain.ErrNotFound,
		domain.ErrBackendUnavailable,
		domain.ErrBackendError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContextOr(r.Context(), s.logger)
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorResponseCodeInternalError, "internal error")
}
