package request

import (
	"github.com/kailas-cloud/chardex/internal/domain/catalog"
	"github.com/kailas-cloud/chardex/internal/domain/search/filter"
	"github.com/kailas-cloud/chardex/internal/domain/search/mode"
	"github.com/kailas-cloud/chardex/internal/domain/search/query"
)

// Request is a validated listing request.
type Request struct {
	page    int
	text    string
	filters filter.Applied
}

// New validates search text and parses filter parameters.
// Pages below 1 become 1; search text longer than query.MaxTextLength fails
// with domain.ErrInvalidInput.
func New(page int, text string, params map[string]string, cat *catalog.Catalog) (Request, error) {
	normalized, err := query.NormalizeText(text)
	if err != nil {
		return Request{}, err
	}
	if page < 1 {
		page = 1
	}
	return Request{
		page:    page,
		text:    normalized,
		filters: filter.Parse(params, cat),
	}, nil
}

// Page returns the requested page number (>= 1, not yet clamped to the result count).
func (r *Request) Page() int { return r.page }

// Text returns the trimmed search text, empty in browse mode.
func (r *Request) Text() string { return r.text }

// Filters returns the applied filters.
func (r *Request) Filters() filter.Applied { return r.filters }

// Mode returns the listing strategy.
func (r *Request) Mode() mode.Mode { return mode.For(r.text) }
