package result

// Hit is a single search backend match, in backend order.
type Hit struct {
	id    string
	score float64
}

// NewHit creates a search hit.
func NewHit(id string, score float64) Hit {
	return Hit{id: id, score: score}
}

// ID returns the character identifier.
func (h Hit) ID() string { return h.id }

// Score returns the relevance score (0 in browse mode).
func (h Hit) Score() float64 { return h.score }

// IDs extracts identifiers preserving hit order.
func IDs(hits []Hit) []string {
	ids := make([]string, len(hits))
	for i, h := range hits {
		ids[i] = h.id
	}
	return ids
}

// Item is a display-ready listing row.
type Item struct {
	ID   string
	Name string
}
