package mode

// Mode is the listing strategy, decided by the presence of search text.
type Mode string

// Listing mode constants.
const (
	// Browse lists characters by name, optionally filtered.
	Browse Mode = "browse"
	// Search ranks characters by relevance to the search text.
	Search Mode = "search"
)

// For returns Search when text is non-empty, Browse otherwise.
func For(text string) Mode {
	if text != "" {
		return Search
	}
	return Browse
}

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Browse || m == Search
}
