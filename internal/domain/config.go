package domain

// KeyPrefix is the default namespace for every key chardex writes.
const KeyPrefix = "chardex:"

// Keyspace derives storage key names from a configurable prefix.
type Keyspace struct {
	prefix string
}

// NewKeyspace creates a Keyspace; an empty prefix falls back to KeyPrefix.
func NewKeyspace(prefix string) Keyspace {
	if prefix == "" {
		prefix = KeyPrefix
	}
	return Keyspace{prefix: prefix}
}

// CharacterPrefix is the hash key prefix covered by the search index.
func (k Keyspace) CharacterPrefix() string { return k.prefix + "character:" }

// CharacterKey returns the hash key of a single character record.
func (k Keyspace) CharacterKey(id string) string { return k.CharacterPrefix() + id }

// CharacterID strips the record prefix from a hash key.
func (k Keyspace) CharacterID(key string) string {
	p := k.CharacterPrefix()
	if len(key) >= len(p) && key[:len(p)] == p {
		return key[len(p):]
	}
	return key
}

// IndexName is the FT index over character hashes.
func (k Keyspace) IndexName() string { return k.prefix + "character:idx" }

// SuggestKey is the autocomplete dictionary for character names. It lives
// outside CharacterPrefix, so record ids never reach it.
func (k Keyspace) SuggestKey() string { return k.prefix + "names" }
