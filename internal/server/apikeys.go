package server

import "sync/atomic"

// KeySet is the set of accepted API keys. It is replaced as a whole when
// the keys are refreshed, so readers never see a partial update.
type KeySet struct {
	keys atomic.Pointer[map[string]bool]
}

// NewKeySet creates a set holding keys. Empty strings are dropped.
func NewKeySet(keys []string) *KeySet {
	ks := &KeySet{}
	ks.Replace(keys)
	return ks
}

// Replace swaps in a new set of keys
func (ks *KeySet) Replace(keys []string) {
	// Convert API keys slice to map for O(1) lookup
	m := make(map[string]bool, len(keys))
	for _, key := range keys {
		if key != "" {
			m[key] = true
		}
	}
	ks.keys.Store(&m)
}

// Valid reports whether key is in the set
func (ks *KeySet) Valid(key string) bool {
	return (*ks.keys.Load())[key]
}

// Len is the number of keys; zero means authentication is disabled
func (ks *KeySet) Len() int {
	return len(*ks.keys.Load())
}
