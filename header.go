package fakehttp

import "net/http"

// headerEntry is one registered header contribution.
type headerEntry struct {
	key    string
	values []string
}

// headerStore accumulates single and multi-value headers in insertion order.
// Re-registering a key within a category replaces its value in place.
type headerStore struct {
	single []headerEntry
	multi  []headerEntry
}

func (s *headerStore) set(key, value string) {
	s.single = upsert(s.single, key, []string{value})
}

func (s *headerStore) setValues(key string, values []string) {
	s.multi = upsert(s.multi, key, append([]string(nil), values...))
}

// upsert replaces the entry whose key matches key case-insensitively.
func upsert(entries []headerEntry, key string, values []string) []headerEntry {
	canonical := http.CanonicalHeaderKey(key)
	for i := range entries {
		if http.CanonicalHeaderKey(entries[i].key) == canonical {
			entries[i].values = values
			return entries
		}
	}
	return append(entries, headerEntry{key: key, values: values})
}

// apply adds every entry to h, single-value entries first.
func (s *headerStore) apply(h http.Header) {
	if s == nil {
		return
	}
	for _, e := range s.single {
		for _, v := range e.values {
			h.Add(e.key, v)
		}
	}
	for _, e := range s.multi {
		for _, v := range e.values {
			h.Add(e.key, v)
		}
	}
}

func (s *headerStore) has(key string) bool {
	if s == nil {
		return false
	}
	canonical := http.CanonicalHeaderKey(key)
	for _, e := range s.single {
		if http.CanonicalHeaderKey(e.key) == canonical {
			return true
		}
	}
	for _, e := range s.multi {
		if http.CanonicalHeaderKey(e.key) == canonical {
			return true
		}
	}
	return false
}
