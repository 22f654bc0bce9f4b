package kv

import (
	"iter"
	"slices"

	"github.com/indigo-web/utils/strcomp"
)

type Pair struct {
	Key, Value string
}

// Storage is an associative structure for storing (string, string) pairs. It acts as a map but
// uses linear search instead, which proves to be more efficient on relatively low amount of
// entries, which often enough is the case.
//
// Keys are case-sensitive and unique: setting an already present key overrides its value
// in place, so the insertion order of the first occurrence is preserved.
type Storage struct {
	pairs []Pair
}

func New() *Storage {
	return new(Storage)
}

// NewPrealloc returns an instance of Storage with pre-allocated underlying storage.
func NewPrealloc(n int) *Storage {
	return &Storage{
		pairs: make([]Pair, 0, n),
	}
}

// NewFromMap returns a new instance with already inserted values from given map. Keys are
// inserted in sorted order, so the result is the same for equal maps.
func NewFromMap(m map[string]string) *Storage {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	slices.Sort(keys)
	kv := NewPrealloc(len(keys))

	for _, key := range keys {
		kv.Set(key, m[key])
	}

	return kv
}

// Set inserts the pair or overrides the value of an already present key.
func (s *Storage) Set(key, value string) *Storage {
	for i := range s.pairs {
		if s.pairs[i].Key == key {
			s.pairs[i].Value = value
			return s
		}
	}

	s.pairs = append(s.pairs, Pair{
		Key:   key,
		Value: value,
	})
	return s
}

// DeleteFold removes every pair whose key matches case-insensitively.
func (s *Storage) DeleteFold(key string) *Storage {
	s.pairs = slices.DeleteFunc(s.pairs, func(pair Pair) bool {
		return strcomp.EqualFold(pair.Key, key)
	})

	return s
}

// Value returns the value, corresponding to the key. Otherwise, empty string is returned
func (s *Storage) Value(key string) string {
	return s.ValueOr(key, "")
}

// ValueOr returns either the value corresponding to the key or custom value, defined
// via the second parameter.
func (s *Storage) ValueOr(key, or string) string {
	value, found := s.Get(key)
	if !found {
		return or
	}

	return value
}

// Get returns a value and a bool, indicating whether the value was found. If it wasn't, it'll
// be an empty string.
func (s *Storage) Get(key string) (value string, found bool) {
	for _, pair := range s.pairs {
		if pair.Key == key {
			return pair.Value, true
		}
	}

	return "", false
}

// GetFold behaves as Get, but compares keys case-insensitively. The first matching pair wins.
func (s *Storage) GetFold(key string) (value string, found bool) {
	for _, pair := range s.pairs {
		if strcomp.EqualFold(pair.Key, key) {
			return pair.Value, true
		}
	}

	return "", false
}

// Has indicates, whether there's an entry of the key.
func (s *Storage) Has(key string) bool {
	_, found := s.Get(key)
	return found
}

// HasFold is a case-insensitive Has.
func (s *Storage) HasFold(key string) bool {
	_, found := s.GetFold(key)
	return found
}

// Iter returns an iterator over the pairs.
func (s *Storage) Iter() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, pair := range s.pairs {
			if !yield(pair.Key, pair.Value) {
				break
			}
		}
	}
}

// Merge sets every pair of other into s. Values from other win.
func (s *Storage) Merge(other *Storage) *Storage {
	if other == nil {
		return s
	}

	for _, pair := range other.pairs {
		s.Set(pair.Key, pair.Value)
	}

	return s
}

// Len returns a number of stored pairs.
func (s *Storage) Len() int {
	return len(s.pairs)
}

// Expose exposes the underlying pairs slice.
func (s *Storage) Expose() []Pair {
	return s.pairs
}

// Map returns the pairs as a map.
func (s *Storage) Map() map[string]string {
	m := make(map[string]string, len(s.pairs))
	for _, pair := range s.pairs {
		m[pair.Key] = pair.Value
	}

	return m
}
