// Package memstate provides an in-memory state.StateStore, the reference
// implementation used by the composition bundle and by tests. Data lives
// only in process memory and is lost on restart.
package memstate

import (
	"context"
	"strings"
	"sync"

	"github.com/agentcore/core/state"
)

// Store implements state.StateStore using a two-level map keyed by scope
// string and key. It is safe for concurrent use; all operations copy
// values defensively so callers cannot mutate stored data through a
// returned slice.
type Store struct {
	mu   sync.RWMutex
	data map[string]map[string]state.Value
}

// New returns an empty Store.
func New() *Store {
	return &Store{data: make(map[string]map[string]state.Value)}
}

func (s *Store) Read(_ context.Context, scope state.Scope, key string) (state.Value, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bucket, ok := s.data[scope.String()]
	if !ok {
		return nil, state.ErrNotFound
	}
	v, ok := bucket[key]
	if !ok {
		return nil, state.ErrNotFound
	}
	return append(state.Value(nil), v...), nil
}

func (s *Store) Write(_ context.Context, scope state.Scope, key string, value state.Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bucket, ok := s.data[scope.String()]
	if !ok {
		bucket = make(map[string]state.Value)
		s.data[scope.String()] = bucket
	}
	bucket[key] = append(state.Value(nil), value...)
	return nil
}

func (s *Store) Delete(_ context.Context, scope state.Scope, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bucket, ok := s.data[scope.String()]
	if !ok {
		return nil
	}
	delete(bucket, key)
	return nil
}

func (s *Store) List(_ context.Context, scope state.Scope, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bucket, ok := s.data[scope.String()]
	if !ok {
		return []string{}, nil
	}
	out := make([]string, 0, len(bucket))
	for k := range bucket {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	return out, nil
}

// Search performs a naive substring match against each key and its stored
// value, scoring 0.5 for a key match plus 0.5 for a value match, and
// orders results by descending score with ties broken by key. It is a
// reference implementation
// and not a replacement for a semantic search backend; it never returns
// an error.
func (s *Store) Search(_ context.Context, scope state.Scope, query string, limit int) ([]state.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bucket, ok := s.data[scope.String()]
	if !ok || query == "" || limit <= 0 {
		return []state.SearchResult{}, nil
	}

	var results []state.SearchResult
	for k, v := range bucket {
		text := string(v)
		if !strings.Contains(text, query) && !strings.Contains(k, query) {
			continue
		}
		score := 0.0
		if strings.Contains(k, query) {
			score += 0.5
		}
		if strings.Contains(text, query) {
			score += 0.5
		}
		snippet := text
		if len(snippet) > 80 {
			snippet = snippet[:80]
		}
		results = append(results, state.SearchResult{Key: k, Score: score, Snippet: &snippet})
	}

	// Stable-ish ordering: highest score first, breaking ties by key.
	for i := 1; i < len(results); i++ {
		for j := i; j > 0 && less(results[j], results[j-1]); j-- {
			results[j], results[j-1] = results[j-1], results[j]
		}
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func less(a, b state.SearchResult) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Key < b.Key
}

var _ state.StateStore = (*Store)(nil)
