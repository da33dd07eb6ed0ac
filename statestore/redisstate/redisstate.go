// Package redisstate provides a Redis-backed state.StateStore for
// deployments that need persistence and cross-process visibility beyond
// a single memstate instance. Keys are namespaced by scope so that two
// workflows sharing a Redis instance never see each other's values.
package redisstate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agentcore/core/state"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "agentcore:state:"

// Store implements state.StateStore on top of a *redis.Client. A single
// Store may be shared across goroutines; all methods are safe for
// concurrent use because the underlying client is.
type Store struct {
	rdb *redis.Client
	// TTL, when non-zero, is applied to every Write. A zero TTL means
	// values persist until explicitly deleted.
	TTL time.Duration
}

// New wraps an existing Redis client. The caller owns the client's
// lifecycle and is responsible for closing it.
func New(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func redisKey(scope state.Scope, key string) string {
	return keyPrefix + scope.String() + ":" + key
}

func scopePattern(scope state.Scope, prefix string) string {
	return keyPrefix + scope.String() + ":" + prefix + "*"
}

func (s *Store) Read(ctx context.Context, scope state.Scope, key string) (state.Value, error) {
	v, err := s.rdb.Get(ctx, redisKey(scope, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, state.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redisstate: read %s: %w", key, err)
	}
	return state.Value(v), nil
}

func (s *Store) Write(ctx context.Context, scope state.Scope, key string, value state.Value) error {
	if err := s.rdb.Set(ctx, redisKey(scope, key), []byte(value), s.TTL).Err(); err != nil {
		return fmt.Errorf("redisstate: write %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, scope state.Scope, key string) error {
	if err := s.rdb.Del(ctx, redisKey(scope, key)).Err(); err != nil {
		return fmt.Errorf("redisstate: delete %s: %w", key, err)
	}
	return nil
}

func (s *Store) List(ctx context.Context, scope state.Scope, prefix string) ([]string, error) {
	keys, err := s.scan(ctx, scopePattern(scope, prefix))
	if err != nil {
		return nil, fmt.Errorf("redisstate: list %s: %w", prefix, err)
	}
	base := keyPrefix + scope.String() + ":"
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, strings.TrimPrefix(k, base))
	}
	return out, nil
}

// Search performs a naive substring scan over every value in scope. It
// never returns an error, matching the contract of state.ReadOnlyState's
// Search method, except when the scan against Redis itself fails.
func (s *Store) Search(ctx context.Context, scope state.Scope, query string, limit int) ([]state.SearchResult, error) {
	if query == "" || limit <= 0 {
		return []state.SearchResult{}, nil
	}

	keys, err := s.scan(ctx, scopePattern(scope, ""))
	if err != nil {
		return nil, fmt.Errorf("redisstate: search: %w", err)
	}
	if len(keys) == 0 {
		return []state.SearchResult{}, nil
	}

	base := keyPrefix + scope.String() + ":"
	vals, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redisstate: search mget: %w", err)
	}

	var results []state.SearchResult
	for i, raw := range vals {
		if raw == nil {
			continue
		}
		text, ok := raw.(string)
		if !ok {
			continue
		}
		key := strings.TrimPrefix(keys[i], base)
		if !strings.Contains(text, query) && !strings.Contains(key, query) {
			continue
		}
		score := 0.0
		if strings.Contains(key, query) {
			score += 0.5
		}
		if strings.Contains(text, query) {
			score += 0.5
		}
		snippet := text
		if len(snippet) > 80 {
			snippet = snippet[:80]
		}
		results = append(results, state.SearchResult{Key: key, Score: score, Snippet: &snippet})
	}

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

// scan walks the keyspace with SCAN rather than KEYS so a large Redis
// instance serving other tenants is never blocked by a single call.
func (s *Store) scan(ctx context.Context, pattern string) ([]string, error) {
	var (
		cursor uint64
		keys   []string
	)
	for {
		batch, next, err := s.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return nil, err
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			break
		}
	}
	return keys, nil
}

var _ state.StateStore = (*Store)(nil)
