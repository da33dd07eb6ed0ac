// Package inmem provides an in-memory runlog.Store, intended for tests
// and local development.
package inmem

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/agentcore/core/id"
	"github.com/agentcore/core/runlog"
)

// Store is an in-memory, concurrency-safe runlog.Store. Event IDs and
// cursors are the event's decimal sequence number within its run.
type Store struct {
	mu   sync.Mutex
	runs map[id.WorkflowId][]*runlog.Event
}

// New returns an empty Store.
func New() *Store {
	return &Store{runs: make(map[id.WorkflowId][]*runlog.Event)}
}

func (s *Store) Append(_ context.Context, e *runlog.Event) error {
	if e == nil {
		return errors.New("runlog: event is required")
	}
	if e.RunID == "" {
		return errors.New("runlog: run id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seq := len(s.runs[e.RunID])
	e.ID = strconv.Itoa(seq)
	s.runs[e.RunID] = append(s.runs[e.RunID], e)
	return nil
}

func (s *Store) List(_ context.Context, runID id.WorkflowId, cursor string, limit int) (runlog.Page, error) {
	if limit <= 0 {
		return runlog.Page{}, errors.New("runlog: limit must be positive")
	}

	start := 0
	if cursor != "" {
		n, err := strconv.Atoi(cursor)
		if err != nil || n < 0 {
			return runlog.Page{}, errors.New("runlog: invalid cursor")
		}
		start = n
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	events := s.runs[runID]
	if start >= len(events) {
		return runlog.Page{}, nil
	}

	end := start + limit
	if end > len(events) {
		end = len(events)
	}

	page := runlog.Page{Events: append([]*runlog.Event(nil), events[start:end]...)}
	if end < len(events) {
		page.NextCursor = strconv.Itoa(end)
	}
	return page, nil
}

var _ runlog.Store = (*Store)(nil)
