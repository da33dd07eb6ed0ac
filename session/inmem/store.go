// Package inmem provides an in-memory session.Store, intended for tests
// and local development. Production deployments should use a durable
// implementation backed by a networked store.
package inmem

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/agentcore/core/id"
	"github.com/agentcore/core/session"
)

// Store is an in-memory, concurrency-safe session.Store.
type Store struct {
	mu       sync.RWMutex
	sessions map[id.SessionId]session.Session
	runs     map[id.WorkflowId]session.RunMeta
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		sessions: make(map[id.SessionId]session.Session),
		runs:     make(map[id.WorkflowId]session.RunMeta),
	}
}

func (s *Store) CreateSession(_ context.Context, sessionID id.SessionId, createdAt time.Time) (session.Session, error) {
	if sessionID == "" {
		return session.Session{}, errors.New("session: session id is required")
	}
	if createdAt.IsZero() {
		return session.Session{}, errors.New("session: created_at is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.sessions[sessionID]; ok {
		if existing.Status == session.StatusEnded {
			return session.Session{}, session.ErrSessionEnded
		}
		return cloneSession(existing), nil
	}

	out := session.Session{ID: sessionID, Status: session.StatusActive, CreatedAt: createdAt.UTC()}
	s.sessions[sessionID] = out
	return cloneSession(out), nil
}

func (s *Store) LoadSession(_ context.Context, sessionID id.SessionId) (session.Session, error) {
	if sessionID == "" {
		return session.Session{}, errors.New("session: session id is required")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	existing, ok := s.sessions[sessionID]
	if !ok {
		return session.Session{}, session.ErrSessionNotFound
	}
	return cloneSession(existing), nil
}

func (s *Store) EndSession(_ context.Context, sessionID id.SessionId, endedAt time.Time) (session.Session, error) {
	if sessionID == "" {
		return session.Session{}, errors.New("session: session id is required")
	}
	if endedAt.IsZero() {
		return session.Session{}, errors.New("session: ended_at is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.sessions[sessionID]
	if !ok {
		return session.Session{}, session.ErrSessionNotFound
	}
	if existing.Status == session.StatusEnded {
		return cloneSession(existing), nil
	}
	at := endedAt.UTC()
	existing.Status = session.StatusEnded
	existing.EndedAt = &at
	s.sessions[sessionID] = existing
	return cloneSession(existing), nil
}

func (s *Store) UpsertRun(_ context.Context, run session.RunMeta) error {
	if run.RunID == "" {
		return errors.New("session: run id is required")
	}
	if run.AgentID == "" {
		return errors.New("session: agent id is required")
	}
	if run.SessionID == "" {
		return errors.New("session: session id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if existing, ok := s.runs[run.RunID]; ok && !existing.StartedAt.IsZero() {
		if run.StartedAt.IsZero() {
			run.StartedAt = existing.StartedAt
		} else if !run.StartedAt.Equal(existing.StartedAt) {
			return errors.New("session: started_at is immutable")
		}
	} else if run.StartedAt.IsZero() {
		run.StartedAt = now
	}
	run.UpdatedAt = now
	s.runs[run.RunID] = cloneRunMeta(run)
	return nil
}

func (s *Store) LoadRun(_ context.Context, runID id.WorkflowId) (session.RunMeta, error) {
	if runID == "" {
		return session.RunMeta{}, errors.New("session: run id is required")
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[runID]
	if !ok {
		return session.RunMeta{}, session.ErrRunNotFound
	}
	return cloneRunMeta(run), nil
}

func (s *Store) ListRunsBySession(_ context.Context, sessionID id.SessionId, statuses []session.RunStatus) ([]session.RunMeta, error) {
	if sessionID == "" {
		return nil, errors.New("session: session id is required")
	}
	var allowed map[session.RunStatus]struct{}
	if len(statuses) > 0 {
		allowed = make(map[session.RunStatus]struct{}, len(statuses))
		for _, st := range statuses {
			allowed[st] = struct{}{}
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]session.RunMeta, 0, len(s.runs))
	for _, run := range s.runs {
		if run.SessionID != sessionID {
			continue
		}
		if allowed != nil {
			if _, ok := allowed[run.Status]; !ok {
				continue
			}
		}
		out = append(out, cloneRunMeta(run))
	}
	return out, nil
}

func cloneSession(in session.Session) session.Session {
	out := in
	if in.EndedAt != nil {
		at := *in.EndedAt
		out.EndedAt = &at
	}
	return out
}

func cloneRunMeta(in session.RunMeta) session.RunMeta {
	out := in
	if len(in.Labels) > 0 {
		out.Labels = make(map[string]string, len(in.Labels))
		for k, v := range in.Labels {
			out.Labels[k] = v
		}
	}
	if len(in.Metadata) > 0 {
		out.Metadata = make(map[string]any, len(in.Metadata))
		for k, v := range in.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

var _ session.Store = (*Store)(nil)
