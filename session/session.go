// Package session defines durable session lifecycle and run metadata
// primitives. A Session is the first-class conversational container: a
// workflow run always belongs to a session, and session lifecycle is
// explicit, created and ended independently of workflow lifecycle.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/agentcore/core/id"
)

type (
	// Status is the lifecycle state of a Session.
	Status string

	// RunStatus is the lifecycle state of a workflow run.
	RunStatus string

	// Session captures durable session lifecycle state.
	//
	// Session ids are stable and caller-provided. Sessions are created
	// explicitly via Store.CreateSession and ended explicitly via
	// Store.EndSession. An ended session is terminal: new runs must not
	// start under it.
	Session struct {
		ID        id.SessionId
		Status    Status
		CreatedAt time.Time
		EndedAt   *time.Time
	}

	// RunMeta captures persistent metadata for one workflow run.
	RunMeta struct {
		AgentID   id.AgentId
		RunID     id.WorkflowId
		SessionID id.SessionId
		Status    RunStatus
		StartedAt time.Time
		UpdatedAt time.Time
		Labels    map[string]string
		Metadata  map[string]any
	}

	// Store persists session lifecycle state and run metadata.
	// Implementations must be durable: failures are surfaced to callers
	// so workflows can fail fast when session or run metadata is
	// unavailable.
	Store interface {
		// CreateSession creates, or idempotently returns, an active
		// session. Returns ErrSessionEnded if the session exists but
		// is terminal.
		CreateSession(ctx context.Context, sessionID id.SessionId, createdAt time.Time) (Session, error)
		// LoadSession loads an existing session, or ErrSessionNotFound.
		LoadSession(ctx context.Context, sessionID id.SessionId) (Session, error)
		// EndSession ends a session and returns its terminal state.
		// Idempotent: ending an already-ended session returns the
		// stored session unchanged.
		EndSession(ctx context.Context, sessionID id.SessionId, endedAt time.Time) (Session, error)

		// UpsertRun inserts or updates run metadata.
		UpsertRun(ctx context.Context, run RunMeta) error
		// LoadRun loads run metadata, or ErrRunNotFound.
		LoadRun(ctx context.Context, runID id.WorkflowId) (RunMeta, error)
		// ListRunsBySession lists runs for sessionID. When statuses is
		// non-empty, only runs matching one of the given values are
		// returned.
		ListRunsBySession(ctx context.Context, sessionID id.SessionId, statuses []RunStatus) ([]RunMeta, error)
	}
)

// Session status values.
const (
	StatusActive Status = "active"
	StatusEnded  Status = "ended"
)

// Run status values.
const (
	RunPending   RunStatus = "pending"
	RunRunning   RunStatus = "running"
	RunPaused    RunStatus = "paused"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
	RunCanceled  RunStatus = "canceled"
)

// Sentinel errors returned by Store implementations.
var (
	ErrSessionNotFound = errors.New("session: not found")
	ErrSessionEnded    = errors.New("session: ended")
	ErrRunNotFound     = errors.New("session: run not found")
)
