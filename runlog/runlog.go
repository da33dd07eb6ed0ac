// Package runlog provides a durable, append-only event log for workflow
// runs. It is the canonical source of truth for run introspection:
// orchestrators and hooks append events as runs execute, and callers list
// them using opaque, store-owned cursors.
package runlog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/agentcore/core/id"
)

type (
	// Event is a single immutable run event appended to the log. Store
	// implementations assign ID when persisting, opaque and
	// monotonically ordered within a run, suitable for cursor-based
	// pagination.
	Event struct {
		ID         string
		RunID      id.WorkflowId
		AgentID    id.AgentId
		SessionID  id.SessionId
		Type       string
		Payload    json.RawMessage
		Timestamp  time.Time
	}

	// Page is a forward page of run events, ordered oldest-first.
	Page struct {
		Events []*Event
		// NextCursor fetches the following page; empty when there are
		// no further events.
		NextCursor string
	}

	// Store is an append-only event store for run introspection.
	// Implementations must provide stable ordering within a run; cursor
	// values are store-owned and opaque to callers.
	Store interface {
		// Append stores e in the run log, assigning its ID and
		// persisting the payload verbatim. Append must be durable:
		// failures are surfaced to callers so a workflow can fail fast
		// when canonical logging is unavailable.
		Append(ctx context.Context, e *Event) error

		// List returns the next forward page of events for runID.
		// cursor is empty to start from the beginning, or a value
		// previously returned as NextCursor. limit must be positive.
		List(ctx context.Context, runID id.WorkflowId, cursor string, limit int) (Page, error)
	}
)
