// Package state defines the scoped key/value persistence protocol. A
// StateStore implementation ranges from an in-memory map to a networked KV
// store, embedded SQL, or a version-controlled file hierarchy; callers
// never know which.
//
// Turns never see a StateStore directly. During context assembly they
// receive a ReadOnlyState, a strict subset capability exposing read, list,
// and search but no write or delete, so that all mutation flows through
// declared effects. Every StateStore implementation in this module
// automatically derives its ReadOnlyState via ReadOnly.
package state

import (
	"context"
	"errors"
)

type (
	// Scope is a hierarchical namespace for state values. Scopes are
	// disjoint: a read against Session(s) never returns a key written
	// to Agent{...}. The hierarchy described by the constructors below
	// is documentation of intent, not enforcement: there is no implicit
	// fallback between scopes.
	Scope struct {
		kind     scopeKind
		session  string
		workflow string
		agent    string
		custom   string
	}

	scopeKind int

	// SearchResult is a single hit from a semantic or lexical Search
	// call.
	SearchResult struct {
		Key     string
		Score   float64
		Snippet *string
	}

	// Value is the opaque payload a StateStore persists. Callers decide
	// their own encoding; this module treats it as an immutable byte
	// slice so store implementations can pass it through without
	// re-parsing it.
	Value []byte

	// StateStore is the read/write persistence protocol. Implementations
	// must be safe for concurrent use: Turn::execute, Orchestrator
	// operations, and StateStore operations are all suspension points
	// that may run in arbitrary goroutines.
	StateStore interface {
		ReadOnlyState

		// Write persists value at (scope, key), overwriting any
		// existing value. Within a single scope, reads observe writes
		// in program order after Write returns.
		Write(ctx context.Context, scope Scope, key string, value Value) error

		// Delete removes the value at (scope, key). A no-op, not an
		// error, if the key is absent.
		Delete(ctx context.Context, scope Scope, key string) error
	}

	// ReadOnlyState is the capability a Turn receives during context
	// assembly: read, list, and search, with no write or delete method
	// on the interface at all.
	ReadOnlyState interface {
		// Read returns the value at (scope, key), or ErrNotFound if
		// absent.
		Read(ctx context.Context, scope Scope, key string) (Value, error)

		// List returns the keys in scope whose name has the given
		// prefix. An empty prefix lists every key in the scope.
		List(ctx context.Context, scope Scope, prefix string) ([]string, error)

		// Search performs a semantic or lexical query within scope,
		// returning up to limit results ordered by descending score.
		// An implementation that cannot support semantic search
		// returns an empty slice, never an error.
		Search(ctx context.Context, scope Scope, query string, limit int) ([]SearchResult, error)
	}
)

const (
	scopeGlobal scopeKind = iota
	scopeSession
	scopeWorkflow
	scopeAgent
	scopeCustom
)

// Global is the root scope shared by every workflow and session.
func Global() Scope {
	return Scope{kind: scopeGlobal}
}

// Session scopes state to a single conversational session.
func Session(sessionID string) Scope {
	return Scope{kind: scopeSession, session: sessionID}
}

// Workflow scopes state to a single durable workflow execution.
func Workflow(workflowID string) Scope {
	return Scope{kind: scopeWorkflow, workflow: workflowID}
}

// Agent scopes state to one agent's view within one workflow.
func Agent(workflowID, agentID string) Scope {
	return Scope{kind: scopeAgent, workflow: workflowID, agent: agentID}
}

// Custom scopes state to an application-defined namespace not covered by
// the Session/Workflow/Agent/Global hierarchy.
func Custom(name string) Scope {
	return Scope{kind: scopeCustom, custom: name}
}

// String renders a stable textual key suitable for use as a map key or a
// backend's key prefix. Two distinct Scope values never render to the same
// string.
func (s Scope) String() string {
	switch s.kind {
	case scopeSession:
		return "session/" + s.session
	case scopeWorkflow:
		return "workflow/" + s.workflow
	case scopeAgent:
		return "agent/" + s.workflow + "/" + s.agent
	case scopeCustom:
		return "custom/" + s.custom
	default:
		return "global"
	}
}

// Errors returned by StateStore and ReadOnlyState implementations.
var (
	// ErrNotFound indicates the requested key does not exist in scope.
	ErrNotFound = errors.New("state: key not found")
	// ErrWriteFailed indicates a Write could not be durably committed.
	ErrWriteFailed = errors.New("state: write failed")
	// ErrSerialization indicates a stored value could not be decoded
	// into the shape the caller expected.
	ErrSerialization = errors.New("state: serialization failed")
)

// ReadOnly derives a ReadOnlyState view from any StateStore. The returned
// value exposes no write or delete method at the type level: a caller
// holding only the ReadOnlyState interface value cannot recover the
// underlying StateStore via a type assertion to mutate it through this
// package's API.
func ReadOnly(s StateStore) ReadOnlyState {
	return readOnlyView{s: s}
}

type readOnlyView struct {
	s StateStore
}

func (v readOnlyView) Read(ctx context.Context, scope Scope, key string) (Value, error) {
	return v.s.Read(ctx, scope, key)
}

func (v readOnlyView) List(ctx context.Context, scope Scope, prefix string) ([]string, error) {
	return v.s.List(ctx, scope, prefix)
}

func (v readOnlyView) Search(ctx context.Context, scope Scope, query string, limit int) ([]SearchResult, error) {
	return v.s.Search(ctx, scope, query, limit)
}
