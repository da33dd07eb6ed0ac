// Package id defines the opaque typed identifiers that cross every protocol
// boundary in this module. Each identifier is a string newtype so that an
// AgentId cannot be passed where a SessionId is expected by accident, while
// still round-tripping through JSON as a bare string.
package id

import "github.com/google/uuid"

type (
	// AgentId identifies an agent registered with an Orchestrator. It carries
	// no format constraint beyond non-empty; callers are free to use a flat
	// name ("billing-agent") or a qualified one ("service.agent").
	AgentId string

	// SessionId identifies a conversational session that groups related runs.
	SessionId string

	// WorkflowId identifies a durable workflow execution, the unit a Signal
	// is addressed to and a Query is issued against.
	WorkflowId string

	// ScopeId identifies a Scope::Custom namespace for state values that do
	// not fit the Session/Workflow/Agent/Global hierarchy.
	ScopeId string
)

// NewAgentId returns a new AgentId. Returns an error if name is empty.
func NewAgentId(name string) (AgentId, error) {
	if name == "" {
		return "", errEmpty("agent id")
	}
	return AgentId(name), nil
}

// NewSessionId returns a new SessionId. Returns an error if name is empty.
func NewSessionId(name string) (SessionId, error) {
	if name == "" {
		return "", errEmpty("session id")
	}
	return SessionId(name), nil
}

// NewWorkflowId returns a new WorkflowId. Returns an error if name is empty.
func NewWorkflowId(name string) (WorkflowId, error) {
	if name == "" {
		return "", errEmpty("workflow id")
	}
	return WorkflowId(name), nil
}

// NewScopeId returns a new ScopeId. Returns an error if name is empty.
func NewScopeId(name string) (ScopeId, error) {
	if name == "" {
		return "", errEmpty("scope id")
	}
	return ScopeId(name), nil
}

// GenerateSessionId returns a fresh, random SessionId suitable for a new
// conversation when the caller has no existing identifier to reuse.
func GenerateSessionId() SessionId {
	return SessionId(uuid.NewString())
}

// GenerateWorkflowId returns a fresh, random WorkflowId suitable for
// addressing a new durable execution.
func GenerateWorkflowId() WorkflowId {
	return WorkflowId(uuid.NewString())
}

func errEmpty(kind string) error {
	return &emptyIDError{kind: kind}
}

type emptyIDError struct{ kind string }

func (e *emptyIDError) Error() string { return e.kind + " must not be empty" }
