package orchestrator

import "errors"

// ErrorKind classifies why an Orchestrator operation failed.
type ErrorKind int

const (
	// ErrorAgentNotFound indicates Dispatch or DispatchMany named an
	// agent the orchestrator has no registration for.
	ErrorAgentNotFound ErrorKind = iota
	// ErrorWorkflowNotFound indicates Signal or Query named a workflow
	// the orchestrator has no record of.
	ErrorWorkflowNotFound
	// ErrorDispatchFailed indicates dispatch machinery itself failed,
	// independent of the dispatched turn's own outcome.
	ErrorDispatchFailed
	// ErrorSignalFailed indicates a signal could not be accepted.
	ErrorSignalFailed
	// ErrorTurnFailed indicates the dispatched turn returned an error;
	// the original is available via Unwrap.
	ErrorTurnFailed
	// ErrorOther covers failures the other kinds do not describe.
	ErrorOther
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorAgentNotFound:
		return "agent_not_found"
	case ErrorWorkflowNotFound:
		return "workflow_not_found"
	case ErrorDispatchFailed:
		return "dispatch_failed"
	case ErrorSignalFailed:
		return "signal_failed"
	case ErrorTurnFailed:
		return "turn_failed"
	default:
		return "other"
	}
}

// Error is the error type every Orchestrator operation returns. It wraps
// at most one layer deep: a turn.Error surfaced through ErrorTurnFailed is
// the leaf, never re-wrapped again by a caller of this package.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

// New constructs an Error of the given kind.
func New(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapTurnError constructs an ErrorTurnFailed Error around a turn's own
// error, which the orchestrator neither interprets nor discards.
func WrapTurnError(cause error) *Error {
	return &Error{Kind: ErrorTurnFailed, Message: "dispatched turn failed", Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Kind.String() + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Kind.String() + ": " + e.Message
}

// Unwrap supports errors.Is/errors.As against the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches the AgentNotFound and WorkflowNotFound sentinels against an
// Error of the corresponding Kind.
func (e *Error) Is(target error) bool {
	switch target {
	case AgentNotFound:
		return e.Kind == ErrorAgentNotFound
	case WorkflowNotFound:
		return e.Kind == ErrorWorkflowNotFound
	}
	return false
}

// AgentNotFound is a sentinel identifying the agent-not-found class for
// errors.Is checks that do not need the offending agent id.
var AgentNotFound = errors.New("orchestrator: agent not found")

// WorkflowNotFound is a sentinel identifying the workflow-not-found class.
var WorkflowNotFound = errors.New("orchestrator: workflow not found")
