package turn

import "errors"

// ErrorKind classifies why a Turn failed to produce a TurnOutput.
type ErrorKind int

const (
	// ErrorModel indicates the underlying model call failed (provider
	// error, malformed response, refused request).
	ErrorModel ErrorKind = iota
	// ErrorTool indicates a named tool invocation failed in a way the
	// turn could not recover from inline.
	ErrorTool
	// ErrorContextAssembly indicates context could not be assembled
	// (state read failure, missing required input).
	ErrorContextAssembly
	// ErrorRetryable indicates a transient failure an orchestrator may
	// choose to retry. A turn never retries itself.
	ErrorRetryable
	// ErrorNonRetryable indicates a failure no layer should retry.
	ErrorNonRetryable
	// ErrorOther covers failures the other kinds do not describe.
	ErrorOther
)

// String renders a stable, lowercase tag for the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrorModel:
		return "model"
	case ErrorTool:
		return "tool"
	case ErrorContextAssembly:
		return "context_assembly"
	case ErrorRetryable:
		return "retryable"
	case ErrorNonRetryable:
		return "non_retryable"
	default:
		return "other"
	}
}

// Error is the error type every Turn implementation returns from Execute.
// Nesting is limited to a single wrapped Cause; callers above this layer
// (an Orchestrator) wrap Error at most once more, never deeper.
type Error struct {
	Kind    ErrorKind
	Message string
	// ToolName names the tool involved, when Kind is ErrorTool. Empty
	// otherwise.
	ToolName string
	Cause    error
}

// New constructs an Error of the given kind.
func New(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// NewToolError constructs an ErrorTool Error naming the failing tool.
func NewToolError(toolName, message string) *Error {
	return &Error{Kind: ErrorTool, Message: message, ToolName: toolName}
}

// Wrap constructs an Error of the given kind wrapping cause.
func Wrap(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
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

// IsRetryable reports whether an orchestrator may retry the operation that
// produced err. A turn never decides this for itself.
func IsRetryable(err error) bool {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind == ErrorRetryable
	}
	return false
}
