// Package hook defines the Hook interface: cross-cutting observation and
// policy intervention inside a turn's inner loop. Hooks are registered
// externally, by the orchestrator or the environment, and the turn
// invokes them at defined points without knowing the identity or
// intentions of the observer.
//
// Hook handlers sit on the hot path: a hook at pre-tool-use that makes a
// network call adds that latency to every tool use in every turn that
// registers it. This package imposes no latency bound; the cost of a
// hook is its author's responsibility.
package hook

import (
	"context"
	"encoding/json"

	"github.com/agentcore/core/cost"
	"github.com/agentcore/core/duration"
)

type (
	// Point names a place in a turn's inner loop where hooks are
	// invoked.
	Point string

	// Context is the read-only view a turn passes to a hook at Point.
	// Fields not applicable to the current Point are left at their
	// zero value; ToolName, ToolInput, ToolResult, and ModelOutput are
	// populated only at the points where they make sense.
	Context struct {
		Point Point

		ToolName    string
		ToolInput   json.RawMessage
		ToolResult  json.RawMessage
		ModelOutput json.RawMessage

		TokensUsed int64
		Cost       cost.Amount
		TurnsUsed  int
		Elapsed    duration.Millis
	}

	// Action is the tagged decision a Hook returns. Exactly one
	// constructor function below should be used to build a value; the
	// zero Action is equivalent to Continue.
	Action struct {
		kind          actionKind
		haltReason    string
		skipReason    string
		modifiedInput json.RawMessage
	}

	actionKind int

	// Hook observes a turn's inner loop and may intervene.
	//
	// Implementations must be safe for concurrent use: the same Hook
	// value may be registered with multiple turns executing at once.
	Hook interface {
		// OnEvent is invoked synchronously at hc.Point, on the turn's
		// own goroutine. Returning a non-nil error does not halt the
		// turn; the turn logs the error and proceeds as though
		// Continue had been returned. Intentional halting is expressed
		// through the returned Action, not through error.
		OnEvent(ctx context.Context, hc Context) (Action, error)
	}
)

// Point values.
const (
	PreInference  Point = "pre_inference"
	PostInference Point = "post_inference"
	PreToolUse    Point = "pre_tool_use"
	PostToolUse   Point = "post_tool_use"
	ExitCheck     Point = "exit_check"
)

const (
	actionContinue actionKind = iota
	actionHalt
	actionSkipTool
	actionModifyToolInput
)

// Continue lets the turn proceed unmodified.
var Continue = Action{kind: actionContinue}

// Halt causes the turn to exit with ExitReason.ObserverHalt(reason).
func Halt(reason string) Action {
	return Action{kind: actionHalt, haltReason: reason}
}

// SkipTool is only valid as a response at PreToolUse. It replaces the
// pending tool call with a synthesized "skipped by policy" tool result
// rather than executing it.
func SkipTool(reason string) Action {
	return Action{kind: actionSkipTool, skipReason: reason}
}

// ModifyToolInput is only valid as a response at PreToolUse. It
// substitutes newInput for the tool's input before execution.
func ModifyToolInput(newInput json.RawMessage) Action {
	return Action{kind: actionModifyToolInput, modifiedInput: newInput}
}

// IsContinue reports whether a is Continue.
func (a Action) IsContinue() bool { return a.kind == actionContinue }

// IsHalt reports whether a is Halt and, if so, returns the halt reason.
func (a Action) IsHalt() (string, bool) {
	if a.kind != actionHalt {
		return "", false
	}
	return a.haltReason, true
}

// IsSkipTool reports whether a is SkipTool and, if so, returns the skip
// reason.
func (a Action) IsSkipTool() (string, bool) {
	if a.kind != actionSkipTool {
		return "", false
	}
	return a.skipReason, true
}

// IsModifyToolInput reports whether a is ModifyToolInput and, if so,
// returns the replacement input.
func (a Action) IsModifyToolInput() (json.RawMessage, bool) {
	if a.kind != actionModifyToolInput {
		return nil, false
	}
	return a.modifiedInput, true
}
