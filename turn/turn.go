// Package turn defines the Turn protocol: the atomic agent cycle. From
// outside the interface, a turn is opaque: pass in a TurnInput, receive a
// TurnOutput or an error. Everything internal (how many inference calls,
// how many tool uses, which context-assembly strategy) is the
// implementation's concern.
package turn

import (
	"context"
	"encoding/json"

	"github.com/agentcore/core/content"
	"github.com/agentcore/core/cost"
	"github.com/agentcore/core/duration"
	"github.com/agentcore/core/effect"
	"github.com/agentcore/core/id"
)

type (
	// Turn encapsulates one cycle of one agent: context assembly,
	// reasoning, tool execution, and production of a complete output.
	//
	// Implementations must be safe to use through dynamic dispatch:
	// composition sites (an Orchestrator's agent registry, an
	// Environment that owns exactly one turn) hold heterogeneous Turn
	// values behind this interface and never know the concrete type.
	// Implementations must also be safe for concurrent use, since
	// Execute is a suspension point that may be called from multiple
	// goroutines for different inputs at once.
	Turn interface {
		// Execute runs one full agent cycle for input and returns a
		// complete TurnOutput, or a TurnError describing why it could
		// not. Execute must never return a partial TurnOutput: an
		// implementation either produces a value that is entirely
		// safe to interpret, or returns an error and no value.
		Execute(ctx context.Context, input TurnInput) (TurnOutput, error)
	}

	// TriggerType classifies what caused a TurnInput to be produced.
	TriggerType string

	// TurnInput is the message that triggers a turn.
	TurnInput struct {
		// Message is the triggering content (a user message, a task
		// description, a signal payload, …).
		Message content.Content
		// Trigger classifies what produced this input.
		Trigger TriggerType
		// SessionID associates this turn with a conversational
		// session, when one exists. Empty for session-less triggers
		// (e.g. a bare scheduled task).
		SessionID *id.SessionId
		// Config carries per-turn overrides. Nil means "use the turn
		// engine's defaults".
		Config *TurnConfig
		// Metadata is an opaque JSON passthrough for tracing ids,
		// routing hints, and other caller-supplied context this
		// module has no opinion about.
		Metadata json.RawMessage
	}

	// TurnConfig carries per-turn overrides. Every field is optional;
	// a nil or zero field means "use the turn engine's default".
	// Construct with NewTurnConfig, not a struct literal, so new
	// optional fields can be added without breaking callers.
	TurnConfig struct {
		// MaxIterations bounds the inner reason/act loop. Zero means
		// no override.
		MaxIterations int
		// MaxCost bounds total spend for this turn. Nil means no
		// override.
		MaxCost *cost.Amount
		// MaxDuration bounds total wall-clock time for this turn.
		// Zero means no override.
		MaxDuration duration.Millis
		// Model overrides the turn engine's default model identifier.
		// Empty means no override.
		Model string
		// ToolAllowList restricts which tools the turn may invoke.
		// Nil means no restriction (the engine's own default set
		// applies).
		ToolAllowList []string
		// SystemInstructionAddendum augments, never replaces, the
		// turn engine's base identity/system instruction.
		SystemInstructionAddendum string
	}

	// ExitReason documents why a turn finished. Concrete reasons other
	// than ObserverHalt and Custom carry no payload.
	ExitReason struct {
		kind         exitKind
		haltReason   string
		customReason string
	}

	// TurnMetadata is always present and always concrete: every field
	// uses its zero value when not applicable, so downstream
	// aggregators never special-case absence.
	TurnMetadata struct {
		// TokensIn is the number of input tokens consumed.
		TokensIn int64
		// TokensOut is the number of output tokens produced.
		TokensOut int64
		// Cost is the total spend incurred by this turn.
		Cost cost.Amount
		// TurnsUsed is how many inner reason/act iterations ran.
		TurnsUsed int
		// ToolCalls records one entry per tool invocation attempted.
		ToolCalls []ToolCallRecord
		// WallDuration is the total time this turn took to execute.
		WallDuration duration.Millis
	}

	// ToolCallRecord captures one tool invocation's outcome.
	ToolCallRecord struct {
		ToolName string
		Duration duration.Millis
		Success  bool
	}

	// TurnOutput is the complete result of a turn. It is always a
	// fully self-contained value: no caller may interpret a TurnOutput
	// before the turn signals completion, and no implementation may
	// construct one partially.
	TurnOutput struct {
		// Message is the turn's completion content.
		Message content.Content
		// Exit documents why the turn finished.
		Exit ExitReason
		// Metadata carries accumulated execution statistics.
		Metadata TurnMetadata
		// Effects is the ordered list of declared side effects this
		// turn wants the calling layer to apply. Effects execute in
		// declared order. An empty list is valid.
		Effects effect.List
	}
)

// TriggerType values.
const (
	TriggerUser     TriggerType = "user"
	TriggerTask     TriggerType = "task"
	TriggerSignal   TriggerType = "signal"
	TriggerSchedule TriggerType = "schedule"
	TriggerSystem   TriggerType = "system_event"
	TriggerCustom   TriggerType = "custom"
)

type exitKind int

const (
	exitComplete exitKind = iota
	exitMaxTurns
	exitBudgetExhausted
	exitCircuitBreaker
	exitTimeout
	exitObserverHalt
	exitError
	exitCancelled
	exitCustom
)

// Exit reason constructors. Use these, never a struct literal, so new
// variants can be added without breaking existing call sites.
var (
	ExitComplete        = ExitReason{kind: exitComplete}
	ExitMaxTurns        = ExitReason{kind: exitMaxTurns}
	ExitBudgetExhausted = ExitReason{kind: exitBudgetExhausted}
	ExitCircuitBreaker  = ExitReason{kind: exitCircuitBreaker}
	ExitTimeout         = ExitReason{kind: exitTimeout}
	ExitError           = ExitReason{kind: exitError}
	// ExitCancelled is reserved for a future exit path but not yet
	// produced by any reference implementation in this module.
	ExitCancelled = ExitReason{kind: exitCancelled}
)

// ExitObserverHalt documents a turn that exited because a Hook returned
// HookAction::Halt.
func ExitObserverHalt(reason string) ExitReason {
	return ExitReason{kind: exitObserverHalt, haltReason: reason}
}

// ExitCustom documents a turn exit reason this module has no built-in
// variant for.
func ExitCustom(reason string) ExitReason {
	return ExitReason{kind: exitCustom, customReason: reason}
}

// String renders a stable, human-readable tag for the exit reason.
func (e ExitReason) String() string {
	switch e.kind {
	case exitComplete:
		return "complete"
	case exitMaxTurns:
		return "max_turns"
	case exitBudgetExhausted:
		return "budget_exhausted"
	case exitCircuitBreaker:
		return "circuit_breaker"
	case exitTimeout:
		return "timeout"
	case exitObserverHalt:
		return "observer_halt: " + e.haltReason
	case exitError:
		return "error"
	case exitCancelled:
		return "cancelled"
	case exitCustom:
		return "custom: " + e.customReason
	default:
		return "unknown"
	}
}

// IsObserverHalt reports whether this is an ObserverHalt exit and, if so,
// returns the halt reason.
func (e ExitReason) IsObserverHalt() (string, bool) {
	if e.kind != exitObserverHalt {
		return "", false
	}
	return e.haltReason, true
}

// IsComplete reports whether the turn finished through natural, successful
// completion.
func (e ExitReason) IsComplete() bool {
	return e.kind == exitComplete
}

// NewTurnConfig returns an empty TurnConfig: every field unset, meaning
// "use the turn engine's defaults" for all of them. Use this instead of a
// struct literal so new optional fields added to TurnConfig in a later
// minor version do not require call-site changes.
func NewTurnConfig() TurnConfig {
	return TurnConfig{}
}

// NewTurnOutput constructs a complete TurnOutput. Use this instead of a
// struct literal at external call sites so new TurnOutput fields can be
// added without breaking callers.
func NewTurnOutput(message content.Content, exit ExitReason, metadata TurnMetadata, effects effect.List) TurnOutput {
	if effects == nil {
		effects = effect.List{}
	}
	return TurnOutput{Message: message, Exit: exit, Metadata: metadata, Effects: effects}
}

// EncodeDelegateInput encodes a TurnInput for carrying inside an
// effect.Delegate.Input field. Package effect cannot import package turn
// (turn already imports effect for TurnOutput.Effects), so a Delegate's
// input travels as opaque JSON and is encoded/decoded from this side of
// the boundary.
func EncodeDelegateInput(in TurnInput) (json.RawMessage, error) {
	return json.Marshal(in)
}

// DecodeDelegateInput decodes a TurnInput previously produced by
// EncodeDelegateInput out of an effect.Delegate.Input field.
func DecodeDelegateInput(raw json.RawMessage) (TurnInput, error) {
	var in TurnInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return TurnInput{}, err
	}
	return in, nil
}
