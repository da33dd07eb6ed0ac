package turn

import (
	"encoding/json"
	"fmt"
)

// exitReasonWire is ExitReason's wire shape: a "kind" discriminator plus
// whichever payload field that kind populates.
type exitReasonWire struct {
	Kind         string `json:"kind"`
	HaltReason   string `json:"halt_reason,omitempty"`
	CustomReason string `json:"custom_reason,omitempty"`
}

// MarshalJSON renders ExitReason as a tagged object so it survives any
// JSON boundary (a durable workflow history, a wire call) intact. Without
// this, the zero value one would decode back into is always
// ExitComplete, silently rewriting every other exit reason.
func (e ExitReason) MarshalJSON() ([]byte, error) {
	wire := exitReasonWire{}
	switch e.kind {
	case exitComplete:
		wire.Kind = "complete"
	case exitMaxTurns:
		wire.Kind = "max_turns"
	case exitBudgetExhausted:
		wire.Kind = "budget_exhausted"
	case exitCircuitBreaker:
		wire.Kind = "circuit_breaker"
	case exitTimeout:
		wire.Kind = "timeout"
	case exitObserverHalt:
		wire.Kind = "observer_halt"
		wire.HaltReason = e.haltReason
	case exitError:
		wire.Kind = "error"
	case exitCancelled:
		wire.Kind = "cancelled"
	case exitCustom:
		wire.Kind = "custom"
		wire.CustomReason = e.customReason
	default:
		return nil, fmt.Errorf("turn: cannot marshal exit reason of unknown kind %d", e.kind)
	}
	return json.Marshal(wire)
}

// UnmarshalJSON decodes an ExitReason from its tagged wire form.
func (e *ExitReason) UnmarshalJSON(data []byte) error {
	var wire exitReasonWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("turn: decode exit reason: %w", err)
	}
	switch wire.Kind {
	case "", "complete":
		*e = ExitComplete
	case "max_turns":
		*e = ExitMaxTurns
	case "budget_exhausted":
		*e = ExitBudgetExhausted
	case "circuit_breaker":
		*e = ExitCircuitBreaker
	case "timeout":
		*e = ExitTimeout
	case "observer_halt":
		*e = ExitObserverHalt(wire.HaltReason)
	case "error":
		*e = ExitError
	case "cancelled":
		*e = ExitCancelled
	case "custom":
		*e = ExitCustom(wire.CustomReason)
	default:
		return fmt.Errorf("turn: unrecognized exit reason kind %q", wire.Kind)
	}
	return nil
}
