// Package effect defines the declarative side-effect vocabulary a Turn
// produces in its TurnOutput. A turn never mutates state directly: every
// observable mutation it wants applied is expressed as a value in this
// package, and the calling layer, the orchestrator, executes it against a
// state.StateStore, delivers it as a signal, or logs it.
//
// Declaring effects instead of performing them makes turns testable
// (capture the intended mutation without running it), durable (replay can
// skip already-applied mutations by consulting a journal), and observable
// (the orchestrator can reject, reorder within policy, or batch them).
package effect

import (
	"encoding/json"
	"fmt"

	"github.com/agentcore/core/id"
	"github.com/agentcore/core/state"
)

type (
	// Effect is the marker interface implemented by every effect
	// variant. Concrete types are WriteMemory, DeleteMemory, Signal,
	// Delegate, Handoff, Log, and Custom.
	Effect interface {
		// Kind returns the wire discriminator for this effect.
		Kind() string
		isEffect()
	}

	// WriteMemory persists a value at (scope, key). Two successive
	// WriteMemory effects with the same value are equivalent to one.
	WriteMemory struct {
		Scope state.Scope
		Key   string
		Value json.RawMessage
	}

	// DeleteMemory removes the value at (scope, key). A no-op if the key
	// is absent.
	DeleteMemory struct {
		Scope state.Scope
		Key   string
	}

	// Signal delivers a fire-and-forget message to a running workflow.
	// Signals to the same Target are ordered; across targets they are
	// not.
	Signal struct {
		Target  id.WorkflowId
		Payload json.RawMessage
	}

	// Delegate dispatches a new turn to another agent. Unlike Signal,
	// Delegate starts a fresh unit of work and is expected to produce
	// its own TurnOutput; the calling layer decides whether to await it
	// inline or dispatch it asynchronously.
	//
	// Input is an opaque, encoded turn.TurnInput rather than a typed
	// field: package effect sits below package turn in this module's
	// dependency graph and must not import it. Callers build and read
	// this field with turn.EncodeDelegateInput / turn.DecodeDelegateInput.
	Delegate struct {
		Agent id.AgentId
		Input json.RawMessage
	}

	// Handoff transfers an in-flight conversation to a different agent,
	// carrying opaque state the receiving agent needs to resume context.
	// Unlike Delegate, a Handoff does not start a new, independent unit
	// of work: it hands the current one to a new owner.
	Handoff struct {
		Agent id.AgentId
		State json.RawMessage
	}

	// Log requests a structured log line be emitted by the calling
	// layer on the turn's behalf, outside the turn's own process
	// boundary (useful for environments that isolate a turn's stdio).
	Log struct {
		Level   LogLevel
		Message string
		Data    json.RawMessage
	}

	// Custom is the open-ended escape hatch for forward-compatible effect
	// types: new effect kinds are additive via this variant.
	Custom struct {
		EffectType string
		Data       json.RawMessage
	}

	// Unknown is what an unrecognized "type" discriminator decodes to:
	// the orchestrator can choose to ignore it, log it, or treat it as
	// a Custom effect by re-reading Raw.
	Unknown struct {
		RawType string
		Raw     json.RawMessage
	}

	// LogLevel mirrors the standard severities used by telemetry.Logger.
	LogLevel string
)

// LogLevel values.
const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// Kind discriminator constants.
const (
	KindWriteMemory  = "write_memory"
	KindDeleteMemory = "delete_memory"
	KindSignal       = "signal"
	KindDelegate     = "delegate"
	KindHandoff      = "handoff"
	KindLog          = "log"
	KindCustom       = "custom"
)

func (WriteMemory) Kind() string  { return KindWriteMemory }
func (DeleteMemory) Kind() string { return KindDeleteMemory }
func (Signal) Kind() string       { return KindSignal }
func (Delegate) Kind() string     { return KindDelegate }
func (Handoff) Kind() string      { return KindHandoff }
func (Log) Kind() string          { return KindLog }
func (Custom) Kind() string       { return KindCustom }
func (u Unknown) Kind() string    { return u.RawType }

func (WriteMemory) isEffect()  {}
func (DeleteMemory) isEffect() {}
func (Signal) isEffect()       {}
func (Delegate) isEffect()     {}
func (Handoff) isEffect()      {}
func (Log) isEffect()          {}
func (Custom) isEffect()       {}
func (Unknown) isEffect()      {}

// MarshalJSON renders any Effect with a "type" discriminator, the
// externally-tagged representation.
func MarshalJSON(e Effect) ([]byte, error) {
	switch v := e.(type) {
	case WriteMemory:
		return json.Marshal(struct {
			Type string `json:"type"`
			WriteMemory
		}{Type: KindWriteMemory, WriteMemory: v})
	case DeleteMemory:
		return json.Marshal(struct {
			Type string `json:"type"`
			DeleteMemory
		}{Type: KindDeleteMemory, DeleteMemory: v})
	case Signal:
		return json.Marshal(struct {
			Type string `json:"type"`
			Signal
		}{Type: KindSignal, Signal: v})
	case Delegate:
		return json.Marshal(struct {
			Type string `json:"type"`
			Delegate
		}{Type: KindDelegate, Delegate: v})
	case Handoff:
		return json.Marshal(struct {
			Type string `json:"type"`
			Handoff
		}{Type: KindHandoff, Handoff: v})
	case Log:
		return json.Marshal(struct {
			Type string `json:"type"`
			Log
		}{Type: KindLog, Log: v})
	case Custom:
		return json.Marshal(struct {
			Type string `json:"type"`
			Custom
		}{Type: KindCustom, Custom: v})
	case Unknown:
		return v.Raw, nil
	default:
		return nil, fmt.Errorf("effect: cannot marshal unregistered type %T", e)
	}
}

// UnmarshalJSON decodes a single Effect value from its externally-tagged
// wire form. An unrecognized "type" tag decodes to Unknown rather than
// failing.
func UnmarshalJSON(data []byte) (Effect, error) {
	var discr struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &discr); err != nil {
		return nil, fmt.Errorf("effect: decode discriminator: %w", err)
	}
	switch discr.Type {
	case KindWriteMemory:
		var v WriteMemory
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return v, nil
	case KindDeleteMemory:
		var v DeleteMemory
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return v, nil
	case KindSignal:
		var v Signal
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return v, nil
	case KindDelegate:
		var v Delegate
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return v, nil
	case KindHandoff:
		var v Handoff
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return v, nil
	case KindLog:
		var v Log
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return v, nil
	case KindCustom:
		var v Custom
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return Unknown{RawType: discr.Type, Raw: append(json.RawMessage(nil), data...)}, nil
	}
}

// List is an ordered sequence of effects, exactly the shape TurnOutput
// carries. Effects within a single TurnOutput execute in declared order.
type List []Effect

// MarshalJSON renders the list as a JSON array of externally-tagged effect
// objects.
func (l List) MarshalJSON() ([]byte, error) {
	raws := make([]json.RawMessage, 0, len(l))
	for i, e := range l {
		raw, err := MarshalJSON(e)
		if err != nil {
			return nil, fmt.Errorf("marshal effect %d: %w", i, err)
		}
		raws = append(raws, raw)
	}
	if raws == nil {
		raws = []json.RawMessage{}
	}
	return json.Marshal(raws)
}

// UnmarshalJSON decodes a JSON array of externally-tagged effect objects.
func (l *List) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	out := make(List, 0, len(raws))
	for i, raw := range raws {
		e, err := UnmarshalJSON(raw)
		if err != nil {
			return fmt.Errorf("decode effect %d: %w", i, err)
		}
		out = append(out, e)
	}
	*l = out
	return nil
}
