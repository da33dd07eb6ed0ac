package state

import (
	"encoding/json"
	"fmt"
)

// scopeWire is Scope's wire shape: a "kind" discriminator plus whichever
// field that kind populates. Mirrors the internally-tagged pattern used
// by content.Block.
type scopeWire struct {
	Kind     string `json:"kind"`
	Session  string `json:"session,omitempty"`
	Workflow string `json:"workflow,omitempty"`
	Agent    string `json:"agent,omitempty"`
	Custom   string `json:"custom,omitempty"`
}

// MarshalJSON renders Scope as a tagged object so the scope a Write,
// Delete, WriteMemory, or DeleteMemory effect targets survives any JSON
// boundary (an effect queue, a durable workflow history, a wire call)
// intact rather than collapsing to its zero value.
func (s Scope) MarshalJSON() ([]byte, error) {
	wire := scopeWire{}
	switch s.kind {
	case scopeGlobal:
		wire.Kind = "global"
	case scopeSession:
		wire.Kind = "session"
		wire.Session = s.session
	case scopeWorkflow:
		wire.Kind = "workflow"
		wire.Workflow = s.workflow
	case scopeAgent:
		wire.Kind = "agent"
		wire.Workflow = s.workflow
		wire.Agent = s.agent
	case scopeCustom:
		wire.Kind = "custom"
		wire.Custom = s.custom
	default:
		return nil, fmt.Errorf("state: cannot marshal scope of unknown kind %d", s.kind)
	}
	return json.Marshal(wire)
}

// UnmarshalJSON decodes a Scope from its tagged wire form.
func (s *Scope) UnmarshalJSON(data []byte) error {
	var wire scopeWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("state: decode scope: %w", err)
	}
	switch wire.Kind {
	case "", "global":
		*s = Global()
	case "session":
		*s = Session(wire.Session)
	case "workflow":
		*s = Workflow(wire.Workflow)
	case "agent":
		*s = Agent(wire.Workflow, wire.Agent)
	case "custom":
		*s = Custom(wire.Custom)
	default:
		return fmt.Errorf("state: unrecognized scope kind %q", wire.Kind)
	}
	return nil
}
