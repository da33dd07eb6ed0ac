// Package echoturn provides the simplest possible turn.Turn: it echoes
// its input back as output, optionally recording a memory write. It
// exists to exercise the composition bundle (dispatcher, passthrough
// environment, logging hook) end to end without depending on a model
// provider.
package echoturn

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/agentcore/core/content"
	"github.com/agentcore/core/cost"
	"github.com/agentcore/core/effect"
	"github.com/agentcore/core/state"
	"github.com/agentcore/core/turn"
)

// Turn echoes its TurnInput's message back as the TurnOutput's message.
// When MemoryScope is set, it also declares a WriteMemory effect
// recording the echoed text, so callers can see effect application
// happen against a real state.StateStore.
type Turn struct {
	// Prefix is prepended to the echoed text. Empty means no prefix.
	Prefix string
	// MemoryScope, if non-nil, causes Execute to declare a WriteMemory
	// effect storing the echoed text at (MemoryScope, MemoryKey).
	MemoryScope *state.Scope
	// MemoryKey names the key written when MemoryScope is set. Defaults
	// to "echo/last" when empty.
	MemoryKey string
}

// New returns a Turn with no prefix and no memory recording.
func New() *Turn {
	return &Turn{}
}

func (t *Turn) Execute(_ context.Context, input turn.TurnInput) (turn.TurnOutput, error) {
	text, ok := input.Message.TextValue()
	if !ok {
		blocks, _ := input.Message.Blocks()
		text = fmt.Sprintf("<%d content blocks>", len(blocks))
	}

	out := text
	if t.Prefix != "" {
		out = t.Prefix + out
	}

	var effects effect.List
	if t.MemoryScope != nil {
		key := t.MemoryKey
		if key == "" {
			key = "echo/last"
		}
		encoded, err := json.Marshal(out)
		if err != nil {
			return turn.TurnOutput{}, err
		}
		effects = append(effects, effect.WriteMemory{
			Scope: *t.MemoryScope,
			Key:   key,
			Value: encoded,
		})
	}

	metadata := turn.TurnMetadata{
		TokensIn:  int64(len(text)),
		TokensOut: int64(len(out)),
		Cost:      cost.FromFloat(0),
		TurnsUsed: 1,
	}

	return turn.NewTurnOutput(content.Text(out), turn.ExitComplete, metadata, effects), nil
}

var _ turn.Turn = (*Turn)(nil)
