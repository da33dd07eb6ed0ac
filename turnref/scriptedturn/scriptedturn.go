// Package scriptedturn provides a deterministic turn.Turn driven by a
// fixed, pre-programmed sequence of steps rather than a model call. It
// exists for tests and demos that need reproducible, replayable turn
// behavior: the same sequence of TurnInput values against a fresh Turn
// always produces the same sequence of TurnOutput values and effects,
// which a model-backed turn cannot promise.
package scriptedturn

import (
	"context"
	"fmt"
	"sync"

	"github.com/agentcore/core/content"
	"github.com/agentcore/core/cost"
	"github.com/agentcore/core/effect"
	"github.com/agentcore/core/turn"
)

// Step is one pre-programmed response. Execute returns steps in order,
// one per call, regardless of the TurnInput it is given.
type Step struct {
	// Output is the content returned for this step.
	Output content.Content
	// Exit is the exit reason returned for this step. The zero value
	// is treated as turn.ExitComplete.
	Exit turn.ExitReason
	// Effects are the effects declared for this step, returned in the
	// order given.
	Effects effect.List
	// Err, when non-nil, is returned instead of a TurnOutput for this
	// step.
	Err error
}

// Turn replays a fixed Steps slice in order: the first call to Execute
// returns Steps[0], the second returns Steps[1], and so on. Calling
// Execute more times than len(Steps) repeats the final step, so a
// scripted turn never runs out of behavior mid-test.
//
// Turn is safe for concurrent use; concurrent Execute calls are
// serialized internally so each one consumes the next step in program
// order rather than racing over which step index they observe.
type Turn struct {
	mu    sync.Mutex
	steps []Step
	next  int
}

// New returns a Turn that replays steps in order.
func New(steps ...Step) *Turn {
	return &Turn{steps: steps}
}

// Calls reports how many steps Execute has served so far: one per call,
// except that a call on a Turn with no steps is not counted.
func (t *Turn) Calls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.next
}

func (t *Turn) Execute(_ context.Context, _ turn.TurnInput) (turn.TurnOutput, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.steps) == 0 {
		return turn.TurnOutput{}, fmt.Errorf("scriptedturn: no steps configured")
	}

	idx := t.next
	if idx >= len(t.steps) {
		idx = len(t.steps) - 1
	}
	t.next++

	step := t.steps[idx]
	if step.Err != nil {
		return turn.TurnOutput{}, step.Err
	}

	// The zero ExitReason already equals turn.ExitComplete (exitComplete
	// is kind 0), so a Step left with its default Exit behaves as a
	// normal completion without extra handling here.
	metadata := turn.TurnMetadata{Cost: cost.Zero, TurnsUsed: 1}
	return turn.NewTurnOutput(step.Output, step.Exit, metadata, step.Effects), nil
}

var _ turn.Turn = (*Turn)(nil)
