// Package passthrough provides the reference Environment implementation
// for local development: it owns exactly one turn and invokes it
// directly in the caller's process, with no isolation boundary, no
// credential injection, and no resource enforcement. Spec is accepted
// and otherwise ignored: a passthrough environment provides no
// isolation guarantee, so it has nothing to enforce against it.
package passthrough

import (
	"context"
	"fmt"

	"github.com/agentcore/core/environment"
	"github.com/agentcore/core/turn"
)

// Environment runs Turn directly, with no isolation.
type Environment struct {
	Turn turn.Turn
}

// New constructs a passthrough Environment that owns t.
func New(t turn.Turn) *Environment {
	return &Environment{Turn: t}
}

// Run invokes the owned turn directly. A panic inside the turn is
// recovered and reported as an ErrorIsolationViolation, since a
// passthrough environment's only isolation guarantee is that the
// caller's goroutine survives the call.
func (e *Environment) Run(ctx context.Context, input turn.TurnInput, spec *environment.Spec) (out turn.TurnOutput, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = turn.TurnOutput{}
			err = environment.New(environment.ErrorIsolationViolation, fmt.Sprintf("turn panicked: %v", r))
		}
	}()

	result, execErr := e.Turn.Execute(ctx, input)
	if execErr != nil {
		return turn.TurnOutput{}, environment.WrapTurnError(execErr)
	}
	return result, nil
}

var _ environment.Environment = (*Environment)(nil)
