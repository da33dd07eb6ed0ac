package passthrough

import (
	"context"
	"testing"

	"github.com/agentcore/core/content"
	"github.com/agentcore/core/environment"
	"github.com/agentcore/core/turn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoTurn struct{}

func (echoTurn) Execute(ctx context.Context, in turn.TurnInput) (turn.TurnOutput, error) {
	return turn.NewTurnOutput(in.Message, turn.ExitComplete, turn.TurnMetadata{}, nil), nil
}

type panickyTurn struct{}

func (panickyTurn) Execute(ctx context.Context, in turn.TurnInput) (turn.TurnOutput, error) {
	panic("unexpected failure")
}

type failingTurn struct{}

func (failingTurn) Execute(ctx context.Context, in turn.TurnInput) (turn.TurnOutput, error) {
	return turn.TurnOutput{}, turn.New(turn.ErrorModel, "no route to provider")
}

func TestRunInvokesOwnedTurnDirectly(t *testing.T) {
	t.Parallel()

	env := New(echoTurn{})
	spec := environment.NewSpec(environment.IsolationProcess)

	out, err := env.Run(context.Background(), turn.TurnInput{Message: content.Text("ping")}, &spec)
	require.NoError(t, err)
	text, ok := out.Message.TextValue()
	require.True(t, ok)
	assert.Equal(t, "ping", text)
}

func TestRunRecoversPanicAsIsolationViolation(t *testing.T) {
	t.Parallel()

	env := New(panickyTurn{})
	spec := environment.NewSpec(environment.IsolationProcess)

	_, err := env.Run(context.Background(), turn.TurnInput{Message: content.Text("ping")}, &spec)
	require.Error(t, err)

	var eerr *environment.Error
	require.ErrorAs(t, err, &eerr)
	assert.Equal(t, environment.ErrorIsolationViolation, eerr.Kind)
}

func TestRunWrapsTurnError(t *testing.T) {
	t.Parallel()

	env := New(failingTurn{})
	spec := environment.NewSpec(environment.IsolationProcess)

	_, err := env.Run(context.Background(), turn.TurnInput{Message: content.Text("ping")}, &spec)
	require.Error(t, err)

	var eerr *environment.Error
	require.ErrorAs(t, err, &eerr)
	assert.Equal(t, environment.ErrorTurnFailed, eerr.Kind)

	var terr *turn.Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, turn.ErrorModel, terr.Kind)
}
