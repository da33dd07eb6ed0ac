package turn_test

import (
	"context"
	"testing"

	"github.com/agentcore/core/content"
	"github.com/agentcore/core/cost"
	"github.com/agentcore/core/turn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upperTurn struct{}

func (upperTurn) Execute(_ context.Context, in turn.TurnInput) (turn.TurnOutput, error) {
	text, _ := in.Message.TextValue()
	out := ""
	for _, r := range text {
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		out += string(r)
	}
	return turn.NewTurnOutput(content.Text(out), turn.ExitComplete, turn.TurnMetadata{Cost: cost.Zero}, nil), nil
}

type blockOnlyTurn struct{}

func (blockOnlyTurn) Execute(_ context.Context, _ turn.TurnInput) (turn.TurnOutput, error) {
	return turn.NewTurnOutput(content.NewBlocks(), turn.ExitComplete, turn.TurnMetadata{}, nil), nil
}

func TestSimpleClientRunReturnsText(t *testing.T) {
	t.Parallel()

	client := turn.NewSimpleClient(upperTurn{})
	out, err := client.Run(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "HELLO", out)
}

func TestSimpleClientRunErrorsOnNonTextOutput(t *testing.T) {
	t.Parallel()

	client := turn.NewSimpleClient(blockOnlyTurn{})
	_, err := client.Run(context.Background(), "hello")
	assert.Error(t, err)
}
