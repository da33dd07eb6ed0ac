package echoturn

import (
	"context"
	"testing"

	"github.com/agentcore/core/content"
	"github.com/agentcore/core/state"
	"github.com/agentcore/core/turn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteEchoesTextMessage(t *testing.T) {
	t.Parallel()

	e := New()
	out, err := e.Execute(context.Background(), turn.TurnInput{Message: content.Text("hello")})
	require.NoError(t, err)

	text, ok := out.Message.TextValue()
	require.True(t, ok)
	assert.Equal(t, "hello", text)
	assert.True(t, out.Exit.IsComplete())
	assert.Empty(t, out.Effects)
}

func TestExecuteAppliesPrefix(t *testing.T) {
	t.Parallel()

	e := &Turn{Prefix: "echo: "}
	out, err := e.Execute(context.Background(), turn.TurnInput{Message: content.Text("hi")})
	require.NoError(t, err)

	text, _ := out.Message.TextValue()
	assert.Equal(t, "echo: hi", text)
}

func TestExecuteDeclaresMemoryWriteWhenScopeSet(t *testing.T) {
	t.Parallel()

	scope := state.Session("s1")
	e := &Turn{MemoryScope: &scope}
	out, err := e.Execute(context.Background(), turn.TurnInput{Message: content.Text("remember me")})
	require.NoError(t, err)

	require.Len(t, out.Effects, 1)
	write, ok := out.Effects[0].(interface{ Kind() string })
	require.True(t, ok)
	assert.Equal(t, "write_memory", write.Kind())
}
