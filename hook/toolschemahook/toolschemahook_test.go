package toolschemahook

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/agentcore/core/hook"
	"github.com/agentcore/core/toolschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const weatherSchema = `{
	"type": "object",
	"properties": {
		"city": {"type": "string"}
	},
	"required": ["city"]
}`

func TestOnEventContinuesOnConformingInput(t *testing.T) {
	t.Parallel()

	v := toolschema.New()
	require.NoError(t, v.Register("get_weather", json.RawMessage(weatherSchema)))
	h := New(v)

	action, err := h.OnEvent(context.Background(), hook.Context{
		Point:     hook.PreToolUse,
		ToolName:  "get_weather",
		ToolInput: json.RawMessage(`{"city":"Boston"}`),
	})
	require.NoError(t, err)
	assert.True(t, action.IsContinue())
}

func TestOnEventHaltsOnSchemaViolation(t *testing.T) {
	t.Parallel()

	v := toolschema.New()
	require.NoError(t, v.Register("get_weather", json.RawMessage(weatherSchema)))
	h := New(v)

	action, err := h.OnEvent(context.Background(), hook.Context{
		Point:     hook.PreToolUse,
		ToolName:  "get_weather",
		ToolInput: json.RawMessage(`{}`),
	})
	require.NoError(t, err)
	reason, halted := action.IsHalt()
	assert.True(t, halted)
	assert.NotEmpty(t, reason)
}

func TestOnEventIgnoresOtherPoints(t *testing.T) {
	t.Parallel()

	v := toolschema.New()
	require.NoError(t, v.Register("get_weather", json.RawMessage(weatherSchema)))
	h := New(v)

	action, err := h.OnEvent(context.Background(), hook.Context{Point: hook.PreInference})
	require.NoError(t, err)
	assert.True(t, action.IsContinue())
}

func TestOnEventContinuesForUnregisteredTool(t *testing.T) {
	t.Parallel()

	h := New(toolschema.New())

	action, err := h.OnEvent(context.Background(), hook.Context{
		Point:     hook.PreToolUse,
		ToolName:  "unregistered_tool",
		ToolInput: json.RawMessage(`{"anything":true}`),
	})
	require.NoError(t, err)
	assert.True(t, action.IsContinue())
}
