package logginghook

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/agentcore/core/content"
	"github.com/agentcore/core/hook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	infoCalls int
	lastMsg   string
	warnCalls int
	lastWarn  string
}

func (l *recordingLogger) Debug(context.Context, string, ...any) {}
func (l *recordingLogger) Info(_ context.Context, msg string, _ ...any) {
	l.infoCalls++
	l.lastMsg = msg
}
func (l *recordingLogger) Warn(_ context.Context, msg string, _ ...any) {
	l.warnCalls++
	l.lastWarn = msg
}
func (l *recordingLogger) Error(context.Context, string, ...any) {}

func TestOnEventLogsAndAlwaysContinues(t *testing.T) {
	t.Parallel()

	logger := &recordingLogger{}
	h := New(logger)

	action, err := h.OnEvent(context.Background(), hook.Context{Point: hook.PreToolUse, ToolName: "search"})
	require.NoError(t, err)
	assert.True(t, action.IsContinue())
	assert.Equal(t, 1, logger.infoCalls)
	assert.Equal(t, "hook event", logger.lastMsg)
}

func TestNewDefaultsNilLoggerToNoop(t *testing.T) {
	t.Parallel()

	h := New(nil)
	action, err := h.OnEvent(context.Background(), hook.Context{Point: hook.ExitCheck})
	require.NoError(t, err)
	assert.True(t, action.IsContinue())
}

func TestOnEventWarnsOnTruncatedToolResult(t *testing.T) {
	t.Parallel()

	total := 500
	block := content.ToolResultBlock{
		ToolUseID: "call-1",
		Result:    content.Text("page 1 of many"),
		Bounds:    &content.Bounds{Returned: 50, Total: &total, Truncated: true, RefinementHint: "narrow the date range"},
	}
	raw, err := json.Marshal(struct {
		Kind   string          `json:"kind"`
		Bounds *content.Bounds `json:"Bounds,omitempty"`
	}{Kind: content.KindToolResult, Bounds: block.Bounds})
	require.NoError(t, err)

	logger := &recordingLogger{}
	h := New(logger)

	_, err = h.OnEvent(context.Background(), hook.Context{
		Point:      hook.PostToolUse,
		ToolName:   "search",
		ToolResult: raw,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, logger.warnCalls)
	assert.Equal(t, "tool result truncated", logger.lastWarn)
}

func TestOnEventNoWarnWhenToolResultNotTruncated(t *testing.T) {
	t.Parallel()

	logger := &recordingLogger{}
	h := New(logger)

	_, err := h.OnEvent(context.Background(), hook.Context{
		Point:      hook.PostToolUse,
		ToolName:   "search",
		ToolResult: json.RawMessage(`{"kind":"tool_result"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, logger.warnCalls)
}
