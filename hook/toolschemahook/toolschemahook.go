// Package toolschemahook adapts a toolschema.Validator into a hook.Hook so
// a turn's pre-tool-use point can reject a malformed tool call before it
// ever reaches a real tool implementation.
package toolschemahook

import (
	"context"

	"github.com/agentcore/core/hook"
	"github.com/agentcore/core/toolschema"
)

// Hook validates a tool's input against its registered schema at
// hook.PreToolUse and halts the turn on validation failure. Every other
// Point is a no-op Continue.
type Hook struct {
	validator *toolschema.Validator
}

// New wraps v in a Hook. v must not be nil.
func New(v *toolschema.Validator) *Hook {
	return &Hook{validator: v}
}

// OnEvent validates hc.ToolInput against hc.ToolName's registered schema
// when hc.Point is hook.PreToolUse. A tool with no registered schema, or
// any Point other than PreToolUse, passes through as hook.Continue. A
// schema violation returns hook.Halt with the validation error's message
// so the turn records why it stopped rather than silently skipping the
// tool.
func (h *Hook) OnEvent(_ context.Context, hc hook.Context) (hook.Action, error) {
	if hc.Point != hook.PreToolUse {
		return hook.Continue, nil
	}
	if err := h.validator.Validate(hc.ToolName, hc.ToolInput); err != nil {
		return hook.Halt(err.Error()), nil
	}
	return hook.Continue, nil
}

var _ hook.Hook = (*Hook)(nil)
