// Package logginghook provides the reference Hook implementation: it
// records every event it is invoked with and always returns hook.Continue,
// so registering it never changes a turn's outcome.
package logginghook

import (
	"context"
	"encoding/json"

	"github.com/agentcore/core/content"
	"github.com/agentcore/core/hook"
	"github.com/agentcore/core/telemetry"
)

// Hook logs every event at Point via its Logger and never intervenes.
type Hook struct {
	Logger telemetry.Logger
}

// New constructs a logging Hook. A nil logger is replaced with
// telemetry.NewNoopLogger.
func New(logger telemetry.Logger) *Hook {
	if logger == nil {
		logger = telemetry.NewNoopLogger()
	}
	return &Hook{Logger: logger}
}

// OnEvent logs hc and returns hook.Continue. At PostToolUse it additionally
// checks whether the tool result carries truncation bounds and, if so,
// logs them: see boundsFromToolResult.
func (h *Hook) OnEvent(ctx context.Context, hc hook.Context) (hook.Action, error) {
	h.Logger.Info(ctx, "hook event",
		"point", string(hc.Point),
		"tool_name", hc.ToolName,
		"tokens_used", hc.TokensUsed,
		"turns_used", hc.TurnsUsed,
		"elapsed_ms", hc.Elapsed,
	)

	if hc.Point == hook.PostToolUse {
		if b, ok := boundsFromToolResult(hc.ToolResult); ok && b.Truncated {
			h.Logger.Warn(ctx, "tool result truncated",
				"tool_name", hc.ToolName,
				"returned", b.Returned,
				"total", b.Total,
				"refinement_hint", b.RefinementHint,
			)
		}
	}

	return hook.Continue, nil
}

// boundsFromToolResult decodes raw as an encoded content.ToolResultBlock
// and reports its Bounds, if any. A raw payload that isn't a
// ToolResultBlock, or one with no Bounds attached, reports ok=false.
func boundsFromToolResult(raw json.RawMessage) (content.Bounds, bool) {
	if len(raw) == 0 {
		return content.Bounds{}, false
	}
	var wire struct {
		Kind   string          `json:"kind"`
		Bounds *content.Bounds `json:"Bounds,omitempty"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil || wire.Kind != content.KindToolResult || wire.Bounds == nil {
		return content.Bounds{}, false
	}
	return *wire.Bounds, true
}

var _ hook.Hook = (*Hook)(nil)
