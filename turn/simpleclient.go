package turn

import (
	"context"

	"github.com/agentcore/core/content"
)

// SimpleClient is a simplified facade over a registered Turn for adapters
// (chat bridges, CLIs, A2A-style integrations) that want to run a turn
// without constructing a full TurnInput and without inspecting the full
// TurnOutput shape. It trades precision for convenience: callers that need
// exit reasons, effects, or metadata should call Turn.Execute directly.
type SimpleClient struct {
	t Turn
}

// NewSimpleClient wraps t in a SimpleClient.
func NewSimpleClient(t Turn) SimpleClient {
	return SimpleClient{t: t}
}

// Run executes the wrapped Turn with message as a plain text TurnInput and
// returns the completion text, or an error if the turn failed or did not
// produce text content.
func (c SimpleClient) Run(ctx context.Context, message string) (string, error) {
	out, err := c.t.Execute(ctx, TurnInput{Message: content.Text(message)})
	if err != nil {
		return "", err
	}
	text, ok := out.Message.TextValue()
	if !ok {
		return "", New(ErrorOther, "turn output did not contain text content")
	}
	return text, nil
}
