package dispatcher

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"

	"github.com/agentcore/core/content"
	"github.com/agentcore/core/id"
	"github.com/agentcore/core/orchestrator"
	"github.com/agentcore/core/turn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoTurn struct{ delay time.Duration }

func (e echoTurn) Execute(ctx context.Context, in turn.TurnInput) (turn.TurnOutput, error) {
	if e.delay > 0 {
		select {
		case <-time.After(e.delay):
		case <-ctx.Done():
			return turn.TurnOutput{}, ctx.Err()
		}
	}
	return turn.NewTurnOutput(in.Message, turn.ExitComplete, turn.TurnMetadata{}, nil), nil
}

type failingTurn struct{}

func (failingTurn) Execute(ctx context.Context, in turn.TurnInput) (turn.TurnOutput, error) {
	return turn.TurnOutput{}, turn.New(turn.ErrorModel, "boom")
}

func TestDispatchRoutesToRegisteredAgent(t *testing.T) {
	t.Parallel()

	d := New()
	agent := id.AgentId("greeter")
	d.RegisterAgent(agent, echoTurn{})

	out, err := d.Dispatch(context.Background(), agent, turn.TurnInput{Message: content.Text("hi")})
	require.NoError(t, err)
	text, ok := out.Message.TextValue()
	require.True(t, ok)
	assert.Equal(t, "hi", text)
}

func TestDispatchUnknownAgent(t *testing.T) {
	t.Parallel()

	d := New()
	_, err := d.Dispatch(context.Background(), id.AgentId("ghost"), turn.TurnInput{Message: content.Text("hi")})
	require.Error(t, err)

	var oerr *orchestrator.Error
	require.ErrorAs(t, err, &oerr)
	assert.Equal(t, orchestrator.ErrorAgentNotFound, oerr.Kind)
}

func TestDispatchWrapsTurnError(t *testing.T) {
	t.Parallel()

	d := New()
	d.RegisterAgent(id.AgentId("broken"), failingTurn{})

	_, err := d.Dispatch(context.Background(), id.AgentId("broken"), turn.TurnInput{Message: content.Text("hi")})
	require.Error(t, err)

	var oerr *orchestrator.Error
	require.ErrorAs(t, err, &oerr)
	assert.Equal(t, orchestrator.ErrorTurnFailed, oerr.Kind)

	var terr *turn.Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, turn.ErrorModel, terr.Kind)
}

func TestDispatchManyAlignsResultsByIndexAndRunsConcurrently(t *testing.T) {
	t.Parallel()

	d := New()
	const delay = 50 * time.Millisecond
	d.RegisterAgent(id.AgentId("a1"), echoTurn{delay: delay})
	d.RegisterAgent(id.AgentId("a2"), echoTurn{delay: delay})
	d.RegisterAgent(id.AgentId("a3"), echoTurn{delay: delay})
	d.RegisterAgent(id.AgentId("broken"), failingTurn{})

	tasks := []orchestrator.Task{
		{Agent: id.AgentId("a1"), Input: turn.TurnInput{Message: content.Text("one")}},
		{Agent: id.AgentId("broken"), Input: turn.TurnInput{Message: content.Text("two")}},
		{Agent: id.AgentId("a3"), Input: turn.TurnInput{Message: content.Text("three")}},
	}

	start := time.Now()
	results := d.DispatchMany(context.Background(), tasks)
	elapsed := time.Since(start)

	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	txt0, _ := results[0].Output.Message.TextValue()
	assert.Equal(t, "one", txt0)

	assert.Error(t, results[1].Err)

	assert.NoError(t, results[2].Err)
	txt2, _ := results[2].Output.Message.TextValue()
	assert.Equal(t, "three", txt2)

	// Concurrent execution: the two delayed tasks (a1, a3) at ~delay each
	// complete in roughly one delay, not the sum of both.
	assert.Less(t, elapsed, delay*2)
}

func TestSignalRequiresRegisteredHandler(t *testing.T) {
	t.Parallel()

	d := New()
	target := id.WorkflowId("wf-1")

	err := d.Signal(context.Background(), target, json.RawMessage(`{}`))
	require.Error(t, err)

	var accepted int32
	d.RegisterSignalHandler(target, func(ctx context.Context, tgt id.WorkflowId, payload json.RawMessage) error {
		atomic.AddInt32(&accepted, 1)
		return nil
	})

	err = d.Signal(context.Background(), target, json.RawMessage(`{"kind":"cancel"}`))
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&accepted))
}

func TestQueryRequiresRegisteredHandler(t *testing.T) {
	t.Parallel()

	d := New()
	target := id.WorkflowId("wf-2")

	_, err := d.Query(context.Background(), target, json.RawMessage(`{}`))
	require.Error(t, err)

	d.RegisterQueryHandler(target, func(ctx context.Context, tgt id.WorkflowId, query json.RawMessage) (json.RawMessage, error) {
		return json.RawMessage(`{"status":"running"}`), nil
	})

	resp, err := d.Query(context.Background(), target, json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"running"}`, string(resp))
}

func TestAgentsPreservesRegistrationOrder(t *testing.T) {
	t.Parallel()

	d := New()
	d.RegisterAgent(id.AgentId("third"), echoTurn{})
	d.RegisterAgent(id.AgentId("first"), echoTurn{})
	d.RegisterAgent(id.AgentId("second"), echoTurn{})
	d.RegisterAgent(id.AgentId("first"), echoTurn{}) // re-register, same position

	got := d.Agents()
	want := []id.AgentId{"third", "first", "second"}
	assert.Equal(t, want, got)
}
