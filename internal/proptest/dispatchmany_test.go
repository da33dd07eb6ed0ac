package proptest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/agentcore/core/content"
	"github.com/agentcore/core/cost"
	"github.com/agentcore/core/id"
	"github.com/agentcore/core/orchestrator"
	"github.com/agentcore/core/orchestrator/dispatcher"
	"github.com/agentcore/core/turn"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// sleepyTurn waits for Delay before echoing its input back as output. It
// exists only to make DispatchMany's concurrency observable: if tasks ran
// sequentially, n tasks of Delay each would take n*Delay; run concurrently
// they take roughly one Delay.
type sleepyTurn struct {
	delay time.Duration
}

func (s sleepyTurn) Execute(ctx context.Context, input turn.TurnInput) (turn.TurnOutput, error) {
	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
		return turn.TurnOutput{}, ctx.Err()
	}
	return turn.NewTurnOutput(input.Message, turn.ExitComplete, turn.TurnMetadata{Cost: cost.Zero}, nil), nil
}

var _ turn.Turn = sleepyTurn{}

// TestDispatchManyAlignsResultsByIndex verifies that for any number of
// tasks addressed to distinct agents carrying distinct payloads, each
// result lands at the same index as the task that produced it, regardless
// of which goroutine finished first.
func TestDispatchManyAlignsResultsByIndex(t *testing.T) {
	properties := gopter.NewProperties(testParameters())

	properties.Property("results align to tasks by index", prop.ForAll(
		func(n int) bool {
			d := dispatcher.New()
			tasks := make([]orchestrator.Task, n)
			for i := 0; i < n; i++ {
				agent := id.AgentId(fmt.Sprintf("agent-%d", i))
				// Stagger delays so earlier-indexed tasks are not
				// systematically the first to finish.
				delay := time.Duration(n-i) * time.Millisecond
				d.RegisterAgent(agent, sleepyTurn{delay: delay})
				tasks[i] = orchestrator.Task{
					Agent: agent,
					Input: turn.TurnInput{Message: content.Text(fmt.Sprintf("payload-%d", i))},
				}
			}

			results := d.DispatchMany(context.Background(), tasks)
			if len(results) != n {
				return false
			}
			for i, r := range results {
				if r.Err != nil {
					return false
				}
				text, ok := r.Output.Message.TextValue()
				if !ok || text != fmt.Sprintf("payload-%d", i) {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 12),
	))

	properties.TestingRun(t)
}

// TestDispatchManyRunsConcurrently verifies that n tasks with identical
// delay complete in time close to one delay, not n times it, demonstrating
// DispatchMany's one-goroutine-per-task contract rather than sequential
// execution.
func TestDispatchManyRunsConcurrently(t *testing.T) {
	const n = 8
	const delay = 20 * time.Millisecond

	d := dispatcher.New()
	tasks := make([]orchestrator.Task, n)
	for i := 0; i < n; i++ {
		agent := id.AgentId(fmt.Sprintf("agent-%d", i))
		d.RegisterAgent(agent, sleepyTurn{delay: delay})
		tasks[i] = orchestrator.Task{Agent: agent, Input: turn.TurnInput{Message: content.Text("x")}}
	}

	start := time.Now()
	results := d.DispatchMany(context.Background(), tasks)
	elapsed := time.Since(start)

	for _, r := range results {
		if r.Err != nil {
			t.Fatalf("unexpected task error: %v", r.Err)
		}
	}
	// A sequential execution would take n*delay (160ms); concurrent
	// execution should stay well under half that even with scheduler
	// noise on a loaded CI machine.
	if elapsed >= (n*delay)/2 {
		t.Fatalf("DispatchMany took %v, expected well under %v if tasks ran concurrently", elapsed, (n*delay)/2)
	}
}
