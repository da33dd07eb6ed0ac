// Package orchestrator defines the Orchestrator protocol: routing turns to
// agents, composing multi-agent topologies, delivering signals, answering
// queries, and, for durable implementations, surviving crashes. Durability
// and orchestration are inseparable: replay is orchestration is recovery,
// so the two live behind a single interface rather than two.
package orchestrator

import (
	"context"
	"encoding/json"

	"github.com/agentcore/core/id"
	"github.com/agentcore/core/turn"
)

// Task pairs an agent identifier with the input to dispatch to it, the
// unit DispatchMany operates on.
type Task struct {
	Agent id.AgentId
	Input turn.TurnInput
}

// Result is one outcome of a DispatchMany call: exactly one of Output or
// Err is set.
type Result struct {
	Output turn.TurnOutput
	Err    error
}

// Orchestrator routes turns to agents, composes multi-agent topologies,
// delivers signals, and answers queries.
//
// Implementations must be safe for concurrent use: every operation here is
// a suspension point that may run in arbitrary goroutines, and DispatchMany
// in particular is expected to run its tasks concurrently.
type Orchestrator interface {
	// Dispatch routes input to agent and returns its complete output, or
	// an Error describing why it could not.
	Dispatch(ctx context.Context, agent id.AgentId, input turn.TurnInput) (turn.TurnOutput, error)

	// DispatchMany dispatches every task concurrently and returns
	// results aligned to tasks by index. One task's failure does not
	// prevent the others from completing; a failed task's Result
	// carries an error in Err, not a partial TurnOutput in Output.
	// Implementations MUST execute concurrently when the execution
	// model permits it, not by iterating tasks sequentially.
	DispatchMany(ctx context.Context, tasks []Task) []Result

	// Signal delivers a fire-and-forget message to target. Signal
	// returns once the message is accepted (queued or journaled), not
	// once it has been processed. Signals delivered to the same target
	// are ordered with respect to one another; signals across distinct
	// targets are not.
	Signal(ctx context.Context, target id.WorkflowId, payload json.RawMessage) error

	// Query returns a read-only, caller-defined view of a live
	// workflow's state, for dashboards and status surfaces. The query
	// and response shapes are opaque JSON this protocol has no opinion
	// about.
	Query(ctx context.Context, target id.WorkflowId, query json.RawMessage) (json.RawMessage, error)
}
