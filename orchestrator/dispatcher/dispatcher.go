// Package dispatcher provides an in-process, non-durable reference
// Orchestrator: it routes turns to agents through an ordered registry of
// turn.Turn values, executes DispatchMany concurrently, and delivers
// signals and queries to handlers registered in memory per workflow. It proves the Orchestrator protocol is composable with
// the turnref, statestore, and environment reference implementations; it
// is not itself durable.
package dispatcher

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/agentcore/core/id"
	"github.com/agentcore/core/orchestrator"
	"github.com/agentcore/core/turn"
	"golang.org/x/time/rate"
)

// QueryHandler answers a Query call for a workflow already known to the
// dispatcher. Registered separately from agents since queries address
// workflows, not agents.
type QueryHandler func(ctx context.Context, target id.WorkflowId, query json.RawMessage) (json.RawMessage, error)

// SignalHandler reacts to a signal accepted for a workflow. Handlers run
// synchronously inside Signal; a handler that needs to do slow work
// should hand off to its own goroutine and return quickly so Signal's
// accept-not-process contract holds.
type SignalHandler func(ctx context.Context, target id.WorkflowId, payload json.RawMessage) error

// Dispatcher is the in-process Orchestrator reference implementation.
// The zero value is not usable; construct with New.
type Dispatcher struct {
	mu       sync.RWMutex
	agents   map[id.AgentId]turn.Turn
	queries  map[id.WorkflowId]QueryHandler
	signals  map[id.WorkflowId]SignalHandler
	limiter  *rate.Limiter
	agentSeq []id.AgentId
}

// Option configures a Dispatcher at construction time.
type Option func(*Dispatcher)

// WithRateLimit bounds how many Dispatch/DispatchMany calls per second
// this Dispatcher admits, using a token bucket. Calls beyond the limit
// block until a token is available or ctx is done. A nil limiter (the
// default) applies no limit; a non-nil limiter is always consulted.
func WithRateLimit(limiter *rate.Limiter) Option {
	return func(d *Dispatcher) { d.limiter = limiter }
}

// New constructs an empty Dispatcher. Register agents with RegisterAgent
// before dispatching to them.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		agents:  make(map[id.AgentId]turn.Turn),
		queries: make(map[id.WorkflowId]QueryHandler),
		signals: make(map[id.WorkflowId]SignalHandler),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// RegisterAgent adds turn to the dispatcher's routing table under agent.
// Registering the same agent id twice replaces the previous turn without
// changing its position in the registration order.
func (d *Dispatcher) RegisterAgent(agent id.AgentId, t turn.Turn) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.agents[agent]; !exists {
		d.agentSeq = append(d.agentSeq, agent)
	}
	d.agents[agent] = t
}

// RegisterQueryHandler associates handler with target so Query calls
// addressed to it are answered.
func (d *Dispatcher) RegisterQueryHandler(target id.WorkflowId, handler QueryHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.queries[target] = handler
}

// RegisterSignalHandler associates handler with target so Signal calls
// addressed to it are accepted and delivered.
func (d *Dispatcher) RegisterSignalHandler(target id.WorkflowId, handler SignalHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.signals[target] = handler
}

// Agents returns the registered agent ids in registration order.
func (d *Dispatcher) Agents() []id.AgentId {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]id.AgentId, len(d.agentSeq))
	copy(out, d.agentSeq)
	return out
}

func (d *Dispatcher) lookup(agent id.AgentId) (turn.Turn, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	t, ok := d.agents[agent]
	return t, ok
}

func (d *Dispatcher) admit(ctx context.Context) error {
	if d.limiter == nil {
		return nil
	}
	return d.limiter.Wait(ctx)
}

// Dispatch routes input to agent and runs it synchronously in the
// caller's goroutine.
func (d *Dispatcher) Dispatch(ctx context.Context, agent id.AgentId, input turn.TurnInput) (turn.TurnOutput, error) {
	t, ok := d.lookup(agent)
	if !ok {
		return turn.TurnOutput{}, orchestrator.New(orchestrator.ErrorAgentNotFound, "no turn registered for agent "+string(agent))
	}
	if err := d.admit(ctx); err != nil {
		return turn.TurnOutput{}, orchestrator.New(orchestrator.ErrorDispatchFailed, "rate limit wait: "+err.Error())
	}
	out, err := t.Execute(ctx, input)
	if err != nil {
		return turn.TurnOutput{}, orchestrator.WrapTurnError(err)
	}
	return out, nil
}

// DispatchMany runs every task concurrently, one goroutine per task, and
// collects results aligned to tasks by index.
func (d *Dispatcher) DispatchMany(ctx context.Context, tasks []orchestrator.Task) []orchestrator.Result {
	results := make([]orchestrator.Result, len(tasks))
	var wg sync.WaitGroup
	wg.Add(len(tasks))
	for i, task := range tasks {
		go func(i int, task orchestrator.Task) {
			defer wg.Done()
			out, err := d.Dispatch(ctx, task.Agent, task.Input)
			results[i] = orchestrator.Result{Output: out, Err: err}
		}(i, task)
	}
	wg.Wait()
	return results
}

// Signal delivers payload to target's registered SignalHandler, if any,
// and returns once the handler accepts it. With no handler registered,
// Signal returns an ErrorSignalFailed error.
func (d *Dispatcher) Signal(ctx context.Context, target id.WorkflowId, payload json.RawMessage) error {
	d.mu.RLock()
	handler, ok := d.signals[target]
	d.mu.RUnlock()
	if !ok {
		return orchestrator.New(orchestrator.ErrorSignalFailed, "no signal handler registered for workflow "+string(target))
	}
	if err := handler(ctx, target, payload); err != nil {
		return orchestrator.New(orchestrator.ErrorSignalFailed, err.Error())
	}
	return nil
}

// Query answers a read-only query against target's registered
// QueryHandler, if any.
func (d *Dispatcher) Query(ctx context.Context, target id.WorkflowId, query json.RawMessage) (json.RawMessage, error) {
	d.mu.RLock()
	handler, ok := d.queries[target]
	d.mu.RUnlock()
	if !ok {
		return nil, orchestrator.New(orchestrator.ErrorWorkflowNotFound, "no query handler registered for workflow "+string(target))
	}
	return handler(ctx, target, query)
}

var _ orchestrator.Orchestrator = (*Dispatcher)(nil)
