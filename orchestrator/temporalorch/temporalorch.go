// Package temporalorch provides a durable orchestrator.Orchestrator
// backed by Temporal. Unlike dispatcher.Dispatcher, a dispatch here
// survives process restarts: Temporal persists the workflow history and
// replays it to resume execution. Each turn runs as a single activity, so
// a completed turn's output is recorded and not re-executed on replay,
// while a crash in the middle of a turn re-runs that turn's activity from
// its start.
//
// Each agent is registered as a Temporal workflow. Dispatch starts a
// workflow execution for the agent and blocks for its result;
// DispatchMany fans the same out concurrently. Signal and
// Query map directly onto Temporal's own signal and query primitives.
package temporalorch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/agentcore/core/id"
	"github.com/agentcore/core/orchestrator"
	"github.com/agentcore/core/telemetry"
	"github.com/agentcore/core/turn"
)

const defaultActivityTimeout = 10 * time.Minute

const turnActivityName = "agentcore.ExecuteTurn"

// Options configures an Orchestrator. Either Client or ClientOptions
// must be provided, and TaskQueue is always required.
type Options struct {
	// Client is a pre-configured Temporal client. If nil, New constructs
	// one lazily from ClientOptions.
	Client client.Client
	// ClientOptions configures a lazily constructed client when Client
	// is nil.
	ClientOptions *client.Options
	// TaskQueue is the queue the orchestrator's worker polls. Required.
	TaskQueue string
	// WorkerOptions is forwarded to worker.New.
	WorkerOptions worker.Options
	// DisableTracing skips installing the OTEL tracing interceptor.
	DisableTracing bool
	// Logger receives structured diagnostics. Defaults to a no-op
	// logger.
	Logger telemetry.Logger
}

// Orchestrator implements orchestrator.Orchestrator on top of a Temporal
// client and worker. Construct with New, register each agent's Turn
// with RegisterAgent before calling Dispatch, then call Worker().Start.
type Orchestrator struct {
	client      client.Client
	closeClient bool
	taskQueue   string
	worker      worker.Worker
	logger      telemetry.Logger

	mu          sync.RWMutex
	agents      map[id.AgentId]turn.Turn
	workerStart sync.Once
}

// New constructs an Orchestrator. The returned value owns no running
// worker until Worker().Start is called.
func New(opts Options) (*Orchestrator, error) {
	if opts.TaskQueue == "" {
		return nil, fmt.Errorf("temporalorch: task queue is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = telemetry.NewNoopLogger()
	}

	cli := opts.Client
	closeClient := false
	if cli == nil {
		if opts.ClientOptions == nil {
			return nil, fmt.Errorf("temporalorch: client options are required when Client is nil")
		}
		clientOpts := *opts.ClientOptions
		if !opts.DisableTracing {
			tracer, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{})
			if err != nil {
				return nil, fmt.Errorf("temporalorch: configure tracing interceptor: %w", err)
			}
			clientOpts.Interceptors = append(clientOpts.Interceptors, tracer)
		}
		var err error
		cli, err = client.NewLazyClient(clientOpts)
		if err != nil {
			return nil, fmt.Errorf("temporalorch: create client: %w", err)
		}
		closeClient = true
	}

	o := &Orchestrator{
		client:      cli,
		closeClient: closeClient,
		taskQueue:   opts.TaskQueue,
		logger:      logger,
		agents:      make(map[id.AgentId]turn.Turn),
	}

	o.worker = worker.New(cli, opts.TaskQueue, opts.WorkerOptions)
	o.worker.RegisterWorkflowWithOptions(o.runAgentWorkflow, workflow.RegisterOptions{Name: workflowName})
	o.worker.RegisterActivityWithOptions(o.executeTurnActivity, activity.RegisterOptions{Name: turnActivityName})
	return o, nil
}

const workflowName = "agentcore.AgentWorkflow"

// RegisterAgent associates a Turn implementation with agent. The
// workflow executing on behalf of agent runs this Turn inside a
// Temporal activity so the turn's side effects (model calls, tool
// invocations) are retried and recorded independently of workflow
// replay.
func (o *Orchestrator) RegisterAgent(agentID id.AgentId, t turn.Turn) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.agents[agentID] = t
}

// Worker returns a controller over the orchestrator's single worker.
func (o *Orchestrator) Worker() *WorkerController {
	return &WorkerController{o: o}
}

// WorkerController starts and stops the orchestrator's Temporal worker.
type WorkerController struct {
	o *Orchestrator
}

// Start begins polling the task queue. Safe to call more than once;
// only the first call has any effect.
//
//nolint:unparam // error return kept for interface symmetry with engine.WorkerController-style controllers.
func (c *WorkerController) Start() error {
	c.o.workerStart.Do(func() {
		go func() {
			if runErr := c.o.worker.Run(worker.InterruptCh()); runErr != nil {
				c.o.logger.Error(context.Background(), "temporalorch worker exited", "err", runErr)
			}
		}()
	})
	return nil
}

// Stop gracefully stops the worker.
func (c *WorkerController) Stop() {
	c.o.worker.Stop()
}

// Close releases the Temporal client if the Orchestrator created it.
func (o *Orchestrator) Close() error {
	if o.closeClient && o.client != nil {
		o.client.Close()
	}
	return nil
}

type agentWorkflowInput struct {
	Agent id.AgentId
	Input turn.TurnInput
}

// runAgentWorkflow is the Temporal workflow function. It delegates the
// actual turn execution to an activity so retries, timeouts, and
// history recording apply to the (potentially expensive, side-effecting)
// turn rather than to workflow code, which Temporal requires to be
// deterministic.
func (o *Orchestrator) runAgentWorkflow(ctx workflow.Context, in agentWorkflowInput) (turn.TurnOutput, error) {
	ao := workflow.ActivityOptions{
		StartToCloseTimeout: defaultActivityTimeout,
	}
	actx := workflow.WithActivityOptions(ctx, ao)

	var out turn.TurnOutput
	err := workflow.ExecuteActivity(actx, turnActivityName, in).Get(actx, &out)
	return out, err
}

func (o *Orchestrator) executeTurnActivity(ctx context.Context, in agentWorkflowInput) (turn.TurnOutput, error) {
	o.mu.RLock()
	t, ok := o.agents[in.Agent]
	o.mu.RUnlock()
	if !ok {
		return turn.TurnOutput{}, orchestrator.New(orchestrator.ErrorAgentNotFound, fmt.Sprintf("agent %q is not registered", in.Agent))
	}
	return t.Execute(ctx, in.Input)
}

// Dispatch starts a new workflow execution for agent and blocks until
// it completes.
func (o *Orchestrator) Dispatch(ctx context.Context, agentID id.AgentId, input turn.TurnInput) (turn.TurnOutput, error) {
	o.mu.RLock()
	_, ok := o.agents[agentID]
	o.mu.RUnlock()
	if !ok {
		return turn.TurnOutput{}, orchestrator.New(orchestrator.ErrorAgentNotFound, fmt.Sprintf("agent %q is not registered", agentID))
	}

	startOpts := client.StartWorkflowOptions{
		ID:        workflowID(agentID, input),
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(ctx, startOpts, workflowName, agentWorkflowInput{Agent: agentID, Input: input})
	if err != nil {
		return turn.TurnOutput{}, orchestrator.New(orchestrator.ErrorDispatchFailed, err.Error())
	}

	var out turn.TurnOutput
	if err := run.Get(ctx, &out); err != nil {
		if te, ok := asTurnError(err); ok {
			return turn.TurnOutput{}, orchestrator.WrapTurnError(te)
		}
		return turn.TurnOutput{}, orchestrator.New(orchestrator.ErrorTurnFailed, err.Error())
	}
	return out, nil
}

// DispatchMany dispatches every task concurrently, one Temporal
// workflow execution each, and returns results aligned by index.
func (o *Orchestrator) DispatchMany(ctx context.Context, tasks []orchestrator.Task) []orchestrator.Result {
	results := make([]orchestrator.Result, len(tasks))
	var wg sync.WaitGroup
	for i, task := range tasks {
		wg.Add(1)
		go func(i int, task orchestrator.Task) {
			defer wg.Done()
			out, err := o.Dispatch(ctx, task.Agent, task.Input)
			results[i] = orchestrator.Result{Output: out, Err: err}
		}(i, task)
	}
	wg.Wait()
	return results
}

// Signal delivers a signal to a running workflow by its workflow id.
func (o *Orchestrator) Signal(ctx context.Context, target id.WorkflowId, payload json.RawMessage) error {
	if err := o.client.SignalWorkflow(ctx, string(target), "", signalName, payload); err != nil {
		return orchestrator.New(orchestrator.ErrorSignalFailed, err.Error())
	}
	return nil
}

// Query synchronously queries a running or completed workflow.
func (o *Orchestrator) Query(ctx context.Context, target id.WorkflowId, query json.RawMessage) (json.RawMessage, error) {
	val, err := o.client.QueryWorkflow(ctx, string(target), "", queryName, query)
	if err != nil {
		return nil, orchestrator.New(orchestrator.ErrorOther, err.Error())
	}
	var out json.RawMessage
	if err := val.Get(&out); err != nil {
		return nil, orchestrator.New(orchestrator.ErrorOther, err.Error())
	}
	return out, nil
}

// Status reports the current execution status of a previously dispatched
// workflow, identified by its workflow id, as a short human-readable
// string derived from Temporal's own WorkflowExecutionStatus enum. It is
// an extension beyond orchestrator.Orchestrator: only a durable,
// history-backed implementation like this one can answer it.
func (o *Orchestrator) Status(ctx context.Context, workflowID string) (string, error) {
	desc, err := o.client.DescribeWorkflowExecution(ctx, workflowID, "")
	if err != nil {
		return "", orchestrator.New(orchestrator.ErrorOther, err.Error())
	}
	return statusString(desc.GetWorkflowExecutionInfo().GetStatus()), nil
}

func statusString(status enumspb.WorkflowExecutionStatus) string {
	switch status {
	case enumspb.WORKFLOW_EXECUTION_STATUS_RUNNING:
		return "running"
	case enumspb.WORKFLOW_EXECUTION_STATUS_COMPLETED:
		return "completed"
	case enumspb.WORKFLOW_EXECUTION_STATUS_FAILED:
		return "failed"
	case enumspb.WORKFLOW_EXECUTION_STATUS_CANCELED:
		return "canceled"
	case enumspb.WORKFLOW_EXECUTION_STATUS_TERMINATED:
		return "terminated"
	case enumspb.WORKFLOW_EXECUTION_STATUS_CONTINUED_AS_NEW:
		return "continued_as_new"
	case enumspb.WORKFLOW_EXECUTION_STATUS_TIMED_OUT:
		return "timed_out"
	default:
		return "unspecified"
	}
}

const (
	signalName = "agentcore.signal"
	queryName  = "agentcore.query"
)

func workflowID(agentID id.AgentId, input turn.TurnInput) string {
	if input.SessionID != nil {
		return fmt.Sprintf("agentcore/%s/%s", agentID, *input.SessionID)
	}
	return fmt.Sprintf("agentcore/%s/%s", agentID, id.GenerateWorkflowId())
}

func asTurnError(err error) (*turn.Error, bool) {
	var te *turn.Error
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

var _ orchestrator.Orchestrator = (*Orchestrator)(nil)
