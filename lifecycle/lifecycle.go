// Package lifecycle defines a shared vocabulary, not an interface, for
// coordination that spans multiple components: budget tracking,
// compaction, and observability. Not every implementation emits or
// consumes every event; the vocabulary stays open so cross-layer
// policies can be written against stable event shapes without every
// layer knowing about every other layer.
package lifecycle

import (
	"encoding/json"

	"github.com/agentcore/core/cost"
	"github.com/agentcore/core/duration"
	"github.com/agentcore/core/id"
)

type (
	// BudgetActionKind names what an orchestrator decided to do in
	// response to accumulated spend.
	BudgetActionKind string

	// CostIncurred is emitted by a turn after each inference call that
	// incurred spend.
	CostIncurred struct {
		WorkflowID id.WorkflowId
		AgentID    id.AgentId
		Amount     cost.Amount
	}

	// BudgetWarning is emitted when cumulative spend crosses a
	// watch threshold short of the hard limit.
	BudgetWarning struct {
		WorkflowID  id.WorkflowId
		CumulativeCost cost.Amount
		Threshold   cost.Amount
	}

	// BudgetAction is emitted by an orchestrator (or a policy layer
	// consuming CostIncurred/BudgetWarning) documenting the decision
	// made in response to accumulated spend.
	BudgetAction struct {
		WorkflowID id.WorkflowId
		Kind       BudgetActionKind
		Detail     string
	}

	// ContextPressure is emitted by a turn engine when it detects that
	// its assembled context is approaching a size or token limit.
	ContextPressure struct {
		WorkflowID     id.WorkflowId
		AgentID        id.AgentId
		CurrentTokens  int64
		LimitTokens    int64
	}

	// PreCompactionFlush is emitted before destructive compaction runs,
	// so that a policy layer can persist anything it needs as effects
	// before history is destroyed. The flush-then-compact ordering is
	// load-bearing: compaction that runs first can lose information
	// that would otherwise have been flushed.
	PreCompactionFlush struct {
		WorkflowID id.WorkflowId
		AgentID    id.AgentId
	}

	// CompactionComplete documents what a compaction pass freed.
	CompactionComplete struct {
		WorkflowID     id.WorkflowId
		AgentID        id.AgentId
		TokensFreed    int64
		ProviderManaged bool
	}

	// ObservabilityEvent is a source-tagged, open-ended event for
	// cross-layer telemetry correlation.
	ObservabilityEvent struct {
		Source        string
		Type          string
		TimestampMs   duration.Millis
		Payload       json.RawMessage
		TraceID       string
		WorkflowID    *id.WorkflowId
		AgentID       *id.AgentId
	}
)

// BudgetActionKind values.
const (
	BudgetContinue        BudgetActionKind = "continue"
	BudgetDowngradeModel  BudgetActionKind = "downgrade_model"
	BudgetHaltWorkflow    BudgetActionKind = "halt_workflow"
	BudgetRequestIncrease BudgetActionKind = "request_increase"
)
