// Command coredemo wires the reference implementations (dispatcher,
// memstate, logging hook, tool-schema hook, echo turn) together
// and runs a handful of the core's seed scenarios end to end, printing
// what happened. It exists to prove the protocols compose, not as a
// production entry point.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/agentcore/core/content"
	"github.com/agentcore/core/hook"
	"github.com/agentcore/core/hook/logginghook"
	"github.com/agentcore/core/hook/toolschemahook"
	"github.com/agentcore/core/id"
	"github.com/agentcore/core/orchestrator"
	"github.com/agentcore/core/orchestrator/dispatcher"
	"github.com/agentcore/core/state"
	"github.com/agentcore/core/statestore/memstate"
	"github.com/agentcore/core/telemetry"
	"github.com/agentcore/core/toolschema"
	"github.com/agentcore/core/turn"
	"github.com/agentcore/core/turnref/echoturn"
	cluelog "goa.design/clue/log"
)

func main() {
	ctx := cluelog.Context(context.Background(), cluelog.WithFormat(cluelog.FormatJSON))

	if err := runConcurrentDispatchScenario(ctx); err != nil {
		log.Fatalf("concurrent dispatch scenario: %v", err)
	}
	if err := runEffectApplicationScenario(ctx); err != nil {
		log.Fatalf("effect application scenario: %v", err)
	}
	if err := runHookHaltScenario(ctx); err != nil {
		log.Fatalf("hook halt scenario: %v", err)
	}
	if err := runToolSchemaValidationScenario(ctx); err != nil {
		log.Fatalf("tool schema validation scenario: %v", err)
	}
	if err := runBoundedToolResultScenario(ctx); err != nil {
		log.Fatalf("bounded tool result scenario: %v", err)
	}
}

// runConcurrentDispatchScenario mirrors seed scenario 1: two agents
// dispatched concurrently, results aligned to inputs by index.
func runConcurrentDispatchScenario(ctx context.Context) error {
	d := dispatcher.New()
	agentA := id.AgentId("agent-A")
	agentB := id.AgentId("agent-B")
	d.RegisterAgent(agentA, echoturn.New())
	d.RegisterAgent(agentB, echoturn.New())

	results := d.DispatchMany(ctx, []orchestrator.Task{
		{Agent: agentA, Input: turn.TurnInput{Message: content.Text("hello")}},
		{Agent: agentB, Input: turn.TurnInput{Message: content.Text("world")}},
	})

	for i, r := range results {
		if r.Err != nil {
			return fmt.Errorf("task %d failed: %w", i, r.Err)
		}
		text, _ := r.Output.Message.TextValue()
		fmt.Printf("scenario 1: task %d -> %q (%s)\n", i, text, r.Output.Exit)
	}
	return nil
}

// runEffectApplicationScenario mirrors seed scenario 2: a turn declares
// a WriteMemory effect, the calling layer applies it against a real
// StateStore, and a subsequent read observes it.
func runEffectApplicationScenario(ctx context.Context) error {
	store := memstate.New()
	scope := state.Session("s1")

	t := &echoturn.Turn{MemoryScope: &scope, MemoryKey: "last"}
	out, err := t.Execute(ctx, turn.TurnInput{Message: content.Text("hi")})
	if err != nil {
		return err
	}

	if err := applyEffects(ctx, store, out.Effects); err != nil {
		return err
	}

	got, err := store.Read(ctx, scope, "last")
	if err != nil {
		return err
	}
	fmt.Printf("scenario 2: state.read(Session(\"s1\"), \"last\") -> %s\n", got)
	return nil
}

// alwaysHaltHook halts every pre-inference event, standing in for a
// policy hook (budget exceeded, content filter, rate limit) that a
// real deployment would register instead.
type alwaysHaltHook struct {
	reason string
}

func (h alwaysHaltHook) OnEvent(_ context.Context, hc hook.Context) (hook.Action, error) {
	if hc.Point == hook.PreInference {
		return hook.Halt(h.reason), nil
	}
	return hook.Continue, nil
}

// runHookHaltScenario mirrors seed scenario 3: a pre-inference hook
// that always halts is consulted before a turn would call its model,
// producing ExitObserverHalt with metadata reflecting no tokens spent.
func runHookHaltScenario(ctx context.Context) error {
	logger := logginghook.New(telemetry.NewNoopLogger())
	halter := alwaysHaltHook{reason: "blocked"}

	if _, err := logger.OnEvent(ctx, hook.Context{Point: hook.PreInference}); err != nil {
		return err
	}
	action, err := halter.OnEvent(ctx, hook.Context{Point: hook.PreInference})
	if err != nil {
		return err
	}

	reason, halted := action.IsHalt()
	if !halted {
		return fmt.Errorf("expected halter to halt, got %#v", action)
	}

	out := turn.NewTurnOutput(content.Text(""), turn.ExitObserverHalt(reason), turn.TurnMetadata{}, nil)
	haltReason, _ := out.Exit.IsObserverHalt()
	fmt.Printf("scenario 3: turn halted by hook, reason=%q, tokens_in=%d\n", haltReason, out.Metadata.TokensIn)
	return nil
}

const getWeatherSchema = `{
	"type": "object",
	"properties": {
		"city": {"type": "string"}
	},
	"required": ["city"]
}`

// runToolSchemaValidationScenario is an added scenario beyond the seed
// scenarios (printed as "scenario 4"): a toolschemahook rejects a tool call whose input doesn't match the
// tool's registered JSON Schema, halting the turn before the tool ever
// runs. The logging hook alongside it uses a clue-backed Logger rather
// than the noop one the other scenarios use, so at least one path
// through this demo exercises real structured logging.
func runToolSchemaValidationScenario(ctx context.Context) error {
	validator := toolschema.New()
	if err := validator.Register("get_weather", json.RawMessage(getWeatherSchema)); err != nil {
		return fmt.Errorf("register schema: %w", err)
	}

	logger := logginghook.New(telemetry.NewClueLogger())
	schemaHook := toolschemahook.New(validator)

	hc := hook.Context{
		Point:     hook.PreToolUse,
		ToolName:  "get_weather",
		ToolInput: json.RawMessage(`{}`),
	}
	if _, err := logger.OnEvent(ctx, hc); err != nil {
		return err
	}
	action, err := schemaHook.OnEvent(ctx, hc)
	if err != nil {
		return err
	}

	reason, halted := action.IsHalt()
	if !halted {
		return fmt.Errorf("expected schema violation to halt, got %#v", action)
	}
	fmt.Printf("scenario 4: tool call rejected by schema, reason=%q\n", reason)
	return nil
}

// runBoundedToolResultScenario is an added scenario beyond the seed
// scenarios (printed as "scenario 5"): a tool result
// that reports it was truncated (content.Bounds) is observed by the
// logging hook at PostToolUse, which surfaces the truncation as a
// warning rather than silently dropping it.
func runBoundedToolResultScenario(ctx context.Context) error {
	total := 500
	result := content.ToolResultBlock{
		ToolUseID: "call-1",
		Result:    content.Text("showing the first 50 of 500 matching rows"),
		Bounds: &content.Bounds{
			Returned:       50,
			Total:          &total,
			Truncated:      true,
			RefinementHint: "narrow the query with a date range",
		},
	}
	raw, err := json.Marshal(struct {
		Kind   string          `json:"kind"`
		Bounds *content.Bounds `json:"Bounds,omitempty"`
	}{Kind: content.KindToolResult, Bounds: result.Bounds})
	if err != nil {
		return err
	}

	logger := logginghook.New(telemetry.NewNoopLogger())
	_, err = logger.OnEvent(ctx, hook.Context{
		Point:      hook.PostToolUse,
		ToolName:   "search_rows",
		ToolResult: raw,
	})
	if err != nil {
		return err
	}
	fmt.Printf("scenario 5: tool result bounded, returned=%d total=%d truncated=%t\n",
		result.Bounds.Returned, *result.Bounds.Total, result.Bounds.Truncated)
	return nil
}
