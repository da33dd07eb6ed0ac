package main

import (
	"context"
	"fmt"

	"github.com/agentcore/core/effect"
	"github.com/agentcore/core/state"
)

// applyEffects executes effects against store in declared order. This
// is the minimal version of what an Orchestrator does with a turn's
// returned effect list: WriteMemory and DeleteMemory apply directly;
// every other effect kind is outside what this demo's in-process
// dispatcher handles and is reported rather than silently dropped.
func applyEffects(ctx context.Context, store state.StateStore, effects effect.List) error {
	for _, e := range effects {
		switch v := e.(type) {
		case effect.WriteMemory:
			if err := store.Write(ctx, v.Scope, v.Key, state.Value(v.Value)); err != nil {
				return fmt.Errorf("apply write_memory: %w", err)
			}
		case effect.DeleteMemory:
			if err := store.Delete(ctx, v.Scope, v.Key); err != nil {
				return fmt.Errorf("apply delete_memory: %w", err)
			}
		default:
			fmt.Printf("applyEffects: no handler for effect kind %q, skipping\n", e.Kind())
		}
	}
	return nil
}
