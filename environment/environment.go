// Package environment defines the Environment protocol: executing a turn
// within an isolation boundary with specified credentials and resource
// limits. Local development typically uses a passthrough; production
// deployments use container, VM, or Wasm boundaries.
//
// Run's signature carries only data: no executable or interface-typed
// turn reference crosses the call. This is load-bearing, not a style
// choice: a remote environment, a container, a VM, a network-segmented
// pod, has no channel to receive a Go value carrying function pointers
// across its isolation boundary. The environment resolves which turn to
// execute on its own, by construction, by agent-id lookup, or by loading
// a turn image.
package environment

import (
	"context"

	"github.com/agentcore/core/turn"
)

type (
	// IsolationKind names the boundary technology an EnvironmentSpec
	// requests.
	IsolationKind string

	// CredentialInjection names how a credential reaches the isolated
	// process.
	CredentialInjection string

	// CredentialRef names a credential to inject and how.
	CredentialRef struct {
		Name      string
		Injection CredentialInjection
		// SourceRef identifies where the credential material comes
		// from (a secret-manager path, an env var name, a file path).
		// This module never carries credential material itself.
		SourceRef string
	}

	// ResourceLimits bounds what an isolated turn execution may
	// consume. A zero value for any field means "no limit imposed by
	// this spec"; the environment's own defaults still apply.
	ResourceLimits struct {
		CPUMillicores int64
		MemoryBytes   int64
		DiskBytes     int64
		GPUCount      int
	}

	// NetworkAction is the default disposition applied when no
	// NetworkRule matches.
	NetworkAction string

	// NetworkRule is one ordered entry in a network policy; rules are
	// evaluated in order and the first match wins.
	NetworkRule struct {
		CIDR   string
		Action NetworkAction
	}

	// NetworkPolicy governs what the isolated execution may reach over
	// the network.
	NetworkPolicy struct {
		DefaultAction NetworkAction
		Rules         []NetworkRule
	}

	// Spec describes the isolation boundary, credentials, resource
	// limits, and network policy a Run call must honor. Construct with
	// NewSpec, not a struct literal, so new optional fields do not
	// break existing callers.
	Spec struct {
		Isolation   IsolationKind
		Credentials []CredentialRef
		Limits      ResourceLimits
		Network     NetworkPolicy
	}

	// Environment executes a turn within an isolation boundary.
	//
	// Implementations must be safe for concurrent use: Run is a
	// suspension point that may be called from multiple goroutines for
	// different inputs at once, and must tear down its isolation
	// boundary on every exit path, including a panic recovered inside
	// Run.
	Environment interface {
		// Run executes the environment's owned turn against input
		// under the constraints in spec, returning a complete
		// TurnOutput or an Error. Credential material provisioned for
		// this run must never appear in the returned TurnOutput, in
		// any effect it carries, in logs, or in the returned error, by
		// default.
		Run(ctx context.Context, input turn.TurnInput, spec *Spec) (turn.TurnOutput, error)
	}
)
