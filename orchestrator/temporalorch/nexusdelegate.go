package temporalorch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/nexus-rpc/sdk-go/nexus"

	"github.com/agentcore/core/effect"
	"github.com/agentcore/core/orchestrator"
)

// NexusDelegate dispatches an effect.Delegate to an agent hosted in a
// different Temporal namespace (possibly a different cluster
// altogether) over Nexus, the cross-namespace RPC protocol Temporal
// workflows use to call out to handlers they do not own. In-namespace
// delegation goes through Dispatch directly; NexusDelegate exists for
// the cross-namespace case a plain workflow-to-workflow signal cannot
// reach.
type NexusDelegate struct {
	client    *nexus.HTTPClient
	operation string
}

// NewNexusDelegate constructs a delegate targeting service at baseURL,
// invoking the named operation for every dispatch.
func NewNexusDelegate(baseURL, service, operation string) (*NexusDelegate, error) {
	client, err := nexus.NewHTTPClient(nexus.HTTPClientOptions{
		BaseURL: baseURL,
		Service: service,
	})
	if err != nil {
		return nil, fmt.Errorf("temporalorch: construct nexus client: %w", err)
	}
	return &NexusDelegate{client: client, operation: operation}, nil
}

// Dispatch hands d.Agent's input to the remote operation and returns
// its raw JSON response. The caller is responsible for decoding it
// into a turn.TurnOutput via whatever convention the remote side
// honors; this module does not assume the remote handler is itself
// built on this module's turn package.
func (n *NexusDelegate) Dispatch(ctx context.Context, d effect.Delegate) (json.RawMessage, error) {
	result, err := n.client.ExecuteOperation(ctx, nexus.ExecuteOperationRequest{
		Operation: n.operation,
		Body:      bytes.NewReader(d.Input),
		Header:    nexus.Header{"content-type": "application/json"},
	})
	if err != nil {
		return nil, orchestrator.New(orchestrator.ErrorDispatchFailed, fmt.Sprintf("nexus delegate to %s: %v", d.Agent, err))
	}
	defer func() { _ = result.Close() }()

	raw, err := io.ReadAll(result)
	if err != nil {
		return nil, orchestrator.New(orchestrator.ErrorDispatchFailed, fmt.Sprintf("read nexus response body: %v", err))
	}
	return raw, nil
}
