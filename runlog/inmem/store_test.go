package inmem

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/agentcore/core/id"
	"github.com/agentcore/core/runlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAssignsSequentialIDs(t *testing.T) {
	t.Parallel()

	store := New()
	runID := id.WorkflowId("wf1")

	for i := 0; i < 3; i++ {
		e := &runlog.Event{RunID: runID, Type: "test", Payload: json.RawMessage(`{}`)}
		require.NoError(t, store.Append(context.Background(), e))
		assert.Equal(t, string(rune('0'+i)), e.ID)
	}
}

func TestListPaginatesForwardWithCursor(t *testing.T) {
	t.Parallel()

	store := New()
	runID := id.WorkflowId("wf2")
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Append(context.Background(), &runlog.Event{RunID: runID, Type: "tick"}))
	}

	page, err := store.List(context.Background(), runID, "", 2)
	require.NoError(t, err)
	require.Len(t, page.Events, 2)
	assert.NotEmpty(t, page.NextCursor)

	page2, err := store.List(context.Background(), runID, page.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, page2.Events, 2)
	assert.NotEmpty(t, page2.NextCursor)

	page3, err := store.List(context.Background(), runID, page2.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, page3.Events, 1)
	assert.Empty(t, page3.NextCursor)
}

func TestListUnknownRunReturnsEmptyPage(t *testing.T) {
	t.Parallel()

	store := New()
	page, err := store.List(context.Background(), id.WorkflowId("ghost"), "", 10)
	require.NoError(t, err)
	assert.Empty(t, page.Events)
	assert.Empty(t, page.NextCursor)
}
