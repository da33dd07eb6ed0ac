package memstate

import (
	"context"
	"testing"

	"github.com/agentcore/core/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteThenReadRoundTrips(t *testing.T) {
	t.Parallel()

	s := New()
	scope := state.Session("s1")

	require.NoError(t, s.Write(context.Background(), scope, "k", state.Value("v1")))
	got, err := s.Read(context.Background(), scope, "k")
	require.NoError(t, err)
	assert.Equal(t, state.Value("v1"), got)
}

func TestReadMissingKeyReturnsErrNotFound(t *testing.T) {
	t.Parallel()

	s := New()
	_, err := s.Read(context.Background(), state.Global(), "missing")
	assert.ErrorIs(t, err, state.ErrNotFound)
}

func TestScopesAreDisjoint(t *testing.T) {
	t.Parallel()

	s := New()
	require.NoError(t, s.Write(context.Background(), state.Session("a"), "k", state.Value("session-a")))

	_, err := s.Read(context.Background(), state.Session("b"), "k")
	assert.ErrorIs(t, err, state.ErrNotFound)

	_, err = s.Read(context.Background(), state.Agent("wf", "agent1"), "k")
	assert.ErrorIs(t, err, state.ErrNotFound)
}

func TestDeleteIsNoOpWhenAbsent(t *testing.T) {
	t.Parallel()

	s := New()
	err := s.Delete(context.Background(), state.Global(), "absent")
	assert.NoError(t, err)
}

func TestDeleteRemovesKey(t *testing.T) {
	t.Parallel()

	s := New()
	scope := state.Workflow("wf1")
	require.NoError(t, s.Write(context.Background(), scope, "k", state.Value("v")))
	require.NoError(t, s.Delete(context.Background(), scope, "k"))

	_, err := s.Read(context.Background(), scope, "k")
	assert.ErrorIs(t, err, state.ErrNotFound)
}

func TestListFiltersByPrefix(t *testing.T) {
	t.Parallel()

	s := New()
	scope := state.Global()
	require.NoError(t, s.Write(context.Background(), scope, "user/1", state.Value("a")))
	require.NoError(t, s.Write(context.Background(), scope, "user/2", state.Value("b")))
	require.NoError(t, s.Write(context.Background(), scope, "order/1", state.Value("c")))

	keys, err := s.List(context.Background(), scope, "user/")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"user/1", "user/2"}, keys)
}

func TestSearchMatchesValueSubstring(t *testing.T) {
	t.Parallel()

	s := New()
	scope := state.Global()
	require.NoError(t, s.Write(context.Background(), scope, "note1", state.Value("the quick brown fox")))
	require.NoError(t, s.Write(context.Background(), scope, "note2", state.Value("lazy dog")))

	results, err := s.Search(context.Background(), scope, "fox", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "note1", results[0].Key)
}

func TestReadOnlyViewExposesNoWriteMethod(t *testing.T) {
	t.Parallel()

	s := New()
	ro := state.ReadOnly(s)

	// ro's static type is state.ReadOnlyState, which has no Write or
	// Delete method; this is enforced at compile time by the interface
	// definition itself; here we confirm Read/List/Search still work
	// through the derived view.
	scope := state.Global()
	require.NoError(t, s.Write(context.Background(), scope, "k", state.Value("v")))

	got, err := ro.Read(context.Background(), scope, "k")
	require.NoError(t, err)
	assert.Equal(t, state.Value("v"), got)
}
