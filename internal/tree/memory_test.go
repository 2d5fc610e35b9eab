package tree_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmdang/tripplanner/backend/internal/tree"
)

func TestMemory_ScalarRoundTrip(t *testing.T) {
	m := tree.NewMemory()
	ctx := context.Background()
	p := tree.NewPath("plans", "u1", "p1", "destination")

	require.NoError(t, m.Write(ctx, p, "Da Nang"))

	got, ok, err := m.Read(ctx, p)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Da Nang", got)
}

func TestMemory_MapRoundTrip(t *testing.T) {
	m := tree.NewMemory()
	ctx := context.Background()
	p := tree.NewPath("plans", "u1", "p1")

	require.NoError(t, m.Write(ctx, p, map[string]any{
		"destination": "Hue",
		"itinerary": map[string]any{
			"startDate": "2025-04-22",
		},
	}))

	got, ok, err := m.Read(ctx, p)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, map[string]any{
		"destination": "Hue",
		"itinerary":   map[string]any{"startDate": "2025-04-22"},
	}, got)
}

func TestMemory_ListRoundTrip(t *testing.T) {
	m := tree.NewMemory()
	ctx := context.Background()
	p := tree.NewPath("plans", "u1", "p1", "owners")

	require.NoError(t, m.Write(ctx, p, []string{"alice", "bob"}))

	got, ok, err := m.Read(ctx, p)
	require.NoError(t, err)
	require.True(t, ok)
	// Lists are stored as integer-keyed children and reassembled in order.
	assert.Equal(t, []any{"alice", "bob"}, got)
}

func TestMemory_EmptyValuesNeverStored(t *testing.T) {
	m := tree.NewMemory()
	ctx := context.Background()
	p := tree.NewPath("plans", "u1", "p1")

	require.NoError(t, m.Write(ctx, p, map[string]any{
		"destination": "Hoi An",
		"notes":       "",         // empty string is dropped
		"photos":      []string{}, // empty list is dropped
		"meta":        map[string]any{},
	}))

	got, ok, err := m.Read(ctx, p)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"destination": "Hoi An"}, got)
}

func TestMemory_WriteEmptyValueRemovesNode(t *testing.T) {
	m := tree.NewMemory()
	ctx := context.Background()
	p := tree.NewPath("plans", "u1", "p1")

	require.NoError(t, m.Write(ctx, p, map[string]any{"destination": "Sapa"}))

	// A value that normalizes to nothing is a removal, not an empty node.
	require.NoError(t, m.Write(ctx, p, map[string]any{"destination": ""}))

	_, ok, err := m.Read(ctx, p)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_WriteNilRemovesNode(t *testing.T) {
	m := tree.NewMemory()
	ctx := context.Background()
	p := tree.NewPath("plans", "u1", "p1")

	require.NoError(t, m.Write(ctx, p, map[string]any{"destination": "Sapa"}))
	require.NoError(t, m.Write(ctx, p, nil))

	ok, err := m.Exists(ctx, p)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_OverwriteReplacesWholeSubtree(t *testing.T) {
	m := tree.NewMemory()
	ctx := context.Background()
	p := tree.NewPath("plans", "u1", "p1")

	require.NoError(t, m.Write(ctx, p, map[string]any{
		"destination": "Hanoi",
		"photos":      []string{"a.jpg"},
	}))
	require.NoError(t, m.Write(ctx, p, map[string]any{
		"destination": "Saigon",
	}))

	got, ok, err := m.Read(ctx, p)
	require.NoError(t, err)
	require.True(t, ok)
	// The old photos child must not survive the overwrite.
	assert.Equal(t, map[string]any{"destination": "Saigon"}, got)
}

func TestMemory_RemovePrunesEmptyParents(t *testing.T) {
	m := tree.NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Write(ctx, tree.NewPath("plans", "u1", "p1", "destination"), "Hanoi"))
	require.NoError(t, m.Remove(ctx, tree.NewPath("plans", "u1", "p1")))

	// Removing the only plan leaves no trace of the owner either.
	ok, err := m.Exists(ctx, tree.NewPath("plans", "u1"))
	require.NoError(t, err)
	assert.False(t, ok, "empty parent nodes must be pruned")

	ok, err = m.Exists(ctx, tree.NewPath("plans"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_RemoveAbsentIsNoOp(t *testing.T) {
	m := tree.NewMemory()
	ctx := context.Background()

	assert.NoError(t, m.Remove(ctx, tree.NewPath("plans", "ghost")))
}

func TestMemory_ReadAbsent(t *testing.T) {
	m := tree.NewMemory()
	ctx := context.Background()

	_, ok, err := m.Read(ctx, tree.NewPath("plans", "ghost"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_Children_Ordering(t *testing.T) {
	m := tree.NewMemory()
	ctx := context.Background()
	base := tree.NewPath("plans", "u1", "p1", "itinerary", "itinerary")

	// Write days out of order plus a non-integer sibling.
	for _, k := range []string{"10", "2", "0"} {
		require.NoError(t, m.Write(ctx, base.Child(k, "activities", "0", "description"), "x"))
	}
	require.NoError(t, m.Write(ctx, base.Child("meta"), "y"))

	keys, err := m.Children(ctx, base)
	require.NoError(t, err)
	// Integer keys first in numeric order ("10" after "2"), then the rest.
	assert.Equal(t, []string{"0", "2", "10", "meta"}, keys)
}

func TestMemory_Children_LeafAndAbsent(t *testing.T) {
	m := tree.NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Write(ctx, tree.NewPath("plans", "u1", "p1", "destination"), "Hue"))

	keys, err := m.Children(ctx, tree.NewPath("plans", "u1", "p1", "destination"))
	require.NoError(t, err)
	assert.Empty(t, keys, "a scalar leaf has no children")

	keys, err = m.Children(ctx, tree.NewPath("plans", "ghost"))
	require.NoError(t, err)
	assert.Empty(t, keys, "an absent node has no children")
}

func TestMemory_NonCanonicalIntegerKeysStayMaps(t *testing.T) {
	m := tree.NewMemory()
	ctx := context.Background()
	p := tree.NewPath("misc")

	// "03" is not a canonical integer key, so this node must never be
	// mistaken for a list on read.
	require.NoError(t, m.Write(ctx, p, map[string]any{"0": "a", "03": "b"}))

	got, ok, err := m.Read(ctx, p)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"0": "a", "03": "b"}, got)
}

func TestMemory_SparseListDropsGaps(t *testing.T) {
	m := tree.NewMemory()
	ctx := context.Background()
	base := tree.NewPath("plans", "u1", "p1", "owners")

	require.NoError(t, m.Write(ctx, base.Child("0"), "alice"))
	require.NoError(t, m.Write(ctx, base.Child("2"), "carol"))

	got, ok, err := m.Read(ctx, base)
	require.NoError(t, err)
	require.True(t, ok)
	// Gaps are dropped, not padded: readers always see a dense list.
	assert.Equal(t, []any{"alice", "carol"}, got)
}

func TestPath_Validate(t *testing.T) {
	assert.NoError(t, tree.NewPath("plans", "u1").Validate())
	assert.Error(t, tree.NewPath().Validate(), "empty path")
	assert.Error(t, tree.NewPath("plans", "").Validate(), "empty segment")
	assert.Error(t, tree.NewPath("plans", "a/b").Validate(), "segment with slash")
}

func TestPath_ChildDoesNotMutateReceiver(t *testing.T) {
	base := tree.NewPath("plans", "u1")
	a := base.Child("p1")
	b := base.Child("p2")

	assert.Equal(t, "plans/u1/p1", a.String())
	assert.Equal(t, "plans/u1/p2", b.String())
	assert.Equal(t, "plans/u1", base.String())
}
