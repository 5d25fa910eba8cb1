package es

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLogAppendAndLoad(t *testing.T) {
	ctx := t.Context()
	log := NewMemoryLog()

	recs, err := EncodeAll("a", []any{&nameChanged{Name: "x"}, &nameChanged{Name: "y"}})
	require.NoError(t, err)
	require.NoError(t, log.Append(ctx, "a", recs))

	more, err := EncodeAll("a", []any{&nameChanged{Name: "z"}})
	require.NoError(t, err)
	require.NoError(t, log.Append(ctx, "a", more))

	loaded, err := log.LoadAll(ctx, "a")
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, recs[0].ID, loaded[0].ID)
	assert.Equal(t, recs[1].ID, loaded[1].ID)
	assert.Equal(t, more[0].ID, loaded[2].ID)
}

func TestMemoryLogEmptyAppendIsNoop(t *testing.T) {
	ctx := t.Context()
	log := NewMemoryLog()

	require.NoError(t, log.Append(ctx, "a", nil))

	loaded, err := log.LoadAll(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestMemoryLogUnknownAggregateIsEmpty(t *testing.T) {
	log := NewMemoryLog()

	loaded, err := log.LoadAll(t.Context(), "nope")
	require.NoError(t, err)
	assert.NotNil(t, loaded)
	assert.Empty(t, loaded)
}

func TestMemoryLogStreamsAreIsolated(t *testing.T) {
	ctx := t.Context()
	log := NewMemoryLog()

	recsA, err := EncodeAll("a", []any{&nameChanged{Name: "x"}})
	require.NoError(t, err)
	require.NoError(t, log.Append(ctx, "a", recsA))

	recsB, err := EncodeAll("b", []any{&nameChanged{Name: "y"}})
	require.NoError(t, err)
	require.NoError(t, log.Append(ctx, "b", recsB))

	loaded, err := log.LoadAll(ctx, "a")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "a", loaded[0].AggregateID)
}
