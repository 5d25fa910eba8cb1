package es

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type (
	nameChanged struct {
		Name string `json:"name"`
	}
	balanceMoved struct {
		Amount int  `json:"amount"`
		Credit bool `json:"credit,omitempty"`
	}
	aliased struct{}
)

func (aliased) EventKind() string { return "custom_kind" }

func TestEncodeDecodeRoundTrip(t *testing.T) {
	registry := NewRegistry()
	RegisterEvents(registry, Event[nameChanged](), Event[balanceMoved]())

	tests := []struct {
		name  string
		event any
	}{
		{"name changed", &nameChanged{Name: "bob"}},
		{"balance moved", &balanceMoved{Amount: 42, Credit: true}},
		{"zero value", &balanceMoved{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Encode("agg-1", tt.event)
			require.NoError(t, err)
			require.NoError(t, rec.Validate())
			assert.Equal(t, "agg-1", rec.AggregateID)
			assert.Equal(t, KindOf(tt.event), rec.Kind)

			decoded, err := registry.Decode(rec)
			require.NoError(t, err)
			assert.Equal(t, tt.event, decoded)
		})
	}
}

func TestDecodeUnknownKind(t *testing.T) {
	registry := NewRegistry()
	RegisterEvents(registry, Event[nameChanged]())

	rec, err := Encode("agg-1", &balanceMoved{Amount: 1})
	require.NoError(t, err)

	_, err = registry.Decode(rec)
	require.ErrorIs(t, err, ErrUnknownEventKind)
}

func TestKindOverride(t *testing.T) {
	registry := NewRegistry()
	RegisterEvents(registry, Event[aliased]())

	rec, err := Encode("agg-1", &aliased{})
	require.NoError(t, err)
	assert.Equal(t, "custom_kind", rec.Kind)

	decoded, err := registry.Decode(rec)
	require.NoError(t, err)
	assert.IsType(t, &aliased{}, decoded)
}

func TestEncodeAllPreservesOrder(t *testing.T) {
	events := []any{
		&balanceMoved{Amount: 1},
		&balanceMoved{Amount: 2},
		&balanceMoved{Amount: 3},
	}
	recs, err := EncodeAll("agg-1", events)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	registry := NewRegistry()
	RegisterEvents(registry, Event[balanceMoved]())
	for i, rec := range recs {
		decoded, err := registry.Decode(rec)
		require.NoError(t, err)
		assert.Equal(t, events[i], decoded)
	}
}
