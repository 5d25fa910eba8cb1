package estests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewandler/esagg-go/core/es"
	"github.com/codewandler/esagg-go/core/es/estests/domain"
)

func TestReplayEqualsFold(t *testing.T) {
	b := domain.Behavior{}

	events := []any{
		&domain.CounterCreated{},
		&domain.Incremented{Count: 1},
		&domain.Incremented{Count: 2},
		&domain.Incremented{Count: 3},
	}

	replayed := es.Replay(b, events)
	folded := es.Fold(b, b.InitialState(), events)

	assert.Equal(t, folded, replayed)
	assert.Equal(t, domain.Counter{Created: true, Count: 3}, replayed)

	// replay is deterministic
	assert.Equal(t, replayed, es.Replay(b, events))
}

func TestReplayEmptySequenceIsInitialState(t *testing.T) {
	b := domain.Behavior{}
	assert.Equal(t, b.InitialState(), es.Replay(b, nil))
}

func TestReplayAfterPersistenceRoundTrip(t *testing.T) {
	ctx := t.Context()
	b := domain.Behavior{}
	ts := es.NewTestStore(t, b)

	events := []any{
		&domain.CounterCreated{},
		&domain.Incremented{Count: 1},
		&domain.Incremented{Count: 2},
	}
	require.NoError(t, ts.Store.Commit(ctx, "c-1", events))

	loaded, err := ts.Store.Load(ctx, "c-1")
	require.NoError(t, err)

	assert.Equal(t, es.Replay(b, events), es.Replay(b, loaded))
}

func TestDecideRejectionLeavesStateUnchanged(t *testing.T) {
	b := domain.Behavior{}

	state := es.Replay(b, []any{&domain.CounterCreated{}})

	_, err := b.Decide(state, domain.CreateCounter{ID: "c-1"})
	require.Error(t, err)
	assert.True(t, es.IsRejection(err))

	var rejection *es.Rejection
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, "already created", rejection.Reason)

	// decide never mutates the state it was given
	assert.Equal(t, es.Replay(b, []any{&domain.CounterCreated{}}), state)
}

func TestDecideIncrementBeforeCreateIsRejected(t *testing.T) {
	b := domain.Behavior{}

	_, err := b.Decide(b.InitialState(), domain.Increment{ID: "c-1"})
	assert.True(t, es.IsRejection(err))
}
