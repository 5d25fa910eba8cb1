package router

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewandler/esagg-go/core/actor"
	"github.com/codewandler/esagg-go/core/es"
	"github.com/codewandler/esagg-go/core/es/estests/domain"
)

type stubHandler struct {
	name   string
	claims bool
	result any
	calls  *[]string
}

func (s *stubHandler) Execute(_ context.Context, _ any) (any, error) {
	*s.calls = append(*s.calls, s.name)
	if !s.claims {
		return nil, ErrNotHandled
	}
	return s.result, nil
}

func TestRouterTriesHandlersInPriorityOrder(t *testing.T) {
	var calls []string
	h1 := &stubHandler{name: "h1", calls: &calls}
	h2 := &stubHandler{name: "h2", claims: true, result: "done", calls: &calls}
	h3 := &stubHandler{name: "h3", claims: true, result: "never", calls: &calls}

	r := New(slog.Default(), h1, h2, h3)

	res, err := r.Execute(t.Context(), "cmd")
	require.NoError(t, err)
	assert.Equal(t, "done", res)

	// h1 was consulted and declined, h2 claimed, h3 never ran
	assert.Equal(t, []string{"h1", "h2"}, calls)
}

func TestRouterUnroutableCommand(t *testing.T) {
	var calls []string
	r := New(
		slog.Default(),
		&stubHandler{name: "h1", calls: &calls},
		&stubHandler{name: "h2", calls: &calls},
	)

	_, err := r.Execute(t.Context(), "cmd")
	require.ErrorIs(t, err, ErrUnroutableCommand)
	assert.Equal(t, []string{"h1", "h2"}, calls)
}

func TestRouterHandlerErrorStopsChain(t *testing.T) {
	boom := errors.New("boom")
	var calls []string
	failing := HandlerFunc(func(context.Context, any) (any, error) {
		calls = append(calls, "failing")
		return nil, boom
	})
	r := New(slog.Default(), failing, &stubHandler{name: "h2", claims: true, calls: &calls})

	_, err := r.Execute(t.Context(), "cmd")
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"failing"}, calls)
}

func newAggregateRouter(t *testing.T) *Router {
	t.Helper()

	b := domain.Behavior{}
	registry := es.NewRegistry()
	b.RegisterEvents(registry)
	store := es.NewStore(
		slog.Default(),
		es.NewMemoryLog(),
		registry,
		es.NewNotifier(slog.Default()),
	)

	dir := actor.NewDirectory(store, actor.DirectoryOptions{})
	dir.Register(b)
	t.Cleanup(dir.Shutdown)

	return New(
		slog.Default(),
		NewAggregateHandler(dir, domain.BehaviorName, domain.CreateCounter{}, domain.Increment{}),
	)
}

func TestAggregateHandlerRoutesToActor(t *testing.T) {
	ctx := t.Context()
	r := newAggregateRouter(t)

	res, err := r.Execute(ctx, domain.CreateCounter{ID: "c-1"})
	require.NoError(t, err)
	events, ok := res.([]any)
	require.True(t, ok)
	require.Len(t, events, 1)

	res, err = r.Execute(ctx, domain.Increment{ID: "c-1"})
	require.NoError(t, err)
	assert.Equal(t, []any{&domain.Incremented{Count: 1}}, res)
}

func TestAggregateHandlerDeclinesForeignCommands(t *testing.T) {
	r := newAggregateRouter(t)

	type unrelated struct{}
	_, err := r.Execute(t.Context(), unrelated{})
	require.ErrorIs(t, err, ErrUnroutableCommand)
}

func TestAggregateHandlerRejectionPropagates(t *testing.T) {
	ctx := t.Context()
	r := newAggregateRouter(t)

	_, err := r.Execute(ctx, domain.CreateCounter{ID: "c-1"})
	require.NoError(t, err)

	_, err = r.Execute(ctx, domain.CreateCounter{ID: "c-1"})
	require.Error(t, err)
	assert.True(t, es.IsRejection(err))
}
