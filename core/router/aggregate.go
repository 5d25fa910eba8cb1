package router

import (
	"context"
	"errors"
	"fmt"

	"github.com/codewandler/esagg-go/core/actor"
	"github.com/codewandler/esagg-go/core/es"
	"github.com/codewandler/esagg-go/internal/reflector"
)

// AggregateHandler routes a fixed set of command types to one behavior's
// actors, resolving the target through the directory. Commands must
// implement es.Command so the handler knows which aggregate id they target.
type AggregateHandler struct {
	dir      *actor.Directory
	behavior string
	accepts  map[string]struct{}
}

// NewAggregateHandler builds a handler claiming exactly the command types of
// the given samples. Commands of any other type are declined with
// ErrNotHandled.
func NewAggregateHandler(dir *actor.Directory, behavior string, commands ...any) *AggregateHandler {
	accepts := make(map[string]struct{}, len(commands))
	for _, cmd := range commands {
		accepts[reflector.TypeInfoOf(cmd).Name] = struct{}{}
	}
	return &AggregateHandler{
		dir:      dir,
		behavior: behavior,
		accepts:  accepts,
	}
}

func (h *AggregateHandler) Execute(ctx context.Context, cmd any) (any, error) {
	if _, ok := h.accepts[reflector.TypeInfoOf(cmd).Name]; !ok {
		return nil, ErrNotHandled
	}

	c, ok := cmd.(es.Command)
	if !ok {
		return nil, fmt.Errorf("command %T does not carry an aggregate id", cmd)
	}

	a, err := h.dir.Resolve(h.behavior, c.AggregateID())
	if err != nil {
		return nil, err
	}

	// The handle may have terminated between resolve and send. An actor
	// replies to every command it actually processes, so an unavailable
	// error proves the command never ran and one re-resolve is safe.
	events, err := a.Execute(ctx, cmd)
	if err == nil || !errors.Is(err, actor.ErrActorUnavailable) {
		return events, err
	}

	a, rerr := h.dir.Resolve(h.behavior, c.AggregateID())
	if rerr != nil {
		return nil, rerr
	}
	return a.Execute(ctx, cmd)
}
