// Package router dispatches commands to an ordered chain of handlers.
// Handlers are configured explicitly at startup; the first handler that
// claims a command executes it, exactly once. This is deliberate: single
// dispatch is what keeps the per-aggregate single-writer guarantee from
// being undermined by accidental double execution.
package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

var (
	// ErrNotHandled is the sentinel a handler returns to decline a
	// command, making the router try the next handler in the chain.
	ErrNotHandled = errors.New("not handled")

	// ErrUnroutableCommand is returned when no handler claimed a command.
	ErrUnroutableCommand = errors.New("unroutable command")
)

// Handler claims and fully executes a command, or declines it by returning
// ErrNotHandled.
type Handler interface {
	Execute(ctx context.Context, cmd any) (any, error)
}

type HandlerFunc func(ctx context.Context, cmd any) (any, error)

func (f HandlerFunc) Execute(ctx context.Context, cmd any) (any, error) { return f(ctx, cmd) }

// Router tries its handlers in the fixed order given at construction.
type Router struct {
	log      *slog.Logger
	handlers []Handler
}

func New(log *slog.Logger, handlers ...Handler) *Router {
	return &Router{
		log:      log.With(slog.String("component", "router")),
		handlers: handlers,
	}
}

// Execute routes cmd through the handler chain. Every handler before the
// claiming one is consulted; none after it. If no handler claims the
// command, ErrUnroutableCommand is returned.
func (r *Router) Execute(ctx context.Context, cmd any) (any, error) {
	start := time.Now()

	for _, h := range r.handlers {
		res, err := h.Execute(ctx, cmd)
		if errors.Is(err, ErrNotHandled) {
			continue
		}
		if err != nil {
			r.log.Debug(
				"command failed",
				slog.String("cmd", fmt.Sprintf("%T", cmd)),
				slog.Any("error", err),
				slog.Duration("duration", time.Since(start)),
			)
			return nil, err
		}
		r.log.Debug(
			"command executed",
			slog.String("cmd", fmt.Sprintf("%T", cmd)),
			slog.Duration("duration", time.Since(start)),
		)
		return res, nil
	}

	return nil, fmt.Errorf("%w: %T", ErrUnroutableCommand, cmd)
}
