package es

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

type (
	// Reactor consumes committed events for side effects such as
	// projections. A reactor that does not care about an event's kind
	// returns nil. Delivery is at-least-once: reactors are responsible for
	// their own idempotence.
	Reactor interface {
		Name() string
		React(ctx context.Context, aggID string, event any) error
	}

	ReactFunc func(ctx context.Context, aggID string, event any) error
)

type funcReactor struct {
	name string
	f    ReactFunc
}

func (r *funcReactor) Name() string { return r.name }
func (r *funcReactor) React(ctx context.Context, aggID string, event any) error {
	return r.f(ctx, aggID, event)
}

// ReactorFunc wraps f as a named Reactor.
func ReactorFunc(name string, f ReactFunc) Reactor {
	return &funcReactor{name: name, f: f}
}

// Notifier broadcasts each committed event to every registered reactor, in
// registration order. Reactor failures are collected but never retried.
type Notifier struct {
	log      *slog.Logger
	metrics  RuntimeMetrics
	reactors []Reactor
}

func NewNotifier(log *slog.Logger, opts ...NotifierOption) *Notifier {
	options := notifierOptions{metrics: NopRuntimeMetrics()}
	for _, opt := range opts {
		opt.applyToNotifier(&options)
	}
	return &Notifier{
		log:     log.With(slog.String("component", "notifier")),
		metrics: options.metrics,
	}
}

// Register appends r to the reactor chain. Invocation order is registration
// order. Not safe for concurrent use with Notify; register at startup.
func (n *Notifier) Register(r Reactor) {
	n.reactors = append(n.reactors, r)
	n.log.Debug("reactor registered", slog.String("reactor", r.Name()))
}

// Notify invokes every reactor with the event. All reactors are invoked even
// if earlier ones fail; the joined error is returned for the caller to log.
func (n *Notifier) Notify(ctx context.Context, aggID string, event any) error {
	var errs []error
	for _, r := range n.reactors {
		t := n.metrics.NotifyDuration(r.Name())
		err := r.React(ctx, aggID, event)
		t.ObserveDuration()
		if err != nil {
			n.log.Error(
				"reactor failed",
				slog.String("reactor", r.Name()),
				slog.String("aggregate_id", aggID),
				slog.String("kind", kindOf(event)),
				slog.Any("error", err),
			)
			errs = append(errs, fmt.Errorf("reactor %s: %w", r.Name(), err))
		}
	}
	return errors.Join(errs...)
}

type notifierOptions struct{ metrics RuntimeMetrics }

type NotifierOption interface{ applyToNotifier(*notifierOptions) }

func (o RuntimeMetricsOption) applyToNotifier(n *notifierOptions) { n.metrics = o.m }
