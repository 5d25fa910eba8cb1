package es

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Store orchestrates codec, log and notifier. Commit appends a batch and,
// only after the append succeeded, drives the notifier once per event in
// batch order. Load replays and decodes the full sequence for an aggregate.
//
// The store never retries; retry policy belongs to the log.
type Store struct {
	log      *slog.Logger
	evlog    EventLog
	registry *Registry
	notifier *Notifier
	metrics  RuntimeMetrics
}

func NewStore(log *slog.Logger, evlog EventLog, registry *Registry, notifier *Notifier, opts ...StoreOption) *Store {
	options := storeOptions{metrics: NopRuntimeMetrics()}
	for _, opt := range opts {
		opt.applyToStore(&options)
	}
	return &Store{
		log:      log.With(slog.String("store", fmt.Sprintf("%T", evlog))),
		evlog:    evlog,
		registry: registry,
		notifier: notifier,
		metrics:  options.metrics,
	}
}

// Commit encodes and durably appends events for aggID, then notifies
// reactors once per event in order. An empty batch is a no-op. If the append
// fails, nothing is notified and the pre-commit log content is unchanged.
//
// Reactor failures do not fail the commit: the events are already durable at
// that point and delivery is at-least-once. Failures are logged by the
// notifier.
func (s *Store) Commit(ctx context.Context, aggID string, events []any) error {
	if len(events) == 0 {
		return nil
	}

	recs, err := EncodeAll(aggID, events)
	if err != nil {
		return err
	}

	t := s.metrics.StoreAppendDuration()
	err = s.evlog.Append(ctx, aggID, recs)
	t.ObserveDuration()
	if err != nil {
		return fmt.Errorf("append aggregate_id=%s: %w", aggID, err)
	}
	s.metrics.EventsCommitted(len(recs))

	for _, ev := range events {
		// errors already logged per reactor; redelivery is the
		// reactor's problem, the batch is durable
		_ = s.notifier.Notify(ctx, aggID, ev)
	}

	s.log.Debug(
		"committed",
		slog.String("aggregate_id", aggID),
		slog.Int("num_events", len(recs)),
	)

	return nil
}

// Load returns the full ordered decoded event sequence for aggID, or an
// empty slice if the id is unknown. Decoding stops at the first unknown
// kind: that is a corrupt-log condition and replay must not skip records.
func (s *Store) Load(ctx context.Context, aggID string) ([]any, error) {
	t := s.metrics.StoreLoadDuration()
	recs, err := s.evlog.LoadAll(ctx, aggID)
	t.ObserveDuration()
	if err != nil {
		return nil, fmt.Errorf("load aggregate_id=%s: %w", aggID, err)
	}

	events := make([]any, 0, len(recs))
	for _, rec := range recs {
		ev, err := s.registry.Decode(rec)
		if err != nil {
			if errors.Is(err, ErrUnknownEventKind) {
				return nil, fmt.Errorf("aggregate_id=%s record=%s: %w", aggID, rec.ID, err)
			}
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

type storeOptions struct{ metrics RuntimeMetrics }

type StoreOption interface{ applyToStore(*storeOptions) }

func (o RuntimeMetricsOption) applyToStore(s *storeOptions) { s.metrics = o.m }
