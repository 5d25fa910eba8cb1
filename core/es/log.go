package es

import "context"

// EventLog is the durable, per-aggregate ordered append-only storage of
// records. It is the single source of truth and does not interpret record
// content.
//
// Append persists the batch after all previously appended records for the
// aggregate, preserving batch-internal order, atomically (all-or-nothing).
// An empty batch is a no-op. Implementations that cannot guarantee batch
// atomicity must fail with ErrStoreUnavailable rather than risk a partial
// append.
//
// LoadAll returns the full ordered sequence of records ever appended for the
// aggregate, or an empty slice if none exist.
type EventLog interface {
	Append(ctx context.Context, aggID string, recs []Record) error
	LoadAll(ctx context.Context, aggID string) ([]Record, error)
}
