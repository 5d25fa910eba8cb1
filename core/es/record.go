package es

import (
	"encoding/json"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Record is the serialized form of one event, the unit of storage in the
// event log. It carries the kind discriminant plus everything needed to
// reconstruct the event during replay.
type Record struct {
	// ID is the unique identifier of this record.
	ID string `json:"id"`
	// AggregateID identifies the aggregate instance this event belongs to.
	AggregateID string `json:"aggregate_id"`
	// Kind is the event kind discriminant used for decode routing.
	Kind string `json:"kind"`
	// OccurredAt is when the event was produced.
	OccurredAt time.Time `json:"occurred_at"`
	// Data contains the JSON-encoded event payload.
	Data json.RawMessage `json:"data"`
}

func (r Record) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("record id is empty")
	}
	if r.AggregateID == "" {
		return fmt.Errorf("record aggregate id is empty")
	}
	if r.Kind == "" {
		return fmt.Errorf("record kind is empty")
	}
	if r.OccurredAt.IsZero() {
		return fmt.Errorf("record occurred at is zero")
	}
	return nil
}

// Encode serializes an event into a record for the given aggregate id.
func Encode(aggID string, ev any) (Record, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return Record{}, err
	}
	rec := Record{
		ID:          gonanoid.Must(),
		AggregateID: aggID,
		Kind:        kindOf(ev),
		OccurredAt:  time.Now(),
		Data:        data,
	}
	if err := rec.Validate(); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// EncodeAll serializes an ordered batch, preserving order.
func EncodeAll(aggID string, events []any) ([]Record, error) {
	recs := make([]Record, 0, len(events))
	for _, ev := range events {
		rec, err := Encode(aggID, ev)
		if err != nil {
			return nil, fmt.Errorf("encode %T: %w", ev, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// Decode reconstructs the event carried by rec. The result has the exact
// concrete type that was registered for rec.Kind.
func (r *Registry) Decode(rec Record) (any, error) {
	ctor, err := r.ctor(rec.Kind)
	if err != nil {
		return nil, err
	}
	ev := ctor()
	if rec.Data != nil {
		if err := json.Unmarshal(rec.Data, ev); err != nil {
			return nil, err
		}
	}
	return ev, nil
}
