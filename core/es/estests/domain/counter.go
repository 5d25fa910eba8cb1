// Package domain provides a small counter aggregate used by the runtime
// tests and examples.
package domain

import (
	"fmt"

	"github.com/codewandler/esagg-go/core/es"
)

const BehaviorName = "counter"

// === State ===

type Counter struct {
	Created bool
	Count   int
}

// === Events ===

type (
	CounterCreated struct{}

	Incremented struct {
		// Count is the counter value after this increment.
		Count int `json:"count"`
	}
)

// === Commands ===

type (
	CreateCounter struct {
		ID string `json:"id"`
	}

	Increment struct {
		ID string `json:"id"`
	}
)

func (c CreateCounter) AggregateID() string { return c.ID }
func (c Increment) AggregateID() string     { return c.ID }

// === Behavior ===

type Behavior struct{}

func (Behavior) Name() string      { return BehaviorName }
func (Behavior) InitialState() any { return Counter{} }

func (Behavior) RegisterEvents(r es.Registrar) {
	es.RegisterEvents(r, es.Event[CounterCreated](), es.Event[Incremented]())
}

func (Behavior) NextState(event any, state any) any {
	s := state.(Counter)
	switch e := event.(type) {
	case *CounterCreated:
		s.Created = true
	case *Incremented:
		s.Count = e.Count
	}
	return s
}

func (Behavior) Decide(state any, cmd any) ([]any, error) {
	s := state.(Counter)
	switch cmd.(type) {
	case CreateCounter:
		if s.Created {
			return nil, es.Reject("already created")
		}
		return []any{&CounterCreated{}}, nil
	case Increment:
		if !s.Created {
			return nil, es.Reject("not created")
		}
		return []any{&Incremented{Count: s.Count + 1}}, nil
	}
	return nil, fmt.Errorf("unknown command: %T", cmd)
}

var _ es.Behavior = Behavior{}
