package es

// Behavior is the domain collaborator for one aggregate type. The core
// treats the state it produces as opaque: state is exclusively owned by the
// aggregate actor and only ever advanced through NextState.
type Behavior interface {
	// Name identifies the aggregate type.
	Name() string

	// InitialState is the state of an aggregate with no events yet.
	InitialState() any

	// NextState folds one event into state and returns the new state.
	// It must be deterministic and free of side effects: replaying the
	// full event sequence from InitialState is authoritative.
	NextState(event any, state any) any

	// Decide validates cmd against state. It returns the ordered batch of
	// events the command produces, or an error. A *Rejection error means
	// the command was declined by domain logic and state is unchanged.
	// Decide must not mutate state; the actor folds the returned events
	// itself after a successful commit.
	Decide(state any, cmd any) ([]any, error)

	// RegisterEvents registers the behavior's event kinds for decoding.
	RegisterEvents(r Registrar)
}

// Command is the minimal contract for routable commands: every command
// targets exactly one aggregate instance.
type Command interface {
	AggregateID() string
}

// Replay folds events through b.NextState starting from the initial state.
func Replay(b Behavior, events []any) any {
	state := b.InitialState()
	for _, ev := range events {
		state = b.NextState(ev, state)
	}
	return state
}

// Fold advances state by one ordered batch.
func Fold(b Behavior, state any, events []any) any {
	for _, ev := range events {
		state = b.NextState(ev, state)
	}
	return state
}
