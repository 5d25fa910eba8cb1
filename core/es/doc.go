// Package es provides the event-sourcing core: an append-only event log,
// a codec that round-trips typed events through persisted records, an event
// store that commits batches and fans them out to reactors, and the behavior
// contract that domain code implements.
//
// # Overview
//
// Aggregate state is never stored directly. It is rebuilt by folding the
// ordered event sequence of an aggregate through the behavior's transition
// function. Mutations are expressed as commands; an accepted command commits
// a non-empty ordered batch of new events, a rejected command changes nothing.
//
// # Core Components
//
// EventLog: durable, per-aggregate ordered append-only storage of records.
// Use [MemoryLog] for tests and development, or the Redis adapter
// (adapters/redis) for an RPUSH/LRANGE backed log.
//
// Registry: maps event kind discriminants to constructors so persisted
// records can be decoded back to their exact original type:
//
//	registry := es.NewRegistry()
//	es.RegisterEvents(registry, es.Event[CounterCreated](), es.Event[Incremented]())
//
// Store: orchestrates codec and log. [Store.Commit] appends a batch and, only
// after the append succeeded, notifies every registered reactor once per
// event, in batch order. [Store.Load] replays and decodes the full sequence
// for an aggregate.
//
// Notifier: broadcasts committed events to reactors in registration order,
// at-least-once. Reactors must be idempotent; the notifier never retries.
//
// Behavior: the domain collaborator. It supplies the initial state, the
// transition function folding events into state, and the decision function
// mapping (state, command) to new events or a [Rejection].
//
// # Guarantees
//
// For any aggregate id, events are totally ordered in append order, an event
// is visible to reactors only after it is durably appended, and a command
// either commits its whole batch or nothing.
package es
