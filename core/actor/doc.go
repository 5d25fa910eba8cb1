// Package actor implements the per-aggregate single-writer runtime: one
// goroutine-backed actor per active aggregate id, plus the directory that
// maps ids to live actors.
//
// # Actor
//
// Each [Actor] exclusively owns one aggregate's in-memory state. On start it
// rebuilds that state by replaying the event log; commands arriving during
// replay queue in the mailbox and are processed afterwards, in arrival
// order. Commands are processed strictly one at a time: the behavior decides
// against the current state, produced events are committed to the store, and
// only after a successful commit does the actor adopt the folded state.
// Rejections and commit failures leave state untouched.
//
// A panic in domain code terminates the affected actor only. Callers get
// [ErrActorUnavailable] and re-resolve through the directory, which replays
// a fresh actor from the durable log.
//
// # Directory
//
// The [Directory] serializes id-to-actor allocation so at most one actor
// exists per aggregate id at any instant. Actors are created lazily on first
// resolve and deregistered when they terminate, for whatever reason.
// Operations on different aggregate ids proceed fully in parallel; there is
// no global lock across aggregates.
package actor
