package es

import (
	"log/slog"
	"testing"
)

// === Helpers ===

// TestStore bundles a Store with its collaborators for assertions in tests.
type TestStore struct {
	Store    *Store
	Log      *MemoryLog
	Registry *Registry
	Notifier *Notifier
}

// NewTestStore builds a memory-backed store. Behaviors passed in get their
// event kinds registered.
func NewTestStore(t *testing.T, behaviors ...Behavior) *TestStore {
	t.Helper()

	log := slog.Default()
	registry := NewRegistry()
	for _, b := range behaviors {
		b.RegisterEvents(registry)
	}

	evlog := NewMemoryLog()
	notifier := NewNotifier(log)
	return &TestStore{
		Store:    NewStore(log, evlog, registry, notifier),
		Log:      evlog,
		Registry: registry,
		Notifier: notifier,
	}
}
