package actor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/codewandler/esagg-go/core/es"
)

var (
	ErrDirectoryClosed = errors.New("directory closed")
	ErrUnknownBehavior = errors.New("unknown behavior")
)

type DirectoryOptions struct {
	Context     context.Context
	Logger      *slog.Logger
	Metrics     es.RuntimeMetrics
	MailboxSize int
}

// Directory maps aggregate identity to its live single-writer actor. Actors
// are created lazily on first resolve and removed when they terminate, so a
// later resolve reactivates a fresh actor that rebuilds state by replay.
//
// All mapping operations are serialized under one mutex; this is what makes
// duplicate actors for the same id impossible under concurrent first access.
// Command execution itself happens outside the lock, so different aggregates
// proceed fully in parallel.
type Directory struct {
	ctx     context.Context
	log     *slog.Logger
	store   *es.Store
	metrics es.RuntimeMetrics
	mailbox int

	mu        sync.Mutex
	behaviors map[string]es.Behavior
	entries   map[string]*Actor
	closed    bool
}

func NewDirectory(store *es.Store, opt DirectoryOptions) *Directory {
	if opt.Context == nil {
		opt.Context = context.Background()
	}
	if opt.Logger == nil {
		opt.Logger = slog.Default()
	}
	if opt.Metrics == nil {
		opt.Metrics = es.NopRuntimeMetrics()
	}

	return &Directory{
		ctx:       opt.Context,
		log:       opt.Logger.With(slog.String("component", "directory")),
		store:     store,
		metrics:   opt.Metrics,
		mailbox:   opt.MailboxSize,
		behaviors: map[string]es.Behavior{},
		entries:   map[string]*Actor{},
	}
}

// Register makes a behavior resolvable by name. Register at startup, before
// the first Resolve.
func (d *Directory) Register(b es.Behavior) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.behaviors[b.Name()] = b
	d.log.Debug("behavior registered", slog.String("behavior", b.Name()))
}

func (d *Directory) key(behavior, id string) string {
	return fmt.Sprintf("%s-%s", behavior, id)
}

// Resolve returns the live actor for (behavior, id), activating one if none
// exists. A handle may terminate at any time after resolution; callers that
// hit ErrActorUnavailable re-resolve and may retry the command.
func (d *Directory) Resolve(behavior, id string) (*Actor, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, ErrDirectoryClosed
	}

	key := d.key(behavior, id)

	if a, ok := d.entries[key]; ok {
		select {
		case <-a.Done():
			// terminated but not yet deregistered, replace below
			delete(d.entries, key)
		default:
			return a, nil
		}
	}

	b, ok := d.behaviors[behavior]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBehavior, behavior)
	}

	a := New(id, b, d.store, Options{
		Context:     d.ctx,
		Logger:      d.log,
		Metrics:     d.metrics,
		MailboxSize: d.mailbox,
	})
	d.entries[key] = a

	go func() {
		<-a.Done()
		d.deregister(key, a)
	}()

	d.log.Debug("actor activated", slog.String("key", key))
	return a, nil
}

// deregister removes the mapping if it still points at a. The identity check
// matters: a fresh actor may already have replaced a terminated one.
func (d *Directory) deregister(key string, a *Actor) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.entries[key] == a {
		delete(d.entries, key)
		d.log.Debug("actor deregistered", slog.String("key", key))
	}
}

// Len returns the number of live actors.
func (d *Directory) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}

// Shutdown stops all actors and rejects future resolves. Blocks until every
// actor has terminated.
func (d *Directory) Shutdown() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	actors := make([]*Actor, 0, len(d.entries))
	for _, a := range d.entries {
		actors = append(actors, a)
	}
	d.mu.Unlock()

	for _, a := range actors {
		a.Stop()
	}
	d.log.Debug("directory shut down", slog.Int("num_actors", len(actors)))
}
