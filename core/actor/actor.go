package actor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/codewandler/esagg-go/core/es"
)

// ErrActorUnavailable is returned when the target actor terminated before or
// during a request. The caller should re-resolve via the directory; whether
// the command executed is unknown unless the reply carried a result.
var ErrActorUnavailable = errors.New("actor unavailable")

type Options struct {
	MailboxSize int
	Context     context.Context
	Logger      *slog.Logger
	Metrics     es.RuntimeMetrics
}

type request struct {
	ctx   context.Context
	cmd   any
	reply chan response
}

type response struct {
	events []any
	err    error
}

// Actor owns one aggregate's state and serializes all command execution
// against it. Create actors through the Directory, not directly, so the
// single-writer invariant holds per aggregate id.
type Actor struct {
	id       string
	behavior es.Behavior
	store    *es.Store
	log      *slog.Logger
	metrics  es.RuntimeMetrics

	mailbox chan *request
	stop    chan struct{}
	done    chan struct{}

	// termErr is written at most once, before done is closed.
	termErr error

	stopOnce sync.Once
}

// New starts an actor for the aggregate id bound to behavior. The returned
// actor is replaying; commands sent meanwhile queue in arrival order.
func New(id string, behavior es.Behavior, store *es.Store, opt Options) *Actor {
	if opt.MailboxSize == 0 {
		opt.MailboxSize = 256
	}
	if opt.Context == nil {
		opt.Context = context.Background()
	}
	if opt.Logger == nil {
		opt.Logger = slog.Default()
	}
	if opt.Metrics == nil {
		opt.Metrics = es.NopRuntimeMetrics()
	}

	a := &Actor{
		id:       id,
		behavior: behavior,
		store:    store,
		log: opt.Logger.With(
			slog.Group(
				"agg",
				slog.String("type", behavior.Name()),
				slog.String("id", id),
			),
		),
		metrics: opt.Metrics,
		mailbox: make(chan *request, opt.MailboxSize),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	go a.run(opt.Context)
	return a
}

func (a *Actor) ID() string { return a.id }

// Done is closed when the actor has terminated and released its state.
func (a *Actor) Done() <-chan struct{} { return a.done }

// Stop requests shutdown and waits for termination. Idempotent.
func (a *Actor) Stop() {
	a.stopOnce.Do(func() { close(a.stop) })
	<-a.done
}

// Execute submits cmd and blocks until the actor replies, the actor
// terminates, or ctx is done. On success it returns the committed events
// (empty when the command accepted without producing any). A ctx error after
// submission means the outcome is unknown: the command may still execute.
func (a *Actor) Execute(ctx context.Context, cmd any) ([]any, error) {
	req := &request{ctx: ctx, cmd: cmd, reply: make(chan response, 1)}

	select {
	case <-a.done:
		return nil, a.terminationErr()
	case <-ctx.Done():
		return nil, ctx.Err()
	case a.mailbox <- req:
	}

	select {
	case resp := <-req.reply:
		return resp.events, resp.err
	case <-a.done:
		// a reply may have raced the termination
		select {
		case resp := <-req.reply:
			return resp.events, resp.err
		default:
			return nil, a.terminationErr()
		}
	case <-ctx.Done():
		return nil, fmt.Errorf("outcome unknown: %w", ctx.Err())
	}
}

// terminationErr must only be called after done is closed.
func (a *Actor) terminationErr() error {
	if a.termErr != nil {
		return errors.Join(ErrActorUnavailable, a.termErr)
	}
	return ErrActorUnavailable
}

func (a *Actor) run(ctx context.Context) {
	defer close(a.done)
	defer a.metrics.ActorStopped(a.behavior.Name())
	a.metrics.ActorStarted(a.behavior.Name())

	state, err := a.replay(ctx)
	if err != nil {
		a.log.Error("replay failed", slog.Any("error", err))
		a.termErr = err
		return
	}

	for {
		select {
		case <-a.stop:
			return
		case <-ctx.Done():
			return
		case req := <-a.mailbox:
			next, crashed := a.process(state, req)
			if crashed {
				return
			}
			state = next
		}
	}
}

// replay rebuilds state from the durable log. A panic in the behavior's
// transition function is contained here so a corrupt-state fold terminates
// only this actor, like any other replay failure.
func (a *Actor) replay(ctx context.Context) (state any, err error) {
	t := a.metrics.ReplayDuration(a.behavior.Name())
	defer t.ObserveDuration()

	defer func() {
		if r := recover(); r != nil {
			state = nil
			err = fmt.Errorf("replay panic: %v", r)
			a.log.Error(
				"replay panicked",
				slog.Any("recovered", r),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()

	events, err := a.store.Load(ctx, a.id)
	if err != nil {
		return nil, err
	}
	state = es.Replay(a.behavior, events)

	a.log.Debug("replayed", slog.Int("num_events", len(events)))
	return state, nil
}

// process runs exactly one command: decide, commit, fold. The tentative
// state is adopted only after the commit succeeded; on rejection or commit
// failure the pre-command state is returned unchanged. A panic in domain
// code is contained to this actor: the caller gets the failure and crashed
// is true so the loop terminates.
func (a *Actor) process(state any, req *request) (next any, crashed bool) {
	t := a.metrics.CommandDuration(a.behavior.Name())
	defer t.ObserveDuration()

	next = state

	var resp response
	func() {
		defer func() {
			if r := recover(); r != nil {
				crashed = true
				next = state
				resp = response{err: fmt.Errorf("aggregate crashed: panic: %v", r)}
				a.termErr = fmt.Errorf("panic: %v", r)
				a.log.Error(
					"actor panicked",
					slog.Any("recovered", r),
					slog.String("stack", string(debug.Stack())),
				)
			}
		}()

		events, err := a.behavior.Decide(state, req.cmd)
		if err != nil {
			a.metrics.CommandProcessed(a.behavior.Name(), false)
			resp = response{err: err}
			return
		}

		if err := a.store.Commit(req.ctx, a.id, events); err != nil {
			a.metrics.CommandProcessed(a.behavior.Name(), false)
			resp = response{err: err}
			return
		}

		next = es.Fold(a.behavior, state, events)
		a.metrics.CommandProcessed(a.behavior.Name(), true)
		resp = response{events: events}
	}()

	req.reply <- resp
	return next, crashed
}
