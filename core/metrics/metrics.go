// Package metrics provides abstract metrics interfaces so the runtime can be
// instrumented by pluggable backends (Prometheus, StatsD, etc.) without
// coupling the core packages to any specific implementation.
package metrics

// Timer measures the duration of an operation. Call ObserveDuration when the
// operation completes to record the elapsed time.
type Timer interface {
	// ObserveDuration records the elapsed time since the timer was created.
	ObserveDuration()
}

// TimerFunc creates a new Timer. This allows deferred timing patterns like:
// defer metrics.ReplayDuration("counter").ObserveDuration()
type TimerFunc func() Timer

// nopTimer is a no-op implementation of Timer.
type nopTimer struct{}

func (nopTimer) ObserveDuration() {}

// NopTimer returns a no-op Timer.
func NopTimer() Timer { return nopTimer{} }

// NopTimerFunc returns a TimerFunc that always returns a no-op Timer.
func NopTimerFunc() TimerFunc { return func() Timer { return nopTimer{} } }
