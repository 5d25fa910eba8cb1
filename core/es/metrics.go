package es

import "github.com/codewandler/esagg-go/core/metrics"

// RuntimeMetrics defines the metrics interface for the aggregate runtime.
// Implementations must be thread-safe.
type RuntimeMetrics interface {
	// Store operations
	StoreAppendDuration() metrics.Timer
	StoreLoadDuration() metrics.Timer
	EventsCommitted(count int)

	// Actor lifecycle and command processing
	ReplayDuration(behavior string) metrics.Timer
	CommandDuration(behavior string) metrics.Timer
	CommandProcessed(behavior string, accepted bool)
	ActorStarted(behavior string)
	ActorStopped(behavior string)

	// Notifier
	NotifyDuration(reactor string) metrics.Timer
}

// nopRuntimeMetrics is a no-op implementation of RuntimeMetrics.
type nopRuntimeMetrics struct{}

func (nopRuntimeMetrics) StoreAppendDuration() metrics.Timer { return metrics.NopTimer() }
func (nopRuntimeMetrics) StoreLoadDuration() metrics.Timer   { return metrics.NopTimer() }
func (nopRuntimeMetrics) EventsCommitted(int)                {}

func (nopRuntimeMetrics) ReplayDuration(string) metrics.Timer  { return metrics.NopTimer() }
func (nopRuntimeMetrics) CommandDuration(string) metrics.Timer { return metrics.NopTimer() }
func (nopRuntimeMetrics) CommandProcessed(string, bool)        {}
func (nopRuntimeMetrics) ActorStarted(string)                  {}
func (nopRuntimeMetrics) ActorStopped(string)                  {}

func (nopRuntimeMetrics) NotifyDuration(string) metrics.Timer { return metrics.NopTimer() }

// NopRuntimeMetrics returns a no-op RuntimeMetrics implementation.
func NopRuntimeMetrics() RuntimeMetrics { return nopRuntimeMetrics{} }

// RuntimeMetricsOption sets the metrics implementation for runtime components.
type RuntimeMetricsOption struct{ m RuntimeMetrics }

// WithMetrics sets the metrics implementation for runtime components.
func WithMetrics(m RuntimeMetrics) RuntimeMetricsOption { return RuntimeMetricsOption{m: m} }
