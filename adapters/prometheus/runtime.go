package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/codewandler/esagg-go/core/es"
	"github.com/codewandler/esagg-go/core/metrics"
)

// runtimeMetrics implements es.RuntimeMetrics using Prometheus.
type runtimeMetrics struct {
	storeAppendDuration prometheus.Histogram
	storeLoadDuration   prometheus.Histogram
	eventsCommitted     prometheus.Counter

	replayDuration  *prometheus.HistogramVec
	commandDuration *prometheus.HistogramVec
	commandsTotal   *prometheus.CounterVec
	actorsActive    *prometheus.GaugeVec

	notifyDuration *prometheus.HistogramVec
}

// NewRuntimeMetrics creates a new Prometheus implementation of es.RuntimeMetrics.
func NewRuntimeMetrics(reg prometheus.Registerer) es.RuntimeMetrics {
	m := &runtimeMetrics{
		storeAppendDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "esagg_store_append_duration_seconds",
			Help:    "Event log append time in seconds",
			Buckets: defaultBuckets,
		}),

		storeLoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "esagg_store_load_duration_seconds",
			Help:    "Event log load time in seconds",
			Buckets: defaultBuckets,
		}),

		eventsCommitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "esagg_events_committed_total",
			Help: "Total number of events durably committed",
		}),

		replayDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "esagg_actor_replay_duration_seconds",
			Help:    "Aggregate replay time in seconds",
			Buckets: defaultBuckets,
		}, []string{"behavior"}),

		commandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "esagg_actor_command_duration_seconds",
			Help:    "Command processing time in seconds",
			Buckets: defaultBuckets,
		}, []string{"behavior"}),

		commandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "esagg_actor_commands_total",
			Help: "Total number of commands processed",
		}, []string{"behavior", "accepted"}),

		actorsActive: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "esagg_actors_active",
			Help: "Number of live aggregate actors",
		}, []string{"behavior"}),

		notifyDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "esagg_notify_duration_seconds",
			Help:    "Reactor notification time in seconds",
			Buckets: defaultBuckets,
		}, []string{"reactor"}),
	}

	reg.MustRegister(
		m.storeAppendDuration,
		m.storeLoadDuration,
		m.eventsCommitted,
		m.replayDuration,
		m.commandDuration,
		m.commandsTotal,
		m.actorsActive,
		m.notifyDuration,
	)

	return m
}

func (m *runtimeMetrics) StoreAppendDuration() metrics.Timer {
	return newTimer(m.storeAppendDuration)
}

func (m *runtimeMetrics) StoreLoadDuration() metrics.Timer {
	return newTimer(m.storeLoadDuration)
}

func (m *runtimeMetrics) EventsCommitted(count int) {
	m.eventsCommitted.Add(float64(count))
}

func (m *runtimeMetrics) ReplayDuration(behavior string) metrics.Timer {
	return newTimer(m.replayDuration.WithLabelValues(behavior))
}

func (m *runtimeMetrics) CommandDuration(behavior string) metrics.Timer {
	return newTimer(m.commandDuration.WithLabelValues(behavior))
}

func (m *runtimeMetrics) CommandProcessed(behavior string, accepted bool) {
	m.commandsTotal.WithLabelValues(behavior, boolToStr(accepted)).Inc()
}

func (m *runtimeMetrics) ActorStarted(behavior string) {
	m.actorsActive.WithLabelValues(behavior).Inc()
}

func (m *runtimeMetrics) ActorStopped(behavior string) {
	m.actorsActive.WithLabelValues(behavior).Dec()
}

func (m *runtimeMetrics) NotifyDuration(reactor string) metrics.Timer {
	return newTimer(m.notifyDuration.WithLabelValues(reactor))
}

var _ es.RuntimeMetrics = (*runtimeMetrics)(nil)
