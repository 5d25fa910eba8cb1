package prometheus

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRuntimeMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewRuntimeMetrics(reg)

	require.NotNil(t, m)

	// Store operations
	timer := m.StoreAppendDuration()
	assert.NotNil(t, timer)
	timer.ObserveDuration()

	timer = m.StoreLoadDuration()
	assert.NotNil(t, timer)
	timer.ObserveDuration()

	m.EventsCommitted(3)

	// Actor lifecycle and command processing
	timer = m.ReplayDuration("counter")
	assert.NotNil(t, timer)
	timer.ObserveDuration()

	timer = m.CommandDuration("counter")
	assert.NotNil(t, timer)
	timer.ObserveDuration()

	m.CommandProcessed("counter", true)
	m.CommandProcessed("counter", false)
	m.ActorStarted("counter")
	m.ActorStopped("counter")

	// Notifier
	timer = m.NotifyDuration("read-model")
	assert.NotNil(t, timer)
	timer.ObserveDuration()

	// metrics were registered
	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewRuntimeMetrics(reg)

	assert.Panics(t, func() {
		NewRuntimeMetrics(reg)
	})
}
