package es

import (
	"context"
	"log/slog"
	"sync"
)

// MemoryLog is a simple, correct in-memory event log for tests/dev.
type MemoryLog struct {
	mu      sync.Mutex
	log     *slog.Logger
	streams map[string][]Record
}

func NewMemoryLog() *MemoryLog {
	return &MemoryLog{
		log:     slog.Default().With(slog.String("log", "memory")),
		streams: map[string][]Record{},
	}
}

func (m *MemoryLog) Append(_ context.Context, aggID string, recs []Record) error {
	if len(recs) == 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, rec := range recs {
		if err := rec.Validate(); err != nil {
			return err
		}
	}

	m.streams[aggID] = append(m.streams[aggID], recs...)
	m.log.Debug(
		"append",
		slog.String("aggregate_id", aggID),
		slog.Int("num_records", len(recs)),
		slog.Int("stream_len", len(m.streams[aggID])),
	)
	return nil
}

func (m *MemoryLog) LoadAll(_ context.Context, aggID string) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stream := m.streams[aggID]
	out := make([]Record, len(stream))
	copy(out, stream)
	return out, nil
}

var _ EventLog = (*MemoryLog)(nil)
