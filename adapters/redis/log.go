// Package redis provides a Redis list-backed implementation of es.EventLog.
// Each aggregate id maps to one list key; appends use RPUSH (a multi-value
// RPUSH is atomic) and loads use LRANGE over the full list, so per-key
// ordering is linearizable on the Redis side.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/codewandler/esagg-go/core/es"
)

const defaultKeyPrefix = "esagg.log"

type Config struct {
	// Client is an optional preconnected client. When nil, a client is
	// created from Addr/Password/DB and owned (closed) by the log.
	Client *goredis.Client

	Addr     string
	Password string
	DB       int

	// KeyPrefix namespaces the list keys (default: "esagg.log").
	KeyPrefix string

	// Log for diagnostics (optional).
	Log *slog.Logger
}

type Log struct {
	rdb        *goredis.Client
	log        *slog.Logger
	prefix     string
	ownsClient bool
}

func NewLog(cfg Config) (*Log, error) {
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}

	rdb := cfg.Client
	ownsClient := false
	if rdb == nil {
		if cfg.Addr == "" {
			return nil, fmt.Errorf("either Client or Addr is required")
		}
		rdb = goredis.NewClient(&goredis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		ownsClient = true
	}

	return &Log{
		rdb:        rdb,
		log:        log.With(slog.String("log", "redis")),
		prefix:     prefix,
		ownsClient: ownsClient,
	}, nil
}

func (l *Log) Close() error {
	if !l.ownsClient {
		return nil
	}
	return l.rdb.Close()
}

func (l *Log) key(aggID string) string {
	return l.prefix + ":" + aggID
}

// Append pushes the batch onto the aggregate's list. A single multi-value
// RPUSH is atomic, which gives the all-or-nothing batch guarantee the store
// relies on.
func (l *Log) Append(ctx context.Context, aggID string, recs []es.Record) error {
	if len(recs) == 0 {
		return nil
	}

	vals := make([]any, 0, len(recs))
	for _, rec := range recs {
		if err := rec.Validate(); err != nil {
			return err
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		vals = append(vals, data)
	}

	key := l.key(aggID)
	if err := l.rdb.RPush(ctx, key, vals...).Err(); err != nil {
		return fmt.Errorf("%w: rpush %s: %v", es.ErrStoreUnavailable, key, err)
	}

	l.log.Debug(
		"append",
		slog.String("key", key),
		slog.Int("num_records", len(recs)),
	)
	return nil
}

// LoadAll reads the full list for the aggregate. A missing key yields an
// empty sequence, not an error.
func (l *Log) LoadAll(ctx context.Context, aggID string) ([]es.Record, error) {
	key := l.key(aggID)

	vals, err := l.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: lrange %s: %v", es.ErrStoreUnavailable, key, err)
	}

	recs := make([]es.Record, 0, len(vals))
	for i, val := range vals {
		var rec es.Record
		if err := json.Unmarshal([]byte(val), &rec); err != nil {
			return nil, fmt.Errorf("corrupt record at %s[%d]: %w", key, i, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

var _ es.EventLog = (*Log)(nil)
