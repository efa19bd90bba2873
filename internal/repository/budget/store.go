// Package budget persists enrichment token counters in the key-value store.
package budget

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kailas-cloud/notekeep/internal/db"
)

// Retention for persisted counters. Each outlives its period so a restart near
// the boundary still reads the running total.
const (
	DefaultDailyTTL   = 48 * time.Hour
	DefaultMonthlyTTL = 62 * 24 * time.Hour
)

// Store implements enrichment.BudgetStore with INCRBY + EXPIRE NX + GET.
type Store struct {
	kv       db.KVStore
	dailyTTL time.Duration
	monthTTL time.Duration
}

// Option configures a Store.
type Option func(*Store)

// WithTTL overrides the default retention for daily and monthly counters.
func WithTTL(daily, monthly time.Duration) Option {
	return func(s *Store) {
		s.dailyTTL = daily
		s.monthTTL = monthly
	}
}

// New creates a budget store over kv.
func New(kv db.KVStore, opts ...Option) *Store {
	s := &Store{
		kv:       kv,
		dailyTTL: DefaultDailyTTL,
		monthTTL: DefaultMonthlyTTL,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// IncrBy adds val to the counter and starts its TTL on first write.
func (s *Store) IncrBy(ctx context.Context, key string, val int64) error {
	if err := s.kv.IncrBy(ctx, key, val); err != nil {
		return fmt.Errorf("budget incr %s: %w", key, err)
	}
	if err := s.kv.Expire(ctx, key, s.ttlFor(key), true); err != nil {
		return fmt.Errorf("budget expire %s: %w", key, err)
	}
	return nil
}

// Get returns the counter value, 0 when the key is absent.
func (s *Store) Get(ctx context.Context, key string) (int64, error) {
	data, err := s.kv.Get(ctx, key)
	if errors.Is(err, db.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("budget get %s: %w", key, err)
	}

	val, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("budget get %s: parse %q: %w", key, data, err)
	}
	return val, nil
}

// ttlFor picks the retention from the period segment of the key.
func (s *Store) ttlFor(key string) time.Duration {
	if strings.Contains(key, ":daily:") {
		return s.dailyTTL
	}
	return s.monthTTL
}
