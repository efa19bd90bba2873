package budget

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/kailas-cloud/notekeep/internal/db"
)

type expireCall struct {
	key string
	ttl time.Duration
	nx  bool
}

type mockKV struct {
	data      map[string]int64
	raw       map[string][]byte
	expires   []expireCall
	getErr    error
	incrErr   error
	expireErr error
}

func newMockKV() *mockKV {
	return &mockKV{data: map[string]int64{}, raw: map[string][]byte{}}
}

func (m *mockKV) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if b, ok := m.raw[key]; ok {
		return b, nil
	}
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return []byte(strconv.FormatInt(v, 10)), nil
}

func (m *mockKV) IncrBy(_ context.Context, key string, val int64) error {
	if m.incrErr != nil {
		return m.incrErr
	}
	m.data[key] += val
	return nil
}

func (m *mockKV) Expire(_ context.Context, key string, ttl time.Duration, nx bool) error {
	if m.expireErr != nil {
		return m.expireErr
	}
	m.expires = append(m.expires, expireCall{key: key, ttl: ttl, nx: nx})
	return nil
}

func TestStore_IncrBySetsTTL(t *testing.T) {
	kv := newMockKV()
	s := New(kv)

	if err := s.IncrBy(context.Background(), "notekeep:budget:gemini:daily:2026-05-07", 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.IncrBy(context.Background(), "notekeep:budget:gemini:monthly:2026-05", 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(kv.expires) != 2 {
		t.Fatalf("expected 2 expire calls, got %d", len(kv.expires))
	}
	if kv.expires[0].ttl != DefaultDailyTTL || !kv.expires[0].nx {
		t.Errorf("unexpected daily expire %+v", kv.expires[0])
	}
	if kv.expires[1].ttl != DefaultMonthlyTTL || !kv.expires[1].nx {
		t.Errorf("unexpected monthly expire %+v", kv.expires[1])
	}
}

func TestStore_WithTTL(t *testing.T) {
	kv := newMockKV()
	s := New(kv, WithTTL(time.Hour, 2*time.Hour))

	_ = s.IncrBy(context.Background(), "k:daily:x", 1)
	if kv.expires[0].ttl != time.Hour {
		t.Errorf("expected 1h, got %v", kv.expires[0].ttl)
	}
}

func TestStore_Get(t *testing.T) {
	kv := newMockKV()
	kv.data["present"] = 1234
	s := New(kv)

	got, err := s.Get(context.Background(), "present")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1234 {
		t.Errorf("expected 1234, got %d", got)
	}

	got, err = s.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("missing key must not fail: %v", err)
	}
	if got != 0 {
		t.Errorf("expected 0 for missing key, got %d", got)
	}
}

func TestStore_GetParseError(t *testing.T) {
	kv := newMockKV()
	kv.raw["bad"] = []byte("not-a-number")

	if _, err := New(kv).Get(context.Background(), "bad"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestStore_Errors(t *testing.T) {
	boom := errors.New("boom")

	kv := newMockKV()
	kv.getErr = boom
	if _, err := New(kv).Get(context.Background(), "k"); !errors.Is(err, boom) {
		t.Errorf("expected wrapped get error, got %v", err)
	}

	kv = newMockKV()
	kv.incrErr = boom
	if err := New(kv).IncrBy(context.Background(), "k", 1); !errors.Is(err, boom) {
		t.Errorf("expected wrapped incr error, got %v", err)
	}

	kv = newMockKV()
	kv.expireErr = boom
	if err := New(kv).IncrBy(context.Background(), "k", 1); !errors.Is(err, boom) {
		t.Errorf("expected wrapped expire error, got %v", err)
	}
}
