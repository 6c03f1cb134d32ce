package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
)

type memoryStore struct {
	values map[string]string
	ttls   map[string]time.Duration
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memoryStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.values[key] = value.(string)
	m.ttls[key] = ttl
	return nil
}

func (m *memoryStore) Get(ctx context.Context, key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", redislib.Nil
	}
	return v, nil
}

func (m *memoryStore) Del(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

type passthroughKeyer struct{}

func (passthroughKeyer) AccessSessionKey(accessID string) string {
	return "session:" + accessID
}

func newTestManager() (*Manager, *memoryStore) {
	store := newMemoryStore()
	return &Manager{store: store, keyer: passthroughKeyer{}, ttl: time.Hour}, store
}

func TestSessionLifecycle(t *testing.T) {
	m, store := newTestManager()
	ctx := context.Background()
	accessID := NewAccessID()

	ok, err := m.HasSession(ctx, accessID)
	if err != nil {
		t.Fatalf("HasSession returned error: %v", err)
	}
	if ok {
		t.Fatal("expected no session before Start")
	}

	userID := uuid.New()
	if err := m.Start(ctx, accessID, userID); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if ttl := store.ttls["session:"+accessID]; ttl != time.Hour {
		t.Fatalf("expected TTL of one hour, got %s", ttl)
	}

	ok, err = m.HasSession(ctx, accessID)
	if err != nil {
		t.Fatalf("HasSession returned error: %v", err)
	}
	if !ok {
		t.Fatal("expected session after Start")
	}

	if err := m.Revoke(ctx, accessID); err != nil {
		t.Fatalf("Revoke returned error: %v", err)
	}

	ok, err = m.HasSession(ctx, accessID)
	if err != nil {
		t.Fatalf("HasSession returned error: %v", err)
	}
	if ok {
		t.Fatal("expected session to be gone after Revoke")
	}
}

func TestManagerRejectsBlankAccessID(t *testing.T) {
	m, _ := newTestManager()
	ctx := context.Background()

	if err := m.Start(ctx, " ", uuid.New()); err == nil {
		t.Fatal("expected Start to reject blank access id")
	}
	if _, err := m.HasSession(ctx, ""); err == nil {
		t.Fatal("expected HasSession to reject blank access id")
	}
	if err := m.Revoke(ctx, ""); err == nil {
		t.Fatal("expected Revoke to reject blank access id")
	}
}
