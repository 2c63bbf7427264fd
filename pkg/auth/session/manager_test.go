package session

import (
	"context"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

type memoryStore struct {
	values map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}}
}

func (m *memoryStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	m.values[key] = value.(string)
	return nil
}

func (m *memoryStore) Get(_ context.Context, key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", redislib.Nil
	}
	return v, nil
}

func (m *memoryStore) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

type plainKeyer struct{}

func (plainKeyer) AccessSessionKey(accessID string) string { return "session:" + accessID }

func testManager(store sessionStore) *Manager {
	return &Manager{store: store, keyer: plainKeyer{}, ttl: time.Hour}
}

func TestGenerateStoresToken(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	m := testManager(store)

	token, err := m.Generate(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if store.values["session:acc-1"] != token {
		t.Fatal("token not stored under the session key")
	}
}

func TestRotateInvalidatesOldSession(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	m := testManager(store)
	ctx := context.Background()

	token, err := m.Generate(ctx, "acc-1")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	newID, newToken, err := m.Rotate(ctx, "acc-1", token)
	if err != nil {
		t.Fatalf("rotate failed: %v", err)
	}
	if newID == "acc-1" || newToken == token {
		t.Fatal("rotation must produce a fresh id and token")
	}
	if _, ok := store.values["session:acc-1"]; ok {
		t.Fatal("old session should be deleted")
	}

	ok, err := m.HasSession(ctx, newID)
	if err != nil || !ok {
		t.Fatalf("expected new session to be live, ok=%v err=%v", ok, err)
	}
}

func TestRotateRejectsMismatchedToken(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	m := testManager(store)
	ctx := context.Background()

	if _, err := m.Generate(ctx, "acc-1"); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, _, err := m.Rotate(ctx, "acc-1", "forged"); err != ErrInvalidRefreshToken {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}

func TestRevokeEndsSession(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	m := testManager(store)
	ctx := context.Background()

	if _, err := m.Generate(ctx, "acc-1"); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if err := m.Revoke(ctx, "acc-1"); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}

	ok, err := m.HasSession(ctx, "acc-1")
	if err != nil {
		t.Fatalf("has session failed: %v", err)
	}
	if ok {
		t.Fatal("expected session to be gone after revoke")
	}
}
