package cart

import (
	"context"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

type memoryKV struct {
	values map[string]string
	ttls   map[string]time.Duration
}

func newMemoryKV() *memoryKV {
	return &memoryKV{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memoryKV) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	switch v := value.(type) {
	case []byte:
		m.values[key] = string(v)
	case string:
		m.values[key] = v
	}
	m.ttls[key] = ttl
	return nil
}

func (m *memoryKV) Get(ctx context.Context, key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", redislib.Nil
	}
	return v, nil
}

func (m *memoryKV) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
		delete(m.ttls, key)
	}
	return nil
}

func (m *memoryKV) CartKey(sessionID string) string {
	return "cm:cart:" + sessionID
}

func newTestStore(t *testing.T, kv *memoryKV) *Store {
	t.Helper()
	store, err := NewStore(kv, 4*time.Hour)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func TestStoreLoadMissingReturnsFreshState(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, newMemoryKV())

	state, err := store.Load(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !state.Cart.IsEmpty() {
		t.Fatal("expected empty cart for a fresh session")
	}
	if state.Customization.IsOpen() {
		t.Fatal("expected no open customization for a fresh session")
	}
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	kv := newMemoryKV()
	store := newTestStore(t, kv)
	ctx := context.Background()

	state := &State{}
	mustAdd(t, &state.Cart, tacoSnapshot(), 2, nil)
	state.Customization.Open(burritoID)

	if err := store.Save(ctx, "sess-1", state); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if kv.ttls[kv.CartKey("sess-1")] != 4*time.Hour {
		t.Fatalf("expected TTL to be set, got %s", kv.ttls[kv.CartKey("sess-1")])
	}

	loaded, err := store.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Cart.Lines) != 1 || loaded.Cart.Lines[0].Quantity != 2 {
		t.Fatalf("cart lines did not round trip: %+v", loaded.Cart.Lines)
	}
	if !loaded.Cart.Total().Equal(decimal.NewFromInt(20)) {
		t.Fatalf("cart total did not round trip, got %s", loaded.Cart.Total())
	}
	if !loaded.Customization.IsOpenFor(burritoID) {
		t.Fatal("customization session did not round trip")
	}
}

func TestStoreLoadIsSessionScoped(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, newMemoryKV())
	ctx := context.Background()

	state := &State{}
	mustAdd(t, &state.Cart, tacoSnapshot(), 1, nil)
	if err := store.Save(ctx, "sess-1", state); err != nil {
		t.Fatalf("Save: %v", err)
	}

	other, err := store.Load(ctx, "sess-2")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !other.Cart.IsEmpty() {
		t.Fatal("cart leaked across sessions")
	}
}

func TestStoreClear(t *testing.T) {
	t.Parallel()

	store := newTestStore(t, newMemoryKV())
	ctx := context.Background()

	state := &State{}
	mustAdd(t, &state.Cart, tacoSnapshot(), 1, nil)
	if err := store.Save(ctx, "sess-1", state); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := store.Clear(ctx, "sess-1"); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	loaded, err := store.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !loaded.Cart.IsEmpty() {
		t.Fatal("cart survived Clear")
	}
}

func TestNewStoreValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewStore(nil, time.Hour); err == nil {
		t.Fatal("expected error for nil client")
	}
	if _, err := NewStore(newMemoryKV(), 0); err == nil {
		t.Fatal("expected error for non-positive ttl")
	}
}
