package cache

import (
	"bytes"
	"context"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"
)

// fakeClock is a manually advanced clock for expiry tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestStore(clock *fakeClock) *MemoryStore {
	s := NewMemoryStore(DefaultPolicy())
	s.now = clock.Now
	return s
}

func TestMemoryStore_GetSetDelete(t *testing.T) {
	store := NewMemoryStore(DefaultPolicy())
	ctx := context.Background()

	val, ok := store.Get(ctx, "nonexistent")
	if ok {
		t.Error("Get on empty store should return ok=false")
	}
	if val != nil {
		t.Error("Get on empty store should return nil value")
	}

	key := "categories:all"
	value := []byte(`{"success":true}`)
	if err := store.Set(ctx, key, value, 5*time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok := store.Get(ctx, key)
	if !ok {
		t.Error("Get after Set should return ok=true")
	}
	if !bytes.Equal(got, value) {
		t.Errorf("Get returned %q, want %q", got, value)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	val, ok = store.Get(ctx, key)
	if ok {
		t.Error("Get after Delete should return ok=false")
	}
	if val != nil {
		t.Error("Get after Delete should return nil value")
	}

	if err := store.Delete(ctx, "nonexistent"); err != nil {
		t.Errorf("Delete on non-existent key should not error, got: %v", err)
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	clock := newFakeClock()
	store := newTestStore(clock)
	ctx := context.Background()

	key := "news:all"
	value := []byte("expiring-value")

	if err := store.Set(ctx, key, value, TTLVolatile); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	clock.Advance(TTLVolatile - time.Second)
	if got, ok := store.Get(ctx, key); !ok || !bytes.Equal(got, value) {
		t.Errorf("Get before expiry = (%q, %v), want (%q, true)", got, ok, value)
	}

	clock.Advance(2 * time.Second)
	if _, ok := store.Get(ctx, key); ok {
		t.Error("Get after expiry should return ok=false")
	}

	// Lazy deletion on read removes the entry itself, not just hides it.
	store.mu.RLock()
	_, present := store.entries[key]
	store.mu.RUnlock()
	if present {
		t.Error("expired entry should be deleted by Get")
	}

	stats := store.Stats(ctx)
	for _, k := range stats.Keys {
		if k == key {
			t.Errorf("Stats still lists expired key %q", key)
		}
	}
}

func TestMemoryStore_StatsHidesExpiredBeforeSweep(t *testing.T) {
	clock := newFakeClock()
	store := newTestStore(clock)
	ctx := context.Background()

	_ = store.Set(ctx, "news:all", []byte("a"), TTLVolatile)
	_ = store.Set(ctx, "categories:all", []byte("b"), TTLReference)

	clock.Advance(TTLVolatile + time.Second)

	stats := store.Stats(ctx)
	want := []string{"categories:all"}
	if stats.Size != 1 || !reflect.DeepEqual(stats.Keys, want) {
		t.Errorf("Stats() = %+v, want size 1 keys %v", stats, want)
	}
}

func TestMemoryStore_SetOverwrite(t *testing.T) {
	clock := newFakeClock()
	store := newTestStore(clock)
	ctx := context.Background()

	key := "overwrite-key"
	if err := store.Set(ctx, key, []byte("value1"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	clock.Advance(50 * time.Second)

	// The overwrite carries a fresh TTL.
	if err := store.Set(ctx, key, []byte("value2"), time.Minute); err != nil {
		t.Fatalf("Set (overwrite) failed: %v", err)
	}

	clock.Advance(30 * time.Second)

	got, ok := store.Get(ctx, key)
	if !ok {
		t.Fatal("Get after overwrite should return ok=true")
	}
	if string(got) != "value2" {
		t.Errorf("Get returned %q, want %q", got, "value2")
	}
	if n := store.Stats(ctx).Size; n != 1 {
		t.Errorf("Stats().Size = %d, want 1 (one entry per key)", n)
	}
}

func TestMemoryStore_ZeroTTLUsesDefault(t *testing.T) {
	clock := newFakeClock()
	store := newTestStore(clock)
	ctx := context.Background()

	if err := store.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set with TTL=0 failed: %v", err)
	}

	clock.Advance(TTLReference - time.Second)
	if _, ok := store.Get(ctx, "k"); !ok {
		t.Error("Set with TTL=0 should use the 5 minute default")
	}

	clock.Advance(2 * time.Second)
	if _, ok := store.Get(ctx, "k"); ok {
		t.Error("entry should expire after the default TTL")
	}
}

func TestMemoryStore_ZeroPolicySkipsDefaultWrites(t *testing.T) {
	store := NewMemoryStore(Policy{})
	ctx := context.Background()

	if err := store.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, ok := store.Get(ctx, "k"); ok {
		t.Error("Set without TTL under a zero policy should not cache")
	}
}

func TestMemoryStore_SetInvalidKey(t *testing.T) {
	store := NewMemoryStore(DefaultPolicy())

	if err := store.Set(context.Background(), "", []byte("v"), time.Minute); err != ErrInvalidKey {
		t.Errorf("Set(\"\") = %v, want %v", err, ErrInvalidKey)
	}
}

func TestMemoryStore_ClearPattern(t *testing.T) {
	store := NewMemoryStore(DefaultPolicy())
	ctx := context.Background()

	for _, key := range []string{"instructors:all", "instructors:25001", "categories:all"} {
		if err := store.Set(ctx, key, []byte(key), time.Minute); err != nil {
			t.Fatalf("Set(%q) failed: %v", key, err)
		}
	}

	removed, err := store.ClearPattern(ctx, "instructors:*")
	if err != nil {
		t.Fatalf("ClearPattern failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("ClearPattern removed %d entries, want 2", removed)
	}

	for _, key := range []string{"instructors:all", "instructors:25001"} {
		if _, ok := store.Get(ctx, key); ok {
			t.Errorf("%q should have been cleared", key)
		}
	}
	if got, ok := store.Get(ctx, "categories:all"); !ok || string(got) != "categories:all" {
		t.Error("categories:all should be untouched")
	}
}

func TestMemoryStore_ClearPatternIsolation(t *testing.T) {
	store := NewMemoryStore(DefaultPolicy())
	ctx := context.Background()

	_ = store.Set(ctx, "instructors:X", []byte("x"), TTLFiltered)
	_ = store.Set(ctx, "instructors:Y", []byte("y"), TTLFiltered)

	if err := store.Delete(ctx, "instructors:X"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := store.Get(ctx, "instructors:Y"); !ok {
		t.Error("Delete of instructors:X must leave instructors:Y intact")
	}

	_ = store.Set(ctx, "instructors:X", []byte("x"), TTLFiltered)
	if _, err := store.ClearPattern(ctx, "instructors:*"); err != nil {
		t.Fatalf("ClearPattern failed: %v", err)
	}
	if n := store.Stats(ctx).Size; n != 0 {
		t.Errorf("Stats().Size = %d after ClearPattern, want 0", n)
	}
}

func TestMemoryStore_ClearPatternInvalid(t *testing.T) {
	store := NewMemoryStore(DefaultPolicy())

	if _, err := store.ClearPattern(context.Background(), ""); err != ErrInvalidPattern {
		t.Errorf("ClearPattern(\"\") = %v, want %v", err, ErrInvalidPattern)
	}
}

func TestMemoryStore_Clear(t *testing.T) {
	store := NewMemoryStore(DefaultPolicy())
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		_ = store.Set(ctx, fmt.Sprintf("key-%d", i), []byte("v"), time.Minute)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if n := store.Stats(ctx).Size; n != 0 {
		t.Errorf("Stats().Size = %d after Clear, want 0", n)
	}
}

func TestMemoryStore_Cleanup(t *testing.T) {
	clock := newFakeClock()
	store := newTestStore(clock)
	ctx := context.Background()

	_ = store.Set(ctx, "news:all", []byte("n"), TTLVolatile)
	_ = store.Set(ctx, "instructors:1", []byte("i"), TTLFiltered)
	_ = store.Set(ctx, "categories:all", []byte("c"), TTLReference)

	clock.Advance(TTLFiltered + time.Second)

	if removed := store.Cleanup(ctx); removed != 2 {
		t.Errorf("Cleanup removed %d entries, want 2", removed)
	}

	// A second pass with no intervening Set is a no-op.
	if removed := store.Cleanup(ctx); removed != 0 {
		t.Errorf("second Cleanup removed %d entries, want 0", removed)
	}

	stats := store.Stats(ctx)
	if !reflect.DeepEqual(stats.Keys, []string{"categories:all"}) {
		t.Errorf("Stats().Keys = %v, want [categories:all]", stats.Keys)
	}
}

func TestMemoryStore_StatsSorted(t *testing.T) {
	store := NewMemoryStore(DefaultPolicy())
	ctx := context.Background()

	for _, key := range []string{"news:all", "banners:all", "courses:all"} {
		_ = store.Set(ctx, key, []byte("v"), time.Minute)
	}

	want := []string{"banners:all", "courses:all", "news:all"}
	stats := store.Stats(ctx)
	if stats.Size != 3 || !reflect.DeepEqual(stats.Keys, want) {
		t.Errorf("Stats() = %+v, want size 3 keys %v", stats, want)
	}
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	store := NewMemoryStore(DefaultPolicy())
	ctx := context.Background()

	const numGoroutines = 50
	const opsPerGoroutine = 500

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < opsPerGoroutine; j++ {
				key := fmt.Sprintf("instructors:%d", j%5)

				switch j % 5 {
				case 0:
					_ = store.Set(ctx, key, []byte("v"), time.Minute)
				case 1:
					_, _ = store.Get(ctx, key)
				case 2:
					_ = store.Delete(ctx, key)
				case 3:
					_, _ = store.ClearPattern(ctx, "instructors:*")
				case 4:
					_ = store.Cleanup(ctx)
				}
			}
		}(i)
	}

	wg.Wait()
}

// Verify MemoryStore implements Store interface at compile time
var _ Store = (*MemoryStore)(nil)
