package cache

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// FetchFunc loads fresh data on a cache miss and wraps it in an envelope.
type FetchFunc func(ctx context.Context) (Envelope, error)

// LookupRecorder observes cache hits and misses.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic.
type LookupRecorder interface {
	RecordLookup(ctx context.Context, namespace string, hit bool)
}

// ReadThrough serves reads from a Store and fills it on miss.
//
// Contract:
//   - A hit returns the stored bytes verbatim; fetch is not called.
//   - Concurrent misses on the same key share a single fetch.
//   - Fetch errors are NOT cached.
//   - Invalidation through Store() fences in-flight fetches: a fetch that
//     started before the invalidation is not cached, and later readers
//     start a new fetch instead of joining it.
type ReadThrough struct {
	store    Store
	recorder LookupRecorder
	group    singleflight.Group

	mu    sync.Mutex
	epoch uint64            // bumped by Clear and cross-namespace patterns
	gens  map[string]uint64 // bumped per namespace by Delete and ClearPattern
}

type generation struct {
	epoch, ns uint64
}

// NewReadThrough creates a read-through helper over store.
// recorder may be nil.
func NewReadThrough(store Store, recorder LookupRecorder) *ReadThrough {
	return &ReadThrough{store: store, recorder: recorder, gens: map[string]uint64{}}
}

// Store returns the underlying store wrapped so that Delete, ClearPattern
// and Clear also fence in-flight fetches. Writers must invalidate through
// it.
func (r *ReadThrough) Store() Store {
	return fencedStore{Store: r.store, rt: r}
}

// Get returns the envelope bytes cached under key, calling fetch on miss and
// caching its result for ttl. The boolean reports whether the cache served
// the request.
//
// The shared fetch runs detached from ctx cancellation, so one caller giving
// up does not fail the others; that caller gets ctx.Err().
func (r *ReadThrough) Get(ctx context.Context, key string, ttl time.Duration, fetch FetchFunc) ([]byte, bool, error) {
	if r == nil || r.store == nil {
		return nil, false, ErrNilCache
	}
	if err := ValidateKey(key); err != nil {
		return nil, false, err
	}

	if cached, ok := r.store.Get(ctx, key); ok {
		r.record(ctx, key, true)
		return cached, true, nil
	}
	r.record(ctx, key, false)

	ns := Namespace(key)
	gen := r.generation(ns)
	flight := key + "#" + strconv.FormatUint(gen.epoch, 10) + "." + strconv.FormatUint(gen.ns, 10)

	ch := r.group.DoChan(flight, func() (any, error) {
		ctx := context.WithoutCancel(ctx)

		// A flight that finished just before this one may have filled the entry.
		if cached, ok := r.store.Get(ctx, key); ok {
			return cached, nil
		}

		env, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		data, err := env.Marshal()
		if err != nil {
			return nil, fmt.Errorf("cache: failed to marshal envelope: %w", err)
		}

		r.mu.Lock()
		defer r.mu.Unlock()
		if r.generationLocked(ns) != gen {
			return data, nil
		}
		if err := r.store.Set(ctx, key, data, ttl); err != nil {
			return nil, err
		}
		return data, nil
	})

	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, false, res.Err
		}
		return res.Val.([]byte), false, nil
	}
}

func (r *ReadThrough) generation(ns string) generation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generationLocked(ns)
}

func (r *ReadThrough) generationLocked(ns string) generation {
	return generation{epoch: r.epoch, ns: r.gens[ns]}
}

// fence invalidates in-flight fetches of ns, or of every namespace when ns
// is empty.
func (r *ReadThrough) fence(ns string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ns == "" {
		r.epoch++
		return
	}
	if r.gens == nil {
		r.gens = map[string]uint64{}
	}
	r.gens[ns]++
}

func (r *ReadThrough) record(ctx context.Context, key string, hit bool) {
	if r.recorder == nil {
		return
	}
	r.recorder.RecordLookup(ctx, Namespace(key), hit)
}

// fencedStore fences the ReadThrough before removing entries, so a fetch
// racing the removal cannot put stale data back.
type fencedStore struct {
	Store
	rt *ReadThrough
}

func (s fencedStore) Delete(ctx context.Context, key string) error {
	s.rt.fence(Namespace(key))
	return s.Store.Delete(ctx, key)
}

func (s fencedStore) ClearPattern(ctx context.Context, pattern string) (int, error) {
	s.rt.fence(patternNamespace(pattern))
	return s.Store.ClearPattern(ctx, pattern)
}

func (s fencedStore) Clear(ctx context.Context) error {
	s.rt.fence("")
	return s.Store.Clear(ctx)
}
