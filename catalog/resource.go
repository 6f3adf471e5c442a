package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonwraymond/coursecms/cache"
	"github.com/jonwraymond/coursecms/observe"
)

// Resource serves one entity: cached lists, uncached single reads and
// writes that invalidate the entity's cache entries.
//
// Contract:
//   - Concurrency: safe for concurrent use.
//   - Lists: a cache hit returns the stored envelope bytes verbatim and
//     issues no statement.
//   - Writes: invalidation runs only after the store accepted the write.
type Resource[T any, P Record[T]] struct {
	repo  *Repository[T, P]
	cache *cache.ReadThrough
	mw    *observe.Middleware
}

// NewResource puts rt in front of repo. A nil mw disables telemetry.
func NewResource[T any, P Record[T]](repo *Repository[T, P], rt *cache.ReadThrough, mw *observe.Middleware) *Resource[T, P] {
	if mw == nil {
		mw = observe.NewMiddleware(nil, nil, nil)
	}
	return &Resource[T, P]{repo: repo, cache: rt, mw: mw}
}

// Table returns the entity's table descriptor.
func (s *Resource[T, P]) Table() Table {
	return s.repo.table
}

// CacheKey returns the key a List with filter reads and fills.
func (s *Resource[T, P]) CacheKey(filter string) string {
	return cache.FilterKey(s.repo.table.Namespace, s.scope(filter))
}

// scope returns the filter a List actually applies. Unfilterable tables
// and the reserved cache.AllSegment both mean the whole table, so the
// unfiltered key only ever holds the unfiltered list.
func (s *Resource[T, P]) scope(filter string) string {
	if filter == cache.AllSegment || !s.repo.table.Filterable() {
		return ""
	}
	return filter
}

// List returns the JSON envelope {success,data,count} of the entity's
// records, optionally narrowed by filter.
func (s *Resource[T, P]) List(ctx context.Context, filter string) ([]byte, error) {
	var out []byte
	filter = s.scope(filter)
	err := s.mw.Run(ctx, s.op("list"), func(ctx context.Context) error {
		key := s.CacheKey(filter)
		if err := cache.ValidateKey(key); err != nil {
			return invalid("filter", "filter value is not a valid key")
		}

		body, _, err := s.cache.Get(ctx, key, s.repo.table.TTL, func(ctx context.Context) (cache.Envelope, error) {
			items, err := s.repo.List(ctx, filter)
			if err != nil {
				return cache.Envelope{}, err
			}
			return cache.OK(items, len(items)), nil
		})
		out = body
		return err
	})
	return out, err
}

// Get returns one record or ErrNotFound.
func (s *Resource[T, P]) Get(ctx context.Context, id string) (P, error) {
	var rec P
	err := s.mw.Run(ctx, s.op("get"), func(ctx context.Context) error {
		found, ok, err := s.repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return s.notFound(id)
		}
		rec = found
		return nil
	})
	return rec, err
}

// Create inserts rec and invalidates the entity's cached lists. On success
// rec carries its generated id and timestamps.
func (s *Resource[T, P]) Create(ctx context.Context, rec P) error {
	return s.mw.Run(ctx, s.op("create"), func(ctx context.Context) error {
		if err := s.repo.Create(ctx, rec); err != nil {
			return err
		}
		s.invalidate(ctx)
		return nil
	})
}

// Update replaces record id and invalidates the entity's cached lists.
func (s *Resource[T, P]) Update(ctx context.Context, id string, rec P) error {
	return s.mw.Run(ctx, s.op("update"), func(ctx context.Context) error {
		ok, err := s.repo.Update(ctx, id, rec)
		if err != nil {
			return err
		}
		if !ok {
			return s.notFound(id)
		}
		s.invalidate(ctx)
		return nil
	})
}

// Delete removes record id and invalidates the entity's cached lists.
func (s *Resource[T, P]) Delete(ctx context.Context, id string) error {
	return s.mw.Run(ctx, s.op("delete"), func(ctx context.Context) error {
		ok, err := s.repo.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return s.notFound(id)
		}
		s.invalidate(ctx)
		return nil
	})
}

// invalidate drops the entity's cached lists. Unfiltered entities have a
// single key; filtered entities may have one per filter value.
func (s *Resource[T, P]) invalidate(ctx context.Context) {
	st := s.cache.Store()
	ns := s.repo.table.Namespace

	var err error
	if s.repo.table.Filterable() {
		_, err = st.ClearPattern(ctx, cache.EntityPattern(ns))
	} else {
		err = st.Delete(ctx, cache.AllKey(ns))
	}
	if err != nil {
		s.mw.Logger().Warn(ctx, "cache invalidation failed",
			observe.Field{Key: "namespace", Value: ns},
			observe.Field{Key: "error", Value: err},
		)
	}
}

func (s *Resource[T, P]) notFound(id string) error {
	return fmt.Errorf("%w: %s %q", ErrNotFound, s.repo.table.Namespace, id)
}

func (s *Resource[T, P]) op(action string) observe.Op {
	return observe.Op{Entity: s.repo.table.Namespace, Action: action}
}

// IsNotFound reports whether err means the record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
