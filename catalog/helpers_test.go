package catalog

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/jonwraymond/coursecms/cache"
	"github.com/jonwraymond/coursecms/resilience"
	"github.com/jonwraymond/coursecms/store"
)

var testNow = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

type fixture struct {
	catalog *Catalog
	mock    sqlmock.Sqlmock
	cache   *cache.MemoryStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	raw, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { _ = raw.Close() })

	db := store.New(sqlx.NewDb(raw, "mysql"))
	mem := cache.NewMemoryStore(cache.DefaultPolicy())
	c := New(db, cache.NewReadThrough(mem, nil), nil,
		WithClock(func() time.Time { return testNow }),
		WithInsertRetry(resilience.RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond}),
	)

	return &fixture{catalog: c, mock: mock, cache: mem}
}

func (f *fixture) verify(t *testing.T) {
	t.Helper()
	if err := f.mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func (f *fixture) cached(t *testing.T, key string) bool {
	t.Helper()
	_, ok := f.cache.Get(t.Context(), key)
	return ok
}
