package ids

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeQuerier struct {
	ids        []string
	err        error
	lastTable  string
	lastPrefix string
}

func (f *fakeQuerier) MaxID(_ context.Context, table, prefix string) (string, bool, error) {
	f.lastTable, f.lastPrefix = table, prefix
	if f.err != nil {
		return "", false, f.err
	}
	best := ""
	for _, id := range f.ids {
		if len(id) >= len(prefix) && id[:len(prefix)] == prefix && id > best {
			best = id
		}
	}
	return best, best != "", nil
}

func TestSequential_NoGapFilling(t *testing.T) {
	q := &fakeQuerier{ids: []string{"01", "02", "05"}}

	got, err := Sequential{Width: 2}.Next(context.Background(), q, "categories")
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if got != "06" {
		t.Errorf("Next() = %q, want %q", got, "06")
	}
	if q.lastTable != "categories" || q.lastPrefix != "" {
		t.Errorf("MaxID called with %q, %q", q.lastTable, q.lastPrefix)
	}
}

func TestSequential_MalformedMaxResets(t *testing.T) {
	q := &fakeQuerier{ids: []string{"01", "legacy"}}

	got, err := Sequential{Width: 2}.Next(context.Background(), q, "course_types")
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if got != "01" {
		t.Errorf("Next() = %q, want %q", got, "01")
	}
}

func TestYearly_ScopesToCurrentYear(t *testing.T) {
	q := &fakeQuerier{ids: []string{"24118", "24119", "25002"}}
	y := Yearly{SeqWidth: 3, Now: func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) }}

	got, err := y.Next(context.Background(), q, "institutions")
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if got != "25003" {
		t.Errorf("Next() = %q, want %q", got, "25003")
	}
	if q.lastPrefix != "25" {
		t.Errorf("MaxID prefix = %q, want %q", q.lastPrefix, "25")
	}
}

func TestYearly_NewYearRestarts(t *testing.T) {
	q := &fakeQuerier{ids: []string{"24118"}}
	y := Yearly{SeqWidth: 3, Now: func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }}

	got, err := y.Next(context.Background(), q, "institutions")
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if got != "25001" {
		t.Errorf("Next() = %q, want %q", got, "25001")
	}
}

func TestTimestamped_IgnoresQuerier(t *testing.T) {
	ts := Timestamped{Prefix: "INS", Now: func() time.Time { return time.UnixMilli(42) }}

	got, err := ts.Next(context.Background(), nil, "instructors")
	if err != nil {
		t.Fatalf("Next() error = %v", err)
	}
	if got != "INS-42" {
		t.Errorf("Next() = %q, want %q", got, "INS-42")
	}
}

func TestStrategy_SequenceExhausted(t *testing.T) {
	ctx := context.Background()
	now := func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) }

	if _, err := (Sequential{Width: 2}).Next(ctx, &fakeQuerier{ids: []string{"98", "99"}}, "categories"); !errors.Is(err, ErrSequenceExhausted) {
		t.Errorf("Sequential at 99 error = %v, want ErrSequenceExhausted", err)
	}
	if got, err := (Sequential{Width: 2}).Next(ctx, &fakeQuerier{ids: []string{"98"}}, "categories"); err != nil || got != "99" {
		t.Errorf("Sequential at 98 = (%q, %v), want 99", got, err)
	}
	if _, err := (Yearly{SeqWidth: 3, Now: now}).Next(ctx, &fakeQuerier{ids: []string{"25999"}}, "institutions"); !errors.Is(err, ErrSequenceExhausted) {
		t.Errorf("Yearly at 999 error = %v, want ErrSequenceExhausted", err)
	}
}

func TestStrategy_Errors(t *testing.T) {
	ctx := context.Background()

	if _, err := (Sequential{Width: 2}).Next(ctx, nil, "categories"); !errors.Is(err, ErrNilQuerier) {
		t.Errorf("Sequential nil querier error = %v", err)
	}

	fault := errors.New("connection refused")
	if _, err := (Yearly{SeqWidth: 3}).Next(ctx, &fakeQuerier{err: fault}, "institutions"); !errors.Is(err, fault) {
		t.Errorf("Yearly error = %v, want wrapped %v", err, fault)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := (Timestamped{Prefix: "POP"}).Next(cancelled, nil, "popups"); !errors.Is(err, context.Canceled) {
		t.Errorf("Timestamped cancelled error = %v", err)
	}
}
