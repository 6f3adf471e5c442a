package health

import (
	"context"
	"errors"
	"testing"
)

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusHealthy, "healthy"},
		{StatusDegraded, "degraded"},
		{StatusUnhealthy, "unhealthy"},
		{Status(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestResultConstructors(t *testing.T) {
	if r := Healthy("ok"); r.Status != StatusHealthy || r.Message != "ok" || r.Timestamp.IsZero() {
		t.Errorf("Healthy() = %+v", r)
	}
	if r := Degraded("slow"); r.Status != StatusDegraded {
		t.Errorf("Degraded().Status = %v", r.Status)
	}
	cause := errors.New("down")
	r := Unhealthy("gone", cause)
	if r.Status != StatusUnhealthy || !errors.Is(r.Error, cause) {
		t.Errorf("Unhealthy() = %+v", r)
	}

	withDetails := Healthy("ok").WithDetails(map[string]any{"size": 3})
	if withDetails.Details["size"] != 3 {
		t.Errorf("Details = %v", withDetails.Details)
	}
}

func TestCheckerFunc(t *testing.T) {
	c := NewCheckerFunc("custom", func(context.Context) Result { return Degraded("meh") })
	if c.Name() != "custom" {
		t.Errorf("Name() = %q", c.Name())
	}
	if got := c.Check(context.Background()).Status; got != StatusDegraded {
		t.Errorf("Check().Status = %v, want degraded", got)
	}
}
