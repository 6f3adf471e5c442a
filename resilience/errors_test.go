package resilience

import (
	"errors"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		msg  string
	}{
		{"ErrMaxRetriesExceeded", ErrMaxRetriesExceeded, "resilience: max retries exceeded"},
		{"ErrTimeout", ErrTimeout, "resilience: operation timed out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.msg {
				t.Errorf("%s.Error() = %q, want %q", tt.name, tt.err.Error(), tt.msg)
			}
		})
	}

	if errors.Is(ErrTimeout, ErrMaxRetriesExceeded) {
		t.Error("sentinel errors should be distinct")
	}
}
