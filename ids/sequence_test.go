package ids

import (
	"testing"
	"time"
)

func TestNextSequence(t *testing.T) {
	tests := []struct {
		name  string
		maxID string
		width int
		want  string
	}{
		{"increments max not gaps", "05", 2, "06"},
		{"empty table", "", 2, "01"},
		{"malformed letters", "x9", 2, "01"},
		{"wrong width", "005", 2, "01"},
		{"signed", "-5", 2, "01"},
		{"widens past width", "99", 2, "100"},
		{"three digits", "041", 3, "042"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextSequence(tt.maxID, tt.width); got != tt.want {
				t.Errorf("NextSequence(%q, %d) = %q, want %q", tt.maxID, tt.width, got, tt.want)
			}
		})
	}
}

func TestNextYearSequence(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		maxID string
		want  string
	}{
		{"same year", "25007", "25008"},
		{"previous year restarts", "24120", "25001"},
		{"empty", "", "25001"},
		{"malformed sequence", "25ab1", "25001"},
		{"too short", "2501", "25001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextYearSequence(tt.maxID, now, 3); got != tt.want {
				t.Errorf("NextYearSequence(%q) = %q, want %q", tt.maxID, got, tt.want)
			}
		})
	}
}

func TestYearPrefix(t *testing.T) {
	if got := YearPrefix(time.Date(2009, 1, 1, 0, 0, 0, 0, time.UTC)); got != "09" {
		t.Errorf("YearPrefix(2009) = %q, want %q", got, "09")
	}
}
