package ids

import (
	"fmt"
	"strconv"
	"time"
)

// NextSequence returns the id following maxID, zero-padded to width.
// A maxID that is not exactly width digits restarts the sequence at 1.
// The all-nines maxID yields width+1 digits; Sequential refuses such ids
// with ErrSequenceExhausted.
//
//	NextSequence("05", 2) // "06"
//	NextSequence("x9", 2) // "01"
//	NextSequence("", 2)   // "01"
func NextSequence(maxID string, width int) string {
	next := 1
	if isDigits(maxID, width) {
		n, _ := strconv.Atoi(maxID)
		next = n + 1
	}
	return pad(next, width)
}

// NextYearSequence returns "{yy}{seq}" for the year of now. maxID is used
// only when it carries the same two-digit year prefix and exactly seqWidth
// sequence digits; otherwise the sequence restarts at 1.
//
//	NextYearSequence("25007", 2025-06-01, 3) // "25008"
//	NextYearSequence("24120", 2025-06-01, 3) // "25001"
func NextYearSequence(maxID string, now time.Time, seqWidth int) string {
	year := YearPrefix(now)
	next := 1
	if len(maxID) == 2+seqWidth && maxID[:2] == year && isDigits(maxID[2:], seqWidth) {
		n, _ := strconv.Atoi(maxID[2:])
		next = n + 1
	}
	return year + pad(next, seqWidth)
}

// YearPrefix returns the two-digit year of t.
func YearPrefix(t time.Time) string {
	return fmt.Sprintf("%02d", t.Year()%100)
}

func isDigits(s string, width int) bool {
	if width <= 0 || len(s) != width {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func pad(n, width int) string {
	return fmt.Sprintf("%0*d", width, n)
}
