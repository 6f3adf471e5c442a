package ids

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RandLength is the length of the random suffix of timestamped ids.
const RandLength = 4

// NewTimestampID returns "{prefix}-{unixMillis}", or
// "{prefix}-{unixMillis}-{rand}" when withRand is set.
func NewTimestampID(prefix string, now time.Time, withRand bool) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteByte('-')
	b.WriteString(strconv.FormatInt(now.UnixMilli(), 10))
	if withRand {
		b.WriteByte('-')
		b.WriteString(randSuffix())
	}
	return b.String()
}

// randSuffix takes lowercase hex characters from a random UUID.
func randSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:RandLength]
}
