package cache

import (
	"regexp"
	"strings"
)

// CompilePattern compiles a glob pattern into an anchored regular expression.
// "*" matches zero or more characters; every other character is literal.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	if pattern == "" || strings.ContainsAny(pattern, "\n\r") {
		return nil, ErrInvalidPattern
	}

	parts := strings.Split(pattern, "*")
	for i, part := range parts {
		parts[i] = regexp.QuoteMeta(part)
	}

	return regexp.Compile("^" + strings.Join(parts, ".*") + "$")
}

// MatchPattern reports whether key matches the glob pattern.
func MatchPattern(pattern, key string) bool {
	re, err := CompilePattern(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(key)
}
