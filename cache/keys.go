package cache

import "strings"

// Cache keys are namespaced by entity:
//
//	<entity>:all          unfiltered list
//	<entity>:<filter>     list filtered by one value
//	<entity>:*            pattern covering every list of the entity

// AllSegment is the key segment reserved for the unfiltered list. A filter
// equal to it means no filter.
const AllSegment = "all"

// AllKey returns the key of the unfiltered list of entity.
func AllKey(entity string) string {
	return entity + ":" + AllSegment
}

// FilterKey returns the key of the list of entity filtered by value.
// An empty value or AllSegment yields AllKey.
func FilterKey(entity, value string) string {
	if value == "" || value == AllSegment {
		return AllKey(entity)
	}
	return entity + ":" + value
}

// EntityPattern returns the glob covering every key of entity.
func EntityPattern(entity string) string {
	return entity + ":*"
}

// Namespace returns the entity part of key.
func Namespace(key string) string {
	ns, _, _ := strings.Cut(key, ":")
	return ns
}

// patternNamespace returns the single namespace pattern can match, or ""
// when it may span namespaces.
func patternNamespace(pattern string) string {
	ns, _, found := strings.Cut(pattern, ":")
	if !found || strings.Contains(ns, "*") {
		return ""
	}
	return ns
}
