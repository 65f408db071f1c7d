package core

import (
	"strings"
	"time"
)

// Instead of implementing full value objects, I'm using some alias types and helper methods here ...

// OwnerID identifies the entity an account or action log is attributed to.
type OwnerID = string

// ResourceID identifies a resource in the catalog.
type ResourceID = string

// ConsumerID identifies a consumer that can hold a resource.
type ConsumerID = string

// CourseID identifies a course.
type CourseID = string

// OccurredAt represents when something happened.
type OccurredAt = time.Time

// ToOccurredAt converts a time to OccurredAt with UTC normalization and microsecond precision
func ToOccurredAt(t time.Time) OccurredAt {
	return t.UTC().Truncate(time.Microsecond)
}

// IsBlank reports whether s is empty or consists of whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
