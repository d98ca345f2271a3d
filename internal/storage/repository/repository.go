// Package repository provides database access for cards, patterns and
// game sessions.
package repository

import (
	"errors"
	"time"
)

// Sentinel errors shared by the repositories.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrBuiltinPattern is returned when an update or delete targets a
	// system-owned pattern.
	ErrBuiltinPattern = errors.New("built-in patterns cannot be modified or deleted")

	// ErrAlreadyCalled is returned when a number is called twice in the
	// same session.
	ErrAlreadyCalled = errors.New("number has already been called")

	// ErrDuplicateName is returned when a pattern name is already taken.
	ErrDuplicateName = errors.New("a pattern with this name already exists")
)

// timestampLayout matches the format written by the repositories.
const timestampLayout = "2006-01-02 15:04:05.999999"

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTime(s string) time.Time {
	for _, layout := range []string{timestampLayout, time.RFC3339Nano, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
