package models

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the only accepted textual form of a calendar day.
const DateLayout = "2006-01-02"

// ErrMalformedDate is returned for dates that are not exact YYYY-MM-DD days.
var ErrMalformedDate = errors.New("date must be a YYYY-MM-DD calendar day")

// FormatDate returns the calendar day of t, in t's own location.
// Time of day and zone are dropped.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string into midnight UTC of that day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
	}
	// Only the canonical form may reach storage.
	if t.Format(DateLayout) != s {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
	}
	return t, nil
}

// ValidateDate reports whether s is a canonical YYYY-MM-DD day.
func ValidateDate(s string) error {
	_, err := ParseDate(s)
	return err
}
