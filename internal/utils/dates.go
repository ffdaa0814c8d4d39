package utils

import (
	"fmt"
	"strings"
	"time"
)

// Accepted layouts for timestamps arriving from forms and API clients.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp parses s with the first matching layout. Layouts without a zone
// are read in loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q, expected RFC 3339 or yyyy-mm-ddThh:mm", s)
}

// DateOf truncates t to midnight in its own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// BeforeDate compares calendar dates only, ignoring time of day. b is converted
// to a's location first.
func BeforeDate(a, b time.Time) bool {
	return DateOf(a).Before(DateOf(b.In(a.Location())))
}
