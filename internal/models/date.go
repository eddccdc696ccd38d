package models

import (
	"strings"
	"time"
)

var dateLayouts = []string{DateLayout, "2006-1-2"}

// ParseDate parses a calendar date, accepting unpadded month and day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// DatePart returns the calendar date portion of an ISO-8601 timestamp.
func DatePart(ts string) string {
	if i := strings.IndexAny(ts, "T "); i >= 0 {
		return ts[:i]
	}
	return ts
}
