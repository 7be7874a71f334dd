// Package dateutil parses and compares plain calendar dates in
// YYYY-MM-DD form. There is no timezone concept anywhere in the booking
// rules; a date is just a day.
package dateutil

import (
	"time"

	"github.com/yerassyl/event-reservation/internal/domain"
)

// Layout is the only accepted date format.
const Layout = "2006-01-02"

// ParseDate parses s as a YYYY-MM-DD calendar date. Anything else,
// including valid timestamps with a time component, fails with a
// DateFormatError.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, &domain.DateFormatError{Input: s}
	}
	return t, nil
}

// IsBefore reports whether d1 is strictly earlier than d2. Either side
// failing to parse yields a DateFormatError.
func IsBefore(d1, d2 string) (bool, error) {
	t1, err := ParseDate(d1)
	if err != nil {
		return false, err
	}
	t2, err := ParseDate(d2)
	if err != nil {
		return false, err
	}
	return t1.Before(t2), nil
}
