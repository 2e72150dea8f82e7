package schedule

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the calendar-date format for regimen start and end dates.
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned for a regimen date that isn't YYYY-MM-DD.
var ErrInvalidDate = errors.New("invalid date")

// ParseDate parses a YYYY-MM-DD date in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// ActiveOn reports whether a regimen running from start to end (inclusive)
// covers the calendar day of day. An empty end leaves the regimen open.
func ActiveOn(start, end string, day time.Time) (bool, error) {
	loc := day.Location()
	y, m, d := day.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, loc)

	from, err := ParseDate(start, loc)
	if err != nil {
		return false, fmt.Errorf("start date: %w", err)
	}
	if dayStart.Before(from) {
		return false, nil
	}
	if end == "" {
		return true, nil
	}
	to, err := ParseDate(end, loc)
	if err != nil {
		return false, fmt.Errorf("end date: %w", err)
	}
	return !dayStart.After(to), nil
}
