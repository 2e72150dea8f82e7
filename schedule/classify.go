package schedule

import (
	"fmt"
	"time"
)

// CurrentWindow is the band on either side of "now" in which a slot counts
// as current.
const CurrentWindow = 30 * time.Minute

// Status labels a slot relative to the sampled wall-clock time. The zero
// value is StatusUnknown, never a real classification.
type Status int

const (
	StatusUnknown Status = iota
	StatusUpcoming
	StatusCurrent
	StatusPast
)

func (s Status) String() string {
	switch s {
	case StatusPast:
		return "past"
	case StatusCurrent:
		return "current"
	case StatusUpcoming:
		return "upcoming"
	default:
		return "unknown"
	}
}

// MarshalText renders the status as its lowercase name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Classify places slot relative to now. A slot within CurrentWindow of now,
// in either direction, is current even when it has already passed. Outside
// the window, earlier slots are past and later slots upcoming.
//
// Both clocks belong to the same day: there is no wrap across midnight.
func Classify(slot, now Clock) Status {
	diff := slot.Minutes() - now.Minutes()
	if abs(diff) <= int(CurrentWindow/time.Minute) {
		return StatusCurrent
	}
	if diff < 0 {
		return StatusPast
	}
	return StatusUpcoming
}

// ClassifyString parses both times before classifying. Either string failing
// to parse returns StatusUnknown and ErrInvalidTimeFormat.
func ClassifyString(slot, now string) (Status, error) {
	s, err := ParseClock(slot)
	if err != nil {
		return StatusUnknown, fmt.Errorf("slot time: %w", err)
	}
	n, err := ParseClock(now)
	if err != nil {
		return StatusUnknown, fmt.Errorf("current time: %w", err)
	}
	return Classify(s, n), nil
}

// CurrentIndex returns the index of the first current slot, or -1 when no
// slot falls inside the window.
func CurrentIndex[T any](slots []Slot[T], now Clock) int {
	for i, s := range slots {
		if Classify(s.Time, now) == StatusCurrent {
			return i
		}
	}
	return -1
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
