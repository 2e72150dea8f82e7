package schedule

import (
	"fmt"
	"sort"
)

// Slot holds every item scheduled at one time of day.
type Slot[T any] struct {
	Time  Clock
	Items []T
}

// Unscheduled is an item whose time string could not be parsed, kept
// alongside the parse error so the caller can show or log it.
type Unscheduled[T any] struct {
	Item T
	Err  error
}

// GroupByTime buckets items by the time of day timeOf returns and orders the
// buckets earliest first. Items keep their input order within a bucket.
// The first malformed time aborts grouping with ErrInvalidTimeFormat.
func GroupByTime[T any](items []T, timeOf func(T) string) ([]Slot[T], error) {
	slots, bad := group(items, timeOf)
	if len(bad) > 0 {
		return nil, fmt.Errorf("grouping by time: %w", bad[0].Err)
	}
	return slots, nil
}

// GroupByTimeLenient is GroupByTime for display: malformed items are returned
// in input order as unscheduled instead of failing the whole grouping.
func GroupByTimeLenient[T any](items []T, timeOf func(T) string) ([]Slot[T], []Unscheduled[T]) {
	return group(items, timeOf)
}

func group[T any](items []T, timeOf func(T) string) ([]Slot[T], []Unscheduled[T]) {
	// Index into slots by clock so the first occurrence fixes bucket identity.
	index := make(map[Clock]int)
	var slots []Slot[T]
	var bad []Unscheduled[T]

	for _, it := range items {
		c, err := ParseClock(timeOf(it))
		if err != nil {
			bad = append(bad, Unscheduled[T]{Item: it, Err: err})
			continue
		}
		i, ok := index[c]
		if !ok {
			i = len(slots)
			index[c] = i
			slots = append(slots, Slot[T]{Time: c})
		}
		slots[i].Items = append(slots[i].Items, it)
	}

	// Keys are unique, so an unstable sort is enough.
	sort.Slice(slots, func(i, j int) bool { return slots[i].Time < slots[j].Time })
	if slots == nil {
		slots = []Slot[T]{}
	}
	return slots, bad
}
