package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/kylesnowschwartz/medtrack/medication"
	"github.com/kylesnowschwartz/medtrack/schedule"
)

// formatLongDay renders the dashboard date line: "Sunday, June 15, 2025".
func formatLongDay(t time.Time) string {
	return t.Format("Monday, January 2, 2006")
}

// formatShortDay renders a compact date for the calendar pane: "Jun 15".
func formatShortDay(t time.Time) string {
	return t.Format("Jan 2")
}

// formatDue describes how far a slot is from now: "in 2h 10m", "45m ago",
// "now". Both clocks are on the same day.
func formatDue(slot, now schedule.Clock) string {
	diff := slot.Minutes() - now.Minutes()
	if diff == 0 {
		return "now"
	}
	span := formatMinutes(abs(diff))
	if diff > 0 {
		return "in " + span
	}
	return span + " ago"
}

// formatMinutes formats a minute count: 5 -> "5m", 60 -> "1h", 130 -> "2h 10m".
func formatMinutes(n int) string {
	h, m := n/60, n%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}

// formatDoses renders "dosage · frequency", skipping empty parts.
func formatDoses(r medication.Record) string {
	var parts []string
	if r.Dosage != "" {
		parts = append(parts, r.Dosage)
	}
	if r.Frequency != "" {
		parts = append(parts, r.Frequency)
	}
	return strings.Join(parts, " "+IconDot+" ")
}

// formatRegimen renders the date range: "2023-05-01 → 2023-05-14" or
// "since 2023-04-15" when open-ended.
func formatRegimen(r medication.Record) string {
	switch {
	case r.StartDate == "":
		return ""
	case r.EndDate == "":
		return "since " + r.StartDate
	default:
		return r.StartDate + " → " + r.EndDate
	}
}

// truncate shortens s to at most n runes, ending in "…" when cut.
func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
