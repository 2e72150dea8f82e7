package main

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
)

// updateCalendarKeys handles day navigation on the calendar tab. Returns
// false for keys the shared list handler should see.
func (m *model) updateCalendarKeys(key string) bool {
	switch key {
	case "h", "left":
		m.selectDay(m.day.AddDate(0, 0, -1))
	case "l", "right":
		m.selectDay(m.day.AddDate(0, 0, 1))
	case "H":
		m.selectDay(m.day.AddDate(0, 0, -7))
	case "L":
		m.selectDay(m.day.AddDate(0, 0, 7))
	case "[":
		m.selectDay(m.day.AddDate(0, -1, 0))
	case "]":
		m.selectDay(m.day.AddDate(0, 1, 0))
	case "T":
		m.selectDay(m.now)
	default:
		return false
	}
	return true
}

// selectDay moves the calendar to day and lists its records from the top.
func (m *model) selectDay(day time.Time) {
	m.day = day
	m.scroll = 0
	m.cursor = 0
	m.rebuildRows()
	m.cursor = firstSelectable(m.rows)
}

// renderMonth draws the month containing the selected day, Monday first.
// Days with scheduled records are bright, the selected day is highlighted
// and today is underlined.
func (m model) renderMonth(width int) string {
	first := time.Date(m.day.Year(), m.day.Month(), 1, 0, 0, 0, 0, m.day.Location())
	daysIn := first.AddDate(0, 1, -1).Day()
	lead := (int(first.Weekday()) + 6) % 7 // Monday = 0

	title := m.th.PrimaryBold.Render(first.Format("January 2006"))
	lines := []string{
		title,
		m.th.Dim.Render("Mo Tu We Th Fr Sa Su"),
	}

	cells := make([]string, 0, 42)
	for range lead {
		cells = append(cells, "  ")
	}
	for d := 1; d <= daysIn; d++ {
		day := first.AddDate(0, 0, d-1)
		label := fmt.Sprintf("%2d", d)

		style := m.th.Muted
		if len(m.meds.OnDay(day)) > 0 {
			style = m.th.Secondary
		}
		if sameDay(day, m.now) {
			style = style.Underline(true)
		}
		if sameDay(day, m.day) {
			style = lipgloss.NewStyle().Bold(true).Foreground(m.th.Accent).Background(m.th.SelectedBg)
		}
		cells = append(cells, style.Render(label))
	}

	for i := 0; i < len(cells); i += 7 {
		end := min(i+7, len(cells))
		lines = append(lines, strings.Join(cells[i:end], " "))
	}

	grid := strings.Join(lines, "\n")
	return lipgloss.PlaceHorizontal(max(width, lipgloss.Width(grid)), lipgloss.Left, grid)
}
