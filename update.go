package main

import (
	"slices"
	"time"

	"github.com/kylesnowschwartz/medtrack/medication"
	"github.com/kylesnowschwartz/medtrack/schedule"

	tea "charm.land/bubbletea/v2"
)

// updateList handles key events in the three tab views.
func (m model) updateList(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key != "d" {
		m.pendingDrop = ""
	}

	if m.tab == viewCalendar {
		if handled := m.updateCalendarKeys(key); handled {
			return m, nil
		}
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "G", "end":
		m.cursor = lastSelectable(m.rows)
		m.ensureCursorVisible()
	case "g", "home":
		m.cursor = firstSelectable(m.rows)
		m.scroll = 0
	case "J", "ctrl+d":
		// Scroll viewport down (half page)
		m.scroll += m.height / 2
		m.clampListScroll()
	case "K", "ctrl+u":
		// Scroll viewport up (half page)
		m.scroll -= m.height / 2
		m.clampListScroll()
	case "n":
		m.jumpToNow()
	case "1":
		m.switchTab(viewTimeline)
	case "2":
		m.switchTab(viewGrid)
	case "3":
		m.switchTab(viewCalendar)
	case "tab":
		m.switchTab((m.tab + 1) % viewState(len(tabNames)))
	case "shift+tab":
		m.switchTab((m.tab + viewState(len(tabNames)) - 1) % viewState(len(tabNames)))
	case "space", "t":
		if r, ok := m.selectedRecord(); ok {
			m.markAsTaken(r.ID)
		}
	case "enter":
		if r, ok := m.selectedRecord(); ok {
			m.openDetail(r.ID)
		}
	case "a":
		m.openForm("")
	case "e":
		if r, ok := m.selectedRecord(); ok {
			m.openForm(r.ID)
		}
	case "d":
		if r, ok := m.selectedRecord(); ok {
			m.deleteRecord(r.ID)
		}
	}
	return m, nil
}

// moveCursor steps the cursor over record rows, skipping headers.
func (m *model) moveCursor(delta int) {
	for i := m.cursor + delta; i >= 0 && i < len(m.rows); i += delta {
		if m.rows[i].selectable() {
			m.cursor = i
			break
		}
	}
	m.ensureCursorVisible()
}

// jumpToNow puts the cursor on the first record of the current slot, or of
// the first upcoming slot when nothing is inside the window.
func (m *model) jumpToNow() {
	slots, ok := m.todaySlots()
	if !ok {
		m.setStatus("Only today's schedule has a current slot.")
		return
	}
	now := m.nowClock()
	i := schedule.CurrentIndex(slots, now)
	if i < 0 {
		i = slices.IndexFunc(slots, func(s schedule.Slot[medication.Record]) bool {
			return schedule.Classify(s.Time, now) == schedule.StatusUpcoming
		})
	}
	if i < 0 {
		m.setStatus("Nothing left on the schedule after " + now.String() + ".")
		return
	}
	header := slices.IndexFunc(m.rows, func(r visibleRow) bool {
		return r.kind == rowSlotHeader && r.time == slots[i].Time
	})
	if header >= 0 && header+1 < len(m.rows) && m.rows[header+1].selectable() {
		m.cursor = header + 1
		m.ensureCursorVisible()
	}
}

// updateListMouse scrolls the list viewport.
func (m model) updateListMouse(msg tea.MouseWheelMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseWheelUp:
		m.scroll -= 3
	case tea.MouseWheelDown:
		m.scroll += 3
	}
	m.clampListScroll()
	return m, nil
}

// openDetail shows a single record full-screen.
func (m *model) openDetail(id string) {
	m.view = viewDetail
	m.detailID = id
	m.detailScroll = 0
	m.computeDetailMaxScroll()
}

// updateDetail handles key events in the full-screen detail view.
func (m model) updateDetail(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key != "d" {
		m.pendingDrop = ""
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.view = m.tab
		m.detailID = ""
		m.rebuildRows()
	case "j", "down":
		if m.detailScroll < m.detailMaxScroll {
			m.detailScroll++
		}
	case "k", "up":
		if m.detailScroll > 0 {
			m.detailScroll--
		}
	case "J", "ctrl+d":
		m.detailScroll = min(m.detailScroll+m.height/2, m.detailMaxScroll)
	case "K", "ctrl+u":
		m.detailScroll = max(m.detailScroll-m.height/2, 0)
	case "G", "end":
		m.detailScroll = m.detailMaxScroll
	case "g", "home":
		m.detailScroll = 0
	case "space", "t":
		m.markAsTaken(m.detailID)
		m.computeDetailMaxScroll()
	case "e":
		m.openForm(m.detailID)
	case "d":
		m.deleteRecord(m.detailID)
	}
	return m, nil
}

// updateDetailMouse scrolls the detail view.
func (m model) updateDetailMouse(msg tea.MouseWheelMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseWheelUp:
		m.detailScroll = max(m.detailScroll-3, 0)
	case tea.MouseWheelDown:
		m.detailScroll = min(m.detailScroll+3, m.detailMaxScroll)
	}
	return m, nil
}

// today returns the calendar date of the clock sample.
func (m model) today() time.Time {
	y, mo, d := m.now.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, m.now.Location())
}
