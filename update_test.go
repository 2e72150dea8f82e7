package main

import (
	"strings"
	"testing"
	"time"

	"github.com/kylesnowschwartz/medtrack/medication"
	"github.com/kylesnowschwartz/medtrack/schedule"

	tea "charm.land/bubbletea/v2"
)

// --- TestUpdateList --------------------------------------------------------

func TestUpdateList(t *testing.T) {
	t.Run("cursor starts on first record", func(t *testing.T) {
		m := testModel()
		if m.cursor != 1 {
			t.Errorf("cursor = %d, want 1", m.cursor)
		}
	})

	t.Run("j moves to next record", func(t *testing.T) {
		m := testModel()
		result, cmd := m.updateList(key("j"))
		got := asModel(result)
		if got.cursor != 2 {
			t.Errorf("cursor = %d, want 2", got.cursor)
		}
		if cmd != nil {
			t.Errorf("j should not emit a command, got %T", cmd)
		}
	})

	t.Run("j skips slot headers", func(t *testing.T) {
		m := testModel()
		m.cursor = 2
		got := press(m, "j")
		if got.cursor != 4 {
			t.Errorf("cursor = %d, want 4 (Vitamin D)", got.cursor)
		}
	})

	t.Run("k skips slot headers", func(t *testing.T) {
		m := testModel()
		m.cursor = 4
		got := press(m, "k")
		if got.cursor != 2 {
			t.Errorf("cursor = %d, want 2", got.cursor)
		}
	})

	t.Run("k does not move onto the first header", func(t *testing.T) {
		got := press(testModel(), "k")
		if got.cursor != 1 {
			t.Errorf("cursor = %d, want 1", got.cursor)
		}
	})

	t.Run("j does not exceed last record", func(t *testing.T) {
		m := testModel()
		m.cursor = 7
		got := press(m, "j", "down")
		if got.cursor != 7 {
			t.Errorf("cursor = %d, want 7", got.cursor)
		}
	})

	t.Run("G and g jump to the ends", func(t *testing.T) {
		m := press(testModel(), "G")
		if m.cursor != 7 {
			t.Errorf("after G cursor = %d, want 7", m.cursor)
		}
		m = press(m, "g")
		if m.cursor != 1 {
			t.Errorf("after g cursor = %d, want 1", m.cursor)
		}
	})

	t.Run("q quits", func(t *testing.T) {
		_, cmd := testModel().updateList(key("q"))
		if !isQuit(cmd) {
			t.Error("q should quit")
		}
	})

	t.Run("ctrl+c quits from any view", func(t *testing.T) {
		m := testModel()
		m.openForm("")
		_, cmd := m.Update(key("ctrl+c"))
		if !isQuit(cmd) {
			t.Error("ctrl+c should quit from the form")
		}
	})

	t.Run("n jumps to the current slot", func(t *testing.T) {
		m := testModel()
		m.cursor = 7
		got := press(m, "n")
		if got.cursor != 1 {
			t.Errorf("cursor = %d, want 1 (first record at 08:00)", got.cursor)
		}
	})

	t.Run("n falls forward to the next upcoming slot", func(t *testing.T) {
		m := testModel()
		m.now = time.Date(2023, 5, 10, 10, 0, 0, 0, time.UTC)
		m.refresh()
		got := press(m, "n")
		if selectedID(got) != "3" {
			t.Errorf("selected = %q, want 3 (Vitamin D at 12:30)", selectedID(got))
		}
	})

	t.Run("n after the last slot reports it", func(t *testing.T) {
		m := testModel()
		m.now = time.Date(2023, 5, 10, 22, 0, 0, 0, time.UTC)
		m.refresh()
		m.cursor = 4
		got := press(m, "n")
		if got.cursor != 4 {
			t.Errorf("cursor = %d, want 4 (unchanged)", got.cursor)
		}
		if !strings.Contains(got.status, "Nothing left") {
			t.Errorf("status = %q", got.status)
		}
	})

	t.Run("n on the grid has no current slot", func(t *testing.T) {
		got := press(testModel(), "2", "n")
		if !strings.Contains(got.status, "Only today's schedule") {
			t.Errorf("status = %q", got.status)
		}
	})
}

// --- TestMarkAsTaken -------------------------------------------------------

func TestMarkAsTaken(t *testing.T) {
	t.Run("space marks only the selected record", func(t *testing.T) {
		m := testModel()
		before := m.meds.All()
		got := press(m, "space")

		after := got.meds.All()
		for i := range after {
			want := before[i]
			if want.ID == "1" {
				want.Taken = true
			}
			if after[i] != want {
				t.Errorf("record %s = %+v, want %+v", after[i].ID, after[i], want)
			}
		}
		if !strings.Contains(got.status, "marked as taken") {
			t.Errorf("status = %q", got.status)
		}
		if got.statusErr {
			t.Error("statusErr should be false")
		}
	})

	t.Run("cursor stays on the record", func(t *testing.T) {
		m := testModel()
		m.cursor = 4
		got := press(m, "t")
		if selectedID(got) != "3" {
			t.Errorf("selected = %q, want 3", selectedID(got))
		}
	})

	t.Run("taking twice reports it", func(t *testing.T) {
		got := press(testModel(), "space", "space")
		if !strings.Contains(got.status, "already") {
			t.Errorf("status = %q, want already-taken notice", got.status)
		}
	})

	t.Run("rows reflect the taken flag", func(t *testing.T) {
		got := press(testModel(), "space")
		if !got.rows[1].record.Taken {
			t.Error("row 1 should show Amoxicillin as taken")
		}
	})

	t.Run("persists to the data file", func(t *testing.T) {
		m := testModel()
		m.dataPath = t.TempDir() + "/meds.json"
		got := press(m, "space")

		records, err := medication.Load(got.dataPath)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if len(records) != 5 || !records[0].Taken {
			t.Errorf("saved records = %+v", records)
		}
	})
}

// --- TestDelete ------------------------------------------------------------

func TestDelete(t *testing.T) {
	t.Run("first d asks for confirmation", func(t *testing.T) {
		got := press(testModel(), "d")
		if got.meds.Len() != 5 {
			t.Errorf("Len = %d, want 5", got.meds.Len())
		}
		if !strings.Contains(got.status, "Press d again") {
			t.Errorf("status = %q", got.status)
		}
	})

	t.Run("second d deletes", func(t *testing.T) {
		got := press(testModel(), "d", "d")
		if got.meds.Len() != 4 {
			t.Errorf("Len = %d, want 4", got.meds.Len())
		}
		if _, ok := got.meds.Get("1"); ok {
			t.Error("Amoxicillin should be gone")
		}
		if selectedID(got) == "" {
			t.Error("cursor should rest on a remaining record")
		}
	})

	t.Run("another key cancels", func(t *testing.T) {
		got := press(testModel(), "d", "j", "d")
		if got.meds.Len() != 5 {
			t.Errorf("Len = %d, want 5", got.meds.Len())
		}
	})

	t.Run("deleting from detail returns to the list", func(t *testing.T) {
		got := press(testModel(), "enter", "d", "d")
		if got.view != viewTimeline {
			t.Errorf("view = %d, want timeline", got.view)
		}
		if got.meds.Len() != 4 {
			t.Errorf("Len = %d, want 4", got.meds.Len())
		}
	})
}

// --- TestTabs --------------------------------------------------------------

func TestTabs(t *testing.T) {
	t.Run("tab cycles views", func(t *testing.T) {
		m := press(testModel(), "tab")
		if m.view != viewGrid || m.tab != viewGrid {
			t.Fatalf("view = %d, want grid", m.view)
		}
		m = press(m, "tab")
		if m.view != viewCalendar {
			t.Fatalf("view = %d, want calendar", m.view)
		}
		m = press(m, "tab")
		if m.view != viewTimeline {
			t.Fatalf("view = %d, want timeline", m.view)
		}
	})

	t.Run("shift+tab goes back", func(t *testing.T) {
		m := press(testModel(), "shift+tab")
		if m.view != viewCalendar {
			t.Errorf("view = %d, want calendar", m.view)
		}
	})

	t.Run("number keys pick a tab", func(t *testing.T) {
		m := press(testModel(), "2")
		if m.view != viewGrid {
			t.Errorf("view = %d, want grid", m.view)
		}
		if len(m.rows) != 5 {
			t.Errorf("grid rows = %d, want 5", len(m.rows))
		}
	})

	t.Run("selection survives a tab switch", func(t *testing.T) {
		m := testModel()
		m.cursor = 4 // Vitamin D
		got := press(m, "2")
		if selectedID(got) != "3" {
			t.Errorf("selected = %q, want 3", selectedID(got))
		}
	})
}

// --- TestCalendar ----------------------------------------------------------

func TestCalendar(t *testing.T) {
	hasRecord := func(m model, id string) bool {
		return indexOfRecord(m.rows, id) >= 0
	}

	t.Run("starts on today", func(t *testing.T) {
		m := press(testModel(), "3")
		if !sameDay(m.day, testNow) {
			t.Errorf("day = %v, want %v", m.day, testNow)
		}
		if !hasRecord(m, "1") {
			t.Error("Amoxicillin is active today")
		}
		if !m.rows[0].hasStatus {
			t.Error("today's slots should be classified")
		}
	})

	t.Run("next month drops finished regimens", func(t *testing.T) {
		m := press(testModel(), "3", "]")
		if m.day.Month() != time.June {
			t.Fatalf("month = %v, want June", m.day.Month())
		}
		if hasRecord(m, "1") {
			t.Error("Amoxicillin ended on 2023-05-14")
		}
		if !hasRecord(m, "2") {
			t.Error("Lisinopril is open-ended")
		}
		if m.rows[0].hasStatus {
			t.Error("other days should not be classified")
		}
	})

	t.Run("h and l step days, T returns", func(t *testing.T) {
		m := press(testModel(), "3", "l", "l", "h")
		if m.day.Day() != 11 {
			t.Errorf("day = %d, want 11", m.day.Day())
		}
		m = press(m, "L")
		if m.day.Day() != 18 {
			t.Errorf("L should add a week, got day %d", m.day.Day())
		}
		m = press(m, "T")
		if !sameDay(m.day, testNow) {
			t.Errorf("T should return to today, got %v", m.day)
		}
	})

	t.Run("before any regimen is empty", func(t *testing.T) {
		m := testModel()
		m.switchTab(viewCalendar)
		m.selectDay(time.Date(2022, time.December, 1, 0, 0, 0, 0, time.UTC))
		if len(m.rows) != 0 {
			t.Errorf("rows = %d, want 0", len(m.rows))
		}
		if _, ok := m.selectedRecord(); ok {
			t.Error("nothing should be selected")
		}
	})
}

// --- TestUpdateDetail ------------------------------------------------------

func TestUpdateDetail(t *testing.T) {
	t.Run("enter opens the selected record", func(t *testing.T) {
		m := press(testModel(), "enter")
		if m.view != viewDetail {
			t.Fatalf("view = %d, want detail", m.view)
		}
		if m.detailID != "1" {
			t.Errorf("detailID = %q, want 1", m.detailID)
		}
	})

	t.Run("esc returns to the tab", func(t *testing.T) {
		m := press(testModel(), "2", "enter", "esc")
		if m.view != viewGrid {
			t.Errorf("view = %d, want grid", m.view)
		}
	})

	t.Run("t marks the open record", func(t *testing.T) {
		m := press(testModel(), "enter", "t")
		r, _ := m.meds.Get("1")
		if !r.Taken {
			t.Error("Amoxicillin should be taken")
		}
		if m.view != viewDetail {
			t.Error("should stay in detail")
		}
	})

	t.Run("j and k scroll within bounds", func(t *testing.T) {
		m := press(testModel(), "enter")
		m.detailMaxScroll = 2
		m = press(m, "j", "j", "j")
		if m.detailScroll != 2 {
			t.Errorf("detailScroll = %d, want 2", m.detailScroll)
		}
		m = press(m, "k", "k", "k")
		if m.detailScroll != 0 {
			t.Errorf("detailScroll = %d, want 0", m.detailScroll)
		}
	})

	t.Run("mouse wheel scrolls", func(t *testing.T) {
		m := press(testModel(), "enter")
		m.detailMaxScroll = 10
		result, _ := m.Update(wheel(tea.MouseWheelDown))
		if got := asModel(result); got.detailScroll != 3 {
			t.Errorf("detailScroll = %d, want 3", got.detailScroll)
		}
	})
}

// --- TestUpdateMessages ----------------------------------------------------

func TestUpdateMessages(t *testing.T) {
	t.Run("window size is stored", func(t *testing.T) {
		result, _ := testModel().Update(tea.WindowSizeMsg{Width: 80, Height: 24})
		got := asModel(result)
		if got.width != 80 || got.height != 24 {
			t.Errorf("size = %dx%d, want 80x24", got.width, got.height)
		}
	})

	t.Run("clock tick reclassifies slots", func(t *testing.T) {
		m := testModel()
		m.frozen = false
		tick := clockTickMsg(time.Date(2023, time.May, 10, 12, 10, 0, 0, time.UTC))
		result, cmd := m.Update(tick)
		got := asModel(result)
		if cmd == nil {
			t.Error("tick should re-arm itself")
		}
		if got.rows[0].status != schedule.StatusPast {
			t.Errorf("08:00 = %s, want past", got.rows[0].status)
		}
		if got.rows[3].status != schedule.StatusCurrent {
			t.Errorf("12:30 = %s, want current", got.rows[3].status)
		}
	})

	t.Run("frozen clock ignores ticks", func(t *testing.T) {
		m := testModel()
		result, cmd := m.Update(clockTickMsg(testNow.Add(5 * time.Hour)))
		got := asModel(result)
		if !got.now.Equal(testNow) {
			t.Errorf("now = %v, want %v", got.now, testNow)
		}
		if cmd != nil {
			t.Error("frozen clock should not re-arm")
		}
	})

	t.Run("reload replaces the collection", func(t *testing.T) {
		m := testModel()
		records := medication.SampleRecords()[:2]
		result, _ := m.Update(dataReloadMsg{records: records})
		got := asModel(result)
		if got.meds.Len() != 2 {
			t.Errorf("Len = %d, want 2", got.meds.Len())
		}
		if !strings.HasPrefix(got.status, "Reloaded") {
			t.Errorf("status = %q", got.status)
		}
	})

	t.Run("identical reload is a no-op", func(t *testing.T) {
		m := testModel()
		result, _ := m.Update(dataReloadMsg{records: medication.SampleRecords()})
		if got := asModel(result); got.status != "" {
			t.Errorf("status = %q, want empty", got.status)
		}
	})

	t.Run("list mouse wheel scrolls", func(t *testing.T) {
		m := testModel()
		m.height = 12
		m.computeLineOffsets()
		result, _ := m.Update(wheel(tea.MouseWheelDown))
		got := asModel(result)
		if got.scroll == 0 && got.totalRenderedLines > got.listViewHeight() {
			t.Error("wheel down should scroll a list taller than the view")
		}
	})
}
