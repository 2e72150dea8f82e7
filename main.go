package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/kylesnowschwartz/medtrack/medication"
	"github.com/kylesnowschwartz/medtrack/schedule"

	tea "charm.land/bubbletea/v2"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// View states. The first three are tabs; detail and form are full-screen
// overlays that return to the tab they were opened from.
type viewState int

const (
	viewTimeline viewState = iota // grouped by time of day (main view)
	viewGrid                      // every medication as a card
	viewCalendar                  // medications active on a selected day
	viewDetail                    // full-screen single medication
	viewForm                      // add or edit form
)

var tabNames = []string{"Timeline", "Grid", "Calendar"}

// clockTickMsg carries a fresh wall-clock sample.
type clockTickMsg time.Time

// clockTickCmd re-samples the clock on each minute boundary.
func clockTickCmd() tea.Cmd {
	return tea.Every(time.Minute, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

type model struct {
	meds *medication.Collection
	log  *slog.Logger

	now    time.Time // last clock sample; slots are classified against it
	frozen bool      // --now was given; ignore ticks

	view   viewState
	tab    viewState // active tab; detail and form return here
	width  int
	height int

	// Timeline grouping, recomputed whenever the collection changes.
	slots       []schedule.Slot[medication.Record]
	unscheduled []schedule.Unscheduled[medication.Record]

	// Rows of the active tab.
	rows               []visibleRow
	cursor             int   // selected row index; always a record row when any exist
	scroll             int   // list scroll offset in lines
	lineOffsets        []int // starting line of each row in rendered output
	rowLines           []int // number of rendered lines per row
	totalRenderedLines int   // total lines in the list, updated by computeLineOffsets

	// Calendar tab state
	day time.Time

	// Detail view state
	detailID        string
	detailScroll    int
	detailMaxScroll int

	form *formState

	// One-line feedback shown above the key hints.
	status      string
	statusErr   bool
	pendingDrop string // record ID awaiting a second "d"

	th     theme
	md     *mdRenderer
	inline bool // --dump: don't pad views to the terminal height
	hl     *jsonHL

	// Data file state
	dataPath  string
	watcher   *dataWatcher
	watchSub  chan []medication.Record
	watchErrc chan error
}

func initialModel(meds *medication.Collection, now time.Time, hasDarkBg bool) model {
	m := model{
		meds: meds,
		log:  slog.New(slog.DiscardHandler),
		now:  now,
		day:  now,
		view: viewTimeline,
		tab:  viewTimeline,
		th:   newTheme(hasDarkBg),
		md:   newMDRenderer(hasDarkBg),
		hl:   newJSONHL(hasDarkBg, os.Stdout),
	}
	m.refresh()
	return m
}

// nowClock is the time of day slots are classified against.
func (m model) nowClock() schedule.Clock {
	return schedule.ClockOf(m.now)
}

// regroup recomputes the timeline grouping from the collection.
func (m *model) regroup() {
	m.slots, m.unscheduled = schedule.GroupByTimeLenient(m.meds.All(), medication.TimeOf)
	for _, u := range m.unscheduled {
		m.log.Warn("unscheduled medication", "id", u.Item.ID, "name", u.Item.Name, "err", u.Err)
	}
}

// refresh regroups and rebuilds the active tab's rows.
func (m *model) refresh() {
	m.regroup()
	m.rebuildRows()
}

// daySlots groups the records active on the calendar's selected day.
func (m model) daySlots() ([]schedule.Slot[medication.Record], []schedule.Unscheduled[medication.Record]) {
	return schedule.GroupByTimeLenient(m.meds.OnDay(m.day), medication.TimeOf)
}

// todaySlots returns the slots the active tab classifies against now. The
// grid and past or future calendar days have none.
func (m model) todaySlots() ([]schedule.Slot[medication.Record], bool) {
	switch {
	case m.tab == viewTimeline:
		return m.slots, true
	case m.tab == viewCalendar && sameDay(m.day, m.now):
		slots, _ := m.daySlots()
		return slots, true
	}
	return nil, false
}

// rebuildRows lays out the active tab, keeping the cursor on the same record
// when it still exists.
func (m *model) rebuildRows() {
	selected := ""
	if r, ok := m.selectedRecord(); ok {
		selected = r.ID
	}

	switch m.tab {
	case viewGrid:
		m.rows = buildGridRows(m.meds.All())
	case viewCalendar:
		slots, bad := m.daySlots()
		m.rows = buildSlotRows(slots, bad, m.nowClock(), sameDay(m.day, m.now))
	default:
		m.rows = buildSlotRows(m.slots, m.unscheduled, m.nowClock(), true)
	}

	if i := indexOfRecord(m.rows, selected); selected != "" && i >= 0 {
		m.cursor = i
	} else if m.cursor >= len(m.rows) || m.cursor < 0 || (len(m.rows) > 0 && !m.rows[m.cursor].selectable()) {
		m.cursor = m.nearestSelectable(m.cursor)
	}
	m.computeLineOffsets()
	m.ensureCursorVisible()
}

// nearestSelectable returns the closest record row at or after i, falling
// back to the last record row.
func (m model) nearestSelectable(i int) int {
	if i < 0 {
		i = 0
	}
	for j := i; j < len(m.rows); j++ {
		if m.rows[j].selectable() {
			return j
		}
	}
	return lastSelectable(m.rows)
}

// selectedRecord returns the record under the cursor in list views, or the
// open record in the detail view.
func (m model) selectedRecord() (medication.Record, bool) {
	if m.view == viewDetail && m.detailID != "" {
		return m.meds.Get(m.detailID)
	}
	if m.cursor < 0 || m.cursor >= len(m.rows) || !m.rows[m.cursor].selectable() {
		return medication.Record{}, false
	}
	return m.rows[m.cursor].record, true
}

// setStatus replaces the feedback line.
func (m *model) setStatus(msg string) {
	m.status, m.statusErr = msg, false
}

// setError shows err in the feedback line and logs it.
func (m *model) setError(msg string, err error) {
	m.status, m.statusErr = msg, true
	m.log.Error(msg, "err", err)
}

// persist writes the collection to the data file, if there is one.
func (m *model) persist() {
	if m.dataPath == "" {
		return
	}
	if err := medication.Save(m.dataPath, m.meds.All()); err != nil {
		m.setError("Couldn't save "+filepath.Base(m.dataPath), err)
	}
}

// markAsTaken is the "take now" action: the collection sets Taken on the
// matching record and nothing else.
func (m *model) markAsTaken(id string) {
	r, ok := m.meds.Get(id)
	if !ok {
		return
	}
	if r.Taken {
		m.setStatus(r.Name + " is already marked as taken.")
		return
	}
	if err := m.meds.MarkTaken(id); err != nil {
		m.setError("Couldn't mark "+r.Name+" as taken", err)
		return
	}
	m.log.Info("medication taken", "id", id, "name", r.Name, "at", m.nowClock().String())
	m.setStatus("Medication marked as taken. Great job staying on track!")
	m.persist()
	m.refresh()
}

// deleteRecord removes a record after a second confirming "d".
func (m *model) deleteRecord(id string) {
	r, ok := m.meds.Get(id)
	if !ok {
		return
	}
	if m.pendingDrop != id {
		m.pendingDrop = id
		m.setStatus("Press d again to delete " + r.Name + ".")
		return
	}
	m.pendingDrop = ""
	if err := m.meds.Delete(id); err != nil {
		m.setError("Couldn't delete "+r.Name, err)
		return
	}
	m.log.Info("medication deleted", "id", id, "name", r.Name)
	m.setStatus("Medication deleted. " + r.Name + " has been removed from your list.")
	m.persist()
	if m.view == viewDetail {
		m.view = m.tab
		m.detailID = ""
	}
	m.refresh()
}

// switchTab activates a list tab and rebuilds its rows.
func (m *model) switchTab(tab viewState) {
	m.tab = tab
	m.view = tab
	m.scroll = 0
	m.rebuildRows()
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (m model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if !m.frozen {
		cmds = append(cmds, clockTickCmd())
	}
	if m.watcher != nil {
		cmds = append(cmds, waitForReload(m.watchSub), waitForWatcherErr(m.watchErrc))
	}
	return tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.computeLineOffsets()
		m.ensureCursorVisible()
		if m.view == viewDetail {
			m.computeDetailMaxScroll()
		}
		return m, nil

	case clockTickMsg:
		if m.frozen {
			return m, nil
		}
		prev := m.now
		m.now = time.Time(msg)
		// Keep the calendar on "today" across midnight if it was there.
		if sameDay(m.day, prev) {
			m.day = m.now
		}
		m.rebuildRows()
		return m, clockTickCmd()

	case dataReloadMsg:
		if !slices.Equal(msg.records, m.meds.All()) {
			m.meds.Replace(msg.records)
			m.refresh()
			if m.view == viewDetail {
				if _, ok := m.meds.Get(m.detailID); !ok {
					m.view = m.tab
				} else {
					m.computeDetailMaxScroll()
				}
			}
			m.setStatus("Reloaded " + filepath.Base(m.dataPath) + ".")
			m.log.Info("data file reloaded", "path", m.dataPath, "records", len(msg.records))
		}
		return m, waitForReload(m.watchSub)

	case watcherErrMsg:
		// Transient watcher errors: log, re-subscribe and keep going.
		m.log.Warn("data watcher", "err", msg.err)
		return m, waitForWatcherErr(m.watchErrc)

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.view {
		case viewDetail:
			return m.updateDetail(msg)
		case viewForm:
			return m.updateForm(msg)
		default:
			return m.updateList(msg)
		}

	case tea.MouseWheelMsg:
		if m.view == viewDetail {
			return m.updateDetailMouse(msg)
		}
		if m.view != viewForm {
			return m.updateListMouse(msg)
		}
	}

	return m, nil
}

func (m model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

// loadCollection builds the collection from the data file, seeding it with
// the sample records when the file doesn't exist yet. Without a data file the
// collection lives in memory only.
func loadCollection(path string, log *slog.Logger) (*medication.Collection, error) {
	if path == "" {
		return medication.NewCollection(medication.SampleRecords()), nil
	}
	records, err := medication.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		records = medication.SampleRecords()
		if err := medication.Save(path, records); err != nil {
			return nil, err
		}
		log.Info("seeded data file", "path", path)
		return medication.NewCollection(records), nil
	}
	if err != nil {
		return nil, err
	}
	return medication.NewCollection(records), nil
}

func run(cfg config) error {
	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	meds, err := loadCollection(cfg.DataPath, logger)
	if err != nil {
		return err
	}

	now := time.Now()
	if cfg.Now != nil {
		now = cfg.Now.On(now)
	}

	hasDarkBg := termenv.HasDarkBackground()
	m := initialModel(meds, now, hasDarkBg)
	m.log = logger
	m.frozen = cfg.Now != nil
	m.dataPath = cfg.DataPath
	m.refresh() // log unscheduled records with the real logger

	if cfg.JSON {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			m.hl = nil
		}
		out, err := m.hl.highlight(exportTimeline(m.slots, m.unscheduled, m.nowClock()))
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	if cfg.Dump {
		m.width = 100
		m.height = 1_000_000
		m.inline = true
		m.computeLineOffsets()
		fmt.Println(m.render())
		return nil
	}

	// Watch the data file for edits made outside the TUI.
	if cfg.DataPath != "" {
		w := newDataWatcher(cfg.DataPath)
		go w.run()
		defer w.stop()
		m.watcher = w
		m.watchSub = w.sub
		m.watchErrc = w.errc
	}

	logger.Info("starting", "data", cfg.DataPath, "records", meds.Len())
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
