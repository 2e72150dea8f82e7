package main

import (
	"fmt"
	"strings"

	"github.com/kylesnowschwartz/medtrack/medication"
	"github.com/kylesnowschwartz/medtrack/schedule"

	"charm.land/lipgloss/v2"
)

// -- Layout constants ---------------------------------------------------------

// upNextCount is how many pending doses the header previews.
const upNextCount = 4

// gridCardWidth caps a grid card so cards stay compact on wide terminals.
const gridCardWidth = 64

// -- Helpers ------------------------------------------------------------------

// rendered is a block of output plus its line count.
type rendered struct {
	content string
	lines   int
}

func newRendered(s string) rendered {
	return rendered{content: s, lines: strings.Count(s, "\n") + 1}
}

// selectionIndicator returns a left-margin marker for the selected row.
func (m model) selectionIndicator(selected bool) string {
	if selected {
		return lipgloss.NewStyle().Foreground(m.th.Accent).Render(IconSelected) + " "
	}
	return "  "
}

// spaceBetween lays out left and right strings with gap-fill spacing to span width.
func spaceBetween(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	return left + strings.Repeat(" ", gap) + right
}

// indentBlock adds a prefix to every line of a block of text.
func indentBlock(text string, indent string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}

// stripe is the record's color tag as a one-cell bar.
func (m model) stripe(r medication.Record) string {
	return lipgloss.NewStyle().Foreground(m.th.tagColor(r.Color)).Render("▌")
}

// plural returns "1 medication" / "3 medications".
func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// -- Screen -------------------------------------------------------------------

// render draws the whole screen for the active view.
func (m model) render() string {
	if m.width == 0 {
		return ""
	}
	switch m.view {
	case viewDetail:
		return m.renderDetailView()
	case viewForm:
		return m.renderFormView()
	default:
		return m.renderListView()
	}
}

func (m model) renderListView() string {
	width := m.clampWidth()
	header := m.renderHeader(width)
	footer := m.renderFooter(width)

	body := m.renderList(width)
	lines := strings.Split(body, "\n")
	if body == "" {
		lines = []string{m.renderEmpty()}
	}

	viewHeight := m.listViewHeight()
	start := min(m.scroll, len(lines))
	end := min(start+viewHeight, len(lines))
	visible := lines[start:end]
	if !m.inline {
		for len(visible) < viewHeight {
			visible = append(visible, "")
		}
	}

	return header.content + "\n" + strings.Join(visible, "\n") + "\n" + footer.content
}

func (m model) renderEmpty() string {
	switch m.tab {
	case viewCalendar:
		return m.th.Dim.Render("  No medications scheduled for this day.")
	default:
		return m.th.Dim.Render("  No medications yet. Press a to add one.")
	}
}

// renderList renders every row of the active tab.
func (m model) renderList(width int) string {
	parts := make([]string, len(m.rows))
	for i, row := range m.rows {
		parts[i] = m.renderRow(i, row, width, i == m.cursor).content
	}
	return strings.Join(parts, "\n")
}

// -- Header -------------------------------------------------------------------

// renderHeader renders the title, dashboard stats, tabs and, on the calendar
// tab, the month grid.
func (m model) renderHeader(width int) rendered {
	title := m.th.AccentBold.Render("Medication Tracker")
	when := m.th.Dim.Render(formatLongDay(m.now) + " " + IconDot + " " + m.nowClock().String())
	lines := []string{spaceBetween(title, when, width)}

	lines = append(lines, m.renderStats(width))
	lines = append(lines, m.renderTabs())
	lines = append(lines, m.th.Muted.Render(strings.Repeat("─", max(width, 1))))

	if m.tab == viewCalendar {
		lines = append(lines, m.renderMonth(width))
		lines = append(lines, m.th.PrimaryBold.Render(IconCalendar+" Medications for "+formatLongDay(m.day)))
	}
	return newRendered(strings.Join(lines, "\n"))
}

// renderStats renders the adherence summary and the next pending doses.
func (m model) renderStats(width int) string {
	s := m.meds.Stats()
	dot := " " + m.th.Muted.Render(IconDot) + " "

	adherence := m.th.PrimaryBold.Render(fmt.Sprintf("%d%%", s.Adherence)) + m.th.Dim.Render(" adherence")
	active := m.th.Secondary.Render(plural(s.Active, "active medication"))
	taken := m.th.TakenStyle.Render(fmt.Sprintf("%d/%d", s.Taken, s.Active)) + m.th.Dim.Render(" doses taken today")
	left := adherence + dot + active + dot + taken

	var names []string
	for _, r := range m.meds.Pending(upNextCount) {
		names = append(names, r.Name)
	}
	if len(names) == 0 {
		return spaceBetween(left, m.th.TakenStyle.Render(IconTaken+" all caught up"), width)
	}
	right := m.th.Dim.Render("Up next: ") + m.th.Secondary.Render(truncate(strings.Join(names, ", "), 40))
	if lipgloss.Width(left)+lipgloss.Width(right)+2 > width {
		return left
	}
	return spaceBetween(left, right, width)
}

func (m model) renderTabs() string {
	var tabs []string
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if viewState(i) == m.tab {
			tabs = append(tabs, m.th.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.th.TabInactive.Render(label))
		}
	}
	return strings.Join(tabs, "   ")
}

// -- Rows ---------------------------------------------------------------------

// renderRow renders one row of the active tab. Slot headers after the first
// row carry a blank separator line above them.
func (m model) renderRow(i int, row visibleRow, width int, selected bool) rendered {
	switch row.kind {
	case rowSlotHeader:
		return m.renderSlotHeader(i, row, width)
	case rowUnschedHeader:
		return m.renderUnschedHeader(i)
	default:
		if m.tab == viewGrid {
			return m.renderCard(row.record, width, selected)
		}
		return m.renderRecordRow(row, width, selected)
	}
}

// statusIcon maps a slot status to its icon and style.
func (m model) statusIcon(row visibleRow) string {
	if !row.hasStatus {
		return m.th.Muted.Render(IconSlot)
	}
	switch row.status {
	case schedule.StatusCurrent:
		return m.th.AccentBold.Render(IconCurrent)
	case schedule.StatusPast:
		return m.th.Muted.Render(IconPast)
	default:
		return m.th.Secondary.Render(IconUpcoming)
	}
}

func (m model) renderSlotHeader(i int, row visibleRow, width int) rendered {
	timeStyle := m.th.PrimaryBold
	if row.hasStatus && row.status == schedule.StatusPast {
		timeStyle = m.th.Dim
	}
	left := m.statusIcon(row) + " " + timeStyle.Render(row.time.String())
	if row.hasStatus {
		if row.status == schedule.StatusCurrent {
			left += " " + m.th.CurrentPill.Render("Current")
		}
		left += "  " + m.th.Dim.Render(formatDue(row.time, m.nowClock()))
	}
	line := spaceBetween(left, m.th.Muted.Render(plural(row.count, "medication")), width)
	if i > 0 {
		line = "\n" + line
	}
	return newRendered(line)
}

func (m model) renderUnschedHeader(i int) rendered {
	line := m.th.ErrorBold.Render(IconUnsched+" Unscheduled") + "  " +
		m.th.Dim.Render("time not recognized, press e to fix")
	if i > 0 {
		line = "\n" + line
	}
	return newRendered(line)
}

// renderRecordRow renders a record under a slot header:
// {sel} {stripe} {name}  {dosage · frequency}        {taken / action}
// with the instructions on a second line when present.
func (m model) renderRecordRow(row visibleRow, width int, selected bool) rendered {
	r := row.record
	past := row.hasStatus && row.status == schedule.StatusPast

	nameStyle := m.th.PrimaryBold
	if past || r.Taken {
		nameStyle = m.th.Secondary
	}
	left := m.selectionIndicator(selected) + m.stripe(r) + " " + nameStyle.Render(r.Name)
	if doses := formatDoses(r); doses != "" {
		left += "  " + m.th.Dim.Render(doses)
	}

	var right string
	switch {
	case r.Taken:
		right = m.th.TakenStyle.Render(IconTaken + " Taken")
	case row.hasStatus && row.status == schedule.StatusCurrent:
		right = m.th.AccentBold.Render("space take now")
	case row.unscheduled:
		right = m.th.ErrorBold.Render(r.Time)
	default:
		right = m.th.Muted.Render(IconPending + " pending")
	}
	line := spaceBetween(left, right, width)

	if r.Instructions != "" {
		note := strings.ReplaceAll(r.Instructions, "\n", " ")
		line += "\n" + m.selectionIndicator(selected) + "  " + m.th.Instructions.Render(truncate(note, max(width-8, 10)))
	}
	return newRendered(line)
}

// renderCard renders a grid card with a border in the record's color.
func (m model) renderCard(r medication.Record, width int, selected bool) rendered {
	cardWidth := min(width-2, gridCardWidth)
	inner := max(cardWidth-6, 20) // border (2) + padding (4)

	badge := m.th.Muted.Render(IconPending + " pending")
	if r.Taken {
		badge = m.th.TakenStyle.Render(IconTaken + " Taken")
	}
	lines := []string{
		spaceBetween(m.th.PrimaryBold.Render(truncate(r.Name, inner-12)), badge, inner),
		m.th.Secondary.Render(formatDoses(r)),
		m.th.Dim.Render(IconSlot+" "+r.Time) + "  " + m.th.Dim.Render(formatRegimen(r)),
	}
	if r.Instructions != "" {
		lines = append(lines, m.th.Instructions.Render(truncate(strings.ReplaceAll(r.Instructions, "\n", " "), inner)))
	}

	border := m.th.tagColor(r.Color)
	if selected {
		border = m.th.Accent
	}
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(cardWidth).
		Padding(0, 2).
		Render(strings.Join(lines, "\n"))
	return newRendered(card)
}

// -- Detail -------------------------------------------------------------------

// renderDetailContent renders the full detail page for one record before
// scrolling is applied. Used by both computeDetailMaxScroll and
// renderDetailView.
func (m model) renderDetailContent(r medication.Record, width int) rendered {
	badge := m.th.Muted.Render(IconPending + " not taken yet")
	if r.Taken {
		badge = m.th.TakenStyle.Render(IconTaken + " Taken")
	}
	title := spaceBetween(m.stripe(r)+" "+m.th.PrimaryBold.Render(r.Name), badge, width)

	label := func(s string) string { return m.th.Dim.Render(fmt.Sprintf("%-12s", s)) }
	value := m.th.Secondary.Render

	when := r.Time
	if c, err := r.Clock(); err != nil {
		when = m.th.ErrorBold.Render(r.Time + " (not a valid time)")
	} else {
		status := schedule.Classify(c, m.nowClock())
		when = c.String() + m.th.Dim.Render("  "+status.String()+", "+formatDue(c, m.nowClock()))
	}

	color := r.Color
	if color == "" {
		color = "none"
	}
	lines := []string{
		title,
		"",
		label("Dosage") + value(r.Dosage),
		label("Frequency") + value(r.Frequency),
		label("Time") + value(when),
		label("Regimen") + value(formatRegimen(r)),
		label("Color") + lipgloss.NewStyle().Foreground(m.th.tagColor(r.Color)).Render(color),
	}

	if strings.TrimSpace(r.Instructions) != "" {
		lines = append(lines, "", m.th.PrimaryBold.Render("Instructions"))
		lines = append(lines, indentBlock(m.md.renderMarkdown(r.Instructions, width-4), "  "))
	}

	if js, err := m.hl.highlight(r); err == nil {
		lines = append(lines, "", m.th.PrimaryBold.Render("Record"))
		lines = append(lines, indentBlock(js, "  "))
	}
	return newRendered(strings.Join(lines, "\n"))
}

func (m model) renderDetailView() string {
	width := m.clampWidth()
	r, ok := m.meds.Get(m.detailID)
	if !ok {
		return m.renderListView()
	}
	content := strings.TrimRight(m.renderDetailContent(r, width).content, "\n")
	lines := strings.Split(content, "\n")

	viewHeight := m.detailViewHeight()
	start := min(m.detailScroll, len(lines))
	end := min(start+viewHeight, len(lines))
	visible := lines[start:end]
	if !m.inline {
		for len(visible) < viewHeight {
			visible = append(visible, "")
		}
	}
	return strings.Join(visible, "\n") + "\n" + m.renderFooter(width).content
}

// -- Footer -------------------------------------------------------------------

// keyHints returns key/description pairs for the active view.
func (m model) keyHints() []string {
	switch m.view {
	case viewDetail:
		return []string{"esc", "back", "j/k", "scroll", "t", "take", "e", "edit", "d", "delete", "q", "quit"}
	case viewForm:
		return []string{"tab", "next", "←/→", "choose", "ctrl+s", "save", "ctrl+r", "reset", "esc", "cancel"}
	case viewCalendar:
		return []string{"h/l", "day", "H/L", "week", "[/]", "month", "T", "today", "space", "take", "enter", "open", "tab", "switch", "q", "quit"}
	default:
		return []string{"j/k", "nav", "space", "take", "enter", "open", "a", "add", "e", "edit", "d", "delete", "tab", "switch", "q", "quit"}
	}
}

// renderFooter renders the feedback line, when there is one, above the key
// hints bar.
func (m model) renderFooter(width int) rendered {
	bar := m.renderStatusBar(width, m.keyHints()...)
	if m.status == "" {
		return newRendered(bar)
	}
	style := m.th.StatusMessage
	if m.statusErr {
		style = m.th.ErrorBold
	}
	return newRendered(style.Render(truncate(m.status, max(width, 1))) + "\n" + bar)
}

// renderStatusBar renders key hints in a rounded-border box.
// When the data file is watched, a dim "live" indicator is prepended.
func (m model) renderStatusBar(width int, pairs ...string) string {
	sep := " " + m.th.Muted.Render(IconDot) + " "

	var hints []string
	if m.watcher != nil {
		hints = append(hints, m.th.Muted.Render("live"))
	}
	for i := 0; i+1 < len(pairs); i += 2 {
		hints = append(hints, m.th.AccentBold.Render(pairs[i])+" "+m.th.Dim.Render(pairs[i+1]))
	}

	barStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.th.Border).
		Width(max(width-2, 10)). // border chars take 2 columns
		Padding(0, 1)

	return barStyle.Render(strings.Join(hints, sep))
}
