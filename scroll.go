package main

import "strings"

// maxContentWidth keeps cards and rows readable on wide terminals.
const maxContentWidth = 120

// clampWidth returns m.width capped at maxContentWidth.
func (m model) clampWidth() int {
	if m.width > maxContentWidth {
		return maxContentWidth
	}
	return m.width
}

// computeLineOffsets calculates the starting line of each row in the
// rendered list. Must mirror renderList's layout to keep scroll accurate.
func (m *model) computeLineOffsets() {
	m.lineOffsets = make([]int, len(m.rows))
	m.rowLines = make([]int, len(m.rows))
	if m.width == 0 || len(m.rows) == 0 {
		m.totalRenderedLines = 0
		return
	}
	width := m.clampWidth()

	currentLine := 0
	for i, row := range m.rows {
		m.lineOffsets[i] = currentLine
		r := m.renderRow(i, row, width, false)
		m.rowLines[i] = r.lines
		currentLine += r.lines
	}
	m.totalRenderedLines = currentLine
}

// listViewHeight is the number of lines available to the list between the
// header and the footer.
func (m model) listViewHeight() int {
	width := m.clampWidth()
	h := m.height - m.renderHeader(width).lines - m.renderFooter(width).lines
	if h < 1 {
		return 1
	}
	return h
}

// ensureCursorVisible adjusts scroll so the cursor's row is within the
// visible viewport. A record directly under its header pulls the header in
// too.
func (m *model) ensureCursorVisible() {
	if len(m.lineOffsets) == 0 || m.height == 0 || m.cursor >= len(m.lineOffsets) {
		return
	}
	viewHeight := m.listViewHeight()

	cursorStart := m.lineOffsets[m.cursor]
	cursorEnd := cursorStart + m.rowLines[m.cursor] - 1
	if m.cursor > 0 && !m.rows[m.cursor-1].selectable() {
		cursorStart = m.lineOffsets[m.cursor-1]
	}

	if cursorStart < m.scroll {
		m.scroll = cursorStart
	}
	if cursorEnd >= m.scroll+viewHeight {
		m.scroll = cursorEnd - viewHeight + 1
	}
	m.clampListScroll()
}

// clampListScroll caps the list scroll offset so it can't exceed the content.
func (m *model) clampListScroll() {
	maxScroll := m.totalRenderedLines - m.listViewHeight()
	if maxScroll < 0 {
		maxScroll = 0
	}
	if m.scroll > maxScroll {
		m.scroll = maxScroll
	}
	if m.scroll < 0 {
		m.scroll = 0
	}
}

// detailViewHeight is the number of lines available to the detail body.
func (m model) detailViewHeight() int {
	h := m.height - m.renderFooter(m.clampWidth()).lines
	if h < 1 {
		return 1
	}
	return h
}

// computeDetailMaxScroll caches the maximum scroll offset for the detail view.
// Called when entering the detail view and on resize.
func (m *model) computeDetailMaxScroll() {
	if m.width == 0 || m.height == 0 {
		m.detailMaxScroll = 0
		return
	}
	r, ok := m.meds.Get(m.detailID)
	if !ok {
		m.detailMaxScroll = 0
		return
	}

	content := m.renderDetailContent(r, m.clampWidth())
	// Trim trailing newlines that lipgloss may add (phantom blank lines).
	trimmed := strings.TrimRight(content.content, "\n")
	totalLines := strings.Count(trimmed, "\n") + 1

	m.detailMaxScroll = totalLines - m.detailViewHeight()
	if m.detailMaxScroll < 0 {
		m.detailMaxScroll = 0
	}
	if m.detailScroll > m.detailMaxScroll {
		m.detailScroll = m.detailMaxScroll
	}
}
