package main

import (
	"github.com/kylesnowschwartz/medtrack/medication"
	"github.com/kylesnowschwartz/medtrack/schedule"
)

// rowKind discriminates between group headers and record rows.
type rowKind int

const (
	rowSlotHeader    rowKind = iota // one time slot
	rowUnschedHeader                // records whose time didn't parse
	rowRecord
)

// visibleRow is one entry in the flat list a tab renders. Headers carry the
// slot time and status; record rows carry the record and the status of the
// slot they belong to.
type visibleRow struct {
	kind      rowKind
	time      schedule.Clock
	status    schedule.Status
	hasStatus bool // false on days other than today and in the grid
	count       int  // records under a header
	record      medication.Record
	unscheduled bool // record whose time did not parse
}

// selectable reports whether the cursor may rest on the row.
func (r visibleRow) selectable() bool { return r.kind == rowRecord }

// buildSlotRows flattens grouped slots into headers + record rows. When
// classify is true each slot is classified against now.
func buildSlotRows(
	slots []schedule.Slot[medication.Record],
	unscheduled []schedule.Unscheduled[medication.Record],
	now schedule.Clock,
	classify bool,
) []visibleRow {
	var rows []visibleRow
	for _, s := range slots {
		header := visibleRow{
			kind:      rowSlotHeader,
			time:      s.Time,
			count:     len(s.Items),
			hasStatus: classify,
		}
		if classify {
			header.status = schedule.Classify(s.Time, now)
		}
		rows = append(rows, header)
		for _, r := range s.Items {
			rows = append(rows, visibleRow{
				kind:      rowRecord,
				time:      s.Time,
				status:    header.status,
				hasStatus: classify,
				record:    r,
			})
		}
	}
	if len(unscheduled) > 0 {
		rows = append(rows, visibleRow{kind: rowUnschedHeader, count: len(unscheduled)})
		for _, u := range unscheduled {
			rows = append(rows, visibleRow{kind: rowRecord, record: u.Item, unscheduled: true})
		}
	}
	return rows
}

// buildGridRows lists every record without grouping.
func buildGridRows(records []medication.Record) []visibleRow {
	rows := make([]visibleRow, len(records))
	for i, r := range records {
		rows[i] = visibleRow{kind: rowRecord, record: r}
	}
	return rows
}

// firstSelectable returns the index of the first record row, or 0.
func firstSelectable(rows []visibleRow) int {
	for i, r := range rows {
		if r.selectable() {
			return i
		}
	}
	return 0
}

// lastSelectable returns the index of the last record row, or 0.
func lastSelectable(rows []visibleRow) int {
	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i].selectable() {
			return i
		}
	}
	return 0
}

// indexOfRecord finds the row holding the record with id, or -1.
func indexOfRecord(rows []visibleRow, id string) int {
	for i, r := range rows {
		if r.kind == rowRecord && r.record.ID == id {
			return i
		}
	}
	return -1
}
