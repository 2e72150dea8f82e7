package main

import (
	"github.com/kylesnowschwartz/medtrack/medication"
	"github.com/kylesnowschwartz/medtrack/schedule"
)

// timelineExport is the --json output: grouped slots with their status.
type timelineExport struct {
	Now         schedule.Clock      `json:"now"`
	Slots       []slotExport        `json:"slots"`
	Unscheduled []medication.Record `json:"unscheduled,omitempty"`
}

type slotExport struct {
	Time        schedule.Clock      `json:"time"`
	Status      schedule.Status     `json:"status"`
	Medications []medication.Record `json:"medications"`
}

func exportTimeline(
	slots []schedule.Slot[medication.Record],
	unscheduled []schedule.Unscheduled[medication.Record],
	now schedule.Clock,
) timelineExport {
	out := timelineExport{Now: now, Slots: make([]slotExport, 0, len(slots))}
	for _, s := range slots {
		out.Slots = append(out.Slots, slotExport{
			Time:        s.Time,
			Status:      schedule.Classify(s.Time, now),
			Medications: s.Items,
		})
	}
	for _, u := range unscheduled {
		out.Unscheduled = append(out.Unscheduled, u.Item)
	}
	return out
}
