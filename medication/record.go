// Package medication holds the medication collection the dashboard renders:
// records, add/edit form validation, and JSON file persistence.
package medication

import (
	"time"

	"github.com/kylesnowschwartz/medtrack/schedule"
)

// Record is one scheduled medication with a fixed time of day.
type Record struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Time         string `json:"time"` // 24-hour HH:MM
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate,omitempty"`
	Instructions string `json:"instructions,omitempty"`
	Color        string `json:"color,omitempty"`
	Taken        bool   `json:"taken"`
}

// TimeOf returns the record's time string. Used as the grouping key func.
func TimeOf(r Record) string { return r.Time }

// Clock parses the record's time of day.
func (r Record) Clock() (schedule.Clock, error) {
	return schedule.ParseClock(r.Time)
}

// ActiveOn reports whether the record's regimen covers day.
func (r Record) ActiveOn(day time.Time) (bool, error) {
	return schedule.ActiveOn(r.StartDate, r.EndDate, day)
}

// Colors are the accepted color tags, in picker order.
var Colors = []string{"blue", "green", "red", "yellow", "purple"}

// Frequencies are the accepted frequency labels, in picker order.
var Frequencies = []string{
	"Once daily",
	"Twice daily",
	"Three times daily",
	"Every other day",
	"Weekly",
	"As needed",
}

// SampleRecords returns the seed collection shown when no data file exists.
func SampleRecords() []Record {
	return []Record{
		{
			ID:           "1",
			Name:         "Amoxicillin",
			Dosage:       "500mg",
			Frequency:    "Twice daily",
			Time:         "08:00",
			StartDate:    "2023-05-01",
			EndDate:      "2023-05-14",
			Instructions: "Take with food to reduce stomach upset",
			Color:        "blue",
		},
		{
			ID:           "2",
			Name:         "Lisinopril",
			Dosage:       "10mg",
			Frequency:    "Once daily",
			Time:         "08:00",
			StartDate:    "2023-04-15",
			Instructions: "Take in the morning",
			Color:        "green",
		},
		{
			ID:           "3",
			Name:         "Vitamin D",
			Dosage:       "1000 IU",
			Frequency:    "Once daily",
			Time:         "12:30",
			StartDate:    "2023-01-10",
			Instructions: "Take with a meal",
			Color:        "yellow",
		},
		{
			ID:           "4",
			Name:         "Atorvastatin",
			Dosage:       "20mg",
			Frequency:    "Once daily",
			Time:         "20:00",
			StartDate:    "2023-03-22",
			Instructions: "Take in the evening",
			Color:        "purple",
		},
		{
			ID:        "5",
			Name:      "Aspirin",
			Dosage:    "81mg",
			Frequency: "Once daily",
			Time:      "20:00",
			StartDate: "2023-02-05",
			Color:     "red",
		},
	}
}
