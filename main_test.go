package main

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kylesnowschwartz/medtrack/medication"
	"github.com/kylesnowschwartz/medtrack/schedule"
)

func TestLoadCollection(t *testing.T) {
	log := slog.New(slog.DiscardHandler)

	t.Run("no data file keeps samples in memory", func(t *testing.T) {
		meds, err := loadCollection("", log)
		if err != nil {
			t.Fatalf("loadCollection: %v", err)
		}
		if meds.Len() != 5 {
			t.Errorf("Len = %d, want 5", meds.Len())
		}
	})

	t.Run("missing file is seeded", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "meds.json")
		meds, err := loadCollection(path, log)
		if err != nil {
			t.Fatalf("loadCollection: %v", err)
		}
		if meds.Len() != 5 {
			t.Errorf("Len = %d, want 5", meds.Len())
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("seed file not written: %v", err)
		}
	})

	t.Run("existing file is loaded", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "meds.json")
		if err := medication.Save(path, medication.SampleRecords()[:1]); err != nil {
			t.Fatal(err)
		}
		meds, err := loadCollection(path, log)
		if err != nil {
			t.Fatalf("loadCollection: %v", err)
		}
		if meds.Len() != 1 {
			t.Errorf("Len = %d, want 1", meds.Len())
		}
	})

	t.Run("corrupt file errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "meds.json")
		if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := loadCollection(path, log); err == nil {
			t.Error("expected an error for corrupt JSON")
		}
	})
}

func TestExportTimeline(t *testing.T) {
	records := append(medication.SampleRecords(), medication.Record{ID: "x", Time: "soon"})
	slots, bad := schedule.GroupByTimeLenient(records, medication.TimeOf)
	out := exportTimeline(slots, bad, schedule.MustParseClock("08:10"))

	if len(out.Slots) != 3 {
		t.Fatalf("slots = %d, want 3", len(out.Slots))
	}
	wantStatus := []schedule.Status{schedule.StatusCurrent, schedule.StatusUpcoming, schedule.StatusUpcoming}
	for i, s := range out.Slots {
		if s.Status != wantStatus[i] {
			t.Errorf("slot %s status = %s, want %s", s.Time, s.Status, wantStatus[i])
		}
	}
	if len(out.Unscheduled) != 1 || out.Unscheduled[0].ID != "x" {
		t.Errorf("unscheduled = %+v", out.Unscheduled)
	}

	raw, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var decoded struct {
		Now   string `json:"now"`
		Slots []struct {
			Time   string `json:"time"`
			Status string `json:"status"`
		} `json:"slots"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Now != "08:10" || decoded.Slots[0].Time != "08:00" || decoded.Slots[0].Status != "current" {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestDumpRender(t *testing.T) {
	m := testModel()
	m.height = 1_000_000
	m.inline = true
	m.computeLineOffsets()
	out := plain(m.render())
	if lines := len(strings.Split(out, "\n")); lines > 100 {
		t.Errorf("inline render has %d lines, want it unpadded", lines)
	}
}
