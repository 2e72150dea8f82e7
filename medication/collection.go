package medication

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no record has the requested ID.
var ErrNotFound = errors.New("medication not found")

// Collection owns the medication records shown by the dashboard. It keeps
// insertion order. Not safe for concurrent use: the TUI mutates it only from
// its update loop.
type Collection struct {
	records []Record
	newID   func() string
}

// NewCollection copies records into a new collection.
func NewCollection(records []Record) *Collection {
	return &Collection{
		records: slices.Clone(records),
		newID:   uuid.NewString,
	}
}

// All returns a copy of every record in insertion order.
func (c *Collection) All() []Record {
	return slices.Clone(c.records)
}

// Len returns the number of records.
func (c *Collection) Len() int { return len(c.records) }

// Get returns the record with the given ID.
func (c *Collection) Get(id string) (Record, bool) {
	i := c.index(id)
	if i < 0 {
		return Record{}, false
	}
	return c.records[i], true
}

func (c *Collection) index(id string) int {
	return slices.IndexFunc(c.records, func(r Record) bool { return r.ID == id })
}

// Replace swaps in a new set of records, e.g. after the data file changed
// on disk.
func (c *Collection) Replace(records []Record) {
	c.records = slices.Clone(records)
}

// MarkTaken sets Taken on the matching record and leaves every other record
// unchanged. Marking an already-taken record is a no-op.
func (c *Collection) MarkTaken(id string) error {
	i := c.index(id)
	if i < 0 {
		return fmt.Errorf("mark taken %q: %w", id, ErrNotFound)
	}
	c.records[i].Taken = true
	return nil
}

// Add validates the form and appends a new untaken record with a fresh ID.
func (c *Collection) Add(f Form) (Record, error) {
	if err := f.Validate(); err != nil {
		return Record{}, err
	}
	r := f.apply(Record{ID: c.newID()})
	c.records = append(c.records, r)
	return r, nil
}

// Update validates the form and rewrites the matching record in place,
// keeping its ID and taken state.
func (c *Collection) Update(id string, f Form) (Record, error) {
	i := c.index(id)
	if i < 0 {
		return Record{}, fmt.Errorf("update %q: %w", id, ErrNotFound)
	}
	if err := f.Validate(); err != nil {
		return Record{}, err
	}
	c.records[i] = f.apply(c.records[i])
	return c.records[i], nil
}

// Delete removes the matching record.
func (c *Collection) Delete(id string) error {
	i := c.index(id)
	if i < 0 {
		return fmt.Errorf("delete %q: %w", id, ErrNotFound)
	}
	c.records = slices.Delete(c.records, i, i+1)
	return nil
}

// Pending returns up to limit untaken records in collection order.
// A limit <= 0 returns all of them.
func (c *Collection) Pending(limit int) []Record {
	var out []Record
	for _, r := range c.records {
		if r.Taken {
			continue
		}
		out = append(out, r)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// OnDay returns the records whose regimen covers day. Records with
// unparseable dates are kept so a typo never hides a dose.
func (c *Collection) OnDay(day time.Time) []Record {
	var out []Record
	for _, r := range c.records {
		ok, err := r.ActiveOn(day)
		if err != nil || ok {
			out = append(out, r)
		}
	}
	return out
}

// Stats summarizes the collection for the dashboard header.
type Stats struct {
	Active    int // medications in the collection
	Taken     int // doses marked taken
	Adherence int // taken as a whole percentage of Active; 0 when empty
}

// Stats computes dashboard totals.
func (c *Collection) Stats() Stats {
	s := Stats{Active: len(c.records)}
	for _, r := range c.records {
		if r.Taken {
			s.Taken++
		}
	}
	if s.Active > 0 {
		s.Adherence = (s.Taken*100 + s.Active/2) / s.Active
	}
	return s
}
