// Package store persists weekly hour totals per person and ISO week.
//
// A record is keyed by person and week, so importing a newer planning for the
// same person overwrites the weeks it covers and leaves the others untouched.
package store

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/a3tai/mcp-planning-hours/internal/schedule"
)

// ErrNotFound is returned when a person has no stored weeks.
var ErrNotFound = errors.New("no records found")

// Record is the stored total of one person for one ISO week.
type Record struct {
	ID         string          `json:"id"`
	Person     string          `json:"person"`
	Week       schedule.WeekID `json:"week"`
	Hours      float64         `json:"hours"`
	ImportID   uuid.UUID       `json:"import_id"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// Year is the ISO week-year of the record.
func (r Record) Year() int {
	return r.Week.Year()
}

// Filter narrows List. Zero values match everything.
type Filter struct {
	Person string
	Year   int
}

func (f Filter) matches(r Record) bool {
	if f.Person != "" && r.Person != f.Person {
		return false
	}
	if f.Year != 0 && r.Year() != f.Year {
		return false
	}
	return true
}

// Store is implemented by MemoryStore and PostgresStore.
type Store interface {
	// UpsertWeeks writes one record per week of the planning and returns the
	// number of records written.
	UpsertWeeks(ctx context.Context, person string, importID uuid.UUID, weeks schedule.WeeklyHours) (int, error)
	// List returns matching records ordered by person then week.
	List(ctx context.Context, filter Filter) ([]Record, error)
	// Persons returns the distinct person names in alphabetical order.
	Persons(ctx context.Context) ([]string, error)
	// DeletePerson removes every record of person and returns how many were
	// removed. It returns ErrNotFound when there was none.
	DeletePerson(ctx context.Context, person string) (int, error)
}

var unsafeIDChars = regexp.MustCompile(`[\s./#\[\]$]`)

// RecordID builds the record key of person for week. Characters that are not
// allowed in document keys are replaced with underscores.
func RecordID(person string, week schedule.WeekID) string {
	return unsafeIDChars.ReplaceAllString(person, "_") + "_" + string(week)
}

func sortRecords(records []Record) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].Person != records[j].Person {
			return records[i].Person < records[j].Person
		}
		return records[i].Week < records[j].Week
	})
}
