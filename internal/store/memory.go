package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/a3tai/mcp-planning-hours/internal/schedule"
)

// MemoryStore keeps records in process memory. It backs the CLI and the
// server when no database is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]Record
	now     func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]Record),
		now:     time.Now,
	}
}

func (m *MemoryStore) UpsertWeeks(ctx context.Context, person string, importID uuid.UUID, weeks schedule.WeeklyHours) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	recordedAt := m.now().UTC()
	for week, hours := range weeks {
		id := RecordID(person, week)
		m.records[id] = Record{
			ID:         id,
			Person:     person,
			Week:       week,
			Hours:      schedule.Round2(hours),
			ImportID:   importID,
			RecordedAt: recordedAt,
		}
	}
	return len(weeks), nil
}

func (m *MemoryStore) List(ctx context.Context, filter Filter) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Record, 0, len(m.records))
	for _, r := range m.records {
		if filter.matches(r) {
			out = append(out, r)
		}
	}
	sortRecords(out)
	return out, nil
}

func (m *MemoryStore) Persons(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, r := range m.records {
		seen[r.Person] = struct{}{}
	}
	persons := make([]string, 0, len(seen))
	for p := range seen {
		persons = append(persons, p)
	}
	sort.Strings(persons)
	return persons, nil
}

func (m *MemoryStore) DeletePerson(ctx context.Context, person string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, r := range m.records {
		if r.Person == person {
			delete(m.records, id)
			removed++
		}
	}
	if removed == 0 {
		return 0, ErrNotFound
	}
	return removed, nil
}
