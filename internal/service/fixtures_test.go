package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/noah-isme/uni-timetable-api/internal/models"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
)

// 2025-01-06 is a Monday.
var testMonday = time.Date(2025, time.January, 6, 8, 0, 0, 0, time.UTC)

func testTables() models.ReferenceTables {
	return models.ReferenceTables{
		Subjects: []models.Subject{
			{ID: "S1", Name: "Algorithms"},
			{ID: "S2", Name: "Chemistry Lab", RequiresLab: true},
		},
		Faculty: []models.Faculty{
			{ID: "F1", Name: "Dr. Smith", SubjectID: "S1"},
			{ID: "F2", Name: "Dr. Rao", SubjectID: "S2"},
		},
		Batches: []models.Batch{
			{ID: "B1", Name: "CS-2025", Size: 60},
			{ID: "B2", Name: "CH-2025", Size: 40},
		},
		Classrooms: []models.Classroom{
			{ID: "R1", Name: "Room 101", Capacity: 60},
			{ID: "R2", Name: "Room 102", Capacity: 60},
			{ID: "L1", Name: "Lab A", IsLab: true, Capacity: 40},
		},
		Clubs:        []models.Club{{ID: "C1", Name: "Chess Club"}},
		Coordinators: []models.Coordinator{{ID: "K1", Name: "Asha", ClubID: "C1"}},
	}
}

func academic(id string, day models.DayOfWeek, start, end, batch, faculty, room string) models.Event {
	return models.Event{
		ID:          id,
		Day:         day,
		StartTime:   start,
		EndTime:     end,
		ClassroomID: room,
		SubjectID:   models.StringPtr("S1"),
		FacultyID:   models.StringPtr(faculty),
		BatchID:     models.StringPtr(batch),
	}
}

func club(id string, day models.DayOfWeek, start, end, room string) models.Event {
	return models.Event{
		ID:            id,
		Day:           day,
		StartTime:     start,
		EndTime:       end,
		ClassroomID:   room,
		ClubID:        models.StringPtr("C1"),
		CoordinatorID: models.StringPtr("K1"),
		EventName:     models.StringPtr("Chess Night"),
	}
}

// memoryEvents is an in-memory schedule store.
type memoryEvents struct {
	mu       sync.Mutex
	events   []models.Event
	seq      int
	listErr  error
	writeErr error
	listed   []models.EventFilter
}

func newMemoryEvents(events ...models.Event) *memoryEvents {
	return &memoryEvents{events: append([]models.Event(nil), events...)}
}

func (m *memoryEvents) ListAll(context.Context) ([]models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]models.Event(nil), m.events...), nil
}

func (m *memoryEvents) List(_ context.Context, filter models.EventFilter) ([]models.Event, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listed = append(m.listed, filter)
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	var out []models.Event
	for _, e := range m.events {
		if filter.Day != "" && e.Day != filter.Day {
			continue
		}
		if filter.FacultyID != "" && e.Faculty() != filter.FacultyID {
			continue
		}
		if filter.Status != nil && e.Status != *filter.Status {
			continue
		}
		out = append(out, e)
	}
	return out, len(out), nil
}

func (m *memoryEvents) FindByID(_ context.Context, id string) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			found := e
			return &found, nil
		}
	}
	return nil, fmt.Errorf("find event %s: %w", id, sql.ErrNoRows)
}

func (m *memoryEvents) Create(_ context.Context, event *models.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	if event.ID == "" {
		m.seq++
		event.ID = fmt.Sprintf("new-%d", m.seq)
	}
	m.events = append(m.events, *event)
	return nil
}

func (m *memoryEvents) UpdateStatus(_ context.Context, id string, status models.EventStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.events {
		if m.events[i].ID == id {
			m.events[i].Status = status
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *memoryEvents) UpdateSlot(_ context.Context, event *models.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.events {
		if m.events[i].ID == event.ID {
			m.events[i] = *event
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *memoryEvents) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.events {
		if m.events[i].ID == id {
			m.events = append(m.events[:i], m.events[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *memoryEvents) ReplaceAll(_ context.Context, events []models.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.events = append([]models.Event(nil), events...)
	return nil
}

func (m *memoryEvents) byID(id string) (models.Event, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			return e, true
		}
	}
	return models.Event{}, false
}

// staticReference serves fixed tables and counts loads.
type staticReference struct {
	tables models.ReferenceTables
	err    error
	loads  int
}

func (s *staticReference) Load(context.Context) (models.ReferenceTables, error) {
	s.loads++
	return s.tables, s.err
}

func (s *staticReference) Reference(context.Context) (*models.ReferenceData, error) {
	if s.err != nil {
		return nil, s.err
	}
	return models.NewReferenceData(s.tables), nil
}

// recordingNotifier remembers schedule change reasons.
type recordingNotifier struct {
	mu      sync.Mutex
	reasons []string
}

func (r *recordingNotifier) ScheduleChanged(_ context.Context, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reasons = append(r.reasons, reason)
}

// memoryCache is a JSON round-tripping cache repository.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	deleted []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = raw
	return nil
}

func (c *memoryCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, pattern)
	prefix := pattern
	if n := len(pattern); n > 0 && pattern[n-1] == '*' {
		prefix = pattern[:n-1]
		for key := range c.entries {
			if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
				delete(c.entries, key)
			}
		}
		return nil
	}
	delete(c.entries, prefix)
	return nil
}

func (c *memoryCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}
