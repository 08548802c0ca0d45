package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/uni-timetable-api/internal/models"
	"github.com/noah-isme/uni-timetable-api/pkg/database"
)

const eventColumns = "id, day_of_week, start_time, end_time, classroom_id, subject_id, faculty_id, batch_id, club_id, coordinator_id, event_name, status, created_at, updated_at"

const insertEventQuery = `INSERT INTO events (id, day_of_week, start_time, end_time, classroom_id, subject_id, faculty_id, batch_id, club_id, coordinator_id, event_name, status, created_at, updated_at) VALUES (:id, :day_of_week, :start_time, :end_time, :classroom_id, :subject_id, :faculty_id, :batch_id, :club_id, :coordinator_id, :event_name, :status, :created_at, :updated_at)`

// dayOrder sorts rows Monday first instead of alphabetically.
const dayOrder = "array_position(ARRAY['Monday','Tuesday','Wednesday','Thursday','Friday','Saturday']::text[], day_of_week::text)"

// EventRepository persists the master schedule.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository creates a new event repository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// List returns events matching filter ordered by day and start time, with the total count.
func (r *EventRepository) List(ctx context.Context, filter models.EventFilter) ([]models.Event, int, error) {
	base := "FROM events WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Day != "" {
		conditions = append(conditions, fmt.Sprintf("day_of_week = $%d", len(args)+1))
		args = append(args, filter.Day)
	}
	if filter.FacultyID != "" {
		conditions = append(conditions, fmt.Sprintf("faculty_id = $%d", len(args)+1))
		args = append(args, filter.FacultyID)
	}
	if filter.BatchID != "" {
		conditions = append(conditions, fmt.Sprintf("batch_id = $%d", len(args)+1))
		args = append(args, filter.BatchID)
	}
	if filter.ClassroomID != "" {
		conditions = append(conditions, fmt.Sprintf("classroom_id = $%d", len(args)+1))
		args = append(args, filter.ClassroomID)
	}
	if filter.ClubID != "" {
		conditions = append(conditions, fmt.Sprintf("club_id = $%d", len(args)+1))
		args = append(args, filter.ClubID)
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, *filter.Status)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s, start_time ASC, id ASC LIMIT %d OFFSET %d", eventColumns, base, dayOrder, size, offset)
	var events []models.Event
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) %s", base), args...); err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	return events, total, nil
}

// ListAll returns the whole master schedule in insertion order, which is the order
// conflict detection reports against.
func (r *EventRepository) ListAll(ctx context.Context) ([]models.Event, error) {
	query := fmt.Sprintf("SELECT %s FROM events ORDER BY created_at ASC, id ASC", eventColumns)
	var events []models.Event
	if err := r.db.SelectContext(ctx, &events, query); err != nil {
		return nil, fmt.Errorf("list all events: %w", err)
	}
	return events, nil
}

// FindByID loads an event by id. A missing row surfaces as sql.ErrNoRows.
func (r *EventRepository) FindByID(ctx context.Context, id string) (*models.Event, error) {
	query := fmt.Sprintf("SELECT %s FROM events WHERE id = $1", eventColumns)
	var event models.Event
	if err := r.db.GetContext(ctx, &event, query, id); err != nil {
		return nil, fmt.Errorf("find event %s: %w", id, err)
	}
	return &event, nil
}

// Create stores a new event, assigning an id and timestamps when absent.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	stampEvent(event, time.Now().UTC())
	if _, err := r.db.NamedExecContext(ctx, insertEventQuery, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// UpdateStatus sets the pending-request status of an event.
func (r *EventRepository) UpdateStatus(ctx context.Context, id string, status models.EventStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE events SET status = $2, updated_at = $3 WHERE id = $1`, id, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update event status: %w", err)
	}
	return requireAffected(res, "update event status")
}

// UpdateSlot moves an event to its new day, hours and classroom and stores its status.
func (r *EventRepository) UpdateSlot(ctx context.Context, event *models.Event) error {
	event.UpdatedAt = time.Now().UTC()
	const query = `UPDATE events SET day_of_week = :day_of_week, start_time = :start_time, end_time = :end_time, classroom_id = :classroom_id, status = :status, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, event)
	if err != nil {
		return fmt.Errorf("update event slot: %w", err)
	}
	return requireAffected(res, "update event slot")
}

// Delete removes an event by id.
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return requireAffected(res, "delete event")
}

// ReplaceAll swaps the master schedule for events in a single transaction.
func (r *EventRepository) ReplaceAll(ctx context.Context, events []models.Event) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM events`); err != nil {
			return fmt.Errorf("clear events: %w", err)
		}
		now := time.Now().UTC()
		for i := range events {
			stampEvent(&events[i], now)
			if _, err := sqlx.NamedExecContext(ctx, tx, insertEventQuery, &events[i]); err != nil {
				return fmt.Errorf("insert event %s: %w", events[i].ID, err)
			}
		}
		return nil
	})
}

func stampEvent(event *models.Event, now time.Time) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = now
	}
	event.UpdatedAt = now
}

func requireAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, sql.ErrNoRows)
	}
	return nil
}
