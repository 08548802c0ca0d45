package models

import (
	"errors"
	"strings"
	"time"
)

// DayOfWeek names a teaching day. Sunday is not part of the weekly cycle.
type DayOfWeek string

const (
	Monday    DayOfWeek = "Monday"
	Tuesday   DayOfWeek = "Tuesday"
	Wednesday DayOfWeek = "Wednesday"
	Thursday  DayOfWeek = "Thursday"
	Friday    DayOfWeek = "Friday"
	Saturday  DayOfWeek = "Saturday"
)

// DaysOfWeek lists the six schedulable days in calendar order.
var DaysOfWeek = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// Index returns the zero-based position of the day within a Monday-start week, or -1.
func (d DayOfWeek) Index() int {
	for i, day := range DaysOfWeek {
		if day == d {
			return i
		}
	}
	return -1
}

// Valid reports whether the day is one of Monday..Saturday.
func (d DayOfWeek) Valid() bool {
	return d.Index() >= 0
}

// ParseDayOfWeek normalises user input such as "monday" or "MONDAY".
func ParseDayOfWeek(raw string) (DayOfWeek, bool) {
	raw = strings.TrimSpace(raw)
	for _, day := range DaysOfWeek {
		if strings.EqualFold(string(day), raw) {
			return day, true
		}
	}
	return "", false
}

// EventStatus marks a pending change request on an event. Empty means confirmed.
type EventStatus string

const (
	EventStatusConfirmed             EventStatus = ""
	EventStatusCancellationRequested EventStatus = "cancellation_requested"
	EventStatusRescheduleRequested   EventStatus = "reschedule_requested"
)

// EventKind distinguishes academic classes from club activities.
type EventKind string

const (
	EventKindAcademic EventKind = "academic"
	EventKindClub     EventKind = "club"
)

var (
	errEventMixedKinds  = errors.New("event cannot be both an academic class and a club activity")
	errEventMissingKind = errors.New("event requires subject, faculty and batch or club and coordinator")
	errEventNoClassroom = errors.New("event requires a classroom")
	errEventBadDay      = errors.New("event day must be Monday through Saturday")
)

// Event is a scheduled occupation of one classroom on one day.
type Event struct {
	ID            string      `db:"id" json:"id" yaml:"id"`
	Day           DayOfWeek   `db:"day_of_week" json:"day" yaml:"day"`
	StartTime     string      `db:"start_time" json:"startTime" yaml:"startTime"`
	EndTime       string      `db:"end_time" json:"endTime" yaml:"endTime"`
	ClassroomID   string      `db:"classroom_id" json:"classroomId" yaml:"classroomId"`
	SubjectID     *string     `db:"subject_id" json:"subjectId,omitempty" yaml:"subjectId,omitempty"`
	FacultyID     *string     `db:"faculty_id" json:"facultyId,omitempty" yaml:"facultyId,omitempty"`
	BatchID       *string     `db:"batch_id" json:"batchId,omitempty" yaml:"batchId,omitempty"`
	ClubID        *string     `db:"club_id" json:"clubId,omitempty" yaml:"clubId,omitempty"`
	CoordinatorID *string     `db:"coordinator_id" json:"coordinatorId,omitempty" yaml:"coordinatorId,omitempty"`
	EventName     *string     `db:"event_name" json:"eventName,omitempty" yaml:"eventName,omitempty"`
	Status        EventStatus `db:"status" json:"status,omitempty" yaml:"status,omitempty"`
	CreatedAt     time.Time   `db:"created_at" json:"createdAt" yaml:"-"`
	UpdatedAt     time.Time   `db:"updated_at" json:"updatedAt" yaml:"-"`
}

// Kind reports whether the event is a club activity or an academic class.
func (e Event) Kind() EventKind {
	if value(e.ClubID) != "" {
		return EventKindClub
	}
	return EventKindAcademic
}

// Faculty returns the faculty id or "" for club activities.
func (e Event) Faculty() string { return value(e.FacultyID) }

// Batch returns the batch id or "" for club activities.
func (e Event) Batch() string { return value(e.BatchID) }

// Subject returns the subject id or "".
func (e Event) Subject() string { return value(e.SubjectID) }

// Club returns the club id or "".
func (e Event) Club() string { return value(e.ClubID) }

// Coordinator returns the booking coordinator id or "" for academic classes.
func (e Event) Coordinator() string { return value(e.CoordinatorID) }

// Name returns the free-text event name or "".
func (e Event) Name() string { return value(e.EventName) }

// Validate checks the structural invariants required before persisting an event.
// Hour parsing is left to the timetable package.
func (e Event) Validate() error {
	if !e.Day.Valid() {
		return errEventBadDay
	}
	if strings.TrimSpace(e.ClassroomID) == "" {
		return errEventNoClassroom
	}
	academic := value(e.SubjectID) != "" || value(e.FacultyID) != "" || value(e.BatchID) != ""
	club := value(e.ClubID) != "" || value(e.CoordinatorID) != ""
	switch {
	case academic && club:
		return errEventMixedKinds
	case academic:
		if value(e.SubjectID) == "" || value(e.FacultyID) == "" || value(e.BatchID) == "" {
			return errEventMissingKind
		}
	case club:
		if value(e.ClubID) == "" || value(e.CoordinatorID) == "" {
			return errEventMissingKind
		}
	default:
		return errEventMissingKind
	}
	return nil
}

// EventFilter describes query params for listing events.
type EventFilter struct {
	Day         DayOfWeek
	FacultyID   string
	BatchID     string
	ClassroomID string
	ClubID      string
	Status      *EventStatus
	Page        int
	PageSize    int
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
