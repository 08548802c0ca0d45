package dto

import "github.com/noah-isme/uni-timetable-api/internal/models"

// EventQuery carries list filters from the query string.
type EventQuery struct {
	Day         string `form:"day"`
	FacultyID   string `form:"facultyId"`
	BatchID     string `form:"batchId"`
	ClassroomID string `form:"classroomId"`
	ClubID      string `form:"clubId"`
	Status      string `form:"status" validate:"omitempty,oneof=confirmed cancellation_requested reschedule_requested"`
	Page        int    `form:"page" validate:"omitempty,min=1"`
	PageSize    int    `form:"pageSize" validate:"omitempty,min=1,max=200"`
}

// CreateEventRequest schedules an academic class.
type CreateEventRequest struct {
	Day         string `json:"day" validate:"required"`
	StartTime   string `json:"startTime" validate:"required"`
	EndTime     string `json:"endTime" validate:"required"`
	ClassroomID string `json:"classroomId" validate:"required"`
	SubjectID   string `json:"subjectId" validate:"required"`
	FacultyID   string `json:"facultyId" validate:"required"`
	BatchID     string `json:"batchId" validate:"required"`
}

// UpdateEventStatusRequest raises a cancellation or reschedule request.
type UpdateEventStatusRequest struct {
	Status models.EventStatus `json:"status" validate:"required,oneof=cancellation_requested reschedule_requested"`
}

// RescheduleSuggestion is the slot an event should move to. Classroom accepts either
// a classroom id or its display name.
type RescheduleSuggestion struct {
	Day       string `json:"day" validate:"required"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
	Classroom string `json:"classroom" validate:"required"`
}

// EventResult is a stored event with the conflicts it currently takes part in.
type EventResult struct {
	Event    models.Event     `json:"event"`
	Conflict *models.Conflict `json:"conflict,omitempty"`
}

// Actor identifies the authenticated caller of a service operation.
type Actor struct {
	UserID string
	Role   models.UserRole
}
