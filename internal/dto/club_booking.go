package dto

import "github.com/noah-isme/uni-timetable-api/internal/models"

// ClubAvailabilityQuery asks for free rooms for a club slot.
type ClubAvailabilityQuery struct {
	Day       string `form:"day" validate:"required"`
	StartTime string `form:"start" validate:"required"`
	Duration  int    `form:"duration" validate:"omitempty,min=1,max=2"`
}

// ClubAvailability reports whether the slot may be booked and which rooms are free.
type ClubAvailability struct {
	SlotBookability
	EndTime    string             `json:"endTime"`
	Duration   int                `json:"duration"`
	Classrooms []models.Classroom `json:"classrooms"`
}

// ClubBookingRequest books a room for a club activity.
type ClubBookingRequest struct {
	Day         string `json:"day" validate:"required"`
	StartTime   string `json:"startTime" validate:"required"`
	Duration    int    `json:"duration" validate:"required,min=1,max=2"`
	ClassroomID string `json:"classroomId" validate:"required"`
	EventName   string `json:"eventName" validate:"omitempty,max=120"`
}
