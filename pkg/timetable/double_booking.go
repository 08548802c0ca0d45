package timetable

import (
	"fmt"

	"github.com/noah-isme/uni-timetable-api/internal/models"
)

type resourceKind int

const (
	resourceFaculty resourceKind = iota
	resourceBatch
	resourceRoom
)

// slotKey identifies one hour of one resource on one day.
type slotKey struct {
	kind     resourceKind
	resource string
	day      models.DayOfWeek
	hour     int
}

// FindDoubleBookings flags every event that shares an occupied hour with another event
// on the same faculty, batch or classroom. Club events have no faculty or batch and are
// only checked against their classroom. Malformed events are skipped.
//
// An event flagged by several resources keeps the first cause found.
func FindDoubleBookings(events []models.Event, ref *models.ReferenceData) models.ConflictMap {
	conflicts := make(models.ConflictMap)
	holders := make(map[slotKey]string)

	claim := func(key slotKey, eventID string) {
		holder, taken := holders[key]
		holders[key] = eventID
		if !taken || holder == eventID {
			return
		}
		message := doubleBookingMessage(key, ref)
		for _, id := range [2]string{holder, eventID} {
			if _, exists := conflicts[id]; exists {
				continue
			}
			conflicts[id] = models.Conflict{EventID: id, Type: models.ConflictDoubleBooking, Message: message}
		}
	}

	for _, event := range events {
		start, end, ok := hourRange(event)
		if !ok {
			continue
		}
		faculty, batch := event.Faculty(), event.Batch()
		for hour := start; hour < end; hour++ {
			if faculty != "" {
				claim(slotKey{resourceFaculty, faculty, event.Day, hour}, event.ID)
			}
			if batch != "" {
				claim(slotKey{resourceBatch, batch, event.Day, hour}, event.ID)
			}
			claim(slotKey{resourceRoom, event.ClassroomID, event.Day, hour}, event.ID)
		}
	}
	return conflicts
}

func doubleBookingMessage(key slotKey, ref *models.ReferenceData) string {
	var label, name string
	switch key.kind {
	case resourceFaculty:
		label, name = "Faculty", ref.FacultyName(key.resource)
	case resourceBatch:
		label, name = "Batch", ref.BatchName(key.resource)
	default:
		label, name = "Room", ref.ClassroomName(key.resource)
	}
	return fmt.Sprintf("Double Booking: %s '%s' is booked for multiple classes at this time.", label, name)
}
