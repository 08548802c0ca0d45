package timetable

import (
	"github.com/noah-isme/uni-timetable-api/internal/models"
)

// AvailableClassrooms returns the classrooms with no event overlapping
// [startTime, startTime+durationHours) on day, in reference-table order.
// Malformed existing events do not block a room.
func AvailableClassrooms(events []models.Event, ref *models.ReferenceData, day models.DayOfWeek, startTime string, durationHours int) []models.Classroom {
	start, err := ParseHour(startTime)
	if err != nil || durationHours <= 0 {
		return nil
	}
	end := start + durationHours

	busy := make(map[string]bool)
	for _, event := range events {
		if event.Day != day {
			continue
		}
		existingStart, existingEnd, ok := hourRange(event)
		if !ok {
			continue
		}
		if start < existingEnd && end > existingStart {
			busy[event.ClassroomID] = true
		}
	}

	available := make([]models.Classroom, 0, len(ref.Classrooms()))
	for _, room := range ref.Classrooms() {
		if !busy[room.ID] {
			available = append(available, room)
		}
	}
	return available
}

// Overlaps reports whether two events share at least one hour on the same day.
func Overlaps(a, b models.Event) bool {
	if a.Day != b.Day {
		return false
	}
	aStart, aEnd, ok := hourRange(a)
	if !ok {
		return false
	}
	bStart, bEnd, ok := hourRange(b)
	if !ok {
		return false
	}
	return aStart < bEnd && bStart < aEnd
}
