package timetable

import (
	"time"

	"github.com/noah-isme/uni-timetable-api/internal/models"
)

const (
	lunchHour        = 12
	eveningStartHour = 18
)

// SlotVerdict explains the outcome of a bookability check.
type SlotVerdict string

const (
	SlotBookable   SlotVerdict = "bookable"
	SlotInvalid    SlotVerdict = "invalid"
	SlotLunchBreak SlotVerdict = "lunch_break"
	SlotInPast     SlotVerdict = "in_past"
	SlotClassHours SlotVerdict = "class_hours"
)

// IsBookableSlot reports whether a club coordinator may book the slot starting at
// startTime on day, as of now. Rules in order:
//  1. 12:00 is the lunch break and never bookable.
//  2. The slot's occurrence in the current Monday-start week must not be in the past.
//  3. Saturday slots are bookable.
//  4. Weekday slots are bookable from 18:00 onwards.
func IsBookableSlot(day models.DayOfWeek, startTime string, now time.Time) bool {
	return CheckSlot(day, startTime, now) == SlotBookable
}

// CheckSlot applies the IsBookableSlot rules and names the first one that fails.
func CheckSlot(day models.DayOfWeek, startTime string, now time.Time) SlotVerdict {
	hour, minute, err := parseStart(startTime)
	if err != nil {
		return SlotInvalid
	}
	if hour == lunchHour && minute == 0 {
		return SlotLunchBreak
	}
	slot, ok := SlotTime(day, startTime, now)
	if !ok {
		return SlotInvalid
	}
	if slot.Before(now) {
		return SlotInPast
	}
	if day == models.Saturday || hour >= eveningStartHour {
		return SlotBookable
	}
	return SlotClassHours
}

// SlotTime returns the moment the slot occurs within the Monday-start week containing
// now, in now's location. Sunday belongs to the week that began the previous Monday.
func SlotTime(day models.DayOfWeek, startTime string, now time.Time) (time.Time, bool) {
	dayIndex := day.Index()
	if dayIndex < 0 {
		return time.Time{}, false
	}
	hour, minute, err := parseStart(startTime)
	if err != nil {
		return time.Time{}, false
	}
	todayIndex := (int(now.Weekday()) + 6) % 7
	date := now.AddDate(0, 0, dayIndex-todayIndex)
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, now.Location()), true
}
