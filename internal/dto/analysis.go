package dto

import (
	"time"

	"github.com/noah-isme/uni-timetable-api/internal/models"
)

// ConflictCounts summarises conflicts by kind.
type ConflictCounts struct {
	DoubleBooking int `json:"doubleBooking"`
	Workload      int `json:"workload"`
	Total         int `json:"total"`
}

// ScheduleAnalysis is the cached result of analysing the master schedule.
type ScheduleAnalysis struct {
	EventCount  int                    `json:"eventCount"`
	Conflicts   []models.Conflict      `json:"conflicts"`
	Counts      ConflictCounts         `json:"counts"`
	Metrics     models.ScheduleMetrics `json:"metrics"`
	GeneratedAt time.Time              `json:"generatedAt"`
}

// ConflictFor returns the conflict recorded for eventID, if any.
func (a *ScheduleAnalysis) ConflictFor(eventID string) *models.Conflict {
	if a == nil {
		return nil
	}
	for i := range a.Conflicts {
		if a.Conflicts[i].EventID == eventID {
			c := a.Conflicts[i]
			return &c
		}
	}
	return nil
}

// SlotQuery asks whether a club slot is bookable.
type SlotQuery struct {
	Day       string `form:"day" validate:"required"`
	StartTime string `form:"start" validate:"required"`
}

// SlotBookability answers a SlotQuery.
type SlotBookability struct {
	Day       models.DayOfWeek `json:"day"`
	StartTime string           `json:"startTime"`
	Bookable  bool             `json:"bookable"`
	Reason    string           `json:"reason"`
}
