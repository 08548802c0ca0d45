package dto

import "github.com/noah-isme/uni-timetable-api/internal/models"

// EvaluateTimetablesRequest ranks candidate timetables produced by the generator.
type EvaluateTimetablesRequest struct {
	Goal       models.RankingGoal          `json:"goal" validate:"omitempty,oneof=faculty_balance room_utilization student_wellbeing balanced"`
	Candidates []models.GeneratedTimetable `json:"candidates" validate:"required,min=1,max=20"`
}

// EvaluatedTimetable is a candidate with recomputed metrics and conflicts.
type EvaluatedTimetable struct {
	Rank      int                    `json:"rank"`
	Name      string                 `json:"name"`
	Reasoning string                 `json:"reasoning,omitempty"`
	Metrics   models.ScheduleMetrics `json:"metrics"`
	Counts    ConflictCounts         `json:"counts"`
	Conflicts []models.Conflict      `json:"conflicts"`
	Schedule  []models.Event         `json:"schedule"`
}

// EvaluateTimetablesResponse lists candidates best-first.
type EvaluateTimetablesResponse struct {
	Goal       models.RankingGoal   `json:"goal"`
	Timetables []EvaluatedTimetable `json:"timetables"`
}

// PublishTimetableRequest replaces the master schedule with a candidate.
type PublishTimetableRequest struct {
	Name           string         `json:"name" validate:"omitempty,max=120"`
	Schedule       []models.Event `json:"schedule" validate:"required,min=1"`
	AllowConflicts bool           `json:"allowConflicts"`
}

// PublishTimetableResponse summarises the newly published schedule.
type PublishTimetableResponse struct {
	Name       string                 `json:"name,omitempty"`
	EventCount int                    `json:"eventCount"`
	Metrics    models.ScheduleMetrics `json:"metrics"`
	Counts     ConflictCounts         `json:"counts"`
}
