package models

// ScheduleMetrics scores a candidate schedule. Scores are rounded to two decimals.
type ScheduleMetrics struct {
	FacultyLoadScore         float64 `json:"facultyLoadScore" yaml:"facultyLoadScore"`
	RoomUtilizationScore     float64 `json:"roomUtilizationScore" yaml:"roomUtilizationScore"`
	StudentOverloadInstances int     `json:"studentOverloadInstances" yaml:"studentOverloadInstances"`
}

// GeneratedTimetable is a candidate schedule supplied by the timetable generator.
type GeneratedTimetable struct {
	Name      string          `json:"name" yaml:"name"`
	Schedule  []Event         `json:"schedule" yaml:"schedule"`
	Metrics   ScheduleMetrics `json:"metrics" yaml:"metrics"`
	Reasoning string          `json:"reasoning" yaml:"reasoning"`
}

// RankingGoal selects how candidate timetables are ordered.
type RankingGoal string

const (
	RankByFacultyBalance   RankingGoal = "faculty_balance"
	RankByRoomUtilization  RankingGoal = "room_utilization"
	RankByStudentWellbeing RankingGoal = "student_wellbeing"
	RankBalanced           RankingGoal = "balanced"
)

// Valid reports whether the goal is supported.
func (g RankingGoal) Valid() bool {
	switch g {
	case RankByFacultyBalance, RankByRoomUtilization, RankByStudentWellbeing, RankBalanced:
		return true
	}
	return false
}
