package timetable

import (
	"sort"

	"github.com/noah-isme/uni-timetable-api/internal/models"
)

// RankTimetables returns a copy of candidates ordered best-first for goal. Metrics must
// already be populated. Ties keep the input order.
func RankTimetables(candidates []models.GeneratedTimetable, goal models.RankingGoal) []models.GeneratedTimetable {
	metrics := make([]models.ScheduleMetrics, len(candidates))
	for i, candidate := range candidates {
		metrics[i] = candidate.Metrics
	}
	ranked := make([]models.GeneratedTimetable, 0, len(candidates))
	for _, i := range RankOrder(metrics, goal) {
		ranked = append(ranked, candidates[i])
	}
	return ranked
}

// RankOrder returns the indexes of metrics ordered best-first for goal. An unknown goal
// ranks as RankBalanced.
func RankOrder(metrics []models.ScheduleMetrics, goal models.RankingGoal) []int {
	order := make([]int, len(metrics))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return better(metrics[order[i]], metrics[order[j]], goal)
	})
	return order
}

func better(a, b models.ScheduleMetrics, goal models.RankingGoal) bool {
	switch goal {
	case models.RankByFacultyBalance:
		return a.FacultyLoadScore < b.FacultyLoadScore
	case models.RankByRoomUtilization:
		return a.RoomUtilizationScore > b.RoomUtilizationScore
	case models.RankByStudentWellbeing:
		return a.StudentOverloadInstances < b.StudentOverloadInstances
	default:
		if a.StudentOverloadInstances != b.StudentOverloadInstances {
			return a.StudentOverloadInstances < b.StudentOverloadInstances
		}
		if a.FacultyLoadScore != b.FacultyLoadScore {
			return a.FacultyLoadScore < b.FacultyLoadScore
		}
		return a.RoomUtilizationScore > b.RoomUtilizationScore
	}
}
