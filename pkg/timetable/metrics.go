package timetable

import (
	"math"
	"sort"

	"github.com/noah-isme/uni-timetable-api/internal/models"
)

// TimeSlots are the hourly slot starts shown on the academic timetable grid.
var TimeSlots = []int{9, 10, 11, 12, 13, 14, 15, 16, 17}

// workingDayEnd closes the nominal academic window used for utilization.
const workingDayEnd = 17

// CalculateScheduleMetrics scores a full schedule:
//   - FacultyLoadScore: population standard deviation of weekly teaching hours across
//     all faculty, including those with no classes.
//   - RoomUtilizationScore: scheduled hours as a percentage of the nominal capacity
//     (classrooms x working days x working slots).
//   - StudentOverloadInstances: number of back-to-back blocks longer than
//     WorkloadThresholdHours across all batches and days.
func CalculateScheduleMetrics(events []models.Event, ref *models.ReferenceData) models.ScheduleMetrics {
	return models.ScheduleMetrics{
		FacultyLoadScore:         round2(facultyLoadStdDev(events, ref)),
		RoomUtilizationScore:     round2(roomUtilization(events, ref)),
		StudentOverloadInstances: len(overloadedBlocks(events)),
	}
}

func facultyLoadStdDev(events []models.Event, ref *models.ReferenceData) float64 {
	hours := make(map[string]int)
	for _, event := range events {
		faculty := event.Faculty()
		if faculty == "" {
			continue
		}
		hours[faculty] += EventDuration(event)
	}

	ids := make([]string, 0, len(hours))
	known := make(map[string]bool)
	for _, f := range ref.FacultyList() {
		if known[f.ID] {
			continue
		}
		known[f.ID] = true
		ids = append(ids, f.ID)
	}
	var unknown []string
	for id := range hours {
		if !known[id] {
			unknown = append(unknown, id)
		}
	}
	sort.Strings(unknown)
	ids = append(ids, unknown...)

	if len(ids) == 0 {
		return 0
	}
	total := 0
	for _, id := range ids {
		total += hours[id]
	}
	mean := float64(total) / float64(len(ids))
	var variance float64
	for _, id := range ids {
		diff := float64(hours[id]) - mean
		variance += diff * diff
	}
	return math.Sqrt(variance / float64(len(ids)))
}

func roomUtilization(events []models.Event, ref *models.ReferenceData) float64 {
	capacity := len(ref.Classrooms()) * workingDays() * workingSlotsPerDay()
	if capacity == 0 {
		return 0
	}
	scheduled := 0
	for _, event := range events {
		scheduled += EventDuration(event)
	}
	return 100 * float64(scheduled) / float64(capacity)
}

func workingDays() int {
	count := 0
	for _, day := range models.DaysOfWeek {
		if day != models.Saturday {
			count++
		}
	}
	return count
}

func workingSlotsPerDay() int {
	count := 0
	for _, hour := range TimeSlots {
		if hour < workingDayEnd {
			count++
		}
	}
	return count
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
