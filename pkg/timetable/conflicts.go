package timetable

import (
	"sort"

	"github.com/noah-isme/uni-timetable-api/internal/models"
)

// MergeConflicts combines both detector results. Double bookings win over workload
// warnings for the same event. Neither input is modified.
func MergeConflicts(workload, booking models.ConflictMap) models.ConflictMap {
	merged := make(models.ConflictMap, len(workload)+len(booking))
	for id, conflict := range workload {
		merged[id] = conflict
	}
	for id, conflict := range booking {
		merged[id] = conflict
	}
	return merged
}

// FindConflicts runs both detectors and merges them.
func FindConflicts(events []models.Event, ref *models.ReferenceData) models.ConflictMap {
	return MergeConflicts(FindWorkloadViolations(events, ref), FindDoubleBookings(events, ref))
}

// SortedConflicts flattens a conflict map ordered by event id.
func SortedConflicts(conflicts models.ConflictMap) []models.Conflict {
	list := make([]models.Conflict, 0, len(conflicts))
	for _, conflict := range conflicts {
		list = append(list, conflict)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].EventID < list[j].EventID })
	return list
}

// CountByKind tallies conflicts per kind.
func CountByKind(conflicts models.ConflictMap) map[models.ConflictKind]int {
	counts := map[models.ConflictKind]int{
		models.ConflictDoubleBooking: 0,
		models.ConflictWorkload:      0,
	}
	for _, conflict := range conflicts {
		counts[conflict.Type]++
	}
	return counts
}
