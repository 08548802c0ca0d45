package timetable

import (
	"github.com/noah-isme/uni-timetable-api/internal/models"
)

func testReference() *models.ReferenceData {
	return models.NewReferenceData(models.ReferenceTables{
		Subjects: []models.Subject{
			{ID: "S1", Name: "Advanced Algorithms"},
			{ID: "S3", Name: "Data Science", RequiresLab: true},
		},
		Faculty: []models.Faculty{
			{ID: "F1", Name: "Dr. Evelyn Reed", SubjectID: "S1"},
			{ID: "F2", Name: "Dr. Ben Carter", SubjectID: "S3"},
			{ID: "F3", Name: "Dr. Isla Chen"},
		},
		Batches: []models.Batch{
			{ID: "B1", Name: "Batch CS-A", Size: 60},
			{ID: "B2", Name: "Batch CS-B", Size: 55},
		},
		Classrooms: []models.Classroom{
			{ID: "R1", Name: "301A", Capacity: 60},
			{ID: "R2", Name: "302B", Capacity: 60},
			{ID: "R3", Name: "401", Capacity: 40},
			{ID: "L1", Name: "Lab 5", IsLab: true, Capacity: 30},
		},
		Clubs:        []models.Club{{ID: "C1", Name: "Dance Club"}},
		Coordinators: []models.Coordinator{{ID: "K1", Name: "Maya", ClubID: "C1"}},
	})
}

func class(id string, day models.DayOfWeek, start, end, batch, faculty, room string) models.Event {
	return models.Event{
		ID:          id,
		Day:         day,
		StartTime:   start,
		EndTime:     end,
		ClassroomID: room,
		SubjectID:   models.StringPtr("S1"),
		FacultyID:   models.StringPtr(faculty),
		BatchID:     models.StringPtr(batch),
	}
}

func clubEvent(id string, day models.DayOfWeek, start, end, room string) models.Event {
	return models.Event{
		ID:            id,
		Day:           day,
		StartTime:     start,
		EndTime:       end,
		ClassroomID:   room,
		ClubID:        models.StringPtr("C1"),
		CoordinatorID: models.StringPtr("K1"),
		EventName:     models.StringPtr("Dance Club Activity"),
	}
}
