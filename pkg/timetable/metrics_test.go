package timetable

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/uni-timetable-api/internal/models"
)

func TestCalculateScheduleMetrics(t *testing.T) {
	events := []models.Event{
		class("e1", models.Monday, "09:00", "10:00", "B1", "F1", "R1"),
		class("e2", models.Monday, "10:00", "12:00", "B1", "F2", "R2"),
		clubEvent("c1", models.Monday, "18:00", "20:00", "R1"),
	}

	metrics := CalculateScheduleMetrics(events, testReference())

	assert.Equal(t, 0.82, metrics.FacultyLoadScore)
	assert.Equal(t, 3.13, metrics.RoomUtilizationScore)
	assert.Equal(t, 0, metrics.StudentOverloadInstances)
}

func TestCalculateScheduleMetricsIdleFacultyCountsAsZero(t *testing.T) {
	events := []models.Event{
		class("e1", models.Monday, "09:00", "11:00", "B1", "F1", "R1"),
		class("e2", models.Tuesday, "09:00", "11:00", "B1", "F2", "R1"),
	}

	metrics := CalculateScheduleMetrics(events, testReference())

	assert.Equal(t, 0.94, metrics.FacultyLoadScore)
}

func TestCalculateScheduleMetricsUnknownFacultyJoinsPopulation(t *testing.T) {
	ref := models.NewReferenceData(models.ReferenceTables{})
	events := []models.Event{
		class("e1", models.Monday, "09:00", "11:00", "B1", "FX", "R1"),
		class("e2", models.Monday, "11:00", "12:00", "B2", "FY", "R1"),
	}

	metrics := CalculateScheduleMetrics(events, ref)

	assert.Equal(t, 0.5, metrics.FacultyLoadScore)
	assert.Equal(t, 0.0, metrics.RoomUtilizationScore)
}

func TestCalculateScheduleMetricsCountsOverloadBlocks(t *testing.T) {
	events := []models.Event{
		class("m1", models.Monday, "09:00", "10:00", "B1", "F1", "R1"),
		class("m2", models.Monday, "10:00", "11:00", "B1", "F2", "R2"),
		class("m3", models.Monday, "11:00", "12:00", "B1", "F1", "R1"),
		class("m4", models.Monday, "12:00", "13:00", "B1", "F3", "R3"),
		class("t1", models.Tuesday, "09:00", "11:00", "B1", "F1", "R1"),
		class("t2", models.Tuesday, "11:00", "13:00", "B1", "F2", "R2"),
		class("w1", models.Wednesday, "09:00", "10:00", "B2", "F1", "R1"),
		class("w2", models.Wednesday, "10:00", "12:00", "B2", "F2", "R2"),
	}

	metrics := CalculateScheduleMetrics(events, testReference())

	assert.Equal(t, 2, metrics.StudentOverloadInstances)
}

func TestCalculateScheduleMetricsIsOrderIndependent(t *testing.T) {
	events := []models.Event{
		class("m1", models.Monday, "09:00", "10:00", "B1", "F1", "R1"),
		class("m2", models.Monday, "10:00", "12:00", "B1", "F2", "R2"),
		class("m3", models.Monday, "12:00", "14:00", "B1", "F3", "R3"),
		class("t1", models.Thursday, "14:00", "17:00", "B2", "F1", "L1"),
		clubEvent("c1", models.Saturday, "10:00", "12:00", "R1"),
	}
	reversed := make([]models.Event, len(events))
	for i, event := range events {
		reversed[len(events)-1-i] = event
	}
	ref := testReference()

	first := CalculateScheduleMetrics(events, ref)
	second := CalculateScheduleMetrics(events, ref)

	assert.Equal(t, first, second)
	assert.Equal(t, first, CalculateScheduleMetrics(reversed, ref))
}

func TestCalculateScheduleMetricsEmptySchedule(t *testing.T) {
	assert.Equal(t, models.ScheduleMetrics{}, CalculateScheduleMetrics(nil, testReference()))
	assert.Equal(t, models.ScheduleMetrics{}, CalculateScheduleMetrics(nil, nil))
}

func TestCalculateScheduleMetricsSkipsMalformedDurations(t *testing.T) {
	events := []models.Event{
		class("ok", models.Monday, "09:00", "13:00", "B1", "F1", "R1"),
		class("bad", models.Monday, "15:00", "14:00", "B1", "F2", "R1"),
	}

	metrics := CalculateScheduleMetrics(events, testReference())

	assert.Equal(t, 2.5, metrics.RoomUtilizationScore)
}
