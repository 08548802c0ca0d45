package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uni-timetable-api/internal/models"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
	"github.com/noah-isme/uni-timetable-api/pkg/timetable"
)

func exportSchedule() []models.Event {
	return []models.Event{
		club("c1", models.Saturday, "10:00", "11:00", "R1"),
		academic("e2", models.Monday, "09:00", "10:00", "B2", "F1", "R2"),
		academic("e1", models.Monday, "09:00", "10:00", "B1", "F1", "R1"),
		academic("e3", models.Monday, "14:00", "15:00", "B1", "F2", "L1"),
	}
}

func TestBuildScheduleDatasetOrdersAndHighlights(t *testing.T) {
	ref := models.NewReferenceData(testTables())
	events := exportSchedule()
	data := BuildScheduleDataset(events, ref, timetable.FindConflicts(events, ref))

	require.Len(t, data.Rows, 4)
	assert.Equal(t, scheduleExportHeaders, data.Headers)
	assert.Equal(t, []string{"Monday", "09:00", "10:00", "Room 101", "Class", "Algorithms", "Dr. Smith", "CS-2025", "confirmed"}, data.Rows[0][:9])
	assert.Contains(t, data.Rows[0][9], "Faculty 'Dr. Smith'")
	assert.Equal(t, "Room 102", data.Rows[1][3])
	assert.Equal(t, "Lab A", data.Rows[2][3])
	assert.Equal(t, []string{"Saturday", "10:00", "11:00", "Room 101", "Club", "Chess Night", "Asha", "Chess Club", "confirmed", ""}, data.Rows[3])

	assert.True(t, data.Highlight[0])
	assert.True(t, data.Highlight[1])
	assert.False(t, data.Highlight[2])
	assert.False(t, data.Highlight[3])
}

func TestExportServiceScheduleExport(t *testing.T) {
	store := newMemoryEvents(exportSchedule()...)
	svc := NewExportService(store, &staticReference{tables: testTables()}, timetable.FixedClock(testMonday), nil)

	file, err := svc.ScheduleExport(context.Background(), "csv")
	require.NoError(t, err)
	assert.Equal(t, "master-schedule-20250106.csv", file.Filename)
	assert.Contains(t, file.ContentType, "text/csv")

	records, err := csv.NewReader(bytes.NewReader(file.Body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, "Day", records[0][0])

	file, err = svc.ScheduleExport(context.Background(), "xlsx")
	require.NoError(t, err)
	assert.Equal(t, "master-schedule-20250106.xlsx", file.Filename)
	assert.True(t, bytes.HasPrefix(file.Body, []byte("PK")))

	file, err = svc.ScheduleExport(context.Background(), "pdf")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(file.Body, []byte("%PDF")))
}

func TestExportServiceErrors(t *testing.T) {
	store := newMemoryEvents()
	svc := NewExportService(store, &staticReference{tables: testTables()}, timetable.FixedClock(time.Now()), nil)

	_, err := svc.ScheduleExport(context.Background(), "docx")
	assertCode(t, err, appErrors.ErrValidation)

	store.listErr = errors.New("db down")
	_, err = svc.ScheduleExport(context.Background(), "csv")
	assertCode(t, err, appErrors.ErrInternal)
}
