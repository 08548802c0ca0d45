package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/uni-timetable-api/internal/models"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
	"github.com/noah-isme/uni-timetable-api/pkg/export"
	"github.com/noah-isme/uni-timetable-api/pkg/timetable"
)

var scheduleExportHeaders = []string{"Day", "Start", "End", "Room", "Type", "Title", "Faculty / Coordinator", "Batch / Club", "Status", "Conflict"}

// ExportFile is a rendered document ready for download.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders the master schedule with conflict annotations.
type ExportService struct {
	events    ScheduleReader
	reference ReferenceProvider
	clock     timetable.Clock
	logger    *zap.Logger
	renderer  func(export.Format) export.Renderer
}

// NewExportService constructs an ExportService.
func NewExportService(events ScheduleReader, reference ReferenceProvider, clock timetable.Clock, logger *zap.Logger) *ExportService {
	if clock == nil {
		clock = timetable.SystemClock(time.UTC)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{events: events, reference: reference, clock: clock, logger: logger, renderer: export.NewRenderer}
}

// ScheduleExport renders the whole master schedule in the requested format.
func (s *ExportService) ScheduleExport(ctx context.Context, format string) (*ExportFile, error) {
	f, err := export.ParseFormat(format)
	if err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrValidation, err, err.Error())
	}
	events, err := s.events.ListAll(ctx)
	if err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrInternal, err, "failed to load schedule")
	}
	ref, err := s.reference.Reference(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	dataset := BuildScheduleDataset(events, ref, timetable.FindConflicts(events, ref))
	dataset.Title = fmt.Sprintf("Master Schedule (%s)", now.Format("2006-01-02"))

	body, err := s.renderer(f).Render(dataset)
	if err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrInternal, err, "failed to render export")
	}
	s.logger.Info("schedule exported", zap.String("format", string(f)), zap.Int("rows", len(dataset.Rows)), zap.Int("bytes", len(body)))
	return &ExportFile{
		Filename:    fmt.Sprintf("master-schedule-%s.%s", now.Format("20060102"), f),
		ContentType: f.ContentType(),
		Body:        body,
	}, nil
}

// BuildScheduleDataset lays events out day by day, then by start time and room.
func BuildScheduleDataset(events []models.Event, ref *models.ReferenceData, conflicts models.ConflictMap) export.Dataset {
	sorted := make([]models.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Day.Index() != b.Day.Index() {
			return a.Day.Index() < b.Day.Index()
		}
		ah, _ := timetable.ParseHour(a.StartTime)
		bh, _ := timetable.ParseHour(b.StartTime)
		if ah != bh {
			return ah < bh
		}
		return ref.ClassroomName(a.ClassroomID) < ref.ClassroomName(b.ClassroomID)
	})

	data := export.Dataset{Headers: scheduleExportHeaders, Highlight: make(map[int]bool)}
	for i, event := range sorted {
		row := []string{
			string(event.Day),
			event.StartTime,
			event.EndTime,
			ref.ClassroomName(event.ClassroomID),
		}
		if event.Kind() == models.EventKindClub {
			coordinator := ""
			if event.CoordinatorID != nil {
				coordinator = *event.CoordinatorID
				if c, ok := ref.Coordinator(coordinator); ok {
					coordinator = c.Name
				}
			}
			row = append(row, "Club", event.Name(), coordinator, ref.ClubName(event.Club()))
		} else {
			row = append(row, "Class", ref.SubjectName(event.Subject()), ref.FacultyName(event.Faculty()), ref.BatchName(event.Batch()))
		}
		status := string(event.Status)
		if status == "" {
			status = "confirmed"
		}
		row = append(row, status)

		conflict, ok := conflicts[event.ID]
		if ok {
			data.Highlight[i] = true
			row = append(row, conflict.Message)
		} else {
			row = append(row, "")
		}
		data.Rows = append(data.Rows, row)
	}
	return data
}
