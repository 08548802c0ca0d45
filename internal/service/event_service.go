package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/internal/models"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
	"github.com/noah-isme/uni-timetable-api/pkg/timetable"
)

// EventRepository is the persistence required by EventService.
type EventRepository interface {
	ScheduleReader
	List(ctx context.Context, filter models.EventFilter) ([]models.Event, int, error)
	FindByID(ctx context.Context, id string) (*models.Event, error)
	Create(ctx context.Context, event *models.Event) error
	UpdateStatus(ctx context.Context, id string, status models.EventStatus) error
	UpdateSlot(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id string) error
}

// ReferenceProvider supplies the indexed lookup tables.
type ReferenceProvider interface {
	Reference(ctx context.Context) (*models.ReferenceData, error)
}

// EventService manages the master schedule and the request/approve lifecycle of events.
// Conflicts never block a write; they are reported back to the caller.
type EventService struct {
	repo      EventRepository
	reference ReferenceProvider
	notifier  ScheduleChangeNotifier
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEventService constructs an EventService.
func NewEventService(repo EventRepository, reference ReferenceProvider, notifier ScheduleChangeNotifier, validate *validator.Validate, logger *zap.Logger) *EventService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{repo: repo, reference: reference, notifier: notifier, validator: validate, logger: logger}
}

// List returns events matching the query with pagination metadata.
func (s *EventService) List(ctx context.Context, query dto.EventQuery) ([]models.Event, *models.Pagination, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, nil, appErrors.WrapAs(appErrors.ErrValidation, err, "invalid event query")
	}
	filter := models.EventFilter{
		FacultyID:   query.FacultyID,
		BatchID:     query.BatchID,
		ClassroomID: query.ClassroomID,
		ClubID:      query.ClubID,
		Page:        query.Page,
		PageSize:    query.PageSize,
	}
	if query.Day != "" {
		day, ok := models.ParseDayOfWeek(query.Day)
		if !ok {
			return nil, nil, appErrors.Clone(appErrors.ErrValidation, "day must be Monday through Saturday")
		}
		filter.Day = day
	}
	if query.Status != "" {
		status := models.EventStatus(query.Status)
		if query.Status == "confirmed" {
			status = models.EventStatusConfirmed
		}
		filter.Status = &status
	}

	events, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.WrapAs(appErrors.ErrInternal, err, "failed to list events")
	}
	if events == nil {
		events = []models.Event{}
	}
	page, size := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 200 {
		size = 50
	}
	return events, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns an event together with its current conflict.
func (s *EventService) Get(ctx context.Context, id string) (*dto.EventResult, error) {
	event, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withConflict(ctx, *event)
}

// Create schedules an academic class. Faculty may only schedule their own classes.
func (s *EventService) Create(ctx context.Context, actor dto.Actor, req dto.CreateEventRequest) (*dto.EventResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrValidation, err, "invalid event payload")
	}
	if actor.Role == models.RoleFaculty && req.FacultyID != actor.UserID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "faculty can only schedule their own classes")
	}
	day, ok := models.ParseDayOfWeek(req.Day)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "day must be Monday through Saturday")
	}

	event := models.Event{
		Day:         day,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		ClassroomID: req.ClassroomID,
		SubjectID:   models.StringPtr(req.SubjectID),
		FacultyID:   models.StringPtr(req.FacultyID),
		BatchID:     models.StringPtr(req.BatchID),
		Status:      models.EventStatusConfirmed,
	}
	if err := s.validateAcademic(ctx, event); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, &event); err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrInternal, err, "failed to create event")
	}
	s.logger.Info("event created", zap.String("event_id", event.ID), zap.String("actor", actor.UserID))
	s.changed(ctx, "event created")
	return s.withConflict(ctx, event)
}

// RequestStatus raises a cancellation or reschedule request on a confirmed class.
// Students raise requests on any class; faculty only on their own.
func (s *EventService) RequestStatus(ctx context.Context, actor dto.Actor, id string, req dto.UpdateEventStatusRequest) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrValidation, err, "invalid status payload")
	}
	event, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeRequest(actor, *event); err != nil {
		return nil, err
	}
	if event.Status != models.EventStatusConfirmed {
		return nil, appErrors.Clone(appErrors.ErrInvalidStatusTransition, fmt.Sprintf("event already has a pending %s", event.Status))
	}
	if err := s.repo.UpdateStatus(ctx, id, req.Status); err != nil {
		return nil, s.mapWriteError(err, "failed to update event status")
	}
	event.Status = req.Status
	s.logger.Info("event status requested",
		zap.String("event_id", id),
		zap.String("status", string(req.Status)),
		zap.String("actor", actor.UserID),
		zap.String("role", string(actor.Role)),
	)
	s.changed(ctx, "status requested")
	return event, nil
}

// ApproveCancellation removes a class whose cancellation was requested.
func (s *EventService) ApproveCancellation(ctx context.Context, actor dto.Actor, id string) error {
	if _, err := s.ownedWithStatus(ctx, actor, id, models.EventStatusCancellationRequested); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapWriteError(err, "failed to delete event")
	}
	s.changed(ctx, "cancellation approved")
	return nil
}

// RejectCancellation clears a pending cancellation request.
func (s *EventService) RejectCancellation(ctx context.Context, actor dto.Actor, id string) (*models.Event, error) {
	return s.clearRequest(ctx, actor, id, models.EventStatusCancellationRequested)
}

// RejectReschedule clears a pending reschedule request.
func (s *EventService) RejectReschedule(ctx context.Context, actor dto.Actor, id string) (*models.Event, error) {
	return s.clearRequest(ctx, actor, id, models.EventStatusRescheduleRequested)
}

// Cancel deletes an event regardless of its status. Faculty cancel their own classes
// and coordinators their own club bookings.
func (s *EventService) Cancel(ctx context.Context, actor dto.Actor, id string) error {
	event, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeOwner(actor, *event); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapWriteError(err, "failed to delete event")
	}
	s.logger.Info("event cancelled",
		zap.String("event_id", id),
		zap.String("kind", string(event.Kind())),
		zap.String("actor", actor.UserID),
	)
	s.changed(ctx, "event cancelled")
	return nil
}

// CommitReschedule moves an event with a pending reschedule request to the suggested
// slot and confirms it.
func (s *EventService) CommitReschedule(ctx context.Context, actor dto.Actor, id string, suggestion dto.RescheduleSuggestion) (*dto.EventResult, error) {
	if err := s.validator.Struct(suggestion); err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrValidation, err, "invalid reschedule payload")
	}
	event, err := s.ownedWithStatus(ctx, actor, id, models.EventStatusRescheduleRequested)
	if err != nil {
		return nil, err
	}

	day, ok := models.ParseDayOfWeek(suggestion.Day)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "day must be Monday through Saturday")
	}
	ref, err := s.reference.Reference(ctx)
	if err != nil {
		return nil, err
	}
	room, ok := ref.ClassroomByName(suggestion.Classroom)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown classroom %q", suggestion.Classroom))
	}

	moved := *event
	moved.Day = day
	moved.StartTime = suggestion.StartTime
	moved.EndTime = suggestion.EndTime
	moved.ClassroomID = room.ID
	moved.Status = models.EventStatusConfirmed
	if err := timetable.ValidateHours(moved); err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrValidation, err, err.Error())
	}

	if err := s.repo.UpdateSlot(ctx, &moved); err != nil {
		return nil, s.mapWriteError(err, "failed to reschedule event")
	}
	s.logger.Info("event rescheduled",
		zap.String("event_id", id),
		zap.String("day", string(day)),
		zap.String("start", moved.StartTime),
		zap.String("classroom", room.ID),
	)
	s.changed(ctx, "reschedule committed")
	return s.withConflict(ctx, moved)
}

func (s *EventService) validateAcademic(ctx context.Context, event models.Event) error {
	if err := event.Validate(); err != nil {
		return appErrors.WrapAs(appErrors.ErrValidation, err, err.Error())
	}
	if err := timetable.ValidateHours(event); err != nil {
		return appErrors.WrapAs(appErrors.ErrValidation, err, err.Error())
	}
	ref, err := s.reference.Reference(ctx)
	if err != nil {
		return err
	}
	subject, ok := ref.Subject(event.Subject())
	if !ok {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown subject %q", event.Subject()))
	}
	if !ref.HasFaculty(event.Faculty()) {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown faculty %q", event.Faculty()))
	}
	if _, ok := ref.Batch(event.Batch()); !ok {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown batch %q", event.Batch()))
	}
	room, ok := ref.Classroom(event.ClassroomID)
	if !ok {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown classroom %q", event.ClassroomID))
	}
	if subject.RequiresLab && !room.IsLab {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s requires a lab", subject.Name))
	}
	return nil
}

func (s *EventService) withConflict(ctx context.Context, event models.Event) (*dto.EventResult, error) {
	events, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrInternal, err, "failed to load schedule")
	}
	ref, err := s.reference.Reference(ctx)
	if err != nil {
		return nil, err
	}
	result := &dto.EventResult{Event: event}
	if conflict, ok := timetable.FindConflicts(events, ref)[event.ID]; ok {
		result.Conflict = &conflict
	}
	return result, nil
}

func (s *EventService) clearRequest(ctx context.Context, actor dto.Actor, id string, want models.EventStatus) (*models.Event, error) {
	event, err := s.ownedWithStatus(ctx, actor, id, want)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, id, models.EventStatusConfirmed); err != nil {
		return nil, s.mapWriteError(err, "failed to update event status")
	}
	event.Status = models.EventStatusConfirmed
	s.changed(ctx, "request rejected")
	return event, nil
}

// ownedWithStatus loads an event the actor may manage and checks it has the wanted
// pending request.
func (s *EventService) ownedWithStatus(ctx context.Context, actor dto.Actor, id string, want models.EventStatus) (*models.Event, error) {
	event, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(actor, *event); err != nil {
		return nil, err
	}
	if event.Status != want {
		return nil, appErrors.Clone(appErrors.ErrInvalidStatusTransition, fmt.Sprintf("event has no pending %s", want))
	}
	return event, nil
}

func (s *EventService) find(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.WrapAs(appErrors.ErrInternal, err, "failed to load event")
	}
	return event, nil
}

func (s *EventService) mapWriteError(err error, message string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, "event not found")
	}
	return appErrors.WrapAs(appErrors.ErrInternal, err, message)
}

func (s *EventService) changed(ctx context.Context, reason string) {
	if s.notifier != nil {
		s.notifier.ScheduleChanged(ctx, reason)
	}
}

// authorizeRequest decides who may raise a cancellation or reschedule request. Club
// bookings take no requests; their coordinator cancels them directly.
func authorizeRequest(actor dto.Actor, event models.Event) error {
	if event.Kind() == models.EventKindClub {
		return appErrors.Clone(appErrors.ErrInvalidStatusTransition, "club events do not take cancellation or reschedule requests")
	}
	switch actor.Role {
	case models.RoleAdmin, models.RoleStudent:
		return nil
	case models.RoleFaculty:
		if event.Faculty() == actor.UserID {
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrForbidden, "only students, the assigned faculty or an admin may request changes to this class")
}

// authorizeOwner lets admins manage any event, faculty their own classes and
// coordinators their own club bookings.
func authorizeOwner(actor dto.Actor, event models.Event) error {
	switch actor.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleFaculty:
		if event.Kind() == models.EventKindAcademic && event.Faculty() == actor.UserID {
			return nil
		}
	case models.RoleCoordinator:
		if event.Kind() == models.EventKindClub && event.Coordinator() == actor.UserID {
			return nil
		}
	}
	return appErrors.Clone(appErrors.ErrForbidden, "only the event owner or an admin may change this event")
}
