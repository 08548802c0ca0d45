package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/internal/models"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
	"github.com/noah-isme/uni-timetable-api/pkg/timetable"
)

const defaultClubDuration = 1

// ClubEventStore is the persistence required by ClubBookingService.
type ClubEventStore interface {
	ScheduleReader
	Create(ctx context.Context, event *models.Event) error
}

// ClubBookingService lets club coordinators find and book rooms outside class hours.
type ClubBookingService struct {
	events    ClubEventStore
	reference ReferenceProvider
	notifier  ScheduleChangeNotifier
	clock     timetable.Clock
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger

	// bookMu serialises the availability check and insert of concurrent bookings.
	bookMu sync.Mutex
}

// NewClubBookingService constructs a ClubBookingService.
func NewClubBookingService(events ClubEventStore, reference ReferenceProvider, notifier ScheduleChangeNotifier, clock timetable.Clock, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ClubBookingService {
	if clock == nil {
		clock = timetable.SystemClock(nil)
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClubBookingService{
		events:    events,
		reference: reference,
		notifier:  notifier,
		clock:     clock,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
	}
}

// Bookability evaluates the slot policy for day and start time at the current time.
func (s *ClubBookingService) Bookability(query dto.SlotQuery) (*dto.SlotBookability, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrValidation, err, "day and start are required")
	}
	day, ok := models.ParseDayOfWeek(query.Day)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "day must be Monday through Saturday")
	}
	verdict := timetable.CheckSlot(day, query.StartTime, s.clock())
	if verdict == timetable.SlotInvalid {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start must be HH:mm")
	}
	return &dto.SlotBookability{
		Day:       day,
		StartTime: query.StartTime,
		Bookable:  verdict == timetable.SlotBookable,
		Reason:    verdictReason(verdict),
	}, nil
}

// Availability reports bookability and the classrooms free for the whole slot.
func (s *ClubBookingService) Availability(ctx context.Context, query dto.ClubAvailabilityQuery) (*dto.ClubAvailability, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrValidation, err, "invalid availability query")
	}
	duration := query.Duration
	if duration == 0 {
		duration = defaultClubDuration
	}
	slot, err := s.Bookability(dto.SlotQuery{Day: query.Day, StartTime: query.StartTime})
	if err != nil {
		return nil, err
	}
	start, _ := timetable.ParseHour(query.StartTime)
	if start+duration > 24 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "activity must end by midnight")
	}

	result := &dto.ClubAvailability{
		SlotBookability: *slot,
		EndTime:         timetable.FormatHour(start + duration),
		Duration:        duration,
		Classrooms:      []models.Classroom{},
	}
	if !slot.Bookable {
		return result, nil
	}

	events, err := s.events.ListAll(ctx)
	if err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrInternal, err, "failed to load schedule")
	}
	ref, err := s.reference.Reference(ctx)
	if err != nil {
		return nil, err
	}
	result.Classrooms = timetable.AvailableClassrooms(events, ref, slot.Day, query.StartTime, duration)
	return result, nil
}

// Book creates a club activity for the coordinator's club.
func (s *ClubBookingService) Book(ctx context.Context, actor dto.Actor, req dto.ClubBookingRequest) (*models.Event, error) {
	event, err := s.book(ctx, actor, req)
	outcome := "booked"
	if err != nil {
		outcome = appErrors.FromError(err).Code
	}
	s.metrics.RecordBooking(outcome)
	return event, err
}

func (s *ClubBookingService) book(ctx context.Context, actor dto.Actor, req dto.ClubBookingRequest) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrValidation, err, "invalid booking payload")
	}
	ref, err := s.reference.Reference(ctx)
	if err != nil {
		return nil, err
	}
	coordinator, ok := ref.Coordinator(actor.UserID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only club coordinators can book club activities")
	}
	if _, ok := ref.Classroom(req.ClassroomID); !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown classroom %q", req.ClassroomID))
	}

	slot, err := s.Bookability(dto.SlotQuery{Day: req.Day, StartTime: req.StartTime})
	if err != nil {
		return nil, err
	}
	if !slot.Bookable {
		return nil, appErrors.Clone(appErrors.ErrSlotNotBookable, slot.Reason)
	}
	start, _ := timetable.ParseHour(req.StartTime)
	if start+req.Duration > 24 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "activity must end by midnight")
	}

	name := req.EventName
	if name == "" {
		name = fmt.Sprintf("%s Activity", ref.ClubName(coordinator.ClubID))
	}
	event := &models.Event{
		Day:           slot.Day,
		StartTime:     timetable.FormatHour(start),
		EndTime:       timetable.FormatHour(start + req.Duration),
		ClassroomID:   req.ClassroomID,
		ClubID:        models.StringPtr(coordinator.ClubID),
		CoordinatorID: models.StringPtr(coordinator.ID),
		EventName:     models.StringPtr(name),
		Status:        models.EventStatusConfirmed,
	}

	s.bookMu.Lock()
	defer s.bookMu.Unlock()

	events, err := s.events.ListAll(ctx)
	if err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrInternal, err, "failed to load schedule")
	}
	for _, existing := range events {
		if existing.ClassroomID == event.ClassroomID && timetable.Overlaps(existing, *event) {
			return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("%s is already booked at this time", ref.ClassroomName(event.ClassroomID)))
		}
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrInternal, err, "failed to create booking")
	}
	s.logger.Info("club activity booked",
		zap.String("event_id", event.ID),
		zap.String("club", coordinator.ClubID),
		zap.String("day", string(event.Day)),
		zap.String("start", event.StartTime),
	)
	if s.notifier != nil {
		s.notifier.ScheduleChanged(ctx, "club booking")
	}
	return event, nil
}

func verdictReason(v timetable.SlotVerdict) string {
	switch v {
	case timetable.SlotBookable:
		return "slot is available for club activities"
	case timetable.SlotLunchBreak:
		return "12:00 is reserved for the lunch break"
	case timetable.SlotInPast:
		return "this slot has already passed this week"
	case timetable.SlotClassHours:
		return "weekday club activities start from 18:00"
	default:
		return "invalid slot"
	}
}
