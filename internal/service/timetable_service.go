package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/internal/models"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
	"github.com/noah-isme/uni-timetable-api/pkg/timetable"
)

// ScheduleWriter replaces the master schedule atomically.
type ScheduleWriter interface {
	ReplaceAll(ctx context.Context, events []models.Event) error
}

// TimetableService scores candidate timetables for the admin dashboard and publishes the
// chosen one as the master schedule.
type TimetableService struct {
	writer      ScheduleWriter
	reference   ReferenceProvider
	notifier    ScheduleChangeNotifier
	metrics     *MetricsService
	validator   *validator.Validate
	logger      *zap.Logger
	concurrency int
}

// NewTimetableService constructs a TimetableService. concurrency bounds how many
// candidates are analysed at once.
func NewTimetableService(writer ScheduleWriter, reference ReferenceProvider, notifier ScheduleChangeNotifier, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, concurrency int) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if concurrency <= 0 {
		concurrency = 4
	}
	return &TimetableService{
		writer:      writer,
		reference:   reference,
		notifier:    notifier,
		metrics:     metrics,
		validator:   validate,
		logger:      logger,
		concurrency: concurrency,
	}
}

// Evaluate recomputes metrics and conflicts for every candidate and ranks them by goal.
// Metrics supplied by the generator are ignored.
func (s *TimetableService) Evaluate(ctx context.Context, req dto.EvaluateTimetablesRequest) (*dto.EvaluateTimetablesResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrValidation, err, "invalid evaluation request")
	}
	goal := req.Goal
	if goal == "" {
		goal = models.RankBalanced
	}
	ref, err := s.reference.Reference(ctx)
	if err != nil {
		return nil, err
	}

	analyses := make([]*dto.ScheduleAnalysis, len(req.Candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := range req.Candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			analyses[i] = AnalyzeSchedule(req.Candidates[i].Schedule, ref)
			s.metrics.ObserveAnalysis(AnalysisSourceCandidate, time.Since(start), analyses[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrInternal, err, "evaluation aborted")
	}

	metrics := make([]models.ScheduleMetrics, len(analyses))
	for i, analysis := range analyses {
		metrics[i] = analysis.Metrics
	}
	resp := &dto.EvaluateTimetablesResponse{Goal: goal, Timetables: make([]dto.EvaluatedTimetable, 0, len(analyses))}
	for rank, i := range timetable.RankOrder(metrics, goal) {
		candidate := req.Candidates[i]
		resp.Timetables = append(resp.Timetables, dto.EvaluatedTimetable{
			Rank:      rank + 1,
			Name:      candidate.Name,
			Reasoning: candidate.Reasoning,
			Metrics:   analyses[i].Metrics,
			Counts:    analyses[i].Counts,
			Conflicts: analyses[i].Conflicts,
			Schedule:  candidate.Schedule,
		})
	}
	s.logger.Info("timetables evaluated", zap.Int("candidates", len(req.Candidates)), zap.String("goal", string(goal)))
	return resp, nil
}

// Publish validates a candidate and makes it the master schedule. Double bookings reject
// the publish unless AllowConflicts is set; workload warnings never do.
func (s *TimetableService) Publish(ctx context.Context, actor dto.Actor, req dto.PublishTimetableRequest) (*dto.PublishTimetableResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrValidation, err, "invalid publish request")
	}
	ref, err := s.reference.Reference(ctx)
	if err != nil {
		return nil, err
	}

	events := make([]models.Event, len(req.Schedule))
	copy(events, req.Schedule)
	seen := make(map[string]bool, len(events))
	for i := range events {
		if err := validateScheduleEvent(events[i], ref); err != nil {
			return nil, appErrors.WrapAs(appErrors.ErrValidation, err, fmt.Sprintf("event %d: %v", i, err))
		}
		if id := events[i].ID; id != "" {
			if seen[id] {
				return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("duplicate event id %q", id))
			}
			seen[id] = true
		}
		events[i].Status = models.EventStatusConfirmed
	}

	analysis := AnalyzeSchedule(events, ref)
	if analysis.Counts.DoubleBooking > 0 && !req.AllowConflicts {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("schedule has %d double-booked events", analysis.Counts.DoubleBooking))
	}

	if err := s.writer.ReplaceAll(ctx, events); err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrInternal, err, "failed to publish timetable")
	}
	s.logger.Info("timetable published",
		zap.String("name", req.Name),
		zap.Int("events", len(events)),
		zap.Int("conflicts", analysis.Counts.Total),
		zap.String("actor", actor.UserID),
	)
	if s.notifier != nil {
		s.notifier.ScheduleChanged(ctx, "timetable published")
	}
	return &dto.PublishTimetableResponse{
		Name:       req.Name,
		EventCount: len(events),
		Metrics:    analysis.Metrics,
		Counts:     analysis.Counts,
	}, nil
}

func validateScheduleEvent(event models.Event, ref *models.ReferenceData) error {
	if err := event.Validate(); err != nil {
		return err
	}
	if err := timetable.ValidateHours(event); err != nil {
		return err
	}
	if _, ok := ref.Classroom(event.ClassroomID); !ok {
		return fmt.Errorf("unknown classroom %q", event.ClassroomID)
	}
	return nil
}
