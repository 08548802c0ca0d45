package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/internal/models"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
	"github.com/noah-isme/uni-timetable-api/pkg/timetable"
)

// Analysis sources reported to metrics.
const (
	AnalysisSourceMaster    = "master"
	AnalysisSourceCandidate = "candidate"
)

// ScheduleReader loads the full master schedule.
type ScheduleReader interface {
	ListAll(ctx context.Context) ([]models.Event, error)
}

// ReferenceLoader loads the static lookup tables.
type ReferenceLoader interface {
	Load(ctx context.Context) (models.ReferenceTables, error)
}

// ScheduleAnalysisService runs conflict detection and metrics over the master schedule
// and caches the result until the next mutation.
type ScheduleAnalysisService struct {
	events       ScheduleReader
	reference    ReferenceLoader
	cache        *CacheService
	metrics      *MetricsService
	clock        timetable.Clock
	logger       *zap.Logger
	analysisTTL  time.Duration
	referenceTTL time.Duration

	// generation counts invalidations. A refresh only caches its result when no
	// invalidation happened since it started reading the schedule.
	genMu      sync.Mutex
	generation uint64
}

// NewScheduleAnalysisService constructs the analysis service. A nil clock uses UTC wall time.
func NewScheduleAnalysisService(events ScheduleReader, reference ReferenceLoader, cache *CacheService, metrics *MetricsService, clock timetable.Clock, logger *zap.Logger) *ScheduleAnalysisService {
	if clock == nil {
		clock = timetable.SystemClock(time.UTC)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleAnalysisService{
		events:    events,
		reference: reference,
		cache:     cache,
		metrics:   metrics,
		clock:     clock,
		logger:    logger,
	}
}

// WithTTLs overrides the cache lifetimes for analysis results and reference tables.
func (s *ScheduleAnalysisService) WithTTLs(analysis, reference time.Duration) *ScheduleAnalysisService {
	s.analysisTTL = analysis
	s.referenceTTL = reference
	return s
}

// ReferenceTables returns the lookup tables, preferring the cache.
func (s *ScheduleAnalysisService) ReferenceTables(ctx context.Context) (models.ReferenceTables, error) {
	var tables models.ReferenceTables
	if s.cache.Get(ctx, cacheKeyReference, &tables) {
		return tables, nil
	}
	tables, err := s.reference.Load(ctx)
	if err != nil {
		return models.ReferenceTables{}, appErrors.WrapAs(appErrors.ErrInternal, err, "failed to load reference data")
	}
	s.cache.Set(ctx, cacheKeyReference, tables, s.referenceTTL)
	return tables, nil
}

// Reference returns an indexed lookup context.
func (s *ScheduleAnalysisService) Reference(ctx context.Context) (*models.ReferenceData, error) {
	tables, err := s.ReferenceTables(ctx)
	if err != nil {
		return nil, err
	}
	return models.NewReferenceData(tables), nil
}

// Analysis returns the current analysis. The boolean reports whether it came from cache.
func (s *ScheduleAnalysisService) Analysis(ctx context.Context) (*dto.ScheduleAnalysis, bool, error) {
	var cached dto.ScheduleAnalysis
	if s.cache.Get(ctx, cacheKeyAnalysis, &cached) {
		return &cached, true, nil
	}
	analysis, err := s.Refresh(ctx)
	return analysis, false, err
}

// Refresh recomputes the analysis from storage and stores it in the cache, unless the
// schedule was invalidated while it ran.
func (s *ScheduleAnalysisService) Refresh(ctx context.Context) (*dto.ScheduleAnalysis, error) {
	gen := s.currentGeneration()
	events, err := s.events.ListAll(ctx)
	if err != nil {
		return nil, appErrors.WrapAs(appErrors.ErrInternal, err, "failed to load schedule")
	}
	ref, err := s.Reference(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	analysis := AnalyzeSchedule(events, ref)
	analysis.GeneratedAt = s.clock().UTC()
	s.metrics.ObserveAnalysis(AnalysisSourceMaster, time.Since(start), analysis)

	if !s.storeIfCurrent(ctx, gen, analysis) {
		s.logger.Debug("schedule changed during analysis, result not cached", zap.Uint64("generation", gen))
	}
	s.logger.Debug("schedule analysed",
		zap.Int("events", analysis.EventCount),
		zap.Int("conflicts", analysis.Counts.Total),
		zap.Float64("faculty_load", analysis.Metrics.FacultyLoadScore),
	)
	return analysis, nil
}

// Invalidate drops cached analysis results so the next read recomputes them.
func (s *ScheduleAnalysisService) Invalidate(ctx context.Context) {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	s.generation++
	s.cache.Invalidate(ctx, cacheKeyAnalysisPattern)
}

func (s *ScheduleAnalysisService) currentGeneration() uint64 {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	return s.generation
}

// storeIfCurrent caches analysis only if no invalidation happened since gen. The
// check and the write share the lock with Invalidate so a stale write cannot land
// after a newer delete.
func (s *ScheduleAnalysisService) storeIfCurrent(ctx context.Context, gen uint64, analysis *dto.ScheduleAnalysis) bool {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	if s.generation != gen {
		return false
	}
	s.cache.Set(ctx, cacheKeyAnalysis, analysis, s.analysisTTL)
	return true
}

// InvalidateReference drops the cached lookup tables.
func (s *ScheduleAnalysisService) InvalidateReference(ctx context.Context) {
	s.cache.Invalidate(ctx, cacheKeyReference)
}

// AnalyzeSchedule runs every detector and the metrics over events.
func AnalyzeSchedule(events []models.Event, ref *models.ReferenceData) *dto.ScheduleAnalysis {
	conflicts := timetable.FindConflicts(events, ref)
	return &dto.ScheduleAnalysis{
		EventCount: len(events),
		Conflicts:  timetable.SortedConflicts(conflicts),
		Counts:     countConflicts(conflicts),
		Metrics:    timetable.CalculateScheduleMetrics(events, ref),
	}
}

func countConflicts(conflicts models.ConflictMap) dto.ConflictCounts {
	byKind := timetable.CountByKind(conflicts)
	return dto.ConflictCounts{
		DoubleBooking: byKind[models.ConflictDoubleBooking],
		Workload:      byKind[models.ConflictWorkload],
		Total:         len(conflicts),
	}
}
