package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/pkg/jobs"
)

const (
	jobTypeAnalysisRefresh = "analysis.refresh"
	jobKeyMasterSchedule   = "master-schedule"
)

// ScheduleChangeNotifier is told about every committed change to the master schedule.
type ScheduleChangeNotifier interface {
	ScheduleChanged(ctx context.Context, reason string)
}

type analysisRefreshTarget interface {
	Refresh(ctx context.Context) (*dto.ScheduleAnalysis, error)
	Invalidate(ctx context.Context)
}

// AnalysisRefresher invalidates the cached analysis on schedule changes and recomputes it
// on a background queue so the next reader finds a warm cache. Bursts of changes collapse
// into a single pending refresh.
type AnalysisRefresher struct {
	target  analysisRefreshTarget
	queue   *jobs.Queue
	metrics *MetricsService
	logger  *zap.Logger
}

// NewAnalysisRefresher builds a refresher around a dedicated job queue.
func NewAnalysisRefresher(target analysisRefreshTarget, metrics *MetricsService, cfg jobs.QueueConfig) *AnalysisRefresher {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	r := &AnalysisRefresher{target: target, metrics: metrics, logger: cfg.Logger}
	r.queue = jobs.NewQueue("analysis-refresh", r.handle, cfg)
	return r
}

// Start launches the workers.
func (r *AnalysisRefresher) Start(ctx context.Context) {
	r.queue.Start(ctx)
}

// Stop drains the workers.
func (r *AnalysisRefresher) Stop() {
	r.queue.Stop()
}

// ScheduleChanged drops the cached analysis and schedules a recompute.
func (r *AnalysisRefresher) ScheduleChanged(ctx context.Context, reason string) {
	r.target.Invalidate(ctx)
	accepted, err := r.queue.Enqueue(jobs.Job{Type: jobTypeAnalysisRefresh, Key: jobKeyMasterSchedule, Payload: reason})
	if err != nil {
		r.logger.Warn("analysis refresh not scheduled", zap.String("reason", reason), zap.Error(err))
		return
	}
	if !accepted {
		r.logger.Debug("analysis refresh already pending", zap.String("reason", reason))
	}
}

func (r *AnalysisRefresher) handle(ctx context.Context, job jobs.Job) error {
	analysis, err := r.target.Refresh(ctx)
	r.metrics.RecordRefresh(err)
	if err != nil {
		return err
	}
	r.logger.Info("analysis refreshed",
		zap.String("job_id", job.ID),
		zap.Any("reason", job.Payload),
		zap.Int("conflicts", analysis.Counts.Total),
	)
	return nil
}
