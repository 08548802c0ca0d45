package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/pkg/jobs"
)

// refreshTargetStub signals entered on every refresh and, when gate is set, blocks
// until gate yields.
type refreshTargetStub struct {
	mu          sync.Mutex
	invalidated int
	refreshed   int
	err         error
	entered     chan struct{}
	gate        chan struct{}
}

func newRefreshTargetStub() *refreshTargetStub {
	return &refreshTargetStub{entered: make(chan struct{}, 16)}
}

func (s *refreshTargetStub) Refresh(ctx context.Context) (*dto.ScheduleAnalysis, error) {
	s.mu.Lock()
	s.refreshed++
	err := s.err
	s.mu.Unlock()
	s.entered <- struct{}{}
	if s.gate != nil {
		select {
		case <-s.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return &dto.ScheduleAnalysis{}, nil
}

func (s *refreshTargetStub) Invalidate(context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invalidated++
}

func (s *refreshTargetStub) counts() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.invalidated, s.refreshed
}

func waitEntered(t *testing.T, s *refreshTargetStub) {
	t.Helper()
	select {
	case <-s.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("refresh did not run")
	}
}

func TestAnalysisRefresherRefreshesAfterChange(t *testing.T) {
	target := newRefreshTargetStub()
	metrics := NewMetricsService()
	refresher := NewAnalysisRefresher(target, metrics, jobs.QueueConfig{Workers: 1})
	ctx := context.Background()
	refresher.Start(ctx)
	defer refresher.Stop()

	refresher.ScheduleChanged(ctx, "event created")
	waitEntered(t, target)

	invalidated, _ := target.counts()
	assert.Equal(t, 1, invalidated)
	require.Eventually(t, func() bool {
		return testutil.ToFloat64(metrics.refreshJobs.WithLabelValues("success")) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestAnalysisRefresherCoalescesBursts(t *testing.T) {
	target := newRefreshTargetStub()
	target.gate = make(chan struct{})
	refresher := NewAnalysisRefresher(target, nil, jobs.QueueConfig{Workers: 1})
	ctx := context.Background()
	refresher.Start(ctx)
	defer refresher.Stop()

	refresher.ScheduleChanged(ctx, "event created")
	waitEntered(t, target)

	// The first refresh is running; the burst collapses into one waiting job.
	for i := 0; i < 5; i++ {
		refresher.ScheduleChanged(ctx, "burst")
	}
	assert.Equal(t, 1, refresher.queue.Pending())

	close(target.gate)
	waitEntered(t, target)
	require.Eventually(t, func() bool { return refresher.queue.Pending() == 0 }, time.Second, 10*time.Millisecond)

	select {
	case <-target.entered:
		t.Fatal("coalesced refreshes ran more than once")
	case <-time.After(100 * time.Millisecond):
	}
	invalidated, refreshed := target.counts()
	assert.Equal(t, 6, invalidated)
	assert.Equal(t, 2, refreshed)
}

func TestAnalysisRefresherRecordsFailures(t *testing.T) {
	target := newRefreshTargetStub()
	target.err = errors.New("db down")
	metrics := NewMetricsService()
	refresher := NewAnalysisRefresher(target, metrics, jobs.QueueConfig{Workers: 1, RetryDelay: time.Hour})
	ctx := context.Background()
	refresher.Start(ctx)
	defer refresher.Stop()

	refresher.ScheduleChanged(ctx, "status requested")
	waitEntered(t, target)
	require.Eventually(t, func() bool {
		return testutil.ToFloat64(metrics.refreshJobs.WithLabelValues("failure")) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestAnalysisRefresherBeforeStartOnlyInvalidates(t *testing.T) {
	target := newRefreshTargetStub()
	refresher := NewAnalysisRefresher(target, nil, jobs.QueueConfig{})

	refresher.ScheduleChanged(context.Background(), "event created")

	invalidated, refreshed := target.counts()
	assert.Equal(t, 1, invalidated)
	assert.Zero(t, refreshed)
	assert.Zero(t, refresher.queue.Pending())
}
