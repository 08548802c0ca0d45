package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation for HTTP traffic, the cache and
// the schedule analysis engine.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheLatency    prometheus.Histogram
	cacheWrite      prometheus.Histogram
	cacheHitRatio   prometheus.Gauge
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter

	analysisDuration *prometheus.HistogramVec
	conflicts        *prometheus.GaugeVec
	facultyLoad      prometheus.Gauge
	roomUtilization  prometheus.Gauge
	overloads        prometheus.Gauge
	scheduledEvents  prometheus.Gauge
	bookings         *prometheus.CounterVec
	refreshJobs      *prometheus.CounterVec

	cacheHitCount        uint64
	cacheMissCount       uint64
	requestCount         uint64
	requestDurationTotal uint64
	analysisRunCount     uint64
}

// NewMetricsService registers the collectors on a private registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	m := &MetricsService{
		registry: registry,
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		cacheLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cache_latency_seconds",
			Help:    "Latency for cache lookups",
			Buckets: prometheus.DefBuckets,
		}),
		cacheWrite: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cache_write_seconds",
			Help:    "Latency for cache set operations",
			Buckets: prometheus.DefBuckets,
		}),
		cacheHitRatio: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cache_hit_ratio",
			Help: "Ratio of cache hits to total cache lookups",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total cache hits",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total cache misses",
		}),
		analysisDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "timetable_analysis_duration_seconds",
			Help:    "Time spent running conflict detection and metrics",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5},
		}, []string{"source"}),
		conflicts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "timetable_conflicts",
			Help: "Conflicting events in the master schedule by kind",
		}, []string{"type"}),
		facultyLoad: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "timetable_faculty_load_score",
			Help: "Standard deviation of weekly teaching hours across faculty",
		}),
		roomUtilization: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "timetable_room_utilization_percent",
			Help: "Scheduled room hours as a percentage of working capacity",
		}),
		overloads: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "timetable_student_overload_instances",
			Help: "Back-to-back study blocks longer than the workload threshold",
		}),
		scheduledEvents: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "timetable_events",
			Help: "Events in the master schedule",
		}),
		bookings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timetable_club_bookings_total",
			Help: "Club booking attempts by outcome",
		}, []string{"outcome"}),
		refreshJobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timetable_analysis_refresh_total",
			Help: "Background analysis refreshes by outcome",
		}, []string{"outcome"}),
	}

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(
		m.requestDuration, m.requestTotal,
		m.cacheLatency, m.cacheWrite,
		m.cacheHitRatio, m.cacheHits, m.cacheMisses,
		m.analysisDuration, m.conflicts, m.facultyLoad, m.roomUtilization, m.overloads, m.scheduledEvents,
		m.bookings, m.refreshJobs,
		goroutines,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry returns the underlying registry, mainly for tests.
func (m *MetricsService) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTPRequest records request metrics and aggregates simple stats for snapshots.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// RecordCacheOperation records a cache hit or miss and updates the hit ratio.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	if hit {
		m.cacheHits.Inc()
		atomic.AddUint64(&m.cacheHitCount, 1)
	} else {
		m.cacheMisses.Inc()
		atomic.AddUint64(&m.cacheMissCount, 1)
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	if total := hits + misses; total > 0 {
		m.cacheHitRatio.Set(float64(hits) / float64(total))
	}
}

// ObserveCacheWrite tracks the duration for cache write operations.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// ObserveAnalysis records one engine run. source distinguishes the master schedule from
// candidate evaluation; only the master schedule updates the gauges.
func (m *MetricsService) ObserveAnalysis(source string, duration time.Duration, analysis *dto.ScheduleAnalysis) {
	if m == nil {
		return
	}
	m.analysisDuration.WithLabelValues(source).Observe(duration.Seconds())
	atomic.AddUint64(&m.analysisRunCount, 1)
	if analysis == nil || source != AnalysisSourceMaster {
		return
	}
	m.conflicts.WithLabelValues(string(models.ConflictDoubleBooking)).Set(float64(analysis.Counts.DoubleBooking))
	m.conflicts.WithLabelValues(string(models.ConflictWorkload)).Set(float64(analysis.Counts.Workload))
	m.facultyLoad.Set(analysis.Metrics.FacultyLoadScore)
	m.roomUtilization.Set(analysis.Metrics.RoomUtilizationScore)
	m.overloads.Set(float64(analysis.Metrics.StudentOverloadInstances))
	m.scheduledEvents.Set(float64(analysis.EventCount))
}

// RecordBooking counts a club booking attempt.
func (m *MetricsService) RecordBooking(outcome string) {
	if m == nil {
		return
	}
	m.bookings.WithLabelValues(outcome).Inc()
}

// RecordRefresh counts a background analysis refresh.
func (m *MetricsService) RecordRefresh(err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.refreshJobs.WithLabelValues(outcome).Inc()
}

// Snapshot returns aggregated counters for the API.
func (m *MetricsService) Snapshot() dto.SystemMetrics {
	if m == nil {
		return dto.SystemMetrics{}
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)

	var cacheRatio float64
	if totalLookups := hits + misses; totalLookups > 0 {
		cacheRatio = float64(hits) / float64(totalLookups)
	}

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}

	return dto.SystemMetrics{
		CacheHitRatio:            cacheRatio,
		CacheHits:                hits,
		CacheMisses:              misses,
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		AnalysisRuns:             atomic.LoadUint64(&m.analysisRunCount),
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}
