package dto

import "time"

// SystemMetrics is a lightweight snapshot of process counters.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cacheHitRatio"`
	CacheHits                uint64    `json:"cacheHits"`
	CacheMisses              uint64    `json:"cacheMisses"`
	RequestsTotal            uint64    `json:"requestsTotal"`
	AverageRequestDurationMs float64   `json:"averageRequestDurationMs"`
	AnalysisRuns             uint64    `json:"analysisRuns"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generatedAt"`
}

// ExportQuery selects the export encoding.
type ExportQuery struct {
	Format string `form:"format" validate:"omitempty,oneof=csv pdf xlsx"`
}
