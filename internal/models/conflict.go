package models

// ConflictKind classifies an advisory conflict.
type ConflictKind string

const (
	ConflictWorkload      ConflictKind = "workload"
	ConflictDoubleBooking ConflictKind = "double-booking"
)

// Conflict explains why an event is flagged.
type Conflict struct {
	EventID string       `json:"eventId"`
	Type    ConflictKind `json:"type"`
	Message string       `json:"message"`
}

// ConflictMap holds at most one conflict per event id.
type ConflictMap map[string]Conflict
