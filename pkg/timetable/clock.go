// Package timetable holds the pure schedule analysis functions: conflict detection,
// workload checks, schedule metrics and the club slot booking policy.
//
// Every function is a pure function of its arguments. Inputs are never mutated and no
// state is shared between calls, so callers may invoke them concurrently.
package timetable

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/noah-isme/uni-timetable-api/internal/models"
)

// Clock returns the current wall-clock time.
type Clock func() time.Time

// SystemClock returns a Clock reading time.Now in loc. A nil loc means time.Local.
func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return func() time.Time { return time.Now().In(loc) }
}

// FixedClock always returns t.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

// ParseHour extracts the hour from an "HH:mm" or "HH" string. Minutes are ignored;
// the hour is the atomic scheduling unit.
func ParseHour(raw string) (int, error) {
	hour, _, err := parseClock(raw)
	return hour, err
}

// FormatHour renders an hour as "HH:00".
func FormatHour(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

func parseClock(raw string) (int, int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, 0, fmt.Errorf("empty time")
	}
	parts := strings.SplitN(raw, ":", 2)
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 24 {
		return 0, 0, fmt.Errorf("invalid hour in %q", raw)
	}
	minute := 0
	if len(parts) == 2 {
		minute, err = strconv.Atoi(parts[1])
		if err != nil || minute < 0 || minute > 59 {
			return 0, 0, fmt.Errorf("invalid minute in %q", raw)
		}
	}
	if hour == 24 && minute != 0 {
		return 0, 0, fmt.Errorf("time past midnight in %q", raw)
	}
	return hour, minute, nil
}

// parseStart is parseClock for slot starts. 24:00 only closes a range.
func parseStart(raw string) (int, int, error) {
	hour, minute, err := parseClock(raw)
	if err != nil {
		return 0, 0, err
	}
	if hour >= 24 {
		return 0, 0, fmt.Errorf("start %q is not within the day", raw)
	}
	return hour, minute, nil
}

// hourRange returns the half-open [start, end) hours of an event. ok is false for
// unparsable or empty ranges.
func hourRange(e models.Event) (start, end int, ok bool) {
	start, err := ParseHour(e.StartTime)
	if err != nil {
		return 0, 0, false
	}
	end, err = ParseHour(e.EndTime)
	if err != nil || end <= start {
		return 0, 0, false
	}
	return start, end, true
}

// EventDuration returns the event length in whole hours, or 0 when malformed.
func EventDuration(e models.Event) int {
	start, end, ok := hourRange(e)
	if !ok {
		return 0
	}
	return end - start
}

// ValidateHours reports an error if the event does not cover at least one hour.
func ValidateHours(e models.Event) error {
	start, err := ParseHour(e.StartTime)
	if err != nil {
		return fmt.Errorf("start time: %w", err)
	}
	end, err := ParseHour(e.EndTime)
	if err != nil {
		return fmt.Errorf("end time: %w", err)
	}
	if end <= start {
		return fmt.Errorf("end time %s must be after start time %s", e.EndTime, e.StartTime)
	}
	return nil
}
