package timetable

import (
	"fmt"
	"sort"

	"github.com/noah-isme/uni-timetable-api/internal/models"
)

// WorkloadThresholdHours is the longest allowed run of back-to-back classes for a batch.
// A block must span strictly more than this to count as an overload.
const WorkloadThresholdHours = 3

type timedEvent struct {
	event models.Event
	start int
	end   int
}

// studyBlock is a maximal run of same-day events for one batch where each event starts
// exactly when the previous one ends.
type studyBlock struct {
	batchID string
	events  []timedEvent
}

func (b studyBlock) start() int { return b.events[0].start }
func (b studyBlock) end() int   { return b.events[len(b.events)-1].end }
func (b studyBlock) span() int  { return b.end() - b.start() }

func (b studyBlock) overloaded() bool {
	return len(b.events) > 1 && b.span() > WorkloadThresholdHours
}

// overloadedBlocks returns every overloaded study block in the schedule, grouped by
// batch (first-seen order) and day.
func overloadedBlocks(events []models.Event) []studyBlock {
	type batchDay struct {
		batch string
		day   models.DayOfWeek
	}
	grouped := make(map[batchDay][]timedEvent)
	var batches []string
	seen := make(map[string]bool)
	for _, event := range events {
		batch := event.Batch()
		if batch == "" {
			continue
		}
		start, end, ok := hourRange(event)
		if !ok {
			continue
		}
		if !seen[batch] {
			seen[batch] = true
			batches = append(batches, batch)
		}
		key := batchDay{batch, event.Day}
		grouped[key] = append(grouped[key], timedEvent{event: event, start: start, end: end})
	}

	var blocks []studyBlock
	for _, batch := range batches {
		for _, day := range models.DaysOfWeek {
			dayEvents := grouped[batchDay{batch, day}]
			if len(dayEvents) < 2 {
				continue
			}
			sort.SliceStable(dayEvents, func(i, j int) bool { return dayEvents[i].start < dayEvents[j].start })

			current := studyBlock{batchID: batch, events: []timedEvent{dayEvents[0]}}
			for _, te := range dayEvents[1:] {
				if te.start == current.events[len(current.events)-1].end {
					current.events = append(current.events, te)
					continue
				}
				if current.overloaded() {
					blocks = append(blocks, current)
				}
				current = studyBlock{batchID: batch, events: []timedEvent{te}}
			}
			if current.overloaded() {
				blocks = append(blocks, current)
			}
		}
	}
	return blocks
}

// FindWorkloadViolations flags every event belonging to a back-to-back block longer
// than WorkloadThresholdHours for its batch. The result is independent of double
// bookings; MergeConflicts applies precedence.
func FindWorkloadViolations(events []models.Event, ref *models.ReferenceData) models.ConflictMap {
	conflicts := make(models.ConflictMap)
	for _, block := range overloadedBlocks(events) {
		message := fmt.Sprintf(
			"Workload Warning: This class is part of a %d-hour study block for %s (%s - %s).",
			block.span(), ref.BatchName(block.batchID), FormatHour(block.start()), FormatHour(block.end()),
		)
		for _, te := range block.events {
			conflicts[te.event.ID] = models.Conflict{EventID: te.event.ID, Type: models.ConflictWorkload, Message: message}
		}
	}
	return conflicts
}
