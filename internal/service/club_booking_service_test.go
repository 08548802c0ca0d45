package service

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/internal/models"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
	"github.com/noah-isme/uni-timetable-api/pkg/timetable"
)

var coordinatorActor = dto.Actor{UserID: "K1", Role: models.RoleCoordinator}

func newClubFixture(now time.Time, events ...models.Event) (*ClubBookingService, *memoryEvents, *recordingNotifier, *MetricsService) {
	store := newMemoryEvents(events...)
	notifier := &recordingNotifier{}
	metrics := NewMetricsService()
	svc := NewClubBookingService(store, &staticReference{tables: testTables()}, notifier, timetable.FixedClock(now), metrics, nil, nil)
	return svc, store, notifier, metrics
}

func TestClubBookingServiceBookability(t *testing.T) {
	svc, _, _, _ := newClubFixture(testMonday)

	slot, err := svc.Bookability(dto.SlotQuery{Day: "tuesday", StartTime: "18:00"})
	require.NoError(t, err)
	assert.True(t, slot.Bookable)
	assert.Equal(t, models.Tuesday, slot.Day)

	slot, err = svc.Bookability(dto.SlotQuery{Day: "Saturday", StartTime: "12:00"})
	require.NoError(t, err)
	assert.False(t, slot.Bookable)
	assert.Contains(t, slot.Reason, "lunch")

	_, err = svc.Bookability(dto.SlotQuery{Day: "Sunday", StartTime: "18:00"})
	assertCode(t, err, appErrors.ErrValidation)
	_, err = svc.Bookability(dto.SlotQuery{Day: "Monday", StartTime: "evening"})
	assertCode(t, err, appErrors.ErrValidation)
}

func TestClubBookingServiceAvailability(t *testing.T) {
	svc, _, _, _ := newClubFixture(testMonday,
		academic("e1", models.Saturday, "10:00", "11:00", "B1", "F1", "R1"),
		club("c1", models.Saturday, "09:00", "10:00", "L1"),
	)

	availability, err := svc.Availability(context.Background(), dto.ClubAvailabilityQuery{Day: "Saturday", StartTime: "09:00", Duration: 2})
	require.NoError(t, err)
	assert.True(t, availability.Bookable)
	assert.Equal(t, "11:00", availability.EndTime)
	require.Len(t, availability.Classrooms, 1)
	assert.Equal(t, "R2", availability.Classrooms[0].ID)

	closed, err := svc.Availability(context.Background(), dto.ClubAvailabilityQuery{Day: "Wednesday", StartTime: "10:00"})
	require.NoError(t, err)
	assert.False(t, closed.Bookable)
	assert.Equal(t, 1, closed.Duration)
	assert.Empty(t, closed.Classrooms)

	_, err = svc.Availability(context.Background(), dto.ClubAvailabilityQuery{Day: "Saturday", StartTime: "09:00", Duration: 3})
	assertCode(t, err, appErrors.ErrValidation)
}

func TestClubBookingServiceBook(t *testing.T) {
	svc, store, notifier, metrics := newClubFixture(testMonday)

	event, err := svc.Book(context.Background(), coordinatorActor, dto.ClubBookingRequest{
		Day: "Friday", StartTime: "18:00", Duration: 2, ClassroomID: "R1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.EventKindClub, event.Kind())
	assert.Equal(t, "20:00", event.EndTime)
	assert.Equal(t, "Chess Club Activity", event.Name())
	assert.Equal(t, "C1", event.Club())
	assert.Len(t, store.events, 1)
	assert.Equal(t, []string{"club booking"}, notifier.reasons)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.bookings.WithLabelValues("booked")))
}

func TestClubBookingServiceBookRejections(t *testing.T) {
	mondayNight := time.Date(2025, time.January, 6, 20, 0, 0, 0, time.UTC)
	svc, store, _, metrics := newClubFixture(mondayNight, club("c1", models.Saturday, "10:00", "12:00", "R1"))
	ctx := context.Background()

	_, err := svc.Book(ctx, coordinatorActor, dto.ClubBookingRequest{Day: "Monday", StartTime: "19:00", Duration: 1, ClassroomID: "R1"})
	assertCode(t, err, appErrors.ErrSlotNotBookable)
	assert.Contains(t, err.Error(), "already passed")

	_, err = svc.Book(ctx, coordinatorActor, dto.ClubBookingRequest{Day: "Tuesday", StartTime: "15:00", Duration: 1, ClassroomID: "R1"})
	assertCode(t, err, appErrors.ErrSlotNotBookable)

	_, err = svc.Book(ctx, coordinatorActor, dto.ClubBookingRequest{Day: "Saturday", StartTime: "11:00", Duration: 1, ClassroomID: "R1"})
	assertCode(t, err, appErrors.ErrConflict)

	_, err = svc.Book(ctx, coordinatorActor, dto.ClubBookingRequest{Day: "Saturday", StartTime: "09:00", Duration: 3, ClassroomID: "R2"})
	assertCode(t, err, appErrors.ErrValidation)

	_, err = svc.Book(ctx, coordinatorActor, dto.ClubBookingRequest{Day: "Saturday", StartTime: "23:00", Duration: 2, ClassroomID: "R2"})
	assertCode(t, err, appErrors.ErrValidation)

	_, err = svc.Book(ctx, dto.Actor{UserID: "F1", Role: models.RoleCoordinator}, dto.ClubBookingRequest{Day: "Saturday", StartTime: "14:00", Duration: 1, ClassroomID: "R2"})
	assertCode(t, err, appErrors.ErrForbidden)

	assert.Len(t, store.events, 1)
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.bookings.WithLabelValues(appErrors.ErrSlotNotBookable.Code)))
}

func TestClubBookingServiceCustomName(t *testing.T) {
	svc, _, _, _ := newClubFixture(testMonday)
	event, err := svc.Book(context.Background(), coordinatorActor, dto.ClubBookingRequest{
		Day: "Saturday", StartTime: "14:00", Duration: 1, ClassroomID: "L1", EventName: "Blitz Tournament",
	})
	require.NoError(t, err)
	assert.Equal(t, "Blitz Tournament", event.Name())
}
