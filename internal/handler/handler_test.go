package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/internal/middleware"
	"github.com/noah-isme/uni-timetable-api/internal/models"
	"github.com/noah-isme/uni-timetable-api/internal/service"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
)

// asUser stands in for JWT in handler tests.
func asUser(userID string, role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: userID, Role: role})
		c.Next()
	}
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.WithResponseMeta())
	return r
}

func doJSON(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		raw, _ := json.Marshal(v)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Data       json.RawMessage        `json:"data"`
	Error      *appErrors.Error       `json:"error"`
	Pagination *models.Pagination     `json:"pagination"`
	Meta       map[string]interface{} `json:"meta"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

// eventServiceStub records calls and returns canned results.
type eventServiceStub struct {
	query      dto.EventQuery
	actor      dto.Actor
	created    dto.CreateEventRequest
	suggestion dto.RescheduleSuggestion
	calls      []string
	err        error
}

func (s *eventServiceStub) List(_ context.Context, query dto.EventQuery) ([]models.Event, *models.Pagination, error) {
	s.query = query
	return []models.Event{{ID: "e1"}}, &models.Pagination{Page: 1, PageSize: 50, TotalCount: 1}, s.err
}

func (s *eventServiceStub) Get(_ context.Context, id string) (*dto.EventResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.EventResult{Event: models.Event{ID: id}}, nil
}

func (s *eventServiceStub) Create(_ context.Context, actor dto.Actor, req dto.CreateEventRequest) (*dto.EventResult, error) {
	s.actor, s.created = actor, req
	if s.err != nil {
		return nil, s.err
	}
	return &dto.EventResult{
		Event:    models.Event{ID: "new-1", Day: models.Monday},
		Conflict: &models.Conflict{EventID: "new-1", Type: models.ConflictDoubleBooking, Message: "clash"},
	}, nil
}

func (s *eventServiceStub) RequestStatus(_ context.Context, actor dto.Actor, id string, req dto.UpdateEventStatusRequest) (*models.Event, error) {
	s.actor = actor
	s.calls = append(s.calls, "status:"+id+":"+string(req.Status))
	return &models.Event{ID: id, Status: req.Status}, s.err
}

func (s *eventServiceStub) ApproveCancellation(_ context.Context, actor dto.Actor, id string) error {
	s.actor = actor
	s.calls = append(s.calls, "approve:"+id)
	return s.err
}

func (s *eventServiceStub) RejectCancellation(_ context.Context, actor dto.Actor, id string) (*models.Event, error) {
	s.actor = actor
	s.calls = append(s.calls, "reject-cancel:"+id)
	return &models.Event{ID: id}, s.err
}

func (s *eventServiceStub) RejectReschedule(_ context.Context, actor dto.Actor, id string) (*models.Event, error) {
	s.actor = actor
	s.calls = append(s.calls, "reject-reschedule:"+id)
	return &models.Event{ID: id}, s.err
}

func (s *eventServiceStub) Cancel(_ context.Context, actor dto.Actor, id string) error {
	s.actor = actor
	s.calls = append(s.calls, "cancel:"+id)
	return s.err
}

func (s *eventServiceStub) CommitReschedule(_ context.Context, actor dto.Actor, id string, suggestion dto.RescheduleSuggestion) (*dto.EventResult, error) {
	s.actor, s.suggestion = actor, suggestion
	s.calls = append(s.calls, "commit:"+id)
	return &dto.EventResult{Event: models.Event{ID: id}}, s.err
}

func eventRoutes(stub *eventServiceStub, role models.UserRole) *gin.Engine {
	h := NewEventHandler(stub)
	r := newTestRouter()
	g := r.Group("/events", asUser("F1", role))
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PATCH("/:id/status", h.RequestStatus)
	g.POST("/:id/cancellation/approve", h.ApproveCancellation)
	g.POST("/:id/cancellation/reject", h.RejectCancellation)
	g.POST("/:id/reschedule/reject", h.RejectReschedule)
	g.POST("/:id/reschedule/commit", h.CommitReschedule)
	g.DELETE("/:id", h.Cancel)
	return r
}

func TestEventHandlerList(t *testing.T) {
	stub := &eventServiceStub{}
	r := eventRoutes(stub, models.RoleFaculty)

	w := doJSON(r, http.MethodGet, "/events?day=Monday&facultyId=F1&page=2&pageSize=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Monday", stub.query.Day)
	assert.Equal(t, "F1", stub.query.FacultyID)
	assert.Equal(t, 2, stub.query.Page)
	assert.Equal(t, 10, stub.query.PageSize)
	assert.NotNil(t, decode(t, w).Pagination)

	w = doJSON(r, http.MethodGet, "/events?page=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEventHandlerCreate(t *testing.T) {
	stub := &eventServiceStub{}
	r := eventRoutes(stub, models.RoleFaculty)

	w := doJSON(r, http.MethodPost, "/events", dto.CreateEventRequest{
		Day: "Monday", StartTime: "09:00", EndTime: "10:00", ClassroomID: "R1", SubjectID: "S1", FacultyID: "F1", BatchID: "B1",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, dto.Actor{UserID: "F1", Role: models.RoleFaculty}, stub.actor)
	assert.Equal(t, "R1", stub.created.ClassroomID)

	var result dto.EventResult
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &result))
	require.NotNil(t, result.Conflict)
	assert.Equal(t, models.ConflictDoubleBooking, result.Conflict.Type)

	w = doJSON(r, http.MethodPost, "/events", `{"day":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, appErrors.ErrValidation.Code, decode(t, w).Error.Code)
}

func TestEventHandlerLifecycleRoutes(t *testing.T) {
	stub := &eventServiceStub{}
	r := eventRoutes(stub, models.RoleAdmin)

	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodPatch, "/events/e1/status", map[string]string{"status": "reschedule_requested"}).Code)
	assert.Equal(t, http.StatusNoContent, doJSON(r, http.MethodPost, "/events/e1/cancellation/approve", nil).Code)
	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodPost, "/events/e2/cancellation/reject", nil).Code)
	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodPost, "/events/e3/reschedule/reject", nil).Code)
	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodPost, "/events/e4/reschedule/commit", dto.RescheduleSuggestion{
		Day: "Wednesday", StartTime: "14:00", EndTime: "15:00", Classroom: "Room 102",
	}).Code)
	assert.Equal(t, http.StatusNoContent, doJSON(r, http.MethodDelete, "/events/e5", nil).Code)

	assert.Equal(t, []string{
		"status:e1:reschedule_requested",
		"approve:e1",
		"reject-cancel:e2",
		"reject-reschedule:e3",
		"commit:e4",
		"cancel:e5",
	}, stub.calls)
	assert.Equal(t, "Room 102", stub.suggestion.Classroom)
}

func TestEventHandlerPassesCallerToLifecycle(t *testing.T) {
	stub := &eventServiceStub{}
	r := eventRoutes(stub, models.RoleStudent)
	require.Equal(t, http.StatusOK, doJSON(r, http.MethodPatch, "/events/e1/status", map[string]string{"status": "cancellation_requested"}).Code)
	assert.Equal(t, dto.Actor{UserID: "F1", Role: models.RoleStudent}, stub.actor)

	stub = &eventServiceStub{}
	r = eventRoutes(stub, models.RoleFaculty)
	require.Equal(t, http.StatusNoContent, doJSON(r, http.MethodPost, "/events/e1/cancellation/approve", nil).Code)
	assert.Equal(t, models.RoleFaculty, stub.actor.Role)
	stub.actor = dto.Actor{}
	require.Equal(t, http.StatusOK, doJSON(r, http.MethodPost, "/events/e1/reschedule/reject", nil).Code)
	assert.Equal(t, "F1", stub.actor.UserID)

	stub = &eventServiceStub{}
	r = eventRoutes(stub, models.RoleCoordinator)
	require.Equal(t, http.StatusNoContent, doJSON(r, http.MethodDelete, "/events/club-1", nil).Code)
	assert.Equal(t, dto.Actor{UserID: "F1", Role: models.RoleCoordinator}, stub.actor)
	assert.Equal(t, []string{"cancel:club-1"}, stub.calls)
}

func TestEventHandlerMapsServiceErrors(t *testing.T) {
	stub := &eventServiceStub{err: appErrors.Clone(appErrors.ErrInvalidStatusTransition, "event is not awaiting cancellation")}
	r := eventRoutes(stub, models.RoleAdmin)

	w := doJSON(r, http.MethodPost, "/events/e1/cancellation/approve", nil)
	assert.Equal(t, appErrors.ErrInvalidStatusTransition.Status, w.Code)
	assert.Equal(t, "event is not awaiting cancellation", decode(t, w).Error.Message)

	stub.err = appErrors.ErrNotFound
	w = doJSON(r, http.MethodGet, "/events/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEventHandlerRequiresClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewEventHandler(&eventServiceStub{})
	r := gin.New()
	r.POST("/events", h.Create)

	w := doJSON(r, http.MethodPost, "/events", dto.CreateEventRequest{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

type analyzerStub struct {
	analysis *dto.ScheduleAnalysis
	cached   bool
	err      error
}

func (s analyzerStub) Analysis(context.Context) (*dto.ScheduleAnalysis, bool, error) {
	return s.analysis, s.cached, s.err
}

func (s analyzerStub) ReferenceTables(context.Context) (models.ReferenceTables, error) {
	return models.ReferenceTables{Clubs: []models.Club{{ID: "C1", Name: "Chess Club"}}}, s.err
}

func TestScheduleHandlerConflictsAndMetrics(t *testing.T) {
	stub := analyzerStub{cached: true, analysis: &dto.ScheduleAnalysis{
		EventCount: 3,
		Conflicts: []models.Conflict{
			{EventID: "e1", Type: models.ConflictDoubleBooking, Message: "Double Booking"},
			{EventID: "e2", Type: models.ConflictWorkload, Message: "Workload"},
		},
		Counts:      dto.ConflictCounts{DoubleBooking: 1, Workload: 1, Total: 2},
		Metrics:     models.ScheduleMetrics{FacultyLoadScore: 0.5, RoomUtilizationScore: 2.5, StudentOverloadInstances: 1},
		GeneratedAt: time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC),
	}}
	h := NewScheduleHandler(stub)
	r := newTestRouter()
	r.GET("/schedule/conflicts", h.Conflicts)
	r.GET("/schedule/metrics", h.Metrics)
	r.GET("/reference", h.Reference)

	w := doJSON(r, http.MethodGet, "/schedule/conflicts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.Equal(t, true, env.Meta["cache_hit"])
	var payload conflictsPayload
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Len(t, payload.Conflicts, 2)
	assert.Equal(t, 2, payload.Counts.Total)

	w = doJSON(r, http.MethodGet, "/schedule/conflicts?type=workload", nil)
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &payload))
	require.Len(t, payload.Conflicts, 1)
	assert.Equal(t, "e2", payload.Conflicts[0].EventID)

	w = doJSON(r, http.MethodGet, "/schedule/metrics", nil)
	var metrics models.ScheduleMetrics
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &metrics))
	assert.Equal(t, 2.5, metrics.RoomUtilizationScore)

	w = doJSON(r, http.MethodGet, "/reference", nil)
	assert.Contains(t, w.Body.String(), "Chess Club")
}

func TestScheduleHandlerError(t *testing.T) {
	h := NewScheduleHandler(analyzerStub{err: errors.New("db down")})
	r := newTestRouter()
	r.GET("/schedule/metrics", h.Metrics)

	w := doJSON(r, http.MethodGet, "/schedule/metrics", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

type clubBookingStub struct {
	actor dto.Actor
	req   dto.ClubBookingRequest
	err   error
}

func (s *clubBookingStub) Bookability(query dto.SlotQuery) (*dto.SlotBookability, error) {
	return &dto.SlotBookability{Day: models.DayOfWeek(query.Day), StartTime: query.StartTime, Bookable: query.StartTime != "12:00"}, s.err
}

func (s *clubBookingStub) Availability(_ context.Context, query dto.ClubAvailabilityQuery) (*dto.ClubAvailability, error) {
	return &dto.ClubAvailability{Duration: query.Duration, Classrooms: []models.Classroom{{ID: "R1"}}}, s.err
}

func (s *clubBookingStub) Book(_ context.Context, actor dto.Actor, req dto.ClubBookingRequest) (*models.Event, error) {
	s.actor, s.req = actor, req
	if s.err != nil {
		return nil, s.err
	}
	return &models.Event{ID: "c1", ClassroomID: req.ClassroomID}, nil
}

func TestClubBookingHandler(t *testing.T) {
	stub := &clubBookingStub{}
	h := NewClubBookingHandler(stub)
	r := newTestRouter()
	r.GET("/slots/bookable", h.Bookable)
	r.GET("/club-bookings/availability", h.Availability)
	r.POST("/club-bookings", asUser("K1", models.RoleCoordinator), h.Book)

	w := doJSON(r, http.MethodGet, "/slots/bookable?day=Saturday&start=12:00", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var slot dto.SlotBookability
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &slot))
	assert.False(t, slot.Bookable)

	w = doJSON(r, http.MethodGet, "/club-bookings/availability?day=Saturday&start=10:00&duration=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"duration":2`)

	w = doJSON(r, http.MethodPost, "/club-bookings", dto.ClubBookingRequest{Day: "Saturday", StartTime: "10:00", Duration: 1, ClassroomID: "R1"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "K1", stub.actor.UserID)

	stub.err = appErrors.Clone(appErrors.ErrSlotNotBookable, "12:00 is reserved for the lunch break")
	w = doJSON(r, http.MethodPost, "/club-bookings", dto.ClubBookingRequest{Day: "Saturday", StartTime: "12:00", Duration: 1, ClassroomID: "R1"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, appErrors.ErrSlotNotBookable.Code, decode(t, w).Error.Code)
}

type timetableStub struct {
	evaluated dto.EvaluateTimetablesRequest
	published dto.PublishTimetableRequest
	err       error
}

func (s *timetableStub) Evaluate(_ context.Context, req dto.EvaluateTimetablesRequest) (*dto.EvaluateTimetablesResponse, error) {
	s.evaluated = req
	return &dto.EvaluateTimetablesResponse{Goal: req.Goal}, s.err
}

func (s *timetableStub) Publish(_ context.Context, _ dto.Actor, req dto.PublishTimetableRequest) (*dto.PublishTimetableResponse, error) {
	s.published = req
	if s.err != nil {
		return nil, s.err
	}
	return &dto.PublishTimetableResponse{Name: req.Name, EventCount: len(req.Schedule)}, nil
}

func TestTimetableHandler(t *testing.T) {
	stub := &timetableStub{}
	h := NewTimetableHandler(stub)
	r := newTestRouter()
	admin := r.Group("/timetables", asUser("admin-1", models.RoleAdmin))
	admin.POST("/evaluate", h.Evaluate)
	admin.POST("/publish", h.Publish)

	body := `{"goal":"room_utilization","candidates":[{"name":"A","schedule":[{"id":"e1","day":"Monday","startTime":"09:00","endTime":"10:00","classroomId":"R1","subjectId":"S1","facultyId":"F1","batchId":"B1"}]}]}`
	w := doJSON(r, http.MethodPost, "/timetables/evaluate", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.RankByRoomUtilization, stub.evaluated.Goal)
	require.Len(t, stub.evaluated.Candidates, 1)
	assert.Equal(t, "R1", stub.evaluated.Candidates[0].Schedule[0].ClassroomID)

	w = doJSON(r, http.MethodPost, "/timetables/publish", dto.PublishTimetableRequest{Name: "A", Schedule: []models.Event{{ID: "e1"}}, AllowConflicts: true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, stub.published.AllowConflicts)

	stub.err = appErrors.Clone(appErrors.ErrConflict, "schedule has 2 double-booked events")
	w = doJSON(r, http.MethodPost, "/timetables/publish", dto.PublishTimetableRequest{Schedule: []models.Event{{ID: "e1"}}})
	assert.Equal(t, http.StatusConflict, w.Code)
}

type exporterStub struct {
	format string
}

func (s *exporterStub) ScheduleExport(_ context.Context, format string) (*service.ExportFile, error) {
	s.format = format
	if format == "docx" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
	return &service.ExportFile{Filename: "master-schedule-20250106." + format, ContentType: "text/csv", Body: []byte("Day\n")}, nil
}

func TestExportHandler(t *testing.T) {
	stub := &exporterStub{}
	h := NewExportHandler(stub)
	r := newTestRouter()
	r.GET("/exports/schedule", h.Schedule)

	w := doJSON(r, http.MethodGet, "/exports/schedule", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "csv", stub.format)
	assert.Equal(t, `attachment; filename="master-schedule-20250106.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "Day\n", w.Body.String())

	w = doJSON(r, http.MethodGet, "/exports/schedule?format=docx", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "docx", stub.format)
}

func TestMetricsHandlerReady(t *testing.T) {
	h := NewMetricsHandler(service.NewMetricsService(), map[string]ReadinessCheck{
		"database": func(context.Context) error { return nil },
		"cache":    func(context.Context) error { return errors.New("connection refused") },
	})
	r := newTestRouter()
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
	r.GET("/metrics", h.Prometheus)

	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/health", nil).Code)

	w := doJSON(r, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"ok"`)
	assert.Contains(t, w.Body.String(), "connection refused")

	w = doJSON(r, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "goroutines_total")
}
