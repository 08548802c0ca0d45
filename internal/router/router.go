package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-timetable-api/internal/handler"
	"github.com/noah-isme/uni-timetable-api/internal/middleware"
	"github.com/noah-isme/uni-timetable-api/internal/models"
	"github.com/noah-isme/uni-timetable-api/internal/service"
	"github.com/noah-isme/uni-timetable-api/pkg/config"
	"github.com/noah-isme/uni-timetable-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/uni-timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/uni-timetable-api/pkg/middleware/requestid"
)

// Handlers groups every HTTP handler mounted by Setup.
type Handlers struct {
	Events    *handler.EventHandler
	Schedule  *handler.ScheduleHandler
	Clubs     *handler.ClubBookingHandler
	Timetable *handler.TimetableHandler
	Exports   *handler.ExportHandler
	System    *handler.MetricsHandler
}

// Setup builds the gin engine with global middleware and the API route table.
func Setup(cfg *config.Config, h Handlers, tokens middleware.TokenValidator, metrics *service.MetricsService, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(log))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", h.System.Health)
	r.GET("/ready", h.System.Ready)
	r.GET("/metrics", h.System.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	admin := middleware.RequireRoles(models.RoleAdmin)
	teaching := middleware.RequireRoles(models.RoleFaculty, models.RoleAdmin)
	requesters := middleware.RequireRoles(models.RoleStudent, models.RoleFaculty, models.RoleAdmin)
	owners := middleware.RequireRoles(models.RoleFaculty, models.RoleCoordinator, models.RoleAdmin)
	audit := func(action string) gin.HandlerFunc { return middleware.Audit(log, action) }

	api := r.Group(cfg.APIPrefix, middleware.JWT(tokens))
	{
		api.GET("/reference", h.Schedule.Reference)

		events := api.Group("/events")
		{
			events.GET("", h.Events.List)
			events.GET("/:id", h.Events.Get)
			events.POST("", teaching, audit("event.create"), h.Events.Create)
			events.PATCH("/:id/status", requesters, audit("event.request_status"), h.Events.RequestStatus)
			events.POST("/:id/cancellation/approve", teaching, audit("event.approve_cancellation"), h.Events.ApproveCancellation)
			events.POST("/:id/cancellation/reject", teaching, audit("event.reject_cancellation"), h.Events.RejectCancellation)
			events.POST("/:id/reschedule/reject", teaching, audit("event.reject_reschedule"), h.Events.RejectReschedule)
			events.POST("/:id/reschedule/commit", teaching, audit("event.commit_reschedule"), h.Events.CommitReschedule)
			events.DELETE("/:id", owners, audit("event.cancel"), h.Events.Cancel)
		}

		schedule := api.Group("/schedule")
		{
			schedule.GET("/conflicts", h.Schedule.Conflicts)
			schedule.GET("/metrics", h.Schedule.Metrics)
		}

		api.GET("/slots/bookable", h.Clubs.Bookable)
		clubs := api.Group("/club-bookings")
		{
			clubs.GET("/availability", middleware.RequireRoles(models.RoleCoordinator, models.RoleAdmin), h.Clubs.Availability)
			clubs.POST("", middleware.RequireRoles(models.RoleCoordinator), audit("club.book"), h.Clubs.Book)
		}

		timetables := api.Group("/timetables", admin)
		{
			timetables.POST("/evaluate", h.Timetable.Evaluate)
			timetables.POST("/publish", audit("timetable.publish"), h.Timetable.Publish)
		}

		api.GET("/exports/schedule", h.Exports.Schedule)
		api.GET("/system/metrics", admin, h.System.Snapshot)
	}

	return r
}
