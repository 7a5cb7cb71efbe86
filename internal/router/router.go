package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/attendance-backend/internal/config"
	"github.com/stemsi/attendance-backend/internal/handler"
	"github.com/stemsi/attendance-backend/internal/middleware"
	"github.com/stemsi/attendance-backend/internal/model"
	"github.com/stemsi/attendance-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth         *handler.AuthHandler
	Student      *handler.StudentHandler
	Attendance   *handler.AttendanceHandler
	Session      *handler.SessionHandler
	SocialAction *handler.SocialActionHandler
	Report       *handler.ReportHandler
	WS           *handler.WSHandler
	System       *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	auth middleware.TokenValidator,
	loginLimiter *middleware.RateLimiter,
	handlers *Handlers,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware(log))

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	authAPI := router.Group("/api/v1/auth")
	{
		authAPI.POST("/login", loginLimiter.Middleware(), handlers.Auth.Login)
		authAPI.GET("/me", middleware.RequireJWT(auth), handlers.Auth.Me)
	}

	// ─── 2. WebSocket Group (Query Token Auth) ─────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireWSAuth(auth))
	{
		ws.GET("/dashboard", handlers.WS.DashboardStream)
	}

	// ─── 3. Dashboard API (JWT + RBAC) ─────────────────────────────────
	api := router.Group("/api/v1")
	api.Use(middleware.RequireJWT(auth), middleware.NoStore())
	{
		// Roster
		api.GET("/students",
			middleware.RequirePermission(model.PermissionStudentsRead),
			handlers.Student.ListStudents,
		)
		api.POST("/students",
			middleware.RequirePermission(model.PermissionStudentsWrite),
			handlers.Student.CreateStudent,
		)
		api.POST("/students/bulk",
			middleware.RequirePermission(model.PermissionStudentsWrite),
			handlers.Student.BulkImport,
		)
		api.PUT("/students/:id",
			middleware.RequirePermission(model.PermissionStudentsWrite),
			handlers.Student.UpdateStudent,
		)
		api.DELETE("/students/:id",
			middleware.RequirePermission(model.PermissionStudentsDelete),
			handlers.Student.DeleteStudent,
		)

		// Preceptoría sessions
		api.GET("/students/:id/sessions",
			middleware.RequirePermission(model.PermissionSessionsRead),
			handlers.Session.ListSessions,
		)
		api.POST("/students/:id/sessions",
			middleware.RequirePermission(model.PermissionSessionsWrite),
			handlers.Session.AddSession,
		)

		// Attendance
		api.GET("/attendance/:date",
			middleware.RequirePermission(model.PermissionAttendanceRead),
			handlers.Attendance.GetDay,
		)
		api.PUT("/attendance/:date",
			middleware.RequirePermission(model.PermissionAttendanceWrite),
			handlers.Attendance.SaveDay,
		)

		// Social action
		api.GET("/social-actions",
			middleware.RequirePermission(model.PermissionSocialRead),
			handlers.SocialAction.ListSocialActions,
		)
		api.PATCH("/social-actions/:student_id",
			middleware.RequirePermission(model.PermissionSocialWrite),
			handlers.SocialAction.SaveSocialAction,
		)

		// Reports
		reports := api.Group("/reports")
		{
			reports.GET("/summary", middleware.RequirePermission(model.PermissionReportsRead), handlers.Report.Summary)
			reports.GET("/summary/export", middleware.RequirePermission(model.PermissionReportsExport), handlers.Report.ExportSummary)
			reports.GET("/calendar", middleware.RequirePermission(model.PermissionReportsRead), handlers.Report.Calendar)
			reports.GET("/daily", middleware.RequirePermission(model.PermissionReportsRead), handlers.Report.Daily)
			reports.GET("/social-action", middleware.RequireAnyPermission(model.PermissionReportsRead, model.PermissionSocialRead), handlers.Report.SocialAction)
			reports.GET("/overdue", middleware.RequireAnyPermission(model.PermissionReportsRead, model.PermissionSessionsRead), handlers.Report.Overdue)
		}

		// Operations
		api.GET("/system/metrics",
			middleware.RequirePermission(model.PermissionSystemRead),
			handlers.System.SystemMetricsSSE,
		)
	}

	return router
}
