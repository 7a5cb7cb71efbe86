package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/attendance-backend/internal/config"
	"github.com/stemsi/attendance-backend/internal/database"
	"github.com/stemsi/attendance-backend/internal/handler"
	"github.com/stemsi/attendance-backend/internal/logger"
	"github.com/stemsi/attendance-backend/internal/middleware"
	"github.com/stemsi/attendance-backend/internal/repository"
	"github.com/stemsi/attendance-backend/internal/repository/memory"
	"github.com/stemsi/attendance-backend/internal/router"
	"github.com/stemsi/attendance-backend/internal/service"
	"github.com/stemsi/attendance-backend/internal/validator"
	"github.com/stemsi/attendance-backend/internal/worker"
)

// stores is the set of persistence backends the services run on.
type stores struct {
	students      service.StudentStore
	attendance    service.AttendanceStore
	sessions      service.SessionLogStore
	socialActions service.SocialActionStore
	admins        service.AdminStore
	close         func()
}

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("store", cfg.StoreDriver).
		Str("log_level", cfg.LogLevel).
		Msg("Starting attendance backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Open Record Store ─────────────────────────────────────────────
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open record store")
	}
	defer st.close()

	// ─── Connect to Redis (optional) ───────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	var reportCache service.ReportCache
	if rdb != nil {
		defer rdb.Close()
		reportCache = service.NewRedisReportCache(rdb, cfg.ReportCacheTTL)
	}

	// ─── Initialize Services ──────────────────────────────────────────
	events := service.NewEventService(rdb, log)
	authService := service.NewAuthService(cfg, st.admins)
	adminService := service.NewAdminService(st.admins, authService)
	studentService := service.NewStudentService(st.students, events)
	attendanceService := service.NewAttendanceService(st.attendance, events)
	sessionService := service.NewSessionService(st.students, st.sessions, events, cfg.Now)
	socialActionService := service.NewSocialActionService(st.students, st.socialActions, events)
	reportService := service.NewReportService(cfg, st.students, st.attendance, st.sessions, st.socialActions, reportCache, log)

	// ─── Bootstrap Account (memory store) ─────────────────────────────
	if cfg.StoreDriver == config.StoreDriverMemory {
		bootstrapAdmin(ctx, cfg, adminService, log)
	}

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:         handler.NewAuthHandler(authService, adminService),
		Student:      handler.NewStudentHandler(studentService),
		Attendance:   handler.NewAttendanceHandler(attendanceService),
		Session:      handler.NewSessionHandler(sessionService),
		SocialAction: handler.NewSocialActionHandler(socialActionService),
		Report: handler.NewReportHandler(reportService, func() (int, int) {
			now := cfg.Now()
			return now.Year(), int(now.Month())
		}),
		WS:     handler.NewWSHandler(events, log, cfg.AllowedOrigins),
		System: handler.NewSystemHandler(events, cfg.StoreDriver, log),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	workersDone := make(chan struct{})

	overdueWorker := worker.NewOverdueWorker(reportService, cfg.OverdueScanSchedule, cfg.Location, log)
	go func() {
		defer close(workersDone)
		if err := overdueWorker.Start(workerCtx); err != nil {
			log.Error().Err(err).Msg("Overdue worker not running")
		}
	}()

	// ─── Setup Router ──────────────────────────────────────────────────
	loginLimiter := middleware.NewRateLimiter(cfg.LoginRateLimit, time.Minute)
	defer loginLimiter.Stop()

	r := router.SetupRouter(authService, loginLimiter, handlers, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the scheduler and wait for a running scan to finish.
	workerCancel()
	select {
	case <-workersDone:
	case <-time.After(5 * time.Second):
		log.Warn().Msg("Worker shutdown timed out")
	}

	log.Info().Msg("Shutdown complete")
}

// openStores selects the persistence backend named by STORE_DRIVER.
func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		log.Warn().Msg("Using in-memory store, data is lost on restart")
		mem := memory.NewSeededStore()
		return &stores{
			students:      mem.Students,
			attendance:    mem.Attendance,
			sessions:      mem.SessionLogs,
			socialActions: mem.SocialActions,
			admins:        mem.Admins,
			close:         func() {},
		}, nil
	}

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return &stores{
		students:      repository.NewStudentRepository(pool),
		attendance:    repository.NewAttendanceRepository(pool),
		sessions:      repository.NewSessionLogRepository(pool),
		socialActions: repository.NewSocialActionRepository(pool),
		admins:        repository.NewAdminRepository(pool),
		close:         pool.Close,
	}, nil
}

// bootstrapAdmin creates the ADMIN_EMAIL account. The memory store starts without accounts
// and cmd/create-admin only writes to Postgres, so without it nobody can log in.
func bootstrapAdmin(ctx context.Context, cfg *config.Config, admins *service.AdminService, log zerolog.Logger) {
	admin, err := admins.Bootstrap(ctx, cfg)
	switch {
	case errors.Is(err, service.ErrBootstrapAccountUnset):
		log.Warn().Msg("ADMIN_EMAIL and ADMIN_PASSWORD are not set, no account can log in to the in-memory store")
	case err != nil:
		log.Fatal().Err(err).Msg("Failed to create bootstrap account")
	default:
		log.Info().Str("email", admin.Email).Str("role", string(admin.Role)).Msg("Bootstrap account ready")
	}
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
