package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "selecao-backend/docs" // This is for Swagger
	"selecao-backend/internal/auth"
	"selecao-backend/internal/config"
	"selecao-backend/internal/database"
	"selecao-backend/internal/handlers"
	"selecao-backend/internal/logger"
	"selecao-backend/internal/middleware"
	"selecao-backend/internal/repository"
	"selecao-backend/internal/service"

	httpSwagger "github.com/swaggo/http-swagger"
)

// DefaultAdminPIN seeds the admin credential on first start. Change it
// immediately through /api/v1/admin/pin.
const DefaultAdminPIN = "1234"

// @title Selecao API
// @version 1.0
// @description Backend API for the robotics team selection process
// @termsOfService http://swagger.io/terms/

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logger
	logger.Setup(logger.Config{
		Level: cfg.Log.Level,
	})

	slog.Info("Starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"env", cfg.App.Env,
		"log_level", cfg.Log.Level,
	)

	// Initialize database
	db, err := database.New(&cfg.Database)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func(db *database.Database) {
		err := db.Close()
		if err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}(db)

	slog.Info("Database connection established")

	// Run database migrations
	migrator := database.NewMigrationExecutor(db.DB)
	if err := migrator.RunMigrations("./migrations"); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed")

	// Initialize repositories
	candidateRepo := repository.NewCandidateRepository(db.DB)
	teamRepo := repository.NewTeamRepository(db.DB)
	sessionRepo := repository.NewSessionRepository(db.DB)
	attendanceRepo := repository.NewAttendanceRepository(db.DB)
	evalRepo := repository.NewEvaluationRepository(db.DB)
	contribRepo := repository.NewContributionRepository(db.DB)
	weightRepo := repository.NewWeightRepository(db.DB)
	settingsRepo := repository.NewSettingsRepository(db.DB)
	auditRepo := repository.NewAuditRepository(db.DB)
	diaryRepo := repository.NewDiaryRepository(db.DB)

	// Initialize services
	authService := auth.NewService(&cfg.JWT)
	auditService := service.NewAuditService(auditRepo)
	adminService := service.NewAdminService(settingsRepo, weightRepo, authService, auditService)
	teamService := service.NewTeamService(teamRepo, candidateRepo, auditService)
	evalService := service.NewEvaluationService(evalRepo, contribRepo, teamRepo, sessionRepo, weightRepo, auditService)
	scoringService := service.NewScoringService(evalRepo, weightRepo, contribRepo, candidateRepo, teamRepo, attendanceRepo, auditService)
	exportService := service.NewExportService(scoringService, auditService)
	dashboardService := service.NewDashboardService(candidateRepo, teamRepo, evalRepo, settingsRepo)

	// Seed the admin credential on first start
	if err := adminService.EnsureAdminPIN(DefaultAdminPIN); err != nil {
		slog.Error("Failed to seed admin credential", "error", err)
		os.Exit(1)
	}

	// Initialize middleware
	authMw := middleware.NewAuthMiddleware(authService)
	lockdownMw := middleware.NewLockdownMiddleware(settingsRepo)
	corsMw := middleware.NewCORSMiddleware(&cfg.CORS)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit)

	// Initialize handlers
	candidateHandler := handlers.NewCandidateHandler(candidateRepo, auditService)
	teamHandler := handlers.NewTeamHandler(teamRepo, teamService)
	sessionHandler := handlers.NewSessionHandler(sessionRepo, auditService)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceRepo, auditService)
	evaluationHandler := handlers.NewEvaluationHandler(evalService)
	scoringHandler := handlers.NewScoringHandler(scoringService, cfg.Ranking.ApprovedCount, cfg.Ranking.WaitlistCount)
	exportHandler := handlers.NewExportHandler(exportService, cfg.Ranking.ApprovedCount, cfg.Ranking.WaitlistCount)
	adminHandler := handlers.NewAdminHandler(adminService, auditRepo)
	diaryHandler := handlers.NewDiaryHandler(diaryRepo, auditService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// admin wraps a handler with admin authentication
	admin := func(h http.HandlerFunc) http.Handler {
		return authMw.RequireAdmin(http.HandlerFunc(h))
	}
	// locked wraps a mutating handler with admin authentication and the
	// process-status gate: while the process is ENCERRADO it returns 423
	locked := func(h http.HandlerFunc) http.Handler {
		return authMw.RequireAdmin(lockdownMw.RequireOpen(http.HandlerFunc(h)))
	}

	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("POST /api/v1/admin/login", adminHandler.Login)
	mux.HandleFunc("GET /api/v1/admin/process-status", adminHandler.GetProcessStatus)

	// Read routes
	mux.HandleFunc("GET /api/v1/candidates", candidateHandler.List)
	mux.HandleFunc("GET /api/v1/candidates/{id}", candidateHandler.Get)
	mux.HandleFunc("GET /api/v1/teams", teamHandler.List)
	mux.HandleFunc("GET /api/v1/teams/{id}", teamHandler.Get)
	mux.HandleFunc("GET /api/v1/teams/{id}/members", teamHandler.Members)
	mux.HandleFunc("GET /api/v1/teams/{id}/diary", diaryHandler.ListEntries)
	mux.HandleFunc("GET /api/v1/teams/{id}/attachments", diaryHandler.ListAttachments)
	mux.HandleFunc("GET /api/v1/sessions", sessionHandler.List)
	mux.HandleFunc("GET /api/v1/attendance", attendanceHandler.List)
	mux.HandleFunc("GET /api/v1/dashboard/cards", dashboardHandler.Cards)
	mux.HandleFunc("GET /api/v1/dashboard/stage-averages", dashboardHandler.StageAverages)
	mux.HandleFunc("GET /api/v1/dashboard/team-averages", dashboardHandler.TeamAverages)

	// Candidate management (admin, blocked while the process is closed)
	mux.Handle("POST /api/v1/candidates", locked(candidateHandler.Create))
	mux.Handle("PUT /api/v1/candidates/{id}", locked(candidateHandler.Update))
	mux.Handle("DELETE /api/v1/candidates/{id}", locked(candidateHandler.Delete))

	// Team management
	mux.Handle("POST /api/v1/teams", locked(teamHandler.Create))
	mux.Handle("PUT /api/v1/teams/{id}", locked(teamHandler.Update))
	mux.Handle("DELETE /api/v1/teams/{id}", locked(teamHandler.Delete))
	mux.Handle("POST /api/v1/teams/{id}/members/{candidateId}", locked(teamHandler.AddMember))
	mux.Handle("DELETE /api/v1/teams/{id}/members/{candidateId}", locked(teamHandler.RemoveMember))
	mux.Handle("POST /api/v1/teams/auto-assign", locked(teamHandler.AutoAssign))

	// Training sessions and attendance
	mux.Handle("POST /api/v1/sessions", locked(sessionHandler.Create))
	mux.Handle("PUT /api/v1/sessions/{id}", locked(sessionHandler.Update))
	mux.Handle("DELETE /api/v1/sessions/{id}", locked(sessionHandler.Delete))
	mux.Handle("POST /api/v1/attendance", locked(attendanceHandler.Create))
	mux.Handle("PUT /api/v1/attendance/{id}", locked(attendanceHandler.Update))
	mux.Handle("DELETE /api/v1/attendance/{id}", locked(attendanceHandler.Delete))

	// Evaluations and contributions
	mux.Handle("GET /api/v1/evaluations", admin(evaluationHandler.List))
	mux.Handle("GET /api/v1/evaluations/{id}", admin(evaluationHandler.Get))
	mux.Handle("POST /api/v1/evaluations", locked(evaluationHandler.Create))
	mux.Handle("PUT /api/v1/evaluations/{id}", locked(evaluationHandler.Update))
	mux.Handle("DELETE /api/v1/evaluations/{id}", locked(evaluationHandler.Delete))
	mux.Handle("POST /api/v1/evaluations/{id}/deactivate", locked(evaluationHandler.Deactivate))
	mux.Handle("POST /api/v1/evaluations/{id}/reactivate", locked(evaluationHandler.Reactivate))
	mux.Handle("GET /api/v1/evaluations/{id}/contributions", admin(evaluationHandler.Contributions))
	mux.Handle("PUT /api/v1/evaluations/{id}/contributions", locked(evaluationHandler.SaveContributions))

	// Scoring and ranking
	mux.Handle("POST /api/v1/scoring/recompute", locked(scoringHandler.Recompute))
	mux.Handle("POST /api/v1/scoring/evaluations/{id}/override", locked(scoringHandler.Override))
	mux.Handle("GET /api/v1/scoring/teams", admin(scoringHandler.TeamSummary))
	mux.Handle("GET /api/v1/scoring/members", admin(scoringHandler.MemberScores))
	mux.Handle("GET /api/v1/scoring/ranking", admin(scoringHandler.Ranking))

	// Exports
	mux.Handle("GET /api/v1/exports/ranking", admin(exportHandler.Ranking))
	mux.Handle("GET /api/v1/exports/final-result", admin(exportHandler.FinalResult))

	// Diary
	mux.Handle("POST /api/v1/teams/{id}/diary", locked(diaryHandler.CreateEntry))
	mux.Handle("PUT /api/v1/diary/{id}", locked(diaryHandler.UpdateEntry))
	mux.Handle("DELETE /api/v1/diary/{id}", locked(diaryHandler.DeleteEntry))
	mux.Handle("POST /api/v1/attachments", locked(diaryHandler.CreateAttachment))
	mux.Handle("DELETE /api/v1/attachments/{id}", locked(diaryHandler.DeleteAttachment))

	// Admin configuration. The process-status toggle is never gated by
	// the lockdown, otherwise a closed process could not be reopened.
	mux.Handle("PUT /api/v1/admin/process-status", admin(adminHandler.SetProcessStatus))
	mux.Handle("PUT /api/v1/admin/pin", admin(adminHandler.ChangePIN))
	mux.Handle("GET /api/v1/admin/weights", admin(adminHandler.ListWeights))
	mux.Handle("PUT /api/v1/admin/weights", locked(adminHandler.SetWeight))
	mux.Handle("GET /api/v1/admin/audit-logs", admin(adminHandler.ListAuditLogs))

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.HealthCheck(); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, err := w.Write([]byte(`{"status":"unhealthy","database":"error"}`))
			if err != nil {
				slog.Error("Failed to write health check response", "error", err)
				return
			}
			return
		}
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte(`{"status":"healthy","version":"` + cfg.App.Version + `"}`))
		if err != nil {
			slog.Error("Failed to write health check response", "error", err)
			return
		}
	})

	// Swagger documentation
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Apply global middleware
	handler := middleware.LoggingMiddleware(
		middleware.SecurityHeaders(
			corsMw.Handler(
				rateLimiter.Limit(mux),
			),
		),
	)

	// Create server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.TimeoutRead,
		WriteTimeout: cfg.Server.TimeoutWrite,
		IdleTimeout:  cfg.Server.TimeoutIdle,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server starting", "address", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Server shutting down...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped")
}
