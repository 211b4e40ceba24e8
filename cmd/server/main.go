package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/codepulse/codepulse/internal/handlers"
	"github.com/codepulse/codepulse/internal/middleware"
	"github.com/codepulse/codepulse/internal/repositories"
	"github.com/codepulse/codepulse/internal/services"
	"github.com/codepulse/codepulse/internal/workers"
	"github.com/codepulse/codepulse/pkg/cache"
	"github.com/codepulse/codepulse/pkg/config"
	"github.com/codepulse/codepulse/pkg/database"
	"github.com/gin-gonic/gin"
)

func main() {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	if err := database.Init(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(database.DB)
	classRepo := repositories.NewClassRepository(database.DB)
	studentRepo := repositories.NewStudentRepository(database.DB)
	assignmentRepo := repositories.NewAssignmentRepository(database.DB)
	metricsRepo := repositories.NewMetricsRepository(database.DB)
	jobRepo := repositories.NewJobRepository(database.DB)

	// Initialize services
	syncCfg := config.AppConfig.Sync
	userService := services.NewUserService(userRepo)
	classService := services.NewClassService(classRepo)
	studentService := services.NewStudentService(studentRepo, metricsRepo)
	assignmentService := services.NewAssignmentService(assignmentRepo, classRepo)
	jobService := services.NewJobService(jobRepo)
	reportService := services.NewReportService(studentRepo, metricsRepo)
	metricsService := services.NewMetricsService(services.DefaultMetricsConfig())
	githubSyncService := services.NewGitHubSyncService(syncCfg.BatchSize, time.Duration(syncCfg.BatchDelaySecs)*time.Second)
	leetcodeService := services.NewLeetCodeService(config.AppConfig.LeetCode.BaseURL)
	schedulerService := services.NewSchedulerService(studentRepo, jobService, syncCfg.SchedulerHour)

	// In-process cache for computed metrics responses
	metricsCache := cache.New()
	cacheTTL := time.Duration(syncCfg.CacheTTLHours) * time.Hour

	// Initialize worker manager
	workerManager := workers.NewWorkerManager(
		jobRepo, studentRepo, metricsRepo,
		githubSyncService, leetcodeService, metricsService,
		config.AppConfig.GitHub.Token,
	)

	// Initialize router
	router := gin.Default()

	// Apply middleware
	router.Use(middleware.SessionMiddleware())

	// Setup routes
	setupRoutes(router, userService, classService, studentService, assignmentService, jobService, reportService, metricsRepo, metricsCache, cacheTTL)

	// Start workers and scheduler
	if err := workerManager.StartAll(); err != nil {
		log.Fatalf("Failed to start workers: %v", err)
	}
	defer workerManager.StopAll()
	schedulerService.StartScheduler()

	// Setup server
	server := &http.Server{
		Addr:         ":" + config.AppConfig.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(config.AppConfig.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(config.AppConfig.Server.WriteTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", config.AppConfig.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	log.Println("Server stopped")
}

func setupRoutes(
	router *gin.Engine,
	userService *services.UserService,
	classService *services.ClassService,
	studentService *services.StudentService,
	assignmentService *services.AssignmentService,
	jobService *services.JobService,
	reportService *services.ReportService,
	metricsRepo *repositories.MetricsRepository,
	metricsCache *cache.Cache,
	cacheTTL time.Duration,
) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	classHandler := handlers.NewClassHandler(classService, studentService, reportService, jobService)
	studentHandler := handlers.NewStudentHandler(studentService, jobService, metricsRepo, metricsCache, cacheTTL)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService)
	healthHandler := handlers.NewHealthHandler()

	// Auth routes
	router.GET("/auth/github", authHandler.GitHubLogin)
	router.GET("/auth/github/callback", authHandler.GitHubCallback)
	router.GET("/auth/me", authHandler.Me)
	router.POST("/auth/logout", authHandler.Logout)

	// Protected API routes
	api := router.Group("/api")
	api.Use(middleware.AuthRequired())
	{
		api.POST("/classes", classHandler.CreateClass)
		api.GET("/classes", classHandler.ListClasses)
		api.GET("/classes/:id", classHandler.GetClass)
		api.PUT("/classes/:id", classHandler.UpdateClass)
		api.DELETE("/classes/:id", classHandler.DeleteClass)
		api.GET("/classes/:id/summary", classHandler.GetClassSummary)
		api.POST("/classes/:id/sync", classHandler.SyncClass)
		api.GET("/classes/:id/export", classHandler.ExportClass)

		api.POST("/students", studentHandler.CreateStudent)
		api.GET("/students", studentHandler.ListStudents)
		api.GET("/students/:id", studentHandler.GetStudent)
		api.PUT("/students/:id", studentHandler.UpdateStudent)
		api.DELETE("/students/:id", studentHandler.DeleteStudent)
		api.POST("/students/:id/sync", studentHandler.SyncStudent)
		api.GET("/students/:id/metrics", studentHandler.GetStudentMetrics)
		api.GET("/students/:id/jobs", studentHandler.GetStudentJobs)

		api.POST("/assignments", assignmentHandler.CreateAssignment)
		api.GET("/assignments", assignmentHandler.ListAssignments)
		api.GET("/assignments/:id", assignmentHandler.GetAssignment)
		api.PUT("/assignments/:id", assignmentHandler.UpdateAssignment)
		api.DELETE("/assignments/:id", assignmentHandler.DeleteAssignment)
	}

	// Health check endpoint
	router.GET("/health", healthHandler.HealthCheck)
}
