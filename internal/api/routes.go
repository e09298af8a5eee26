package api

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/logger"
	"alcyxob/fitness-tracker/internal/metrics"
	"alcyxob/fitness-tracker/internal/service"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RouterConfig carries everything SetupRoutes wires into the engine.
type RouterConfig struct {
	AuthService    service.AuthService
	ProgramService service.ProgramService
	Tracker        service.ProgramTracker
	Metrics        *metrics.Manager // nil disables request metrics and /metrics
	AllowedOrigins []string
	Logger         *logger.Logger
}

func SetupRoutes(router *gin.Engine, cfg RouterConfig) {
	authHandler := NewAuthHandler(cfg.AuthService, cfg.Logger)
	programHandler := NewProgramHandler(cfg.ProgramService, cfg.Logger)
	scheduleHandler := NewScheduleHandler(cfg.Tracker, cfg.Logger)
	userProgramHandler := NewUserProgramHandler(cfg.Tracker, cfg.Logger)

	if len(cfg.AllowedOrigins) > 0 {
		router.Use(cors.New(corsConfig(cfg.AllowedOrigins)))
	}
	if cfg.Metrics != nil {
		router.Use(MetricsMiddleware(cfg.Metrics))
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	authMiddleware := AuthMiddleware(cfg.AuthService)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)

		// --- Program Catalog ---
		programGroup := protected.Group("/programs")
		{
			programGroup.GET("", programHandler.ListPrograms)
			programGroup.GET("/authored", programHandler.ListAuthoredPrograms)
			programGroup.GET("/:programId", programHandler.GetProgram)
			programGroup.PATCH("/:programId", programHandler.UpdateProgram)
			programGroup.DELETE("/:programId", programHandler.DeleteProgram)
			programGroup.POST("", RoleMiddleware(domain.RoleAdmin), programHandler.CreateProgram)
			programGroup.POST("/:programId/cover-upload-url", RoleMiddleware(domain.RoleAdmin), programHandler.RequestCoverUpload)
		}

		// --- Schedule (active program and workout log) ---
		scheduleGroup := protected.Group("/schedule")
		{
			scheduleGroup.POST("/start/:programId", scheduleHandler.StartProgram)
			scheduleGroup.GET("/active", scheduleHandler.GetActiveProgram)
			scheduleGroup.GET("/status", scheduleHandler.GetScheduleStatus)
			scheduleGroup.POST("/log", scheduleHandler.LogWorkout)
			scheduleGroup.GET("/history", scheduleHandler.GetWorkoutHistory)
			scheduleGroup.POST("/complete/:programId", scheduleHandler.CompleteProgram)
		}

		// --- My Programs ---
		myProgramsGroup := protected.Group("/my-programs")
		{
			myProgramsGroup.GET("", userProgramHandler.ListMyPrograms)
			myProgramsGroup.POST("/save/:programId", userProgramHandler.ToggleSaved)
		}
	}
}

// corsConfig allows credentials only for an explicit origin list.
func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Requested-With"},
		MaxAge:       12 * time.Hour,
	}
	if slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
