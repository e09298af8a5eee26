package main

import (
	"alcyxob/fitness-tracker/internal/api"
	"alcyxob/fitness-tracker/internal/catalog"
	"alcyxob/fitness-tracker/internal/config"
	"alcyxob/fitness-tracker/internal/logger"
	"alcyxob/fitness-tracker/internal/metrics"
	"alcyxob/fitness-tracker/internal/repository"
	"alcyxob/fitness-tracker/internal/repository/memory"
	"alcyxob/fitness-tracker/internal/repository/mongo"
	"alcyxob/fitness-tracker/internal/repository/postgres"
	"alcyxob/fitness-tracker/internal/service"
	"alcyxob/fitness-tracker/internal/storage"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// stores bundles the repositories of the configured database driver.
type stores struct {
	users      repository.UserRepository
	programs   repository.ProgramRepository
	transactor repository.Transactor
	close      func() error
}

// @title Fitness Tracker API
// @version 1.0
// @description API for following training programs and logging workouts.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	configPath := "."
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// --- Configuration ---
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: could not load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: could not build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	log.Info("Starting Fitness Tracker Server...", "driver", cfg.Database.Driver, "address", cfg.Server.Address)

	// --- Database Connection ---
	st, err := openStores(cfg.Database, log)
	if err != nil {
		log.Fatal("Could not open database", "driver", cfg.Database.Driver, "error", err)
	}
	defer func() {
		if err := st.close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}()

	// --- Initialize Storage ---
	var fileStorage storage.FileStorage
	if cfg.S3.Enabled() {
		fileStorage, err = storage.NewS3Storage(context.Background(), cfg.S3, log)
		if err != nil {
			log.Fatal("Failed to initialize S3 storage", "error", err)
		}
	} else {
		log.Warn("S3 storage disabled, cover image uploads are unavailable")
	}

	// --- Metrics ---
	var m *metrics.Manager
	if cfg.Metrics.Enabled {
		m = metrics.NewProductionManager(cfg.Metrics.Namespace)
	} else {
		// services always record; nothing is exported
		m = metrics.NewTestManager()
	}

	// --- Initialize Services ---
	catalogOpts := []catalog.Option{catalog.WithCache(cfg.Cache.SizeBytes, cfg.Cache.TTL)}
	if fileStorage != nil {
		catalogOpts = append(catalogOpts, catalog.WithMedia(fileStorage))
	}
	programCatalog := catalog.New(st.programs, m, log, catalogOpts...)

	loc, err := cfg.Tracker.Location()
	if err != nil {
		log.Fatal("Invalid tracker timezone", "timezone", cfg.Tracker.Timezone, "error", err)
	}
	tracker := service.NewProgramTracker(st.transactor, programCatalog, st.users, service.SystemClock{}, service.TrackerOptions{
		Location:            loc,
		HistoryDefaultLimit: cfg.Tracker.HistoryDefaultLimit,
		HistoryMaxLimit:     cfg.Tracker.HistoryMaxLimit,
	}, m, log)
	authService := service.NewAuthService(st.users, cfg.JWT.Secret, cfg.JWT.Expiration, cfg.Auth.AdminEmails, log)
	programService := service.NewProgramService(st.programs, programCatalog, fileStorage, log)

	// --- Initialize Gin Engine ---
	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()

	routerCfg := api.RouterConfig{
		AuthService:    authService,
		ProgramService: programService,
		Tracker:        tracker,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Logger:         log,
	}
	if cfg.Metrics.Enabled {
		routerCfg.Metrics = m
	}
	api.SetupRoutes(router, routerCfg)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("Server listening", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("ListenAndServe failed", "error", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}
	log.Info("Server exiting.")
}

func openStores(cfg config.DatabaseConfig, log *logger.Logger) (*stores, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		client, err := mongo.ConnectDB(cfg.URI)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.Name)

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			_ = mongo.DisconnectDB(client)
			return nil, fmt.Errorf("ensure indexes: %w", err)
		}
		log.Info("MongoDB connected and indexes ensured", "database", cfg.Name)
		return &stores{
			users:      mongo.NewMongoUserRepository(db),
			programs:   mongo.NewMongoProgramRepository(db),
			transactor: mongo.NewTransactor(client, db),
			close:      func() error { return mongo.DisconnectDB(client) },
		}, nil

	case config.DriverPostgres:
		db, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(db); err != nil {
			_ = postgres.Close(db)
			return nil, fmt.Errorf("migrate: %w", err)
		}
		log.Info("PostgreSQL connected and migrated")
		return &stores{
			users:      postgres.NewUserRepository(db),
			programs:   postgres.NewProgramRepository(db),
			transactor: postgres.NewTransactor(db),
			close:      func() error { return postgres.Close(db) },
		}, nil

	case config.DriverMemory:
		log.Warn("Using the in-memory store, data is lost on restart")
		store := memory.NewStore()
		return &stores{
			users:      store.Users(),
			programs:   store.Programs(),
			transactor: store,
			close:      func() error { return nil },
		}, nil
	}
	return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
}
