package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/gridiron-sim/internal/api/handlers"
	"github.com/stitts-dev/gridiron-sim/internal/archetype"
	"github.com/stitts-dev/gridiron-sim/internal/engine"
	"github.com/stitts-dev/gridiron-sim/internal/services"
	"github.com/stitts-dev/gridiron-sim/internal/websocket"
	"github.com/stitts-dev/gridiron-sim/pkg/config"
	"github.com/stitts-dev/gridiron-sim/pkg/database"
	"github.com/stitts-dev/gridiron-sim/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	structuredLogger := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())
	logger.WithService("simulation-service").WithFields(logrus.Fields{
		"environment": cfg.Env,
		"port":        cfg.Port,
	}).Info("Starting Simulation Service")

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Archetype configuration is fatal on failure: the engine never starts
	// on a broken table
	archetypes, err := archetype.Load(cfg.ArchetypeDir, structuredLogger)
	if err != nil {
		logger.WithService("simulation-service").Fatalf("Failed to load archetype config: %v", err)
	}

	orchestrator := engine.NewOrchestrator(archetypes, structuredLogger)
	batch := services.NewBatchSimulator(orchestrator, cfg.SimulationWorkers, cfg.MaxBatchGames, structuredLogger)

	// Persistence is optional: an empty DATABASE_URL runs the engine
	// in-memory only
	var db *database.DB
	var store *services.ResultStore
	if cfg.DatabaseURL != "" {
		db, err = database.NewSimulationServiceConnection(cfg.DatabaseURL, cfg.IsDevelopment())
		if err != nil {
			logger.WithService("simulation-service").Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		store = services.NewResultStore(db.DB, cfg.CircuitBreakerThreshold, logger.WithService("result-store"))
		if err := store.Migrate(); err != nil {
			logger.WithService("simulation-service").Fatalf("Failed to migrate result tables: %v", err)
		}
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.WithService("simulation-service").Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient = redis.NewClient(opt)
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.WithService("simulation-service").Warnf("Redis unavailable, caching disabled: %v", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}
	cacheService := services.NewCacheService(redisClient, time.Duration(cfg.ResultCacheExpiration)*time.Second)

	wsHub := websocket.NewHub(structuredLogger)
	go wsHub.Run()

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	simulationHandler := handlers.NewSimulationHandler(
		orchestrator,
		batch,
		store,
		cacheService,
		wsHub,
		cfg,
		structuredLogger,
	)
	healthHandler := handlers.NewHealthHandler(db, redisClient, structuredLogger)

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/games/simulate", simulationHandler.SimulateGame)
		apiV1.POST("/games/simulate/batch", simulationHandler.SimulateBatch)
		apiV1.GET("/games/:id", simulationHandler.GetGame)
	}

	// Live play-by-play feed
	router.GET("/ws/games/:id", wsHub.HandleWebSocket)

	router.GET("/health", healthHandler.GetHealth)
	router.GET("/ready", healthHandler.GetReadiness)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithService("simulation-service").Fatalf("Server failed: %v", err)
		}
	}()
	logger.WithService("simulation-service").WithField("port", cfg.Port).Info("Server listening")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.WithService("simulation-service").Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithService("simulation-service").Errorf("Forced shutdown: %v", err)
	}
}
