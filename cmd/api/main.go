package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hireranker-backend/config"
	v1 "hireranker-backend/internal/delivery/http/v1"
	"hireranker-backend/internal/repository/postgres"
	"hireranker-backend/internal/scoring"
	"hireranker-backend/internal/usecase"
	"hireranker-backend/pkg/audit"
	"hireranker-backend/pkg/database"
	"hireranker-backend/pkg/logger"
	"hireranker-backend/pkg/redis"

	"github.com/gin-gonic/gin"
)

// @title           HireRanker API
// @version         1.0
// @description     Scores and ranks job applicants against per-position reference profiles.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting hireranker backend", "port", cfg.Port, "env", cfg.AppEnv)
	auditLog := audit.Init("hireranker-backend", cfg.AppEnv)
	defer auditLog.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// 3. Setup Scoring Engine
	catalog, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		logger.Log.Error("Failed to load position catalog", "path", cfg.CatalogPath, "error", err)
		os.Exit(1)
	}
	engineCfg := scoring.DefaultConfig()
	engineCfg.SimilarityThreshold = cfg.ScoringSimilarityThreshold
	engineCfg.ApplyMultipliers = cfg.ScoringApplyMultipliers
	engine, err := scoring.NewEngine(catalog, engineCfg)
	if err != nil {
		logger.Log.Error("Invalid scoring configuration", "error", err)
		os.Exit(1)
	}
	logger.Log.Info("Scoring engine ready", "positions", len(catalog.Positions()),
		"similarity_threshold", engineCfg.SimilarityThreshold, "multipliers", engineCfg.ApplyMultipliers)

	// 4. Setup Database
	ctx := context.Background()
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl, database.PoolConfig{
		MaxConns: int32(cfg.DBMaxConns),
		MinConns: int32(cfg.DBMinConns),
	})
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 5. Setup Redis (optional, rate limiting falls back to memory)
	var redisCheck func(context.Context) error
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
		} else {
			defer redis.Close()
			redisCheck = redis.HealthCheck
		}
	}

	// 6. Setup Repositories
	rankingRepo := postgres.NewRankingRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)

	// 7. Setup UseCases
	rankingUC := usecase.NewRankingUsecase(rankingRepo, catalog, auditLog)
	scoringUC := usecase.NewScoringUsecase(rankingRepo, applicationRepo, engine, auditLog)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, rankingRepo, scoringUC, auditLog)
	catalogUC := usecase.NewCatalogUsecase(engine)
	exportUC := usecase.NewExportUsecase(rankingRepo, applicationRepo)
	healthUC := usecase.NewHealthUsecase(dbPool, redisCheck)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		RankingUC:     rankingUC,
		ApplicationUC: applicationUC,
		ScoringUC:     scoringUC,
		CatalogUC:     catalogUC,
		ExportUC:      exportUC,
		HealthUC:      healthUC,
		Catalog:       catalog,
		Config:        cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

func loadCatalog(path string) (*scoring.Catalog, error) {
	if path == "" {
		return scoring.DefaultCatalog()
	}
	return scoring.LoadCatalogFile(path)
}
