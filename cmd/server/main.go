package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/twvotelab/recall-o-meter/internal/cache"
	"github.com/twvotelab/recall-o-meter/internal/config"
	"github.com/twvotelab/recall-o-meter/internal/database"
	apierrors "github.com/twvotelab/recall-o-meter/internal/errors"
	"github.com/twvotelab/recall-o-meter/internal/monitoring"
	"github.com/twvotelab/recall-o-meter/internal/prediction"
	"github.com/twvotelab/recall-o-meter/internal/ratelimit"
	"github.com/twvotelab/recall-o-meter/internal/types"
)

// @title Recall-o-meter API
// @version 1.0
// @description Multi-factor recall vote prediction service.
// @BasePath /api/v1
func main() {
	cfg := config.Load()

	logger := monitoring.NewLogger(parseLogLevel(cfg.LogLevel))
	slog.SetDefault(logger.Logger)

	tables, err := prediction.LoadTables(cfg.TablesPath)
	if err != nil {
		slog.Error("Failed to load reference tables", "error", err)
		os.Exit(1)
	}
	logger.TablesLogger(cfg.TablesPath, tables.Version, cfg.TablesPath != "")

	metrics := monitoring.NewMetrics()
	engine := prediction.NewEngine(tables, prediction.WithRecorder(metrics))

	db, err := database.NewDB(cfg.DataDir)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	repo := database.NewRepository(db)

	predictionCache := cache.New(cfg.CacheTTL)
	limiter := ratelimit.NewLimiter(ratelimit.Config{
		RequestsPerMin: cfg.RateLimitPerMin,
		Burst:          cfg.RateLimitBurst,
	})

	router := newRouter(cfg, engine, tables, predictionCache, db, repo, limiter, metrics, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Forced shutdown", "error", err)
	}
}

func newRouter(
	cfg config.Config,
	engine *prediction.Engine,
	tables *prediction.Tables,
	predictionCache *cache.PredictionCache,
	db *database.DB,
	repo *database.Repository,
	limiter *ratelimit.Limiter,
	metrics *monitoring.Metrics,
	logger *monitoring.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(monitoring.Middleware(metrics, logger))
	r.Use(apierrors.ErrorHandler())
	r.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		status := "healthy"
		code := http.StatusOK
		if err := db.Ping(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":         status,
			"tables_version": tables.Version,
			"uptime_seconds": time.Since(metrics.StartTime).Seconds(),
		})
	})

	r.GET("/metrics", func(c *gin.Context) {
		c.JSON(http.StatusOK, metrics.Snapshot())
	})

	r.GET("/cache/stats", func(c *gin.Context) {
		c.JSON(http.StatusOK, predictionCache.Stats())
	})

	r.GET("/pools/database", func(c *gin.Context) {
		c.JSON(http.StatusOK, db.Stats())
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(ratelimit.Middleware(limiter))

	api.POST("/predict", predictHandler(engine, predictionCache, repo, metrics, logger))

	api.GET("/history", func(c *gin.Context) {
		limit := 0
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				appErr := apierrors.NewValidationError("limit must be a non-negative integer", err)
				c.JSON(appErr.HTTPStatus, appErr)
				return
			}
			limit = n
		}
		records, err := repo.ListRecent(c.Request.Context(), limit)
		if err != nil {
			appErr := apierrors.NewInternalError("failed to load prediction history", err)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}
		c.JSON(http.StatusOK, gin.H{"predictions": records, "count": len(records)})
	})

	api.GET("/history/stats", func(c *gin.Context) {
		summary, err := repo.Summarize(c.Request.Context())
		if err != nil {
			appErr := apierrors.NewInternalError("failed to summarize prediction history", err)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}
		c.JSON(http.StatusOK, summary)
	})

	api.GET("/history/:target", func(c *gin.Context) {
		target := prediction.ParseTarget(c.Param("target"))
		record, err := repo.LatestForTarget(c.Request.Context(), target.ID)
		if err != nil {
			appErr := apierrors.NewInternalError("failed to load latest prediction", err)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}
		if record == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no prediction recorded for target", "target": target.ID})
			return
		}
		c.JSON(http.StatusOK, record)
	})

	return r
}

// predictHandler serves the engine over HTTP with a cache in front and the
// history store behind.
func predictHandler(
	engine *prediction.Engine,
	predictionCache *cache.PredictionCache,
	repo *database.Repository,
	metrics *monitoring.Metrics,
	logger *monitoring.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var req types.PredictRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			appErr := apierrors.NewValidationError("invalid request body", err)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		scenario, err := prediction.NewScenarioInput(req.ToScenario())
		if err != nil {
			appErr := apierrors.NewValidationError(err.Error(), nil)
			c.JSON(appErr.HTTPStatus, appErr)
			return
		}

		key := cache.KeyFor(scenario)
		if result, ok := predictionCache.Get(key); ok {
			metrics.IncrementCacheHit()
			logger.PredictionLogger(scenario.Target.ID, scenario.Region,
				result.PredictedTurnout, result.PredictedAgreement, result.WillPass, true, time.Since(start))
			c.JSON(http.StatusOK, types.PredictResponse{
				PredictionResult: result,
				Target:           scenario.Target,
				Region:           scenario.Region,
				CacheHit:         true,
			})
			return
		}
		metrics.IncrementCacheMiss()

		result := engine.Predict(scenario)
		metrics.IncrementPrediction()
		predictionCache.Set(key, result)

		// History writes are best effort; a storage hiccup must not fail
		// the prediction.
		if _, err := repo.Save(c.Request.Context(), scenario, result); err != nil {
			slog.Warn("Failed to persist prediction", "target", scenario.Target.ID, "error", err)
		}

		logger.PredictionLogger(scenario.Target.ID, scenario.Region,
			result.PredictedTurnout, result.PredictedAgreement, result.WillPass, false, time.Since(start))

		c.JSON(http.StatusOK, types.PredictResponse{
			PredictionResult: result,
			Target:           scenario.Target,
			Region:           scenario.Region,
			CacheHit:         false,
		})
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
