package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	migrate "github.com/rubenv/sql-migrate"
	"gorm.io/gorm"

	_ "github.com/johnquangdev/call-analyzer/docs"
	pkgvalidator "github.com/johnquangdev/call-analyzer/pkg/validator"

	"github.com/johnquangdev/call-analyzer/internal/adapter/handler"
	"github.com/johnquangdev/call-analyzer/internal/adapter/repository"
	"github.com/johnquangdev/call-analyzer/internal/infrastructure/cache"
	"github.com/johnquangdev/call-analyzer/internal/infrastructure/database"
	"github.com/johnquangdev/call-analyzer/internal/infrastructure/storage"
	"github.com/johnquangdev/call-analyzer/internal/usecase/call"
	engine "github.com/johnquangdev/call-analyzer/internal/usecase/metrics"
	"github.com/johnquangdev/call-analyzer/internal/usecase/sentiment"
	pkgai "github.com/johnquangdev/call-analyzer/pkg/ai"
	"github.com/johnquangdev/call-analyzer/pkg/config"
	"github.com/johnquangdev/call-analyzer/pkg/logger"
)

// @title           Call Analyzer API
// @version         1.0
// @description     Sales call analysis: transcription, sentiment, talk-time ratio, questions, longest monologue and coaching insight

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.Log, cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zl.Sync()

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			zl.Info("http.request",
				zap.String("request_id", v.RequestID),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID},
	}))

	// Uploads above this are rejected before reaching the handler
	e.Use(middleware.BodyLimit(cfg.Upload.MaxSize))

	zl.Info("🔧 Initializing dependencies...")
	healthChecks := map[string]handler.HealthCheck{}
	deps := call.Deps{Logger: zl}

	// Database is optional; without it analyses live in the cache only
	var db *gorm.DB
	if cfg.Database.Enabled {
		zl.Info("📦 Connecting to database...")
		db, err = database.NewPostgresDB(cfg, zl)
		if err != nil {
			zl.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer database.CloseDB(db)

		// Production deployments apply migrations with callctl migrate
		if cfg.Database.AutoMigrate {
			if cfg.IsProduction() {
				zl.Fatal("DB_AUTO_MIGRATE is enabled in production. Run callctl migrate instead.")
			}
			n, err := database.Migrate(db, database.DefaultMigrationsDir, migrate.Up)
			if err != nil {
				zl.Fatal("Failed to run migrations", zap.Error(err))
			}
			zl.Info("🔄 Migrations applied", zap.Int("count", n))
		}

		deps.Repo = repository.NewAnalysisRepository(db)
		healthChecks["database"] = func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}

	// Cache: Redis when enabled, in-process otherwise
	if cfg.Redis.Enabled {
		zl.Info("📦 Connecting to Redis...")
		redisStore, err := cache.NewRedisClient(cfg)
		if err != nil {
			zl.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisStore.Close()
		deps.Cache = redisStore
		healthChecks["redis"] = redisStore.Ping
	} else {
		memStore := cache.NewMemoryStore()
		defer memStore.Close()
		deps.Cache = memStore
	}

	// Audio archive
	if cfg.Storage.Enabled {
		zl.Info("🗄️  Connecting to object storage...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		minioClient, err := storage.NewMinIOClient(ctx, &cfg.Storage)
		cancel()
		if err != nil {
			zl.Fatal("Failed to initialize storage", zap.Error(err))
		}
		deps.Storage = minioClient
		healthChecks["storage"] = minioClient.Ping
	}

	zl.Info("🤖 Initializing AI components...",
		zap.String("transcriber", cfg.Transcriber.Provider),
		zap.String("sentiment", cfg.Sentiment.Provider),
	)
	deps.Transcriber = newTranscriber(cfg)
	deps.Sentiment = sentiment.NewAnalyzer(newClassifier(cfg), sentiment.Options{
		MaxChars:    cfg.Sentiment.MaxChars,
		Concurrency: cfg.Sentiment.Concurrency,
	}, zl)
	deps.Engine = engine.NewEngine(engine.Config{
		GapThreshold:       cfg.Metrics.GapThreshold,
		DominanceThreshold: cfg.Metrics.DominanceThreshold,
		MinQuestions:       cfg.Metrics.MinQuestions,
	})

	callService := call.NewCallService(deps, call.Options{
		TempDir:             cfg.Upload.TempDir,
		Extensions:          cfg.Upload.Extensions,
		CacheTTL:            cfg.Redis.TTL,
		RetryMaxElapsed:     cfg.Transcriber.MaxRetry,
		SentimentMaxElapsed: cfg.Sentiment.MaxRetry,
	})
	callHandler := handler.NewCallHandler(callService, zl)

	zl.Info("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, callHandler, healthChecks)
	router.Setup(e)

	// Start server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	go func() {
		zl.Info("🚀 Starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment),
		)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			zl.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	zl.Info("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		zl.Error("❌ Server forced to shutdown", zap.Error(err))
		return
	}

	zl.Info("✅ Server stopped gracefully")
}

// newTranscriber picks the ASR provider. AssemblyAI is built on first use.
func newTranscriber(cfg *config.Config) pkgai.Transcriber {
	if cfg.Transcriber.Provider == config.TranscriberAssemblyAI {
		return pkgai.NewLazyTranscriber(func() (pkgai.Transcriber, error) {
			c, err := pkgai.NewAssemblyAIClient(&cfg.Assembly)
			if err != nil {
				return nil, err
			}
			return c, nil
		})
	}
	return pkgai.NewWhisperClient(&cfg.Transcriber)
}

func newClassifier(cfg *config.Config) pkgai.Classifier {
	if cfg.Sentiment.Provider == config.SentimentGroq {
		return pkgai.NewGroqClient(&cfg.Groq)
	}
	return pkgai.NewSentimentClient(&cfg.Sentiment)
}
