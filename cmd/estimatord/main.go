package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/lawnquote/estimates-engine/internal/catalog"
	"github.com/lawnquote/estimates-engine/internal/common"
	"github.com/lawnquote/estimates-engine/internal/estimate"
	"github.com/lawnquote/estimates-engine/internal/export"
	llmopenai "github.com/lawnquote/estimates-engine/internal/llm/openai"
	"github.com/lawnquote/estimates-engine/internal/observability"
	"github.com/lawnquote/estimates-engine/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := catalog.OpenPool(ctx, catalog.DBConfig{
		DSN:             cfg.Database.DSN,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		DialTimeout:     cfg.Database.DialTimeout,
	}, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := catalog.HealthCheck(ctx, pool, 5*time.Second, logger); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	var cache *llmopenai.ResponseCache
	if cfg.Cache.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})
		cache = llmopenai.NewResponseCache(rdb, cfg.Cache.TTL)
		logger.Info("generator response cache enabled", "addr", cfg.Cache.RedisAddr, "ttl", cfg.Cache.TTL)
	}

	generator := llmopenai.NewClient(llmopenai.Config{
		Model:       cfg.LLM.Model,
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, cache, logger)

	materialsRepo := catalog.NewMaterialRepository(pool, logger)
	pipeline := estimate.NewPipeline(logger)
	exporter := export.NewService(logger)

	observability.Start(cfg.Server.MetricsPort)

	app := fiber.New(fiber.Config{
		ErrorHandler: server.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	handler := server.NewEstimateHandler(logger, materialsRepo, generator, pipeline, exporter)
	handler.RegisterRoutes(app)

	logger.Info("estimatord listening", "addr", cfg.Server.HTTPAddr, "metrics_port", cfg.Server.MetricsPort)
	go func() {
		if err := app.Listen(cfg.Server.HTTPAddr); err != nil {
			logger.Error("http serve error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
