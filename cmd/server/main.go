package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"funil.app/crm/common/id"
	"funil.app/crm/common/llm"
	"funil.app/crm/common/logger"
	"funil.app/crm/common/otel"
	"funil.app/crm/common/retry"
	"funil.app/crm/core/config"
	"funil.app/crm/core/db"
	"funil.app/crm/internal/http/middleware"
	httprouter "funil.app/crm/internal/http/router"
	"funil.app/crm/internal/mailer"
	"funil.app/crm/internal/outreach"
	"funil.app/crm/internal/queue"
	"funil.app/crm/internal/service"
	"funil.app/crm/internal/storage"
	"funil.app/crm/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeServer)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "funil api starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	redisOpts, err := redis.ParseURL(cfg.Pipeline.RedisURL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	slog.InfoContext(ctx, "redis connected", "stream", cfg.Pipeline.RedisStream)

	taskProducer := queue.NewRedisProducer(redisClient, cfg.Pipeline.RedisStream, nil)
	defer taskProducer.Close()

	ext := service.Externals{Enqueuer: taskProducer}

	// Nil clients must stay untyped nil inside the interfaces.
	if m := mailer.New(cfg.Mail, nil); m != nil {
		ext.Mailer = m
	} else {
		slog.WarnContext(ctx, "mail delivery disabled; invite links are returned to the inviter only")
	}
	if s := storage.New(cfg.Storage, nil); s != nil {
		ext.Uploader = s
	} else {
		slog.WarnContext(ctx, "object storage disabled; avatar and logo uploads will be skipped")
	}

	if cfg.OutreachLLM.Enabled() {
		client, err := llm.New(llm.Config{
			Provider:  cfg.OutreachLLM.Provider,
			APIKey:    cfg.OutreachLLM.APIKey,
			BaseURL:   cfg.OutreachLLM.BaseURL,
			Model:     cfg.OutreachLLM.Model,
			MaxTokens: cfg.OutreachLLM.MaxTokens,
		})
		if err != nil {
			slog.ErrorContext(ctx, "failed to create outreach llm client", "error", err)
			os.Exit(1)
		}
		ext.Generator = outreach.NewOrchestrator(client, retry.Policy{
			MaxAttempts: cfg.Outreach.MaxAttempts,
			BaseDelay:   cfg.Outreach.RetryBaseDelay,
		})
		slog.InfoContext(ctx, "outreach generation enabled", "provider", cfg.OutreachLLM.Provider, "model", client.Model())
	} else {
		slog.WarnContext(ctx, "outreach generation disabled (no api key configured)")
	}

	stores := store.NewStores(database.Queries())
	services := service.NewServices(stores, service.NewTxRunner(database), cfg, ext)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Synchronous generation can take up to the outreach request timeout.
		WriteTimeout: cfg.Outreach.RequestTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, services *service.Services) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	httprouter.SetupRoutes(router, services, httprouter.RouterConfig{
		IsProduction: cfg.IsProduction(),
	})

	return router
}

const banner = `
███████╗██╗   ██╗███╗   ██╗██╗██╗          █████╗ ██████╗ ██╗
██╔════╝██║   ██║████╗  ██║██║██║         ██╔══██╗██╔══██╗██║
█████╗  ██║   ██║██╔██╗ ██║██║██║         ███████║██████╔╝██║
██╔══╝  ██║   ██║██║╚██╗██║██║██║         ██╔══██║██╔═══╝ ██║
██║     ╚██████╔╝██║ ╚████║██║███████╗    ██║  ██║██║     ██║
╚═╝      ╚═════╝ ╚═╝  ╚═══╝╚═╝╚══════╝    ╚═╝  ╚═╝╚═╝     ╚═╝
`
