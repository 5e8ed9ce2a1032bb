package main

import (
	"context"
	"fmt"
	"log/slog"
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
	"funil.app/crm/internal/outreach"
	"funil.app/crm/internal/queue"
	"funil.app/crm/internal/service"
	"funil.app/crm/internal/store"
	"funil.app/crm/internal/worker"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

func main() {
	fmt.Printf("%s\n", banner)
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeWorker)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	slog.InfoContext(ctx, "funil worker starting",
		"env", cfg.Env,
		"consumer_group", cfg.Pipeline.RedisGroup,
		"consumer_name", cfg.Pipeline.RedisConsumer)

	// Different node id than the API server.
	if err := id.Init(2); err != nil {
		slog.ErrorContext(ctx, "failed to initialize id generator", "error", err)
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

	generator := outreach.NewOrchestrator(client, retry.Policy{
		MaxAttempts: cfg.Outreach.MaxAttempts,
		BaseDelay:   cfg.Outreach.RetryBaseDelay,
	})

	stores := store.NewStores(database.Queries())
	services := service.NewServices(stores, service.NewTxRunner(database), cfg, service.Externals{
		Generator: generator,
	})

	consumer, err := queue.NewRedisConsumer(redisClient, queue.ConsumerConfig{
		Stream:       cfg.Pipeline.RedisStream,
		Group:        cfg.Pipeline.RedisGroup,
		Consumer:     cfg.Pipeline.RedisConsumer,
		DLQStream:    cfg.Pipeline.RedisDLQStream,
		BatchSize:    4,
		Block:        5 * time.Second,
		MaxAttempts:  cfg.Outreach.MaxAttempts,
		RequeueDelay: cfg.Outreach.RetryBaseDelay,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create consumer", "error", err)
		os.Exit(1)
	}

	w := worker.New(consumer, services.Outreach(), worker.Config{
		MaxAttempts: cfg.Outreach.MaxAttempts,
		TaskTimeout: cfg.Outreach.RequestTimeout,
	})

	reclaimer := worker.NewRedisReclaimer(redisClient, worker.RedisReclaimerConfig{
		Stream:        cfg.Pipeline.RedisStream,
		Group:         cfg.Pipeline.RedisGroup,
		Consumer:      cfg.Pipeline.RedisConsumer + "-reclaimer",
		MinIdle:       cfg.Outreach.RequestTimeout + time.Minute,
		Interval:      time.Minute,
		BatchSize:     10,
		MaxDeliveries: int64(cfg.Outreach.MaxAttempts) + 2,
	}, consumer, w.Handle)

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		return w.Run(gctx)
	})
	g.Go(func() error {
		reclaimer.Run(gctx)
		return nil
	})

	slog.InfoContext(ctx, "worker initialized and running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-gctx.Done():
		slog.WarnContext(ctx, "worker loop exited unexpectedly")
	}

	slog.InfoContext(ctx, "shutting down worker...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		// Stop the reclaimer first; the worker may be mid-generation.
		reclaimer.Stop()
		w.Stop()
		cancelRun()
		done <- g.Wait()
	}()

	select {
	case <-shutdownCtx.Done():
		slog.WarnContext(ctx, "shutdown timeout exceeded")
	case err := <-done:
		if err != nil {
			slog.ErrorContext(ctx, "worker error during shutdown", "error", err)
		}
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(ctx, "worker shutdown complete")
}

const banner = `
███████╗██╗   ██╗███╗   ██╗██╗██╗         ██╗    ██╗ ██████╗ ██████╗ ██╗  ██╗███████╗██████╗
██╔════╝██║   ██║████╗  ██║██║██║         ██║    ██║██╔═══██╗██╔══██╗██║ ██╔╝██╔════╝██╔══██╗
█████╗  ██║   ██║██╔██╗ ██║██║██║         ██║ █╗ ██║██║   ██║██████╔╝█████╔╝ █████╗  ██████╔╝
██╔══╝  ██║   ██║██║╚██╗██║██║██║         ██║███╗██║██║   ██║██╔══██╗██╔═██╗ ██╔══╝  ██╔══██╗
██║     ╚██████╔╝██║ ╚████║██║███████╗    ╚███████╔╝╚██████╔╝██║  ██║██║  ██╗███████╗██║  ██║
╚═╝      ╚═════╝ ╚═╝  ╚═══╝╚═╝╚══════╝     ╚══╝╚══╝  ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝
`
