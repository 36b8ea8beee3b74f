package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"

	"tutorstack.app/api/common/id"
	"tutorstack.app/api/common/logger"
	"tutorstack.app/api/common/otel"
	"tutorstack.app/api/core/config"
	"tutorstack.app/api/core/db"
	"tutorstack.app/api/internal/queue"
	"tutorstack.app/api/internal/service"
	"tutorstack.app/api/internal/storage"
	"tutorstack.app/api/internal/storage/local"
	"tutorstack.app/api/internal/storage/s3"
	"tutorstack.app/api/internal/store"
	"tutorstack.app/api/internal/worker"
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

	slog.InfoContext(ctx, "tutorstack worker starting",
		"env", cfg.Env,
		"consumer_group", cfg.Cleanup.Group,
		"consumer_name", cfg.Cleanup.Consumer)

	// Use a different snowflake node ID than the server
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

	redisOpts, err := redis.ParseURL(cfg.Cleanup.RedisURL)
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
	slog.InfoContext(ctx, "redis connected", "stream", cfg.Cleanup.Stream)

	blobs, err := newBlobStore(ctx, cfg.Storage)
	if err != nil {
		slog.ErrorContext(ctx, "failed to initialize blob storage", "error", err)
		os.Exit(1)
	}
	slog.InfoContext(ctx, "blob storage initialized", "backend", cfg.Storage.Backend)

	consumer, err := queue.NewRedisConsumer(redisClient, queue.ConsumerConfig{
		Stream:       cfg.Cleanup.Stream,
		Group:        cfg.Cleanup.Group,
		Consumer:     cfg.Cleanup.Consumer,
		DLQStream:    cfg.Cleanup.DLQStream,
		BatchSize:    cfg.Cleanup.BatchSize,
		Block:        cfg.Cleanup.Block,
		MaxAttempts:  cfg.Cleanup.MaxAttempts,
		RequeueDelay: cfg.Cleanup.RequeueDelay,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create consumer", "error", err)
		os.Exit(1)
	}

	// The purger hard-deletes orgs, which enqueues follow-up cleanup tasks,
	// so the worker needs its own producer on the same stream.
	cleanupProducer := queue.NewRedisProducer(redisClient, cfg.Cleanup.Stream, slog.Default())
	defer cleanupProducer.Close()

	clock := clockwork.NewRealClock()
	stores := store.NewStores(database.Pool())
	services := service.NewServices(
		stores,
		service.NewTxRunner(database),
		cleanupProducer,
		blobs,
		clock,
	)

	w := worker.NewCleanupWorker(consumer, services.FileCleanup(), worker.Config{
		MaxAttempts: cfg.Cleanup.MaxAttempts,
	})

	reclaimer := worker.NewRedisReclaimer(redisClient, worker.RedisReclaimerConfig{
		Stream:    cfg.Cleanup.Stream,
		Group:     cfg.Cleanup.Group,
		Consumer:  cfg.Cleanup.Consumer + "-reclaimer",
		MinIdle:   5 * time.Minute,
		Interval:  1 * time.Minute,
		BatchSize: 10,
	}, consumer, w.ProcessMessage)

	purger := worker.NewPurger(services.OrgLifecycle(), worker.PurgerConfig{
		Interval:     cfg.Purge.Interval,
		ErrorBackoff: cfg.Purge.ErrorBackoff,
	}, clock)

	errCh := make(chan error, 3)
	go func() {
		errCh <- w.Run(ctx)
	}()
	go func() {
		reclaimer.Run(ctx)
		errCh <- nil
	}()
	go func() {
		purger.Run(ctx)
		errCh <- nil
	}()

	slog.InfoContext(ctx, "worker initialized and running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down worker...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// Stop the periodic loops first (quick), then the consumer loop,
	// which may be mid-message.
	reclaimer.Stop()
	purger.Stop()
	w.Stop()

	select {
	case <-shutdownCtx.Done():
		slog.WarnContext(ctx, "shutdown timeout exceeded")
	case err := <-errCh:
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

func newBlobStore(ctx context.Context, cfg config.StorageConfig) (storage.BlobStore, error) {
	switch cfg.Backend {
	case "s3":
		return s3.New(ctx, s3.Config{
			Bucket:          cfg.Bucket,
			Region:          cfg.Region,
			Endpoint:        cfg.Endpoint,
			AccessKeyID:     cfg.AccessKeyID,
			SecretAccessKey: cfg.SecretAccessKey,
			UsePathStyle:    cfg.UsePathStyle,
		})
	default:
		return local.New(cfg.LocalRoot)
	}
}

const banner = `
 _         _                 _             _                       _
| |_ _   _| |_ ___  _ __ ___| |_ __ _  ___| | __ __      __ _ __ | | __ ___  _ __
| __| | | | __/ _ \| '__/ __| __/ _' |/ __| |/ / \ \ /\ / /| '__|| |/ // _ \| '__|
| |_| |_| | || (_) | |  \__ \ || (_| | (__|   <   \ V  V / | |   |   <| (_) | |
 \__|\__,_|\__\___/|_|  |___/\__\__,_|\___|_|\_\   \_/\_/  |_|   |_|\_\\___/|_|
`
