package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tutorstack.app/api/common/logger"
	"tutorstack.app/api/internal/queue"
)

// FileCleaner mirrors service.FileCleanupService - defined here to avoid
// import cycles.
type FileCleaner interface {
	CleanupCandidates(ctx context.Context, fileIDs []int64) (int, error)
}

type Config struct {
	MaxAttempts int
}

// CleanupWorker consumes cleanup tasks from the queue and drives the
// orphan detector. Tasks are at-least-once: cleanup is idempotent, so a
// redelivered task re-checks the same candidates and finds nothing left
// to do.
type CleanupWorker struct {
	consumer *queue.RedisConsumer
	cleaner  FileCleaner
	cfg      Config

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func NewCleanupWorker(consumer *queue.RedisConsumer, cleaner FileCleaner, cfg Config) *CleanupWorker {
	return &CleanupWorker{
		consumer:  consumer,
		cleaner:   cleaner,
		cfg:       cfg,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

func (w *CleanupWorker) Run(ctx context.Context) error {
	defer close(w.stoppedCh)

	slog.InfoContext(ctx, "cleanup worker started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopCh:
			slog.InfoContext(ctx, "cleanup worker stopping")
			return nil
		default:
			if err := w.processOneBatch(ctx); err != nil {
				slog.ErrorContext(ctx, "batch processing error", "error", err)
				// Brief backoff on error
				time.Sleep(time.Second)
			}
		}
	}
}

func (w *CleanupWorker) Stop() {
	close(w.stopCh)
	<-w.stoppedCh
}

func (w *CleanupWorker) processOneBatch(ctx context.Context) error {
	messages, err := w.consumer.Read(ctx)
	if err != nil {
		return fmt.Errorf("reading from stream: %w", err)
	}

	for _, msg := range messages {
		if err := w.processMessageSafe(ctx, msg); err != nil {
			slog.ErrorContext(ctx, "message processing failed",
				"error", err,
				"message_id", msg.ID,
				"org_id", msg.OrgID)
			w.handleFailedMessage(ctx, msg, err)
		}
	}

	return nil
}

func (w *CleanupWorker) processMessageSafe(ctx context.Context, msg queue.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "panic recovered in message processing",
				"panic", r,
				"message_id", msg.ID,
				"org_id", msg.OrgID)
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return w.ProcessMessage(ctx, msg)
}

// Exported so it can be reused by the reclaimer.
func (w *CleanupWorker) ProcessMessage(ctx context.Context, msg queue.Message) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		OrgID:     &msg.OrgID,
		Component: "worker.cleanup",
	})

	slog.InfoContext(ctx, "processing cleanup task",
		"message_id", msg.ID,
		"task_type", msg.TaskType,
		"candidates", len(msg.FileIDs),
		"attempt", msg.Attempt)

	cleaned, err := w.cleaner.CleanupCandidates(ctx, msg.FileIDs)
	if err != nil {
		// Partial progress is fine: the retry re-checks every candidate
		// and the ones already cleaned are simply no longer present.
		return fmt.Errorf("cleanup candidates: %w", err)
	}

	if err := w.consumer.Ack(ctx, msg); err != nil {
		// Log but don't fail - the task will be redelivered, and cleanup
		// of already-removed files is a no-op.
		slog.WarnContext(ctx, "failed to ACK message",
			"error", err,
			"message_id", msg.ID)
	}

	slog.InfoContext(ctx, "cleanup task processed",
		"message_id", msg.ID,
		"cleaned", cleaned)
	return nil
}

func (w *CleanupWorker) handleFailedMessage(ctx context.Context, msg queue.Message, err error) {
	if msg.Attempt >= w.cfg.MaxAttempts {
		slog.ErrorContext(ctx, "max attempts reached, sending to DLQ",
			"message_id", msg.ID,
			"org_id", msg.OrgID,
			"attempts", msg.Attempt)
		if dlqErr := w.consumer.SendDLQ(ctx, msg, err.Error()); dlqErr != nil {
			slog.ErrorContext(ctx, "failed to send to DLQ", "error", dlqErr)
		}
		return
	}

	slog.WarnContext(ctx, "requeuing failed message",
		"message_id", msg.ID,
		"org_id", msg.OrgID,
		"attempt", msg.Attempt)
	if requeueErr := w.consumer.Requeue(ctx, msg, err.Error()); requeueErr != nil {
		slog.ErrorContext(ctx, "failed to requeue message", "error", requeueErr)
	}
}
