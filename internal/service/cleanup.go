package service

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"tutorstack.app/api/common/logger"
	"tutorstack.app/api/internal/queue"
)

// CleanupOrchestrator turns deletions into orphan-file cleanup work.
//
// The Collect methods run inside the deleting transaction, before the
// linking rows are removed, and return the candidate file ids. The On
// methods run after the transaction commits and hand the candidates to
// the cleanup worker through the task queue. Enqueue failures are logged
// and never surfaced: the deletion already committed and must report
// success regardless.
type CleanupOrchestrator interface {
	CollectThreadCandidates(ctx context.Context, sp StoreProvider, threadIDs []int64) ([]int64, error)
	CollectMessageCandidates(ctx context.Context, sp StoreProvider, messageIDs []int64) ([]int64, error)
	CollectReferenceCandidates(ctx context.Context, sp StoreProvider, threadID int64) ([]int64, error)

	OnThreadsDeleted(ctx context.Context, orgID int64, fileIDs []int64)
	OnMessagesDeleted(ctx context.Context, orgID int64, fileIDs []int64)
	OnReferencesDeleted(ctx context.Context, orgID int64, fileIDs []int64)
}

type cleanupOrchestrator struct {
	producer queue.Producer
}

func NewCleanupOrchestrator(producer queue.Producer) CleanupOrchestrator {
	return &cleanupOrchestrator{producer: producer}
}

// CollectThreadCandidates unions the file ids referenced by the threads'
// references with the file ids attached to the threads' messages. Message
// ids are resolved here because the caller is about to delete them.
func (o *cleanupOrchestrator) CollectThreadCandidates(ctx context.Context, sp StoreProvider, threadIDs []int64) ([]int64, error) {
	if len(threadIDs) == 0 {
		return nil, nil
	}

	refFileIDs, err := sp.References().ListDistinctFileIDsByThreadIDs(ctx, threadIDs)
	if err != nil {
		return nil, fmt.Errorf("listing reference file ids: %w", err)
	}

	messageIDs, err := sp.Messages().ListIDsByThreadIDs(ctx, threadIDs)
	if err != nil {
		return nil, fmt.Errorf("listing message ids: %w", err)
	}

	attFileIDs, err := sp.Attachments().ListDistinctFileIDsByMessageIDs(ctx, messageIDs)
	if err != nil {
		return nil, fmt.Errorf("listing attachment file ids: %w", err)
	}

	return unionIDs(refFileIDs, attFileIDs), nil
}

func (o *cleanupOrchestrator) CollectMessageCandidates(ctx context.Context, sp StoreProvider, messageIDs []int64) ([]int64, error) {
	if len(messageIDs) == 0 {
		return nil, nil
	}

	fileIDs, err := sp.Attachments().ListDistinctFileIDsByMessageIDs(ctx, messageIDs)
	if err != nil {
		return nil, fmt.Errorf("listing attachment file ids: %w", err)
	}
	return fileIDs, nil
}

func (o *cleanupOrchestrator) CollectReferenceCandidates(ctx context.Context, sp StoreProvider, threadID int64) ([]int64, error) {
	fileIDs, err := sp.References().ListDistinctFileIDsByThreadIDs(ctx, []int64{threadID})
	if err != nil {
		return nil, fmt.Errorf("listing reference file ids: %w", err)
	}
	return fileIDs, nil
}

func (o *cleanupOrchestrator) OnThreadsDeleted(ctx context.Context, orgID int64, fileIDs []int64) {
	o.enqueue(ctx, queue.TaskTypeThreadsDeleted, orgID, fileIDs)
}

func (o *cleanupOrchestrator) OnMessagesDeleted(ctx context.Context, orgID int64, fileIDs []int64) {
	o.enqueue(ctx, queue.TaskTypeMessagesDeleted, orgID, fileIDs)
}

func (o *cleanupOrchestrator) OnReferencesDeleted(ctx context.Context, orgID int64, fileIDs []int64) {
	o.enqueue(ctx, queue.TaskTypeReferencesDeleted, orgID, fileIDs)
}

func (o *cleanupOrchestrator) enqueue(ctx context.Context, taskType queue.TaskType, orgID int64, fileIDs []int64) {
	if len(fileIDs) == 0 {
		return
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		OrgID:     &orgID,
		Component: "service.cleanup_orchestrator",
	})

	task := queue.CleanupTask{
		TaskType: taskType,
		OrgID:    orgID,
		FileIDs:  fileIDs,
	}

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		traceID := sc.TraceID().String()
		task.TraceID = &traceID
	}

	if err := o.producer.Enqueue(ctx, task); err != nil {
		slog.ErrorContext(ctx, "failed to enqueue cleanup task",
			"error", err,
			"task_type", taskType,
			"file_count", len(fileIDs))
	}
}

func unionIDs(a, b []int64) []int64 {
	seen := make(map[int64]struct{}, len(a)+len(b))
	var out []int64
	for _, id := range a {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	for _, id := range b {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
