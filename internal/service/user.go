package service

import (
	"context"
	"fmt"
	"log/slog"

	"tutorstack.app/api/common/id"
	"tutorstack.app/api/common/logger"
	"tutorstack.app/api/internal/model"
	"tutorstack.app/api/internal/store"
)

type UserService interface {
	Create(ctx context.Context, name, email string, primaryOrgID int64) (*model.User, error)
	Get(ctx context.Context, userID int64) (*model.User, error)

	// Delete removes the user's threads (with their messages), every
	// membership row, and the user record, then notifies the cleanup
	// orchestrator. A user who deletes their account is simply removed;
	// there is no personal-org migration on this path.
	Delete(ctx context.Context, userID int64) error
}

type userService struct {
	txRunner     TxRunner
	userStore    store.UserStore
	orchestrator CleanupOrchestrator
}

func NewUserService(txRunner TxRunner, userStore store.UserStore, orchestrator CleanupOrchestrator) UserService {
	return &userService{
		txRunner:     txRunner,
		userStore:    userStore,
		orchestrator: orchestrator,
	}
}

func (s *userService) Create(ctx context.Context, name, email string, primaryOrgID int64) (*model.User, error) {
	user := &model.User{
		ID:           id.New(),
		PrimaryOrgID: primaryOrgID,
		Name:         name,
		Email:        email,
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}

func (s *userService) Get(ctx context.Context, userID int64) (*model.User, error) {
	return s.userStore.GetByID(ctx, userID)
}

func (s *userService) Delete(ctx context.Context, userID int64) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		UserID:    &userID,
		Component: "service.user",
	})

	// The user's threads can span orgs; candidates are collected and
	// later enqueued per org so cleanup work is attributed to the org
	// that owned the threads.
	candidatesByOrg := make(map[int64][]int64)
	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		if _, err := sp.Users().GetByID(ctx, userID); err != nil {
			return err
		}

		threadsByOrg, err := sp.Threads().ListIDsByUserByOrg(ctx, userID)
		if err != nil {
			return fmt.Errorf("listing user threads: %w", err)
		}

		var allThreadIDs []int64
		for orgID, threadIDs := range threadsByOrg {
			candidates, err := s.orchestrator.CollectThreadCandidates(ctx, sp, threadIDs)
			if err != nil {
				return fmt.Errorf("collecting cleanup candidates for org %d: %w", orgID, err)
			}
			if len(candidates) > 0 {
				candidatesByOrg[orgID] = candidates
			}
			allThreadIDs = append(allThreadIDs, threadIDs...)
		}

		if err := sp.Messages().DeleteByThreadIDs(ctx, allThreadIDs); err != nil {
			return fmt.Errorf("deleting messages: %w", err)
		}
		if err := sp.Threads().DeleteByIDs(ctx, allThreadIDs); err != nil {
			return fmt.Errorf("deleting threads: %w", err)
		}
		if err := sp.OrgMembers().DeleteByUser(ctx, userID); err != nil {
			return fmt.Errorf("deleting memberships: %w", err)
		}
		if err := sp.Users().Delete(ctx, userID); err != nil {
			return fmt.Errorf("deleting user record: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	total := 0
	for orgID, candidates := range candidatesByOrg {
		s.orchestrator.OnThreadsDeleted(ctx, orgID, candidates)
		total += len(candidates)
	}

	slog.InfoContext(ctx, "user deleted", "cleanup_candidates", total)
	return nil
}
