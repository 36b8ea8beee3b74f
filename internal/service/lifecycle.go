package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"tutorstack.app/api/common/id"
	"tutorstack.app/api/common/logger"
	"tutorstack.app/api/internal/model"
	"tutorstack.app/api/internal/store"
)

// OrgLifecycleService owns the org state machine:
// active -> disabled -> deleted -> purged. Each transition runs in a
// single transaction; the org row is the serialization point, so a caller
// that loses a race gets ErrInvalidState rather than a double-applied
// side effect.
type OrgLifecycleService interface {
	Disable(ctx context.Context, orgID int64) (*model.Org, error)
	SoftDelete(ctx context.Context, orgID int64) (*model.Org, error)
	HardDelete(ctx context.Context, orgID int64) error
	OrgsReadyForPurge(ctx context.Context) ([]int64, error)
}

type orgLifecycleService struct {
	txRunner     TxRunner
	orgStore     store.OrgStore
	orchestrator CleanupOrchestrator
	clock        clockwork.Clock
}

func NewOrgLifecycleService(
	txRunner TxRunner,
	orgStore store.OrgStore,
	orchestrator CleanupOrchestrator,
	clock clockwork.Clock,
) OrgLifecycleService {
	return &orgLifecycleService{
		txRunner:     txRunner,
		orgStore:     orgStore,
		orchestrator: orchestrator,
		clock:        clock,
	}
}

func (s *orgLifecycleService) Disable(ctx context.Context, orgID int64) (*model.Org, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		OrgID:     &orgID,
		Component: "service.org_lifecycle",
	})

	var updated *model.Org
	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		org, err := sp.Orgs().GetByID(ctx, orgID)
		if err != nil {
			return err
		}

		if org.LifecycleStatus != model.OrgStatusActive {
			return fmt.Errorf("disabling org in status %q: %w", org.LifecycleStatus, ErrInvalidState)
		}

		now := s.clock.Now()
		org.LifecycleStatus = model.OrgStatusDisabled
		org.DisabledAt = &now

		if err := sp.Orgs().UpdateLifecycle(ctx, org, model.OrgStatusActive); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("org left status %q concurrently: %w", model.OrgStatusActive, ErrInvalidState)
			}
			return fmt.Errorf("updating org lifecycle: %w", err)
		}
		updated = org
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "org disabled")
	return updated, nil
}

// SoftDelete marks the org deleted and schedules its purge. Users whose
// primary org was this one are repointed to a personal org (created on
// demand), then every membership row of the org is removed, all in the
// same transaction.
func (s *orgLifecycleService) SoftDelete(ctx context.Context, orgID int64) (*model.Org, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		OrgID:     &orgID,
		Component: "service.org_lifecycle",
	})

	var updated *model.Org
	var migrated int
	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		org, err := sp.Orgs().GetByID(ctx, orgID)
		if err != nil {
			return err
		}

		if org.LifecycleStatus != model.OrgStatusActive && org.LifecycleStatus != model.OrgStatusDisabled {
			return fmt.Errorf("soft-deleting org in status %q: %w", org.LifecycleStatus, ErrInvalidState)
		}

		from := org.LifecycleStatus
		now := s.clock.Now()
		purgeAt := now.Add(time.Duration(org.RetentionDays) * 24 * time.Hour)
		org.LifecycleStatus = model.OrgStatusDeleted
		org.DeletedAt = &now
		org.PurgeScheduledAt = &purgeAt

		if err := sp.Orgs().UpdateLifecycle(ctx, org, from); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("org left status %q concurrently: %w", from, ErrInvalidState)
			}
			return fmt.Errorf("updating org lifecycle: %w", err)
		}

		users, err := sp.Users().ListByPrimaryOrg(ctx, orgID)
		if err != nil {
			return fmt.Errorf("listing users with primary org: %w", err)
		}

		for _, user := range users {
			personal, err := s.ensurePersonalOrg(ctx, sp, &user)
			if err != nil {
				return fmt.Errorf("ensuring personal org for user %d: %w", user.ID, err)
			}
			if err := sp.Users().UpdatePrimaryOrg(ctx, user.ID, personal.ID, now); err != nil {
				return fmt.Errorf("repointing primary org for user %d: %w", user.ID, err)
			}
			migrated++
		}

		if err := sp.OrgMembers().DeleteByOrg(ctx, orgID); err != nil {
			return fmt.Errorf("deleting org memberships: %w", err)
		}

		updated = org
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "org soft-deleted",
		"purge_scheduled_at", updated.PurgeScheduledAt,
		"users_migrated", migrated)
	return updated, nil
}

// HardDelete purges the org: messages, threads, folders, memberships,
// then the org record itself. Candidate file ids are captured before the
// rows go so the cleanup worker can remove orphaned blobs afterwards.
func (s *orgLifecycleService) HardDelete(ctx context.Context, orgID int64) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		OrgID:     &orgID,
		Component: "service.org_lifecycle",
	})

	var candidates []int64
	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		org, err := sp.Orgs().GetByID(ctx, orgID)
		if err != nil {
			return err
		}

		if org.LifecycleStatus != model.OrgStatusDeleted {
			return fmt.Errorf("hard-deleting org in status %q: %w", org.LifecycleStatus, ErrInvalidState)
		}

		now := s.clock.Now()
		if org.PurgeScheduledAt != nil && org.PurgeScheduledAt.After(now) {
			return fmt.Errorf("purge scheduled at %s: %w", org.PurgeScheduledAt, ErrRetentionNotExpired)
		}

		threadIDs, err := sp.Threads().ListIDsByOrg(ctx, orgID)
		if err != nil {
			return fmt.Errorf("listing org threads: %w", err)
		}

		candidates, err = s.orchestrator.CollectThreadCandidates(ctx, sp, threadIDs)
		if err != nil {
			return fmt.Errorf("collecting cleanup candidates: %w", err)
		}

		if err := sp.Messages().DeleteByThreadIDs(ctx, threadIDs); err != nil {
			return fmt.Errorf("deleting messages: %w", err)
		}
		if err := sp.Threads().DeleteByIDs(ctx, threadIDs); err != nil {
			return fmt.Errorf("deleting threads: %w", err)
		}
		if err := sp.Folders().DeleteByOrg(ctx, orgID); err != nil {
			return fmt.Errorf("deleting folders: %w", err)
		}
		if err := sp.OrgMembers().DeleteByOrg(ctx, orgID); err != nil {
			return fmt.Errorf("deleting org memberships: %w", err)
		}
		if err := sp.Orgs().Delete(ctx, orgID); err != nil {
			return fmt.Errorf("deleting org record: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.orchestrator.OnThreadsDeleted(ctx, orgID, candidates)

	slog.InfoContext(ctx, "org purged", "cleanup_candidates", len(candidates))
	return nil
}

func (s *orgLifecycleService) OrgsReadyForPurge(ctx context.Context) ([]int64, error) {
	return s.orgStore.ListIDsReadyForPurge(ctx, s.clock.Now())
}

// ensurePersonalOrg returns the user's personal org, creating it if the
// user does not have one. The name and slug are deterministic so repeated
// migrations of the same user converge on one org.
func (s *orgLifecycleService) ensurePersonalOrg(ctx context.Context, sp StoreProvider, user *model.User) (*model.Org, error) {
	personal, err := sp.Orgs().GetPersonalForUser(ctx, user.ID)
	if err == nil {
		return personal, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("looking up personal org: %w", err)
	}

	org := &model.Org{
		ID:              id.New(),
		Name:            fmt.Sprintf("%s's Personal Org", user.Email),
		Slug:            fmt.Sprintf("personal-%d", user.ID),
		Type:            model.OrgTypePersonal,
		LifecycleStatus: model.OrgStatusActive,
		RetentionDays:   model.DefaultRetentionDays,
	}
	if err := sp.Orgs().Create(ctx, org); err != nil {
		return nil, fmt.Errorf("creating personal org: %w", err)
	}

	member := &model.OrgMember{
		OrgID:  org.ID,
		UserID: user.ID,
		Role:   model.OrgRoleOwner,
	}
	if err := sp.OrgMembers().Add(ctx, member); err != nil {
		return nil, fmt.Errorf("adding owner membership: %w", err)
	}

	slog.InfoContext(ctx, "created personal org",
		"user_id", user.ID,
		"personal_org_id", org.ID)
	return org, nil
}
