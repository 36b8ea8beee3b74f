package service

import (
	"context"
	"errors"
	"fmt"

	"tutorstack.app/api/common"
	"tutorstack.app/api/common/id"
	"tutorstack.app/api/internal/model"
	"tutorstack.app/api/internal/store"
)

type OrganizationService interface {
	Create(ctx context.Context, name string, slug *string, orgType model.OrgType, ownerUserID int64) (*model.Org, error)
	Get(ctx context.Context, orgID int64) (*model.Org, error)
	ListMembers(ctx context.Context, orgID int64) ([]model.OrgMember, error)
}

type organizationService struct {
	txRunner TxRunner
	orgStore store.OrgStore
	members  store.OrgMemberStore
}

func NewOrganizationService(txRunner TxRunner, orgStore store.OrgStore, members store.OrgMemberStore) OrganizationService {
	return &organizationService{
		txRunner: txRunner,
		orgStore: orgStore,
		members:  members,
	}
}

func (s *organizationService) Create(ctx context.Context, name string, slug *string, orgType model.OrgType, ownerUserID int64) (*model.Org, error) {
	finalSlug, err := s.ensureSlug(ctx, name, slug)
	if err != nil {
		return nil, err
	}

	org := &model.Org{
		ID:              id.New(),
		Name:            name,
		Slug:            finalSlug,
		Type:            orgType,
		LifecycleStatus: model.OrgStatusActive,
		RetentionDays:   model.DefaultRetentionDays,
	}

	err = s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		if err := sp.Orgs().Create(ctx, org); err != nil {
			return fmt.Errorf("creating organization: %w", err)
		}
		member := &model.OrgMember{
			OrgID:  org.ID,
			UserID: ownerUserID,
			Role:   model.OrgRoleOwner,
		}
		if err := sp.OrgMembers().Add(ctx, member); err != nil {
			return fmt.Errorf("adding owner membership: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return org, nil
}

func (s *organizationService) Get(ctx context.Context, orgID int64) (*model.Org, error) {
	return s.orgStore.GetByID(ctx, orgID)
}

func (s *organizationService) ListMembers(ctx context.Context, orgID int64) ([]model.OrgMember, error) {
	if _, err := s.orgStore.GetByID(ctx, orgID); err != nil {
		return nil, err
	}
	return s.members.ListByOrg(ctx, orgID)
}

func (s *organizationService) ensureSlug(ctx context.Context, name string, slug *string) (string, error) {
	input := name
	if slug != nil && *slug != "" {
		input = *slug
	}

	base, err := common.Slugify(input, "org")
	if err != nil {
		return "", fmt.Errorf("generating slug: %w", err)
	}

	// Fast path
	if _, err := s.orgStore.GetBySlug(ctx, base); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return base, nil
		}
		return "", fmt.Errorf("checking slug availability: %w", err)
	}

	// Add numeric suffix until available
	for i := 1; i <= 20; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		_, err := s.orgStore.GetBySlug(ctx, candidate)
		if errors.Is(err, store.ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("checking slug availability: %w", err)
		}
	}

	return "", fmt.Errorf("unable to find available slug for %q", base)
}
