package handler_test

import (
	"context"

	"tutorstack.app/api/internal/model"
	"tutorstack.app/api/internal/store"
)

type mockOrganizationService struct {
	createFn      func(ctx context.Context, name string, slug *string, orgType model.OrgType, ownerUserID int64) (*model.Org, error)
	getFn         func(ctx context.Context, orgID int64) (*model.Org, error)
	listMembersFn func(ctx context.Context, orgID int64) ([]model.OrgMember, error)
}

func (m *mockOrganizationService) Create(ctx context.Context, name string, slug *string, orgType model.OrgType, ownerUserID int64) (*model.Org, error) {
	if m.createFn != nil {
		return m.createFn(ctx, name, slug, orgType, ownerUserID)
	}
	return nil, nil
}

func (m *mockOrganizationService) Get(ctx context.Context, orgID int64) (*model.Org, error) {
	if m.getFn != nil {
		return m.getFn(ctx, orgID)
	}
	return nil, store.ErrNotFound
}

func (m *mockOrganizationService) ListMembers(ctx context.Context, orgID int64) ([]model.OrgMember, error) {
	if m.listMembersFn != nil {
		return m.listMembersFn(ctx, orgID)
	}
	return nil, nil
}

type mockOrgLifecycleService struct {
	disableFn    func(ctx context.Context, orgID int64) (*model.Org, error)
	softDeleteFn func(ctx context.Context, orgID int64) (*model.Org, error)
	hardDeleteFn func(ctx context.Context, orgID int64) error
}

func (m *mockOrgLifecycleService) Disable(ctx context.Context, orgID int64) (*model.Org, error) {
	if m.disableFn != nil {
		return m.disableFn(ctx, orgID)
	}
	return nil, nil
}

func (m *mockOrgLifecycleService) SoftDelete(ctx context.Context, orgID int64) (*model.Org, error) {
	if m.softDeleteFn != nil {
		return m.softDeleteFn(ctx, orgID)
	}
	return nil, nil
}

func (m *mockOrgLifecycleService) HardDelete(ctx context.Context, orgID int64) error {
	if m.hardDeleteFn != nil {
		return m.hardDeleteFn(ctx, orgID)
	}
	return nil
}

func (m *mockOrgLifecycleService) OrgsReadyForPurge(ctx context.Context) ([]int64, error) {
	return nil, nil
}
