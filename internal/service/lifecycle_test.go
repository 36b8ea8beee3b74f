package service_test

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"tutorstack.app/api/common/id"
	"tutorstack.app/api/internal/model"
	"tutorstack.app/api/internal/queue"
	"tutorstack.app/api/internal/service"
	"tutorstack.app/api/internal/store"
)

var _ = Describe("OrgLifecycleService", func() {
	var (
		svc      service.OrgLifecycleService
		provider *mockStoreProvider
		producer *mockProducer
		clock    *clockwork.FakeClock
		now      time.Time
		ctx      context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		provider = newMockStoreProvider()
		producer = &mockProducer{}
		now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		clock = clockwork.NewFakeClockAt(now)
		svc = service.NewOrgLifecycleService(
			txRunnerFor(provider),
			provider.orgs,
			service.NewCleanupOrchestrator(producer),
			clock,
		)
		Expect(id.Init(1)).To(Succeed())
	})

	orgInStatus := func(status model.OrgLifecycleStatus) *model.Org {
		return &model.Org{
			ID:              100,
			Name:            "Acme School",
			Slug:            "acme-school",
			Type:            model.OrgTypeEducation,
			LifecycleStatus: status,
			RetentionDays:   30,
		}
	}

	Describe("Disable", func() {
		It("disables an active org and stamps the time", func() {
			org := orgInStatus(model.OrgStatusActive)
			provider.orgs.getByIDFn = func(_ context.Context, orgID int64) (*model.Org, error) {
				Expect(orgID).To(Equal(int64(100)))
				return org, nil
			}
			var saved *model.Org
			provider.orgs.updateLifecycleFn = func(_ context.Context, o *model.Org, from model.OrgLifecycleStatus) error {
				Expect(from).To(Equal(model.OrgStatusActive))
				saved = o
				return nil
			}

			updated, err := svc.Disable(ctx, 100)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.LifecycleStatus).To(Equal(model.OrgStatusDisabled))
			Expect(updated.DisabledAt).To(HaveValue(Equal(now)))
			Expect(saved).To(Equal(updated))
		})

		It("rejects the loser of a concurrent transition", func() {
			provider.orgs.getByIDFn = func(_ context.Context, _ int64) (*model.Org, error) {
				return orgInStatus(model.OrgStatusActive), nil
			}
			provider.orgs.updateLifecycleFn = func(_ context.Context, _ *model.Org, _ model.OrgLifecycleStatus) error {
				return store.ErrNotFound
			}

			_, err := svc.Disable(ctx, 100)
			Expect(errors.Is(err, service.ErrInvalidState)).To(BeTrue())
		})

		It("rejects disabling an already disabled org", func() {
			provider.orgs.getByIDFn = func(_ context.Context, _ int64) (*model.Org, error) {
				return orgInStatus(model.OrgStatusDisabled), nil
			}

			_, err := svc.Disable(ctx, 100)
			Expect(errors.Is(err, service.ErrInvalidState)).To(BeTrue())
		})

		It("rejects disabling a deleted org", func() {
			provider.orgs.getByIDFn = func(_ context.Context, _ int64) (*model.Org, error) {
				return orgInStatus(model.OrgStatusDeleted), nil
			}

			_, err := svc.Disable(ctx, 100)
			Expect(errors.Is(err, service.ErrInvalidState)).To(BeTrue())
		})

		It("propagates not found", func() {
			_, err := svc.Disable(ctx, 999)
			Expect(errors.Is(err, store.ErrNotFound)).To(BeTrue())
		})
	})

	Describe("SoftDelete", func() {
		It("schedules the purge exactly retention_days after deletion", func() {
			org := orgInStatus(model.OrgStatusActive)
			provider.orgs.getByIDFn = func(_ context.Context, _ int64) (*model.Org, error) {
				return org, nil
			}

			updated, err := svc.SoftDelete(ctx, 100)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.LifecycleStatus).To(Equal(model.OrgStatusDeleted))
			Expect(updated.DeletedAt).To(HaveValue(Equal(now)))
			Expect(updated.PurgeScheduledAt).To(HaveValue(Equal(now.Add(30 * 24 * time.Hour))))
		})

		It("accepts a disabled org", func() {
			provider.orgs.getByIDFn = func(_ context.Context, _ int64) (*model.Org, error) {
				return orgInStatus(model.OrgStatusDisabled), nil
			}

			updated, err := svc.SoftDelete(ctx, 100)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.LifecycleStatus).To(Equal(model.OrgStatusDeleted))
		})

		It("rejects an org that is already deleted", func() {
			provider.orgs.getByIDFn = func(_ context.Context, _ int64) (*model.Org, error) {
				return orgInStatus(model.OrgStatusDeleted), nil
			}

			_, err := svc.SoftDelete(ctx, 100)
			Expect(errors.Is(err, service.ErrInvalidState)).To(BeTrue())
		})

		It("rejects the loser of a concurrent soft delete without migrating members", func() {
			provider.orgs.getByIDFn = func(_ context.Context, _ int64) (*model.Org, error) {
				return orgInStatus(model.OrgStatusDisabled), nil
			}
			provider.orgs.updateLifecycleFn = func(_ context.Context, _ *model.Org, from model.OrgLifecycleStatus) error {
				Expect(from).To(Equal(model.OrgStatusDisabled))
				return store.ErrNotFound
			}
			provider.users.listByPrimaryOrgFn = func(_ context.Context, _ int64) ([]model.User, error) {
				Fail("membership migration must not run when the status update misses")
				return nil, nil
			}

			_, err := svc.SoftDelete(ctx, 100)
			Expect(errors.Is(err, service.ErrInvalidState)).To(BeTrue())
			Expect(provider.members.deleteByOrgCalls).To(BeZero())
		})

		It("schedules an immediate purge for zero retention", func() {
			org := orgInStatus(model.OrgStatusActive)
			org.RetentionDays = 0
			provider.orgs.getByIDFn = func(_ context.Context, _ int64) (*model.Org, error) {
				return org, nil
			}

			updated, err := svc.SoftDelete(ctx, 100)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.PurgeScheduledAt).To(HaveValue(Equal(now)))
		})

		It("repoints users to an existing personal org", func() {
			provider.orgs.getByIDFn = func(_ context.Context, _ int64) (*model.Org, error) {
				return orgInStatus(model.OrgStatusActive), nil
			}
			provider.users.listByPrimaryOrgFn = func(_ context.Context, orgID int64) ([]model.User, error) {
				Expect(orgID).To(Equal(int64(100)))
				return []model.User{{ID: 7, PrimaryOrgID: 100, Email: "kim@example.com"}}, nil
			}
			provider.orgs.getPersonalForUserFn = func(_ context.Context, userID int64) (*model.Org, error) {
				Expect(userID).To(Equal(int64(7)))
				return &model.Org{ID: 555, Type: model.OrgTypePersonal}, nil
			}
			var repointedTo int64
			provider.users.updatePrimaryOrgFn = func(_ context.Context, userID, orgID int64, at time.Time) error {
				Expect(userID).To(Equal(int64(7)))
				Expect(at).To(Equal(now))
				repointedTo = orgID
				return nil
			}

			_, err := svc.SoftDelete(ctx, 100)
			Expect(err).NotTo(HaveOccurred())
			Expect(repointedTo).To(Equal(int64(555)))
			Expect(provider.orgs.createCalls).To(BeZero())
			Expect(provider.members.deleteByOrgCalls).To(Equal(1))
		})

		It("creates a personal org when the user has none", func() {
			provider.orgs.getByIDFn = func(_ context.Context, _ int64) (*model.Org, error) {
				return orgInStatus(model.OrgStatusActive), nil
			}
			provider.users.listByPrimaryOrgFn = func(_ context.Context, _ int64) ([]model.User, error) {
				return []model.User{{ID: 7, PrimaryOrgID: 100, Email: "kim@example.com"}}, nil
			}

			var createdOrg *model.Org
			provider.orgs.createFn = func(_ context.Context, o *model.Org) error {
				createdOrg = o
				return nil
			}
			var ownerMember *model.OrgMember
			provider.members.addFn = func(_ context.Context, m *model.OrgMember) error {
				ownerMember = m
				return nil
			}
			var repointedTo int64
			provider.users.updatePrimaryOrgFn = func(_ context.Context, _, orgID int64, _ time.Time) error {
				repointedTo = orgID
				return nil
			}

			_, err := svc.SoftDelete(ctx, 100)
			Expect(err).NotTo(HaveOccurred())
			Expect(createdOrg).NotTo(BeNil())
			Expect(createdOrg.Type).To(Equal(model.OrgTypePersonal))
			Expect(createdOrg.Slug).To(Equal("personal-7"))
			Expect(createdOrg.LifecycleStatus).To(Equal(model.OrgStatusActive))
			Expect(ownerMember.Role).To(Equal(model.OrgRoleOwner))
			Expect(ownerMember.UserID).To(Equal(int64(7)))
			Expect(repointedTo).To(Equal(createdOrg.ID))
		})
	})

	Describe("HardDelete", func() {
		deletedOrg := func(purgeAt time.Time) *model.Org {
			org := orgInStatus(model.OrgStatusDeleted)
			deletedAt := purgeAt.Add(-30 * 24 * time.Hour)
			org.DeletedAt = &deletedAt
			org.PurgeScheduledAt = &purgeAt
			return org
		}

		It("rejects an org that was never soft-deleted", func() {
			provider.orgs.getByIDFn = func(_ context.Context, _ int64) (*model.Org, error) {
				return orgInStatus(model.OrgStatusActive), nil
			}

			err := svc.HardDelete(ctx, 100)
			Expect(errors.Is(err, service.ErrInvalidState)).To(BeTrue())
		})

		It("refuses to purge before the retention window closes", func() {
			provider.orgs.getByIDFn = func(_ context.Context, _ int64) (*model.Org, error) {
				return deletedOrg(now.Add(time.Hour)), nil
			}

			err := svc.HardDelete(ctx, 100)
			Expect(errors.Is(err, service.ErrRetentionNotExpired)).To(BeTrue())
			Expect(provider.orgs.deleteCalls).To(BeZero())
		})

		It("purges at exactly the scheduled time", func() {
			provider.orgs.getByIDFn = func(_ context.Context, _ int64) (*model.Org, error) {
				return deletedOrg(now), nil
			}

			Expect(svc.HardDelete(ctx, 100)).To(Succeed())
			Expect(provider.orgs.deleteCalls).To(Equal(1))
		})

		It("deletes content, memberships, and the org record", func() {
			provider.orgs.getByIDFn = func(_ context.Context, _ int64) (*model.Org, error) {
				return deletedOrg(now.Add(-time.Hour)), nil
			}
			provider.threads.listIDsByOrgFn = func(_ context.Context, _ int64) ([]int64, error) {
				return []int64{1, 2}, nil
			}
			provider.messages.listIDsByThreadIDsFn = func(_ context.Context, threadIDs []int64) ([]int64, error) {
				Expect(threadIDs).To(Equal([]int64{1, 2}))
				return []int64{10, 11}, nil
			}
			provider.references.listDistinctFileIDsByThreadIDsFn = func(_ context.Context, _ []int64) ([]int64, error) {
				return []int64{200}, nil
			}
			provider.attachments.listDistinctFileIDsByMessageIDsFn = func(_ context.Context, messageIDs []int64) ([]int64, error) {
				Expect(messageIDs).To(Equal([]int64{10, 11}))
				return []int64{200, 201}, nil
			}

			Expect(svc.HardDelete(ctx, 100)).To(Succeed())

			Expect(provider.messages.deleteByThreadIDsCalls).To(Equal(1))
			Expect(provider.threads.deleteByIDsCalls).To(Equal(1))
			Expect(provider.threads.deletedIDs).To(ConsistOf([]int64{1, 2}))
			Expect(provider.folders.deleteByOrgCalls).To(Equal(1))
			Expect(provider.members.deleteByOrgCalls).To(Equal(1))
			Expect(provider.orgs.deleteCalls).To(Equal(1))

			Expect(producer.tasks).To(HaveLen(1))
			task := producer.tasks[0]
			Expect(task.TaskType).To(Equal(queue.TaskTypeThreadsDeleted))
			Expect(task.OrgID).To(Equal(int64(100)))
			Expect(task.FileIDs).To(Equal([]int64{200, 201}))
		})

		It("enqueues nothing when the org had no files", func() {
			provider.orgs.getByIDFn = func(_ context.Context, _ int64) (*model.Org, error) {
				return deletedOrg(now.Add(-time.Hour)), nil
			}

			Expect(svc.HardDelete(ctx, 100)).To(Succeed())
			Expect(producer.tasks).To(BeEmpty())
		})

		It("still succeeds when the cleanup enqueue fails", func() {
			provider.orgs.getByIDFn = func(_ context.Context, _ int64) (*model.Org, error) {
				return deletedOrg(now.Add(-time.Hour)), nil
			}
			provider.threads.listIDsByOrgFn = func(_ context.Context, _ int64) ([]int64, error) {
				return []int64{1}, nil
			}
			provider.references.listDistinctFileIDsByThreadIDsFn = func(_ context.Context, _ []int64) ([]int64, error) {
				return []int64{200}, nil
			}
			producer.enqueueFn = func(_ context.Context, _ queue.CleanupTask) error {
				return errors.New("redis down")
			}

			Expect(svc.HardDelete(ctx, 100)).To(Succeed())
			Expect(provider.orgs.deleteCalls).To(Equal(1))
		})
	})

	Describe("OrgsReadyForPurge", func() {
		It("queries with the current time", func() {
			provider.orgs.listReadyForPurgeFn = func(_ context.Context, at time.Time) ([]int64, error) {
				Expect(at).To(Equal(now))
				return []int64{100, 101}, nil
			}

			ids, err := svc.OrgsReadyForPurge(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(ids).To(Equal([]int64{100, 101}))
		})
	})
})
