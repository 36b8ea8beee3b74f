package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"tutorstack.app/api/common/id"
	"tutorstack.app/api/internal/model"
	"tutorstack.app/api/internal/service"
	"tutorstack.app/api/internal/store"
)

var _ = Describe("UserService", func() {
	var (
		svc      service.UserService
		provider *mockStoreProvider
		producer *mockProducer
		ctx      context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		provider = newMockStoreProvider()
		producer = &mockProducer{}
		svc = service.NewUserService(
			txRunnerFor(provider),
			provider.users,
			service.NewCleanupOrchestrator(producer),
		)
		Expect(id.Init(1)).To(Succeed())
	})

	Describe("Delete", func() {
		BeforeEach(func() {
			provider.users.getByIDFn = func(_ context.Context, userID int64) (*model.User, error) {
				return &model.User{ID: userID, PrimaryOrgID: 100, Email: "kim@example.com"}, nil
			}
		})

		It("removes the user's threads, memberships, and record", func() {
			provider.threads.listIDsByUserByOrgFn = func(_ context.Context, userID int64) (map[int64][]int64, error) {
				Expect(userID).To(Equal(int64(7)))
				return map[int64][]int64{100: {1, 2}}, nil
			}
			provider.attachments.listDistinctFileIDsByMessageIDsFn = func(_ context.Context, _ []int64) ([]int64, error) {
				return []int64{400}, nil
			}

			Expect(svc.Delete(ctx, 7)).To(Succeed())

			Expect(provider.messages.deleteByThreadIDsCalls).To(Equal(1))
			Expect(provider.threads.deletedIDs).To(ConsistOf([]int64{1, 2}))
			Expect(provider.members.deleteByUserCalls).To(Equal(1))
			Expect(provider.users.deleteCalls).To(Equal(1))

			Expect(producer.tasks).To(HaveLen(1))
			Expect(producer.tasks[0].OrgID).To(Equal(int64(100)))
			Expect(producer.tasks[0].FileIDs).To(Equal([]int64{400}))
		})

		It("attributes cleanup work to the org that owned each thread", func() {
			provider.threads.listIDsByUserByOrgFn = func(_ context.Context, _ int64) (map[int64][]int64, error) {
				return map[int64][]int64{100: {1}, 200: {2}}, nil
			}
			provider.references.listDistinctFileIDsByThreadIDsFn = func(_ context.Context, threadIDs []int64) ([]int64, error) {
				if threadIDs[0] == 1 {
					return []int64{400}, nil
				}
				return []int64{500}, nil
			}

			Expect(svc.Delete(ctx, 7)).To(Succeed())

			Expect(provider.threads.deletedIDs[0]).To(ConsistOf(int64(1), int64(2)))

			Expect(producer.tasks).To(HaveLen(2))
			byOrg := map[int64][]int64{}
			for _, task := range producer.tasks {
				byOrg[task.OrgID] = task.FileIDs
			}
			Expect(byOrg).To(Equal(map[int64][]int64{
				100: {400},
				200: {500},
			}))
		})

		It("propagates not found without deleting anything", func() {
			provider.users.getByIDFn = func(_ context.Context, _ int64) (*model.User, error) {
				return nil, store.ErrNotFound
			}

			err := svc.Delete(ctx, 7)
			Expect(errors.Is(err, store.ErrNotFound)).To(BeTrue())
			Expect(provider.users.deleteCalls).To(BeZero())
		})
	})
})
