package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"tutorstack.app/api/internal/model"
	"tutorstack.app/api/internal/service"
	"tutorstack.app/api/internal/store"
)

var _ = Describe("FileCleanupService", func() {
	var (
		svc   service.FileCleanupService
		files *mockFileStore
		atts  *mockAttachmentStore
		refs  *mockReferenceStore
		blobs *mockBlobStore
		ctx   context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		files = &mockFileStore{}
		atts = &mockAttachmentStore{}
		refs = &mockReferenceStore{}
		blobs = &mockBlobStore{}
		svc = service.NewFileCleanupService(files, atts, refs, blobs)
	})

	It("removes an orphaned file from storage and the catalog", func() {
		files.getByIDFn = func(_ context.Context, fileID int64) (*model.StoredFile, error) {
			Expect(fileID).To(Equal(int64(42)))
			return &model.StoredFile{ID: 42, StorageKey: "orgs/1/files/abc"}, nil
		}

		cleaned, err := svc.CleanupCandidates(ctx, []int64{42})
		Expect(err).NotTo(HaveOccurred())
		Expect(cleaned).To(Equal(1))
		Expect(blobs.deletedKeys).To(Equal([]string{"orgs/1/files/abc"}))
		Expect(files.deletedIDs).To(Equal([][]int64{{42}}))
	})

	It("keeps a file that still has a reference", func() {
		refs.listByFileFn = func(_ context.Context, _ int64) ([]model.Reference, error) {
			return []model.Reference{{ID: 1, FileID: int64Ptr(42)}}, nil
		}

		cleaned, err := svc.CleanupCandidates(ctx, []int64{42})
		Expect(err).NotTo(HaveOccurred())
		Expect(cleaned).To(BeZero())
		Expect(blobs.deletedKeys).To(BeEmpty())
		Expect(files.deletedIDs).To(BeEmpty())
	})

	It("keeps a file that is still attached to a message", func() {
		atts.listByFileFn = func(_ context.Context, _ int64) ([]model.Attachment, error) {
			return []model.Attachment{{ID: 1, FileID: 42}}, nil
		}

		cleaned, err := svc.CleanupCandidates(ctx, []int64{42})
		Expect(err).NotTo(HaveOccurred())
		Expect(cleaned).To(BeZero())
		Expect(blobs.deletedKeys).To(BeEmpty())
	})

	It("skips a file already removed by a previous delivery", func() {
		files.getByIDFn = func(_ context.Context, _ int64) (*model.StoredFile, error) {
			return nil, store.ErrNotFound
		}

		cleaned, err := svc.CleanupCandidates(ctx, []int64{42})
		Expect(err).NotTo(HaveOccurred())
		Expect(cleaned).To(BeZero())
	})

	It("keeps the metadata row when the blob delete fails", func() {
		files.getByIDFn = func(_ context.Context, _ int64) (*model.StoredFile, error) {
			return &model.StoredFile{ID: 42, StorageKey: "orgs/1/files/abc"}, nil
		}
		blobs.deleteFn = func(_ context.Context, _ string) error {
			return errors.New("storage unreachable")
		}

		cleaned, err := svc.CleanupCandidates(ctx, []int64{42})
		Expect(err).To(HaveOccurred())
		Expect(cleaned).To(BeZero())
		Expect(files.deletedIDs).To(BeEmpty())
	})

	It("isolates failures per candidate", func() {
		files.getByIDFn = func(_ context.Context, fileID int64) (*model.StoredFile, error) {
			if fileID == 42 {
				return nil, errors.New("db flake")
			}
			return &model.StoredFile{ID: fileID, StorageKey: "orgs/1/files/ok"}, nil
		}

		cleaned, err := svc.CleanupCandidates(ctx, []int64{42, 43})
		Expect(err).To(MatchError(ContainSubstring("1 of 2")))
		Expect(cleaned).To(Equal(1))
	})
})
