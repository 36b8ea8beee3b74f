package service_test

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"tutorstack.app/api/common/id"
	"tutorstack.app/api/internal/model"
	"tutorstack.app/api/internal/service"
	"tutorstack.app/api/internal/storage"
	"tutorstack.app/api/internal/store"
)

var _ = Describe("FileService", func() {
	var (
		svc   service.FileService
		files *mockFileStore
		blobs *mockBlobStore
		ctx   context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		files = &mockFileStore{}
		blobs = &mockBlobStore{}
		svc = service.NewFileService(files, blobs)
		Expect(id.Init(1)).To(Succeed())
	})

	uploadParams := func(content string) service.UploadFileParams {
		return service.UploadFileParams{
			OrgID:       1,
			OwnerUserID: 10,
			FileName:    "notes.pdf",
			ContentType: "application/pdf",
			Content:     bytes.NewBufferString(content),
		}
	}

	Describe("Upload", func() {
		It("stores the blob and metadata with a sha256 checksum", func() {
			var uploadedKey string
			var uploadedSize int64
			blobs.uploadFn = func(_ context.Context, key string, reader io.Reader, size int64, contentType string) error {
				uploadedKey = key
				uploadedSize = size
				Expect(contentType).To(Equal("application/pdf"))
				data, err := io.ReadAll(reader)
				Expect(err).NotTo(HaveOccurred())
				Expect(string(data)).To(Equal("file content"))
				return nil
			}

			file, err := svc.Upload(ctx, uploadParams("file content"))
			Expect(err).NotTo(HaveOccurred())
			Expect(file.StorageKey).To(Equal(uploadedKey))
			Expect(file.StorageKey).To(HavePrefix("orgs/1/files/"))
			Expect(file.SizeBytes).To(Equal(uploadedSize))

			sum := sha256.Sum256([]byte("file content"))
			Expect(file.ChecksumSHA256).To(HaveValue(Equal(hex.EncodeToString(sum[:]))))
			Expect(files.createCalls).To(Equal(1))
		})

		It("returns the existing record for duplicate content", func() {
			existing := &model.StoredFile{ID: 99, OrgID: 1, StorageKey: "orgs/1/files/old"}
			files.getByChecksumFn = func(_ context.Context, orgID int64, checksum string) (*model.StoredFile, error) {
				Expect(orgID).To(Equal(int64(1)))
				Expect(checksum).To(HaveLen(64))
				return existing, nil
			}

			file, err := svc.Upload(ctx, uploadParams("same bytes"))
			Expect(err).NotTo(HaveOccurred())
			Expect(file).To(Equal(existing))
			Expect(blobs.uploadCalls).To(BeZero())
			Expect(files.createCalls).To(BeZero())
		})

		It("removes the blob when the metadata insert fails", func() {
			files.createFn = func(_ context.Context, _ *model.StoredFile) error {
				return errors.New("constraint violation")
			}

			_, err := svc.Upload(ctx, uploadParams("file content"))
			Expect(err).To(HaveOccurred())
			Expect(blobs.uploadCalls).To(Equal(1))
			Expect(blobs.deletedKeys).To(HaveLen(1))
			Expect(blobs.deletedKeys[0]).To(HavePrefix("orgs/1/files/"))
		})
	})

	Describe("Download", func() {
		storedFile := &model.StoredFile{ID: 42, OrgID: 1, StorageKey: "orgs/1/files/abc"}

		BeforeEach(func() {
			files.getByIDFn = func(_ context.Context, _ int64) (*model.StoredFile, error) {
				return storedFile, nil
			}
		})

		It("returns a presigned URL when the backend supports it", func() {
			blobs.presignFn = func(_ context.Context, key string, expiry time.Duration) (string, error) {
				Expect(key).To(Equal("orgs/1/files/abc"))
				Expect(expiry).To(Equal(15 * time.Minute))
				return "https://bucket.s3/signed", nil
			}

			dl, err := svc.Download(ctx, 1, 42)
			Expect(err).NotTo(HaveOccurred())
			Expect(dl.URL).To(Equal("https://bucket.s3/signed"))
			Expect(dl.Body).To(BeNil())
		})

		It("streams the blob when presigning is unsupported", func() {
			blobs.presignFn = func(_ context.Context, _ string, _ time.Duration) (string, error) {
				return "", storage.ErrPresignUnsupported
			}
			body := io.NopCloser(bytes.NewBufferString("raw bytes"))
			blobs.downloadFn = func(_ context.Context, key string) (io.ReadCloser, error) {
				Expect(key).To(Equal("orgs/1/files/abc"))
				return body, nil
			}

			dl, err := svc.Download(ctx, 1, 42)
			Expect(err).NotTo(HaveOccurred())
			Expect(dl.URL).To(BeEmpty())
			Expect(dl.Body).To(Equal(body))
		})

		It("hides files that belong to another org", func() {
			_, err := svc.Download(ctx, 2, 42)
			Expect(errors.Is(err, store.ErrNotFound)).To(BeTrue())
		})
	})
})
