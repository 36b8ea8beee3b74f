package service_test

import (
	"context"
	"io"
	"time"

	"tutorstack.app/api/internal/model"
	"tutorstack.app/api/internal/queue"
	"tutorstack.app/api/internal/service"
	"tutorstack.app/api/internal/store"
)

type mockOrgStore struct {
	getByIDFn            func(ctx context.Context, id int64) (*model.Org, error)
	getBySlugFn          func(ctx context.Context, slug string) (*model.Org, error)
	getPersonalForUserFn func(ctx context.Context, userID int64) (*model.Org, error)
	createFn             func(ctx context.Context, org *model.Org) error
	updateLifecycleFn    func(ctx context.Context, org *model.Org, from model.OrgLifecycleStatus) error
	listReadyForPurgeFn  func(ctx context.Context, now time.Time) ([]int64, error)
	deleteFn             func(ctx context.Context, id int64) error
	createCalls          int
	deleteCalls          int
}

func (m *mockOrgStore) GetByID(ctx context.Context, id int64) (*model.Org, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockOrgStore) GetBySlug(ctx context.Context, slug string) (*model.Org, error) {
	if m.getBySlugFn != nil {
		return m.getBySlugFn(ctx, slug)
	}
	return nil, store.ErrNotFound
}

func (m *mockOrgStore) GetPersonalForUser(ctx context.Context, userID int64) (*model.Org, error) {
	if m.getPersonalForUserFn != nil {
		return m.getPersonalForUserFn(ctx, userID)
	}
	return nil, store.ErrNotFound
}

func (m *mockOrgStore) Create(ctx context.Context, org *model.Org) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, org)
	}
	return nil
}

func (m *mockOrgStore) UpdateLifecycle(ctx context.Context, org *model.Org, from model.OrgLifecycleStatus) error {
	if m.updateLifecycleFn != nil {
		return m.updateLifecycleFn(ctx, org, from)
	}
	return nil
}

func (m *mockOrgStore) ListIDsReadyForPurge(ctx context.Context, now time.Time) ([]int64, error) {
	if m.listReadyForPurgeFn != nil {
		return m.listReadyForPurgeFn(ctx, now)
	}
	return nil, nil
}

func (m *mockOrgStore) Delete(ctx context.Context, id int64) error {
	m.deleteCalls++
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockUserStore struct {
	getByIDFn          func(ctx context.Context, id int64) (*model.User, error)
	getByEmailFn       func(ctx context.Context, email string) (*model.User, error)
	createFn           func(ctx context.Context, user *model.User) error
	listByPrimaryOrgFn func(ctx context.Context, orgID int64) ([]model.User, error)
	updatePrimaryOrgFn func(ctx context.Context, userID, orgID int64, now time.Time) error
	deleteFn           func(ctx context.Context, id int64) error
	deleteCalls        int
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) Create(ctx context.Context, user *model.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserStore) ListByPrimaryOrg(ctx context.Context, orgID int64) ([]model.User, error) {
	if m.listByPrimaryOrgFn != nil {
		return m.listByPrimaryOrgFn(ctx, orgID)
	}
	return nil, nil
}

func (m *mockUserStore) UpdatePrimaryOrg(ctx context.Context, userID, orgID int64, now time.Time) error {
	if m.updatePrimaryOrgFn != nil {
		return m.updatePrimaryOrgFn(ctx, userID, orgID, now)
	}
	return nil
}

func (m *mockUserStore) Delete(ctx context.Context, id int64) error {
	m.deleteCalls++
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockOrgMemberStore struct {
	addFn             func(ctx context.Context, member *model.OrgMember) error
	listByOrgFn       func(ctx context.Context, orgID int64) ([]model.OrgMember, error)
	deleteByOrgFn     func(ctx context.Context, orgID int64) error
	deleteByUserFn    func(ctx context.Context, userID int64) error
	addCalls          int
	deleteByOrgCalls  int
	deleteByUserCalls int
}

func (m *mockOrgMemberStore) Add(ctx context.Context, member *model.OrgMember) error {
	m.addCalls++
	if m.addFn != nil {
		return m.addFn(ctx, member)
	}
	return nil
}

func (m *mockOrgMemberStore) ListByOrg(ctx context.Context, orgID int64) ([]model.OrgMember, error) {
	if m.listByOrgFn != nil {
		return m.listByOrgFn(ctx, orgID)
	}
	return nil, nil
}

func (m *mockOrgMemberStore) DeleteByOrg(ctx context.Context, orgID int64) error {
	m.deleteByOrgCalls++
	if m.deleteByOrgFn != nil {
		return m.deleteByOrgFn(ctx, orgID)
	}
	return nil
}

func (m *mockOrgMemberStore) DeleteByUser(ctx context.Context, userID int64) error {
	m.deleteByUserCalls++
	if m.deleteByUserFn != nil {
		return m.deleteByUserFn(ctx, userID)
	}
	return nil
}

type mockFolderStore struct {
	getByIDFn        func(ctx context.Context, id, orgID int64) (*model.Folder, error)
	createFn         func(ctx context.Context, folder *model.Folder) error
	listByOrgFn      func(ctx context.Context, orgID int64) ([]model.Folder, error)
	deleteFn         func(ctx context.Context, id int64) error
	deleteByOrgFn    func(ctx context.Context, orgID int64) error
	deleteCalls      int
	deleteByOrgCalls int
}

func (m *mockFolderStore) GetByID(ctx context.Context, id, orgID int64) (*model.Folder, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id, orgID)
	}
	return nil, store.ErrNotFound
}

func (m *mockFolderStore) Create(ctx context.Context, folder *model.Folder) error {
	if m.createFn != nil {
		return m.createFn(ctx, folder)
	}
	return nil
}

func (m *mockFolderStore) ListByOrg(ctx context.Context, orgID int64) ([]model.Folder, error) {
	if m.listByOrgFn != nil {
		return m.listByOrgFn(ctx, orgID)
	}
	return nil, nil
}

func (m *mockFolderStore) Delete(ctx context.Context, id int64) error {
	m.deleteCalls++
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockFolderStore) DeleteByOrg(ctx context.Context, orgID int64) error {
	m.deleteByOrgCalls++
	if m.deleteByOrgFn != nil {
		return m.deleteByOrgFn(ctx, orgID)
	}
	return nil
}

type mockThreadStore struct {
	getByIDFn            func(ctx context.Context, id, orgID int64) (*model.Thread, error)
	createFn             func(ctx context.Context, thread *model.Thread) error
	updateFn             func(ctx context.Context, thread *model.Thread) error
	listByFolderFn       func(ctx context.Context, orgID, folderID int64, pageSize int, cursor string) ([]model.Thread, string, error)
	listByUserFn         func(ctx context.Context, userID int64, pageSize int, cursor string) ([]model.Thread, string, error)
	listIDsByFolderFn    func(ctx context.Context, orgID, folderID int64) ([]int64, error)
	listIDsByUserByOrgFn func(ctx context.Context, userID int64) (map[int64][]int64, error)
	listIDsByOrgFn       func(ctx context.Context, orgID int64) ([]int64, error)
	deleteByIDsFn        func(ctx context.Context, ids []int64) error
	deleteByOrgFn        func(ctx context.Context, orgID int64) error
	deleteByUserFn       func(ctx context.Context, userID int64) error
	deletedIDs           [][]int64
	deleteByIDsCalls     int
}

func (m *mockThreadStore) GetByID(ctx context.Context, id, orgID int64) (*model.Thread, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id, orgID)
	}
	return nil, store.ErrNotFound
}

func (m *mockThreadStore) Create(ctx context.Context, thread *model.Thread) error {
	if m.createFn != nil {
		return m.createFn(ctx, thread)
	}
	return nil
}

func (m *mockThreadStore) Update(ctx context.Context, thread *model.Thread) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, thread)
	}
	return nil
}

func (m *mockThreadStore) ListByFolderPaged(ctx context.Context, orgID, folderID int64, pageSize int, cursor string) ([]model.Thread, string, error) {
	if m.listByFolderFn != nil {
		return m.listByFolderFn(ctx, orgID, folderID, pageSize, cursor)
	}
	return nil, "", nil
}

func (m *mockThreadStore) ListByUserPaged(ctx context.Context, userID int64, pageSize int, cursor string) ([]model.Thread, string, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID, pageSize, cursor)
	}
	return nil, "", nil
}

func (m *mockThreadStore) ListIDsByFolder(ctx context.Context, orgID, folderID int64) ([]int64, error) {
	if m.listIDsByFolderFn != nil {
		return m.listIDsByFolderFn(ctx, orgID, folderID)
	}
	return nil, nil
}

func (m *mockThreadStore) ListIDsByUserByOrg(ctx context.Context, userID int64) (map[int64][]int64, error) {
	if m.listIDsByUserByOrgFn != nil {
		return m.listIDsByUserByOrgFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockThreadStore) ListIDsByOrg(ctx context.Context, orgID int64) ([]int64, error) {
	if m.listIDsByOrgFn != nil {
		return m.listIDsByOrgFn(ctx, orgID)
	}
	return nil, nil
}

func (m *mockThreadStore) DeleteByIDs(ctx context.Context, ids []int64) error {
	m.deleteByIDsCalls++
	m.deletedIDs = append(m.deletedIDs, ids)
	if m.deleteByIDsFn != nil {
		return m.deleteByIDsFn(ctx, ids)
	}
	return nil
}

func (m *mockThreadStore) DeleteByOrg(ctx context.Context, orgID int64) error {
	if m.deleteByOrgFn != nil {
		return m.deleteByOrgFn(ctx, orgID)
	}
	return nil
}

func (m *mockThreadStore) DeleteByUser(ctx context.Context, userID int64) error {
	if m.deleteByUserFn != nil {
		return m.deleteByUserFn(ctx, userID)
	}
	return nil
}

type mockMessageStore struct {
	createFn                func(ctx context.Context, msg *model.Message) error
	getByIdempotencyKeyFn   func(ctx context.Context, key string, orgID int64) (*model.Message, error)
	listByThreadFn          func(ctx context.Context, threadID int64, pageSize int, cursor string) ([]model.Message, string, error)
	listIDsByThreadIDsFn    func(ctx context.Context, threadIDs []int64) ([]int64, error)
	deleteByThreadIDsFn     func(ctx context.Context, threadIDs []int64) error
	createCalls             int
	deleteByThreadIDsCalls  int
}

func (m *mockMessageStore) Create(ctx context.Context, msg *model.Message) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, msg)
	}
	return nil
}

func (m *mockMessageStore) GetByIdempotencyKey(ctx context.Context, key string, orgID int64) (*model.Message, error) {
	if m.getByIdempotencyKeyFn != nil {
		return m.getByIdempotencyKeyFn(ctx, key, orgID)
	}
	return nil, store.ErrNotFound
}

func (m *mockMessageStore) ListByThreadPaged(ctx context.Context, threadID int64, pageSize int, cursor string) ([]model.Message, string, error) {
	if m.listByThreadFn != nil {
		return m.listByThreadFn(ctx, threadID, pageSize, cursor)
	}
	return nil, "", nil
}

func (m *mockMessageStore) ListIDsByThreadIDs(ctx context.Context, threadIDs []int64) ([]int64, error) {
	if m.listIDsByThreadIDsFn != nil {
		return m.listIDsByThreadIDsFn(ctx, threadIDs)
	}
	return nil, nil
}

func (m *mockMessageStore) DeleteByThreadIDs(ctx context.Context, threadIDs []int64) error {
	m.deleteByThreadIDsCalls++
	if m.deleteByThreadIDsFn != nil {
		return m.deleteByThreadIDsFn(ctx, threadIDs)
	}
	return nil
}

type mockAttachmentStore struct {
	createFn                          func(ctx context.Context, att *model.Attachment) error
	listByMessageFn                   func(ctx context.Context, messageID int64) ([]model.Attachment, error)
	listByFileFn                      func(ctx context.Context, fileID int64) ([]model.Attachment, error)
	listDistinctFileIDsByMessageIDsFn func(ctx context.Context, messageIDs []int64) ([]int64, error)
}

func (m *mockAttachmentStore) Create(ctx context.Context, att *model.Attachment) error {
	if m.createFn != nil {
		return m.createFn(ctx, att)
	}
	return nil
}

func (m *mockAttachmentStore) ListByMessage(ctx context.Context, messageID int64) ([]model.Attachment, error) {
	if m.listByMessageFn != nil {
		return m.listByMessageFn(ctx, messageID)
	}
	return nil, nil
}

func (m *mockAttachmentStore) ListByFile(ctx context.Context, fileID int64) ([]model.Attachment, error) {
	if m.listByFileFn != nil {
		return m.listByFileFn(ctx, fileID)
	}
	return nil, nil
}

func (m *mockAttachmentStore) ListDistinctFileIDsByMessageIDs(ctx context.Context, messageIDs []int64) ([]int64, error) {
	if m.listDistinctFileIDsByMessageIDsFn != nil {
		return m.listDistinctFileIDsByMessageIDsFn(ctx, messageIDs)
	}
	return nil, nil
}

type mockReferenceStore struct {
	createFn                         func(ctx context.Context, ref *model.Reference) error
	listByThreadFn                   func(ctx context.Context, threadID int64) ([]model.Reference, error)
	listByFileFn                     func(ctx context.Context, fileID int64) ([]model.Reference, error)
	listDistinctFileIDsByThreadIDsFn func(ctx context.Context, threadIDs []int64) ([]int64, error)
	deleteByThreadFn                 func(ctx context.Context, threadID int64) error
	createCalls                      int
	deleteByThreadCalls              int
}

func (m *mockReferenceStore) Create(ctx context.Context, ref *model.Reference) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, ref)
	}
	return nil
}

func (m *mockReferenceStore) ListByThread(ctx context.Context, threadID int64) ([]model.Reference, error) {
	if m.listByThreadFn != nil {
		return m.listByThreadFn(ctx, threadID)
	}
	return nil, nil
}

func (m *mockReferenceStore) ListByFile(ctx context.Context, fileID int64) ([]model.Reference, error) {
	if m.listByFileFn != nil {
		return m.listByFileFn(ctx, fileID)
	}
	return nil, nil
}

func (m *mockReferenceStore) ListDistinctFileIDsByThreadIDs(ctx context.Context, threadIDs []int64) ([]int64, error) {
	if m.listDistinctFileIDsByThreadIDsFn != nil {
		return m.listDistinctFileIDsByThreadIDsFn(ctx, threadIDs)
	}
	return nil, nil
}

func (m *mockReferenceStore) DeleteByThread(ctx context.Context, threadID int64) error {
	m.deleteByThreadCalls++
	if m.deleteByThreadFn != nil {
		return m.deleteByThreadFn(ctx, threadID)
	}
	return nil
}

type mockFileStore struct {
	getByIDFn       func(ctx context.Context, id int64) (*model.StoredFile, error)
	getByChecksumFn func(ctx context.Context, orgID int64, checksum string) (*model.StoredFile, error)
	createFn        func(ctx context.Context, file *model.StoredFile) error
	listByOrgFn     func(ctx context.Context, orgID int64, pageSize int, cursor string) ([]model.StoredFile, string, error)
	deleteByIDsFn   func(ctx context.Context, ids []int64) error
	createCalls     int
	deletedIDs      [][]int64
}

func (m *mockFileStore) GetByID(ctx context.Context, id int64) (*model.StoredFile, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockFileStore) GetByChecksum(ctx context.Context, orgID int64, checksum string) (*model.StoredFile, error) {
	if m.getByChecksumFn != nil {
		return m.getByChecksumFn(ctx, orgID, checksum)
	}
	return nil, store.ErrNotFound
}

func (m *mockFileStore) Create(ctx context.Context, file *model.StoredFile) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, file)
	}
	return nil
}

func (m *mockFileStore) ListByOrgPaged(ctx context.Context, orgID int64, pageSize int, cursor string) ([]model.StoredFile, string, error) {
	if m.listByOrgFn != nil {
		return m.listByOrgFn(ctx, orgID, pageSize, cursor)
	}
	return nil, "", nil
}

func (m *mockFileStore) DeleteByIDs(ctx context.Context, ids []int64) error {
	m.deletedIDs = append(m.deletedIDs, ids)
	if m.deleteByIDsFn != nil {
		return m.deleteByIDsFn(ctx, ids)
	}
	return nil
}

// mockStoreProvider bundles the store mocks behind the transactional
// provider interface.
type mockStoreProvider struct {
	orgs        *mockOrgStore
	users       *mockUserStore
	members     *mockOrgMemberStore
	folders     *mockFolderStore
	threads     *mockThreadStore
	messages    *mockMessageStore
	attachments *mockAttachmentStore
	references  *mockReferenceStore
	files       *mockFileStore
}

func newMockStoreProvider() *mockStoreProvider {
	return &mockStoreProvider{
		orgs:        &mockOrgStore{},
		users:       &mockUserStore{},
		members:     &mockOrgMemberStore{},
		folders:     &mockFolderStore{},
		threads:     &mockThreadStore{},
		messages:    &mockMessageStore{},
		attachments: &mockAttachmentStore{},
		references:  &mockReferenceStore{},
		files:       &mockFileStore{},
	}
}

func (p *mockStoreProvider) Orgs() store.OrgStore               { return p.orgs }
func (p *mockStoreProvider) Users() store.UserStore             { return p.users }
func (p *mockStoreProvider) OrgMembers() store.OrgMemberStore   { return p.members }
func (p *mockStoreProvider) Folders() store.FolderStore         { return p.folders }
func (p *mockStoreProvider) Threads() store.ThreadStore         { return p.threads }
func (p *mockStoreProvider) Messages() store.MessageStore       { return p.messages }
func (p *mockStoreProvider) Attachments() store.AttachmentStore { return p.attachments }
func (p *mockStoreProvider) References() store.ReferenceStore   { return p.references }
func (p *mockStoreProvider) Files() store.FileStore             { return p.files }

type mockTxRunner struct {
	withTxFn func(ctx context.Context, fn func(stores service.StoreProvider) error) error
}

func (m *mockTxRunner) WithTx(ctx context.Context, fn func(stores service.StoreProvider) error) error {
	return m.withTxFn(ctx, fn)
}

// txRunnerFor returns a TxRunner that hands every "transaction" the given
// provider, which is all the service tests need.
func txRunnerFor(provider *mockStoreProvider) *mockTxRunner {
	return &mockTxRunner{
		withTxFn: func(ctx context.Context, fn func(stores service.StoreProvider) error) error {
			return fn(provider)
		},
	}
}

type mockProducer struct {
	enqueueFn func(ctx context.Context, task queue.CleanupTask) error
	tasks     []queue.CleanupTask
}

func (m *mockProducer) Enqueue(ctx context.Context, task queue.CleanupTask) error {
	m.tasks = append(m.tasks, task)
	if m.enqueueFn != nil {
		return m.enqueueFn(ctx, task)
	}
	return nil
}

func (m *mockProducer) Close() error { return nil }

type mockBlobStore struct {
	uploadFn    func(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	downloadFn  func(ctx context.Context, key string) (io.ReadCloser, error)
	deleteFn    func(ctx context.Context, key string) error
	existsFn    func(ctx context.Context, key string) (bool, error)
	presignFn   func(ctx context.Context, key string, expiry time.Duration) (string, error)
	uploadCalls int
	deletedKeys []string
}

func (m *mockBlobStore) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	m.uploadCalls++
	if m.uploadFn != nil {
		return m.uploadFn(ctx, key, reader, size, contentType)
	}
	return nil
}

func (m *mockBlobStore) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	if m.downloadFn != nil {
		return m.downloadFn(ctx, key)
	}
	return io.NopCloser(nil), nil
}

func (m *mockBlobStore) Delete(ctx context.Context, key string) error {
	m.deletedKeys = append(m.deletedKeys, key)
	if m.deleteFn != nil {
		return m.deleteFn(ctx, key)
	}
	return nil
}

func (m *mockBlobStore) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return false, nil
}

func (m *mockBlobStore) PresignDownload(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if m.presignFn != nil {
		return m.presignFn(ctx, key, expiry)
	}
	return "", nil
}

func strPtr(s string) *string { return &s }

func int64Ptr(i int64) *int64 { return &i }
