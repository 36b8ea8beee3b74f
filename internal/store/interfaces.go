package store

import (
	"context"
	"errors"
	"time"

	"tutorstack.app/api/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
// or does not belong to the expected tenant.
var ErrNotFound = errors.New("not found")

// OrgStore defines the contract for organization data access
type OrgStore interface {
	GetByID(ctx context.Context, id int64) (*model.Org, error)
	GetBySlug(ctx context.Context, slug string) (*model.Org, error)
	GetPersonalForUser(ctx context.Context, userID int64) (*model.Org, error)
	Create(ctx context.Context, org *model.Org) error
	UpdateLifecycle(ctx context.Context, org *model.Org, from model.OrgLifecycleStatus) error
	ListIDsReadyForPurge(ctx context.Context, now time.Time) ([]int64, error)
	Delete(ctx context.Context, id int64) error // hard delete of the org row
}

// UserStore defines the contract for user data access
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	ListByPrimaryOrg(ctx context.Context, orgID int64) ([]model.User, error)
	UpdatePrimaryOrg(ctx context.Context, userID, orgID int64, now time.Time) error
	Delete(ctx context.Context, id int64) error
}

// OrgMemberStore defines the contract for org membership data access
type OrgMemberStore interface {
	Add(ctx context.Context, member *model.OrgMember) error
	ListByOrg(ctx context.Context, orgID int64) ([]model.OrgMember, error)
	DeleteByOrg(ctx context.Context, orgID int64) error
	DeleteByUser(ctx context.Context, userID int64) error
}

// FolderStore defines the contract for folder data access
type FolderStore interface {
	GetByID(ctx context.Context, id, orgID int64) (*model.Folder, error)
	Create(ctx context.Context, folder *model.Folder) error
	ListByOrg(ctx context.Context, orgID int64) ([]model.Folder, error)
	Delete(ctx context.Context, id int64) error
	DeleteByOrg(ctx context.Context, orgID int64) error
}

// ThreadStore defines the contract for thread data access
type ThreadStore interface {
	GetByID(ctx context.Context, id, orgID int64) (*model.Thread, error)
	Create(ctx context.Context, thread *model.Thread) error
	Update(ctx context.Context, thread *model.Thread) error
	ListByFolderPaged(ctx context.Context, orgID, folderID int64, pageSize int, cursor string) ([]model.Thread, string, error)
	ListByUserPaged(ctx context.Context, userID int64, pageSize int, cursor string) ([]model.Thread, string, error)
	ListIDsByFolder(ctx context.Context, orgID, folderID int64) ([]int64, error)
	ListIDsByUserByOrg(ctx context.Context, userID int64) (map[int64][]int64, error)
	ListIDsByOrg(ctx context.Context, orgID int64) ([]int64, error)
	DeleteByIDs(ctx context.Context, ids []int64) error
	DeleteByOrg(ctx context.Context, orgID int64) error
	DeleteByUser(ctx context.Context, userID int64) error
}

// MessageStore defines the contract for message data access
type MessageStore interface {
	Create(ctx context.Context, msg *model.Message) error
	GetByIdempotencyKey(ctx context.Context, key string, orgID int64) (*model.Message, error)
	ListByThreadPaged(ctx context.Context, threadID int64, pageSize int, cursor string) ([]model.Message, string, error)
	ListIDsByThreadIDs(ctx context.Context, threadIDs []int64) ([]int64, error)
	DeleteByThreadIDs(ctx context.Context, threadIDs []int64) error
}

// AttachmentStore defines the contract for attachment data access
type AttachmentStore interface {
	Create(ctx context.Context, att *model.Attachment) error
	ListByMessage(ctx context.Context, messageID int64) ([]model.Attachment, error)
	ListByFile(ctx context.Context, fileID int64) ([]model.Attachment, error)
	ListDistinctFileIDsByMessageIDs(ctx context.Context, messageIDs []int64) ([]int64, error)
}

// ReferenceStore defines the contract for reference data access
type ReferenceStore interface {
	Create(ctx context.Context, ref *model.Reference) error
	ListByThread(ctx context.Context, threadID int64) ([]model.Reference, error)
	ListByFile(ctx context.Context, fileID int64) ([]model.Reference, error)
	ListDistinctFileIDsByThreadIDs(ctx context.Context, threadIDs []int64) ([]int64, error)
	DeleteByThread(ctx context.Context, threadID int64) error
}

// FileStore defines the contract for stored file metadata access
type FileStore interface {
	GetByID(ctx context.Context, id int64) (*model.StoredFile, error)
	GetByChecksum(ctx context.Context, orgID int64, checksum string) (*model.StoredFile, error)
	Create(ctx context.Context, file *model.StoredFile) error
	ListByOrgPaged(ctx context.Context, orgID int64, pageSize int, cursor string) ([]model.StoredFile, string, error)
	DeleteByIDs(ctx context.Context, ids []int64) error
}
