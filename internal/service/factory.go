package service

import (
	"github.com/jonboulle/clockwork"

	"tutorstack.app/api/internal/queue"
	"tutorstack.app/api/internal/storage"
	"tutorstack.app/api/internal/store"
)

type Services struct {
	stores   *store.Stores
	txRunner TxRunner
	producer queue.Producer
	blobs    storage.BlobStore
	clock    clockwork.Clock
}

func NewServices(stores *store.Stores, txRunner TxRunner, producer queue.Producer, blobs storage.BlobStore, clock clockwork.Clock) *Services {
	return &Services{
		stores:   stores,
		txRunner: txRunner,
		producer: producer,
		blobs:    blobs,
		clock:    clock,
	}
}

func (s *Services) Cleanup() CleanupOrchestrator {
	return NewCleanupOrchestrator(s.producer)
}

func (s *Services) FileCleanup() FileCleanupService {
	return NewFileCleanupService(s.stores.Files(), s.stores.Attachments(), s.stores.References(), s.blobs)
}

func (s *Services) OrgLifecycle() OrgLifecycleService {
	return NewOrgLifecycleService(s.txRunner, s.stores.Orgs(), s.Cleanup(), s.clock)
}

func (s *Services) Organizations() OrganizationService {
	return NewOrganizationService(s.txRunner, s.stores.Orgs(), s.stores.OrgMembers())
}

func (s *Services) Users() UserService {
	return NewUserService(s.txRunner, s.stores.Users(), s.Cleanup())
}

func (s *Services) Folders() FolderService {
	return NewFolderService(s.txRunner, s.stores.Folders(), s.Cleanup())
}

func (s *Services) Threads() ThreadService {
	return NewThreadService(s.txRunner, s.stores.Threads(), s.Cleanup())
}

func (s *Services) Messages() MessageService {
	return NewMessageService(s.stores.Messages(), s.stores.Threads())
}

func (s *Services) References() ReferenceService {
	return NewReferenceService(s.txRunner, s.stores.References(), s.stores.Threads(), s.stores.Files(), s.Cleanup())
}

func (s *Services) Attachments() AttachmentService {
	return NewAttachmentService(s.stores.Attachments(), s.stores.Files())
}

func (s *Services) Files() FileService {
	return NewFileService(s.stores.Files(), s.blobs)
}
