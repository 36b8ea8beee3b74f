package store

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the query surface stores run against. It is satisfied by both
// *pgxpool.Pool and pgx.Tx, so the same store code serves plain calls and
// calls inside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Stores bundles typed accessors over a shared query surface.
type Stores struct {
	db DBTX
}

func NewStores(db DBTX) *Stores {
	return &Stores{db: db}
}

func (s *Stores) Orgs() OrgStore {
	return newOrgStore(s.db)
}

func (s *Stores) Users() UserStore {
	return newUserStore(s.db)
}

func (s *Stores) OrgMembers() OrgMemberStore {
	return newOrgMemberStore(s.db)
}

func (s *Stores) Folders() FolderStore {
	return newFolderStore(s.db)
}

func (s *Stores) Threads() ThreadStore {
	return newThreadStore(s.db)
}

func (s *Stores) Messages() MessageStore {
	return newMessageStore(s.db)
}

func (s *Stores) Attachments() AttachmentStore {
	return newAttachmentStore(s.db)
}

func (s *Stores) References() ReferenceStore {
	return newReferenceStore(s.db)
}

func (s *Stores) Files() FileStore {
	return newFileStore(s.db)
}

// limitArg builds a positional placeholder for queries assembled with a
// variable number of cursor arguments.
func limitArg(n int) string {
	return "$" + strconv.Itoa(n)
}
