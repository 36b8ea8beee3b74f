package model

import "time"

// StoredFile is the metadata record for a blob held by the storage adapter.
// A file is "referenced" while any Attachment or Reference points at it and
// "orphaned" otherwise; orphaned files are removed by the cleanup engine.
type StoredFile struct {
	ID             int64     `json:"id"`
	OrgID          int64     `json:"org_id"`
	OwnerUserID    int64     `json:"owner_user_id"`
	FileName       string    `json:"file_name"`
	ContentType    string    `json:"content_type"`
	StorageKey     string    `json:"storage_key"`
	SizeBytes      int64     `json:"size_bytes"`
	ChecksumSHA256 *string   `json:"checksum_sha256,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
