package model

import "time"

type FolderType string

const (
	FolderTypeProject FolderType = "project"
	FolderTypeFolder  FolderType = "folder"
)

type FolderStatus string

const (
	FolderStatusActive   FolderStatus = "active"
	FolderStatusArchived FolderStatus = "archived"
)

type Folder struct {
	ID          int64        `json:"id"`
	OrgID       int64        `json:"org_id"`
	OwnerUserID int64        `json:"owner_user_id"`
	ParentID    *int64       `json:"parent_id,omitempty"`
	Type        FolderType   `json:"type"`
	Status      FolderStatus `json:"status"`
	Name        string       `json:"name"`
	SortOrder   float64      `json:"sort_order"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
