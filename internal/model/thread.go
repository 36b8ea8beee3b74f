package model

import "time"

type ThreadStatus string

const (
	ThreadStatusActive   ThreadStatus = "active"
	ThreadStatusArchived ThreadStatus = "archived"
)

type Thread struct {
	ID        int64        `json:"id"`
	OrgID     int64        `json:"org_id"`
	UserID    int64        `json:"user_id"`
	FolderID  *int64       `json:"folder_id,omitempty"`
	Title     *string      `json:"title,omitempty"`
	Status    ThreadStatus `json:"status"`
	SortOrder float64      `json:"sort_order"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
