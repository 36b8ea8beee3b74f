package model

import "time"

// Attachment links one message to one stored file.
type Attachment struct {
	ID        int64     `json:"id"`
	OrgID     int64     `json:"org_id"`
	MessageID int64     `json:"message_id"`
	FileID    int64     `json:"file_id"`
	CreatedAt time.Time `json:"created_at"`
}
