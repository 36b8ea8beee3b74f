package model

import "time"

// Reference links a thread (and optionally a message) to either an external
// URL or a stored file. Either URL or FileID must be set.
type Reference struct {
	ID        int64     `json:"id"`
	OrgID     int64     `json:"org_id"`
	ThreadID  int64     `json:"thread_id"`
	MessageID *int64    `json:"message_id,omitempty"`
	FileID    *int64    `json:"file_id,omitempty"`
	URL       *string   `json:"url,omitempty"`
	Title     *string   `json:"title,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
