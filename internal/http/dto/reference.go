package dto

import (
	"time"

	"tutorstack.app/api/internal/model"
)

type CreateReferenceRequest struct {
	MessageID *int64  `json:"message_id,string,omitempty"`
	FileID    *int64  `json:"file_id,string,omitempty"`
	URL       *string `json:"url,omitempty" binding:"omitempty,url,max=2048"`
	Title     *string `json:"title,omitempty" binding:"omitempty,max=500"`
}

type ReferenceResponse struct {
	ID        int64     `json:"id,string"`
	OrgID     int64     `json:"org_id,string"`
	ThreadID  int64     `json:"thread_id,string"`
	MessageID *int64    `json:"message_id,string,omitempty"`
	FileID    *int64    `json:"file_id,string,omitempty"`
	URL       *string   `json:"url,omitempty"`
	Title     *string   `json:"title,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func ToReferenceResponse(r *model.Reference) *ReferenceResponse {
	return &ReferenceResponse{
		ID:        r.ID,
		OrgID:     r.OrgID,
		ThreadID:  r.ThreadID,
		MessageID: r.MessageID,
		FileID:    r.FileID,
		URL:       r.URL,
		Title:     r.Title,
		CreatedAt: r.CreatedAt,
	}
}

type ReferenceListResponse struct {
	References []ReferenceResponse `json:"references"`
}

func ToReferenceListResponse(refs []model.Reference) *ReferenceListResponse {
	out := make([]ReferenceResponse, len(refs))
	for i := range refs {
		out[i] = *ToReferenceResponse(&refs[i])
	}
	return &ReferenceListResponse{References: out}
}

type CreateAttachmentRequest struct {
	MessageID int64 `json:"message_id,string" binding:"required"`
	FileID    int64 `json:"file_id,string" binding:"required"`
}

type AttachmentResponse struct {
	ID        int64     `json:"id,string"`
	OrgID     int64     `json:"org_id,string"`
	MessageID int64     `json:"message_id,string"`
	FileID    int64     `json:"file_id,string"`
	CreatedAt time.Time `json:"created_at"`
}

func ToAttachmentResponse(a *model.Attachment) *AttachmentResponse {
	return &AttachmentResponse{
		ID:        a.ID,
		OrgID:     a.OrgID,
		MessageID: a.MessageID,
		FileID:    a.FileID,
		CreatedAt: a.CreatedAt,
	}
}

type AttachmentListResponse struct {
	Attachments []AttachmentResponse `json:"attachments"`
}

func ToAttachmentListResponse(atts []model.Attachment) *AttachmentListResponse {
	out := make([]AttachmentResponse, len(atts))
	for i := range atts {
		out[i] = *ToAttachmentResponse(&atts[i])
	}
	return &AttachmentListResponse{Attachments: out}
}
