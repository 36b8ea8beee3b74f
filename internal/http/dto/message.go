package dto

import (
	"time"

	"tutorstack.app/api/internal/model"
)

type CreateMessageRequest struct {
	SenderType     string  `json:"sender_type" binding:"required,oneof=user ai"`
	SenderID       *int64  `json:"sender_id,string,omitempty"`
	Content        string  `json:"content" binding:"required"`
	IdempotencyKey *string `json:"idempotency_key,omitempty" binding:"omitempty,max=255"`
}

type MessageResponse struct {
	ID         int64     `json:"id,string"`
	ThreadID   int64     `json:"thread_id,string"`
	SenderType string    `json:"sender_type"`
	SenderID   *int64    `json:"sender_id,string,omitempty"`
	Status     string    `json:"status"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

func ToMessageResponse(m *model.Message) *MessageResponse {
	return &MessageResponse{
		ID:         m.ID,
		ThreadID:   m.ThreadID,
		SenderType: string(m.SenderType),
		SenderID:   m.SenderID,
		Status:     string(m.Status),
		Content:    m.Content,
		CreatedAt:  m.CreatedAt,
	}
}

type MessageListResponse struct {
	Messages   []MessageResponse `json:"messages"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

func ToMessageListResponse(messages []model.Message, nextCursor string) *MessageListResponse {
	out := make([]MessageResponse, len(messages))
	for i := range messages {
		out[i] = *ToMessageResponse(&messages[i])
	}
	return &MessageListResponse{Messages: out, NextCursor: nextCursor}
}
