package model

import "time"

type SenderType string

const (
	SenderTypeUser SenderType = "user"
	SenderTypeAI   SenderType = "ai"
)

type MessageStatus string

const (
	MessageStatusSending MessageStatus = "sending"
	MessageStatusSent    MessageStatus = "sent"
	MessageStatusError   MessageStatus = "error"
)

type Message struct {
	ID             int64         `json:"id"`
	ThreadID       int64         `json:"thread_id"`
	SenderType     SenderType    `json:"sender_type"`
	SenderID       *int64        `json:"sender_id,omitempty"`
	Status         MessageStatus `json:"status"`
	Content        string        `json:"content"`
	IdempotencyKey *string       `json:"idempotency_key,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
}
