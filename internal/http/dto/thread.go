package dto

import (
	"time"

	"tutorstack.app/api/internal/model"
)

type CreateThreadRequest struct {
	UserID    int64   `json:"user_id,string" binding:"required"`
	FolderID  *int64  `json:"folder_id,string,omitempty"`
	Title     *string `json:"title,omitempty" binding:"omitempty,max=500"`
	SortOrder float64 `json:"sort_order"`
}

type UpdateThreadRequest struct {
	FolderID  *int64   `json:"folder_id,string,omitempty"`
	Title     *string  `json:"title,omitempty" binding:"omitempty,max=500"`
	Status    *string  `json:"status,omitempty" binding:"omitempty,oneof=active archived"`
	SortOrder *float64 `json:"sort_order,omitempty"`
}

type ThreadResponse struct {
	ID        int64     `json:"id,string"`
	OrgID     int64     `json:"org_id,string"`
	UserID    int64     `json:"user_id,string"`
	FolderID  *int64    `json:"folder_id,string,omitempty"`
	Title     *string   `json:"title,omitempty"`
	Status    string    `json:"status"`
	SortOrder float64   `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToThreadResponse(t *model.Thread) *ThreadResponse {
	return &ThreadResponse{
		ID:        t.ID,
		OrgID:     t.OrgID,
		UserID:    t.UserID,
		FolderID:  t.FolderID,
		Title:     t.Title,
		Status:    string(t.Status),
		SortOrder: t.SortOrder,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

type ThreadListResponse struct {
	Threads    []ThreadResponse `json:"threads"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

func ToThreadListResponse(threads []model.Thread, nextCursor string) *ThreadListResponse {
	out := make([]ThreadResponse, len(threads))
	for i := range threads {
		out[i] = *ToThreadResponse(&threads[i])
	}
	return &ThreadListResponse{Threads: out, NextCursor: nextCursor}
}
