package dto

import (
	"time"

	"tutorstack.app/api/internal/model"
)

type CreateFolderRequest struct {
	OwnerUserID int64   `json:"owner_user_id,string" binding:"required"`
	ParentID    *int64  `json:"parent_id,string,omitempty"`
	Type        string  `json:"type" binding:"omitempty,oneof=project folder"`
	Name        string  `json:"name" binding:"required,min=1,max=255"`
	SortOrder   float64 `json:"sort_order"`
}

type FolderResponse struct {
	ID          int64     `json:"id,string"`
	OrgID       int64     `json:"org_id,string"`
	OwnerUserID int64     `json:"owner_user_id,string"`
	ParentID    *int64    `json:"parent_id,string,omitempty"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Name        string    `json:"name"`
	SortOrder   float64   `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToFolderResponse(f *model.Folder) *FolderResponse {
	return &FolderResponse{
		ID:          f.ID,
		OrgID:       f.OrgID,
		OwnerUserID: f.OwnerUserID,
		ParentID:    f.ParentID,
		Type:        string(f.Type),
		Status:      string(f.Status),
		Name:        f.Name,
		SortOrder:   f.SortOrder,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}
