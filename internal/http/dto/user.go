package dto

import (
	"time"

	"tutorstack.app/api/internal/model"
)

type CreateUserRequest struct {
	Name         string `json:"name" binding:"required,min=1,max=255"`
	Email        string `json:"email" binding:"required,email,max=255"`
	PrimaryOrgID int64  `json:"primary_org_id,string" binding:"required"`
}

type UserResponse struct {
	ID           int64     `json:"id,string"`
	PrimaryOrgID int64     `json:"primary_org_id,string"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ToUserResponse(u *model.User) *UserResponse {
	return &UserResponse{
		ID:           u.ID,
		PrimaryOrgID: u.PrimaryOrgID,
		Name:         u.Name,
		Email:        u.Email,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
