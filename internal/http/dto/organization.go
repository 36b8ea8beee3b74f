package dto

import (
	"time"

	"tutorstack.app/api/internal/model"
)

type CreateOrganizationRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=255"`
	Slug        *string `json:"slug,omitempty" binding:"omitempty,max=255"`
	Type        string  `json:"type" binding:"omitempty,oneof=personal education household business"`
	OwnerUserID int64   `json:"owner_user_id,string" binding:"required"`
}

type OrganizationResponse struct {
	ID               int64      `json:"id,string"`
	Name             string     `json:"name"`
	Slug             string     `json:"slug"`
	Type             string     `json:"type"`
	LifecycleStatus  string     `json:"lifecycle_status"`
	DisabledAt       *time.Time `json:"disabled_at,omitempty"`
	DeletedAt        *time.Time `json:"deleted_at,omitempty"`
	PurgeScheduledAt *time.Time `json:"purge_scheduled_at,omitempty"`
	RetentionDays    int        `json:"retention_days"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func ToOrganizationResponse(org *model.Org) *OrganizationResponse {
	return &OrganizationResponse{
		ID:               org.ID,
		Name:             org.Name,
		Slug:             org.Slug,
		Type:             string(org.Type),
		LifecycleStatus:  string(org.LifecycleStatus),
		DisabledAt:       org.DisabledAt,
		DeletedAt:        org.DeletedAt,
		PurgeScheduledAt: org.PurgeScheduledAt,
		RetentionDays:    org.RetentionDays,
		CreatedAt:        org.CreatedAt,
		UpdatedAt:        org.UpdatedAt,
	}
}

type OrgMemberResponse struct {
	OrgID    int64     `json:"org_id,string"`
	UserID   int64     `json:"user_id,string"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

func ToOrgMemberResponse(m model.OrgMember) OrgMemberResponse {
	return OrgMemberResponse{
		OrgID:    m.OrgID,
		UserID:   m.UserID,
		Role:     string(m.Role),
		JoinedAt: m.JoinedAt,
	}
}
