package model

import "time"

type OrgType string

const (
	OrgTypePersonal  OrgType = "personal"
	OrgTypeEducation OrgType = "education"
	OrgTypeHousehold OrgType = "household"
	OrgTypeBusiness  OrgType = "business"
)

// OrgLifecycleStatus tracks an organization through its retention-governed
// deletion lifecycle: active -> disabled -> deleted -> purged.
type OrgLifecycleStatus string

const (
	OrgStatusActive   OrgLifecycleStatus = "active"
	OrgStatusDisabled OrgLifecycleStatus = "disabled"
	OrgStatusDeleted  OrgLifecycleStatus = "deleted"
	OrgStatusPurged   OrgLifecycleStatus = "purged"
)

const DefaultRetentionDays = 90

type Org struct {
	ID               int64              `json:"id"`
	Name             string             `json:"name"`
	Slug             string             `json:"slug"`
	Type             OrgType            `json:"type"`
	LifecycleStatus  OrgLifecycleStatus `json:"lifecycle_status"`
	DisabledAt       *time.Time         `json:"disabled_at,omitempty"`
	DeletedAt        *time.Time         `json:"deleted_at,omitempty"`
	PurgeScheduledAt *time.Time         `json:"purge_scheduled_at,omitempty"`
	RetentionDays    int                `json:"retention_days"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}
