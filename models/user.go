package models

import (
	"time"
)

type UserRole string

const (
	RoleMember UserRole = "member"
	RoleCoach  UserRole = "coach"
	RoleAdmin  UserRole = "admin"
)

type MembershipPlan string

const (
	PlanBasic    MembershipPlan = "basic"
	PlanStandard MembershipPlan = "standard"
	PlanPremium  MembershipPlan = "premium"
)

// User is a club member account. The password never leaves the service layer.
type User struct {
	ID           string   `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Name         string   `gorm:"not null" json:"name"`
	AvatarURL    *string  `json:"avatar_url,omitempty"`
	Role         UserRole `gorm:"type:varchar(16);default:'member'" json:"role"`

	MembershipPlan      MembershipPlan `gorm:"type:varchar(16);default:'basic'" json:"membership_plan"`
	MembershipExpiresAt *time.Time     `json:"membership_expires_at,omitempty"`

	LastSeenAt *time.Time `json:"last_seen_at,omitempty"`

	Timestamps
}

// AccessCode is a single-use registration code issued by an admin.
// Redeemed (and marked used) during registration.
type AccessCode struct {
	ID        string     `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Code      string     `gorm:"uniqueIndex;not null" json:"code"`
	IssuedBy  string     `gorm:"index;not null" json:"issued_by"`
	Plan      MembershipPlan `gorm:"type:varchar(16);default:'basic'" json:"plan"`
	UsedBy    *string    `json:"used_by,omitempty"`
	UsedAt    *time.Time `json:"used_at,omitempty"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}
