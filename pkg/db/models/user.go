package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/adaezeodina/beautyhub-backend/pkg/enums"
)

// User represents the canonical identity entity. Vendors and beauty
// professionals are users whose role unlocks the verification pipeline.
type User struct {
	ID                 uuid.UUID                `gorm:"column:id;type:uuid;primaryKey"`
	Email              string                   `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash       string                   `gorm:"column:password_hash;not null"`
	FirstName          string                   `gorm:"column:first_name;not null"`
	LastName           string                   `gorm:"column:last_name;not null"`
	Phone              *string                  `gorm:"column:phone"`
	Role               enums.UserRole           `gorm:"column:role;type:text;not null;default:'customer'"`
	VerificationStatus enums.VerificationStatus `gorm:"column:verification_status;type:text;not null;default:'unverified'"`
	BusinessName       *string                  `gorm:"column:business_name"`
	Bio                *string                  `gorm:"column:bio"`
	ProfileImageURL    *string                  `gorm:"column:profile_image_url"`
	IsActive           bool                     `gorm:"column:is_active;not null;default:true"`
	LastLoginAt        *time.Time               `gorm:"column:last_login_at"`
	CreatedAt          time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}

// IsVendor reports whether the account sells on the marketplace.
func (u *User) IsVendor() bool {
	return u.Role == enums.RoleVendor
}

// IsProfessional reports whether the account is subject to verification.
func (u *User) IsProfessional() bool {
	switch u.Role {
	case enums.RoleVendor, enums.RoleHairDresser, enums.RoleNailTechnician:
		return true
	default:
		return false
	}
}
