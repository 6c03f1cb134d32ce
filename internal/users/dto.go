package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/adaezeodina/beautyhub-backend/pkg/db/models"
	"github.com/adaezeodina/beautyhub-backend/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID                 uuid.UUID                `json:"id"`
	Email              string                   `json:"email"`
	FirstName          string                   `json:"first_name"`
	LastName           string                   `json:"last_name"`
	Phone              *string                  `json:"phone,omitempty"`
	Role               enums.UserRole           `json:"role"`
	VerificationStatus enums.VerificationStatus `json:"verification_status"`
	BusinessName       *string                  `json:"business_name,omitempty"`
	Bio                *string                  `json:"bio,omitempty"`
	ProfileImageURL    *string                  `json:"profile_image_url,omitempty"`
	IsActive           bool                     `json:"is_active"`
	LastLoginAt        *time.Time               `json:"last_login_at,omitempty"`
	CreatedAt          time.Time                `json:"created_at"`
	UpdatedAt          time.Time                `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        *string
	Role         enums.UserRole
	BusinessName *string
	Bio          *string
}

// UpdateProfileDTO carries the mutable profile fields. Nil pointers leave the
// stored value untouched.
type UpdateProfileDTO struct {
	FirstName    *string
	LastName     *string
	Phone        *string
	BusinessName *string
	Bio          *string
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:                 u.ID,
		Email:              u.Email,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		Phone:              u.Phone,
		Role:               u.Role,
		VerificationStatus: u.VerificationStatus,
		BusinessName:       u.BusinessName,
		Bio:                u.Bio,
		ProfileImageURL:    u.ProfileImageURL,
		IsActive:           u.IsActive,
		LastLoginAt:        u.LastLoginAt,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	role := c.Role
	if role == "" {
		role = enums.RoleCustomer
	}

	status := enums.VerificationUnverified
	if role == enums.RoleCustomer || role == enums.RoleAdmin {
		// Customers and admins never enter the verification pipeline.
		status = enums.VerificationApproved
	}

	return &models.User{
		Email:              c.Email,
		PasswordHash:       c.PasswordHash,
		FirstName:          c.FirstName,
		LastName:           c.LastName,
		Phone:              c.Phone,
		Role:               role,
		VerificationStatus: status,
		BusinessName:       c.BusinessName,
		Bio:                c.Bio,
		IsActive:           true,
	}
}
