package vendors

import (
	"time"

	"github.com/google/uuid"

	"github.com/adaezeodina/beautyhub-backend/pkg/enums"
)

// SubmitVerificationRequest lists the uploaded documents backing the claim.
type SubmitVerificationRequest struct {
	DocumentIDs []uuid.UUID `json:"document_ids" validate:"required,min=1"`
}

// ReviewRequest is the admin decision payload.
type ReviewRequest struct {
	Approve bool    `json:"approve"`
	Notes   *string `json:"notes,omitempty"`
}

// PendingVendorDTO summarizes an account awaiting review.
type PendingVendorDTO struct {
	UserID       uuid.UUID      `json:"user_id"`
	Email        string         `json:"email"`
	FirstName    string         `json:"first_name"`
	LastName     string         `json:"last_name"`
	Role         enums.UserRole `json:"role"`
	BusinessName *string        `json:"business_name,omitempty"`
	DocumentIDs  []uuid.UUID    `json:"document_ids"`
	SubmittedAt  time.Time      `json:"submitted_at"`
}

// ReviewResult reports the post-decision state.
type ReviewResult struct {
	UserID     uuid.UUID                `json:"user_id"`
	Status     enums.VerificationStatus `json:"status"`
	ReviewedBy uuid.UUID                `json:"reviewed_by"`
	ReviewedAt time.Time                `json:"reviewed_at"`
}
