package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a customer's rating of a vendor or beauty professional. Each
// customer gets one review per professional; the reviewed account may attach
// a single public response.
type Review struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	ProfessionalID uuid.UUID  `gorm:"column:professional_id;type:uuid;not null;uniqueIndex:idx_reviews_professional_customer"`
	CustomerID     uuid.UUID  `gorm:"column:customer_id;type:uuid;not null;uniqueIndex:idx_reviews_professional_customer"`
	Rating         int        `gorm:"column:rating;not null"`
	Comment        string     `gorm:"column:comment;not null"`
	Response       *string    `gorm:"column:response"`
	RespondedAt    *time.Time `gorm:"column:responded_at"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
