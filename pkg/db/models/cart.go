package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart is the single mutable cart owned by a user. The unique index on
// owner_id is what makes concurrent first-write cart creation converge on
// one row.
type Cart struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	OwnerID       uuid.UUID  `gorm:"column:owner_id;type:uuid;not null;uniqueIndex:idx_carts_owner_id"`
	SubtotalCents int64      `gorm:"column:subtotal_cents;not null;default:0"`
	ItemCount     int        `gorm:"column:item_count;not null;default:0"`
	Items         []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
