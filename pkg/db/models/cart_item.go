package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is one product line inside a cart. The composite unique index on
// (cart_id, product_id) keeps concurrent adds of the same product from
// producing duplicate lines.
type CartItem struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	CartID         uuid.UUID `gorm:"column:cart_id;type:uuid;not null;uniqueIndex:idx_cart_items_cart_product"`
	ProductID      uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_cart_items_cart_product"`
	VendorID       uuid.UUID `gorm:"column:vendor_id;type:uuid;not null"`
	ProductName    string    `gorm:"column:product_name;not null"`
	UnitPriceCents int64     `gorm:"column:unit_price_cents;not null"`
	Quantity       int       `gorm:"column:quantity;not null"`
	ImageURL       *string   `gorm:"column:image_url"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// LineSubtotalCents is the derived per-line amount. It is never persisted;
// totals are recomputed from quantity and unit price on every read.
func (i *CartItem) LineSubtotalCents() int64 {
	return i.UnitPriceCents * int64(i.Quantity)
}
