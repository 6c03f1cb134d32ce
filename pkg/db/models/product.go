package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/adaezeodina/beautyhub-backend/pkg/enums"
	"github.com/adaezeodina/beautyhub-backend/pkg/types"
)

// Product represents a vendor catalog listing.
type Product struct {
	ID            uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	VendorID      uuid.UUID             `gorm:"column:vendor_id;type:uuid;not null;index"`
	Name          string                `gorm:"column:name;not null"`
	Description   string                `gorm:"column:description;not null"`
	Category      enums.ProductCategory `gorm:"column:category;type:text;not null"`
	Status        enums.ProductStatus   `gorm:"column:status;type:text;not null;default:'draft'"`
	PriceCents    int64                 `gorm:"column:price_cents;not null"`
	Currency      string                `gorm:"column:currency;not null;default:'USD'"`
	StockQuantity int                   `gorm:"column:stock_quantity;not null;default:0"`
	HairType      *enums.HairType       `gorm:"column:hair_type;type:text"`
	HairTexture   *enums.HairTexture    `gorm:"column:hair_texture;type:text"`
	LengthInches  *int                  `gorm:"column:length_inches"`
	Color         *string               `gorm:"column:color"`
	Tags          pq.StringArray        `gorm:"column:tags;type:text[]"`
	Images        types.Images          `gorm:"column:images;type:jsonb;serializer:json"`
	CreatedAt     time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// Purchasable reports whether cart writes may reference the listing.
func (p *Product) Purchasable() bool {
	return p.Status == enums.ProductActive
}
