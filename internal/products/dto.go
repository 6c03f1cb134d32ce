package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/adaezeodina/beautyhub-backend/pkg/db/models"
	"github.com/adaezeodina/beautyhub-backend/pkg/enums"
	"github.com/adaezeodina/beautyhub-backend/pkg/types"
)

// ProductDTO is the transport representation of a catalog listing.
type ProductDTO struct {
	ID            uuid.UUID             `json:"id"`
	VendorID      uuid.UUID             `json:"vendor_id"`
	Name          string                `json:"name"`
	Description   string                `json:"description"`
	Category      enums.ProductCategory `json:"category"`
	Status        enums.ProductStatus   `json:"status"`
	PriceCents    int64                 `json:"price_cents"`
	Price         string                `json:"price"`
	Currency      string                `json:"currency"`
	StockQuantity int                   `json:"stock_quantity"`
	HairType      *enums.HairType       `json:"hair_type,omitempty"`
	HairTexture   *enums.HairTexture    `json:"hair_texture,omitempty"`
	LengthInches  *int                  `json:"length_inches,omitempty"`
	Color         *string               `json:"color,omitempty"`
	Tags          []string              `json:"tags"`
	Images        types.Images          `json:"images"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// FromModel converts the stored row into its transport shape.
func FromModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	return &ProductDTO{
		ID:            p.ID,
		VendorID:      p.VendorID,
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		Status:        p.Status,
		PriceCents:    p.PriceCents,
		Price:         decimal.NewFromInt(p.PriceCents).Div(decimal.NewFromInt(100)).StringFixed(2),
		Currency:      p.Currency,
		StockQuantity: p.StockQuantity,
		HairType:      p.HairType,
		HairTexture:   p.HairTexture,
		LengthInches:  p.LengthInches,
		Color:         p.Color,
		Tags:          append([]string(nil), p.Tags...),
		Images:        p.Images,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// CreateProductInput holds the validated payload to create a listing.
type CreateProductInput struct {
	Name          string
	Description   string
	Category      enums.ProductCategory
	Price         decimal.Decimal
	StockQuantity int
	HairType      *enums.HairType
	HairTexture   *enums.HairTexture
	LengthInches  *int
	Color         *string
	Tags          []string
	ImageMediaIDs []uuid.UUID
}

// UpdateProductInput holds optional mutation values for a listing. Nil
// pointers leave the stored value untouched.
type UpdateProductInput struct {
	Name          *string
	Description   *string
	Category      *enums.ProductCategory
	Price         *decimal.Decimal
	StockQuantity *int
	HairType      *enums.HairType
	HairTexture   *enums.HairTexture
	LengthInches  *int
	Color         *string
	Tags          *[]string
	ImageMediaIDs *[]uuid.UUID
}
