package product

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adaezeodina/beautyhub-backend/internal/cart"
)

// Resolver serves the cart engine's catalog lookups. Only active listings
// resolve; anything else reads as absent so stale cart references cannot
// reach a discontinued or drafted product.
type Resolver struct {
	repo *Repository
}

// NewResolver builds the cart-facing resolver.
func NewResolver(repo *Repository) *Resolver {
	return &Resolver{repo: repo}
}

func (r *Resolver) ResolveReference(ctx context.Context, productID uuid.UUID) (cart.ProductRef, error) {
	row, err := r.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return cart.ProductRef{}, cart.ErrProductNotFound
		}
		return cart.ProductRef{}, err
	}
	if !row.Purchasable() {
		return cart.ProductRef{}, cart.ErrProductNotFound
	}

	ref := cart.ProductRef{
		PriceCents: row.PriceCents,
		Stock:      row.StockQuantity,
		VendorID:   row.VendorID,
		Name:       row.Name,
	}
	if primary := row.Images.Primary(); primary != nil && primary.URL != "" {
		url := primary.URL
		ref.ImageURL = &url
	}
	return ref, nil
}
