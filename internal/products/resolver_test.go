package product

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/adaezeodina/beautyhub-backend/internal/cart"
	"github.com/adaezeodina/beautyhub-backend/pkg/db/models"
	"github.com/adaezeodina/beautyhub-backend/pkg/enums"
	"github.com/adaezeodina/beautyhub-backend/pkg/types"
)

func newResolverTestDB(t *testing.T) (*Resolver, *gorm.DB) {
	t.Helper()
	dsn := "file:resolver_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewResolver(NewRepository(conn)), conn
}

func TestResolveReference(t *testing.T) {
	t.Parallel()

	resolver, conn := newResolverTestDB(t)
	vendorID := uuid.New()
	row := &models.Product{
		VendorID:      vendorID,
		Name:          "Deep Wave Bundle",
		Description:   "d",
		Category:      enums.CategoryWeavingHair,
		Status:        enums.ProductActive,
		PriceCents:    4500,
		Currency:      "USD",
		StockQuantity: 12,
		Images: types.Images{
			{URL: "https://cdn.example.com/a.jpg"},
			{URL: "https://cdn.example.com/b.jpg", IsPrimary: true},
		},
	}
	if err := conn.Create(row).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}

	ref, err := resolver.ResolveReference(context.Background(), row.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if ref.PriceCents != 4500 || ref.Stock != 12 || ref.VendorID != vendorID {
		t.Fatalf("unexpected ref %+v", ref)
	}
	if ref.ImageURL == nil || *ref.ImageURL != "https://cdn.example.com/b.jpg" {
		t.Fatalf("expected primary image, got %v", ref.ImageURL)
	}
}

func TestResolveReferenceAbsent(t *testing.T) {
	t.Parallel()

	resolver, conn := newResolverTestDB(t)

	_, err := resolver.ResolveReference(context.Background(), uuid.New())
	if !errors.Is(err, cart.ErrProductNotFound) {
		t.Fatalf("expected product-not-found, got %v", err)
	}

	// Non-active listings resolve as absent too.
	draft := &models.Product{
		VendorID:      uuid.New(),
		Name:          "Draft",
		Description:   "d",
		Category:      enums.CategoryWigs,
		Status:        enums.ProductDraft,
		PriceCents:    100,
		Currency:      "USD",
		StockQuantity: 1,
	}
	if err := conn.Create(draft).Error; err != nil {
		t.Fatalf("seed draft: %v", err)
	}
	_, err = resolver.ResolveReference(context.Background(), draft.ID)
	if !errors.Is(err, cart.ErrProductNotFound) {
		t.Fatalf("expected product-not-found for draft, got %v", err)
	}
}
