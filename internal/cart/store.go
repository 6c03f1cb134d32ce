package cart

import (
	"context"

	"github.com/google/uuid"

	"github.com/adaezeodina/beautyhub-backend/pkg/db/models"
)

// Store is the persistence contract for cart aggregates. Every mutation is a
// single conditional write at the storage layer; the engine composes them and
// never holds a lock across calls.
type Store interface {
	// GetByOwner loads the cart with its items in stable insertion order.
	// Returns gorm.ErrRecordNotFound when the owner has no cart.
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Cart, error)

	// UpsertEmpty idempotently ensures a cart exists for the owner. Under
	// concurrent callers at most one row is ever created; everyone reads
	// back the same aggregate.
	UpsertEmpty(ctx context.Context, ownerID uuid.UUID) (*models.Cart, error)

	// AppendItemIfAbsent inserts the item only if no line for the same
	// product exists yet. Returns false when the insert lost to an existing
	// line, in which case the caller falls back to AddItemQuantity.
	AppendItemIfAbsent(ctx context.Context, ownerID uuid.UUID, item models.CartItem) (bool, error)

	// AddItemQuantity atomically adds delta to the line's current persisted
	// quantity and refreshes the price snapshot, keyed by (cart, product).
	// Returns false when no such line exists anymore.
	AddItemQuantity(ctx context.Context, ownerID, productID uuid.UUID, delta int, unitPriceCents int64) (bool, error)

	// SetItemQuantity atomically overwrites the line's quantity and price
	// snapshot, keyed by item id. Returns false when the line is gone.
	SetItemQuantity(ctx context.Context, ownerID, itemID uuid.UUID, quantity int, unitPriceCents int64) (bool, error)

	// RemoveItem deletes the line by item id. Removing an absent line is a
	// no-op, not an error.
	RemoveItem(ctx context.Context, ownerID, itemID uuid.UUID) error

	// ReplaceAllItems swaps the whole item list. An empty slice clears the
	// cart while the aggregate row persists.
	ReplaceAllItems(ctx context.Context, ownerID uuid.UUID, items []models.CartItem) error

	// PersistDerived caches the recomputed totals on the aggregate row.
	// The cache is never read for correctness; reads recompute from items.
	PersistDerived(ctx context.Context, ownerID uuid.UUID, itemCount int, totalCents int64) error
}
