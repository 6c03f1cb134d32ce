package cart

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/adaezeodina/beautyhub-backend/pkg/db/models"
)

// GormStore implements Store on the relational schema. The two unique
// indexes, carts(owner_id) and cart_items(cart_id, product_id), are what the
// conditional writes lean on: concurrent creations and concurrent appends
// collapse at the database instead of racing in application code.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore builds a store bound to the provided GORM DB.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.created_at ASC, cart_items.id ASC")
		}).
		First(&cart, "owner_id = ?", ownerID).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *GormStore) UpsertEmpty(ctx context.Context, ownerID uuid.UUID) (*models.Cart, error) {
	cart := models.Cart{OwnerID: ownerID}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_id"}},
			DoNothing: true,
		}).
		Create(&cart).Error
	if err != nil {
		return nil, err
	}
	// Read back regardless: on conflict the insert was a no-op and the
	// generated ID above never landed.
	return s.GetByOwner(ctx, ownerID)
}

func (s *GormStore) AppendItemIfAbsent(ctx context.Context, ownerID uuid.UUID, item models.CartItem) (bool, error) {
	cartID, err := s.cartID(ctx, ownerID)
	if err != nil {
		return false, err
	}
	item.CartID = cartID

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
			DoNothing: true,
		}).
		Create(&item)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *GormStore) AddItemQuantity(ctx context.Context, ownerID, productID uuid.UUID, delta int, unitPriceCents int64) (bool, error) {
	cartID, err := s.cartID(ctx, ownerID)
	if err != nil {
		return false, err
	}

	result := s.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Updates(map[string]any{
			"quantity":         gorm.Expr("quantity + ?", delta),
			"unit_price_cents": unitPriceCents,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *GormStore) SetItemQuantity(ctx context.Context, ownerID, itemID uuid.UUID, quantity int, unitPriceCents int64) (bool, error) {
	cartID, err := s.cartID(ctx, ownerID)
	if err != nil {
		return false, err
	}

	result := s.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Updates(map[string]any{
			"quantity":         quantity,
			"unit_price_cents": unitPriceCents,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *GormStore) RemoveItem(ctx context.Context, ownerID, itemID uuid.UUID) error {
	cartID, err := s.cartID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return s.db.WithContext(ctx).
		Delete(&models.CartItem{}, "id = ? AND cart_id = ?", itemID, cartID).Error
}

func (s *GormStore) ReplaceAllItems(ctx context.Context, ownerID uuid.UUID, items []models.CartItem) error {
	cartID, err := s.cartID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) && len(items) == 0 {
			return nil
		}
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.CartItem{}, "cart_id = ?", cartID).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].CartID = cartID
		}
		return tx.Create(&items).Error
	})
}

func (s *GormStore) PersistDerived(ctx context.Context, ownerID uuid.UUID, itemCount int, totalCents int64) error {
	return s.db.WithContext(ctx).
		Model(&models.Cart{}).
		Where("owner_id = ?", ownerID).
		Updates(map[string]any{
			"item_count":     itemCount,
			"subtotal_cents": totalCents,
		}).Error
}

// PurgeStaleBefore empties carts untouched since the cutoff. Maintenance
// path only; it is not part of the Store contract the engine consumes.
func (s *GormStore) PurgeStaleBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error) {
	if tx == nil {
		return 0, errors.New("transaction required")
	}
	// Select on the item rows themselves; the cached item_count is derived
	// state and is never trusted as a predicate.
	var cartIDs []uuid.UUID
	err := tx.WithContext(ctx).
		Model(&models.Cart{}).
		Where("updated_at < ?", cutoff).
		Where("EXISTS (SELECT 1 FROM cart_items WHERE cart_items.cart_id = carts.id)").
		Pluck("id", &cartIDs).Error
	if err != nil {
		return 0, err
	}
	if len(cartIDs) == 0 {
		return 0, nil
	}
	if err := tx.Delete(&models.CartItem{}, "cart_id IN ?", cartIDs).Error; err != nil {
		return 0, err
	}
	err = tx.Model(&models.Cart{}).
		Where("id IN ?", cartIDs).
		Updates(map[string]any{
			"item_count":     0,
			"subtotal_cents": 0,
		}).Error
	if err != nil {
		return 0, err
	}
	return int64(len(cartIDs)), nil
}

func (s *GormStore) cartID(ctx context.Context, ownerID uuid.UUID) (uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.db.WithContext(ctx).
		Model(&models.Cart{}).
		Where("owner_id = ?", ownerID).
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return uuid.Nil, err
	}
	if len(ids) == 0 || ids[0] == uuid.Nil {
		return uuid.Nil, gorm.ErrRecordNotFound
	}
	return ids[0], nil
}
