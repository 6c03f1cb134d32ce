package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	"gorm.io/gorm"

	"github.com/adaezeodina/beautyhub-backend/pkg/config"
	"github.com/adaezeodina/beautyhub-backend/pkg/db/models"
	pkgerrors "github.com/adaezeodina/beautyhub-backend/pkg/errors"
	"github.com/adaezeodina/beautyhub-backend/pkg/logger"
)

// appendRaceAttempts bounds the append-then-increment loop inside AddItem.
// The loop only repeats when a concurrent removal lands in the window between
// a lost append and the increment, so a couple of laps settle it.
const appendRaceAttempts = 3

const defaultStoreRetryBackoff = 50 * time.Millisecond

// ProductRef is the snapshot the engine needs from the catalog on every
// write. Price is always taken from here, never from a previously stored
// line.
type ProductRef struct {
	PriceCents int64
	Stock      int
	VendorID   uuid.UUID
	Name       string
	ImageURL   *string
}

// ProductResolver is the catalog lookup consumed by the engine.
type ProductResolver interface {
	ResolveReference(ctx context.Context, productID uuid.UUID) (ProductRef, error)
}

// ErrProductNotFound is returned by resolvers for unknown or unpurchasable
// products; the engine maps it onto the coded error surface.
var ErrProductNotFound = errors.New("product not found")

// ClearedSink is notified after a successful ClearCart. Optional.
type ClearedSink interface {
	CartCleared(ctx context.Context, cartID, ownerID uuid.UUID, removedItems int) error
}

// Service is the cart mutation engine. Correctness under concurrent callers
// comes from the store's conditional writes; every operation recomputes the
// derived totals from a fresh read before returning.
type Service interface {
	GetCart(ctx context.Context, ownerID uuid.UUID) (Projection, error)
	AddItem(ctx context.Context, ownerID, productID, vendorID uuid.UUID, quantity int) (Projection, error)
	UpdateItemQuantity(ctx context.Context, ownerID, itemID uuid.UUID, quantity int) (Projection, error)
	RemoveItem(ctx context.Context, ownerID, itemID uuid.UUID) (Projection, error)
	ClearCart(ctx context.Context, ownerID uuid.UUID) (Projection, error)
}

type service struct {
	store    Store
	resolver ProductResolver
	cleared  ClearedSink
	cfg      config.CartConfig
	logg     *logger.Logger
}

// ServiceParams bundles the engine dependencies. ClearedSink and Logger are
// optional.
type ServiceParams struct {
	Store    Store
	Resolver ProductResolver
	Cleared  ClearedSink
	Config   config.CartConfig
	Logger   *logger.Logger
}

// NewService builds the cart engine.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if params.Resolver == nil {
		return nil, fmt.Errorf("product resolver required")
	}
	return &service{
		store:    params.Store,
		resolver: params.Resolver,
		cleared:  params.Cleared,
		cfg:      params.Config,
		logg:     params.Logger,
	}, nil
}

// GetCart projects the owner's cart. A never-created cart reads as empty and
// is not created by the read.
func (s *service) GetCart(ctx context.Context, ownerID uuid.UUID) (Projection, error) {
	cart, err := s.loadCart(ctx, ownerID)
	if err != nil {
		return Projection{}, err
	}
	return Project(cart), nil
}

// AddItem appends or merges one line. The caller may pass the vendor it
// believes owns the product; uuid.Nil skips the check. The resolved snapshot
// stays authoritative for the stored vendor either way.
func (s *service) AddItem(ctx context.Context, ownerID, productID, vendorID uuid.UUID, quantity int) (Projection, error) {
	if quantity < 1 {
		return Projection{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	ref, err := s.resolve(ctx, productID)
	if err != nil {
		return Projection{}, err
	}
	if vendorID != uuid.Nil && vendorID != ref.VendorID {
		return Projection{}, pkgerrors.New(pkgerrors.CodeValidation, "vendor does not match product")
	}

	if err := s.retryTransient(ctx, func(ctx context.Context) error {
		_, err := s.store.UpsertEmpty(ctx, ownerID)
		return err
	}); err != nil {
		return Projection{}, err
	}

	// Append first; on conflict fall back to an atomic increment against
	// the line's current persisted quantity. If a concurrent removal
	// deletes the line between those two writes, start the lap over.
	landed := false
	for attempt := 0; attempt < appendRaceAttempts && !landed; attempt++ {
		item := models.CartItem{
			ID:             uuid.New(),
			ProductID:      productID,
			VendorID:       ref.VendorID,
			ProductName:    ref.Name,
			UnitPriceCents: ref.PriceCents,
			Quantity:       quantity,
			ImageURL:       ref.ImageURL,
		}

		var appended bool
		if err := s.retryTransient(ctx, func(ctx context.Context) error {
			var err error
			appended, err = s.store.AppendItemIfAbsent(ctx, ownerID, item)
			return err
		}); err != nil {
			return Projection{}, err
		}
		if appended {
			landed = true
			break
		}

		var incremented bool
		if err := s.retryTransient(ctx, func(ctx context.Context) error {
			var err error
			incremented, err = s.store.AddItemQuantity(ctx, ownerID, productID, quantity, ref.PriceCents)
			return err
		}); err != nil {
			return Projection{}, err
		}
		landed = incremented
	}
	if !landed {
		return Projection{}, pkgerrors.New(pkgerrors.CodeConflict, "cart is changing concurrently, retry the request")
	}

	return s.refreshDerived(ctx, ownerID)
}

func (s *service) UpdateItemQuantity(ctx context.Context, ownerID, itemID uuid.UUID, quantity int) (Projection, error) {
	if quantity < 0 {
		return Projection{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}
	if quantity == 0 {
		return s.RemoveItem(ctx, ownerID, itemID)
	}

	cart, err := s.loadCart(ctx, ownerID)
	if err != nil {
		return Projection{}, err
	}
	item := findItem(cart, itemID)
	if item == nil {
		return Projection{}, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}

	// Stock is never cached in the cart; check against a fresh snapshot.
	ref, err := s.resolve(ctx, item.ProductID)
	if err != nil {
		return Projection{}, err
	}
	if quantity > ref.Stock {
		return Projection{}, pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock").
			WithDetails(map[string]any{"available": ref.Stock})
	}

	var updated bool
	if err := s.retryTransient(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.store.SetItemQuantity(ctx, ownerID, itemID, quantity, ref.PriceCents)
		return err
	}); err != nil {
		return Projection{}, err
	}
	if !updated {
		// The line vanished between our read and the write.
		return Projection{}, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}

	return s.refreshDerived(ctx, ownerID)
}

// RemoveItem deletes the line if it is still there. Removing an already
// removed item succeeds and just reports the current state.
func (s *service) RemoveItem(ctx context.Context, ownerID, itemID uuid.UUID) (Projection, error) {
	if err := s.retryTransient(ctx, func(ctx context.Context) error {
		return s.store.RemoveItem(ctx, ownerID, itemID)
	}); err != nil {
		return Projection{}, err
	}
	return s.refreshDerived(ctx, ownerID)
}

// ClearCart empties the item list; the aggregate row persists. Idempotent.
func (s *service) ClearCart(ctx context.Context, ownerID uuid.UUID) (Projection, error) {
	cart, err := s.loadCart(ctx, ownerID)
	if err != nil {
		return Projection{}, err
	}
	if cart == nil {
		return emptyProjection(), nil
	}
	removed := len(cart.Items)

	if err := s.retryTransient(ctx, func(ctx context.Context) error {
		return s.store.ReplaceAllItems(ctx, ownerID, nil)
	}); err != nil {
		return Projection{}, err
	}
	if err := s.retryTransient(ctx, func(ctx context.Context) error {
		return s.store.PersistDerived(ctx, ownerID, 0, 0)
	}); err != nil {
		return Projection{}, err
	}

	if s.cleared != nil && removed > 0 {
		if err := s.cleared.CartCleared(ctx, cart.ID, ownerID, removed); err != nil && s.logg != nil {
			s.logg.Error(ctx, "cart cleared notification failed", err)
		}
	}
	return emptyProjection(), nil
}

// refreshDerived recomputes the totals from a fresh read and persists the
// cache. The projection returned to the caller is built from that same
// read, so totals and items always agree.
func (s *service) refreshDerived(ctx context.Context, ownerID uuid.UUID) (Projection, error) {
	cart, err := s.loadCart(ctx, ownerID)
	if err != nil {
		return Projection{}, err
	}
	if cart == nil {
		return emptyProjection(), nil
	}

	projection := Project(cart)
	if err := s.retryTransient(ctx, func(ctx context.Context) error {
		return s.store.PersistDerived(ctx, ownerID, projection.ItemCount, projection.TotalCents)
	}); err != nil {
		return Projection{}, err
	}
	return projection, nil
}

// loadCart reads the aggregate, mapping absence to nil instead of an error.
func (s *service) loadCart(ctx context.Context, ownerID uuid.UUID) (*models.Cart, error) {
	var cart *models.Cart
	err := s.retryTransient(ctx, func(ctx context.Context) error {
		loaded, err := s.store.GetByOwner(ctx, ownerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				cart = nil
				return nil
			}
			return err
		}
		cart = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *service) resolve(ctx context.Context, productID uuid.UUID) (ProductRef, error) {
	ref, err := s.resolver.ResolveReference(ctx, productID)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return ProductRef{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return ProductRef{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve product")
	}
	return ref, nil
}

// retryTransient retries idempotent store operations a bounded number of
// times with constant backoff before surfacing a dependency error.
func (s *service) retryTransient(ctx context.Context, fn func(ctx context.Context) error) error {
	attempts := s.cfg.StoreRetries
	if attempts < 0 {
		attempts = 0
	}
	backoff := retry.WithMaxRetries(uint64(attempts), retry.NewConstant(s.backoffInterval()))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := fn(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cart storage unavailable")
	}
	return nil
}

func (s *service) backoffInterval() time.Duration {
	if s.cfg.StoreRetryBackoff > 0 {
		return s.cfg.StoreRetryBackoff
	}
	return defaultStoreRetryBackoff
}

func findItem(cart *models.Cart, itemID uuid.UUID) *models.CartItem {
	if cart == nil {
		return nil
	}
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			return &cart.Items[i]
		}
	}
	return nil
}
