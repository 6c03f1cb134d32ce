package payloads

import (
	"time"

	"github.com/google/uuid"

	"github.com/adaezeodina/beautyhub-backend/pkg/enums"
)

// VendorVerifiedEvent is emitted when an admin approves a vendor or
// professional account.
type VendorVerifiedEvent struct {
	UserID     uuid.UUID      `json:"user_id"`
	Role       enums.UserRole `json:"role"`
	ReviewedBy uuid.UUID      `json:"reviewed_by"`
	ReviewedAt time.Time      `json:"reviewed_at"`
}

// VendorRejectedEvent is emitted when an admin rejects a verification request.
type VendorRejectedEvent struct {
	UserID     uuid.UUID      `json:"user_id"`
	Role       enums.UserRole `json:"role"`
	ReviewedBy uuid.UUID      `json:"reviewed_by"`
	ReviewedAt time.Time      `json:"reviewed_at"`
	Reason     string         `json:"reason,omitempty"`
}

// ProductPublishedEvent is emitted the first time a listing goes active.
type ProductPublishedEvent struct {
	ProductID  uuid.UUID             `json:"product_id"`
	VendorID   uuid.UUID             `json:"vendor_id"`
	Name       string                `json:"name"`
	Category   enums.ProductCategory `json:"category"`
	PriceCents int64                 `json:"price_cents"`
}

// MediaUploadedEvent is emitted once an upload intent is finalized.
type MediaUploadedEvent struct {
	MediaID uuid.UUID       `json:"media_id"`
	OwnerID uuid.UUID       `json:"owner_id"`
	Kind    enums.MediaKind `json:"kind"`
	GCSKey  string          `json:"gcs_key"`
}

// CartClearedEvent reports a cart wipe, mostly for analytics consumers.
type CartClearedEvent struct {
	CartID       uuid.UUID `json:"cart_id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	RemovedItems int       `json:"removed_items"`
}
