package media

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adaezeodina/beautyhub-backend/pkg/db/models"
	"github.com/adaezeodina/beautyhub-backend/pkg/enums"
)

// Repository exposes media persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a media repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new media row.
func (r *Repository) Create(ctx context.Context, media *models.Media) (*models.Media, error) {
	if err := r.db.WithContext(ctx).Create(media).Error; err != nil {
		return nil, err
	}
	return media, nil
}

// FindByID loads a media row.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Media, error) {
	var media models.Media
	if err := r.db.WithContext(ctx).First(&media, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &media, nil
}

// Delete removes the row. Used to roll back intents whose URL signing failed.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Media{}, "id = ?", id).Error
}

// MarkUploadedTx finalizes a pending intent inside the caller's transaction.
// Conditional on the current status so a double confirm cannot flip a
// deleted or failed row back to uploaded.
func (r *Repository) MarkUploadedTx(tx *gorm.DB, id uuid.UUID, url string) (bool, error) {
	result := tx.Model(&models.Media{}).
		Where("id = ? AND status = ?", id, enums.MediaPending).
		Updates(map[string]any{
			"status": enums.MediaUploaded,
			"url":    url,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// AttachToProduct links an uploaded image to a product listing.
func (r *Repository) AttachToProduct(ctx context.Context, id, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Media{}).
		Where("id = ?", id).
		UpdateColumn("product_id", productID).Error
}

// ListPendingBefore returns upload intents still pending past the cutoff.
// These are intents whose client never confirmed the upload.
func (r *Repository) ListPendingBefore(ctx context.Context, cutoff time.Time) ([]models.Media, error) {
	var rows []models.Media
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", enums.MediaPending, cutoff).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteTx removes a row inside the caller's transaction.
func (r *Repository) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	if tx == nil {
		return errors.New("transaction required")
	}
	return tx.Delete(&models.Media{}, "id = ?", id).Error
}

// ListByOwner returns the owner's media, newest first, optionally filtered
// by kind.
func (r *Repository) ListByOwner(ctx context.Context, ownerID uuid.UUID, kind *enums.MediaKind, limit int) ([]models.Media, error) {
	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if kind != nil {
		query = query.Where("kind = ?", *kind)
	}
	var rows []models.Media
	err := query.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
