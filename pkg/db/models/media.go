package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/adaezeodina/beautyhub-backend/pkg/enums"
)

// Media captures metadata for uploaded objects across the platform. Rows are
// created as pending upload intents and finalized once the object lands in
// the bucket.
type Media struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	OwnerID   uuid.UUID         `gorm:"column:owner_id;type:uuid;not null;index"`
	ProductID *uuid.UUID        `gorm:"column:product_id;type:uuid"`
	Kind      enums.MediaKind   `gorm:"column:kind;type:text;not null"`
	Status    enums.MediaStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	GCSKey    string            `gorm:"column:gcs_key;not null;unique"`
	FileName  string            `gorm:"column:file_name;not null"`
	MimeType  string            `gorm:"column:mime_type;not null"`
	SizeBytes int64             `gorm:"column:size_bytes;not null"`
	URL       *string           `gorm:"column:url"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
