package media

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adaezeodina/beautyhub-backend/pkg/config"
	"github.com/adaezeodina/beautyhub-backend/pkg/db"
	"github.com/adaezeodina/beautyhub-backend/pkg/db/models"
	"github.com/adaezeodina/beautyhub-backend/pkg/enums"
	pkgerrors "github.com/adaezeodina/beautyhub-backend/pkg/errors"
	"github.com/adaezeodina/beautyhub-backend/pkg/outbox"
	"github.com/adaezeodina/beautyhub-backend/pkg/outbox/payloads"
)

const defaultListLimit = 50

type signer interface {
	SignedURL(bucket, object, contentType string, expires time.Duration) (string, error)
}

type outboxEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service exposes the upload-intent lifecycle: presign, confirm, list.
type Service interface {
	PresignUpload(ctx context.Context, ownerID uuid.UUID, input PresignInput) (*PresignOutput, error)
	ConfirmUpload(ctx context.Context, ownerID, mediaID uuid.UUID) (*MediaDTO, error)
	ListMine(ctx context.Context, ownerID uuid.UUID, kind *enums.MediaKind) ([]MediaDTO, error)
}

type service struct {
	repo      *Repository
	dbClient  *db.Client
	gcs       signer
	outbox    outboxEmitter
	bucket    string
	uploadTTL time.Duration
	maxBytes  int64
}

// ServiceParams bundles the media service dependencies.
type ServiceParams struct {
	Repo     *Repository
	DB       *db.Client
	GCS      signer
	Outbox   outboxEmitter
	GCSCfg   config.GCSConfig
	MediaCfg config.MediaConfig
}

// NewService constructs a media service backed by the GCS signer.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("media repository required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db client required")
	}
	if params.GCS == nil {
		return nil, fmt.Errorf("gcs client required")
	}
	if params.Outbox == nil {
		return nil, fmt.Errorf("outbox emitter required")
	}
	if params.GCSCfg.BucketName == "" {
		return nil, fmt.Errorf("gcs bucket required")
	}
	if params.GCSCfg.UploadURLExpiry <= 0 {
		return nil, fmt.Errorf("upload url expiry must be positive")
	}
	maxBytes := int64(params.MediaCfg.MaxUploadMB) * 1024 * 1024
	if maxBytes <= 0 {
		return nil, fmt.Errorf("max upload size must be positive")
	}
	return &service{
		repo:      params.Repo,
		dbClient:  params.DB,
		gcs:       params.GCS,
		outbox:    params.Outbox,
		bucket:    params.GCSCfg.BucketName,
		uploadTTL: params.GCSCfg.UploadURLExpiry,
		maxBytes:  maxBytes,
	}, nil
}

// PresignInput models the payload required to request an upload URL.
type PresignInput struct {
	Kind      enums.MediaKind
	MimeType  string
	FileName  string
	SizeBytes int64
}

// PresignOutput contains the data returned after creating an upload intent.
type PresignOutput struct {
	MediaID      uuid.UUID `json:"media_id"`
	GCSKey       string    `json:"gcs_key"`
	SignedPUTURL string    `json:"signed_put_url"`
	ContentType  string    `json:"content_type"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// MediaDTO is the transport shape of a media row.
type MediaDTO struct {
	ID        uuid.UUID         `json:"id"`
	OwnerID   uuid.UUID         `json:"owner_id"`
	ProductID *uuid.UUID        `json:"product_id,omitempty"`
	Kind      enums.MediaKind   `json:"kind"`
	Status    enums.MediaStatus `json:"status"`
	GCSKey    string            `json:"gcs_key"`
	FileName  string            `json:"file_name"`
	MimeType  string            `json:"mime_type"`
	SizeBytes int64             `json:"size_bytes"`
	URL       *string           `json:"url,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

func fromModel(m *models.Media) *MediaDTO {
	if m == nil {
		return nil
	}
	return &MediaDTO{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		ProductID: m.ProductID,
		Kind:      m.Kind,
		Status:    m.Status,
		GCSKey:    m.GCSKey,
		FileName:  m.FileName,
		MimeType:  m.MimeType,
		SizeBytes: m.SizeBytes,
		URL:       m.URL,
		CreatedAt: m.CreatedAt,
	}
}

var mimeTypesByKind = map[enums.MediaKind][]string{
	enums.MediaProductImage:         {"image/png", "image/jpeg", "image/webp"},
	enums.MediaProfileImage:         {"image/png", "image/jpeg", "image/webp"},
	enums.MediaVerificationDocument: {"application/pdf", "image/png", "image/jpeg"},
}

func (s *service) PresignUpload(ctx context.Context, ownerID uuid.UUID, input PresignInput) (*PresignOutput, error) {
	if ownerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner identity missing")
	}
	if input.Kind == "" || !input.Kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid media kind")
	}

	fileName := strings.TrimSpace(input.FileName)
	if fileName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file_name is required")
	}
	if input.SizeBytes <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "size_bytes must be positive")
	}
	if input.SizeBytes > s.maxBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("size_bytes must be at most %d", s.maxBytes))
	}

	mimeType := strings.TrimSpace(input.MimeType)
	if mimeType == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "mime_type is required")
	}
	if !isAllowedMime(input.Kind, mimeType) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "mime_type not allowed for media kind")
	}

	mediaID := uuid.New()
	gcsKey := buildGCSKey(input.Kind, mediaID, fileName)

	row := &models.Media{
		ID:        mediaID,
		OwnerID:   ownerID,
		Kind:      input.Kind,
		Status:    enums.MediaPending,
		GCSKey:    gcsKey,
		FileName:  fileName,
		MimeType:  mimeType,
		SizeBytes: input.SizeBytes,
	}
	if _, err := s.repo.Create(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist media row")
	}

	expiresAt := time.Now().Add(s.uploadTTL)
	signedURL, err := s.gcs.SignedURL(s.bucket, gcsKey, mimeType, s.uploadTTL)
	if err != nil {
		_ = s.repo.Delete(ctx, mediaID)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sign upload url")
	}

	return &PresignOutput{
		MediaID:      mediaID,
		GCSKey:       gcsKey,
		SignedPUTURL: signedURL,
		ContentType:  mimeType,
		ExpiresAt:    expiresAt,
	}, nil
}

// ConfirmUpload finalizes a pending intent and queues media.uploaded in the
// same transaction. Confirming twice reports a state conflict.
func (s *service) ConfirmUpload(ctx context.Context, ownerID, mediaID uuid.UUID) (*MediaDTO, error) {
	row, err := s.repo.FindByID(ctx, mediaID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "media not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load media")
	}
	if row.OwnerID != ownerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "media belongs to another account")
	}

	url := publicObjectURL(s.bucket, row.GCSKey)
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		finalized, err := s.repo.MarkUploadedTx(tx, mediaID, url)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "finalize media")
		}
		if !finalized {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "media is not pending")
		}
		err = s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventMediaUploaded,
			AggregateType: enums.AggregateMedia,
			AggregateID:   mediaID,
			Actor:         &outbox.ActorRef{UserID: ownerID},
			Data: payloads.MediaUploadedEvent{
				MediaID: mediaID,
				OwnerID: ownerID,
				Kind:    row.Kind,
				GCSKey:  row.GCSKey,
			},
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "queue upload event")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	row.Status = enums.MediaUploaded
	row.URL = &url
	return fromModel(row), nil
}

func (s *service) ListMine(ctx context.Context, ownerID uuid.UUID, kind *enums.MediaKind) ([]MediaDTO, error) {
	rows, err := s.repo.ListByOwner(ctx, ownerID, kind, defaultListLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list media")
	}
	result := make([]MediaDTO, 0, len(rows))
	for i := range rows {
		result = append(result, *fromModel(&rows[i]))
	}
	return result, nil
}

func isAllowedMime(kind enums.MediaKind, mimeType string) bool {
	allowed, ok := mimeTypesByKind[kind]
	if !ok {
		return false
	}
	for _, candidate := range allowed {
		if strings.EqualFold(candidate, mimeType) {
			return true
		}
	}
	return false
}

func publicObjectURL(bucket, object string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, object)
}

func buildGCSKey(kind enums.MediaKind, id uuid.UUID, fileName string) string {
	cleanName := sanitizeFileName(fileName)
	if cleanName == "" {
		cleanName = id.String()
	}
	return fmt.Sprintf("media/%s/%s/%s", kind, id.String(), cleanName)
}

func sanitizeFileName(name string) string {
	if name == "" {
		return ""
	}
	clean := path.Base(strings.TrimSpace(name))
	if clean == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(clean))
	for _, r := range clean {
		switch {
		case r == '/' || r == '\\' || unicode.IsControl(r):
			continue
		case unicode.IsSpace(r):
			b.WriteRune('-')
		default:
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "-_.")
}
