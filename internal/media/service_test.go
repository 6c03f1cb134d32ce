package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/adaezeodina/beautyhub-backend/pkg/config"
	"github.com/adaezeodina/beautyhub-backend/pkg/db"
	"github.com/adaezeodina/beautyhub-backend/pkg/db/models"
	"github.com/adaezeodina/beautyhub-backend/pkg/enums"
	pkgerrors "github.com/adaezeodina/beautyhub-backend/pkg/errors"
	"github.com/adaezeodina/beautyhub-backend/pkg/outbox"
	"github.com/adaezeodina/beautyhub-backend/pkg/outbox/payloads"
)

type stubSigner struct {
	lastObject      string
	lastContentType string
	failNext        bool
}

func (s *stubSigner) SignedURL(bucket, object, contentType string, expires time.Duration) (string, error) {
	if s.failNext {
		s.failNext = false
		return "", errors.New("signer unavailable")
	}
	s.lastObject = object
	s.lastContentType = contentType
	return fmt.Sprintf("https://signed.example.com/%s/%s", bucket, object), nil
}

func newTestService(t *testing.T) (Service, *Repository, *db.Client, *stubSigner) {
	t.Helper()

	dsn := "file:media_service_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Media{}, &models.OutboxEvent{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	client := db.NewFromConn(conn)
	repo := NewRepository(conn)
	gcs := &stubSigner{}
	ob := outbox.NewService(outbox.NewRepository(conn), nil)

	svc, err := NewService(ServiceParams{
		Repo:     repo,
		DB:       client,
		GCS:      gcs,
		Outbox:   ob,
		GCSCfg:   config.GCSConfig{BucketName: "beautyhub-test", UploadURLExpiry: 15 * time.Minute},
		MediaCfg: config.MediaConfig{MaxUploadMB: 1},
	})
	if err != nil {
		t.Fatalf("media service: %v", err)
	}
	return svc, repo, client, gcs
}

func TestPresignUploadCreatesPendingIntent(t *testing.T) {
	svc, repo, _, gcs := newTestService(t)
	ownerID := uuid.New()

	out, err := svc.PresignUpload(context.Background(), ownerID, PresignInput{
		Kind:      enums.MediaProductImage,
		MimeType:  "image/png",
		FileName:  "lace front wig.png",
		SizeBytes: 204800,
	})
	if err != nil {
		t.Fatalf("presign: %v", err)
	}
	if out.SignedPUTURL == "" {
		t.Fatal("expected signed url")
	}
	if gcs.lastContentType != "image/png" {
		t.Fatalf("unexpected content type %q", gcs.lastContentType)
	}
	if !strings.HasPrefix(out.GCSKey, "media/product_image/") {
		t.Fatalf("unexpected key %q", out.GCSKey)
	}
	if strings.Contains(out.GCSKey, " ") {
		t.Fatalf("key should not contain spaces: %q", out.GCSKey)
	}

	row, err := repo.FindByID(context.Background(), out.MediaID)
	if err != nil {
		t.Fatalf("load row: %v", err)
	}
	if row.Status != enums.MediaPending {
		t.Fatalf("expected pending status, got %s", row.Status)
	}
	if row.OwnerID != ownerID {
		t.Fatal("owner mismatch")
	}
}

func TestPresignUploadValidation(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ownerID := uuid.New()

	cases := []struct {
		name  string
		input PresignInput
	}{
		{
			name:  "unknown kind",
			input: PresignInput{Kind: "video", MimeType: "video/mp4", FileName: "clip.mp4", SizeBytes: 100},
		},
		{
			name:  "mime not allowed for kind",
			input: PresignInput{Kind: enums.MediaProductImage, MimeType: "application/pdf", FileName: "cac.pdf", SizeBytes: 100},
		},
		{
			name:  "missing file name",
			input: PresignInput{Kind: enums.MediaProfileImage, MimeType: "image/jpeg", FileName: "   ", SizeBytes: 100},
		},
		{
			name:  "oversized upload",
			input: PresignInput{Kind: enums.MediaProfileImage, MimeType: "image/jpeg", FileName: "me.jpg", SizeBytes: 2 * 1024 * 1024},
		},
		{
			name:  "zero size",
			input: PresignInput{Kind: enums.MediaProfileImage, MimeType: "image/jpeg", FileName: "me.jpg", SizeBytes: 0},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.PresignUpload(context.Background(), ownerID, tc.input)
			if err == nil {
				t.Fatal("expected error")
			}
			if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestPresignUploadRollsBackOnSignFailure(t *testing.T) {
	svc, repo, _, gcs := newTestService(t)
	gcs.failNext = true

	_, err := svc.PresignUpload(context.Background(), uuid.New(), PresignInput{
		Kind:      enums.MediaVerificationDocument,
		MimeType:  "application/pdf",
		FileName:  "cac-certificate.pdf",
		SizeBytes: 4096,
	})
	if err == nil {
		t.Fatal("expected signing failure to surface")
	}
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}

	var count int64
	if err := repo.db.Model(&models.Media{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected orphaned intent to be removed, found %d rows", count)
	}
}

func TestConfirmUploadFinalizesAndEmits(t *testing.T) {
	svc, repo, client, _ := newTestService(t)
	ownerID := uuid.New()

	out, err := svc.PresignUpload(context.Background(), ownerID, PresignInput{
		Kind:      enums.MediaProductImage,
		MimeType:  "image/webp",
		FileName:  "bundle.webp",
		SizeBytes: 1024,
	})
	if err != nil {
		t.Fatalf("presign: %v", err)
	}

	dto, err := svc.ConfirmUpload(context.Background(), ownerID, out.MediaID)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if dto.Status != enums.MediaUploaded {
		t.Fatalf("expected uploaded status, got %s", dto.Status)
	}
	if dto.URL == nil || !strings.Contains(*dto.URL, out.GCSKey) {
		t.Fatalf("expected public url carrying the object key, got %v", dto.URL)
	}

	row, err := repo.FindByID(context.Background(), out.MediaID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if row.Status != enums.MediaUploaded {
		t.Fatalf("row not finalized: %s", row.Status)
	}

	var events []models.OutboxEvent
	if err := client.DB().Find(&events).Error; err != nil {
		t.Fatalf("load events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 outbox event, got %d", len(events))
	}
	if events[0].EventType != enums.EventMediaUploaded {
		t.Fatalf("unexpected event type %s", events[0].EventType)
	}

	var envelope outbox.PayloadEnvelope
	if err := json.Unmarshal(events[0].Payload, &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	var payload payloads.MediaUploadedEvent
	if err := json.Unmarshal(envelope.Data, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.MediaID != out.MediaID || payload.OwnerID != ownerID {
		t.Fatal("payload identity mismatch")
	}
	if payload.GCSKey != out.GCSKey {
		t.Fatalf("payload key mismatch: %s", payload.GCSKey)
	}
}

func TestConfirmUploadGuards(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ownerID := uuid.New()

	out, err := svc.PresignUpload(context.Background(), ownerID, PresignInput{
		Kind:      enums.MediaProfileImage,
		MimeType:  "image/jpeg",
		FileName:  "portrait.jpg",
		SizeBytes: 512,
	})
	if err != nil {
		t.Fatalf("presign: %v", err)
	}

	t.Run("foreign owner is rejected", func(t *testing.T) {
		_, err := svc.ConfirmUpload(context.Background(), uuid.New(), out.MediaID)
		if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeForbidden {
			t.Fatalf("expected forbidden, got %v", err)
		}
	})

	t.Run("unknown media id", func(t *testing.T) {
		_, err := svc.ConfirmUpload(context.Background(), ownerID, uuid.New())
		if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeNotFound {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("double confirm conflicts", func(t *testing.T) {
		if _, err := svc.ConfirmUpload(context.Background(), ownerID, out.MediaID); err != nil {
			t.Fatalf("first confirm: %v", err)
		}
		_, err := svc.ConfirmUpload(context.Background(), ownerID, out.MediaID)
		if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeStateConflict {
			t.Fatalf("expected state conflict, got %v", err)
		}
	})
}

func TestListMineFiltersByKind(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ownerID := uuid.New()

	for _, in := range []PresignInput{
		{Kind: enums.MediaProductImage, MimeType: "image/png", FileName: "a.png", SizeBytes: 10},
		{Kind: enums.MediaProductImage, MimeType: "image/png", FileName: "b.png", SizeBytes: 10},
		{Kind: enums.MediaVerificationDocument, MimeType: "application/pdf", FileName: "cac.pdf", SizeBytes: 10},
	} {
		if _, err := svc.PresignUpload(context.Background(), ownerID, in); err != nil {
			t.Fatalf("presign %s: %v", in.FileName, err)
		}
	}

	all, err := svc.ListMine(context.Background(), ownerID, nil)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(all))
	}

	kind := enums.MediaVerificationDocument
	docs, err := svc.ListMine(context.Background(), ownerID, &kind)
	if err != nil {
		t.Fatalf("list docs: %v", err)
	}
	if len(docs) != 1 || docs[0].FileName != "cac.pdf" {
		t.Fatalf("unexpected filtered result: %+v", docs)
	}

	other, err := svc.ListMine(context.Background(), uuid.New(), nil)
	if err != nil {
		t.Fatalf("list other: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected empty list for stranger, got %d", len(other))
	}
}
