package vendors

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adaezeodina/beautyhub-backend/internal/users"
	"github.com/adaezeodina/beautyhub-backend/pkg/db"
	"github.com/adaezeodina/beautyhub-backend/pkg/db/models"
	"github.com/adaezeodina/beautyhub-backend/pkg/enums"
	pkgerrors "github.com/adaezeodina/beautyhub-backend/pkg/errors"
	"github.com/adaezeodina/beautyhub-backend/pkg/logger"
	"github.com/adaezeodina/beautyhub-backend/pkg/outbox"
	"github.com/adaezeodina/beautyhub-backend/pkg/outbox/payloads"
)

const defaultPendingListLimit = 50

// Service drives the vendor/professional verification workflow.
type Service interface {
	SubmitVerification(ctx context.Context, userID uuid.UUID, req SubmitVerificationRequest) error
	ListPending(ctx context.Context, limit int) ([]PendingVendorDTO, error)
	Review(ctx context.Context, adminID, userID uuid.UUID, req ReviewRequest) (*ReviewResult, error)
}

type outboxEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type service struct {
	db     *db.Client
	outbox outboxEmitter
	logg   *logger.Logger
}

// ServiceParams bundles the verification service dependencies.
type ServiceParams struct {
	DB     *db.Client
	Outbox outboxEmitter
	Logger *logger.Logger
}

// NewService constructs the verification service.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	if params.Outbox == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "outbox emitter required")
	}
	return &service{db: params.DB, outbox: params.Outbox, logg: params.Logger}, nil
}

// SubmitVerification moves an unverified or rejected professional into the
// pending queue once their documents are confirmed in the bucket.
func (s *service) SubmitVerification(ctx context.Context, userID uuid.UUID, req SubmitVerificationRequest) error {
	if len(req.DocumentIDs) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one document is required")
	}

	return s.db.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := users.NewRepository(tx)
		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
		}
		if !user.IsProfessional() {
			return pkgerrors.New(pkgerrors.CodeForbidden, "account is not subject to verification")
		}
		switch user.VerificationStatus {
		case enums.VerificationPending:
			return pkgerrors.New(pkgerrors.CodeStateConflict, "verification already pending")
		case enums.VerificationApproved:
			return pkgerrors.New(pkgerrors.CodeStateConflict, "account already verified")
		}

		var count int64
		err = tx.Model(&models.Media{}).
			Where("id IN ?", req.DocumentIDs).
			Where("owner_id = ?", userID).
			Where("kind = ?", enums.MediaVerificationDocument).
			Where("status = ?", enums.MediaUploaded).
			Count(&count).Error
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check documents")
		}
		if count != int64(len(req.DocumentIDs)) {
			return pkgerrors.New(pkgerrors.CodeValidation, "documents must be uploaded verification files owned by the account")
		}

		if err := userRepo.UpdateVerificationStatusTx(tx, userID, enums.VerificationPending); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark pending")
		}
		return nil
	})
}

// ListPending returns accounts awaiting an admin decision, oldest first.
func (s *service) ListPending(ctx context.Context, limit int) ([]PendingVendorDTO, error) {
	if limit <= 0 || limit > defaultPendingListLimit {
		limit = defaultPendingListLimit
	}

	var pending []models.User
	err := s.db.DB().WithContext(ctx).
		Where("verification_status = ?", enums.VerificationPending).
		Order("updated_at ASC").
		Limit(limit).
		Find(&pending).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list pending accounts")
	}

	result := make([]PendingVendorDTO, 0, len(pending))
	for _, user := range pending {
		docIDs, err := s.documentIDs(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, PendingVendorDTO{
			UserID:       user.ID,
			Email:        user.Email,
			FirstName:    user.FirstName,
			LastName:     user.LastName,
			Role:         user.Role,
			BusinessName: user.BusinessName,
			DocumentIDs:  docIDs,
			SubmittedAt:  user.UpdatedAt,
		})
	}
	return result, nil
}

// Review records the admin decision and emits the matching domain event in
// the same transaction.
func (s *service) Review(ctx context.Context, adminID, userID uuid.UUID, req ReviewRequest) (*ReviewResult, error) {
	now := time.Now().UTC()
	var result *ReviewResult

	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := users.NewRepository(tx)
		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
		}
		if user.VerificationStatus != enums.VerificationPending {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "no pending verification for account")
		}

		status := enums.VerificationRejected
		if req.Approve {
			status = enums.VerificationApproved
		}
		if err := userRepo.UpdateVerificationStatusTx(tx, userID, status); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record decision")
		}

		actor := &outbox.ActorRef{UserID: adminID, Role: string(enums.RoleAdmin)}
		if req.Approve {
			err = s.outbox.Emit(ctx, tx, outbox.DomainEvent{
				EventType:     enums.EventVendorVerified,
				AggregateType: enums.AggregateUser,
				AggregateID:   userID,
				Actor:         actor,
				Data: payloads.VendorVerifiedEvent{
					UserID:     userID,
					Role:       user.Role,
					ReviewedBy: adminID,
					ReviewedAt: now,
				},
			})
		} else {
			reason := ""
			if req.Notes != nil {
				reason = *req.Notes
			}
			err = s.outbox.Emit(ctx, tx, outbox.DomainEvent{
				EventType:     enums.EventVendorRejected,
				AggregateType: enums.AggregateUser,
				AggregateID:   userID,
				Actor:         actor,
				Data: payloads.VendorRejectedEvent{
					UserID:     userID,
					Role:       user.Role,
					ReviewedBy: adminID,
					ReviewedAt: now,
					Reason:     reason,
				},
			})
		}
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "queue decision event")
		}

		result = &ReviewResult{
			UserID:     userID,
			Status:     status,
			ReviewedBy: adminID,
			ReviewedAt: now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"user_id":     userID.String(),
			"reviewed_by": adminID.String(),
			"status":      result.Status,
		})
		s.logg.Info(logCtx, "verification reviewed")
	}
	return result, nil
}

func (s *service) documentIDs(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.db.DB().WithContext(ctx).
		Model(&models.Media{}).
		Where("owner_id = ?", ownerID).
		Where("kind = ?", enums.MediaVerificationDocument).
		Where("status = ?", enums.MediaUploaded).
		Order("created_at ASC").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list documents")
	}
	return ids, nil
}
