package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adaezeodina/beautyhub-backend/pkg/db/models"
	pkgerrors "github.com/adaezeodina/beautyhub-backend/pkg/errors"
	"github.com/adaezeodina/beautyhub-backend/pkg/pagination"
)

const maxCommentLength = 500

// Service exposes customer reviews of vendors and beauty professionals.
type Service interface {
	Submit(ctx context.Context, customerID, professionalID uuid.UUID, input SubmitReviewInput) (*ReviewDTO, error)
	ListForProfessional(ctx context.Context, input ListInput) (*ListResult, error)
	Respond(ctx context.Context, professionalID, reviewID uuid.UUID, comment string) (*ReviewDTO, error)
}

type accountLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type service struct {
	repo     *Repository
	accounts accountLoader
}

// ServiceParams bundles the review service dependencies.
type ServiceParams struct {
	Repo     *Repository
	Accounts accountLoader
}

// NewService constructs a review service instance.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("review repository required")
	}
	if params.Accounts == nil {
		return nil, fmt.Errorf("account loader required")
	}
	return &service{repo: params.Repo, accounts: params.Accounts}, nil
}

// Submit records one review per customer per professional.
func (s *service) Submit(ctx context.Context, customerID, professionalID uuid.UUID, input SubmitReviewInput) (*ReviewDTO, error) {
	if err := validateReviewBody(input.Rating, input.Comment); err != nil {
		return nil, err
	}
	if customerID == professionalID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "cannot review your own profile")
	}
	if _, err := s.loadProfessional(ctx, professionalID); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByReviewer(ctx, professionalID, customerID); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "profile already reviewed")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check existing review")
	}

	row := &models.Review{
		ProfessionalID: professionalID,
		CustomerID:     customerID,
		Rating:         input.Rating,
		Comment:        strings.TrimSpace(input.Comment),
	}
	created, err := s.repo.Create(ctx, row)
	if err != nil {
		// A concurrent submit may have beaten us to the unique index.
		if _, lookupErr := s.repo.FindByReviewer(ctx, professionalID, customerID); lookupErr == nil {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "profile already reviewed")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create review")
	}
	return FromModel(created), nil
}

// ListForProfessional serves the public review feed with the rating summary.
func (s *service) ListForProfessional(ctx context.Context, input ListInput) (*ListResult, error) {
	if _, err := s.loadProfessional(ctx, input.ProfessionalID); err != nil {
		return nil, err
	}

	cursor, err := pagination.ParseCursor(input.Pagination.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(input.Pagination.Limit)

	rows, err := s.repo.ListByProfessional(ctx, input.ProfessionalID, cursor, pagination.LimitWithBuffer(input.Pagination.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list reviews")
	}

	average, count, err := s.repo.Summary(ctx, input.ProfessionalID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rating summary")
	}

	result := &ListResult{
		Reviews: make([]ReviewDTO, 0, len(rows)),
		Summary: RatingSummary{Average: renderAverage(average), Count: count},
	}
	if len(rows) > limit {
		last := rows[limit-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
		rows = rows[:limit]
	}
	for i := range rows {
		result.Reviews = append(result.Reviews, *FromModel(&rows[i]))
	}
	return result, nil
}

// Respond attaches the reviewed professional's single public reply.
func (s *service) Respond(ctx context.Context, professionalID, reviewID uuid.UUID, comment string) (*ReviewDTO, error) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "response comment is required")
	}
	if len(comment) > maxCommentLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("response cannot exceed %d characters", maxCommentLength))
	}

	review, err := s.repo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load review")
	}
	if review.ProfessionalID != professionalID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "review belongs to another profile")
	}

	responded, err := s.repo.SetResponse(ctx, reviewID, comment, time.Now().UTC())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save response")
	}
	if !responded {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "review already has a response")
	}

	review, err = s.repo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload review")
	}
	return FromModel(review), nil
}

func (s *service) loadProfessional(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load profile")
	}
	if !user.IsProfessional() {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
	}
	return user, nil
}

func validateReviewBody(rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	if strings.TrimSpace(comment) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "comment is required")
	}
	if len(comment) > maxCommentLength {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("comment cannot exceed %d characters", maxCommentLength))
	}
	return nil
}
