package reviews

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/adaezeodina/beautyhub-backend/pkg/db/models"
	"github.com/adaezeodina/beautyhub-backend/pkg/pagination"
)

// SubmitReviewInput carries a customer's rating of a professional.
type SubmitReviewInput struct {
	Rating  int
	Comment string
}

// ReviewDTO is the API shape of one review.
type ReviewDTO struct {
	ID             uuid.UUID  `json:"id"`
	ProfessionalID uuid.UUID  `json:"professional_id"`
	CustomerID     uuid.UUID  `json:"customer_id"`
	Rating         int        `json:"rating"`
	Comment        string     `json:"comment"`
	Response       *string    `json:"response,omitempty"`
	RespondedAt    *time.Time `json:"responded_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// RatingSummary aggregates every review of one professional. Average is
// rendered to one decimal place.
type RatingSummary struct {
	Average string `json:"average"`
	Count   int64  `json:"count"`
}

// ListInput captures the inputs for one page of a professional's reviews.
type ListInput struct {
	ProfessionalID uuid.UUID
	Pagination     pagination.Params
}

// ListResult is one cursor page of reviews plus the rating summary.
type ListResult struct {
	Reviews    []ReviewDTO   `json:"reviews"`
	Summary    RatingSummary `json:"summary"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// FromModel maps the persisted row onto the API shape.
func FromModel(row *models.Review) *ReviewDTO {
	return &ReviewDTO{
		ID:             row.ID,
		ProfessionalID: row.ProfessionalID,
		CustomerID:     row.CustomerID,
		Rating:         row.Rating,
		Comment:        row.Comment,
		Response:       row.Response,
		RespondedAt:    row.RespondedAt,
		CreatedAt:      row.CreatedAt,
	}
}

func renderAverage(avg float64) string {
	return decimal.NewFromFloat(avg).Round(1).String()
}
