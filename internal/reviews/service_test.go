package reviews

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/adaezeodina/beautyhub-backend/internal/users"
	"github.com/adaezeodina/beautyhub-backend/pkg/db/models"
	"github.com/adaezeodina/beautyhub-backend/pkg/enums"
	pkgerrors "github.com/adaezeodina/beautyhub-backend/pkg/errors"
	"github.com/adaezeodina/beautyhub-backend/pkg/pagination"
)

type reviewTestEnv struct {
	svc  Service
	conn *gorm.DB
}

func newReviewTestEnv(t *testing.T) *reviewTestEnv {
	t.Helper()
	dsn := "file:reviews_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(&models.User{}, &models.Review{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	svc, err := NewService(ServiceParams{
		Repo:     NewRepository(conn),
		Accounts: users.NewRepository(conn),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return &reviewTestEnv{svc: svc, conn: conn}
}

func (e *reviewTestEnv) seedAccount(t *testing.T, role enums.UserRole) uuid.UUID {
	t.Helper()
	user := &models.User{
		Email:        "account-" + uuid.NewString() + "@example.com",
		PasswordHash: "x",
		FirstName:    "Chiamaka",
		LastName:     "Okafor",
		Role:         role,
		IsActive:     true,
	}
	if err := e.conn.Create(user).Error; err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return user.ID
}

func TestSubmitCreatesOneReviewPerCustomer(t *testing.T) {
	t.Parallel()

	env := newReviewTestEnv(t)
	ctx := context.Background()
	professional := env.seedAccount(t, enums.RoleHairDresser)
	customer := env.seedAccount(t, enums.RoleCustomer)

	dto, err := env.svc.Submit(ctx, customer, professional, SubmitReviewInput{
		Rating:  5,
		Comment: "Neat knotless braids, done in under four hours.",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if dto.Rating != 5 || dto.ProfessionalID != professional || dto.CustomerID != customer {
		t.Fatalf("unexpected review %+v", dto)
	}
	if dto.Response != nil {
		t.Fatal("fresh review must not carry a response")
	}

	_, err = env.svc.Submit(ctx, customer, professional, SubmitReviewInput{Rating: 3, Comment: "Changed my mind."})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict on second review, got %v", err)
	}

	// A different customer still gets their own review.
	other := env.seedAccount(t, enums.RoleCustomer)
	if _, err := env.svc.Submit(ctx, other, professional, SubmitReviewInput{Rating: 4, Comment: "Lovely work."}); err != nil {
		t.Fatalf("second customer submit: %v", err)
	}
}

func TestSubmitValidation(t *testing.T) {
	t.Parallel()

	env := newReviewTestEnv(t)
	ctx := context.Background()
	professional := env.seedAccount(t, enums.RoleNailTechnician)
	customer := env.seedAccount(t, enums.RoleCustomer)

	cases := []struct {
		name  string
		input SubmitReviewInput
	}{
		{name: "rating too low", input: SubmitReviewInput{Rating: 0, Comment: "ok"}},
		{name: "rating too high", input: SubmitReviewInput{Rating: 6, Comment: "ok"}},
		{name: "blank comment", input: SubmitReviewInput{Rating: 4, Comment: "   "}},
		{name: "comment too long", input: SubmitReviewInput{Rating: 4, Comment: strings.Repeat("a", maxCommentLength+1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.svc.Submit(ctx, customer, professional, tc.input)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestSubmitTargetRules(t *testing.T) {
	t.Parallel()

	env := newReviewTestEnv(t)
	ctx := context.Background()
	professional := env.seedAccount(t, enums.RoleVendor)
	customer := env.seedAccount(t, enums.RoleCustomer)
	input := SubmitReviewInput{Rating: 4, Comment: "Bundles arrived as described."}

	_, err := env.svc.Submit(ctx, customer, uuid.New(), input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unknown profile: expected not found, got %v", err)
	}

	// Plain customer accounts do not take reviews.
	otherCustomer := env.seedAccount(t, enums.RoleCustomer)
	_, err = env.svc.Submit(ctx, customer, otherCustomer, input)
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("customer target: expected not found, got %v", err)
	}

	_, err = env.svc.Submit(ctx, professional, professional, input)
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("self review: expected forbidden, got %v", err)
	}
}

func TestRespondLifecycle(t *testing.T) {
	t.Parallel()

	env := newReviewTestEnv(t)
	ctx := context.Background()
	professional := env.seedAccount(t, enums.RoleHairDresser)
	customer := env.seedAccount(t, enums.RoleCustomer)

	dto, err := env.svc.Submit(ctx, customer, professional, SubmitReviewInput{Rating: 2, Comment: "Started two hours late."})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	_, err = env.svc.Respond(ctx, env.seedAccount(t, enums.RoleHairDresser), dto.ID, "Sorry about that!")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("foreign respond: expected forbidden, got %v", err)
	}

	responded, err := env.svc.Respond(ctx, professional, dto.ID, "Apologies, generator trouble that morning.")
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if responded.Response == nil || responded.RespondedAt == nil {
		t.Fatalf("response not recorded: %+v", responded)
	}

	_, err = env.svc.Respond(ctx, professional, dto.ID, "One more thing.")
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("second respond: expected state conflict, got %v", err)
	}

	_, err = env.svc.Respond(ctx, professional, uuid.New(), "Hello?")
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unknown review: expected not found, got %v", err)
	}
}

func TestListPaginatesAndSummarizes(t *testing.T) {
	t.Parallel()

	env := newReviewTestEnv(t)
	ctx := context.Background()
	professional := env.seedAccount(t, enums.RoleNailTechnician)

	ratings := []int{5, 4, 4}
	base := time.Now().UTC().Add(-time.Hour)
	for i, rating := range ratings {
		customer := env.seedAccount(t, enums.RoleCustomer)
		dto, err := env.svc.Submit(ctx, customer, professional, SubmitReviewInput{Rating: rating, Comment: "Gel set held for three weeks."})
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		// Spread creation times so the cursor ordering is deterministic.
		err = env.conn.Model(&models.Review{}).
			Where("id = ?", dto.ID).
			UpdateColumn("created_at", base.Add(time.Duration(i)*time.Minute)).Error
		if err != nil {
			t.Fatalf("backdate %d: %v", i, err)
		}
	}

	first, err := env.svc.ListForProfessional(ctx, ListInput{
		ProfessionalID: professional,
		Pagination:     pagination.Params{Limit: 2},
	})
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if len(first.Reviews) != 2 || first.NextCursor == "" {
		t.Fatalf("expected full first page with cursor, got %d reviews cursor=%q", len(first.Reviews), first.NextCursor)
	}
	if first.Summary.Count != 3 || first.Summary.Average != "4.3" {
		t.Fatalf("unexpected summary %+v", first.Summary)
	}

	second, err := env.svc.ListForProfessional(ctx, ListInput{
		ProfessionalID: professional,
		Pagination:     pagination.Params{Limit: 2, Cursor: first.NextCursor},
	})
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if len(second.Reviews) != 1 || second.NextCursor != "" {
		t.Fatalf("expected final page of one, got %d cursor=%q", len(second.Reviews), second.NextCursor)
	}

	// Newest first across the pages, no overlap.
	seen := map[uuid.UUID]bool{}
	for _, review := range append(first.Reviews, second.Reviews...) {
		if seen[review.ID] {
			t.Fatalf("review %s served twice", review.ID)
		}
		seen[review.ID] = true
	}
}
