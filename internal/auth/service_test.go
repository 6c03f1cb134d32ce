package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/adaezeodina/beautyhub-backend/pkg/auth"
	"github.com/adaezeodina/beautyhub-backend/pkg/config"
	"github.com/adaezeodina/beautyhub-backend/pkg/db/models"
	"github.com/adaezeodina/beautyhub-backend/pkg/enums"
	pkgerrors "github.com/adaezeodina/beautyhub-backend/pkg/errors"
	"github.com/adaezeodina/beautyhub-backend/pkg/security"
)

type stubUserRepository struct {
	byEmail   map[string]*models.User
	lastLogin map[uuid.UUID]time.Time
}

func newStubUserRepository(users ...*models.User) *stubUserRepository {
	repo := &stubUserRepository{
		byEmail:   map[string]*models.User{},
		lastLogin: map[uuid.UUID]time.Time{},
	}
	for _, u := range users {
		repo.byEmail[u.Email] = u
	}
	return repo
}

func (s *stubUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	s.lastLogin[id] = at
	return nil
}

type stubSessionManager struct {
	started map[string]uuid.UUID
	revoked []string
}

func newStubSessionManager() *stubSessionManager {
	return &stubSessionManager{started: map[string]uuid.UUID{}}
}

func (s *stubSessionManager) Start(ctx context.Context, accessID string, userID uuid.UUID) error {
	s.started[accessID] = userID
	return nil
}

func (s *stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "beautyhub",
		ExpirationMinutes: 30,
		SessionTTLMinutes: 60,
	}
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordConfig())
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func TestServiceLoginMintsSessionBackedToken(t *testing.T) {
	password := "vendor-secret"
	user := &models.User{
		ID:                 uuid.New(),
		Email:              "vendor@example.com",
		PasswordHash:       mustHashPassword(t, password),
		FirstName:          "Ngozi",
		LastName:           "Eze",
		Role:               enums.RoleVendor,
		VerificationStatus: enums.VerificationApproved,
		IsActive:           true,
	}
	repo := newStubUserRepository(user)
	sessions := newStubSessionManager()
	cfg := testJWTConfig()

	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessions,
		JWTConfig:      cfg,
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "  Vendor@Example.com ",
		Password: password,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(cfg, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected user id %s, got %s", user.ID, claims.UserID)
	}
	if claims.Role != enums.RoleVendor {
		t.Fatalf("expected vendor role claim, got %s", claims.Role)
	}
	if claims.VerificationStatus != enums.VerificationApproved {
		t.Fatalf("unexpected verification claim %s", claims.VerificationStatus)
	}
	if _, ok := sessions.started[claims.ID]; !ok {
		t.Fatalf("expected session started for jti %q", claims.ID)
	}
	if _, ok := repo.lastLogin[user.ID]; !ok {
		t.Fatal("expected last_login_at to be recorded")
	}
	if resp.User.LastLoginAt == nil {
		t.Fatal("expected response user to carry last login")
	}
}

func TestServiceLoginRejectsBadCredentials(t *testing.T) {
	password := "customer-secret"
	user := &models.User{
		ID:           uuid.New(),
		Email:        "customer@example.com",
		PasswordHash: mustHashPassword(t, password),
		Role:         enums.RoleCustomer,
		IsActive:     true,
	}
	inactive := &models.User{
		ID:           uuid.New(),
		Email:        "inactive@example.com",
		PasswordHash: mustHashPassword(t, password),
		Role:         enums.RoleCustomer,
		IsActive:     false,
	}
	svc, err := NewService(ServiceParams{
		UserRepo:       newStubUserRepository(user, inactive),
		SessionManager: newStubSessionManager(),
		JWTConfig:      testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "unknown email", email: "nobody@example.com", password: password},
		{name: "wrong password", email: user.Email, password: "wrong"},
		{name: "inactive account", email: inactive.Email, password: password},
		{name: "blank email", email: "   ", password: password},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), LoginRequest{
				Email:    tc.email,
				Password: tc.password,
			})
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
				t.Fatalf("expected unauthorized, got %v", err)
			}
		})
	}
}

func TestServiceLogout(t *testing.T) {
	sessions := newStubSessionManager()
	svc, err := NewService(ServiceParams{
		UserRepo:       newStubUserRepository(),
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	if err := svc.Logout(context.Background(), "access-id"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "access-id" {
		t.Fatalf("expected revoked access id, got %v", sessions.revoked)
	}

	err = svc.Logout(context.Background(), "")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for blank access id, got %v", err)
	}
}
