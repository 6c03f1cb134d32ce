package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/adaezeodina/beautyhub-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID             uuid.UUID
	Role               enums.UserRole
	VerificationStatus enums.VerificationStatus
	JTI                string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID             uuid.UUID                `json:"user_id"`
	Role               enums.UserRole           `json:"role"`
	VerificationStatus enums.VerificationStatus `json:"verification_status"`
	jwt.RegisteredClaims
}
