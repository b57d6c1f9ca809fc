// Package jwt defines the token claims and the issuer port.
//
// Access and refresh tokens are signed with the same secret and differ
// only by the "type" claim, mirroring the deployed behavior this service
// replaces. A stronger design would use distinct secrets or asymmetric
// keys per token type; callers rely on the current format, so it is kept.
package jwt

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/webxtars/vybh-backend/internal/domain/user/model"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// UserClaims is the signed payload: the user's public view plus the
// token type.
type UserClaims struct {
	UserID    string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

type TokenIssuer interface {
	GenerateAccessToken(u model.PublicUser) (string, error)

	GenerateRefreshToken(u model.PublicUser) (string, error)

	// ValidateToken checks signature and expiry. Bad signature, expired
	// token and malformed payload all come back as ErrInvalidToken;
	// callers must not distinguish them.
	ValidateToken(raw string) (UserClaims, error)
}
