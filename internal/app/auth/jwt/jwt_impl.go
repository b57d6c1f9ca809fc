package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	customErrors "github.com/webxtars/vybh-backend/internal/domain/auth/errors"
	jwt2 "github.com/webxtars/vybh-backend/internal/domain/auth/jwt"
	"github.com/webxtars/vybh-backend/internal/domain/user/model"
	"github.com/webxtars/vybh-backend/internal/infra/config"
)

type TokenIssuerImpl struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenIssuer(cfg *config.Config) *TokenIssuerImpl {
	return &TokenIssuerImpl{
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
	}
}

func (t *TokenIssuerImpl) GenerateAccessToken(u model.PublicUser) (string, error) {
	return t.sign(u, jwt2.TokenTypeAccess, t.accessTTL)
}

func (t *TokenIssuerImpl) GenerateRefreshToken(u model.PublicUser) (string, error) {
	return t.sign(u, jwt2.TokenTypeRefresh, t.refreshTTL)
}

func (t *TokenIssuerImpl) sign(u model.PublicUser, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := jwt2.UserClaims{
		UserID:    u.ID.String(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Email:     u.Email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", customErrors.WrapInternal(err, "sign "+tokenType+" token")
	}
	return signed, nil
}

func (t *TokenIssuerImpl) ValidateToken(raw string) (jwt2.UserClaims, error) {
	token, err := jwt.ParseWithClaims(raw, &jwt2.UserClaims{}, func(tok *jwt.Token) (interface{}, error) {
		if tok.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, customErrors.ErrInvalidToken
		}
		return t.secret, nil
	}, jwt.WithIssuedAt())

	if err != nil || !token.Valid {
		return jwt2.UserClaims{}, customErrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt2.UserClaims)
	if !ok {
		return jwt2.UserClaims{}, customErrors.ErrInvalidToken
	}

	return *claims, nil
}
