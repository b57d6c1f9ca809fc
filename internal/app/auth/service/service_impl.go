package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/webxtars/vybh-backend/internal/adapters/transport/http/dto"
	"github.com/webxtars/vybh-backend/internal/app/auth/hash"
	customErrors "github.com/webxtars/vybh-backend/internal/domain/auth/errors"
	"github.com/webxtars/vybh-backend/internal/domain/auth/jwt"
	"github.com/webxtars/vybh-backend/internal/domain/user/model"
	"github.com/webxtars/vybh-backend/internal/domain/user/repo"
)

type Service interface {
	Login(ctx context.Context, in dto.LoginDTO) (model.AuthResult, error)
	Refresh(ctx context.Context, in dto.RefreshDTO) (string, error)
}

type authService struct {
	users  repo.UserRepo
	tokens jwt.TokenIssuer
	v      *validator.Validate
}

func New(users repo.UserRepo, tokens jwt.TokenIssuer, v *validator.Validate) Service {
	return &authService{users: users, tokens: tokens, v: v}
}

// Login validates credentials and mints an access/refresh token pair.
// An unknown email and a wrong password are indistinguishable to the
// caller.
func (a *authService) Login(ctx context.Context, in dto.LoginDTO) (model.AuthResult, error) {
	if err := a.v.Struct(in); err != nil {
		return model.AuthResult{}, customErrors.NewInvalidArgument(err.Error())
	}

	user, err := a.users.GetUserByEmail(ctx, in.Email)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return model.AuthResult{}, customErrors.ErrInvalidCredentials
	case err != nil:
		return model.AuthResult{}, customErrors.WrapInternal(err, "Login")
	}

	if !hash.Verify(in.Password, user.PasswordHash) {
		return model.AuthResult{}, customErrors.ErrInvalidCredentials
	}

	view := user.Public()

	accessToken, err := a.tokens.GenerateAccessToken(view)
	if err != nil {
		return model.AuthResult{}, err
	}
	refreshToken, err := a.tokens.GenerateRefreshToken(view)
	if err != nil {
		return model.AuthResult{}, err
	}

	return model.AuthResult{
		User:         view,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh redeems a refresh token for a fresh access token. The user is
// re-read from the store so a since-updated profile lands in the new
// claims. The presented token is not rotated; it stays valid until its
// natural expiry.
func (a *authService) Refresh(ctx context.Context, in dto.RefreshDTO) (string, error) {
	if err := a.v.Struct(in); err != nil {
		return "", customErrors.NewInvalidArgument(err.Error())
	}

	claims, err := a.tokens.ValidateToken(in.RefreshToken)
	if err != nil {
		return "", customErrors.ErrInvalidToken
	}
	// an access token has a valid signature too; the type claim is the
	// only thing telling them apart
	if claims.TokenType != jwt.TokenTypeRefresh {
		return "", customErrors.ErrInvalidToken
	}

	user, err := a.users.GetUserByEmail(ctx, claims.Email)
	switch {
	case errors.Is(err, customErrors.ErrNotFound):
		return "", customErrors.ErrNotFound
	case err != nil:
		return "", customErrors.WrapInternal(err, "Refresh")
	}

	return a.tokens.GenerateAccessToken(user.Public())
}
