package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/webxtars/vybh-backend/internal/domain/user/model"
)

// UserRepo is the persistence port for the users relation. Uniqueness
// of email and username is enforced by the datastore; implementations
// translate constraint violations into errors.ErrAlreadyExists and
// misses into errors.ErrNotFound.
type UserRepo interface {
	CreateUser(ctx context.Context, u model.User) (model.User, error)

	ListUsers(ctx context.Context) ([]model.User, error)

	GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error)

	GetUserByEmail(ctx context.Context, email string) (model.User, error)

	GetUserByUsername(ctx context.Context, username string) (model.User, error)

	UpdateUser(ctx context.Context, id uuid.UUID, upd model.UserUpdate) (model.User, error)
}
