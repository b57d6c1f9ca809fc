package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/webxtars/vybh-backend/internal/adapters/transport/http/dto"
	"github.com/webxtars/vybh-backend/internal/app/auth/hash"
	customErrors "github.com/webxtars/vybh-backend/internal/domain/auth/errors"
	"github.com/webxtars/vybh-backend/internal/domain/user/model"
	"github.com/webxtars/vybh-backend/internal/domain/user/repo"
)

// Notifier receives the public view of a freshly created user. Calls
// happen off the request path; failures are logged here and swallowed.
type Notifier interface {
	UserCreated(u model.PublicUser) error
}

type Service interface {
	Create(ctx context.Context, in dto.CreateUserDTO) (model.PublicUser, error)
	List(ctx context.Context) ([]model.PublicUser, int64, error)
	GetByID(ctx context.Context, id string) (model.PublicUser, error)
	GetByEmail(ctx context.Context, email string) (model.PublicUser, error)
	GetByUsername(ctx context.Context, username string) (model.PublicUser, error)
	Update(ctx context.Context, id string, in dto.UpdateUserDTO) (model.PublicUser, error)
}

type userService struct {
	repo     repo.UserRepo
	notifier Notifier
	v        *validator.Validate
	log      *zap.Logger
}

func New(r repo.UserRepo, n Notifier, v *validator.Validate, log *zap.Logger) Service {
	return &userService{repo: r, notifier: n, v: v, log: log}
}

func (s *userService) Create(ctx context.Context, in dto.CreateUserDTO) (model.PublicUser, error) {
	if err := s.v.Struct(in); err != nil {
		return model.PublicUser{}, customErrors.NewInvalidArgument(err.Error())
	}

	passwordHash, err := hash.Password(in.Password)
	if err != nil {
		return model.PublicUser{}, err
	}

	user := model.User{
		ID:           uuid.New(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: passwordHash,
	}

	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, customErrors.ErrAlreadyExists) {
			return model.PublicUser{}, customErrors.ErrAlreadyExists
		}
		return model.PublicUser{}, customErrors.WrapInternal(err, "CreateUser")
	}

	view := created.Public()

	// Welcome mail is best-effort: dispatched without awaiting, and a
	// failed enqueue never fails the create.
	go func(u model.PublicUser) {
		if err := s.notifier.UserCreated(u); err != nil {
			s.log.Warn("welcome mail dispatch failed",
				zap.String("email", u.Email),
				zap.Error(err),
			)
		}
	}(view)

	return view, nil
}

func (s *userService) List(ctx context.Context) ([]model.PublicUser, int64, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, 0, customErrors.WrapInternal(err, "ListUsers")
	}

	views := make([]model.PublicUser, 0, len(users))
	for _, u := range users {
		views = append(views, u.Public())
	}
	return views, int64(len(views)), nil
}

func (s *userService) GetByID(ctx context.Context, id string) (model.PublicUser, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		// a malformed id can never match a row
		return model.PublicUser{}, customErrors.ErrNotFound
	}

	user, err := s.repo.GetUserByID(ctx, uid)
	if err != nil {
		return model.PublicUser{}, err
	}
	return user.Public(), nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (model.PublicUser, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return model.PublicUser{}, err
	}
	return user.Public(), nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (model.PublicUser, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return model.PublicUser{}, err
	}
	return user.Public(), nil
}

func (s *userService) Update(ctx context.Context, id string, in dto.UpdateUserDTO) (model.PublicUser, error) {
	if err := s.v.Struct(in); err != nil {
		return model.PublicUser{}, customErrors.NewInvalidArgument(err.Error())
	}

	uid, err := uuid.Parse(id)
	if err != nil {
		return model.PublicUser{}, customErrors.ErrNotFound
	}

	user, err := s.repo.UpdateUser(ctx, uid, model.UserUpdate{
		FirstName: in.FirstName,
		LastName:  in.LastName,
	})
	if err != nil {
		return model.PublicUser{}, err
	}
	return user.Public(), nil
}
