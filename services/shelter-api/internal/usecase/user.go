package usecase

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/model"
	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/repository"
	"github.com/vasapolrittideah/animal-shelter-api/shared/security"
)

// UserUsecase manages accounts. Callers may act on their own account; admins on any.
type UserUsecase interface {
	GetUser(ctx context.Context, actor Actor, id string) (*model.User, error)
	ListUsers(ctx context.Context, params repository.FilterUsersParams) ([]*model.User, error)
	UpdateUser(ctx context.Context, actor Actor, id string, params UpdateUserParams) (*model.User, error)
	DeleteUser(ctx context.Context, actor Actor, id string) error
}

// UpdateUserParams defines the fields a user may change on an account.
type UpdateUserParams struct {
	Name     *string
	Email    *string
	Password *string
}

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailAlreadyInUse = errors.New("email already in use")
)

type userUsecase struct {
	userRepo     repository.UserRepository
	identityRepo repository.IdentityRepository
}

func NewUserUsecase(userRepo repository.UserRepository, identityRepo repository.IdentityRepository) UserUsecase {
	return &userUsecase{
		userRepo:     userRepo,
		identityRepo: identityRepo,
	}
}

func (u *userUsecase) GetUser(ctx context.Context, actor Actor, id string) (*model.User, error) {
	if !canManageUser(actor, id) {
		return nil, ErrForbidden
	}

	user, err := u.userRepo.GetUser(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

func (u *userUsecase) ListUsers(ctx context.Context, params repository.FilterUsersParams) ([]*model.User, error) {
	if params.Email != nil {
		email := normalizeEmail(*params.Email)
		params.Email = &email
	}

	return u.userRepo.ListUsers(ctx, params)
}

func (u *userUsecase) UpdateUser(
	ctx context.Context,
	actor Actor,
	id string,
	params UpdateUserParams,
) (*model.User, error) {
	if !canManageUser(actor, id) {
		return nil, ErrForbidden
	}

	update := repository.UpdateUserParams{}

	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		update.Name = &name
	}

	if params.Email != nil {
		email := normalizeEmail(*params.Email)

		existing, err := u.userRepo.GetUserByEmail(ctx, email)
		switch {
		case err == nil && existing.ID.Hex() != id:
			return nil, ErrEmailAlreadyInUse
		case err != nil && !errors.Is(err, mongo.ErrNoDocuments):
			return nil, err
		}

		update.Email = &email
	}

	if params.Password != nil {
		passwordHash, err := security.HashPassword(*params.Password)
		if err != nil {
			return nil, err
		}
		update.PasswordHash = &passwordHash
	}

	user, err := u.userRepo.UpdateUser(ctx, id, update)
	if err != nil {
		switch {
		case repository.IsNotFound(err):
			return nil, ErrUserNotFound
		case errors.Is(err, repository.ErrNothingToUpdate):
			return nil, ErrNothingToUpdate
		case mongo.IsDuplicateKeyError(err):
			return nil, ErrEmailAlreadyInUse
		}
		return nil, err
	}

	return user, nil
}

func (u *userUsecase) DeleteUser(ctx context.Context, actor Actor, id string) error {
	if !canManageUser(actor, id) {
		return ErrForbidden
	}

	user, err := u.userRepo.DeleteUser(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}

	_, err = u.identityRepo.DeleteUserIdentities(ctx, user.ID.Hex())
	return err
}

func canManageUser(actor Actor, id string) bool {
	return actor.IsAdmin() || (actor.UserID != "" && actor.UserID == id)
}
