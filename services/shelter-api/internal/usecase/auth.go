package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/config"
	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/model"
	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/repository"
	"github.com/vasapolrittideah/animal-shelter-api/shared/auth"
	"github.com/vasapolrittideah/animal-shelter-api/shared/security"
)

// AuthUsecase defines the interface for authentication-related use cases.
type AuthUsecase interface {
	Register(ctx context.Context, params RegisterParams) (*AuthResult, error)
	Login(ctx context.Context, params LoginParams) (*AuthResult, error)
	GoogleLogin(ctx context.Context, params GoogleLoginParams) (*AuthResult, error)
}

// RegisterParams defines the parameters for user registration.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email    string
	Password string
}

// GoogleLoginParams defines the parameters for signing in with a Google ID token.
// Name is used only when the account is created.
type GoogleLoginParams struct {
	IDToken string
	Name    string
}

// AuthResult is an issued access token together with the signed-in user.
type AuthResult struct {
	Token string
	User  *model.User
}

var (
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidGoogleToken   = errors.New("invalid google token")
	ErrGoogleSignInDisabled = errors.New("google sign-in is not configured")
)

type authUsecase struct {
	userRepo      repository.UserRepository
	identityRepo  repository.IdentityRepository
	jwtAuth       auth.JWTAuthenticator
	google        GoogleTokenVerifier
	shelterAPICfg *config.ShelterAPIConfig
}

// NewAuthUsecase creates the auth usecase. google may be nil when Google sign-in is
// not configured.
func NewAuthUsecase(
	userRepo repository.UserRepository,
	identityRepo repository.IdentityRepository,
	jwtAuth auth.JWTAuthenticator,
	google GoogleTokenVerifier,
	shelterAPICfg *config.ShelterAPIConfig,
) AuthUsecase {
	return &authUsecase{
		userRepo:      userRepo,
		identityRepo:  identityRepo,
		jwtAuth:       jwtAuth,
		google:        google,
		shelterAPICfg: shelterAPICfg,
	}
}

func (u *authUsecase) Register(ctx context.Context, params RegisterParams) (*AuthResult, error) {
	email := normalizeEmail(params.Email)

	if _, err := u.userRepo.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrUserAlreadyExists
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Name:         strings.TrimSpace(params.Name),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         u.roleFor(email),
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrUserAlreadyExists
		}

		return nil, err
	}

	if _, err := u.identityRepo.CreateIdentity(ctx, &model.Identity{
		UserID:   user.ID.Hex(),
		Provider: model.ProviderEmail,
		Email:    user.Email,
	}); err != nil {
		if _, delErr := u.userRepo.DeleteUser(ctx, user.ID.Hex()); delErr != nil {
			return nil, errors.Join(err, delErr)
		}
		return nil, err
	}

	return u.issue(user)
}

func (u *authUsecase) Login(ctx context.Context, params LoginParams) (*AuthResult, error) {
	email := normalizeEmail(params.Email)

	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	if ok, err := security.VerifyPassword(params.Password, user.PasswordHash); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrInvalidCredentials
	}

	if security.NeedsRehash(user.PasswordHash) {
		passwordHash, err := security.HashPassword(params.Password)
		if err != nil {
			return nil, err
		}

		if user, err = u.userRepo.UpdateUser(ctx, user.ID.Hex(), repository.UpdateUserParams{
			PasswordHash: &passwordHash,
		}); err != nil {
			return nil, err
		}
	}

	if err := u.identityRepo.UpdateLastLogin(ctx, user.ID.Hex(), model.ProviderEmail, user.Email); err != nil {
		return nil, err
	}

	return u.issue(user)
}

func (u *authUsecase) GoogleLogin(ctx context.Context, params GoogleLoginParams) (*AuthResult, error) {
	if u.google == nil {
		return nil, ErrGoogleSignInDisabled
	}

	identity, err := u.google.ValidateIDToken(ctx, params.IDToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidGoogleToken, err)
	}

	user, err := u.findOrCreateGoogleUser(ctx, identity.ProviderID, identity.Email, params.Name)
	if err != nil {
		return nil, err
	}

	if err := u.identityRepo.UpdateLastLogin(ctx, user.ID.Hex(), model.ProviderGoogle, user.Email); err != nil {
		return nil, err
	}

	return u.issue(user)
}

func (u *authUsecase) findOrCreateGoogleUser(ctx context.Context, providerID, email, name string) (*model.User, error) {
	linked, err := u.identityRepo.GetIdentityByProvider(ctx, providerID, model.ProviderGoogle)
	switch {
	case err == nil:
		user, err := u.userRepo.GetUser(ctx, linked.UserID)
		if err == nil || !repository.IsNotFound(err) {
			return user, err
		}
		// The account behind a stale identity was deleted; fall through and recreate it.
	case !errors.Is(err, mongo.ErrNoDocuments):
		return nil, err
	}

	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if name = strings.TrimSpace(name); name == "" {
			name, _, _ = strings.Cut(email, "@")
		}

		user, err = u.userRepo.CreateUser(ctx, &model.User{
			Name:  name,
			Email: email,
			Role:  u.roleFor(email),
		})
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	if _, err := u.identityRepo.CreateIdentity(ctx, &model.Identity{
		UserID:     user.ID.Hex(),
		Provider:   model.ProviderGoogle,
		ProviderID: providerID,
		Email:      email,
	}); err != nil {
		return nil, err
	}

	return user, nil
}

func (u *authUsecase) roleFor(email string) model.Role {
	if email == normalizeEmail(u.shelterAPICfg.AdminEmail) {
		return model.RoleAdmin
	}

	return model.RoleUser
}

func (u *authUsecase) issue(user *model.User) (*AuthResult, error) {
	token, err := u.jwtAuth.IssueUserToken(
		user.ID.Hex(),
		string(user.Role),
		u.shelterAPICfg.Token.Secret,
		u.shelterAPICfg.Token.ExpiresIn,
	)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, User: user}, nil
}
