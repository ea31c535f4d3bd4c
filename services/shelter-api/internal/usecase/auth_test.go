package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/config"
	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/model"
	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/repository"
	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/repository/memory"
	"github.com/vasapolrittideah/animal-shelter-api/shared/auth"
	"github.com/vasapolrittideah/animal-shelter-api/shared/provider"
	"github.com/vasapolrittideah/animal-shelter-api/shared/security"
)

type authFixture struct {
	users      repository.UserRepository
	identities repository.IdentityRepository
	jwtAuth    auth.JWTAuthenticator
	cfg        *config.ShelterAPIConfig
	uc         AuthUsecase
}

func newAuthFixture(google GoogleTokenVerifier) *authFixture {
	cfg := testConfig()
	f := &authFixture{
		users:      memory.NewUserRepo(),
		identities: memory.NewIdentityRepo(),
		jwtAuth:    auth.NewJWTAuthenticator(cfg.Token.Issuer, cfg.Token.Issuer),
		cfg:        cfg,
	}
	f.uc = NewAuthUsecase(f.users, f.identities, f.jwtAuth, google, cfg)

	return f
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(nil)

	result, err := f.uc.Register(ctx, RegisterParams{Name: " Jane ", Email: " Jane@Example.com", Password: "secret1"})
	require.NoError(t, err)

	assert.Equal(t, "Jane", result.User.Name)
	assert.Equal(t, "jane@example.com", result.User.Email)
	assert.Equal(t, model.RoleUser, result.User.Role)
	assert.NotEqual(t, "secret1", result.User.PasswordHash)

	ok, err := security.VerifyPassword("secret1", result.User.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	claims, err := f.jwtAuth.ParseUserToken(result.Token, f.cfg.Token.Secret)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID.Hex(), claims.UserID)
	assert.Equal(t, "user", claims.Role)
	assert.WithinDuration(t, claims.IssuedAt.Add(time.Hour), claims.ExpiresAt.Time, time.Second)

	identities, err := f.identities.GetIdentitiesByUserID(ctx, result.User.ID.Hex())
	require.NoError(t, err)
	require.Len(t, identities, 1)
	assert.Equal(t, model.ProviderEmail, identities[0].Provider)
}

func TestRegister_Duplicate(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(nil)

	_, err := f.uc.Register(ctx, RegisterParams{Name: "A", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = f.uc.Register(ctx, RegisterParams{Name: "A", Email: "A@X.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	count, err := f.users.CountUsers(ctx, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestRegister_RollsBackUserWhenIdentityFails(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(nil)
	identityErr := errors.New("identity insert failed")
	uc := NewAuthUsecase(f.users, &failingIdentityRepo{IdentityRepository: f.identities, err: identityErr}, f.jwtAuth, nil, f.cfg)

	_, err := uc.Register(ctx, RegisterParams{Name: "Jane", Email: "jane@example.com", Password: "secret1"})
	require.ErrorIs(t, err, identityErr)

	_, err = f.users.GetUserByEmail(ctx, "jane@example.com")
	assert.ErrorIs(t, err, mongo.ErrNoDocuments)

	result, err := f.uc.Register(ctx, RegisterParams{Name: "Jane", Email: "jane@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", result.User.Email)
}

func TestRegister_AdminEmailIsCaseInsensitive(t *testing.T) {
	f := newAuthFixture(nil)

	result, err := f.uc.Register(context.Background(), RegisterParams{
		Name:     "Boss",
		Email:    "ADMIN@Example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, result.User.Role)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(nil)

	registered, err := f.uc.Register(ctx, RegisterParams{Name: "A", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	result, err := f.uc.Login(ctx, LoginParams{Email: "A@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, result.User.ID)

	claims, err := f.jwtAuth.ParseUserToken(result.Token, f.cfg.Token.Secret)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID.Hex(), claims.UserID)
}

func TestLogin_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(nil)

	_, err := f.uc.Register(ctx, RegisterParams{Name: "A", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, wrongPassword := f.uc.Login(ctx, LoginParams{Email: "a@x.com", Password: "nope123"})
	_, unknownEmail := f.uc.Login(ctx, LoginParams{Email: "b@x.com", Password: "secret1"})

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLogin_RehashesLegacyBcrypt(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(nil)

	legacy, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	user, err := f.users.CreateUser(ctx, &model.User{
		Name:         "Old",
		Email:        "old@x.com",
		PasswordHash: string(legacy),
		Role:         model.RoleUser,
	})
	require.NoError(t, err)

	_, err = f.uc.Login(ctx, LoginParams{Email: "old@x.com", Password: "secret1"})
	require.NoError(t, err)

	stored, err := f.users.GetUser(ctx, user.ID.Hex())
	require.NoError(t, err)
	assert.False(t, security.NeedsRehash(stored.PasswordHash))

	identities, err := f.identities.GetIdentitiesByUserID(ctx, user.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, identities, 1)
}

func TestGoogleLogin(t *testing.T) {
	ctx := context.Background()
	google := &fakeGoogleVerifier{identities: map[string]*provider.GoogleIdentity{
		"good-token":  {ProviderID: "g-1", Email: "jane@example.com"},
		"admin-token": {ProviderID: "g-2", Email: "admin@example.com"},
	}}
	f := newAuthFixture(google)

	first, err := f.uc.GoogleLogin(ctx, GoogleLoginParams{IDToken: "good-token"})
	require.NoError(t, err)
	assert.Equal(t, "jane", first.User.Name)
	assert.Equal(t, model.RoleUser, first.User.Role)

	second, err := f.uc.GoogleLogin(ctx, GoogleLoginParams{IDToken: "good-token", Name: "ignored"})
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)

	admin, err := f.uc.GoogleLogin(ctx, GoogleLoginParams{IDToken: "admin-token", Name: "Boss"})
	require.NoError(t, err)
	assert.Equal(t, "Boss", admin.User.Name)
	assert.Equal(t, model.RoleAdmin, admin.User.Role)

	_, err = f.uc.GoogleLogin(ctx, GoogleLoginParams{IDToken: "forged"})
	assert.ErrorIs(t, err, ErrInvalidGoogleToken)
}

func TestGoogleLogin_LinksExistingAccount(t *testing.T) {
	ctx := context.Background()
	google := &fakeGoogleVerifier{identities: map[string]*provider.GoogleIdentity{
		"token": {ProviderID: "g-1", Email: "a@x.com"},
	}}
	f := newAuthFixture(google)

	registered, err := f.uc.Register(ctx, RegisterParams{Name: "A", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)

	result, err := f.uc.GoogleLogin(ctx, GoogleLoginParams{IDToken: "token"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, result.User.ID)

	identities, err := f.identities.GetIdentitiesByUserID(ctx, registered.User.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, identities, 2)
}

func TestGoogleLogin_Disabled(t *testing.T) {
	f := newAuthFixture(nil)

	_, err := f.uc.GoogleLogin(context.Background(), GoogleLoginParams{IDToken: "x"})
	assert.ErrorIs(t, err, ErrGoogleSignInDisabled)
}
