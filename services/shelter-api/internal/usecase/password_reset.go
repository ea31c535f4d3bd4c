package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/config"
	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/model"
	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/repository"
	"github.com/vasapolrittideah/animal-shelter-api/shared/auth"
	"github.com/vasapolrittideah/animal-shelter-api/shared/security"
)

// PasswordResetUsecase defines the business logic for password reset token operations.
type PasswordResetUsecase interface {
	// RequestPasswordReset mails a reset link when email belongs to a user. It reports
	// success either way so callers cannot probe for accounts.
	RequestPasswordReset(ctx context.Context, email string) error

	// ResetPassword sets a new password using a token from the reset link.
	ResetPassword(ctx context.Context, token, newPassword string) error
}

var (
	ErrTokenNotFound    = errors.New("password reset token not found")
	ErrTokenAlreadyUsed = errors.New("password reset token has already been used")
	ErrTokenExpired     = errors.New("password reset token has expired")
	ErrInvalidToken     = errors.New("invalid password reset token")
)

type passwordResetUsecase struct {
	userRepo      repository.UserRepository
	tokenRepo     repository.PasswordResetTokenRepository
	jwtAuth       auth.JWTAuthenticator
	notifier      Notifier
	shelterAPICfg *config.ShelterAPIConfig
	now           func() time.Time
}

// NewPasswordResetUsecase creates a new instance of PasswordResetUsecase.
func NewPasswordResetUsecase(
	userRepo repository.UserRepository,
	tokenRepo repository.PasswordResetTokenRepository,
	jwtAuth auth.JWTAuthenticator,
	notifier Notifier,
	shelterAPICfg *config.ShelterAPIConfig,
) PasswordResetUsecase {
	return &passwordResetUsecase{
		userRepo:      userRepo,
		tokenRepo:     tokenRepo,
		jwtAuth:       jwtAuth,
		notifier:      notifier,
		shelterAPICfg: shelterAPICfg,
		now:           time.Now,
	}
}

func (u *passwordResetUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := u.userRepo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil
		}
		return err
	}

	if err := u.tokenRepo.InvalidateUserTokens(ctx, user.ID.Hex()); err != nil {
		return err
	}

	tokenStr, jti, err := u.generatePasswordResetToken(user.ID.Hex(), user.Email)
	if err != nil {
		return err
	}

	expiresIn := u.shelterAPICfg.Token.PasswordResetTokenExpiresIn
	if _, err := u.tokenRepo.CreateToken(ctx, &model.PasswordResetToken{
		JTI:       jti,
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: u.now().Add(expiresIn).UTC(),
	}); err != nil {
		return err
	}

	link, err := u.resetLink(tokenStr)
	if err != nil {
		return err
	}

	body, err := renderMail("password_reset", map[string]any{
		"Name":      user.Name,
		"Link":      link,
		"ExpiresIn": expiresIn.String(),
	})
	if err != nil {
		return err
	}

	return u.notifier.SendHTML([]string{user.Email}, "Password Reset Request", body)
}

func (u *passwordResetUsecase) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims := &auth.PasswordResetClaims{}
	if _, err := u.jwtAuth.ValidateTokenWithClaims(
		token,
		u.shelterAPICfg.Token.PasswordResetTokenSecret,
		claims,
	); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return ErrInvalidToken
	}

	if claims.ID == "" {
		return ErrInvalidToken
	}

	resetToken, err := u.tokenRepo.GetTokenByJTI(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrTokenNotFound
		}
		return err
	}

	if resetToken.UserID.Hex() != claims.UserID {
		return ErrInvalidToken
	}

	if resetToken.Used {
		return ErrTokenAlreadyUsed
	}

	if u.now().After(resetToken.ExpiresAt) {
		return ErrTokenExpired
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	// Only one caller can flip used from false to true.
	if err := u.tokenRepo.MarkTokenAsUsed(ctx, claims.ID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrTokenAlreadyUsed
		}
		return err
	}

	if _, err := u.userRepo.UpdateUser(ctx, resetToken.UserID.Hex(), repository.UpdateUserParams{
		PasswordHash: &passwordHash,
	}); err != nil {
		if repository.IsNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}

	return nil
}

// generatePasswordResetToken creates a password reset JWT token with a unique JTI.
func (u *passwordResetUsecase) generatePasswordResetToken(userID, email string) (string, string, error) {
	jti, err := generateJTI()
	if err != nil {
		return "", "", err
	}

	registered := u.jwtAuth.RegisteredClaims(userID, u.shelterAPICfg.Token.PasswordResetTokenExpiresIn)
	registered.ID = jti

	tokenStr, err := u.jwtAuth.GenerateToken(auth.PasswordResetClaims{
		UserID:           userID,
		Email:            email,
		RegisteredClaims: registered,
	}, u.shelterAPICfg.Token.PasswordResetTokenSecret)
	if err != nil {
		return "", "", err
	}

	return tokenStr, jti, nil
}

func (u *passwordResetUsecase) resetLink(token string) (string, error) {
	link, err := url.Parse(u.shelterAPICfg.AppPasswordResetURL)
	if err != nil {
		return "", err
	}

	query := link.Query()
	query.Set("token", token)
	link.RawQuery = query.Encode()

	return link.String(), nil
}

// generateJTI generates a unique JTI.
func generateJTI() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
