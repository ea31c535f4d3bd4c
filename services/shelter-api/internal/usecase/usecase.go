package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/model"
	"github.com/vasapolrittideah/animal-shelter-api/shared/provider"
	"github.com/vasapolrittideah/animal-shelter-api/shared/storage"
)

// Notifier delivers HTML email. *mailer.Mailer satisfies it.
type Notifier interface {
	SendHTML(to []string, subject, htmlBody string) error
}

// GoogleTokenVerifier checks Google ID tokens. *provider.GoogleOAuthProvider satisfies it.
type GoogleTokenVerifier interface {
	ValidateIDToken(ctx context.Context, idToken string) (*provider.GoogleIdentity, error)
}

// ImagePresigner issues upload URLs for pet images. *storage.FilePresigner satisfies it.
type ImagePresigner interface {
	PresignUpload(ctx context.Context, objectKey, contentType string) (*storage.PresignedUpload, error)
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID string
	Role   model.Role
}

// IsAdmin reports whether the actor has the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == model.RoleAdmin
}

var (
	ErrForbidden       = errors.New("access denied")
	ErrNothingToUpdate = errors.New("no fields to update")
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
