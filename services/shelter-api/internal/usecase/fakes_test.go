package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/config"
	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/model"
	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/repository"
	"github.com/vasapolrittideah/animal-shelter-api/shared/provider"
	"github.com/vasapolrittideah/animal-shelter-api/shared/storage"
)

type sentMail struct {
	To      []string
	Subject string
	Body    string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (n *fakeNotifier) SendHTML(to []string, subject, htmlBody string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentMail{To: to, Subject: subject, Body: htmlBody})

	return nil
}

func (n *fakeNotifier) last() sentMail {
	n.mu.Lock()
	defer n.mu.Unlock()

	if len(n.sent) == 0 {
		return sentMail{}
	}
	return n.sent[len(n.sent)-1]
}

type fakeGoogleVerifier struct {
	identities map[string]*provider.GoogleIdentity
}

func (v *fakeGoogleVerifier) ValidateIDToken(_ context.Context, idToken string) (*provider.GoogleIdentity, error) {
	identity, ok := v.identities[idToken]
	if !ok {
		return nil, provider.ErrInvalidGoogleAudience
	}
	return identity, nil
}

type fakePresigner struct {
	key         string
	contentType string
}

func (p *fakePresigner) PresignUpload(_ context.Context, objectKey, contentType string) (*storage.PresignedUpload, error) {
	p.key = objectKey
	p.contentType = contentType

	return &storage.PresignedUpload{
		UploadURL: "https://bucket.test/" + objectKey + "?sig=1",
		ImageURL:  "https://bucket.test/" + objectKey,
		Key:       objectKey,
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}, nil
}

var errSMTPDown = errors.New("smtp down")

func testConfig() *config.ShelterAPIConfig {
	return &config.ShelterAPIConfig{
		AdminEmail:          "admin@example.com",
		AppPasswordResetURL: "http://localhost:4200/reset-password",
		Token: config.TokenConfig{
			Secret:                      "access-secret",
			ExpiresIn:                   time.Hour,
			Issuer:                      "animal-shelter-api",
			PasswordResetTokenSecret:    "reset-secret",
			PasswordResetTokenExpiresIn: 15 * time.Minute,
		},
	}
}

type failingIdentityRepo struct {
	repository.IdentityRepository
	err error
}

func (r *failingIdentityRepo) CreateIdentity(context.Context, *model.Identity) (*model.Identity, error) {
	return nil, r.err
}
