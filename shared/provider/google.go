package provider

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

var (
	ErrInvalidGoogleAudience = errors.New("invalid google audience")
	ErrUnverifiedGoogleEmail = errors.New("google email is not verified")
	ErrEmptyGoogleIDToken    = errors.New("google id token is empty")
)

// GoogleIdentity is the subset of a verified ID token the service relies on.
type GoogleIdentity struct {
	ProviderID string
	Email      string
}

type GoogleOAuthProvider struct {
	clientID string
	service  *oauth2.Service
}

// NewGoogleOAuthProvider creates a provider that accepts ID tokens issued for clientID.
// Extra options are passed to the Google API client.
func NewGoogleOAuthProvider(ctx context.Context, clientID string, opts ...option.ClientOption) (*GoogleOAuthProvider, error) {
	opts = append([]option.ClientOption{
		option.WithHTTPClient(&http.Client{Timeout: 10 * time.Second}),
	}, opts...)

	service, err := oauth2.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &GoogleOAuthProvider{clientID: clientID, service: service}, nil
}

// ValidateIDToken asks Google's tokeninfo endpoint to verify idToken and checks it was
// issued for this client.
func (p *GoogleOAuthProvider) ValidateIDToken(ctx context.Context, idToken string) (*GoogleIdentity, error) {
	if strings.TrimSpace(idToken) == "" {
		return nil, ErrEmptyGoogleIDToken
	}

	tokenInfo, err := p.service.Tokeninfo().IdToken(idToken).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	if tokenInfo.Audience != p.clientID {
		return nil, ErrInvalidGoogleAudience
	}

	if !tokenInfo.VerifiedEmail || tokenInfo.Email == "" {
		return nil, ErrUnverifiedGoogleEmail
	}

	return &GoogleIdentity{
		ProviderID: tokenInfo.UserId,
		Email:      strings.ToLower(tokenInfo.Email),
	}, nil
}
