package middleware

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/rs/zerolog/hlog"

	"github.com/vasapolrittideah/animal-shelter-api/shared/auth"
	"github.com/vasapolrittideah/animal-shelter-api/shared/httputil"
)

type contextKey struct{}

var UserClaimsKey = contextKey{}

// legacyTokenHeader is read when no Authorization header is sent.
const legacyTokenHeader = "X-Auth-Token"

var (
	errMissingToken      = errors.New("missing token")
	errInvalidAuthHeader = errors.New("invalid authorization header format")
)

// JWTMiddleware validates access tokens and stores their claims on the request context.
type JWTMiddleware struct {
	jwtAuth auth.JWTAuthenticator
	secret  string
}

func NewJWTMiddleware(jwtAuth auth.JWTAuthenticator, secret string) *JWTMiddleware {
	return &JWTMiddleware{jwtAuth: jwtAuth, secret: secret}
}

// Authenticate rejects requests without a valid token.
func (m *JWTMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.extractAndValidateJWT(r)
		if err != nil {
			if errors.Is(err, errMissingToken) {
				httputil.Error(w, http.StatusUnauthorized, "No token, authorization denied")
				return
			}

			hlog.FromRequest(r).Debug().Err(err).Msg("rejected access token")
			httputil.Error(w, http.StatusUnauthorized, "Token is not valid")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), UserClaimsKey, claims)))
	})
}

// Optional attaches claims when a valid token is present and lets every request through.
func (m *JWTMiddleware) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.extractAndValidateJWT(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), UserClaimsKey, claims)))
	})
}

// RequireRole only lets through requests whose claims carry one of roles.
// It must run after Authenticate.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok || !slices.Contains(roles, claims.Role) {
				httputil.Error(w, http.StatusForbidden, "Access denied")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClaimsFromContext returns the claims stored by Authenticate or Optional.
func ClaimsFromContext(ctx context.Context) (*auth.UserClaims, bool) {
	claims, ok := ctx.Value(UserClaimsKey).(*auth.UserClaims)
	return claims, ok && claims != nil
}

func (m *JWTMiddleware) extractAndValidateJWT(r *http.Request) (*auth.UserClaims, error) {
	tokenString, err := extractToken(r)
	if err != nil {
		return nil, err
	}

	return m.jwtAuth.ParseUserToken(tokenString, m.secret)
}

func extractToken(r *http.Request) (string, error) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			return "", errInvalidAuthHeader
		}

		return strings.TrimSpace(parts[1]), nil
	}

	if token := strings.TrimSpace(r.Header.Get(legacyTokenHeader)); token != "" {
		return token, nil
	}

	return "", errMissingToken
}
