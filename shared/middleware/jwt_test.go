package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasapolrittideah/animal-shelter-api/shared/auth"
)

const secret = "middleware-secret"

func newTestMiddleware() (*JWTMiddleware, auth.JWTAuthenticator) {
	jwtAuth := auth.NewJWTAuthenticator("shelter", "shelter")
	return NewJWTMiddleware(jwtAuth, secret), jwtAuth
}

func claimsEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = w.Write([]byte(claims.UserID + ":" + claims.Role))
	})
}

func TestAuthenticate(t *testing.T) {
	m, jwtAuth := newTestMiddleware()
	token, err := jwtAuth.IssueUserToken("u1", auth.RoleUser, secret, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		headers    map[string]string
		wantStatus int
		wantBody   string
	}{
		{name: "missing token", wantStatus: http.StatusUnauthorized, wantBody: `{"msg":"No token, authorization denied"}`},
		{name: "bearer token", headers: map[string]string{"Authorization": "Bearer " + token}, wantStatus: http.StatusOK, wantBody: "u1:user"},
		{name: "legacy header", headers: map[string]string{"x-auth-token": token}, wantStatus: http.StatusOK, wantBody: "u1:user"},
		{name: "malformed header", headers: map[string]string{"Authorization": token}, wantStatus: http.StatusUnauthorized, wantBody: `{"msg":"Token is not valid"}`},
		{name: "garbage token", headers: map[string]string{"Authorization": "Bearer nope"}, wantStatus: http.StatusUnauthorized, wantBody: `{"msg":"Token is not valid"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()

			m.Authenticate(claimsEcho()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			} else {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestOptional_PassesThroughWithoutToken(t *testing.T) {
	m, _ := newTestMiddleware()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer broken")
	rec := httptest.NewRecorder()

	m.Optional(claimsEcho()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequireRole(t *testing.T) {
	m, jwtAuth := newTestMiddleware()
	guarded := m.Authenticate(RequireRole(auth.RoleAdmin)(claimsEcho()))

	userToken, err := jwtAuth.IssueUserToken("u1", auth.RoleUser, secret, time.Hour)
	require.NoError(t, err)
	adminToken, err := jwtAuth.IssueUserToken("a1", auth.RoleAdmin, secret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	rec := httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"msg":"Access denied"}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec = httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a1:admin", rec.Body.String())
}
