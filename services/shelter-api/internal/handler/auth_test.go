package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/config"
	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/repository"
)

func fieldsOf(errs errorsBody) []string {
	fields := make([]string, 0, len(errs.Errors))
	for _, e := range errs.Errors {
		fields = append(fields, e.Field)
	}
	return fields
}

func TestRegister(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/auth/register", map[string]any{
		"name": "Alice", "email": "Alice@Example.org", "password": "secret1",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "password")

	body := decode[authBody](t, rec)
	assert.Equal(t, "Alice", body.User.Name)
	assert.Equal(t, "alice@example.org", body.User.Email)
	assert.Equal(t, "user", body.User.Role)

	claims, err := s.jwtAuth.ParseUserToken(body.Token, s.cfg.Token.Secret)
	require.NoError(t, err)
	assert.Equal(t, body.User.ID, claims.UserID)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestRegister_Duplicate(t *testing.T) {
	s := newTestServer(t)
	req := map[string]any{"name": "Alice", "email": "alice@example.org", "password": "secret1"}

	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/auth/register", req, "").Code)

	rec := s.do(t, http.MethodPost, "/api/auth/register", req, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User already exists", decode[msgBody](t, rec).Msg)

	users, err := s.users.ListUsers(context.Background(), repository.FilterUsersParams{})
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestRegister_Validation(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/auth/register", nil, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	errs := decode[errorsBody](t, rec)
	assert.Equal(t, []string{"name", "email", "password"}, fieldsOf(errs))
	assert.Equal(t, "Name is required", errs.Errors[0].Message)
	assert.Equal(t, "Enter a valid email", errs.Errors[1].Message)
	assert.Equal(t, "Password must be at least 6 characters", errs.Errors[2].Message)

	rec = s.do(t, http.MethodPost, "/api/auth/register", map[string]any{
		"name": "Alice", "email": "alice@example.org", "password": "12345",
	}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"password"}, fieldsOf(decode[errorsBody](t, rec)))

	rec = s.do(t, http.MethodPost, "/api/auth/register", "{not json", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", decode[msgBody](t, rec).Msg)
}

func TestRegister_AdminEmailIgnoresCase(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/auth/register", map[string]any{
		"name": "Root", "email": "ADMIN@example.COM", "password": "secret1",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "admin", decode[authBody](t, rec).User.Role)
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/auth/register", map[string]any{
		"name": "Alice", "email": "alice@example.org", "password": "secret1",
	}, "").Code)

	rec := s.do(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email": "ALICE@example.org", "password": "secret1",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[authBody](t, rec)
	assert.Equal(t, "Login successful", body.Message)
	assert.NotEmpty(t, body.Token)
	assert.Equal(t, "alice@example.org", body.User.Email)

	wrongPassword := s.do(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email": "alice@example.org", "password": "nope-nope",
	}, "")
	unknownEmail := s.do(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email": "bob@example.org", "password": "secret1",
	}, "")

	assert.Equal(t, http.StatusBadRequest, wrongPassword.Code)
	assert.Equal(t, http.StatusBadRequest, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
	assert.Equal(t, "Invalid credentials", decode[msgBody](t, wrongPassword).Msg)
}

func TestLogin_MissingFields(t *testing.T) {
	s := newTestServer(t)

	for _, body := range []any{nil, map[string]any{"email": "a@x.com"}, map[string]any{"password": "secret1"}} {
		rec := s.do(t, http.MethodPost, "/api/auth/login", body, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Please provide both email and password", decode[msgBody](t, rec).Msg)
	}
}

func TestOptionalAuthRoutes(t *testing.T) {
	s := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPost, "/api/auth/google", map[string]any{"idToken": "x"}, "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPost, "/api/auth/forgot-password", map[string]any{"email": "a@x.com"}, "").Code)

	s = newTestServer(t, func(cfg *config.ShelterAPIConfig) {
		cfg.Token.PasswordResetTokenSecret = "reset-secret"
		cfg.Token.PasswordResetTokenExpiresIn = 15 * time.Minute
		cfg.AppPasswordResetURL = "http://localhost:4200/reset-password"
	})

	rec := s.do(t, http.MethodPost, "/api/auth/forgot-password", map[string]any{"email": "nobody@x.com"}, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/auth/reset-password", map[string]any{"token": "bogus", "password": "secret1"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid password reset token", decode[msgBody](t, rec).Msg)

	rec = s.do(t, http.MethodPost, "/api/auth/reset-password", map[string]any{"token": "bogus", "password": "123"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"password"}, fieldsOf(decode[errorsBody](t, rec)))
}
