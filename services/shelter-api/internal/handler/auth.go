package handler

import (
	"net/http"
	"strings"

	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/payload"
	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/usecase"
	"github.com/vasapolrittideah/animal-shelter-api/shared/httputil"
	"github.com/vasapolrittideah/animal-shelter-api/shared/validation"
)

// registerRules are checked up front and every failure is reported.
var registerRules = []validation.Rule[payload.RegisterRequest]{
	{
		Field:   "name",
		Value:   func(r payload.RegisterRequest) any { return strings.TrimSpace(r.Name) },
		Tag:     "required",
		Message: "Name is required",
	},
	{
		Field:   "email",
		Value:   func(r payload.RegisterRequest) any { return strings.TrimSpace(r.Email) },
		Tag:     "required,email",
		Message: "Enter a valid email",
	},
	{
		Field:   "password",
		Value:   func(r payload.RegisterRequest) any { return r.Password },
		Tag:     "min=6",
		Message: "Password must be at least 6 characters",
	},
}

type authHTTPHandler struct {
	authUsecase          usecase.AuthUsecase
	passwordResetUsecase usecase.PasswordResetUsecase
	validator            *validation.Validator
}

func (h *authHTTPHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req payload.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if errs := validation.Check(h.validator, req, registerRules); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return
	}

	result, err := h.authUsecase.Register(r.Context(), usecase.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusCreated, payload.AuthResponse{
		Token: result.Token,
		User:  payload.NewPublicUser(result.User),
	})
}

func (h *authHTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		httputil.Error(w, http.StatusBadRequest, "Please provide both email and password")
		return
	}

	result, err := h.authUsecase.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, payload.AuthResponse{
		Message: "Login successful",
		Token:   result.Token,
		User:    payload.NewPublicUser(result.User),
	})
}

func (h *authHTTPHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req payload.GoogleLoginRequest
	if !decodeBody(w, r, &req) || !validateBody(w, h.validator, req) {
		return
	}

	result, err := h.authUsecase.GoogleLogin(r.Context(), usecase.GoogleLoginParams{
		IDToken: req.IDToken,
		Name:    req.Name,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, payload.AuthResponse{
		Message: "Login successful",
		Token:   result.Token,
		User:    payload.NewPublicUser(result.User),
	})
}

func (h *authHTTPHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req payload.ForgotPasswordRequest
	if !decodeBody(w, r, &req) || !validateBody(w, h.validator, req) {
		return
	}

	if err := h.passwordResetUsecase.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, payload.MessageResponse{
		Message: "If an account exists for that email, a password reset link has been sent",
	})
}

func (h *authHTTPHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req payload.ResetPasswordRequest
	if !decodeBody(w, r, &req) || !validateBody(w, h.validator, req) {
		return
	}

	if err := h.passwordResetUsecase.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		writeError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, payload.MessageResponse{Message: "Password has been reset"})
}
