package handler

import (
	"errors"
	"math"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/model"
	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/repository"
	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/usecase"
	"github.com/vasapolrittideah/animal-shelter-api/shared/httputil"
	"github.com/vasapolrittideah/animal-shelter-api/shared/middleware"
	"github.com/vasapolrittideah/animal-shelter-api/shared/validation"
)

type validationErrorResponse struct {
	Errors []validation.FieldError `json:"errors"`
}

type errorMapping struct {
	err    error
	status int
	msg    string
}

// errorMappings translates usecase sentinels into client responses. Anything not
// listed here is answered with a generic 500.
var errorMappings = []errorMapping{
	{usecase.ErrForbidden, http.StatusForbidden, "Access denied"},
	{usecase.ErrNothingToUpdate, http.StatusBadRequest, "No fields to update"},
	{usecase.ErrUserAlreadyExists, http.StatusBadRequest, "User already exists"},
	{usecase.ErrInvalidCredentials, http.StatusBadRequest, "Invalid credentials"},
	{usecase.ErrInvalidGoogleToken, http.StatusBadRequest, "Invalid Google token"},
	{usecase.ErrGoogleSignInDisabled, http.StatusServiceUnavailable, "Google sign-in is not available"},
	{usecase.ErrTokenNotFound, http.StatusBadRequest, "Password reset token not found"},
	{usecase.ErrTokenAlreadyUsed, http.StatusBadRequest, "Password reset token has already been used"},
	{usecase.ErrTokenExpired, http.StatusBadRequest, "Password reset token has expired"},
	{usecase.ErrInvalidToken, http.StatusBadRequest, "Invalid password reset token"},
	{usecase.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{usecase.ErrEmailAlreadyInUse, http.StatusBadRequest, "Email already in use"},
	{usecase.ErrCannotChangeOwnRole, http.StatusBadRequest, "You cannot change your own role"},
	{usecase.ErrInvalidRole, http.StatusBadRequest, "Invalid role"},
	{usecase.ErrPetNotFound, http.StatusNotFound, "Pet not found"},
	{usecase.ErrImageStorageDisabled, http.StatusServiceUnavailable, "Image uploads are not configured"},
	{usecase.ErrUnsupportedImageType, http.StatusBadRequest, "Unsupported image type"},
	{usecase.ErrVolunteerNotFound, http.StatusNotFound, "Volunteer not found"},
	{usecase.ErrDonationNotFound, http.StatusNotFound, "Donation not found"},
	{usecase.ErrInvalidAmount, http.StatusBadRequest, "Amount must be greater than zero"},
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			httputil.Error(w, m.status, m.msg)
			return
		}
	}

	httputil.InternalError(w, r, err)
}

// decodeBody parses the request body into v. An empty body leaves v untouched so the
// validation step reports the missing fields.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := httputil.DecodeJSON(w, r, v); err != nil && !errors.Is(err, httputil.ErrEmptyBody) {
		httputil.Error(w, http.StatusBadRequest, "Invalid request body")
		return false
	}

	return true
}

func writeValidationErrors(w http.ResponseWriter, errs []validation.FieldError) {
	httputil.JSON(w, http.StatusBadRequest, validationErrorResponse{Errors: errs})
}

func validateBody(w http.ResponseWriter, v *validation.Validator, body any) bool {
	if errs := v.Struct(body); len(errs) > 0 {
		writeValidationErrors(w, errs)
		return false
	}

	return true
}

func actorFromRequest(r *http.Request) usecase.Actor {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return usecase.Actor{}
	}

	return usecase.Actor{UserID: claims.UserID, Role: model.Role(claims.Role)}
}

type queryError struct {
	param string
}

func (e *queryError) Error() string {
	return "Invalid query parameter: " + e.param
}

// parseListParams reads limit, offset, sort and order. sortable lists the fields a
// client may sort by.
func parseListParams(r *http.Request, sortable ...string) (repository.ListParams, error) {
	q := r.URL.Query()
	params := repository.ListParams{}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || limit == 0 || limit > repository.MaxListLimit {
			return params, &queryError{param: "limit"}
		}
		params.Limit = limit
	}

	if raw := q.Get("offset"); raw != "" {
		offset, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || offset > math.MaxInt64 {
			return params, &queryError{param: "offset"}
		}
		params.Offset = offset
	}

	if raw := q.Get("sort"); raw != "" {
		if raw != "createdAt" && raw != "updatedAt" && !slices.Contains(sortable, raw) {
			return params, &queryError{param: "sort"}
		}
		params.SortBy = &raw
	}

	switch strings.ToLower(q.Get("order")) {
	case "", "asc":
	case "desc":
		params.SortDesc = true
	default:
		return params, &queryError{param: "order"}
	}

	return params, nil
}

func optionalQuery(r *http.Request, key string) *string {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return nil
	}
	return &value
}

func writeQueryError(w http.ResponseWriter, err error) {
	httputil.Error(w, http.StatusBadRequest, err.Error())
}
