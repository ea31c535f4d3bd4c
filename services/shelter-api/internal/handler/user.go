package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/model"
	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/payload"
	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/repository"
	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/usecase"
	"github.com/vasapolrittideah/animal-shelter-api/shared/httputil"
	"github.com/vasapolrittideah/animal-shelter-api/shared/validation"
)

type userHTTPHandler struct {
	userUsecase usecase.UserUsecase
	validator   *validation.Validator
}

func (h *userHTTPHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	listParams, err := parseListParams(r, "name", "email", "role")
	if err != nil {
		writeQueryError(w, err)
		return
	}

	filter := repository.FilterUsersParams{
		Email:      optionalQuery(r, "email"),
		ListParams: listParams,
	}
	if raw := optionalQuery(r, "role"); raw != nil {
		role := model.Role(*raw)
		if !role.Valid() {
			writeQueryError(w, &queryError{param: "role"})
			return
		}
		filter.Role = &role
	}

	users, err := h.userUsecase.ListUsers(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, payload.NewUserResponses(users))
}

func (h *userHTTPHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	actor := actorFromRequest(r)

	user, err := h.userUsecase.GetUser(r.Context(), actor, actor.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, payload.NewUserResponse(user))
}

func (h *userHTTPHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userUsecase.GetUser(r.Context(), actorFromRequest(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, payload.NewUserResponse(user))
}

func (h *userHTTPHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req payload.UpdateUserRequest
	if !decodeBody(w, r, &req) || !validateBody(w, h.validator, req) {
		return
	}

	user, err := h.userUsecase.UpdateUser(r.Context(), actorFromRequest(r), chi.URLParam(r, "id"), usecase.UpdateUserParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, payload.NewUserResponse(user))
}

func (h *userHTTPHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.userUsecase.DeleteUser(r.Context(), actorFromRequest(r), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, httputil.Message{Msg: "User removed"})
}
