package handler

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/model"
	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/payload"
	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/repository"
	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/usecase"
	"github.com/vasapolrittideah/animal-shelter-api/shared/httputil"
	"github.com/vasapolrittideah/animal-shelter-api/shared/validation"
)

type volunteerHTTPHandler struct {
	volunteerUsecase usecase.VolunteerUsecase
	validator        *validation.Validator
}

// SignUp is public. A signed-in submitter is linked to the signup.
func (h *volunteerHTTPHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req payload.VolunteerSignUpRequest
	if !decodeBody(w, r, &req) || !validateBody(w, h.validator, req) {
		return
	}

	volunteer, err := h.volunteerUsecase.SignUp(r.Context(), usecase.SignUpVolunteerParams{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Availability: req.Availability,
		Interests:    req.Interests,
		Message:      req.Message,
		UserID:       actorFromRequest(r).UserID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusCreated, payload.NewVolunteerResponse(volunteer))
}

func (h *volunteerHTTPHandler) ListVolunteers(w http.ResponseWriter, r *http.Request) {
	listParams, err := parseListParams(r, "name", "email", "status")
	if err != nil {
		writeQueryError(w, err)
		return
	}

	filter := repository.FilterVolunteersParams{
		Email:      optionalQuery(r, "email"),
		ListParams: listParams,
	}
	if raw := optionalQuery(r, "status"); raw != nil {
		status := model.VolunteerStatus(*raw)
		if !slices.Contains(model.VolunteerStatuses, status) {
			writeQueryError(w, &queryError{param: "status"})
			return
		}
		filter.Status = &status
	}

	volunteers, err := h.volunteerUsecase.ListVolunteers(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, payload.NewVolunteerResponses(volunteers))
}

func (h *volunteerHTTPHandler) GetVolunteer(w http.ResponseWriter, r *http.Request) {
	volunteer, err := h.volunteerUsecase.GetVolunteer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, payload.NewVolunteerResponse(volunteer))
}

func (h *volunteerHTTPHandler) UpdateVolunteer(w http.ResponseWriter, r *http.Request) {
	var req payload.UpdateVolunteerRequest
	if !decodeBody(w, r, &req) || !validateBody(w, h.validator, req) {
		return
	}

	volunteer, err := h.volunteerUsecase.UpdateVolunteer(r.Context(), chi.URLParam(r, "id"), repository.UpdateVolunteerParams{
		Name:         req.Name,
		Phone:        req.Phone,
		Availability: req.Availability,
		Interests:    req.Interests,
		Message:      req.Message,
		Status:       req.Status,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, payload.NewVolunteerResponse(volunteer))
}

func (h *volunteerHTTPHandler) DeleteVolunteer(w http.ResponseWriter, r *http.Request) {
	if _, err := h.volunteerUsecase.DeleteVolunteer(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, httputil.Message{Msg: "Volunteer removed"})
}
