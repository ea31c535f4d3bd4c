package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/payload"
	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/usecase"
	"github.com/vasapolrittideah/animal-shelter-api/shared/httputil"
	"github.com/vasapolrittideah/animal-shelter-api/shared/validation"
)

type adminHTTPHandler struct {
	adminUsecase usecase.AdminUsecase
	validator    *validation.Validator
}

func (h *adminHTTPHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminUsecase.GetStats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, payload.StatsResponse{
		Users:             stats.Users,
		Admins:            stats.Admins,
		Pets:              stats.Pets,
		VaccinatedPets:    stats.VaccinatedPets,
		Volunteers:        stats.Volunteers,
		Donations:         stats.Donations,
		ReceivedDonations: stats.ReceivedDonations,
	})
}

func (h *adminHTTPHandler) ChangeUserRole(w http.ResponseWriter, r *http.Request) {
	var req payload.ChangeRoleRequest
	if !decodeBody(w, r, &req) || !validateBody(w, h.validator, req) {
		return
	}

	user, err := h.adminUsecase.ChangeUserRole(r.Context(), actorFromRequest(r), chi.URLParam(r, "id"), req.Role)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, payload.NewUserResponse(user))
}
