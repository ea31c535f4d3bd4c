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

type donationHTTPHandler struct {
	donationUsecase usecase.DonationUsecase
	validator       *validation.Validator
}

func (h *donationHTTPHandler) CreateDonation(w http.ResponseWriter, r *http.Request) {
	var req payload.CreateDonationRequest
	if !decodeBody(w, r, &req) || !validateBody(w, h.validator, req) {
		return
	}

	donation, err := h.donationUsecase.CreateDonation(r.Context(), usecase.CreateDonationParams{
		DonorName: req.DonorName,
		Email:     req.Email,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Message:   req.Message,
		UserID:    actorFromRequest(r).UserID,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusCreated, payload.NewDonationResponse(donation))
}

func (h *donationHTTPHandler) ListDonations(w http.ResponseWriter, r *http.Request) {
	listParams, err := parseListParams(r, "amount", "donorName", "status")
	if err != nil {
		writeQueryError(w, err)
		return
	}

	filter := repository.FilterDonationsParams{
		Email:      optionalQuery(r, "email"),
		ListParams: listParams,
	}
	if raw := optionalQuery(r, "status"); raw != nil {
		status := model.DonationStatus(*raw)
		switch status {
		case model.DonationPledged, model.DonationReceived, model.DonationCancelled:
		default:
			writeQueryError(w, &queryError{param: "status"})
			return
		}
		filter.Status = &status
	}

	donations, err := h.donationUsecase.ListDonations(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, payload.NewDonationResponses(donations))
}

func (h *donationHTTPHandler) GetDonation(w http.ResponseWriter, r *http.Request) {
	donation, err := h.donationUsecase.GetDonation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, payload.NewDonationResponse(donation))
}

func (h *donationHTTPHandler) UpdateDonation(w http.ResponseWriter, r *http.Request) {
	var req payload.UpdateDonationRequest
	if !decodeBody(w, r, &req) || !validateBody(w, h.validator, req) {
		return
	}

	donation, err := h.donationUsecase.UpdateDonation(r.Context(), chi.URLParam(r, "id"), repository.UpdateDonationParams{
		DonorName: req.DonorName,
		Message:   req.Message,
		Status:    req.Status,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, payload.NewDonationResponse(donation))
}

func (h *donationHTTPHandler) DeleteDonation(w http.ResponseWriter, r *http.Request) {
	if _, err := h.donationUsecase.DeleteDonation(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, httputil.Message{Msg: "Donation removed"})
}
