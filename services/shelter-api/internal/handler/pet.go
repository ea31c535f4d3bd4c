package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/payload"
	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/repository"
	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/usecase"
	"github.com/vasapolrittideah/animal-shelter-api/shared/httputil"
	"github.com/vasapolrittideah/animal-shelter-api/shared/validation"
)

type petHTTPHandler struct {
	petUsecase usecase.PetUsecase
	validator  *validation.Validator
}

func (h *petHTTPHandler) ListPets(w http.ResponseWriter, r *http.Request) {
	listParams, err := parseListParams(r, "name", "age", "breed", "vaccinated")
	if err != nil {
		writeQueryError(w, err)
		return
	}

	filter := repository.FilterPetsParams{
		Breed:      optionalQuery(r, "breed"),
		ListParams: listParams,
	}
	if raw := optionalQuery(r, "vaccinated"); raw != nil {
		vaccinated, err := strconv.ParseBool(*raw)
		if err != nil {
			writeQueryError(w, &queryError{param: "vaccinated"})
			return
		}
		filter.Vaccinated = &vaccinated
	}

	pets, err := h.petUsecase.ListPets(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, payload.NewPetResponses(pets))
}

func (h *petHTTPHandler) GetPet(w http.ResponseWriter, r *http.Request) {
	pet, err := h.petUsecase.GetPet(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, payload.NewPetResponse(pet))
}

func (h *petHTTPHandler) CreatePet(w http.ResponseWriter, r *http.Request) {
	var req payload.CreatePetRequest
	if !decodeBody(w, r, &req) || !validateBody(w, h.validator, req) {
		return
	}

	params := usecase.CreatePetParams{
		Name:     req.Name,
		Age:      req.Age,
		Breed:    req.Breed,
		Story:    req.Story,
		ImageURL: req.ImageURL,
	}
	if req.Vaccinated != nil {
		params.Vaccinated = *req.Vaccinated
	}

	pet, err := h.petUsecase.CreatePet(r.Context(), params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusCreated, payload.NewPetResponse(pet))
}

func (h *petHTTPHandler) UpdatePet(w http.ResponseWriter, r *http.Request) {
	var req payload.UpdatePetRequest
	if !decodeBody(w, r, &req) || !validateBody(w, h.validator, req) {
		return
	}

	pet, err := h.petUsecase.UpdatePet(r.Context(), chi.URLParam(r, "id"), repository.UpdatePetParams{
		Name:       req.Name,
		Age:        req.Age,
		Breed:      req.Breed,
		Vaccinated: req.Vaccinated,
		Story:      req.Story,
		ImageURL:   req.ImageURL,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, payload.NewPetResponse(pet))
}

func (h *petHTTPHandler) DeletePet(w http.ResponseWriter, r *http.Request) {
	if _, err := h.petUsecase.DeletePet(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, httputil.Message{Msg: "Pet removed"})
}

func (h *petHTTPHandler) CreateImageUploadURL(w http.ResponseWriter, r *http.Request) {
	var req payload.ImageUploadRequest
	if !decodeBody(w, r, &req) || !validateBody(w, h.validator, req) {
		return
	}

	upload, err := h.petUsecase.CreateImageUploadURL(r.Context(), req.ContentType)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httputil.JSON(w, http.StatusOK, payload.ImageUploadResponse{
		UploadURL: upload.UploadURL,
		ImageURL:  upload.ImageURL,
		Key:       upload.Key,
		ExpiresAt: upload.ExpiresAt,
	})
}
