package payload

import (
	"time"

	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/model"
)

type CreatePetRequest struct {
	Name       string `json:"name"       validate:"required,max=100"`
	Age        string `json:"age"        validate:"required,max=50"`
	Breed      string `json:"breed"      validate:"required,max=100"`
	Vaccinated *bool  `json:"vaccinated"`
	Story      string `json:"story"      validate:"required"`
	ImageURL   string `json:"imageUrl"   validate:"required,url"`
}

// UpdatePetRequest carries a partial update; absent fields keep their value.
type UpdatePetRequest struct {
	Name       *string `json:"name"       validate:"omitnil,min=1,max=100"`
	Age        *string `json:"age"        validate:"omitnil,min=1,max=50"`
	Breed      *string `json:"breed"      validate:"omitnil,min=1,max=100"`
	Vaccinated *bool   `json:"vaccinated"`
	Story      *string `json:"story"      validate:"omitnil,min=1"`
	ImageURL   *string `json:"imageUrl"   validate:"omitnil,url"`
}

type ImageUploadRequest struct {
	ContentType string `json:"contentType" validate:"required"`
}

type ImageUploadResponse struct {
	UploadURL string    `json:"uploadUrl"`
	ImageURL  string    `json:"imageUrl"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type PetResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Age        string    `json:"age"`
	Breed      string    `json:"breed"`
	Vaccinated bool      `json:"vaccinated"`
	Story      string    `json:"story"`
	ImageURL   string    `json:"imageUrl"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func NewPetResponse(pet *model.Pet) PetResponse {
	return PetResponse{
		ID:         pet.ID.Hex(),
		Name:       pet.Name,
		Age:        pet.Age,
		Breed:      pet.Breed,
		Vaccinated: pet.Vaccinated,
		Story:      pet.Story,
		ImageURL:   pet.ImageURL,
		CreatedAt:  pet.CreatedAt,
		UpdatedAt:  pet.UpdatedAt,
	}
}

func NewPetResponses(pets []*model.Pet) []PetResponse {
	out := make([]PetResponse, 0, len(pets))
	for _, pet := range pets {
		out = append(out, NewPetResponse(pet))
	}
	return out
}
