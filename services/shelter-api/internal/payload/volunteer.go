package payload

import (
	"time"

	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/model"
)

type VolunteerSignUpRequest struct {
	Name         string   `json:"name"         validate:"required,max=100"`
	Email        string   `json:"email"        validate:"required,email"`
	Phone        string   `json:"phone"        validate:"omitempty,max=30"`
	Availability string   `json:"availability" validate:"omitempty,max=200"`
	Interests    []string `json:"interests"    validate:"omitempty,max=20,dive,max=100"`
	Message      string   `json:"message"      validate:"omitempty,max=2000"`
}

type UpdateVolunteerRequest struct {
	Name         *string                `json:"name"         validate:"omitnil,min=1,max=100"`
	Phone        *string                `json:"phone"        validate:"omitnil,max=30"`
	Availability *string                `json:"availability" validate:"omitnil,max=200"`
	Interests    *[]string              `json:"interests"    validate:"omitnil,max=20,dive,max=100"`
	Message      *string                `json:"message"      validate:"omitnil,max=2000"`
	Status       *model.VolunteerStatus `json:"status"       validate:"omitnil,oneof=pending approved rejected"`
}

type VolunteerResponse struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Email        string                `json:"email"`
	Phone        string                `json:"phone,omitempty"`
	Availability string                `json:"availability,omitempty"`
	Interests    []string              `json:"interests"`
	Message      string                `json:"message,omitempty"`
	Status       model.VolunteerStatus `json:"status"`
	UserID       string                `json:"userId,omitempty"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

func NewVolunteerResponse(v *model.Volunteer) VolunteerResponse {
	interests := v.Interests
	if interests == nil {
		interests = []string{}
	}

	return VolunteerResponse{
		ID:           v.ID.Hex(),
		Name:         v.Name,
		Email:        v.Email,
		Phone:        v.Phone,
		Availability: v.Availability,
		Interests:    interests,
		Message:      v.Message,
		Status:       v.Status,
		UserID:       v.UserID,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func NewVolunteerResponses(volunteers []*model.Volunteer) []VolunteerResponse {
	out := make([]VolunteerResponse, 0, len(volunteers))
	for _, v := range volunteers {
		out = append(out, NewVolunteerResponse(v))
	}
	return out
}
