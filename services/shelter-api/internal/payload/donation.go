package payload

import (
	"time"

	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/model"
)

type CreateDonationRequest struct {
	DonorName string  `json:"donorName" validate:"required,max=100"`
	Email     string  `json:"email"     validate:"required,email"`
	Amount    float64 `json:"amount"    validate:"required,gt=0"`
	Currency  string  `json:"currency"  validate:"omitempty,iso4217"`
	Message   string  `json:"message"   validate:"omitempty,max=2000"`
}

type UpdateDonationRequest struct {
	DonorName *string               `json:"donorName" validate:"omitnil,min=1,max=100"`
	Message   *string               `json:"message"   validate:"omitnil,max=2000"`
	Status    *model.DonationStatus `json:"status"    validate:"omitnil,oneof=pledged received cancelled"`
}

type DonationResponse struct {
	ID        string               `json:"id"`
	DonorName string               `json:"donorName"`
	Email     string               `json:"email"`
	Amount    float64              `json:"amount"`
	Currency  string               `json:"currency"`
	Message   string               `json:"message,omitempty"`
	Status    model.DonationStatus `json:"status"`
	ReceiptID string               `json:"receiptId"`
	UserID    string               `json:"userId,omitempty"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

func NewDonationResponse(d *model.Donation) DonationResponse {
	return DonationResponse{
		ID:        d.ID.Hex(),
		DonorName: d.DonorName,
		Email:     d.Email,
		Amount:    d.Amount,
		Currency:  d.Currency,
		Message:   d.Message,
		Status:    d.Status,
		ReceiptID: d.ReceiptID,
		UserID:    d.UserID,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func NewDonationResponses(donations []*model.Donation) []DonationResponse {
	out := make([]DonationResponse, 0, len(donations))
	for _, d := range donations {
		out = append(out, NewDonationResponse(d))
	}
	return out
}
