package usecase

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/model"
	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/repository"
)

// DonationUsecase records donations and lets admins track them.
type DonationUsecase interface {
	CreateDonation(ctx context.Context, params CreateDonationParams) (*model.Donation, error)
	GetDonation(ctx context.Context, id string) (*model.Donation, error)
	ListDonations(ctx context.Context, params repository.FilterDonationsParams) ([]*model.Donation, error)
	UpdateDonation(ctx context.Context, id string, params repository.UpdateDonationParams) (*model.Donation, error)
	DeleteDonation(ctx context.Context, id string) (*model.Donation, error)
}

// CreateDonationParams defines the parameters of a public donation.
type CreateDonationParams struct {
	DonorName string
	Email     string
	Amount    float64
	Currency  string
	Message   string
	UserID    string
}

var (
	ErrDonationNotFound = errors.New("donation not found")
	ErrInvalidAmount    = errors.New("donation amount must be greater than zero")
)

type donationUsecase struct {
	donationRepo repository.DonationRepository
	notifier     Notifier
}

func NewDonationUsecase(donationRepo repository.DonationRepository, notifier Notifier) DonationUsecase {
	return &donationUsecase{
		donationRepo: donationRepo,
		notifier:     notifier,
	}
}

func (u *donationUsecase) CreateDonation(ctx context.Context, params CreateDonationParams) (*model.Donation, error) {
	if math.IsNaN(params.Amount) || math.IsInf(params.Amount, 0) {
		return nil, ErrInvalidAmount
	}

	amount := math.Round(params.Amount*100) / 100
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	currency := strings.ToUpper(strings.TrimSpace(params.Currency))
	if currency == "" {
		currency = model.DefaultCurrency
	}

	donation, err := u.donationRepo.CreateDonation(ctx, &model.Donation{
		DonorName: strings.TrimSpace(params.DonorName),
		Email:     normalizeEmail(params.Email),
		Amount:    amount,
		Currency:  currency,
		Message:   params.Message,
		Status:    model.DonationPledged,
		ReceiptID: uuid.NewString(),
		UserID:    params.UserID,
	})
	if err != nil {
		return nil, err
	}

	u.sendReceipt(ctx, donation)

	return donation, nil
}

// sendReceipt mails the receipt. Failures are logged and do not fail the donation.
func (u *donationUsecase) sendReceipt(ctx context.Context, donation *model.Donation) {
	body, err := renderMail("donation_receipt", donation)
	if err == nil {
		err = u.notifier.SendHTML([]string{donation.Email}, "Thank you for your donation", body)
	}
	if err != nil {
		zerolog.Ctx(ctx).Warn().
			Err(err).
			Str("receipt_id", donation.ReceiptID).
			Msg("failed to send donation receipt")
	}
}

func (u *donationUsecase) GetDonation(ctx context.Context, id string) (*model.Donation, error) {
	donation, err := u.donationRepo.GetDonation(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrDonationNotFound
		}
		return nil, err
	}

	return donation, nil
}

func (u *donationUsecase) ListDonations(
	ctx context.Context,
	params repository.FilterDonationsParams,
) ([]*model.Donation, error) {
	if params.Email != nil {
		email := normalizeEmail(*params.Email)
		params.Email = &email
	}

	return u.donationRepo.ListDonations(ctx, params)
}

func (u *donationUsecase) UpdateDonation(
	ctx context.Context,
	id string,
	params repository.UpdateDonationParams,
) (*model.Donation, error) {
	donation, err := u.donationRepo.UpdateDonation(ctx, id, params)
	if err != nil {
		switch {
		case repository.IsNotFound(err):
			return nil, ErrDonationNotFound
		case errors.Is(err, repository.ErrNothingToUpdate):
			return nil, ErrNothingToUpdate
		}
		return nil, err
	}

	return donation, nil
}

func (u *donationUsecase) DeleteDonation(ctx context.Context, id string) (*model.Donation, error) {
	donation, err := u.donationRepo.DeleteDonation(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrDonationNotFound
		}
		return nil, err
	}

	return donation, nil
}
