package memory

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/model"
	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/repository"
)

type donationRepo struct {
	mu   sync.RWMutex
	byID map[bson.ObjectID]model.Donation
}

func NewDonationRepo() repository.DonationRepository {
	return &donationRepo{byID: make(map[bson.ObjectID]model.Donation)}
}

func (r *donationRepo) CreateDonation(_ context.Context, donation *model.Donation) (*model.Donation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if existing.ReceiptID == donation.ReceiptID {
			return nil, duplicateKeyError("receiptId")
		}
	}

	ts := now()
	donation.ID = bson.NewObjectID()
	donation.CreatedAt = ts
	donation.UpdatedAt = ts
	r.byID[donation.ID] = *donation

	out := *donation
	return &out, nil
}

func (r *donationRepo) GetDonation(_ context.Context, id string) (*model.Donation, error) {
	objectID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	donation, ok := r.byID[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	return &donation, nil
}

func (r *donationRepo) UpdateDonation(
	_ context.Context,
	id string,
	params repository.UpdateDonationParams,
) (*model.Donation, error) {
	objectID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	if params == (repository.UpdateDonationParams{}) {
		return nil, repository.ErrNothingToUpdate
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	donation, ok := r.byID[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.DonorName != nil {
		donation.DonorName = *params.DonorName
	}
	if params.Message != nil {
		donation.Message = *params.Message
	}
	if params.Status != nil {
		donation.Status = *params.Status
	}
	donation.UpdatedAt = now()
	r.byID[objectID] = donation

	return &donation, nil
}

func (r *donationRepo) DeleteDonation(_ context.Context, id string) (*model.Donation, error) {
	objectID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	donation, ok := r.byID[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	delete(r.byID, objectID)

	return &donation, nil
}

func (r *donationRepo) ListDonations(
	_ context.Context,
	params repository.FilterDonationsParams,
) ([]*model.Donation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	donations := make([]*model.Donation, 0, len(r.byID))
	for _, donation := range r.byID {
		if params.Status != nil && donation.Status != *params.Status {
			continue
		}
		if params.Email != nil && donation.Email != *params.Email {
			continue
		}
		d := donation
		donations = append(donations, &d)
	}

	return page(donations, params.ListParams, donationField), nil
}

func (r *donationRepo) CountDonations(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.byID)), nil
}

func (r *donationRepo) SumDonationsByCurrency(
	_ context.Context,
	status model.DonationStatus,
) (map[string]float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	totals := make(map[string]float64)
	for _, donation := range r.byID {
		if donation.Status == status {
			totals[donation.Currency] += donation.Amount
		}
	}

	return totals, nil
}

func donationField(d *model.Donation, field string) any {
	switch field {
	case "amount":
		return d.Amount
	case "donorName":
		return d.DonorName
	case "status":
		return string(d.Status)
	case "updatedAt":
		return d.UpdatedAt
	default:
		return d.CreatedAt
	}
}
