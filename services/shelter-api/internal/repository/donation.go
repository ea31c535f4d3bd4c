package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/model"
)

// DonationRepository defines the interface for donation database operations.
type DonationRepository interface {
	CreateDonation(ctx context.Context, donation *model.Donation) (*model.Donation, error)
	GetDonation(ctx context.Context, id string) (*model.Donation, error)
	UpdateDonation(ctx context.Context, id string, params UpdateDonationParams) (*model.Donation, error)
	DeleteDonation(ctx context.Context, id string) (*model.Donation, error)
	ListDonations(ctx context.Context, params FilterDonationsParams) ([]*model.Donation, error)
	CountDonations(ctx context.Context) (int64, error)
	// SumDonationsByCurrency totals the amounts of donations in status, per currency.
	SumDonationsByCurrency(ctx context.Context, status model.DonationStatus) (map[string]float64, error)
}

// UpdateDonationParams defines the optional parameters for updating a donation.
type UpdateDonationParams struct {
	DonorName *string
	Message   *string
	Status    *model.DonationStatus
}

// FilterDonationsParams defines the parameters for filtering and paginating donations.
type FilterDonationsParams struct {
	Status *model.DonationStatus
	Email  *string
	ListParams
}

const donationCollection = "donations"

type donationMongoRepository struct {
	db *mongo.Database
}

func NewDonationMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) DonationRepository {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "receiptId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "email", Value: 1}}},
	}

	if _, err := db.Collection(donationCollection).Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Fatal().Err(err).Msg("failed to create donation indexes")
	}

	return &donationMongoRepository{db: db}
}

func (r *donationMongoRepository) CreateDonation(ctx context.Context, donation *model.Donation) (*model.Donation, error) {
	now := time.Now().UTC()
	donation.CreatedAt = now
	donation.UpdatedAt = now

	result, err := r.db.Collection(donationCollection).InsertOne(ctx, donation)
	if err != nil {
		return nil, err
	}

	donation.ID, err = insertedObjectID(result)
	if err != nil {
		return nil, err
	}

	return donation, nil
}

func (r *donationMongoRepository) GetDonation(ctx context.Context, id string) (*model.Donation, error) {
	objectID, err := objectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var donation model.Donation
	if err := r.db.Collection(donationCollection).FindOne(ctx, bson.M{"_id": objectID}).Decode(&donation); err != nil {
		return nil, err
	}

	return &donation, nil
}

func (r *donationMongoRepository) UpdateDonation(
	ctx context.Context,
	id string,
	params UpdateDonationParams,
) (*model.Donation, error) {
	objectID, err := objectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	updateMap := bson.M{}
	if params.DonorName != nil {
		updateMap["donorName"] = *params.DonorName
	}
	if params.Message != nil {
		updateMap["message"] = *params.Message
	}
	if params.Status != nil {
		updateMap["status"] = *params.Status
	}

	if len(updateMap) == 0 {
		return nil, ErrNothingToUpdate
	}

	var donation model.Donation
	err = r.db.Collection(donationCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": touch(updateMap)},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&donation)
	if err != nil {
		return nil, err
	}

	return &donation, nil
}

func (r *donationMongoRepository) DeleteDonation(ctx context.Context, id string) (*model.Donation, error) {
	objectID, err := objectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var donation model.Donation
	if err := r.db.Collection(donationCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID}).Decode(&donation); err != nil {
		return nil, err
	}

	return &donation, nil
}

func (r *donationMongoRepository) ListDonations(
	ctx context.Context,
	params FilterDonationsParams,
) ([]*model.Donation, error) {
	filter := bson.M{}
	if params.Status != nil {
		filter["status"] = *params.Status
	}
	if params.Email != nil {
		filter["email"] = *params.Email
	}

	cursor, err := r.db.Collection(donationCollection).Find(ctx, filter, findOptions(params.ListParams))
	if err != nil {
		return nil, err
	}

	donations := make([]*model.Donation, 0)
	if err := cursor.All(ctx, &donations); err != nil {
		return nil, err
	}

	return donations, nil
}

func (r *donationMongoRepository) CountDonations(ctx context.Context) (int64, error) {
	return r.db.Collection(donationCollection).CountDocuments(ctx, bson.M{})
}

func (r *donationMongoRepository) SumDonationsByCurrency(
	ctx context.Context,
	status model.DonationStatus,
) (map[string]float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "status", Value: status}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$currency"},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$amount"}}},
		}}},
	}

	cursor, err := r.db.Collection(donationCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var rows []struct {
		Currency string  `bson:"_id"`
		Total    float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	totals := make(map[string]float64, len(rows))
	for _, row := range rows {
		totals[row.Currency] = row.Total
	}

	return totals, nil
}
