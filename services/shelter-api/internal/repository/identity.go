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

// IdentityRepository defines the interface for identity-related database operations.
type IdentityRepository interface {
	CreateIdentity(ctx context.Context, identity *model.Identity) (*model.Identity, error)
	GetIdentitiesByUserID(ctx context.Context, userID string) ([]model.Identity, error)
	GetIdentityByProvider(ctx context.Context, providerID string, provider string) (*model.Identity, error)
	// UpdateLastLogin stamps the login time of the user's identity for provider,
	// creating the identity when the account predates identity tracking.
	UpdateLastLogin(ctx context.Context, userID, provider, email string) error
	DeleteUserIdentities(ctx context.Context, userID string) (int64, error)
}

const identityCollection = "identities"

type identityMongoRepository struct {
	db *mongo.Database
}

func NewIdentityMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) IdentityRepository {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "userId", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "provider", Value: 1}, {Key: "providerId", Value: 1}},
		},
	}

	if _, err := db.Collection(identityCollection).Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Fatal().Err(err).Msg("failed to create identity indexes")
	}

	return &identityMongoRepository{db: db}
}

func (r *identityMongoRepository) CreateIdentity(
	ctx context.Context,
	identity *model.Identity,
) (*model.Identity, error) {
	now := time.Now().UTC()
	identity.CreatedAt = now
	identity.UpdatedAt = now
	if identity.LastLoginAt.IsZero() {
		identity.LastLoginAt = now
	}

	result, err := r.db.Collection(identityCollection).InsertOne(ctx, identity)
	if err != nil {
		return nil, err
	}

	identity.ID, err = insertedObjectID(result)
	if err != nil {
		return nil, err
	}

	return identity, nil
}

func (r *identityMongoRepository) GetIdentitiesByUserID(ctx context.Context, userID string) ([]model.Identity, error) {
	cursor, err := r.db.Collection(identityCollection).Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}

	identities := make([]model.Identity, 0)
	if err := cursor.All(ctx, &identities); err != nil {
		return nil, err
	}

	return identities, nil
}

func (r *identityMongoRepository) GetIdentityByProvider(
	ctx context.Context,
	providerID string,
	provider string,
) (*model.Identity, error) {
	var identity model.Identity
	err := r.db.Collection(identityCollection).FindOne(ctx, bson.M{
		"providerId": providerID,
		"provider":   provider,
	}).Decode(&identity)
	if err != nil {
		return nil, err
	}

	return &identity, nil
}

func (r *identityMongoRepository) UpdateLastLogin(ctx context.Context, userID, provider, email string) error {
	now := time.Now().UTC()

	_, err := r.db.Collection(identityCollection).UpdateOne(
		ctx,
		bson.M{"userId": userID, "provider": provider},
		bson.M{
			"$set": bson.M{"lastLoginAt": now, "updatedAt": now, "email": email},
			"$setOnInsert": bson.M{
				"providerId": "",
				"createdAt":  now,
			},
		},
		options.UpdateOne().SetUpsert(true),
	)

	return err
}

func (r *identityMongoRepository) DeleteUserIdentities(ctx context.Context, userID string) (int64, error) {
	result, err := r.db.Collection(identityCollection).DeleteMany(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}
