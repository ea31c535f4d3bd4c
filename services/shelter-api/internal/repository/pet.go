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

// PetRepository defines the interface for pet-related database operations.
type PetRepository interface {
	CreatePet(ctx context.Context, pet *model.Pet) (*model.Pet, error)
	GetPet(ctx context.Context, id string) (*model.Pet, error)
	UpdatePet(ctx context.Context, id string, params UpdatePetParams) (*model.Pet, error)
	DeletePet(ctx context.Context, id string) (*model.Pet, error)
	ListPets(ctx context.Context, params FilterPetsParams) ([]*model.Pet, error)
	CountPets(ctx context.Context, vaccinated *bool) (int64, error)
}

// UpdatePetParams defines the optional parameters for updating a pet.
// Only the fields that are not nil will be updated.
type UpdatePetParams struct {
	Name       *string
	Age        *string
	Breed      *string
	Vaccinated *bool
	Story      *string
	ImageURL   *string
}

// FilterPetsParams defines the parameters for filtering and paginating pets.
type FilterPetsParams struct {
	Breed      *string
	Vaccinated *bool
	ListParams
}

const petCollection = "pets"

type petMongoRepository struct {
	db *mongo.Database
}

func NewPetMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) PetRepository {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "breed", Value: 1}}},
		{Keys: bson.D{{Key: "vaccinated", Value: 1}}},
	}

	if _, err := db.Collection(petCollection).Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Fatal().Err(err).Msg("failed to create pet indexes")
	}

	return &petMongoRepository{db: db}
}

func (r *petMongoRepository) CreatePet(ctx context.Context, pet *model.Pet) (*model.Pet, error) {
	now := time.Now().UTC()
	pet.CreatedAt = now
	pet.UpdatedAt = now

	result, err := r.db.Collection(petCollection).InsertOne(ctx, pet)
	if err != nil {
		return nil, err
	}

	pet.ID, err = insertedObjectID(result)
	if err != nil {
		return nil, err
	}

	return pet, nil
}

func (r *petMongoRepository) GetPet(ctx context.Context, id string) (*model.Pet, error) {
	objectID, err := objectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var pet model.Pet
	if err := r.db.Collection(petCollection).FindOne(ctx, bson.M{"_id": objectID}).Decode(&pet); err != nil {
		return nil, err
	}

	return &pet, nil
}

func (r *petMongoRepository) UpdatePet(ctx context.Context, id string, params UpdatePetParams) (*model.Pet, error) {
	objectID, err := objectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	updateMap := bson.M{}
	if params.Name != nil {
		updateMap["name"] = *params.Name
	}
	if params.Age != nil {
		updateMap["age"] = *params.Age
	}
	if params.Breed != nil {
		updateMap["breed"] = *params.Breed
	}
	if params.Vaccinated != nil {
		updateMap["vaccinated"] = *params.Vaccinated
	}
	if params.Story != nil {
		updateMap["story"] = *params.Story
	}
	if params.ImageURL != nil {
		updateMap["imageUrl"] = *params.ImageURL
	}

	if len(updateMap) == 0 {
		return nil, ErrNothingToUpdate
	}

	var pet model.Pet
	err = r.db.Collection(petCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": touch(updateMap)},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&pet)
	if err != nil {
		return nil, err
	}

	return &pet, nil
}

func (r *petMongoRepository) DeletePet(ctx context.Context, id string) (*model.Pet, error) {
	objectID, err := objectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var pet model.Pet
	if err := r.db.Collection(petCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID}).Decode(&pet); err != nil {
		return nil, err
	}

	return &pet, nil
}

func (r *petMongoRepository) ListPets(ctx context.Context, params FilterPetsParams) ([]*model.Pet, error) {
	filter := bson.M{}
	if params.Breed != nil {
		filter["breed"] = *params.Breed
	}
	if params.Vaccinated != nil {
		filter["vaccinated"] = *params.Vaccinated
	}

	cursor, err := r.db.Collection(petCollection).Find(ctx, filter, findOptions(params.ListParams))
	if err != nil {
		return nil, err
	}

	pets := make([]*model.Pet, 0)
	if err := cursor.All(ctx, &pets); err != nil {
		return nil, err
	}

	return pets, nil
}

func (r *petMongoRepository) CountPets(ctx context.Context, vaccinated *bool) (int64, error) {
	filter := bson.M{}
	if vaccinated != nil {
		filter["vaccinated"] = *vaccinated
	}

	return r.db.Collection(petCollection).CountDocuments(ctx, filter)
}
