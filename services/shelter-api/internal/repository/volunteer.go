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

// VolunteerRepository defines the interface for volunteer signup database operations.
type VolunteerRepository interface {
	CreateVolunteer(ctx context.Context, volunteer *model.Volunteer) (*model.Volunteer, error)
	GetVolunteer(ctx context.Context, id string) (*model.Volunteer, error)
	UpdateVolunteer(ctx context.Context, id string, params UpdateVolunteerParams) (*model.Volunteer, error)
	DeleteVolunteer(ctx context.Context, id string) (*model.Volunteer, error)
	ListVolunteers(ctx context.Context, params FilterVolunteersParams) ([]*model.Volunteer, error)
	CountVolunteersByStatus(ctx context.Context) (map[model.VolunteerStatus]int64, error)
}

// UpdateVolunteerParams defines the optional parameters for updating a volunteer.
type UpdateVolunteerParams struct {
	Name         *string
	Phone        *string
	Availability *string
	Interests    *[]string
	Message      *string
	Status       *model.VolunteerStatus
}

// FilterVolunteersParams defines the parameters for filtering and paginating volunteers.
type FilterVolunteersParams struct {
	Status *model.VolunteerStatus
	Email  *string
	ListParams
}

const volunteerCollection = "volunteers"

type volunteerMongoRepository struct {
	db *mongo.Database
}

func NewVolunteerMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) VolunteerRepository {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "email", Value: 1}}},
	}

	if _, err := db.Collection(volunteerCollection).Indexes().CreateMany(ctx, indexes); err != nil {
		logger.Fatal().Err(err).Msg("failed to create volunteer indexes")
	}

	return &volunteerMongoRepository{db: db}
}

func (r *volunteerMongoRepository) CreateVolunteer(
	ctx context.Context,
	volunteer *model.Volunteer,
) (*model.Volunteer, error) {
	now := time.Now().UTC()
	volunteer.CreatedAt = now
	volunteer.UpdatedAt = now
	if volunteer.Interests == nil {
		volunteer.Interests = []string{}
	}

	result, err := r.db.Collection(volunteerCollection).InsertOne(ctx, volunteer)
	if err != nil {
		return nil, err
	}

	volunteer.ID, err = insertedObjectID(result)
	if err != nil {
		return nil, err
	}

	return volunteer, nil
}

func (r *volunteerMongoRepository) GetVolunteer(ctx context.Context, id string) (*model.Volunteer, error) {
	objectID, err := objectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var volunteer model.Volunteer
	if err := r.db.Collection(volunteerCollection).FindOne(ctx, bson.M{"_id": objectID}).Decode(&volunteer); err != nil {
		return nil, err
	}

	return &volunteer, nil
}

func (r *volunteerMongoRepository) UpdateVolunteer(
	ctx context.Context,
	id string,
	params UpdateVolunteerParams,
) (*model.Volunteer, error) {
	objectID, err := objectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	updateMap := bson.M{}
	if params.Name != nil {
		updateMap["name"] = *params.Name
	}
	if params.Phone != nil {
		updateMap["phone"] = *params.Phone
	}
	if params.Availability != nil {
		updateMap["availability"] = *params.Availability
	}
	if params.Interests != nil {
		updateMap["interests"] = *params.Interests
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

	var volunteer model.Volunteer
	err = r.db.Collection(volunteerCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": touch(updateMap)},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&volunteer)
	if err != nil {
		return nil, err
	}

	return &volunteer, nil
}

func (r *volunteerMongoRepository) DeleteVolunteer(ctx context.Context, id string) (*model.Volunteer, error) {
	objectID, err := objectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	var volunteer model.Volunteer
	if err := r.db.Collection(volunteerCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID}).Decode(&volunteer); err != nil {
		return nil, err
	}

	return &volunteer, nil
}

func (r *volunteerMongoRepository) ListVolunteers(
	ctx context.Context,
	params FilterVolunteersParams,
) ([]*model.Volunteer, error) {
	filter := bson.M{}
	if params.Status != nil {
		filter["status"] = *params.Status
	}
	if params.Email != nil {
		filter["email"] = *params.Email
	}

	cursor, err := r.db.Collection(volunteerCollection).Find(ctx, filter, findOptions(params.ListParams))
	if err != nil {
		return nil, err
	}

	volunteers := make([]*model.Volunteer, 0)
	if err := cursor.All(ctx, &volunteers); err != nil {
		return nil, err
	}

	return volunteers, nil
}

func (r *volunteerMongoRepository) CountVolunteersByStatus(ctx context.Context) (map[model.VolunteerStatus]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := r.db.Collection(volunteerCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var rows []struct {
		Status model.VolunteerStatus `bson:"_id"`
		Count  int64                 `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := make(map[model.VolunteerStatus]int64, len(model.VolunteerStatuses))
	for _, status := range model.VolunteerStatuses {
		counts[status] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	return counts, nil
}
