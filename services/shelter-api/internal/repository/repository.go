package repository

import (
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var (
	// ErrInvalidID is returned when an id is not a valid ObjectID hex string.
	ErrInvalidID = errors.New("invalid id")

	// ErrNothingToUpdate is returned by update methods called without any field set.
	ErrNothingToUpdate = errors.New("no fields to update")
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

// ListParams defines pagination and sorting shared by every list query.
type ListParams struct {
	Limit    uint64
	Offset   uint64
	SortBy   *string
	SortDesc bool
}

// IsNotFound reports whether err means the requested document does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, ErrInvalidID)
}

func objectIDFromHex(id string) (bson.ObjectID, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	return objectID, nil
}

func findOptions(params ListParams) *options.FindOptionsBuilder {
	limit := params.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	opts := options.Find().SetLimit(int64(limit))

	if params.Offset > 0 {
		opts.SetSkip(int64(params.Offset))
	}

	sortBy := "createdAt"
	if params.SortBy != nil {
		sortBy = *params.SortBy
	}

	sortOrder := 1
	if params.SortDesc {
		sortOrder = -1
	}

	return opts.SetSort(bson.D{{Key: sortBy, Value: sortOrder}, {Key: "_id", Value: sortOrder}})
}

func insertedObjectID(result *mongo.InsertOneResult) (bson.ObjectID, error) {
	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		return objectID, nil
	}

	return bson.NilObjectID, errors.New("failed to convert inserted ID to ObjectID")
}

func touch(update bson.M) bson.M {
	update["updatedAt"] = time.Now().UTC()
	return update
}
