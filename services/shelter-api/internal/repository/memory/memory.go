// Package memory implements the repository interfaces in process. It backs the
// handler and usecase tests and mirrors the driver's error values, so callers
// cannot tell it apart from MongoDB.
package memory

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/repository"
)

func duplicateKeyError(field string) error {
	return mongo.WriteException{
		WriteErrors: []mongo.WriteError{{
			Code:    11000,
			Message: "E11000 duplicate key error dup key: " + field,
		}},
	}
}

func parseID(id string) (bson.ObjectID, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.NilObjectID, repository.ErrInvalidID
	}

	return objectID, nil
}

// page sorts items by the requested field and applies offset and limit the same way
// the Mongo repositories do.
func page[T any](items []*T, params repository.ListParams, field func(*T, string) any) []*T {
	sortBy := "createdAt"
	if params.SortBy != nil {
		sortBy = *params.SortBy
	}

	slices.SortStableFunc(items, func(a, b *T) int {
		c := compare(field(a, sortBy), field(b, sortBy))
		if params.SortDesc {
			return -c
		}
		return c
	})

	limit := params.Limit
	if limit == 0 {
		limit = repository.DefaultListLimit
	}
	if limit > repository.MaxListLimit {
		limit = repository.MaxListLimit
	}

	if params.Offset >= uint64(len(items)) {
		return make([]*T, 0)
	}
	items = items[params.Offset:]
	if uint64(len(items)) > limit {
		items = items[:limit]
	}

	return items
}

func compare(a, b any) int {
	switch av := a.(type) {
	case string:
		bv, _ := b.(string)
		return strings.Compare(av, bv)
	case float64:
		bv, _ := b.(float64)
		return cmp.Compare(av, bv)
	case time.Time:
		bv, _ := b.(time.Time)
		return av.Compare(bv)
	case bool:
		bv, _ := b.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		default:
			return 1
		}
	default:
		return 0
	}
}

func now() time.Time {
	return time.Now().UTC()
}
