package memory

import (
	"context"
	"slices"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/model"
	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/repository"
)

type volunteerRepo struct {
	mu   sync.RWMutex
	byID map[bson.ObjectID]model.Volunteer
}

func NewVolunteerRepo() repository.VolunteerRepository {
	return &volunteerRepo{byID: make(map[bson.ObjectID]model.Volunteer)}
}

func (r *volunteerRepo) CreateVolunteer(_ context.Context, volunteer *model.Volunteer) (*model.Volunteer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := now()
	volunteer.ID = bson.NewObjectID()
	volunteer.CreatedAt = ts
	volunteer.UpdatedAt = ts
	if volunteer.Interests == nil {
		volunteer.Interests = []string{}
	}
	volunteer.Interests = slices.Clone(volunteer.Interests)
	r.byID[volunteer.ID] = *volunteer

	out := *volunteer
	return &out, nil
}

func (r *volunteerRepo) GetVolunteer(_ context.Context, id string) (*model.Volunteer, error) {
	objectID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	volunteer, ok := r.byID[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	return &volunteer, nil
}

func (r *volunteerRepo) UpdateVolunteer(
	_ context.Context,
	id string,
	params repository.UpdateVolunteerParams,
) (*model.Volunteer, error) {
	objectID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	if params == (repository.UpdateVolunteerParams{}) {
		return nil, repository.ErrNothingToUpdate
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	volunteer, ok := r.byID[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.Name != nil {
		volunteer.Name = *params.Name
	}
	if params.Phone != nil {
		volunteer.Phone = *params.Phone
	}
	if params.Availability != nil {
		volunteer.Availability = *params.Availability
	}
	if params.Interests != nil {
		volunteer.Interests = slices.Clone(*params.Interests)
	}
	if params.Message != nil {
		volunteer.Message = *params.Message
	}
	if params.Status != nil {
		volunteer.Status = *params.Status
	}
	volunteer.UpdatedAt = now()
	r.byID[objectID] = volunteer

	return &volunteer, nil
}

func (r *volunteerRepo) DeleteVolunteer(_ context.Context, id string) (*model.Volunteer, error) {
	objectID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	volunteer, ok := r.byID[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	delete(r.byID, objectID)

	return &volunteer, nil
}

func (r *volunteerRepo) ListVolunteers(
	_ context.Context,
	params repository.FilterVolunteersParams,
) ([]*model.Volunteer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	volunteers := make([]*model.Volunteer, 0, len(r.byID))
	for _, volunteer := range r.byID {
		if params.Status != nil && volunteer.Status != *params.Status {
			continue
		}
		if params.Email != nil && volunteer.Email != *params.Email {
			continue
		}
		v := volunteer
		volunteers = append(volunteers, &v)
	}

	return page(volunteers, params.ListParams, volunteerField), nil
}

func (r *volunteerRepo) CountVolunteersByStatus(_ context.Context) (map[model.VolunteerStatus]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[model.VolunteerStatus]int64, len(model.VolunteerStatuses))
	for _, status := range model.VolunteerStatuses {
		counts[status] = 0
	}
	for _, volunteer := range r.byID {
		counts[volunteer.Status]++
	}

	return counts, nil
}

func volunteerField(v *model.Volunteer, field string) any {
	switch field {
	case "name":
		return v.Name
	case "email":
		return v.Email
	case "status":
		return string(v.Status)
	case "updatedAt":
		return v.UpdatedAt
	default:
		return v.CreatedAt
	}
}
