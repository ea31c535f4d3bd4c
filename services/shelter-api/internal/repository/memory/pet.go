package memory

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/model"
	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/repository"
)

type petRepo struct {
	mu   sync.RWMutex
	byID map[bson.ObjectID]model.Pet
}

func NewPetRepo() repository.PetRepository {
	return &petRepo{byID: make(map[bson.ObjectID]model.Pet)}
}

func (r *petRepo) CreatePet(_ context.Context, pet *model.Pet) (*model.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := now()
	pet.ID = bson.NewObjectID()
	pet.CreatedAt = ts
	pet.UpdatedAt = ts
	r.byID[pet.ID] = *pet

	out := *pet
	return &out, nil
}

func (r *petRepo) GetPet(_ context.Context, id string) (*model.Pet, error) {
	objectID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	pet, ok := r.byID[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	return &pet, nil
}

func (r *petRepo) UpdatePet(_ context.Context, id string, params repository.UpdatePetParams) (*model.Pet, error) {
	objectID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	if params == (repository.UpdatePetParams{}) {
		return nil, repository.ErrNothingToUpdate
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	pet, ok := r.byID[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.Name != nil {
		pet.Name = *params.Name
	}
	if params.Age != nil {
		pet.Age = *params.Age
	}
	if params.Breed != nil {
		pet.Breed = *params.Breed
	}
	if params.Vaccinated != nil {
		pet.Vaccinated = *params.Vaccinated
	}
	if params.Story != nil {
		pet.Story = *params.Story
	}
	if params.ImageURL != nil {
		pet.ImageURL = *params.ImageURL
	}
	pet.UpdatedAt = now()
	r.byID[objectID] = pet

	return &pet, nil
}

func (r *petRepo) DeletePet(_ context.Context, id string) (*model.Pet, error) {
	objectID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	pet, ok := r.byID[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	delete(r.byID, objectID)

	return &pet, nil
}

func (r *petRepo) ListPets(_ context.Context, params repository.FilterPetsParams) ([]*model.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pets := make([]*model.Pet, 0, len(r.byID))
	for _, pet := range r.byID {
		if params.Breed != nil && pet.Breed != *params.Breed {
			continue
		}
		if params.Vaccinated != nil && pet.Vaccinated != *params.Vaccinated {
			continue
		}
		p := pet
		pets = append(pets, &p)
	}

	return page(pets, params.ListParams, petField), nil
}

func (r *petRepo) CountPets(_ context.Context, vaccinated *bool) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, pet := range r.byID {
		if vaccinated == nil || pet.Vaccinated == *vaccinated {
			n++
		}
	}

	return n, nil
}

func petField(p *model.Pet, field string) any {
	switch field {
	case "name":
		return p.Name
	case "age":
		return p.Age
	case "breed":
		return p.Breed
	case "vaccinated":
		return p.Vaccinated
	case "updatedAt":
		return p.UpdatedAt
	default:
		return p.CreatedAt
	}
}
