package memory

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/model"
	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/repository"
)

type userRepo struct {
	mu   sync.RWMutex
	byID map[bson.ObjectID]model.User
}

func NewUserRepo() repository.UserRepository {
	return &userRepo{byID: make(map[bson.ObjectID]model.User)}
}

func (r *userRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if existing.Email == user.Email {
			return nil, duplicateKeyError("email")
		}
	}

	ts := now()
	user.ID = bson.NewObjectID()
	user.CreatedAt = ts
	user.UpdatedAt = ts
	r.byID[user.ID] = *user

	out := *user
	return &out, nil
}

func (r *userRepo) GetUser(_ context.Context, id string) (*model.User, error) {
	objectID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	return &user, nil
}

func (r *userRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.byID {
		if user.Email == email {
			return &user, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (r *userRepo) UpdateUser(_ context.Context, id string, params repository.UpdateUserParams) (*model.User, error) {
	objectID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	if params == (repository.UpdateUserParams{}) {
		return nil, repository.ErrNothingToUpdate
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	if params.Email != nil {
		for otherID, other := range r.byID {
			if otherID != objectID && other.Email == *params.Email {
				return nil, duplicateKeyError("email")
			}
		}
		user.Email = *params.Email
	}
	if params.Name != nil {
		user.Name = *params.Name
	}
	if params.PasswordHash != nil {
		user.PasswordHash = *params.PasswordHash
	}
	if params.Role != nil {
		user.Role = *params.Role
	}
	user.UpdatedAt = now()
	r.byID[objectID] = user

	return &user, nil
}

func (r *userRepo) DeleteUser(_ context.Context, id string) (*model.User, error) {
	objectID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	delete(r.byID, objectID)

	return &user, nil
}

func (r *userRepo) ListUsers(_ context.Context, params repository.FilterUsersParams) ([]*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*model.User, 0, len(r.byID))
	for _, user := range r.byID {
		if params.Email != nil && user.Email != *params.Email {
			continue
		}
		if params.Role != nil && user.Role != *params.Role {
			continue
		}
		u := user
		users = append(users, &u)
	}

	return page(users, params.ListParams, userField), nil
}

func (r *userRepo) CountUsers(_ context.Context, role *model.Role) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, user := range r.byID {
		if role == nil || user.Role == *role {
			n++
		}
	}

	return n, nil
}

func userField(u *model.User, field string) any {
	switch field {
	case "name":
		return u.Name
	case "email":
		return u.Email
	case "role":
		return string(u.Role)
	case "updatedAt":
		return u.UpdatedAt
	default:
		return u.CreatedAt
	}
}
