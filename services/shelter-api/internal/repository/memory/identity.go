package memory

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/model"
	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/repository"
)

type identityRepo struct {
	mu         sync.RWMutex
	identities []model.Identity
}

func NewIdentityRepo() repository.IdentityRepository {
	return &identityRepo{}
}

func (r *identityRepo) CreateIdentity(_ context.Context, identity *model.Identity) (*model.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := now()
	identity.ID = bson.NewObjectID()
	identity.CreatedAt = ts
	identity.UpdatedAt = ts
	if identity.LastLoginAt.IsZero() {
		identity.LastLoginAt = ts
	}
	r.identities = append(r.identities, *identity)

	out := *identity
	return &out, nil
}

func (r *identityRepo) GetIdentitiesByUserID(_ context.Context, userID string) ([]model.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Identity, 0)
	for _, identity := range r.identities {
		if identity.UserID == userID {
			out = append(out, identity)
		}
	}

	return out, nil
}

func (r *identityRepo) GetIdentityByProvider(_ context.Context, providerID, provider string) (*model.Identity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, identity := range r.identities {
		if identity.ProviderID == providerID && identity.Provider == provider {
			return &identity, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (r *identityRepo) UpdateLastLogin(_ context.Context, userID, provider, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := now()
	for i := range r.identities {
		if r.identities[i].UserID == userID && r.identities[i].Provider == provider {
			r.identities[i].LastLoginAt = ts
			r.identities[i].UpdatedAt = ts
			r.identities[i].Email = email
			return nil
		}
	}

	r.identities = append(r.identities, model.Identity{
		ID:          bson.NewObjectID(),
		UserID:      userID,
		Provider:    provider,
		Email:       email,
		LastLoginAt: ts,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	})

	return nil
}

func (r *identityRepo) DeleteUserIdentities(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.identities[:0]
	var deleted int64
	for _, identity := range r.identities {
		if identity.UserID == userID {
			deleted++
			continue
		}
		kept = append(kept, identity)
	}
	r.identities = kept

	return deleted, nil
}
