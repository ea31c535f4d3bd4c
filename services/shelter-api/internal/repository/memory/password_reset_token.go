package memory

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/model"
	"github.com/vasapolrittideah/animal-shelter-api/services/shelter-api/internal/repository"
)

type passwordResetTokenRepo struct {
	mu    sync.RWMutex
	byJTI map[string]model.PasswordResetToken
}

func NewPasswordResetTokenRepo() repository.PasswordResetTokenRepository {
	return &passwordResetTokenRepo{byJTI: make(map[string]model.PasswordResetToken)}
}

func (r *passwordResetTokenRepo) CreateToken(
	_ context.Context,
	token *model.PasswordResetToken,
) (*model.PasswordResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byJTI[token.JTI]; exists {
		return nil, duplicateKeyError("jti")
	}

	ts := now()
	token.ID = bson.NewObjectID()
	token.CreatedAt = ts
	token.UpdatedAt = ts
	token.Used = false
	r.byJTI[token.JTI] = *token

	out := *token
	return &out, nil
}

func (r *passwordResetTokenRepo) GetTokenByJTI(_ context.Context, jti string) (*model.PasswordResetToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	token, ok := r.byJTI[jti]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	return &token, nil
}

func (r *passwordResetTokenRepo) MarkTokenAsUsed(_ context.Context, jti string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	token, ok := r.byJTI[jti]
	if !ok || token.Used {
		return mongo.ErrNoDocuments
	}
	token.Used = true
	token.UpdatedAt = now()
	r.byJTI[jti] = token

	return nil
}

func (r *passwordResetTokenRepo) InvalidateUserTokens(_ context.Context, userID string) error {
	objectID, err := parseID(userID)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for jti, token := range r.byJTI {
		if token.UserID == objectID && !token.Used {
			token.Used = true
			token.UpdatedAt = now()
			r.byJTI[jti] = token
		}
	}

	return nil
}
