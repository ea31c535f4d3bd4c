package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Login providers.
const (
	ProviderEmail  = "email"
	ProviderGoogle = "google"
)

// Identity links a user to a way of signing in: local email and password, or an
// external provider such as Google.
type Identity struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	UserID      string        `bson:"userId"`
	ProviderID  string        `bson:"providerId"`
	Provider    string        `bson:"provider"`
	Email       string        `bson:"email"`
	LastLoginAt time.Time     `bson:"lastLoginAt"`
	CreatedAt   time.Time     `bson:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt"`
}
