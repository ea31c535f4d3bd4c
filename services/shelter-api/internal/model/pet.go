package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Pet is an animal listed for adoption.
type Pet struct {
	ID         bson.ObjectID `bson:"_id,omitempty"`
	Name       string        `bson:"name"`
	Age        string        `bson:"age"`
	Breed      string        `bson:"breed"`
	Vaccinated bool          `bson:"vaccinated"`
	Story      string        `bson:"story"`
	ImageURL   string        `bson:"imageUrl"`
	CreatedAt  time.Time     `bson:"createdAt"`
	UpdatedAt  time.Time     `bson:"updatedAt"`
}
