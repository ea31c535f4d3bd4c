package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type VolunteerStatus string

const (
	VolunteerPending  VolunteerStatus = "pending"
	VolunteerApproved VolunteerStatus = "approved"
	VolunteerRejected VolunteerStatus = "rejected"
)

// VolunteerStatuses lists every status in display order.
var VolunteerStatuses = []VolunteerStatus{VolunteerPending, VolunteerApproved, VolunteerRejected}

// Volunteer is a volunteer signup submitted through the public form.
type Volunteer struct {
	ID           bson.ObjectID   `bson:"_id,omitempty"`
	Name         string          `bson:"name"`
	Email        string          `bson:"email"`
	Phone        string          `bson:"phone,omitempty"`
	Availability string          `bson:"availability,omitempty"`
	Interests    []string        `bson:"interests"`
	Message      string          `bson:"message,omitempty"`
	Status       VolunteerStatus `bson:"status"`
	UserID       string          `bson:"userId,omitempty"`
	CreatedAt    time.Time       `bson:"createdAt"`
	UpdatedAt    time.Time       `bson:"updatedAt"`
}
