package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type DonationStatus string

const (
	DonationPledged   DonationStatus = "pledged"
	DonationReceived  DonationStatus = "received"
	DonationCancelled DonationStatus = "cancelled"
)

// DefaultCurrency is used when a donation does not name one.
const DefaultCurrency = "USD"

// Donation is a pledge or gift made to the shelter.
type Donation struct {
	ID        bson.ObjectID  `bson:"_id,omitempty"`
	DonorName string         `bson:"donorName"`
	Email     string         `bson:"email"`
	Amount    float64        `bson:"amount"`
	Currency  string         `bson:"currency"`
	Message   string         `bson:"message,omitempty"`
	Status    DonationStatus `bson:"status"`
	ReceiptID string         `bson:"receiptId"`
	UserID    string         `bson:"userId,omitempty"`
	CreatedAt time.Time      `bson:"createdAt"`
	UpdatedAt time.Time      `bson:"updatedAt"`
}
