package models

import "time"

// Item is a billable product or service a ticket request can reference.
type Item struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	UnitPrice   float64   `bson:"unitPrice" json:"unitPrice"`
	Currency    string    `bson:"currency" json:"currency"`
	Active      bool      `bson:"active" json:"active"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}
