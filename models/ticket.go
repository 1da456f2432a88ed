package models

import "time"

// Ticket request status values.
const (
	TicketStatusPending        = "pending"
	TicketStatusPaid           = "paid"
	TicketStatusRequiresAction = "requires_action"
	TicketStatusFailed         = "failed"
	TicketStatusCancelled      = "cancelled"
)

// TicketRequest is a billing request submitted by a consultant.
type TicketRequest struct {
	ID            string    `bson:"id" json:"id"`
	ConsultantID  string    `bson:"consultantId" json:"consultantId"`
	CustomerName  string    `bson:"customerName" json:"customerName"`
	CustomerEmail string    `bson:"customerEmail" json:"customerEmail"`
	ItemID        string    `bson:"itemId" json:"itemId"`
	Amount        float64   `bson:"amount" json:"amount"`
	Currency      string    `bson:"currency" json:"currency"`
	Status        string    `bson:"status" json:"status"`
	Notes         string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// TicketRequestStatus is one append-only audit entry in a request's history.
// Every payment attempt and manual transition writes one.
type TicketRequestStatus struct {
	ID            string    `bson:"id" json:"id"`
	RequestID     string    `bson:"requestId" json:"requestId"`
	Status        string    `bson:"status" json:"status"`
	Gateway       string    `bson:"gateway,omitempty" json:"gateway,omitempty"`
	TransactionID string    `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	Message       string    `bson:"message,omitempty" json:"message,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}
