package models

import "time"

// --- PaymentRequest & Invoice ---

// PaymentRequest describes one charge attempt against the payment collaborator.
type PaymentRequest struct {
	AccountID   string
	AmountCents int64
	Currency    string
	Method      string // payment method token, e.g. a card reference
	Description string
	Metadata    map[string]string
}

// Invoice is the collaborator's record of a captured charge.
type Invoice struct {
	InvoiceID   string
	AccountID   string
	AmountCents int64
	Currency    string
	Status      string
	PaymentID   string
	CreatedAt   time.Time
}
