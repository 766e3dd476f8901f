package booking

import (
	"errors"
	"fmt"

	"labbook/models"
)

// ErrSessionNotFound signals an unknown or expired booking session.
var ErrSessionNotFound = errors.New("booking session not found or expired")

// ValidationError reports an unsatisfied step guard. It blocks advancing but
// is never fatal to the session.
type ValidationError struct {
	Step    models.BookingStep
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed at %s: %s", e.Step, e.Message)
}

func NewValidationError(step models.BookingStep, msg string) error {
	return &ValidationError{Step: step, Message: msg}
}

// AvailabilityError reports a date/time selection that is no longer valid
// under the current location policy and forces re-selection.
type AvailabilityError struct {
	Message string
}

func (e *AvailabilityError) Error() string {
	return fmt.Sprintf("availability: %s", e.Message)
}

func NewAvailabilityError(msg string) error {
	return &AvailabilityError{Message: msg}
}

// PaymentFailure reports a declined charge or a payment collaborator error.
// The session remains at the payment step and the charge may be retried.
type PaymentFailure struct {
	Code    string
	Message string
}

func (e *PaymentFailure) Error() string {
	return fmt.Sprintf("payment failed (%s): %s", e.Code, e.Message)
}

// PersistenceError reports that money was captured but the order snapshot
// could not be saved. This must never be swallowed: the invoice id is
// carried for manual reconciliation.
type PersistenceError struct {
	InvoiceID string
	Message   string
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("order persistence failed after capture (invoice %s): %s", e.InvoiceID, e.Message)
}

// AlreadyConfirmedError rejects a second confirmation attempt on a session
// that already produced an order.
type AlreadyConfirmedError struct {
	OrderNumber string
}

func (e *AlreadyConfirmedError) Error() string {
	return fmt.Sprintf("session already confirmed as order %s", e.OrderNumber)
}
