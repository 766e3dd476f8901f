package booking

import (
	"context"

	"labbook/models"
)

// BookingSessionService drives the booking wizard: one linear session per
// interactive user, mutated step by step and finalized by the confirmation
// orchestrator.
type BookingSessionService interface {
	CreateSession(ctx context.Context, acct models.AccountContext) (*models.BookingSession, error)
	GetSession(ctx context.Context, acct models.AccountContext, sessionID string) (*models.BookingSession, error)
	SelectServices(ctx context.Context, acct models.AccountContext, sessionID string, serviceIDs []string) (*models.BookingSession, error)
	SelectPatient(ctx context.Context, acct models.AccountContext, sessionID, patientID string) (*models.BookingSession, error)
	SelectLocation(ctx context.Context, acct models.AccountContext, sessionID, locationID string) (*models.BookingSession, error)
	SelectSchedule(ctx context.Context, acct models.AccountContext, sessionID, date, timeSlot string) (*models.BookingSession, error)
	Availability(ctx context.Context, acct models.AccountContext, sessionID string) (*AvailabilityResult, error)
	GoBack(ctx context.Context, acct models.AccountContext, sessionID string) (*models.BookingSession, error)
	CancelSession(ctx context.Context, acct models.AccountContext, sessionID string) error
}

// ConfirmationService finalizes a paid session into an order, at most once.
type ConfirmationService interface {
	Confirm(ctx context.Context, acct models.AccountContext, sessionID, paymentMethod string) (*models.Order, error)
}

// AvailabilityResult is what the scheduling step renders: the selectable
// dates within the horizon and the location's slot grid. An empty Dates with
// a Message is the "no availability" state, not an error.
type AvailabilityResult struct {
	RequiresScheduling bool     `json:"requiresScheduling"`
	Dates              []string `json:"dates,omitempty"`
	Slots              []string `json:"slots,omitempty"`
	Message            string   `json:"message,omitempty"`
}
