package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"labbook/models"
	"labbook/services/catalog"
	"labbook/services/patient"
)

// AvailabilityHorizonDays bounds how far ahead the scheduling step offers dates.
const AvailabilityHorizonDays = 60

// DefaultBookingSessionService implements BookingSessionService on top of the
// session store and the catalogue/location/patient collaborators.
type DefaultBookingSessionService struct {
	Store            SessionStore
	Catalog          catalog.CatalogService
	Locations        catalog.LocationDirectory
	Patients         patient.PatientService
	MerchantID       string
	PlatformFeeCents int64
	Logger           *zap.Logger
	Clock            func() time.Time
}

func (s *DefaultBookingSessionService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// CreateSession starts a new wizard session for the account.
func (s *DefaultBookingSessionService) CreateSession(ctx context.Context, acct models.AccountContext) (*models.BookingSession, error) {
	session := NewSession(acct, s.MerchantID, s.PlatformFeeCents, s.now())
	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	s.Logger.Info("booking session created",
		zap.String("sessionID", session.SessionID),
		zap.String("accountID", acct.AccountID))
	return session, nil
}

// GetSession loads a session owned by the account.
func (s *DefaultBookingSessionService) GetSession(ctx context.Context, acct models.AccountContext, sessionID string) (*models.BookingSession, error) {
	return s.load(ctx, acct, sessionID)
}

// SelectServices snapshots the chosen exams with their current prices and
// advances to patient selection.
func (s *DefaultBookingSessionService) SelectServices(ctx context.Context, acct models.AccountContext, sessionID string, serviceIDs []string) (*models.BookingSession, error) {
	session, err := s.load(ctx, acct, sessionID)
	if err != nil {
		return nil, err
	}
	if len(serviceIDs) == 0 {
		return nil, NewValidationError(session.Step, "select at least one exam")
	}
	services, err := s.Catalog.GetServices(ctx, session.MerchantID, serviceIDs)
	if err != nil {
		return nil, NewValidationError(session.Step, err.Error())
	}
	if err := SelectServices(session, services); err != nil {
		return nil, err
	}
	return s.advanceAndSave(ctx, session)
}

// SelectPatient records the patient and advances to location selection.
func (s *DefaultBookingSessionService) SelectPatient(ctx context.Context, acct models.AccountContext, sessionID, patientID string) (*models.BookingSession, error) {
	session, err := s.load(ctx, acct, sessionID)
	if err != nil {
		return nil, err
	}
	p, err := s.Patients.GetPatient(ctx, acct.AccountID, patientID)
	if err != nil {
		return nil, NewValidationError(session.Step, err.Error())
	}
	if err := SelectPatient(session, p); err != nil {
		return nil, err
	}
	return s.advanceAndSave(ctx, session)
}

// SelectLocation records the location and advances. When the location does
// not require scheduling the wizard lands directly on payment.
func (s *DefaultBookingSessionService) SelectLocation(ctx context.Context, acct models.AccountContext, sessionID, locationID string) (*models.BookingSession, error) {
	session, err := s.load(ctx, acct, sessionID)
	if err != nil {
		return nil, err
	}
	loc, err := s.Locations.GetLocation(ctx, locationID)
	if err != nil {
		return nil, NewValidationError(session.Step, "location not found")
	}
	if err := SelectLocation(session, loc, s.now()); err != nil {
		return nil, err
	}
	return s.advanceAndSave(ctx, session)
}

// SelectSchedule records the validated date/time and advances to payment.
func (s *DefaultBookingSessionService) SelectSchedule(ctx context.Context, acct models.AccountContext, sessionID, date, timeSlot string) (*models.BookingSession, error) {
	session, err := s.load(ctx, acct, sessionID)
	if err != nil {
		return nil, err
	}
	if err := SelectSchedule(session, date, timeSlot, s.now()); err != nil {
		return nil, err
	}
	return s.advanceAndSave(ctx, session)
}

// Availability computes the selectable dates and slots for the session's
// location. Valid once a location has been chosen.
func (s *DefaultBookingSessionService) Availability(ctx context.Context, acct models.AccountContext, sessionID string) (*AvailabilityResult, error) {
	session, err := s.load(ctx, acct, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Location == nil {
		return nil, NewValidationError(session.Step, "select a location first")
	}
	policy := session.Location.Policy
	if !policy.RequiresScheduling {
		return &AvailabilityResult{RequiresScheduling: false}, nil
	}
	now := s.now()
	dates := AvailableDates(policy, now, AvailabilityHorizonDays)
	result := &AvailabilityResult{
		RequiresScheduling: true,
		Dates:              dates,
		Slots:              SlotsFor(policy, now),
	}
	if len(dates) == 0 || len(result.Slots) == 0 {
		result.Dates, result.Slots = nil, nil
		result.Message = "no availability at this location"
	}
	return result, nil
}

// GoBack steps the wizard back once and re-persists the session.
func (s *DefaultBookingSessionService) GoBack(ctx context.Context, acct models.AccountContext, sessionID string) (*models.BookingSession, error) {
	session, err := s.load(ctx, acct, sessionID)
	if err != nil {
		return nil, err
	}
	if err := GoBack(session); err != nil {
		return nil, err
	}
	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// CancelSession discards an abandoned wizard. No compensating action is
// needed before confirmation since no order exists yet.
func (s *DefaultBookingSessionService) CancelSession(ctx context.Context, acct models.AccountContext, sessionID string) error {
	session, err := s.load(ctx, acct, sessionID)
	if err != nil {
		return err
	}
	s.Logger.Info("booking session cancelled",
		zap.String("sessionID", session.SessionID),
		zap.String("step", string(session.Step)))
	return s.Store.Delete(ctx, sessionID)
}

func (s *DefaultBookingSessionService) load(ctx context.Context, acct models.AccountContext, sessionID string) (*models.BookingSession, error) {
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}
	session, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.AccountID != acct.AccountID {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *DefaultBookingSessionService) advanceAndSave(ctx context.Context, session *models.BookingSession) (*models.BookingSession, error) {
	if err := Advance(session, s.now()); err != nil {
		return nil, err
	}
	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	s.Logger.Debug("booking session advanced",
		zap.String("sessionID", session.SessionID),
		zap.String("step", string(session.Step)))
	return session, nil
}
