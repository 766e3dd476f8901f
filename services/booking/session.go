package booking

import (
	"time"

	"github.com/google/uuid"

	"labbook/models"
)

// NewSession creates a booking session at the initial step for the given
// account. The account identity is injected here once; nothing in the flow
// reads ambient state.
func NewSession(acct models.AccountContext, merchantID string, platformFeeCents int64, now time.Time) *models.BookingSession {
	return &models.BookingSession{
		SessionID:        uuid.New().String(),
		AccountID:        acct.AccountID,
		MerchantID:       merchantID,
		Step:             models.StepServiceSelection,
		PlatformFeeCents: platformFeeCents,
		CreatedAt:        now,
	}
}

// CanAdvance evaluates the current step's entry guard for the next step.
// A nil return means Advance will succeed.
func CanAdvance(s *models.BookingSession, now time.Time) error {
	switch s.Step {
	case models.StepServiceSelection:
		if len(s.Items) == 0 {
			return NewValidationError(s.Step, "select at least one exam")
		}
	case models.StepPatientSelection:
		if s.Patient == nil {
			return NewValidationError(s.Step, "select a patient")
		}
	case models.StepLocationSelection:
		if s.Location == nil {
			return NewValidationError(s.Step, "select a location")
		}
		if !s.Location.Active {
			return NewValidationError(s.Step, "selected location is inactive")
		}
	case models.StepScheduling:
		if err := validateSchedule(s, now); err != nil {
			return err
		}
	case models.StepPayment:
		if total := ComputeTotal(s.Items, s.PlatformFeeCents); total != s.TotalCents || total <= 0 {
			return NewValidationError(s.Step, "total amount out of date")
		}
	case models.StepConfirmed:
		return NewValidationError(s.Step, "session already confirmed")
	}
	return nil
}

// Advance moves the session one step forward once the current guard is
// satisfied. The scheduling step is skipped when the selected location does
// not require scheduling. Entering the payment step recomputes the total.
func Advance(s *models.BookingSession, now time.Time) error {
	if err := CanAdvance(s, now); err != nil {
		return err
	}
	switch s.Step {
	case models.StepServiceSelection:
		s.Step = models.StepPatientSelection
	case models.StepPatientSelection:
		s.Step = models.StepLocationSelection
	case models.StepLocationSelection:
		if s.RequiresScheduling() {
			s.Step = models.StepScheduling
		} else {
			s.Step = models.StepPayment
			s.TotalCents = ComputeTotal(s.Items, s.PlatformFeeCents)
		}
	case models.StepScheduling:
		s.Step = models.StepPayment
		s.TotalCents = ComputeTotal(s.Items, s.PlatformFeeCents)
	case models.StepPayment:
		// Payment advances only through the confirmation orchestrator.
		return NewValidationError(s.Step, "confirm the booking to proceed")
	}
	return nil
}

// GoBack moves one step backward, skipping scheduling in reverse when the
// location does not require it. Confirmed sessions cannot be reopened.
func GoBack(s *models.BookingSession) error {
	switch s.Step {
	case models.StepServiceSelection:
		return NewValidationError(s.Step, "already at the first step")
	case models.StepPatientSelection:
		s.Step = models.StepServiceSelection
	case models.StepLocationSelection:
		s.Step = models.StepPatientSelection
	case models.StepScheduling:
		s.Step = models.StepLocationSelection
	case models.StepPayment:
		if s.RequiresScheduling() {
			s.Step = models.StepScheduling
		} else {
			s.Step = models.StepLocationSelection
		}
	case models.StepConfirmed:
		return NewValidationError(s.Step, "session already confirmed")
	}
	return nil
}

// SelectServices replaces the service selection with price snapshots taken
// from the catalogue at this moment. Only valid at the service step.
func SelectServices(s *models.BookingSession, services []models.Service) error {
	if s.Step != models.StepServiceSelection {
		return NewValidationError(s.Step, "services can only be changed at the exam selection step")
	}
	if len(services) == 0 {
		return NewValidationError(s.Step, "select at least one exam")
	}
	items := make([]models.SessionItem, 0, len(services))
	for _, svc := range services {
		if !svc.Active {
			return NewValidationError(s.Step, "exam "+svc.ID+" is not available")
		}
		items = append(items, models.SessionItem{
			ServiceID:  svc.ID,
			Name:       svc.Name,
			PriceCents: svc.PriceCents,
		})
	}
	s.Items = items
	return nil
}

// SelectPatient records the patient at the patient step.
func SelectPatient(s *models.BookingSession, patient *models.Patient) error {
	if s.Step != models.StepPatientSelection {
		return NewValidationError(s.Step, "patient can only be changed at the patient step")
	}
	if patient == nil {
		return NewValidationError(s.Step, "select a patient")
	}
	if patient.AccountID != s.AccountID {
		return NewValidationError(s.Step, "patient does not belong to this account")
	}
	s.Patient = patient
	return nil
}

// SelectLocation records the location at the location step. A previously
// chosen date/time that is invalid under the new location's policy is
// cleared so the scheduling guard forces re-selection.
func SelectLocation(s *models.BookingSession, loc *models.Location, now time.Time) error {
	if s.Step != models.StepLocationSelection {
		return NewValidationError(s.Step, "location can only be changed at the location step")
	}
	if loc == nil {
		return NewValidationError(s.Step, "select a location")
	}
	if !loc.Active {
		return NewValidationError(s.Step, "selected location is inactive")
	}
	s.Location = loc

	if !loc.Policy.RequiresScheduling {
		s.Date, s.TimeSlot = "", ""
		return nil
	}
	if s.Date != "" || s.TimeSlot != "" {
		if validateSchedule(s, now) != nil {
			s.Date, s.TimeSlot = "", ""
		}
	}
	return nil
}

// SelectSchedule records the date and time slot at the scheduling step,
// validated against the location's availability.
func SelectSchedule(s *models.BookingSession, date, slot string, now time.Time) error {
	if s.Step != models.StepScheduling {
		return NewValidationError(s.Step, "schedule can only be changed at the scheduling step")
	}
	s.Date, s.TimeSlot = date, slot
	if err := validateSchedule(s, now); err != nil {
		s.Date, s.TimeSlot = "", ""
		return err
	}
	return nil
}

func validateSchedule(s *models.BookingSession, now time.Time) error {
	if s.Location == nil {
		return NewValidationError(s.Step, "select a location first")
	}
	policy := s.Location.Policy
	if !policy.RequiresScheduling {
		return nil
	}
	if s.Date == "" || s.TimeSlot == "" {
		return NewValidationError(s.Step, "select a date and time")
	}
	date, err := time.ParseInLocation(DateLayout, s.Date, now.Location())
	if err != nil {
		return NewAvailabilityError("invalid date " + s.Date)
	}
	if !IsDateAvailable(policy, now, date) {
		return NewAvailabilityError("date " + s.Date + " is not available at this location")
	}
	if !policy.HasSlot(s.TimeSlot) {
		return NewAvailabilityError("time " + s.TimeSlot + " is not offered at this location")
	}
	return nil
}
