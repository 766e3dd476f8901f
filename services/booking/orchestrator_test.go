package booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"labbook/models"
)

type fakeCatalog struct {
	services map[string]models.Service
}

func (f *fakeCatalog) ListServices(_ context.Context, _ string) ([]models.Service, error) {
	var out []models.Service
	for _, svc := range f.services {
		if svc.Active {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (f *fakeCatalog) GetServices(_ context.Context, _ string, ids []string) ([]models.Service, error) {
	out := make([]models.Service, 0, len(ids))
	for _, id := range ids {
		svc, ok := f.services[id]
		if !ok || !svc.Active {
			return nil, fmt.Errorf("service %s is not available", id)
		}
		out = append(out, svc)
	}
	return out, nil
}

type fakeLocations struct {
	locations map[string]*models.Location
}

func (f *fakeLocations) ListLocations(_ context.Context, _ string) ([]models.Location, error) {
	var out []models.Location
	for _, loc := range f.locations {
		if loc.Active {
			out = append(out, *loc)
		}
	}
	return out, nil
}

func (f *fakeLocations) GetLocation(_ context.Context, id string) (*models.Location, error) {
	loc, ok := f.locations[id]
	if !ok {
		return nil, fmt.Errorf("location %s not found", id)
	}
	return loc, nil
}

type fakePatientSvc struct {
	patients map[string]*models.Patient
}

func (f *fakePatientSvc) ListPatients(_ context.Context, accountID string) ([]models.Patient, error) {
	var out []models.Patient
	for _, p := range f.patients {
		if p.AccountID == accountID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePatientSvc) GetPatient(_ context.Context, accountID, patientID string) (*models.Patient, error) {
	p, ok := f.patients[patientID]
	if !ok || p.AccountID != accountID {
		return nil, fmt.Errorf("patient not found")
	}
	return p, nil
}

func (f *fakePatientSvc) CreatePatient(_ context.Context, accountID string, input models.PatientInput) (*models.Patient, error) {
	p := &models.Patient{ID: "pat-new", AccountID: accountID, Name: input.Name}
	f.patients[p.ID] = p
	return p, nil
}

func newWizard(t *testing.T) *DefaultBookingSessionService {
	t.Helper()
	services := make(map[string]models.Service)
	for _, svc := range testServices() {
		services[svc.ID] = svc
	}
	noAvail := scheduledLocation()
	noAvail.ID = "loc-empty"
	noAvail.Policy.AvailableWeekdays = nil

	return &DefaultBookingSessionService{
		Store:   newMemSessionStore(),
		Catalog: &fakeCatalog{services: services},
		Locations: &fakeLocations{locations: map[string]*models.Location{
			"loc-sched":  scheduledLocation(),
			"loc-walkin": walkInLocation(),
			"loc-empty":  noAvail,
		}},
		Patients:         &fakePatientSvc{patients: map[string]*models.Patient{"pat-1": testPatient()}},
		MerchantID:       "default",
		PlatformFeeCents: 500,
		Logger:           zap.NewNop(),
		Clock:            func() time.Time { return monday10 },
	}
}

func TestWizardFullFlow(t *testing.T) {
	svc := newWizard(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, testAccount)
	require.NoError(t, err)
	assert.Equal(t, models.StepServiceSelection, session.Step)

	session, err = svc.SelectServices(ctx, testAccount, session.SessionID, []string{"hemograma", "glicemia"})
	require.NoError(t, err)
	assert.Equal(t, models.StepPatientSelection, session.Step)

	session, err = svc.SelectPatient(ctx, testAccount, session.SessionID, "pat-1")
	require.NoError(t, err)
	assert.Equal(t, models.StepLocationSelection, session.Step)

	session, err = svc.SelectLocation(ctx, testAccount, session.SessionID, "loc-sched")
	require.NoError(t, err)
	assert.Equal(t, models.StepScheduling, session.Step)

	avail, err := svc.Availability(ctx, testAccount, session.SessionID)
	require.NoError(t, err)
	assert.True(t, avail.RequiresScheduling)
	require.NotEmpty(t, avail.Dates)
	assert.Equal(t, "2026-01-06", avail.Dates[0])
	assert.Equal(t, []string{"07:00", "08:00"}, avail.Slots)

	session, err = svc.SelectSchedule(ctx, testAccount, session.SessionID, "2026-01-06", "07:00")
	require.NoError(t, err)
	assert.Equal(t, models.StepPayment, session.Step)
	assert.Equal(t, int64(7500), session.TotalCents)
}

func TestWizardWalkInSkipsScheduling(t *testing.T) {
	svc := newWizard(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, testAccount)
	require.NoError(t, err)
	_, err = svc.SelectServices(ctx, testAccount, session.SessionID, []string{"hemograma"})
	require.NoError(t, err)
	_, err = svc.SelectPatient(ctx, testAccount, session.SessionID, "pat-1")
	require.NoError(t, err)

	session, err = svc.SelectLocation(ctx, testAccount, session.SessionID, "loc-walkin")
	require.NoError(t, err)
	assert.Equal(t, models.StepPayment, session.Step)
	assert.Equal(t, int64(5000), session.TotalCents)

	avail, err := svc.Availability(ctx, testAccount, session.SessionID)
	require.NoError(t, err)
	assert.False(t, avail.RequiresScheduling)
	assert.Empty(t, avail.Dates)
}

func TestWizardNoAvailabilityState(t *testing.T) {
	svc := newWizard(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, testAccount)
	require.NoError(t, err)
	_, err = svc.SelectServices(ctx, testAccount, session.SessionID, []string{"hemograma"})
	require.NoError(t, err)
	_, err = svc.SelectPatient(ctx, testAccount, session.SessionID, "pat-1")
	require.NoError(t, err)
	_, err = svc.SelectLocation(ctx, testAccount, session.SessionID, "loc-empty")
	require.NoError(t, err)

	avail, err := svc.Availability(ctx, testAccount, session.SessionID)
	require.NoError(t, err)
	assert.True(t, avail.RequiresScheduling)
	assert.Empty(t, avail.Dates)
	assert.NotEmpty(t, avail.Message)
}

func TestWizardRejectsUnknownService(t *testing.T) {
	svc := newWizard(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, testAccount)
	require.NoError(t, err)

	_, err = svc.SelectServices(ctx, testAccount, session.SessionID, []string{"nope"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestWizardGoBackRevalidatesLocationChange(t *testing.T) {
	svc := newWizard(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, testAccount)
	require.NoError(t, err)
	_, err = svc.SelectServices(ctx, testAccount, session.SessionID, []string{"hemograma"})
	require.NoError(t, err)
	_, err = svc.SelectPatient(ctx, testAccount, session.SessionID, "pat-1")
	require.NoError(t, err)
	_, err = svc.SelectLocation(ctx, testAccount, session.SessionID, "loc-sched")
	require.NoError(t, err)
	_, err = svc.SelectSchedule(ctx, testAccount, session.SessionID, "2026-01-06", "07:00")
	require.NoError(t, err)

	// payment -> scheduling -> location
	_, err = svc.GoBack(ctx, testAccount, session.SessionID)
	require.NoError(t, err)
	session, err = svc.GoBack(ctx, testAccount, session.SessionID)
	require.NoError(t, err)
	require.Equal(t, models.StepLocationSelection, session.Step)

	// Switching to the walk-in unit drops the schedule and lands on payment.
	session, err = svc.SelectLocation(ctx, testAccount, session.SessionID, "loc-walkin")
	require.NoError(t, err)
	assert.Equal(t, models.StepPayment, session.Step)
	assert.Empty(t, session.Date)
	assert.Empty(t, session.TimeSlot)
}

func TestWizardSessionOwnership(t *testing.T) {
	svc := newWizard(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, testAccount)
	require.NoError(t, err)

	other := models.AccountContext{AccountID: "acct-2"}
	_, err = svc.GetSession(ctx, other, session.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestWizardCancelDiscardsSession(t *testing.T) {
	svc := newWizard(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, testAccount)
	require.NoError(t, err)
	require.NoError(t, svc.CancelSession(ctx, testAccount, session.SessionID))

	_, err = svc.GetSession(ctx, testAccount, session.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
