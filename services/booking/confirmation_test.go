package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"labbook/database/repository"
	"labbook/models"
)

// memSessionStore mimics the Redis store by round-tripping sessions through
// JSON, so tests observe the same copy semantics as production.
type memSessionStore struct {
	sessions map[string]string
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]string)}
}

func (st *memSessionStore) Save(_ context.Context, session *models.BookingSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	st.sessions[session.SessionID] = string(data)
	return nil
}

func (st *memSessionStore) Get(_ context.Context, sessionID string) (*models.BookingSession, error) {
	data, ok := st.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	var session models.BookingSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (st *memSessionStore) Delete(_ context.Context, sessionID string) error {
	delete(st.sessions, sessionID)
	return nil
}

type fakePayments struct {
	charges []models.PaymentRequest
	fail    *PaymentFailure
}

func (p *fakePayments) Charge(_ context.Context, req models.PaymentRequest) (*models.Invoice, error) {
	p.charges = append(p.charges, req)
	if p.fail != nil {
		return nil, p.fail
	}
	return &models.Invoice{
		InvoiceID:   fmt.Sprintf("inv-%d", len(p.charges)),
		AccountID:   req.AccountID,
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
		Status:      "paid",
	}, nil
}

type fakeOrderRepo struct {
	orders  map[string]*models.Order
	failure error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*models.Order)}
}

func (r *fakeOrderRepo) Create(_ context.Context, order *models.Order) error {
	if r.failure != nil {
		return r.failure
	}
	if _, exists := r.orders[order.OrderNumber]; exists {
		return repository.ErrDuplicateOrderNumber
	}
	r.orders[order.OrderNumber] = order
	return nil
}

func (r *fakeOrderRepo) GetByNumber(_ context.Context, orderNumber string) (*models.Order, error) {
	order, ok := r.orders[orderNumber]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return order, nil
}

func (r *fakeOrderRepo) ListByAccount(_ context.Context, accountID string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range r.orders {
		if o.AccountID == accountID {
			out = append(out, *o)
		}
	}
	return out, nil
}

type seqNumbers struct{ n int }

func (g *seqNumbers) Next() string {
	g.n++
	return fmt.Sprintf("LB-%06d", g.n)
}

type fakeReconciler struct {
	orders   []*models.Order
	invoices []string
}

func (r *fakeReconciler) EnqueueOrderReconcile(_ context.Context, order *models.Order, invoiceID string) error {
	r.orders = append(r.orders, order)
	r.invoices = append(r.invoices, invoiceID)
	return nil
}

type confirmFixture struct {
	store      *memSessionStore
	payments   *fakePayments
	orders     *fakeOrderRepo
	reconciler *fakeReconciler
	svc        *DefaultConfirmationService
}

func newConfirmFixture(t *testing.T, session *models.BookingSession) *confirmFixture {
	t.Helper()
	f := &confirmFixture{
		store:      newMemSessionStore(),
		payments:   &fakePayments{},
		orders:     newFakeOrderRepo(),
		reconciler: &fakeReconciler{},
	}
	f.svc = &DefaultConfirmationService{
		Store:        f.store,
		Payments:     f.payments,
		Orders:       f.orders,
		OrderNumbers: &seqNumbers{},
		Reconciler:   f.reconciler,
		Currency:     "brl",
		Logger:       zap.NewNop(),
		Clock:        func() time.Time { return monday10 },
	}
	require.NoError(t, f.store.Save(context.Background(), session))
	return f
}

func TestConfirmCreatesOrderOnce(t *testing.T) {
	session := sessionAt(t, models.StepPayment, scheduledLocation())
	f := newConfirmFixture(t, session)
	ctx := context.Background()

	order, err := f.svc.Confirm(ctx, testAccount, session.SessionID, "pm_card")
	require.NoError(t, err)
	assert.Equal(t, "LB-000001", order.OrderNumber)
	assert.Equal(t, int64(7500), order.TotalCents)
	assert.Equal(t, models.PaymentStatusPaid, order.PaymentStatus)
	assert.Equal(t, "2026-01-06", order.Date)
	assert.Equal(t, "07:00", order.TimeSlot)
	assert.Equal(t, "Ana", order.Patient.Name)
	assert.Len(t, order.Items, 2)
	require.Len(t, f.payments.charges, 1)
	assert.Equal(t, int64(7500), f.payments.charges[0].AmountCents)

	stored, err := f.store.Get(ctx, session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StepConfirmed, stored.Step)
	assert.Equal(t, order.OrderNumber, stored.OrderNumber)
}

func TestConfirmIsIdempotent(t *testing.T) {
	session := sessionAt(t, models.StepPayment, scheduledLocation())
	f := newConfirmFixture(t, session)
	ctx := context.Background()

	first, err := f.svc.Confirm(ctx, testAccount, session.SessionID, "pm_card")
	require.NoError(t, err)

	_, err = f.svc.Confirm(ctx, testAccount, session.SessionID, "pm_card")
	var confirmed *AlreadyConfirmedError
	require.ErrorAs(t, err, &confirmed)
	assert.Equal(t, first.OrderNumber, confirmed.OrderNumber)

	// No second charge, no second order.
	assert.Len(t, f.payments.charges, 1)
	assert.Len(t, f.orders.orders, 1)
}

func TestConfirmPaymentFailureIsRetryable(t *testing.T) {
	session := sessionAt(t, models.StepPayment, scheduledLocation())
	f := newConfirmFixture(t, session)
	ctx := context.Background()

	f.payments.fail = &PaymentFailure{Code: "card_declined", Message: "insufficient funds"}
	_, err := f.svc.Confirm(ctx, testAccount, session.SessionID, "pm_card")
	var failure *PaymentFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, "card_declined", failure.Code)
	assert.Empty(t, f.orders.orders)

	stored, err := f.store.Get(ctx, session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StepPayment, stored.Step)
	assert.Equal(t, 1, stored.FailedAttempts)

	// Retry succeeds and still produces exactly one order.
	f.payments.fail = nil
	order, err := f.svc.Confirm(ctx, testAccount, session.SessionID, "pm_card")
	require.NoError(t, err)
	assert.Len(t, f.orders.orders, 1)
	assert.NotEmpty(t, order.OrderNumber)
}

func TestConfirmPersistenceFailureGoesToReconciliation(t *testing.T) {
	session := sessionAt(t, models.StepPayment, scheduledLocation())
	f := newConfirmFixture(t, session)
	ctx := context.Background()

	f.orders.failure = errors.New("mongo down")
	_, err := f.svc.Confirm(ctx, testAccount, session.SessionID, "pm_card")
	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "inv-1", perr.InvoiceID)

	// The captured order was handed to the reconciliation queue.
	require.Len(t, f.reconciler.orders, 1)
	assert.Equal(t, "inv-1", f.reconciler.invoices[0])
	assert.Equal(t, int64(7500), f.reconciler.orders[0].TotalCents)

	// Not recorded as confirmed: the session is left for operational follow-up.
	stored, err := f.store.Get(ctx, session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, models.StepPayment, stored.Step)
}

func TestConfirmWalkInNeedsNoSchedule(t *testing.T) {
	session := sessionAt(t, models.StepLocationSelection, nil)
	require.NoError(t, SelectLocation(session, walkInLocation(), monday10))
	require.NoError(t, Advance(session, monday10))
	require.Equal(t, models.StepPayment, session.Step)

	f := newConfirmFixture(t, session)
	order, err := f.svc.Confirm(context.Background(), testAccount, session.SessionID, "pm_card")
	require.NoError(t, err)
	assert.Empty(t, order.Date)
	assert.Empty(t, order.TimeSlot)
}

func TestConfirmRejectsUnreadySession(t *testing.T) {
	session := sessionAt(t, models.StepScheduling, scheduledLocation())
	f := newConfirmFixture(t, session)

	_, err := f.svc.Confirm(context.Background(), testAccount, session.SessionID, "pm_card")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, f.payments.charges)
}

func TestConfirmRejectsStaleTotal(t *testing.T) {
	session := sessionAt(t, models.StepPayment, scheduledLocation())
	session.TotalCents = 100 // tampered/out of date
	f := newConfirmFixture(t, session)

	_, err := f.svc.Confirm(context.Background(), testAccount, session.SessionID, "pm_card")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, f.payments.charges)
}

func TestConfirmRejectsForeignAccount(t *testing.T) {
	session := sessionAt(t, models.StepPayment, scheduledLocation())
	f := newConfirmFixture(t, session)

	other := models.AccountContext{AccountID: "acct-2"}
	_, err := f.svc.Confirm(context.Background(), other, session.SessionID, "pm_card")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Empty(t, f.payments.charges)
}
