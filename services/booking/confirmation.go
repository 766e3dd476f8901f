package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"labbook/database/repository"
	"labbook/models"
)

// ReconcileEnqueuer hands a captured-but-unpersisted order to the
// reconciliation queue for operational follow-up.
type ReconcileEnqueuer interface {
	EnqueueOrderReconcile(ctx context.Context, order *models.Order, invoiceID string) error
}

// DefaultConfirmationService implements ConfirmationService: it charges the
// payment collaborator exactly once per attempt and converts the session into
// a persisted order on success.
type DefaultConfirmationService struct {
	Store        SessionStore
	Payments     PaymentHandler
	Orders       repository.OrderRepository
	OrderNumbers OrderNumberGenerator
	Reconciler   ReconcileEnqueuer
	Currency     string
	Logger       *zap.Logger
	Clock        func() time.Time
}

func (cs *DefaultConfirmationService) now() time.Time {
	if cs.Clock != nil {
		return cs.Clock()
	}
	return time.Now()
}

// Confirm finalizes the booking. A session that already produced an order
// rejects further attempts with AlreadyConfirmedError; a payment failure
// leaves the session at the payment step for retry.
func (cs *DefaultConfirmationService) Confirm(ctx context.Context, acct models.AccountContext, sessionID, paymentMethod string) (*models.Order, error) {
	session, err := cs.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.AccountID != acct.AccountID {
		return nil, ErrSessionNotFound
	}

	if session.Step == models.StepConfirmed {
		return nil, &AlreadyConfirmedError{OrderNumber: session.OrderNumber}
	}
	if session.Step != models.StepPayment {
		return nil, NewValidationError(session.Step, "session is not ready for payment")
	}

	total := ComputeTotal(session.Items, session.PlatformFeeCents)
	if total != session.TotalCents || total <= 0 {
		return nil, NewValidationError(session.Step, "total amount out of date")
	}

	invoice, err := cs.Payments.Charge(ctx, models.PaymentRequest{
		AccountID:   session.AccountID,
		AmountCents: total,
		Currency:    cs.Currency,
		Method:      paymentMethod,
		Description: fmt.Sprintf("lab exams for %s", session.Patient.Name),
		Metadata:    map[string]string{"sessionId": session.SessionID},
	})
	if err != nil {
		session.FailedAttempts++
		if saveErr := cs.Store.Save(ctx, session); saveErr != nil {
			cs.Logger.Error("failed to record payment attempt", zap.Error(saveErr))
		}
		cs.Logger.Warn("payment attempt failed",
			zap.String("sessionID", session.SessionID),
			zap.Int("attempts", session.FailedAttempts),
			zap.Error(err))
		return nil, err
	}

	order := cs.buildOrder(session, invoice)
	if err := cs.Orders.Create(ctx, order); err != nil {
		// Money was captured but no order exists. This is the most severe
		// failure mode: surface it loudly and queue it for reconciliation.
		cs.Logger.Error("order persistence failed after capture",
			zap.String("sessionID", session.SessionID),
			zap.String("invoiceID", invoice.InvoiceID),
			zap.String("orderNumber", order.OrderNumber),
			zap.Error(err))
		if cs.Reconciler != nil {
			if qErr := cs.Reconciler.EnqueueOrderReconcile(ctx, order, invoice.InvoiceID); qErr != nil {
				cs.Logger.Error("failed to enqueue order reconciliation",
					zap.String("invoiceID", invoice.InvoiceID),
					zap.Error(qErr))
			}
		}
		return nil, &PersistenceError{InvoiceID: invoice.InvoiceID, Message: err.Error()}
	}

	session.Step = models.StepConfirmed
	session.OrderNumber = order.OrderNumber
	if err := cs.Store.Save(ctx, session); err != nil {
		// The order exists; losing the session only costs idempotent replay
		// detection within the TTL window.
		cs.Logger.Error("failed to mark session confirmed", zap.Error(err))
	}

	cs.Logger.Info("booking confirmed",
		zap.String("sessionID", session.SessionID),
		zap.String("orderNumber", order.OrderNumber),
		zap.Int64("total_cents", order.TotalCents))
	return order, nil
}

func (cs *DefaultConfirmationService) buildOrder(session *models.BookingSession, invoice *models.Invoice) *models.Order {
	items := make([]models.OrderItem, 0, len(session.Items))
	for _, it := range session.Items {
		items = append(items, models.OrderItem{
			ServiceID:  it.ServiceID,
			Name:       it.Name,
			PriceCents: it.PriceCents,
		})
	}
	return &models.Order{
		ID:            uuid.New().String(),
		OrderNumber:   cs.OrderNumbers.Next(),
		AccountID:     session.AccountID,
		MerchantID:    session.MerchantID,
		Patient:       *session.Patient,
		Location:      *session.Location,
		Items:         items,
		Date:          session.Date,
		TimeSlot:      session.TimeSlot,
		TotalCents:    session.TotalCents,
		PaymentStatus: models.PaymentStatusPaid,
		InvoiceID:     invoice.InvoiceID,
		CreatedAt:     cs.now(),
	}
}
