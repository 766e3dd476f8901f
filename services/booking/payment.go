package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"

	"labbook/models"
)

// PaymentHandler executes a single charge against the payment collaborator.
// Implementations must attempt the charge exactly once per call; retry policy
// belongs to the caller.
type PaymentHandler interface {
	Charge(ctx context.Context, req models.PaymentRequest) (*models.Invoice, error)
}

// StripePaymentHandler charges through Stripe payment intents.
type StripePaymentHandler struct {
	logger *zap.Logger
}

func NewStripePaymentHandler(logger *zap.Logger) *StripePaymentHandler {
	return &StripePaymentHandler{logger: logger}
}

func (h *StripePaymentHandler) Charge(ctx context.Context, req models.PaymentRequest) (*models.Invoice, error) {
	if req.AmountCents <= 0 {
		return nil, &PaymentFailure{Code: "invalid_amount", Message: "charge amount must be positive"}
	}
	if req.Method == "" {
		return nil, &PaymentFailure{Code: "missing_method", Message: "no payment method supplied"}
	}

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(req.AmountCents),
		Currency:      stripe.String(strings.ToLower(req.Currency)),
		PaymentMethod: stripe.String(req.Method),
		Confirm:       stripe.Bool(true),
		Description:   stripe.String(req.Description),
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			h.logger.Warn("stripe charge declined",
				zap.String("code", string(stripeErr.Code)),
				zap.Int64("amount_cents", req.AmountCents))
			return nil, &PaymentFailure{Code: string(stripeErr.Code), Message: stripeErr.Msg}
		}
		return nil, &PaymentFailure{Code: "gateway_error", Message: err.Error()}
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, &PaymentFailure{Code: string(pi.Status), Message: "payment not completed"}
	}

	inv := &models.Invoice{
		InvoiceID:   uuid.New().String(),
		AccountID:   req.AccountID,
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
		Status:      "paid",
		PaymentID:   pi.ID,
		CreatedAt:   time.Now(),
	}
	h.logger.Info("charge captured",
		zap.String("invoice", inv.InvoiceID),
		zap.Int64("amount_cents", inv.AmountCents))
	return inv, nil
}
