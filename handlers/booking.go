package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"labbook/database/repository"
	"labbook/middleware"
	"labbook/services/booking"
)

// BookingHandler exposes the booking wizard over HTTP.
type BookingHandler struct {
	Sessions      booking.BookingSessionService
	Confirmations booking.ConfirmationService
	Orders        repository.OrderRepository
	Logger        *zap.Logger
}

func NewBookingHandler(sessions booking.BookingSessionService, confirmations booking.ConfirmationService, orders repository.OrderRepository, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{
		Sessions:      sessions,
		Confirmations: confirmations,
		Orders:        orders,
		Logger:        logger,
	}
}

// CreateSession handles POST /api/booking/session.
func (h *BookingHandler) CreateSession(c *gin.Context) {
	acct, ok := middleware.AccountFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing account context"})
		return
	}
	session, err := h.Sessions.CreateSession(c.Request.Context(), acct)
	if err != nil {
		h.Logger.Error("CreateSession failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create booking session"})
		return
	}
	c.JSON(http.StatusCreated, session)
}

// GetSession handles GET /api/booking/session/:sessionID.
func (h *BookingHandler) GetSession(c *gin.Context) {
	acct, _ := middleware.AccountFromContext(c)
	session, err := h.Sessions.GetSession(c.Request.Context(), acct, c.Param("sessionID"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// SelectServices handles PUT /api/booking/session/:sessionID/services.
func (h *BookingHandler) SelectServices(c *gin.Context) {
	var input struct {
		ServiceIDs []string `json:"serviceIds"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	acct, _ := middleware.AccountFromContext(c)
	session, err := h.Sessions.SelectServices(c.Request.Context(), acct, c.Param("sessionID"), input.ServiceIDs)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// SelectPatient handles PUT /api/booking/session/:sessionID/patient.
func (h *BookingHandler) SelectPatient(c *gin.Context) {
	var input struct {
		PatientID string `json:"patientId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	acct, _ := middleware.AccountFromContext(c)
	session, err := h.Sessions.SelectPatient(c.Request.Context(), acct, c.Param("sessionID"), input.PatientID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// SelectLocation handles PUT /api/booking/session/:sessionID/location.
func (h *BookingHandler) SelectLocation(c *gin.Context) {
	var input struct {
		LocationID string `json:"locationId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	acct, _ := middleware.AccountFromContext(c)
	session, err := h.Sessions.SelectLocation(c.Request.Context(), acct, c.Param("sessionID"), input.LocationID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// SelectSchedule handles PUT /api/booking/session/:sessionID/schedule.
func (h *BookingHandler) SelectSchedule(c *gin.Context) {
	var input struct {
		Date     string `json:"date"`
		TimeSlot string `json:"timeSlot"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	acct, _ := middleware.AccountFromContext(c)
	session, err := h.Sessions.SelectSchedule(c.Request.Context(), acct, c.Param("sessionID"), input.Date, input.TimeSlot)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Availability handles GET /api/booking/session/:sessionID/availability.
func (h *BookingHandler) Availability(c *gin.Context) {
	acct, _ := middleware.AccountFromContext(c)
	result, err := h.Sessions.Availability(c.Request.Context(), acct, c.Param("sessionID"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GoBack handles POST /api/booking/session/:sessionID/back.
func (h *BookingHandler) GoBack(c *gin.Context) {
	acct, _ := middleware.AccountFromContext(c)
	session, err := h.Sessions.GoBack(c.Request.Context(), acct, c.Param("sessionID"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Confirm handles POST /api/booking/session/:sessionID/confirm.
func (h *BookingHandler) Confirm(c *gin.Context) {
	var input struct {
		PaymentMethod string `json:"paymentMethod"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	acct, _ := middleware.AccountFromContext(c)
	order, err := h.Confirmations.Confirm(c.Request.Context(), acct, c.Param("sessionID"), input.PaymentMethod)
	if err != nil {
		var confirmed *booking.AlreadyConfirmedError
		if errors.As(err, &confirmed) {
			h.renderAlreadyConfirmed(c, confirmed.OrderNumber)
			return
		}
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// CancelSession handles DELETE /api/booking/session/:sessionID.
func (h *BookingHandler) CancelSession(c *gin.Context) {
	acct, _ := middleware.AccountFromContext(c)
	if err := h.Sessions.CancelSession(c.Request.Context(), acct, c.Param("sessionID")); err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}

// renderAlreadyConfirmed answers a repeated confirm with the original order.
func (h *BookingHandler) renderAlreadyConfirmed(c *gin.Context, orderNumber string) {
	order, err := h.Orders.GetByNumber(c.Request.Context(), orderNumber)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":       "session already confirmed",
			"orderNumber": orderNumber,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order, "alreadyConfirmed": true})
}

func (h *BookingHandler) renderError(c *gin.Context, err error) {
	var (
		validation  *booking.ValidationError
		availErr    *booking.AvailabilityError
		payFailure  *booking.PaymentFailure
		persistence *booking.PersistenceError
	)
	switch {
	case errors.Is(err, booking.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "booking session not found or expired"})
	case errors.As(err, &validation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": validation.Message,
			"step":  string(validation.Step),
		})
	case errors.As(err, &availErr):
		c.JSON(http.StatusConflict, gin.H{"error": availErr.Message})
	case errors.As(err, &payFailure):
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error":     "payment failed",
			"code":      payFailure.Code,
			"message":   payFailure.Message,
			"retryable": true,
		})
	case errors.As(err, &persistence):
		// Charge captured, order missing: the client must not retry payment.
		c.JSON(http.StatusBadGateway, gin.H{
			"error":     "order could not be saved; our team has been notified",
			"invoiceId": persistence.InvoiceID,
			"retryable": false,
		})
	default:
		h.Logger.Error("booking request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
