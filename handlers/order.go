package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"labbook/database/repository"
	"labbook/middleware"
)

// OrderHandler serves confirmed orders.
type OrderHandler struct {
	Orders repository.OrderRepository
	Logger *zap.Logger
}

func NewOrderHandler(orders repository.OrderRepository, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{Orders: orders, Logger: logger}
}

// ListOrders handles GET /api/orders.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	acct, _ := middleware.AccountFromContext(c)
	orders, err := h.Orders.ListByAccount(c.Request.Context(), acct.AccountID)
	if err != nil {
		h.Logger.Error("ListOrders failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrder handles GET /api/orders/:orderNumber.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	acct, _ := middleware.AccountFromContext(c)
	order, err := h.Orders.GetByNumber(c.Request.Context(), c.Param("orderNumber"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	if err != nil {
		h.Logger.Error("GetOrder failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch order"})
		return
	}
	if order.AccountID != acct.AccountID {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}
