package models

import "time"

// Payment status values for an order.
const (
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

// OrderItem is one exam line on a confirmed order.
type OrderItem struct {
	ServiceID  string `bson:"service_id" json:"serviceId"`
	Name       string `bson:"name" json:"name"`
	PriceCents int64  `bson:"price_cents" json:"priceCents"`
}

// Order is the immutable record created once per successfully paid booking
// session. All referenced entities are embedded as snapshots taken at
// confirmation time.
type Order struct {
	ID          string `bson:"id" json:"id"`
	OrderNumber string `bson:"order_number" json:"orderNumber"`
	AccountID   string `bson:"account_id" json:"accountId"`
	MerchantID  string `bson:"merchant_id" json:"merchantId"`

	Patient  Patient     `bson:"patient" json:"patient"`
	Location Location    `bson:"location" json:"location"`
	Items    []OrderItem `bson:"items" json:"items"`

	Date     string `bson:"date,omitempty" json:"date,omitempty"`
	TimeSlot string `bson:"time_slot,omitempty" json:"timeSlot,omitempty"`

	TotalCents    int64  `bson:"total_cents" json:"totalCents"`
	PaymentStatus string `bson:"payment_status" json:"paymentStatus"`
	InvoiceID     string `bson:"invoice_id,omitempty" json:"invoiceId,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
