package models

import "time"

// BookingStep is one state of the linear booking wizard.
type BookingStep string

const (
	StepServiceSelection  BookingStep = "service_selection"
	StepPatientSelection  BookingStep = "patient_selection"
	StepLocationSelection BookingStep = "location_selection"
	StepScheduling        BookingStep = "scheduling"
	StepPayment           BookingStep = "payment"
	StepConfirmed         BookingStep = "confirmed"
)

// SessionItem is a service snapshot taken at selection time. The price is
// frozen here so a catalogue update mid-session cannot change the total.
type SessionItem struct {
	ServiceID  string `bson:"service_id" json:"serviceId"`
	Name       string `bson:"name" json:"name"`
	PriceCents int64  `bson:"price_cents" json:"priceCents"`
}

// BookingSession is the in-progress aggregate accumulated across wizard
// steps. It lives as a JSON blob in Redis for the duration of the flow and
// is owned by exactly one interactive user; it is discarded on abandonment
// or superseded by an Order on successful confirmation.
type BookingSession struct {
	SessionID  string      `json:"sessionId"`
	AccountID  string      `json:"accountId"`
	MerchantID string      `json:"merchantId"`
	Step       BookingStep `json:"step"`

	Items    []SessionItem `json:"items,omitempty"`
	Patient  *Patient      `json:"patient,omitempty"`
	Location *Location     `json:"location,omitempty"`

	Date     string `json:"date,omitempty"` // "2006-01-02"
	TimeSlot string `json:"timeSlot,omitempty"`

	PlatformFeeCents int64 `json:"platformFeeCents"`
	TotalCents       int64 `json:"totalCents"`

	OrderNumber    string    `json:"orderNumber,omitempty"`
	FailedAttempts int       `json:"failedAttempts,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ServiceIDs returns the ids of the currently selected services.
func (s *BookingSession) ServiceIDs() []string {
	ids := make([]string, 0, len(s.Items))
	for _, it := range s.Items {
		ids = append(ids, it.ServiceID)
	}
	return ids
}

// RequiresScheduling reports whether the selected location demands a
// date/time choice. False until a location is selected.
func (s *BookingSession) RequiresScheduling() bool {
	return s.Location != nil && s.Location.Policy.RequiresScheduling
}
