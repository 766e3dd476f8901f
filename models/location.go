package models

import "time"

// SchedulingPolicy governs which dates and times are selectable at a location.
// When RequiresScheduling is false the booking flow skips date/time selection
// entirely and AvailableSlots only describe walk-in opening hours for display.
type SchedulingPolicy struct {
	RequiresScheduling bool           `bson:"requires_scheduling" json:"requiresScheduling"`
	AvailableWeekdays  []time.Weekday `bson:"available_weekdays" json:"availableWeekdays"`
	AvailableSlots     []string       `bson:"available_slots" json:"availableSlots"` // "HH:MM", ordered
	MinAdvanceHours    int            `bson:"min_advance_hours" json:"minAdvanceHours"`
}

// AllowsWeekday reports whether the policy permits bookings on the given weekday.
func (p SchedulingPolicy) AllowsWeekday(wd time.Weekday) bool {
	for _, w := range p.AvailableWeekdays {
		if w == wd {
			return true
		}
	}
	return false
}

// HasSlot reports whether the given "HH:MM" slot belongs to the policy.
func (p SchedulingPolicy) HasSlot(slot string) bool {
	for _, s := range p.AvailableSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// Address holds the street address of a service location.
type Address struct {
	Street   string `bson:"street" json:"street"`
	Number   string `bson:"number" json:"number"`
	District string `bson:"district,omitempty" json:"district,omitempty"`
	City     string `bson:"city" json:"city"`
	State    string `bson:"state" json:"state"`
	ZipCode  string `bson:"zip_code" json:"zipCode"`
}

// Location is a physical collection point where exams are performed.
// Read-only to the booking flow.
type Location struct {
	ID         string           `bson:"id" json:"id"`
	MerchantID string           `bson:"merchant_id" json:"merchantId"`
	Name       string           `bson:"name" json:"name"`
	Address    Address          `bson:"address" json:"address"`
	Active     bool             `bson:"active" json:"active"`
	Policy     SchedulingPolicy `bson:"policy" json:"policy"`
}
