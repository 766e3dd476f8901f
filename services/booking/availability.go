package booking

import (
	"time"

	"labbook/models"
)

// DateLayout is the wire format for booking dates.
const DateLayout = "2006-01-02"

// IsDateAvailable reports whether a candidate date is selectable under the
// policy: its calendar day must be at or after the day reached by adding the
// advance-notice window to now, and its weekday must be allowed.
// MinAdvanceHours of zero permits same-day booking on a matching weekday.
func IsDateAvailable(policy models.SchedulingPolicy, now, date time.Time) bool {
	if !policy.AllowsWeekday(date.Weekday()) {
		return false
	}
	earliest := truncateToDay(now.Add(time.Duration(policy.MinAdvanceHours) * time.Hour))
	return !truncateToDay(date).Before(earliest)
}

// SlotsFor returns the policy's ordered time slots for a date. Slots are not
// filtered per date; per-slot capacity is not tracked here.
func SlotsFor(policy models.SchedulingPolicy, _ time.Time) []string {
	slots := make([]string, len(policy.AvailableSlots))
	copy(slots, policy.AvailableSlots)
	return slots
}

// AvailableDates enumerates the selectable dates within horizonDays of now.
// An empty result means the location currently has no availability; callers
// render that state instead of treating it as an error.
func AvailableDates(policy models.SchedulingPolicy, now time.Time, horizonDays int) []string {
	if len(policy.AvailableWeekdays) == 0 || len(policy.AvailableSlots) == 0 {
		return nil
	}
	var dates []string
	day := truncateToDay(now)
	for i := 0; i < horizonDays; i++ {
		d := day.AddDate(0, 0, i)
		if IsDateAvailable(policy, now, d) {
			dates = append(dates, d.Format(DateLayout))
		}
	}
	return dates
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
