// Package schedule enumerates the bookable slots of a day from branch operating hours.
// It knows nothing about existing appointments.
package schedule

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// EnumerateSlots returns the ordered slot start times of a day.
//
// Slots start at open and step by slotDurationMinutes while the start is strictly before
// close, so a slot starting at close is never emitted but the last slot may end after it.
// A nil, closed or malformed day yields an empty slice.
func EnumerateSlots(day *domain.DaySchedule, slotDurationMinutes int) []types.TimeString {
	slots := make([]types.TimeString, 0)

	if slotDurationMinutes <= 0 {
		slotDurationMinutes = domain.DefaultSlotDurationMinutes
	}
	if day == nil || !day.IsOpen {
		return slots
	}

	open, err := types.NewTimeStringFromString(day.Open)
	if err != nil {
		return slots
	}
	closeTime, err := types.NewTimeStringFromString(day.Close)
	if err != nil {
		return slots
	}

	for m := open.Minutes(); m < closeTime.Minutes(); m += slotDurationMinutes {
		slots = append(slots, types.TimeStringFromMinutes(m))
	}

	return slots
}

// DayOfWeek maps a calendar date to its lowercase weekday name (Sunday = 0)
func DayOfWeek(date types.Date) string {
	return domain.DayOfWeekName(date)
}

// ForDate looks up the schedule for the weekday of date
func ForDate(hours domain.OperatingHours, date types.Date) *domain.DaySchedule {
	return hours.ForDate(date)
}

// IsSlotStart reports whether t is one of the enumerated slots of the day
func IsSlotStart(day *domain.DaySchedule, slotDurationMinutes int, t types.TimeString) bool {
	for _, slot := range EnumerateSlots(day, slotDurationMinutes) {
		if slot.Equal(t) {
			return true
		}
	}
	return false
}
