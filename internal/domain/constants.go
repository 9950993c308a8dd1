package domain

import "errors"

// Default configuration values
const (
	DefaultSlotDurationMinutes = 30
)

// AnyAvailableStylistID sentinel stylist id meaning "no specific stylist required"
const AnyAvailableStylistID = "any_available"

// Business validation constants
const (
	MinSlotDurationMinutes      = 5
	MaxSlotDurationMinutes      = 480 // 8 hours
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxServicesPerAppointment   = 20
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses statuses that occupy a slot in the conflict engine
var ActiveStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusInService,
}

// InactiveStatuses statuses that never conflict
var InactiveStatuses = []AppointmentStatus{
	StatusCompleted,
	StatusCancelled,
}

var (
	// ErrUnknownStatus возвращается для статуса вне AllStatuses
	ErrUnknownStatus = errors.New("domain: unknown appointment status")

	// ErrInvalidDaySchedule возвращается для некорректных часов работы
	ErrInvalidDaySchedule = errors.New("domain: invalid day schedule")

	// ErrBookingRejected возвращается, когда запись не прошла проверку доступности
	ErrBookingRejected = errors.New("domain: booking rejected")
)
