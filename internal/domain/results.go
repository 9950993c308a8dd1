package domain

import (
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// ConflictResult output of the conflict detector
type ConflictResult struct {
	HasConflict   bool
	Conflicts     []Appointment
	ConflictCount int
}

// ValidationResult output of the booking validator.
// Errors are user-displayable and collected, never short-circuited.
type ValidationResult struct {
	IsValid   bool
	Errors    []string
	Warnings  []string
	Conflicts []Appointment
}

// SlotBookedMessage error text for a slot held by another active appointment
func SlotBookedMessage(t types.TimeString) string {
	return fmt.Sprintf("Time slot %s is already booked", t)
}

// NewSlotTakenResult verdict for a slot lost to a concurrent booking after validation passed
func NewSlotTakenResult(t types.TimeString) ValidationResult {
	return ValidationResult{
		IsValid:   false,
		Errors:    []string{SlotBookedMessage(t)},
		Warnings:  make([]string, 0),
		Conflicts: make([]Appointment, 0),
	}
}

// BookingRejectedError carries the verdict of a booking the validator refused
type BookingRejectedError struct {
	Result ValidationResult
}

func (e *BookingRejectedError) Error() string {
	if len(e.Result.Errors) == 0 {
		return ErrBookingRejected.Error()
	}
	return ErrBookingRejected.Error() + ": " + e.Result.Errors[0]
}

func (e *BookingRejectedError) Unwrap() error {
	return ErrBookingRejected
}
