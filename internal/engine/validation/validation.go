// Package validation produces a complete, user-displayable verdict for a booking candidate.
//
// Every check runs and every problem is reported; validation never stops at the first error.
package validation

import (
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/engine/conflict"
	"github.com/m04kA/SMC-SalonBooking/internal/engine/schedule"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Validator runs booking checks under the detector's status policy
type Validator struct {
	detector *conflict.Detector
}

// NewValidator creates a validator. A nil detector means the default policy.
func NewValidator(detector *conflict.Detector) *Validator {
	if detector == nil {
		detector = conflict.NewDetector(conflict.DefaultPolicy())
	}
	return &Validator{detector: detector}
}

// AppointmentBooking checks the candidate slot against existing appointments.
//
// The branch-level conflict list goes to Conflicts. Each stylist pair with a conflict adds its
// own error, duplicates included.
func (v *Validator) AppointmentBooking(
	candidate domain.BookingCandidate,
	existing []domain.Appointment,
	excludeAppointmentID *string,
) domain.ValidationResult {
	errs := make([]string, 0)

	branchID := candidate.BranchID
	slot := v.detector.Check(existing, conflict.Query{
		BranchID:             &branchID,
		Date:                 candidate.AppointmentDate,
		Time:                 candidate.AppointmentTime,
		ExcludeAppointmentID: excludeAppointmentID,
	})
	if slot.HasConflict {
		errs = append(errs, domain.SlotBookedMessage(candidate.AppointmentTime))
	}

	for _, pair := range candidate.ServiceStylistPairs {
		if pair.StylistID == "" {
			continue
		}
		stylistID := pair.StylistID
		result := v.detector.Check(existing, conflict.Query{
			BranchID:             &branchID,
			Date:                 candidate.AppointmentDate,
			Time:                 candidate.AppointmentTime,
			StylistID:            &stylistID,
			ExcludeAppointmentID: excludeAppointmentID,
		})
		if result.HasConflict {
			errs = append(errs, fmt.Sprintf("Stylist %s is not available at %s", pair.DisplayName(), candidate.AppointmentTime))
		}
	}

	return domain.ValidationResult{
		IsValid:   len(errs) == 0,
		Errors:    errs,
		Warnings:  make([]string, 0),
		Conflicts: slot.Conflicts,
	}
}

// Booking runs required fields, operating hours and conflict checks and merges their errors
func (v *Validator) Booking(
	candidate domain.BookingCandidate,
	hours domain.OperatingHours,
	existing []domain.Appointment,
	excludeAppointmentID *string,
	slotDurationMinutes int,
) domain.ValidationResult {
	errs := ValidateRequiredFields(candidate)

	if !candidate.AppointmentDate.IsZero() && !candidate.AppointmentTime.IsZero() {
		errs = append(errs, ValidateAppointmentTime(hours, candidate.AppointmentDate, candidate.AppointmentTime, slotDurationMinutes)...)
	}

	booking := v.AppointmentBooking(candidate, existing, excludeAppointmentID)
	errs = append(errs, booking.Errors...)

	return domain.ValidationResult{
		IsValid:   len(errs) == 0,
		Errors:    errs,
		Warnings:  booking.Warnings,
		Conflicts: booking.Conflicts,
	}
}

// ValidateRequiredFields reports missing candidate fields
func ValidateRequiredFields(candidate domain.BookingCandidate) []string {
	errs := make([]string, 0)

	if candidate.BranchID == "" {
		errs = append(errs, "Branch is required")
	}
	if len(candidate.ServiceStylistPairs) == 0 {
		errs = append(errs, "At least one service is required")
	}
	for _, pair := range candidate.ServiceStylistPairs {
		if pair.Assignment() == domain.StylistUnassigned {
			errs = append(errs, fmt.Sprintf("Service %s has no stylist assigned", pair.ServiceID))
		}
	}
	if candidate.AppointmentDate.IsZero() {
		errs = append(errs, "Appointment date is required")
	}
	if candidate.AppointmentTime.IsZero() {
		errs = append(errs, "Appointment time is required")
	}

	return errs
}

// ValidateAppointmentTime checks that t is a bookable slot start within the branch hours of date
func ValidateAppointmentTime(
	hours domain.OperatingHours,
	date types.Date,
	t types.TimeString,
	slotDurationMinutes int,
) []string {
	errs := make([]string, 0)

	day := schedule.ForDate(hours, date)
	if day == nil || !day.IsOpen {
		return append(errs, fmt.Sprintf("Branch is closed on %s", schedule.DayOfWeek(date)))
	}

	if slotDurationMinutes <= 0 {
		slotDurationMinutes = domain.DefaultSlotDurationMinutes
	}

	open, openErr := types.NewTimeStringFromString(day.Open)
	closeTime, closeErr := types.NewTimeStringFromString(day.Close)
	if openErr != nil || closeErr != nil || t.Minutes() < 0 ||
		t.IsBefore(open) || !t.IsBefore(closeTime) {
		return append(errs, fmt.Sprintf("Time %s is outside operating hours (%s-%s)", t, day.Open, day.Close))
	}

	if !schedule.IsSlotStart(day, slotDurationMinutes, t) {
		errs = append(errs, fmt.Sprintf("Time %s is not aligned to %d-minute slots", t, slotDurationMinutes))
	}

	return errs
}

var defaultValidator = NewValidator(nil)

// ValidateAppointmentBooking runs Validator.AppointmentBooking with the default policy
func ValidateAppointmentBooking(
	candidate domain.BookingCandidate,
	existing []domain.Appointment,
	excludeAppointmentID *string,
) domain.ValidationResult {
	return defaultValidator.AppointmentBooking(candidate, existing, excludeAppointmentID)
}

// ValidateBooking runs Validator.Booking with the default policy
func ValidateBooking(
	candidate domain.BookingCandidate,
	hours domain.OperatingHours,
	existing []domain.Appointment,
	excludeAppointmentID *string,
	slotDurationMinutes int,
) domain.ValidationResult {
	return defaultValidator.Booking(candidate, hours, existing, excludeAppointmentID, slotDurationMinutes)
}
