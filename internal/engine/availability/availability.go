// Package availability combines the schedule calculator with the conflict detector
// to list the slots a client can still book.
package availability

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/engine/conflict"
	"github.com/m04kA/SMC-SalonBooking/internal/engine/schedule"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Calculator computes free slots under the detector's status policy
type Calculator struct {
	detector *conflict.Detector
}

// NewCalculator creates a calculator. A nil detector means the default policy.
func NewCalculator(detector *conflict.Detector) *Calculator {
	if detector == nil {
		detector = conflict.NewDetector(conflict.DefaultPolicy())
	}
	return &Calculator{detector: detector}
}

// AvailableTimeSlots returns the free slots of a branch day in chronological order.
// stylistID and excludeAppointmentID are passed to the detector unchanged.
func (c *Calculator) AvailableTimeSlots(
	existing []domain.Appointment,
	hours domain.OperatingHours,
	branchID string,
	date types.Date,
	stylistID *string,
	excludeAppointmentID *string,
	slotDurationMinutes int,
) []types.TimeString {
	return c.freeSlots(existing, hours, &branchID, date, stylistID, excludeAppointmentID, slotDurationMinutes)
}

// StylistAvailableSlots returns the free slots of one stylist regardless of branch
func (c *Calculator) StylistAvailableSlots(
	existing []domain.Appointment,
	stylistID string,
	date types.Date,
	hours domain.OperatingHours,
	excludeAppointmentID *string,
	slotDurationMinutes int,
) []types.TimeString {
	return c.freeSlots(existing, hours, nil, date, &stylistID, excludeAppointmentID, slotDurationMinutes)
}

// IsStylistAvailable checks a single slot for a stylist across all branches
func (c *Calculator) IsStylistAvailable(
	existing []domain.Appointment,
	stylistID string,
	date types.Date,
	t types.TimeString,
	excludeAppointmentID *string,
) bool {
	return c.detector.IsStylistAvailable(existing, stylistID, date, t, excludeAppointmentID)
}

func (c *Calculator) freeSlots(
	existing []domain.Appointment,
	hours domain.OperatingHours,
	branchID *string,
	date types.Date,
	stylistID *string,
	excludeAppointmentID *string,
	slotDurationMinutes int,
) []types.TimeString {
	free := make([]types.TimeString, 0)

	day := schedule.ForDate(hours, date)
	if day == nil || !day.IsOpen {
		return free
	}

	for _, slot := range schedule.EnumerateSlots(day, slotDurationMinutes) {
		result := c.detector.Check(existing, conflict.Query{
			BranchID:             branchID,
			Date:                 date,
			Time:                 slot,
			StylistID:            stylistID,
			ExcludeAppointmentID: excludeAppointmentID,
		})
		if !result.HasConflict {
			free = append(free, slot)
		}
	}

	return free
}

var defaultCalculator = NewCalculator(nil)

// GetAvailableTimeSlots runs Calculator.AvailableTimeSlots with the default policy
func GetAvailableTimeSlots(
	existing []domain.Appointment,
	hours domain.OperatingHours,
	branchID string,
	date types.Date,
	stylistID *string,
	excludeAppointmentID *string,
	slotDurationMinutes int,
) []types.TimeString {
	return defaultCalculator.AvailableTimeSlots(existing, hours, branchID, date, stylistID, excludeAppointmentID, slotDurationMinutes)
}

// GetStylistAvailableSlots runs Calculator.StylistAvailableSlots with the default policy
func GetStylistAvailableSlots(
	existing []domain.Appointment,
	stylistID string,
	date types.Date,
	hours domain.OperatingHours,
	excludeAppointmentID *string,
	slotDurationMinutes int,
) []types.TimeString {
	return defaultCalculator.StylistAvailableSlots(existing, stylistID, date, hours, excludeAppointmentID, slotDurationMinutes)
}

// IsStylistAvailable runs Calculator.IsStylistAvailable with the default policy
func IsStylistAvailable(
	existing []domain.Appointment,
	stylistID string,
	date types.Date,
	t types.TimeString,
	excludeAppointmentID *string,
) bool {
	return defaultCalculator.IsStylistAvailable(existing, stylistID, date, t, excludeAppointmentID)
}
