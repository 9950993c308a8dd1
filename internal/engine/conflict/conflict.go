// Package conflict detects whether a candidate slot is already occupied by an active appointment.
//
// Detection works on a point-in-time snapshot supplied by the caller and holds no state.
// It is advisory: the at-most-one-booking-per-slot guarantee lives in the storage layer.
package conflict

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Query candidate slot to check.
// BranchID nil disables the branch filter (stylists are unique across branches).
// StylistID nil disables the stylist filter.
type Query struct {
	BranchID             *string
	Date                 types.Date
	Time                 types.TimeString
	StylistID            *string
	ExcludeAppointmentID *string
}

// Detector runs conflict checks under a status policy
type Detector struct {
	policy Policy
}

// NewDetector creates a detector with the given policy
func NewDetector(policy Policy) *Detector {
	return &Detector{policy: policy}
}

// Policy returns the detector's status policy
func (d *Detector) Policy() Policy {
	return d.policy
}

// Check returns every active appointment occupying the queried slot, in input order
func (d *Detector) Check(existing []domain.Appointment, q Query) domain.ConflictResult {
	conflicts := make([]domain.Appointment, 0)

	for i := range existing {
		if d.matches(&existing[i], q) {
			conflicts = append(conflicts, existing[i])
		}
	}

	return domain.ConflictResult{
		HasConflict:   len(conflicts) > 0,
		Conflicts:     conflicts,
		ConflictCount: len(conflicts),
	}
}

// IsStylistAvailable checks a stylist across all branches
func (d *Detector) IsStylistAvailable(
	existing []domain.Appointment,
	stylistID string,
	date types.Date,
	t types.TimeString,
	excludeAppointmentID *string,
) bool {
	result := d.Check(existing, Query{
		Date:                 date,
		Time:                 t,
		StylistID:            &stylistID,
		ExcludeAppointmentID: excludeAppointmentID,
	})
	return !result.HasConflict
}

func (d *Detector) matches(a *domain.Appointment, q Query) bool {
	if q.ExcludeAppointmentID != nil && a.ID == *q.ExcludeAppointmentID {
		return false
	}
	if q.BranchID != nil && a.BranchID != *q.BranchID {
		return false
	}
	if !a.AppointmentDate.Equal(q.Date) {
		return false
	}
	if !a.AppointmentTime.Equal(q.Time) {
		return false
	}
	// any_available сравнивается как обычный id мастера
	if q.StylistID != nil && !a.HasStylist(*q.StylistID) {
		return false
	}
	return d.policy.IsActive(a.Status)
}

var defaultDetector = NewDetector(DefaultPolicy())

// CheckTimeSlotConflict runs Check with the default policy
func CheckTimeSlotConflict(existing []domain.Appointment, q Query) domain.ConflictResult {
	return defaultDetector.Check(existing, q)
}

// IsStylistAvailable runs Detector.IsStylistAvailable with the default policy
func IsStylistAvailable(
	existing []domain.Appointment,
	stylistID string,
	date types.Date,
	t types.TimeString,
	excludeAppointmentID *string,
) bool {
	return defaultDetector.IsStylistAvailable(existing, stylistID, date, t, excludeAppointmentID)
}
