package validate_booking

import (
	"github.com/m04kA/SMC-SalonBooking/internal/service/appointments/models"
	validateBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/validate_booking"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// ValidateBookingRequest HTTP request model
type ValidateBookingRequest struct {
	BranchID             string                       `json:"branchId"`
	AppointmentDate      string                       `json:"appointmentDate"` // "2024-01-15"
	AppointmentTime      string                       `json:"appointmentTime"` // "10:00"
	ServiceStylistPairs  []models.ServicePairResponse `json:"serviceStylistPairs"`
	ExcludeAppointmentID *string                      `json:"excludeAppointmentId,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Пустые дата и время допустимы: о них сообщит валидатор.
func (r *ValidateBookingRequest) ToUseCaseRequest() (*validateBooking.Request, error) {
	req := &validateBooking.Request{
		BranchID:             r.BranchID,
		ServiceStylistPairs:  models.ToDomainPairs(r.ServiceStylistPairs),
		ExcludeAppointmentID: r.ExcludeAppointmentID,
	}

	if r.AppointmentDate != "" {
		date, err := types.ParseDate(r.AppointmentDate)
		if err != nil {
			return nil, err
		}
		req.Date = date
	}

	if r.AppointmentTime != "" {
		t, err := types.NewTimeStringFromString(r.AppointmentTime)
		if err != nil {
			return nil, err
		}
		req.Time = t
	}

	return req, nil
}
