package create_appointment

import (
	"github.com/m04kA/SMC-SalonBooking/internal/service/appointments/models"
	createAppointment "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	BranchID            string                       `json:"branchId"`
	ClientName          string                       `json:"clientName"`
	ClientPhone         *string                      `json:"clientPhone,omitempty"`
	AppointmentDate     string                       `json:"appointmentDate"` // "2024-01-15"
	AppointmentTime     string                       `json:"appointmentTime"` // "10:00"
	ServiceStylistPairs []models.ServicePairResponse `json:"serviceStylistPairs"`
	Notes               *string                      `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом даты и времени)
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	req := &createAppointment.Request{
		BranchID:            r.BranchID,
		ClientName:          r.ClientName,
		ClientPhone:         r.ClientPhone,
		ServiceStylistPairs: models.ToDomainPairs(r.ServiceStylistPairs),
		Notes:               r.Notes,
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
