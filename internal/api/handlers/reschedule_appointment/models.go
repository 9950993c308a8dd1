package reschedule_appointment

import (
	"github.com/m04kA/SMC-SalonBooking/internal/service/appointments/models"
	rescheduleAppointment "github.com/m04kA/SMC-SalonBooking/internal/usecase/reschedule_appointment"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	AppointmentDate     string                       `json:"appointmentDate"`
	AppointmentTime     string                       `json:"appointmentTime"`
	ServiceStylistPairs []models.ServicePairResponse `json:"serviceStylistPairs,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(appointmentID string) (*rescheduleAppointment.Request, error) {
	req := &rescheduleAppointment.Request{AppointmentID: appointmentID}

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

	// Пары передаются только при смене состава услуг
	if r.ServiceStylistPairs != nil {
		req.ServiceStylistPairs = models.ToDomainPairs(r.ServiceStylistPairs)
	}

	return req, nil
}
