package reschedule_appointment

import (
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID == "" {
		return fmt.Errorf("%w: appointmentId is required", ErrInvalidInput)
	}

	if len(req.ServiceStylistPairs) > domain.MaxServicesPerAppointment {
		return fmt.Errorf("%w: at most %d services per appointment", ErrInvalidInput, domain.MaxServicesPerAppointment)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом
func validateDate(date types.Date, today types.Date) error {
	if !date.IsZero() && date.Before(today) {
		return fmt.Errorf("%w: %s is in the past", ErrInvalidDate, date)
	}
	return nil
}
