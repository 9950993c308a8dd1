package create_appointment

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// validateRequest проверяет поля, которые не относятся к доступности слота.
// Филиал, дата, время и мастера проверяются валидатором записи.
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.ClientName) == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}

	if len(req.ServiceStylistPairs) > domain.MaxServicesPerAppointment {
		return fmt.Errorf("%w: at most %d services per appointment", ErrInvalidInput, domain.MaxServicesPerAppointment)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
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
