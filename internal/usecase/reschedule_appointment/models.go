package reschedule_appointment

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса на перенос записи
type Request struct {
	AppointmentID       string
	Date                types.Date
	Time                types.TimeString
	ServiceStylistPairs []domain.ServiceStylistPair // nil оставляет текущие пары
}

// Response модель ответа с перенесенной записью
type Response struct {
	Appointment *domain.Appointment
	Warnings    []string
}
