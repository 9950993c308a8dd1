package create_appointment

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	BranchID            string
	ClientName          string
	ClientPhone         *string
	Date                types.Date
	Time                types.TimeString
	ServiceStylistPairs []domain.ServiceStylistPair
	Notes               *string
}

// Response модель ответа с созданной записью
type Response struct {
	Appointment *domain.Appointment
	Warnings    []string
}
