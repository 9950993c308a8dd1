package validate_booking

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса на проверку записи без сохранения
type Request struct {
	BranchID             string
	Date                 types.Date
	Time                 types.TimeString
	ServiceStylistPairs  []domain.ServiceStylistPair
	ExcludeAppointmentID *string // Проверка переноса существующей записи
}

// Response модель ответа с результатом проверки
type Response struct {
	Result domain.ValidationResult
}
