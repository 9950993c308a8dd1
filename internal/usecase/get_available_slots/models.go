package get_available_slots

import (
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса на получение свободных слотов филиала
type Request struct {
	BranchID             string     // ID филиала
	Date                 types.Date // Дата
	StylistID            *string    // Учитывать только записи мастера (опционально)
	ExcludeAppointmentID *string    // Не учитывать запись (при переносе)
}

// Response модель ответа со списком свободных слотов
type Response struct {
	BranchID            string
	Date                types.Date
	SlotDurationMinutes int
	Slots               []types.TimeString // Свободные слоты в хронологическом порядке
}
