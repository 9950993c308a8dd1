package get_stylist_slots

import (
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса на получение свободных слотов мастера
type Request struct {
	StylistID            string     // ID мастера
	BranchID             string     // Филиал, часы работы которого используются
	Date                 types.Date // Дата
	ExcludeAppointmentID *string    // Не учитывать запись (при переносе)
}

// Response модель ответа со свободными слотами мастера
type Response struct {
	StylistID           string
	BranchID            string
	Date                types.Date
	SlotDurationMinutes int
	Slots               []types.TimeString
}
