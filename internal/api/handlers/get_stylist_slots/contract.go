package get_stylist_slots

import (
	"context"

	getStylistSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_stylist_slots"
)

type GetStylistSlotsUseCase interface {
	Execute(ctx context.Context, req *getStylistSlots.Request) (*getStylistSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
