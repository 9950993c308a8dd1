package get_stylist_slots

import (
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.StylistID == "" {
		return fmt.Errorf("%w: stylistId is required", ErrInvalidInput)
	}

	// Для any_available нет собственного расписания
	if req.StylistID == domain.AnyAvailableStylistID {
		return fmt.Errorf("%w: stylistId must reference a concrete stylist", ErrInvalidInput)
	}

	if req.BranchID == "" {
		return fmt.Errorf("%w: branchId is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом
func validateDate(date types.Date, today types.Date) error {
	if date.Before(today) {
		return fmt.Errorf("%w: %s is in the past", ErrInvalidDate, date)
	}
	return nil
}
