package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/engine/availability"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// UseCase use case для получения свободных слотов филиала
type UseCase struct {
	appointmentRepo AppointmentRepository
	settings        SettingsProvider
	calculator      *availability.Calculator
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	settings SettingsProvider,
	calculator *availability.Calculator,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		settings:        settings,
		calculator:      calculator,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: branch=%s, date=%s, stylist=%s",
		req.BranchID, req.Date, ptr.Deref(req.StylistID, "-"))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не должна быть в прошлом
	if err := validateDate(req.Date, types.DateFromTime(uc.timeProvider.Now())); err != nil {
		uc.logger.Warn("GetAvailableSlots: %v", err)
		return nil, err
	}

	// 3. Получаем настройки филиала
	settings, err := uc.settings.GetSettings(ctx, req.BranchID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get settings for branch=%s: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	// 4. Получаем записи филиала на дату
	existing, err := uc.appointmentRepo.ListByBranchAndDate(ctx, req.BranchID, req.Date, false)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	// 5. Считаем свободные слоты
	duration := settings.EffectiveSlotDuration()
	slots := uc.calculator.AvailableTimeSlots(
		existing,
		settings.OperatingHours,
		req.BranchID,
		req.Date,
		req.StylistID,
		req.ExcludeAppointmentID,
		duration,
	)

	uc.logger.Info("GetAvailableSlots: branch=%s, date=%s, %d free slots", req.BranchID, req.Date, len(slots))

	return &Response{
		BranchID:            req.BranchID,
		Date:                req.Date,
		SlotDurationMinutes: duration,
		Slots:               slots,
	}, nil
}
