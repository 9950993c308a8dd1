package get_stylist_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/engine/availability"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// UseCase use case для получения свободных слотов мастера.
// Занятость мастера учитывается во всех филиалах, часы работы берутся у выбранного.
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

// Execute выполняет use case получения свободных слотов мастера
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetStylistSlots: stylist=%s, branch=%s, date=%s", req.StylistID, req.BranchID, req.Date)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetStylistSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не должна быть в прошлом
	if err := validateDate(req.Date, types.DateFromTime(uc.timeProvider.Now())); err != nil {
		uc.logger.Warn("GetStylistSlots: %v", err)
		return nil, err
	}

	// 3. Получаем настройки филиала
	settings, err := uc.settings.GetSettings(ctx, req.BranchID)
	if err != nil {
		uc.logger.Error("GetStylistSlots: failed to get settings for branch=%s: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	// 4. Получаем записи мастера на дату во всех филиалах
	existing, err := uc.appointmentRepo.ListByStylistAndDate(ctx, req.StylistID, req.Date)
	if err != nil {
		uc.logger.Error("GetStylistSlots: failed to list appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	// 5. Считаем свободные слоты
	duration := settings.EffectiveSlotDuration()
	slots := uc.calculator.StylistAvailableSlots(
		existing,
		req.StylistID,
		req.Date,
		settings.OperatingHours,
		req.ExcludeAppointmentID,
		duration,
	)

	uc.logger.Info("GetStylistSlots: stylist=%s, date=%s, %d free slots", req.StylistID, req.Date, len(slots))

	return &Response{
		StylistID:           req.StylistID,
		BranchID:            req.BranchID,
		Date:                req.Date,
		SlotDurationMinutes: duration,
		Slots:               slots,
	}, nil
}
