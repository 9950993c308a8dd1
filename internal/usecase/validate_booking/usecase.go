package validate_booking

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/engine/validation"
	"github.com/m04kA/SMC-SalonBooking/pkg/tracing"
)

const metricsOperation = "validate"

// UseCase use case для проверки записи без сохранения
type UseCase struct {
	appointmentRepo AppointmentRepository
	settings        SettingsProvider
	validator       *validation.Validator
	names           NameResolver
	metrics         ValidationMetrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case. metrics может быть nil.
func NewUseCase(
	appointmentRepo AppointmentRepository,
	settings SettingsProvider,
	validator *validation.Validator,
	names NameResolver,
	metrics ValidationMetrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		settings:        settings,
		validator:       validator,
		names:           names,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет проверку. Все ошибки собираются в результат, ошибка возвращается только при сбое хранилища.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	ctx, span := tracing.Start(ctx, "ValidateBooking")
	defer span.End()

	uc.logger.Info("ValidateBooking: branch=%s, date=%s, time=%s, services=%d",
		req.BranchID, req.Date, req.Time, len(req.ServiceStylistPairs))

	// 1. Подставляем имена мастеров
	candidate := domain.BookingCandidate{
		BranchID:            req.BranchID,
		AppointmentDate:     req.Date,
		AppointmentTime:     req.Time,
		ServiceStylistPairs: uc.names.Resolve(ctx, req.ServiceStylistPairs),
	}

	// 2. Без филиала и даты нечего загружать: валидатор сообщит о незаполненных полях
	settings := domain.DefaultBranchSettings(req.BranchID)
	existing := make([]domain.Appointment, 0)

	if req.BranchID != "" && !req.Date.IsZero() {
		loaded, err := uc.settings.GetSettings(ctx, req.BranchID)
		if err != nil {
			uc.logger.Error("ValidateBooking: failed to get settings for branch=%s: %v", req.BranchID, err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		settings = loaded

		existing, err = uc.appointmentRepo.ListByBranchAndDate(ctx, req.BranchID, req.Date, false)
		if err != nil {
			uc.logger.Error("ValidateBooking: failed to list appointments: %v", err)
			return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
		}
	}

	// 3. Проверяем
	result := uc.validator.Booking(
		candidate,
		settings.OperatingHours,
		existing,
		req.ExcludeAppointmentID,
		settings.EffectiveSlotDuration(),
	)

	if uc.metrics != nil {
		uc.metrics.ObserveValidation(metricsOperation, result.IsValid)
	}

	if result.IsValid {
		uc.logger.Info("ValidateBooking: branch=%s, %s %s is valid", req.BranchID, req.Date, req.Time)
	} else {
		uc.logger.Info("ValidateBooking: branch=%s, %s %s rejected: %d errors", req.BranchID, req.Date, req.Time, len(result.Errors))
	}

	return &Response{Result: result}, nil
}
