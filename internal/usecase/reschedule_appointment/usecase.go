package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/engine/validation"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/events"
	appointmentRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonBooking/pkg/tracing"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

const metricsOperation = "reschedule"

// UseCase use case для переноса записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	settings        SettingsProvider
	validator       *validation.Validator
	names           NameResolver
	publisher       EventPublisher
	metrics         ValidationMetrics
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	settings SettingsProvider,
	validator *validation.Validator,
	names NameResolver,
	publisher EventPublisher,
	metrics ValidationMetrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		settings:        settings,
		validator:       validator,
		names:           names,
		publisher:       publisher,
		metrics:         metrics,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет перенос. Сама запись исключается из проверки конфликтов.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	ctx, span := tracing.Start(ctx, "RescheduleAppointment")
	defer span.End()

	uc.logger.Info("RescheduleAppointment: id=%s, date=%s, time=%s", req.AppointmentID, req.Date, req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не должна быть в прошлом
	if err := validateDate(req.Date, types.DateFromTime(uc.timeProvider.Now())); err != nil {
		uc.logger.Warn("RescheduleAppointment: %v", err)
		return nil, err
	}

	// 3. Получаем запись и проверяем статус
	current, err := uc.getAppointment(ctx, req.AppointmentID)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(current); err != nil {
		uc.logger.Warn("RescheduleAppointment: id=%s has status=%s", current.ID, current.Status)
		return nil, err
	}

	// 4. Имена мастеров и настройки филиала запрашиваются вне транзакции
	var pairs []domain.ServiceStylistPair
	if req.ServiceStylistPairs != nil {
		pairs = uc.names.Resolve(ctx, req.ServiceStylistPairs)
	}

	settings, err := uc.settings.GetSettings(ctx, current.BranchID)
	if err != nil {
		uc.logger.Error("RescheduleAppointment: failed to get settings for branch=%s: %v", current.BranchID, err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	var (
		updated *domain.Appointment
		result  domain.ValidationResult
	)

	// 5. Проверка и перенос в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Перечитываем запись: статус мог измениться
		locked, err := uc.getAppointment(txCtx, current.ID)
		if err != nil {
			return err
		}
		if err := checkStatus(locked); err != nil {
			uc.logger.Warn("RescheduleAppointment: id=%s has status=%s", locked.ID, locked.Status)
			return err
		}

		// 5.2. Собираем кандидата
		schedule := pairs
		if schedule == nil {
			schedule = locked.ServiceStylistPairs
		}
		candidate := domain.BookingCandidate{
			BranchID:            locked.BranchID,
			AppointmentDate:     req.Date,
			AppointmentTime:     req.Time,
			ServiceStylistPairs: schedule,
		}

		// 5.3. Снимок записей на новую дату с блокировкой (FOR UPDATE)
		existing := make([]domain.Appointment, 0)
		if !req.Date.IsZero() {
			existing, err = uc.appointmentRepo.ListByBranchAndDate(txCtx, locked.BranchID, req.Date, false)
			if err != nil {
				uc.logger.Error("RescheduleAppointment: failed to list appointments: %v", err)
				return fmt.Errorf("%w: failed to list appointments: %w", ErrInternal, err)
			}
		}

		// 5.4. Проверяем без учета самой записи
		excludeID := locked.ID
		result = uc.validator.Booking(candidate, settings.OperatingHours, existing, &excludeID, settings.EffectiveSlotDuration())
		if !result.IsValid {
			uc.logger.Warn("RescheduleAppointment: id=%s rejected: %v", locked.ID, result.Errors)
			return &domain.BookingRejectedError{Result: result}
		}

		// 5.5. Переносим
		if err := uc.appointmentRepo.UpdateSchedule(txCtx, locked.ID, req.Date, req.Time, schedule); err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotNotAvailable) {
				uc.logger.Warn("RescheduleAppointment: slot %s %s taken concurrently", req.Date, req.Time)
				return &domain.BookingRejectedError{Result: domain.NewSlotTakenResult(req.Time)}
			}
			uc.logger.Error("RescheduleAppointment: failed to update id=%s: %v", locked.ID, err)
			return fmt.Errorf("%w: failed to update appointment: %w", ErrInternal, err)
		}

		updated, err = uc.getAppointment(txCtx, locked.ID)
		return err
	})

	// 6. Конкурентная транзакция заняла слот и после повтора
	if txmanager.IsSerializationFailure(err) {
		uc.logger.Warn("RescheduleAppointment: slot %s %s lost to concurrent transaction: %v", req.Date, req.Time, err)
		err = &domain.BookingRejectedError{Result: domain.NewSlotTakenResult(req.Time)}
	}

	if uc.metrics != nil && (err == nil || errors.Is(err, domain.ErrBookingRejected)) {
		uc.metrics.ObserveValidation(metricsOperation, err == nil)
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleAppointment: successfully moved id=%s to %s %s", updated.ID, updated.AppointmentDate, updated.AppointmentTime)

	// 7. Публикуем событие после коммита
	if err := uc.publisher.Publish(ctx, events.NewEvent(events.TypeAppointmentRescheduled, updated)); err != nil {
		uc.logger.Error("RescheduleAppointment: failed to publish event for id=%s: %v", updated.ID, err)
	}

	return &Response{
		Appointment: updated,
		Warnings:    result.Warnings,
	}, nil
}

// getAppointment загружает запись и переводит ошибки репозитория
func (uc *UseCase) getAppointment(ctx context.Context, id string) (*domain.Appointment, error) {
	appointment, err := uc.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("RescheduleAppointment: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("RescheduleAppointment: failed to get appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
	}
	return appointment, nil
}

func checkStatus(a *domain.Appointment) error {
	if !a.CanBeRescheduled() {
		return fmt.Errorf("%w: status %s", ErrInvalidStatus, a.Status)
	}
	return nil
}
