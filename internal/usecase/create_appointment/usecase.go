package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/engine/validation"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/events"
	appointmentRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonBooking/pkg/tracing"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

const metricsOperation = "create"

// UUIDGenerator генерирует id записей в формате UUID v4
type UUIDGenerator struct{}

// NewID возвращает новый UUID
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	settings        SettingsProvider
	validator       *validation.Validator
	names           NameResolver
	publisher       EventPublisher
	metrics         ValidationMetrics
	txManager       TransactionManager
	ids             IDGenerator
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
		ids:             UUIDGenerator{},
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Проверка и вставка выполняются в сериализуемой транзакции над заблокированным снимком записей.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	ctx, span := tracing.Start(ctx, "CreateAppointment")
	defer span.End()

	uc.logger.Info("CreateAppointment: branch=%s, date=%s, time=%s, services=%d",
		req.BranchID, req.Date, req.Time, len(req.ServiceStylistPairs))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не должна быть в прошлом
	if err := validateDate(req.Date, types.DateFromTime(uc.timeProvider.Now())); err != nil {
		uc.logger.Warn("CreateAppointment: %v", err)
		return nil, err
	}

	// 3. Подставляем имена мастеров
	candidate := domain.BookingCandidate{
		BranchID:            req.BranchID,
		AppointmentDate:     req.Date,
		AppointmentTime:     req.Time,
		ServiceStylistPairs: uc.names.Resolve(ctx, req.ServiceStylistPairs),
	}

	// 4. Получаем настройки филиала
	settings := domain.DefaultBranchSettings(req.BranchID)
	if req.BranchID != "" {
		loaded, err := uc.settings.GetSettings(ctx, req.BranchID)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get settings for branch=%s: %v", req.BranchID, err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		settings = loaded
	}

	var (
		created *domain.Appointment
		result  domain.ValidationResult
	)

	// 5. Проверка и вставка в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Снимок записей филиала на дату с блокировкой (FOR UPDATE)
		existing := make([]domain.Appointment, 0)
		if req.BranchID != "" && !req.Date.IsZero() {
			var err error
			existing, err = uc.appointmentRepo.ListByBranchAndDate(txCtx, req.BranchID, req.Date, false)
			if err != nil {
				uc.logger.Error("CreateAppointment: failed to list appointments: %v", err)
				return fmt.Errorf("%w: failed to list appointments: %w", ErrInternal, err)
			}
		}

		// 5.2. Проверяем запись
		result = uc.validator.Booking(candidate, settings.OperatingHours, existing, nil, settings.EffectiveSlotDuration())
		if !result.IsValid {
			uc.logger.Warn("CreateAppointment: rejected: %v", result.Errors)
			return &domain.BookingRejectedError{Result: result}
		}

		// 5.3. Сохраняем
		appointment := &domain.Appointment{
			ID:                  uc.ids.NewID(),
			BranchID:            req.BranchID,
			ClientName:          req.ClientName,
			ClientPhone:         req.ClientPhone,
			AppointmentDate:     req.Date,
			AppointmentTime:     req.Time,
			Status:              domain.StatusScheduled,
			ServiceStylistPairs: candidate.ServiceStylistPairs,
			Notes:               req.Notes,
		}

		saved, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotNotAvailable) {
				uc.logger.Warn("CreateAppointment: slot %s %s taken concurrently", req.Date, req.Time)
				return &domain.BookingRejectedError{Result: domain.NewSlotTakenResult(req.Time)}
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		created = saved
		return nil
	})

	// 6. Конкурентная транзакция заняла слот и после повтора
	if txmanager.IsSerializationFailure(err) {
		uc.logger.Warn("CreateAppointment: slot %s %s lost to concurrent transaction: %v", req.Date, req.Time, err)
		err = &domain.BookingRejectedError{Result: domain.NewSlotTakenResult(req.Time)}
	}

	if uc.metrics != nil && (err == nil || errors.Is(err, domain.ErrBookingRejected)) {
		uc.metrics.ObserveValidation(metricsOperation, err == nil)
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%s", created.ID)

	// 7. Публикуем событие после коммита
	if err := uc.publisher.Publish(ctx, events.NewEvent(events.TypeAppointmentCreated, created)); err != nil {
		uc.logger.Error("CreateAppointment: failed to publish event for id=%s: %v", created.ID, err)
	}

	return &Response{
		Appointment: created,
		Warnings:    result.Warnings,
	}, nil
}
