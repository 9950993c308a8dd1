package appointments

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/engine/conflict"
	"github.com/m04kA/SMC-SalonBooking/internal/engine/validation"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/events"
	appointmentRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SalonBooking/internal/service/appointments/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Service сервис для работы с записями
type Service struct {
	appointmentRepo AppointmentRepository
	policy          conflict.Policy
	validator       *validation.Validator
	publisher       EventPublisher
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей.
// policy определяет, какие статусы занимают слот.
func NewService(
	appointmentRepo AppointmentRepository,
	policy conflict.Policy,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		policy:          policy,
		validator:       validation.NewValidator(conflict.NewDetector(policy)),
		publisher:       publisher,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s", id)

	appointment, err := s.getAppointment(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainAppointment(appointment), nil
}

// ListBranchAppointments получает записи филиала с фильтрами
func (s *Service) ListBranchAppointments(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListBranchAppointments: branch=%s, start=%v, end=%v, status=%s, includeInactive=%t",
		req.BranchID, req.StartDate, req.EndDate, ptr.Deref(req.Status, "-"), req.IncludeInactive)

	if req.BranchID == "" {
		return nil, fmt.Errorf("%w: branchId is required", ErrInvalidInput)
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		s.logger.Warn("ListBranchAppointments: end %s before start %s", req.EndDate, req.StartDate)
		return nil, ErrInvalidTimeRange
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListBranchAppointments: invalid status=%s", ptr.Deref(req.Status, ""))
		return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}

	appointments, err := s.appointmentRepo.ListByBranch(ctx, filter)
	if err != nil {
		s.logger.Error("ListBranchAppointments: repository error for branch=%s: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: ListBranchAppointments - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ListBranchAppointments: found %d appointments for branch=%s", len(appointments), req.BranchID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись. Начатые и завершенные записи отменить нельзя.
func (s *Service) Cancel(ctx context.Context, id string, req *models.CancelRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%s", id)

	if utf8.RuneCountInString(req.CancellationReason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellationReason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	appointment, err := s.getAppointment(ctx, "Cancel", id)
	if err != nil {
		return nil, err
	}

	if !appointment.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%s cannot be cancelled, status=%s", id, appointment.Status)
		return nil, ErrCannotCancel
	}

	if err := s.appointmentRepo.Cancel(ctx, id, req.CancellationReason); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
	}

	cancelled, err := s.getAppointment(ctx, "Cancel", id)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, "Cancel", events.TypeAppointmentCancelled, cancelled)

	s.logger.Info("Cancel: successfully cancelled appointment id=%s", id)
	return models.FromDomainAppointment(cancelled), nil
}

// UpdateStatus меняет статус записи по таблице переходов.
// Если новый статус начинает занимать слот, слот перепроверяется под блокировкой.
func (s *Service) UpdateStatus(ctx context.Context, id string, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: appointment id=%s, status=%s", id, req.Status)

	newStatus, err := domain.ParseAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%s", req.Status, id)
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	var (
		updated *domain.Appointment
		slot    types.TimeString
	)

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Получаем запись
		appointment, err := s.getAppointment(txCtx, "UpdateStatus", id)
		if err != nil {
			return err
		}

		slot = appointment.AppointmentTime

		// 2. Проверяем переход
		if !appointment.Status.CanTransitionTo(newStatus) {
			s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for id=%s", appointment.Status, newStatus, id)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appointment.Status, newStatus)
		}

		// 3. Запись начинает занимать слот: проверяем, что он свободен
		if !s.policy.IsActive(appointment.Status) && s.policy.IsActive(newStatus) {
			if err := s.revalidate(txCtx, appointment); err != nil {
				return err
			}
		}

		// 4. Сохраняем
		if newStatus == domain.StatusCancelled {
			err = s.appointmentRepo.Cancel(txCtx, id, "")
		} else {
			err = s.appointmentRepo.UpdateStatus(txCtx, id, newStatus)
		}
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			if errors.Is(err, appointmentRepo.ErrSlotNotAvailable) {
				s.logger.Warn("UpdateStatus: slot of appointment id=%s taken concurrently", id)
				return &domain.BookingRejectedError{Result: domain.NewSlotTakenResult(appointment.AppointmentTime)}
			}
			s.logger.Error("UpdateStatus: repository error for appointment id=%s: %v", id, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %w", ErrInternal, err)
		}

		updated, err = s.getAppointment(txCtx, "UpdateStatus", id)
		return err
	})

	// 5. Слот занят конкурентной транзакцией и после повтора
	if txmanager.IsSerializationFailure(err) {
		s.logger.Warn("UpdateStatus: slot of appointment id=%s lost to concurrent transaction: %v", id, err)
		err = &domain.BookingRejectedError{Result: domain.NewSlotTakenResult(slot)}
	}
	if err != nil {
		return nil, err
	}

	eventType := events.TypeAppointmentStatusChanged
	if newStatus == domain.StatusCancelled {
		eventType = events.TypeAppointmentCancelled
	}
	s.publish(ctx, "UpdateStatus", eventType, updated)

	s.logger.Info("UpdateStatus: successfully updated appointment id=%s to status=%s", id, newStatus)
	return models.FromDomainAppointment(updated), nil
}

// revalidate проверяет слот записи по заблокированному снимку филиала
func (s *Service) revalidate(ctx context.Context, appointment *domain.Appointment) error {
	existing, err := s.appointmentRepo.ListByBranchAndDate(ctx, appointment.BranchID, appointment.AppointmentDate, false)
	if err != nil {
		s.logger.Error("UpdateStatus: failed to list appointments: %v", err)
		return fmt.Errorf("%w: UpdateStatus - list appointments: %w", ErrInternal, err)
	}

	excludeID := appointment.ID
	result := s.validator.AppointmentBooking(domain.BookingCandidate{
		BranchID:            appointment.BranchID,
		AppointmentDate:     appointment.AppointmentDate,
		AppointmentTime:     appointment.AppointmentTime,
		ServiceStylistPairs: appointment.ServiceStylistPairs,
	}, existing, &excludeID)

	if !result.IsValid {
		s.logger.Warn("UpdateStatus: slot of appointment id=%s is taken: %v", appointment.ID, result.Errors)
		return &domain.BookingRejectedError{Result: result}
	}
	return nil
}

// getAppointment загружает запись и переводит ошибки репозитория
func (s *Service) getAppointment(ctx context.Context, op string, id string) (*domain.Appointment, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: appointmentId is required", ErrInvalidInput)
	}

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%s not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return appointment, nil
}

// publish отправляет событие. Ошибка публикации не отменяет изменение.
func (s *Service) publish(ctx context.Context, op string, eventType string, appointment *domain.Appointment) {
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, appointment)); err != nil {
		s.logger.Error("%s: failed to publish %s for id=%s: %v", op, eventType, appointment.ID, err)
	}
}
