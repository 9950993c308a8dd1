package appointments

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/events"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	ListByBranch(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	ListByBranchAndDate(ctx context.Context, branchID string, date types.Date, includeInactive bool) ([]domain.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error
	Cancel(ctx context.Context, id string, reason string) error
}

// EventPublisher интерфейс публикации событий о записях
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
