package reschedule_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/events"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	ListByBranchAndDate(ctx context.Context, branchID string, date types.Date, includeInactive bool) ([]domain.Appointment, error)
	UpdateSchedule(ctx context.Context, id string, date types.Date, t types.TimeString, pairs []domain.ServiceStylistPair) error
}

// SettingsProvider интерфейс получения настроек филиала
type SettingsProvider interface {
	GetSettings(ctx context.Context, branchID string) (*domain.BranchSettings, error)
}

// NameResolver подставляет имена мастеров
type NameResolver interface {
	Resolve(ctx context.Context, pairs []domain.ServiceStylistPair) []domain.ServiceStylistPair
}

// EventPublisher интерфейс публикации событий о записях
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// ValidationMetrics счетчик результатов проверки
type ValidationMetrics interface {
	ObserveValidation(operation string, valid bool)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
