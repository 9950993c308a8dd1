package validate_booking

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	ListByBranchAndDate(ctx context.Context, branchID string, date types.Date, includeInactive bool) ([]domain.Appointment, error)
}

// SettingsProvider интерфейс получения настроек филиала
type SettingsProvider interface {
	GetSettings(ctx context.Context, branchID string) (*domain.BranchSettings, error)
}

// NameResolver подставляет имена мастеров для сообщений об ошибках
type NameResolver interface {
	Resolve(ctx context.Context, pairs []domain.ServiceStylistPair) []domain.ServiceStylistPair
}

// ValidationMetrics счетчик результатов проверки
type ValidationMetrics interface {
	ObserveValidation(operation string, valid bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
