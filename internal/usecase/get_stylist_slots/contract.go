package get_stylist_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// ListByStylistAndDate получает записи мастера на дату во всех филиалах
	ListByStylistAndDate(ctx context.Context, stylistID string, date types.Date) ([]domain.Appointment, error)
}

// SettingsProvider интерфейс получения настроек филиала
type SettingsProvider interface {
	GetSettings(ctx context.Context, branchID string) (*domain.BranchSettings, error)
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
