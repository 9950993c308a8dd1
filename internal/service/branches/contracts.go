package branches

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// BranchRepository интерфейс репозитория настроек филиала
type BranchRepository interface {
	GetSettings(ctx context.Context, branchID string) (*domain.BranchSettings, error)
	UpsertSettings(ctx context.Context, settings *domain.BranchSettings) (*domain.BranchSettings, error)
}

// SettingsCache интерфейс кеша настроек филиала
type SettingsCache interface {
	Get(ctx context.Context, branchID string) (*domain.BranchSettings, error)
	Set(ctx context.Context, settings *domain.BranchSettings) error
	Invalidate(ctx context.Context, branchID string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
