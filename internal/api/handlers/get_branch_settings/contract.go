package get_branch_settings

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/service/branches/models"
)

type SettingsService interface {
	GetSettingsResponse(ctx context.Context, branchID string) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
