package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// UpdateSettingsRequest запрос на обновление настроек филиала
type UpdateSettingsRequest struct {
	BranchID            string                `json:"-"`
	OperatingHours      domain.OperatingHours `json:"operatingHours"`
	SlotDurationMinutes int                   `json:"slotDurationMinutes"`
}

// SettingsResponse ответ с настройками филиала
type SettingsResponse struct {
	BranchID            string                `json:"branchId"`
	OperatingHours      domain.OperatingHours `json:"operatingHours"`
	SlotDurationMinutes int                   `json:"slotDurationMinutes"`
	UpdatedAt           *time.Time            `json:"updatedAt,omitempty"`
}

// FromDomainSettings конвертирует domain модель в response
func FromDomainSettings(settings *domain.BranchSettings) *SettingsResponse {
	hours := settings.OperatingHours
	if hours == nil {
		hours = domain.OperatingHours{}
	}

	resp := &SettingsResponse{
		BranchID:            settings.BranchID,
		OperatingHours:      hours,
		SlotDurationMinutes: settings.EffectiveSlotDuration(),
	}
	// Настройки по умолчанию не сохранены и не имеют времени обновления
	if !settings.UpdatedAt.IsZero() {
		updatedAt := settings.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}
