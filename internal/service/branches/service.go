package branches

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	settingsCache "github.com/m04kA/SMC-SalonBooking/internal/infra/cache/settings"
	branchRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/branch"
	"github.com/m04kA/SMC-SalonBooking/internal/service/branches/models"
)

// Service сервис настроек филиалов
type Service struct {
	branchRepo BranchRepository
	cache      SettingsCache
	logger     Logger

	defaultSlotDuration int
}

// NewService создает новый экземпляр сервиса. cache может быть nil.
func NewService(branchRepo BranchRepository, cache SettingsCache, logger Logger) *Service {
	return &Service{
		branchRepo: branchRepo,
		cache:      cache,
		logger:     logger,
	}
}

// WithDefaultSlotDuration задает длительность слота для филиалов без сохраненных настроек
func (s *Service) WithDefaultSlotDuration(minutes int) *Service {
	s.defaultSlotDuration = minutes
	return s
}

// GetSettings возвращает настройки филиала: кеш, затем БД, затем значения по умолчанию.
// Филиал без сохраненных настроек закрыт все дни недели.
func (s *Service) GetSettings(ctx context.Context, branchID string) (*domain.BranchSettings, error) {
	if branchID == "" {
		return nil, fmt.Errorf("%w: branchId is required", ErrInvalidInput)
	}

	// 1. Пробуем кеш
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, branchID)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, settingsCache.ErrCacheMiss) {
			s.logger.Warn("GetSettings: cache unavailable for branch=%s: %v", branchID, err)
		}
	}

	// 2. Читаем из БД
	settings, err := s.branchRepo.GetSettings(ctx, branchID)
	if err != nil {
		if !errors.Is(err, branchRepo.ErrSettingsNotFound) {
			s.logger.Error("GetSettings: repository error for branch=%s: %v", branchID, err)
			return nil, fmt.Errorf("%w: GetSettings - repository error: %v", ErrInternal, err)
		}
		s.logger.Info("GetSettings: no settings for branch=%s, using defaults", branchID)
		return s.defaultSettings(branchID), nil
	}

	// 3. Заполняем кеш
	if s.cache != nil {
		if err := s.cache.Set(ctx, settings); err != nil {
			s.logger.Warn("GetSettings: failed to cache settings for branch=%s: %v", branchID, err)
		}
	}

	return settings, nil
}

func (s *Service) defaultSettings(branchID string) *domain.BranchSettings {
	settings := domain.DefaultBranchSettings(branchID)
	if s.defaultSlotDuration > 0 {
		settings.SlotDurationMinutes = s.defaultSlotDuration
	}
	return settings
}

// GetSettingsResponse возвращает настройки филиала в виде response модели
func (s *Service) GetSettingsResponse(ctx context.Context, branchID string) (*models.SettingsResponse, error) {
	settings, err := s.GetSettings(ctx, branchID)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSettings(settings), nil
}

// UpdateSettings сохраняет часы работы и длительность слота филиала
func (s *Service) UpdateSettings(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("UpdateSettings: branch=%s, slotDuration=%d", req.BranchID, req.SlotDurationMinutes)

	// 1. Валидируем входные данные
	if err := validateSettings(req); err != nil {
		s.logger.Warn("UpdateSettings: validation failed: %v", err)
		return nil, err
	}

	// 2. Сохраняем
	saved, err := s.branchRepo.UpsertSettings(ctx, &domain.BranchSettings{
		BranchID:            req.BranchID,
		OperatingHours:      req.OperatingHours,
		SlotDurationMinutes: req.SlotDurationMinutes,
	})
	if err != nil {
		s.logger.Error("UpdateSettings: repository error for branch=%s: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: UpdateSettings - repository error: %v", ErrInternal, err)
	}

	// 3. Сбрасываем кеш
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, req.BranchID); err != nil {
			s.logger.Warn("UpdateSettings: failed to invalidate cache for branch=%s: %v", req.BranchID, err)
		}
	}

	s.logger.Info("UpdateSettings: successfully updated settings for branch=%s", req.BranchID)
	return models.FromDomainSettings(saved), nil
}

// validateSettings проверяет часы работы и длительность слота
func validateSettings(req *models.UpdateSettingsRequest) error {
	if req.BranchID == "" {
		return fmt.Errorf("%w: branchId is required", ErrInvalidInput)
	}

	if req.SlotDurationMinutes < domain.MinSlotDurationMinutes || req.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slotDurationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	if err := req.OperatingHours.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return nil
}
