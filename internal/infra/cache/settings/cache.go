package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

const keyPrefix = "salon:branch-settings:"

var (
	// ErrCacheMiss возвращается, если настроек нет в кэше
	ErrCacheMiss = errors.New("settings.cache: miss")

	// ErrCache возвращается при ошибке обращения к redis
	ErrCache = errors.New("settings.cache: redis error")
)

// cachedSettings формат хранения настроек в redis
type cachedSettings struct {
	BranchID            string                `json:"branchId"`
	OperatingHours      domain.OperatingHours `json:"operatingHours"`
	SlotDurationMinutes int                   `json:"slotDurationMinutes"`
	UpdatedAt           time.Time             `json:"updatedAt"`
}

// Cache кэш настроек филиалов в redis
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache создает кэш с заданным временем жизни записей
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get возвращает настройки филиала или ErrCacheMiss
func (c *Cache) Get(ctx context.Context, branchID string) (*domain.BranchSettings, error) {
	raw, err := c.client.Get(ctx, key(branchID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", ErrCache, branchID, err)
	}

	var cached cachedSettings
	if err := json.Unmarshal(raw, &cached); err != nil {
		// Битую запись считаем промахом, её перезапишет следующий Set
		return nil, ErrCacheMiss
	}

	return &domain.BranchSettings{
		BranchID:            cached.BranchID,
		OperatingHours:      cached.OperatingHours,
		SlotDurationMinutes: cached.SlotDurationMinutes,
		UpdatedAt:           cached.UpdatedAt,
	}, nil
}

// Set сохраняет настройки филиала
func (c *Cache) Set(ctx context.Context, settings *domain.BranchSettings) error {
	raw, err := json.Marshal(cachedSettings{
		BranchID:            settings.BranchID,
		OperatingHours:      settings.OperatingHours,
		SlotDurationMinutes: settings.SlotDurationMinutes,
		UpdatedAt:           settings.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrCache, settings.BranchID, err)
	}

	if err := c.client.Set(ctx, key(settings.BranchID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrCache, settings.BranchID, err)
	}
	return nil
}

// Invalidate удаляет настройки филиала из кэша
func (c *Cache) Invalidate(ctx context.Context, branchID string) error {
	if err := c.client.Del(ctx, key(branchID)).Err(); err != nil {
		return fmt.Errorf("%w: del %s: %v", ErrCache, branchID, err)
	}
	return nil
}

func key(branchID string) string {
	return keyPrefix + branchID
}
