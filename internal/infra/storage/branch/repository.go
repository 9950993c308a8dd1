package branch

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

const settingsTable = "branch_settings"

// DBExecutor интерфейс для выполнения запросов
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий настроек филиалов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек филиалов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetSettings получает часы работы и длительность слота филиала
func (r *Repository) GetSettings(ctx context.Context, branchID string) (*domain.BranchSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"branch_id",
		"operating_hours",
		"slot_duration_minutes",
		"updated_at",
	).
		From(settingsTable).
		Where(squirrel.Eq{"branch_id": branchID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSettings - build select query: %v", ErrBuildQuery, err)
	}

	var settings domain.BranchSettings
	var rawHours []byte
	var updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.BranchID,
		&rawHours,
		&settings.SlotDurationMinutes,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSettings - scan settings: %v", ErrScanRow, err)
	}

	settings.OperatingHours = domain.OperatingHours{}
	if len(rawHours) > 0 {
		if err := json.Unmarshal(rawHours, &settings.OperatingHours); err != nil {
			return nil, fmt.Errorf("%w: GetSettings - decode operating_hours: %v", ErrScanRow, err)
		}
	}
	settings.UpdatedAt = updatedAt.Time

	return &settings, nil
}

// UpsertSettings создаёт или заменяет настройки филиала
func (r *Repository) UpsertSettings(ctx context.Context, settings *domain.BranchSettings) (*domain.BranchSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rawHours, err := json.Marshal(settings.OperatingHours)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodeHours, err)
	}

	query, args, err := psqlbuilder.Insert(settingsTable).
		Columns("branch_id", "operating_hours", "slot_duration_minutes").
		Values(settings.BranchID, rawHours, settings.SlotDurationMinutes).
		Suffix(`ON CONFLICT (branch_id) DO UPDATE SET
			operating_hours = EXCLUDED.operating_hours,
			slot_duration_minutes = EXCLUDED.slot_duration_minutes,
			updated_at = NOW()
			RETURNING updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertSettings - build insert query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt); err != nil {
		return nil, fmt.Errorf("%w: UpsertSettings - execute upsert: %v", ErrExecQuery, err)
	}

	settings.UpdatedAt = updatedAt.Time
	return settings, nil
}
