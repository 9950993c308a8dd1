package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

const (
	appointmentsTable = "appointments"
	pairsTable        = "appointment_stylists"

	// uniqueViolation код ошибки Postgres для нарушения уникального индекса
	uniqueViolation = "23505"
)

var appointmentColumns = []string{
	"id",
	"branch_id",
	"client_name",
	"client_phone",
	"appointment_date",
	"appointment_time",
	"status",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей в салон
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет запись и её пары услуга-мастер.
// Должен вызываться внутри транзакции вместе с проверкой конфликтов.
func (r *Repository) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(appointmentsTable).
		Columns(
			"id",
			"branch_id",
			"client_name",
			"client_phone",
			"appointment_date",
			"appointment_time",
			"status",
			"notes",
		).
		Values(
			appointment.ID,
			appointment.BranchID,
			appointment.ClientName,
			appointment.ClientPhone,
			appointment.AppointmentDate,
			appointment.AppointmentTime,
			appointment.Status,
			appointment.Notes,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s %s", ErrSlotNotAvailable, appointment.AppointmentDate, appointment.AppointmentTime)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	if err := r.insertPairs(ctx, executor, appointment.ID, appointment.ServiceStylistPairs); err != nil {
		return nil, err
	}

	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return appointment, nil
}

// GetByID получает запись по ID вместе с парами услуга-мастер
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From(appointmentsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appointment, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	list := []*domain.Appointment{appointment}
	if err := r.attachPairs(ctx, executor, list); err != nil {
		return nil, err
	}

	return appointment, nil
}

// ListByBranchAndDate снимок записей филиала на дату для движка конфликтов.
// Внутри транзакции строки блокируются FOR UPDATE.
func (r *Repository) ListByBranchAndDate(ctx context.Context, branchID string, date types.Date, includeInactive bool) ([]domain.Appointment, error) {
	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From(appointmentsTable).
		Where(squirrel.Eq{"branch_id": branchID}).
		Where(squirrel.Eq{"appointment_date": date})

	if !includeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatuses()})
	}

	selectBuilder = selectBuilder.OrderBy("appointment_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	list, err := r.list(ctx, selectBuilder, "ListByBranchAndDate")
	if err != nil {
		return nil, err
	}
	return values(list), nil
}

// ListByStylistAndDate записи мастера на дату во всех филиалах
func (r *Repository) ListByStylistAndDate(ctx context.Context, stylistID string, date types.Date) ([]domain.Appointment, error) {
	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From(appointmentsTable).
		Where(squirrel.Expr(
			"id IN (SELECT appointment_id FROM "+pairsTable+" WHERE stylist_id = ?)", stylistID,
		)).
		Where(squirrel.Eq{"appointment_date": date}).
		Where(squirrel.NotEq{"status": inactiveStatuses()}).
		OrderBy("appointment_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	list, err := r.list(ctx, selectBuilder, "ListByStylistAndDate")
	if err != nil {
		return nil, err
	}
	return values(list), nil
}

// ListByBranch записи филиала с фильтрацией по периоду, статусу и мастеру
func (r *Repository) ListByBranch(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From(appointmentsTable).
		Where(squirrel.Eq{"branch_id": filter.BranchID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"appointment_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"appointment_date": *filter.EndDate})
	}
	if filter.StylistID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Expr(
			"id IN (SELECT appointment_id FROM "+pairsTable+" WHERE stylist_id = ?)", *filter.StylistID,
		))
	}

	// Конкретный статус важнее флага IncludeInactive
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatuses()})
	}

	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate) {
		selectBuilder = selectBuilder.OrderBy("appointment_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("appointment_date DESC", "appointment_time DESC")
	}

	return r.list(ctx, selectBuilder, "ListByBranch")
}

// UpdateSchedule переносит запись на новые дату и время и заменяет пары услуга-мастер
func (r *Repository) UpdateSchedule(
	ctx context.Context,
	id string,
	date types.Date,
	t types.TimeString,
	pairs []domain.ServiceStylistPair,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(appointmentsTable).
		Set("appointment_date", date).
		Set("appointment_time", t).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s %s", ErrSlotNotAvailable, date, t)
		}
		return fmt.Errorf("%w: UpdateSchedule - execute update: %w", ErrExecQuery, err)
	}
	if err := requireAffected(result, "UpdateSchedule"); err != nil {
		return err
	}

	query, args, err = psqlbuilder.Delete(pairsTable).
		Where(squirrel.Eq{"appointment_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build delete pairs query: %v", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpdateSchedule - delete pairs: %w", ErrExecQuery, err)
	}

	return r.insertPairs(ctx, executor, id, pairs)
}

// UpdateStatus обновляет статус записи
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(appointmentsTable).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: status %s", ErrSlotNotAvailable, status)
		}
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	return requireAffected(result, "UpdateStatus")
}

// Cancel отменяет запись с указанием причины
func (r *Repository) Cancel(ctx context.Context, id string, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(appointmentsTable).
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %w", ErrExecQuery, err)
	}

	return requireAffected(result, "Cancel")
}

func (r *Repository) list(ctx context.Context, selectBuilder squirrel.SelectBuilder, op string) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		appointments = append(appointments, appointment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}
	// Курсор нужно закрыть до следующего запроса в той же транзакции
	rows.Close()

	if err := r.attachPairs(ctx, executor, appointments); err != nil {
		return nil, err
	}

	return appointments, nil
}

// attachPairs загружает пары услуга-мастер одним запросом
func (r *Repository) attachPairs(ctx context.Context, executor DBExecutor, appointments []*domain.Appointment) error {
	if len(appointments) == 0 {
		return nil
	}

	ids := make([]string, 0, len(appointments))
	byID := make(map[string]*domain.Appointment, len(appointments))
	for _, a := range appointments {
		a.ServiceStylistPairs = make([]domain.ServiceStylistPair, 0)
		ids = append(ids, a.ID)
		byID[a.ID] = a
	}

	query, args, err := psqlbuilder.Select("appointment_id", "service_id", "stylist_id", "stylist_name").
		From(pairsTable).
		Where(squirrel.Expr("appointment_id = ANY(?)", pq.Array(ids))).
		OrderBy("appointment_id", "position").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: attachPairs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: attachPairs - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var appointmentID string
		var pair domain.ServiceStylistPair
		if err := rows.Scan(&appointmentID, &pair.ServiceID, &pair.StylistID, &pair.StylistName); err != nil {
			return fmt.Errorf("%w: attachPairs - scan row: %w", ErrScanRow, err)
		}
		if a, ok := byID[appointmentID]; ok {
			a.ServiceStylistPairs = append(a.ServiceStylistPairs, pair)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: attachPairs - rows error: %w", ErrScanRow, err)
	}

	return nil
}

func (r *Repository) insertPairs(ctx context.Context, executor DBExecutor, appointmentID string, pairs []domain.ServiceStylistPair) error {
	if len(pairs) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert(pairsTable).
		Columns("appointment_id", "position", "service_id", "stylist_id", "stylist_name")
	for i, pair := range pairs {
		insertBuilder = insertBuilder.Values(appointmentID, i, pair.ServiceID, pair.StylistID, pair.StylistName)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertPairs - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertPairs - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var a domain.Appointment
	var status string
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&a.ID,
		&a.BranchID,
		&a.ClientName,
		&a.ClientPhone,
		&a.AppointmentDate,
		&a.AppointmentTime,
		&status,
		&a.Notes,
		&a.CancellationReason,
		&a.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Статус из БД сохраняется как есть: неизвестные значения движок считает неактивными
	a.Status = domain.AppointmentStatus(status)
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time
	a.ServiceStylistPairs = make([]domain.ServiceStylistPair, 0)

	return &a, nil
}

func requireAffected(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func inactiveStatuses() []string {
	statuses := make([]string, len(domain.InactiveStatuses))
	for i, s := range domain.InactiveStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

func values(list []*domain.Appointment) []domain.Appointment {
	out := make([]domain.Appointment, len(list))
	for i, a := range list {
		out[i] = *a
	}
	return out
}
