package appointment

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var day = types.NewDate(2024, 1, 1)

func newRepo(t *testing.T) (*Repository, *sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), db, mock
}

func appointmentRows() *sqlmock.Rows {
	return sqlmock.NewRows(appointmentColumns)
}

func pairRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"appointment_id", "service_id", "stylist_id", "stylist_name"})
}

func TestRepository_Create(t *testing.T) {
	repo, _, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO appointments \(id,branch_id,client_name,client_phone,appointment_date,appointment_time,status,notes\)`).
		WithArgs("a1", "b1", "Anna", nil, "2024-01-01", "10:00", "scheduled", nil).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectExec(`INSERT INTO appointment_stylists`).
		WithArgs("a1", 0, "cut", "s1", "John", "a1", 1, "color", "s2", nil).
		WillReturnResult(sqlmock.NewResult(0, 2))

	created, err := repo.Create(context.Background(), &domain.Appointment{
		ID:              "a1",
		BranchID:        "b1",
		ClientName:      "Anna",
		AppointmentDate: day,
		AppointmentTime: "10:00",
		Status:          domain.StatusScheduled,
		ServiceStylistPairs: []domain.ServiceStylistPair{
			{ServiceID: "cut", StylistID: "s1", StylistName: ptr.Ptr("John")},
			{ServiceID: "color", StylistID: "s2"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, now, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_UniqueViolation(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`INSERT INTO appointments`).
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key"})

	_, err := repo.Create(context.Background(), &domain.Appointment{
		ID: "a1", BranchID: "b1", AppointmentDate: day, AppointmentTime: "10:00", Status: domain.StatusScheduled,
	})

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestRepository_Create_SerializationFailureKeepsDriverError(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`INSERT INTO appointments`).
		WillReturnError(&pq.Error{Code: "40001", Message: "could not serialize access"})

	_, err := repo.Create(context.Background(), &domain.Appointment{
		ID: "a1", BranchID: "b1", AppointmentDate: day, AppointmentTime: "10:00", Status: domain.StatusScheduled,
	})

	assert.ErrorIs(t, err, ErrExecQuery)
	assert.NotErrorIs(t, err, ErrSlotNotAvailable)
	assert.True(t, txmanager.IsSerializationFailure(err))
}

func TestRepository_GetByID(t *testing.T) {
	repo, _, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM appointments WHERE id = \$1`).
		WithArgs("a1").
		WillReturnRows(appointmentRows().AddRow(
			"a1", "b1", "Anna", "+100", "2024-01-01", "10:00:00", "confirmed", nil, nil, nil, now, now,
		))
	mock.ExpectQuery(`SELECT appointment_id, service_id, stylist_id, stylist_name FROM appointment_stylists WHERE appointment_id = ANY\(\$1\)`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(pairRows().AddRow("a1", "cut", "s1", "John"))

	a, err := repo.GetByID(context.Background(), "a1")

	require.NoError(t, err)
	assert.Equal(t, day, a.AppointmentDate)
	assert.Equal(t, types.TimeString("10:00"), a.AppointmentTime)
	assert.Equal(t, domain.StatusConfirmed, a.Status)
	require.Len(t, a.ServiceStylistPairs, 1)
	assert.Equal(t, "John", a.ServiceStylistPairs[0].DisplayName())
	assert.Equal(t, "+100", *a.ClientPhone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM appointments`).WillReturnRows(appointmentRows())

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestRepository_ListByBranchAndDate_LocksInsideTransaction(t *testing.T) {
	repo, db, mock := newRepo(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM appointments WHERE branch_id = \$1 AND appointment_date = \$2 AND status NOT IN \(\$3,\$4\) ORDER BY appointment_time ASC FOR UPDATE`).
		WithArgs("b1", "2024-01-01", "completed", "cancelled").
		WillReturnRows(appointmentRows().
			AddRow("a1", "b1", "Anna", nil, "2024-01-01", "10:00", "confirmed", nil, nil, nil, now, now).
			AddRow("a2", "b1", "Olga", nil, "2024-01-01", "11:00", "archived", nil, nil, nil, now, now))
	mock.ExpectQuery(`FROM appointment_stylists`).
		WillReturnRows(pairRows().AddRow("a1", "cut", "s1", nil))

	tx, err := db.Begin()
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	list, err := repo.ListByBranchAndDate(ctx, "b1", day, false)

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "s1", list[0].ServiceStylistPairs[0].StylistID)
	assert.Empty(t, list[1].ServiceStylistPairs)
	assert.Equal(t, domain.AppointmentStatus("archived"), list[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByStylistAndDate(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM appointments WHERE id IN \(SELECT appointment_id FROM appointment_stylists WHERE stylist_id = \$1\) AND appointment_date = \$2`).
		WithArgs("s1", "2024-01-01", "completed", "cancelled").
		WillReturnRows(appointmentRows())

	list, err := repo.ListByStylistAndDate(context.Background(), "s1", day)

	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByBranch_Filters(t *testing.T) {
	repo, _, mock := newRepo(t)
	status := domain.StatusConfirmed

	mock.ExpectQuery(`SELECT (.+) FROM appointments WHERE branch_id = \$1 AND appointment_date >= \$2 AND appointment_date <= \$3 AND status = \$4 ORDER BY appointment_time ASC`).
		WithArgs("b1", "2024-01-01", "2024-01-01", "confirmed").
		WillReturnRows(appointmentRows())

	_, err := repo.ListByBranch(context.Background(), domain.AppointmentsFilter{
		BranchID:  "b1",
		StartDate: &day,
		EndDate:   &day,
		Status:    &status,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateSchedule(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(`UPDATE appointments SET appointment_date = \$1, appointment_time = \$2, updated_at = NOW\(\) WHERE id = \$3`).
		WithArgs("2024-01-02", "11:00", "a1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM appointment_stylists WHERE appointment_id = \$1`).
		WithArgs("a1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO appointment_stylists`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateSchedule(context.Background(), "a1", day.AddDays(1), "11:00",
		[]domain.ServiceStylistPair{{ServiceID: "cut", StylistID: "s1"}})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatusAndCancel_NotFound(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectExec(`UPDATE appointments SET status`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`UPDATE appointments SET status = \$1, cancellation_reason = \$2, cancelled_at = NOW\(\)`).
		WithArgs("cancelled", "client request", "a1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.UpdateStatus(context.Background(), "a1", domain.StatusConfirmed), ErrAppointmentNotFound)
	assert.ErrorIs(t, repo.Cancel(context.Background(), "a1", "client request"), ErrAppointmentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
