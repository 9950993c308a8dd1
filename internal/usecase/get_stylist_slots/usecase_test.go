package get_stylist_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/engine/availability"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type stubAppointments struct {
	list []domain.Appointment
	err  error
}

func (s *stubAppointments) ListByStylistAndDate(_ context.Context, stylistID string, date types.Date) ([]domain.Appointment, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]domain.Appointment, 0)
	for _, a := range s.list {
		if a.HasStylist(stylistID) && a.AppointmentDate.Equal(date) {
			out = append(out, a)
		}
	}
	return out, nil
}

type stubSettings struct {
	settings *domain.BranchSettings
}

func (s *stubSettings) GetSettings(_ context.Context, branchID string) (*domain.BranchSettings, error) {
	if s.settings == nil {
		return domain.DefaultBranchSettings(branchID), nil
	}
	return s.settings, nil
}

// 2024-01-15 понедельник
var monday = types.NewDate(2024, time.January, 15)

func newUseCase(repo AppointmentRepository, settings SettingsProvider) *UseCase {
	uc := NewUseCase(repo, settings, availability.NewCalculator(nil), logger.NewNop())
	uc.timeProvider = fixedTime{now: time.Date(2024, time.January, 15, 8, 0, 0, 0, time.UTC)}
	return uc
}

func TestUseCase_Execute_AcrossBranches(t *testing.T) {
	repo := &stubAppointments{list: []domain.Appointment{
		{
			ID: "a1", BranchID: "b1", AppointmentDate: monday, AppointmentTime: "09:00",
			Status:              domain.StatusConfirmed,
			ServiceStylistPairs: []domain.ServiceStylistPair{{ServiceID: "cut", StylistID: "st-1"}},
		},
		{
			ID: "a2", BranchID: "b2", AppointmentDate: monday, AppointmentTime: "10:00",
			Status:              domain.StatusScheduled,
			ServiceStylistPairs: []domain.ServiceStylistPair{{ServiceID: "color", StylistID: "st-1"}},
		},
	}}
	settings := &stubSettings{settings: &domain.BranchSettings{
		BranchID:            "b1",
		OperatingHours:      domain.OperatingHours{domain.Monday: {IsOpen: true, Open: "09:00", Close: "11:00"}},
		SlotDurationMinutes: 60,
	}}
	uc := newUseCase(repo, settings)

	resp, err := uc.Execute(context.Background(), &Request{StylistID: "st-1", BranchID: "b1", Date: monday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.NotNil(t, resp.Slots)

	resp, err = uc.Execute(context.Background(), &Request{
		StylistID: "st-1", BranchID: "b1", Date: monday, ExcludeAppointmentID: ptr.Ptr("a2"),
	})
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"10:00"}, resp.Slots)
	assert.Equal(t, 60, resp.SlotDurationMinutes)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		repo    *stubAppointments
		req     Request
		wantErr error
	}{
		{"missing stylist", &stubAppointments{}, Request{BranchID: "b1", Date: monday}, ErrInvalidInput},
		{"any available", &stubAppointments{}, Request{StylistID: domain.AnyAvailableStylistID, BranchID: "b1", Date: monday}, ErrInvalidInput},
		{"missing branch", &stubAppointments{}, Request{StylistID: "st-1", Date: monday}, ErrInvalidInput},
		{"past date", &stubAppointments{}, Request{StylistID: "st-1", BranchID: "b1", Date: monday.AddDays(-1)}, ErrInvalidDate},
		{"repository failure", &stubAppointments{err: errors.New("down")}, Request{StylistID: "st-1", BranchID: "b1", Date: monday}, ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newUseCase(tt.repo, &stubSettings{})
			_, err := uc.Execute(ctx, &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
