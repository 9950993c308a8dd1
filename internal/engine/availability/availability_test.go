package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/engine/conflict"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// 2024-01-01 is a Monday
var monday = types.NewDate(2024, 1, 1)

func shortMonday() domain.OperatingHours {
	return domain.OperatingHours{
		domain.Monday: {IsOpen: true, Open: "09:00", Close: "11:00"},
		domain.Sunday: {IsOpen: false},
	}
}

func booked(id, branch, tm string, status domain.AppointmentStatus, stylist string) domain.Appointment {
	return domain.Appointment{
		ID:                  id,
		BranchID:            branch,
		AppointmentDate:     monday,
		AppointmentTime:     types.TimeString(tm),
		Status:              status,
		ServiceStylistPairs: []domain.ServiceStylistPair{{ServiceID: "cut", StylistID: stylist}},
	}
}

func TestGetAvailableTimeSlots(t *testing.T) {
	existing := []domain.Appointment{
		booked("a1", "b1", "09:30", domain.StatusConfirmed, "s1"),
		booked("a2", "b1", "10:00", domain.StatusCancelled, "s1"),
		booked("a3", "b2", "10:30", domain.StatusScheduled, "s1"),
		booked("a4", "b1", "10:30", domain.StatusScheduled, "s2"),
	}

	tests := []struct {
		name      string
		hours     domain.OperatingHours
		date      types.Date
		stylistID *string
		excludeID *string
		duration  int
		want      []types.TimeString
	}{
		{
			name:  "branch level",
			hours: shortMonday(),
			date:  monday,
			want:  []types.TimeString{"09:00", "10:00"},
		},
		{
			name:      "stylist filter inside branch",
			hours:     shortMonday(),
			date:      monday,
			stylistID: ptr.Ptr("s1"),
			want:      []types.TimeString{"09:00", "10:00", "10:30"},
		},
		{
			name:      "exclusion frees own slot",
			hours:     shortMonday(),
			date:      monday,
			excludeID: ptr.Ptr("a1"),
			want:      []types.TimeString{"09:00", "09:30", "10:00"},
		},
		{
			name:     "hourly slots",
			hours:    shortMonday(),
			date:     monday,
			duration: 60,
			want:     []types.TimeString{"09:00", "10:00"},
		},
		{
			name:  "closed day",
			hours: shortMonday(),
			date:  types.NewDate(2024, 1, 7),
			want:  []types.TimeString{},
		},
		{
			name:  "missing day",
			hours: shortMonday(),
			date:  types.NewDate(2024, 1, 2),
			want:  []types.TimeString{},
		},
		{
			name:  "nil hours",
			hours: nil,
			date:  monday,
			want:  []types.TimeString{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetAvailableTimeSlots(existing, tt.hours, "b1", tt.date, tt.stylistID, tt.excludeID, tt.duration)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetAvailableTimeSlots_FreeDayMatchesSchedule(t *testing.T) {
	hours := domain.OperatingHours{
		domain.Monday: {IsOpen: true, Open: "09:00", Close: "18:00"},
	}

	got := GetAvailableTimeSlots(nil, hours, "b1", monday, nil, nil, 30)

	assert.Len(t, got, 18)
	assert.Equal(t, types.TimeString("09:00"), got[0])
	assert.Equal(t, types.TimeString("17:30"), got[17])
}

func TestGetStylistAvailableSlots_IgnoresBranch(t *testing.T) {
	existing := []domain.Appointment{
		booked("a1", "b1", "09:00", domain.StatusConfirmed, "s1"),
		booked("a2", "b2", "10:00", domain.StatusInService, "s1"),
		booked("a3", "b1", "10:30", domain.StatusConfirmed, "s2"),
	}

	got := GetStylistAvailableSlots(existing, "s1", monday, shortMonday(), nil, 30)
	assert.Equal(t, []types.TimeString{"09:30", "10:30"}, got)

	got = GetStylistAvailableSlots(existing, "s1", monday, shortMonday(), ptr.Ptr("a2"), 30)
	assert.Equal(t, []types.TimeString{"09:30", "10:00", "10:30"}, got)
}

func TestCalculator_PendingPolicy(t *testing.T) {
	existing := []domain.Appointment{
		booked("p1", "b1", "09:00", domain.StatusPending, "s1"),
	}

	byDefault := NewCalculator(nil).AvailableTimeSlots(existing, shortMonday(), "b1", monday, nil, nil, 30)
	withPending := NewCalculator(conflict.NewDetector(conflict.PendingActivePolicy())).
		AvailableTimeSlots(existing, shortMonday(), "b1", monday, nil, nil, 30)

	assert.Contains(t, byDefault, types.TimeString("09:00"))
	assert.NotContains(t, withPending, types.TimeString("09:00"))
}

func TestIsStylistAvailable(t *testing.T) {
	existing := []domain.Appointment{
		booked("a1", "b2", "09:00", domain.StatusConfirmed, "s1"),
	}

	assert.False(t, IsStylistAvailable(existing, "s1", monday, "09:00", nil))
	assert.True(t, IsStylistAvailable(existing, "s1", monday, "09:00", ptr.Ptr("a1")))
}
