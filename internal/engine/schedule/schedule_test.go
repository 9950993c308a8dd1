package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

func TestEnumerateSlots_FullDay(t *testing.T) {
	day := &domain.DaySchedule{IsOpen: true, Open: "09:00", Close: "18:00"}

	slots := EnumerateSlots(day, 30)

	require.Len(t, slots, 18)
	assert.Equal(t, types.TimeString("09:00"), slots[0])
	assert.Equal(t, types.TimeString("09:30"), slots[1])
	assert.Equal(t, types.TimeString("17:30"), slots[17])
	assert.NotContains(t, slots, types.TimeString("18:00"))
}

func TestEnumerateSlots(t *testing.T) {
	tests := []struct {
		name     string
		day      *domain.DaySchedule
		duration int
		want     []types.TimeString
	}{
		{
			name:     "nil day is closed",
			day:      nil,
			duration: 30,
			want:     []types.TimeString{},
		},
		{
			name:     "closed day",
			day:      &domain.DaySchedule{IsOpen: false, Open: "09:00", Close: "18:00"},
			duration: 30,
			want:     []types.TimeString{},
		},
		{
			name:     "default duration when zero",
			day:      &domain.DaySchedule{IsOpen: true, Open: "10:00", Close: "11:00"},
			duration: 0,
			want:     []types.TimeString{"10:00", "10:30"},
		},
		{
			name:     "last slot may run past close",
			day:      &domain.DaySchedule{IsOpen: true, Open: "10:00", Close: "11:10"},
			duration: 30,
			want:     []types.TimeString{"10:00", "10:30", "11:00"},
		},
		{
			name:     "hourly slots",
			day:      &domain.DaySchedule{IsOpen: true, Open: "08:00", Close: "11:00"},
			duration: 60,
			want:     []types.TimeString{"08:00", "09:00", "10:00"},
		},
		{
			name:     "malformed open time",
			day:      &domain.DaySchedule{IsOpen: true, Open: "nine", Close: "18:00"},
			duration: 30,
			want:     []types.TimeString{},
		},
		{
			name:     "close before open",
			day:      &domain.DaySchedule{IsOpen: true, Open: "18:00", Close: "09:00"},
			duration: 30,
			want:     []types.TimeString{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EnumerateSlots(tt.day, tt.duration))
		})
	}
}

func TestDayOfWeek(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{date: "2024-01-01", want: "monday"},
		{date: "2024-01-06", want: "saturday"},
		{date: "2024-01-07", want: "sunday"},
		{date: "2024-03-10", want: "sunday"},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			d, err := types.ParseDate(tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, DayOfWeek(d))
		})
	}
}

func TestForDateAndIsSlotStart(t *testing.T) {
	hours := domain.OperatingHours{
		"monday": {IsOpen: true, Open: "09:00", Close: "12:00"},
	}
	monday := types.NewDate(2024, 1, 1)
	tuesday := monday.AddDays(1)

	day := ForDate(hours, monday)
	require.NotNil(t, day)
	assert.Nil(t, ForDate(hours, tuesday))
	assert.Nil(t, ForDate(nil, monday))

	assert.True(t, IsSlotStart(day, 30, "11:30"))
	assert.False(t, IsSlotStart(day, 30, "11:45"))
	assert.False(t, IsSlotStart(day, 30, "12:00"))
}
