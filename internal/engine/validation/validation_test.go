package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/engine/conflict"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var day = types.NewDate(2024, 1, 1)

func apt1(status domain.AppointmentStatus) domain.Appointment {
	return domain.Appointment{
		ID:                  "apt1",
		BranchID:            "b1",
		AppointmentDate:     day,
		AppointmentTime:     "10:00",
		Status:              status,
		ServiceStylistPairs: []domain.ServiceStylistPair{{ServiceID: "cut", StylistID: "s1"}},
	}
}

func candidate(pairs ...domain.ServiceStylistPair) domain.BookingCandidate {
	return domain.BookingCandidate{
		BranchID:            "b1",
		AppointmentDate:     day,
		AppointmentTime:     "10:00",
		ServiceStylistPairs: pairs,
	}
}

func hours() domain.OperatingHours {
	return domain.OperatingHours{
		domain.Monday: {IsOpen: true, Open: "09:00", Close: "18:00"},
		domain.Sunday: {IsOpen: false, Open: "09:00", Close: "18:00"},
	}
}

func TestValidateAppointmentBooking_StylistNamedInError(t *testing.T) {
	c := candidate(domain.ServiceStylistPair{ServiceID: "cut", StylistID: "s1", StylistName: ptr.Ptr("John")})

	result := ValidateAppointmentBooking(c, []domain.Appointment{apt1(domain.StatusConfirmed)}, nil)

	assert.False(t, result.IsValid)
	assert.Contains(t, result.Errors, "Time slot 10:00 is already booked")
	assert.Contains(t, result.Errors, "Stylist John is not available at 10:00")
	assert.NotNil(t, result.Warnings)
	assert.Empty(t, result.Warnings)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, "apt1", result.Conflicts[0].ID)
}

func TestValidateAppointmentBooking(t *testing.T) {
	tests := []struct {
		name      string
		candidate domain.BookingCandidate
		existing  []domain.Appointment
		excludeID *string
		wantValid bool
		wantErrs  []string
	}{
		{
			name:      "free slot",
			candidate: candidate(domain.ServiceStylistPair{ServiceID: "cut", StylistID: "s2"}),
			existing:  nil,
			wantValid: true,
			wantErrs:  []string{},
		},
		{
			name:      "cancelled appointment is ignored",
			candidate: candidate(domain.ServiceStylistPair{ServiceID: "cut", StylistID: "s1"}),
			existing:  []domain.Appointment{apt1(domain.StatusCancelled)},
			wantValid: true,
			wantErrs:  []string{},
		},
		{
			name:      "reschedule excludes itself",
			candidate: candidate(domain.ServiceStylistPair{ServiceID: "cut", StylistID: "s1"}),
			existing:  []domain.Appointment{apt1(domain.StatusConfirmed)},
			excludeID: ptr.Ptr("apt1"),
			wantValid: true,
			wantErrs:  []string{},
		},
		{
			name:      "stylist id used when name is missing",
			candidate: candidate(domain.ServiceStylistPair{ServiceID: "cut", StylistID: "s1"}),
			existing:  []domain.Appointment{apt1(domain.StatusScheduled)},
			wantErrs: []string{
				"Time slot 10:00 is already booked",
				"Stylist s1 is not available at 10:00",
			},
		},
		{
			name: "one error per offending pair",
			candidate: candidate(
				domain.ServiceStylistPair{ServiceID: "cut", StylistID: "s1"},
				domain.ServiceStylistPair{ServiceID: "color", StylistID: "s1"},
				domain.ServiceStylistPair{ServiceID: "wash", StylistID: "s3"},
			),
			existing: []domain.Appointment{apt1(domain.StatusInService)},
			wantErrs: []string{
				"Time slot 10:00 is already booked",
				"Stylist s1 is not available at 10:00",
				"Stylist s1 is not available at 10:00",
			},
		},
		{
			name:      "unassigned pair is skipped",
			candidate: candidate(domain.ServiceStylistPair{ServiceID: "cut"}),
			existing:  []domain.Appointment{apt1(domain.StatusConfirmed)},
			wantErrs:  []string{"Time slot 10:00 is already booked"},
		},
		{
			name:      "any_available is checked like a stylist",
			candidate: candidate(domain.ServiceStylistPair{ServiceID: "cut", StylistID: domain.AnyAvailableStylistID}),
			existing: func() []domain.Appointment {
				a := apt1(domain.StatusConfirmed)
				a.ServiceStylistPairs[0].StylistID = domain.AnyAvailableStylistID
				return []domain.Appointment{a}
			}(),
			wantErrs: []string{
				"Time slot 10:00 is already booked",
				"Stylist any_available is not available at 10:00",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateAppointmentBooking(tt.candidate, tt.existing, tt.excludeID)

			assert.Equal(t, tt.wantValid, result.IsValid)
			assert.Equal(t, tt.wantErrs, result.Errors)
		})
	}
}

func TestValidateAppointmentBooking_Idempotent(t *testing.T) {
	c := candidate(domain.ServiceStylistPair{ServiceID: "cut", StylistID: "s1"})
	existing := []domain.Appointment{apt1(domain.StatusConfirmed)}

	assert.Equal(t,
		ValidateAppointmentBooking(c, existing, nil),
		ValidateAppointmentBooking(c, existing, nil),
	)
}

func TestValidator_PendingPolicy(t *testing.T) {
	c := candidate(domain.ServiceStylistPair{ServiceID: "cut", StylistID: "s1"})
	existing := []domain.Appointment{apt1(domain.StatusPending)}

	assert.True(t, ValidateAppointmentBooking(c, existing, nil).IsValid)

	v := NewValidator(conflict.NewDetector(conflict.PendingActivePolicy()))
	assert.False(t, v.AppointmentBooking(c, existing, nil).IsValid)
}

func TestValidateRequiredFields(t *testing.T) {
	t.Run("complete candidate", func(t *testing.T) {
		errs := ValidateRequiredFields(candidate(domain.ServiceStylistPair{ServiceID: "cut", StylistID: "s1"}))
		assert.Empty(t, errs)
	})

	t.Run("everything missing", func(t *testing.T) {
		errs := ValidateRequiredFields(domain.BookingCandidate{})
		assert.Equal(t, []string{
			"Branch is required",
			"At least one service is required",
			"Appointment date is required",
			"Appointment time is required",
		}, errs)
	})

	t.Run("service without stylist", func(t *testing.T) {
		errs := ValidateRequiredFields(candidate(
			domain.ServiceStylistPair{ServiceID: "cut", StylistID: domain.AnyAvailableStylistID},
			domain.ServiceStylistPair{ServiceID: "color"},
		))
		assert.Equal(t, []string{"Service color has no stylist assigned"}, errs)
	})
}

func TestValidateAppointmentTime(t *testing.T) {
	tests := []struct {
		name     string
		date     types.Date
		time     types.TimeString
		duration int
		want     []string
	}{
		{name: "aligned slot", date: day, time: "09:30", want: []string{}},
		{name: "last slot", date: day, time: "17:30", want: []string{}},
		{name: "closed day", date: types.NewDate(2024, 1, 7), time: "10:00", want: []string{"Branch is closed on sunday"}},
		{name: "missing day", date: types.NewDate(2024, 1, 3), time: "10:00", want: []string{"Branch is closed on wednesday"}},
		{name: "before open", date: day, time: "08:30", want: []string{"Time 08:30 is outside operating hours (09:00-18:00)"}},
		{name: "at close", date: day, time: "18:00", want: []string{"Time 18:00 is outside operating hours (09:00-18:00)"}},
		{name: "misaligned", date: day, time: "10:15", want: []string{"Time 10:15 is not aligned to 30-minute slots"}},
		{name: "hourly misaligned", date: day, time: "09:30", duration: 60, want: []string{"Time 09:30 is not aligned to 60-minute slots"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			duration := tt.duration
			if duration == 0 {
				duration = 30
			}
			assert.Equal(t, tt.want, ValidateAppointmentTime(hours(), tt.date, tt.time, duration))
		})
	}
}

func TestValidateBooking_CollectsEverything(t *testing.T) {
	c := domain.BookingCandidate{
		BranchID:        "b1",
		AppointmentDate: day,
		AppointmentTime: "10:00",
		ServiceStylistPairs: []domain.ServiceStylistPair{
			{ServiceID: "cut", StylistID: "s1", StylistName: ptr.Ptr("John")},
			{ServiceID: "color"},
		},
	}

	result := ValidateBooking(c, hours(), []domain.Appointment{apt1(domain.StatusConfirmed)}, nil, 30)

	assert.False(t, result.IsValid)
	assert.Equal(t, []string{
		"Service color has no stylist assigned",
		"Time slot 10:00 is already booked",
		"Stylist John is not available at 10:00",
	}, result.Errors)
	assert.Len(t, result.Conflicts, 1)
}

func TestValidateBooking_ClosedAndConflicting(t *testing.T) {
	c := candidate(domain.ServiceStylistPair{ServiceID: "cut", StylistID: "s1"})
	c.AppointmentDate = types.NewDate(2024, 1, 7)

	result := ValidateBooking(c, hours(), nil, nil, 30)

	assert.False(t, result.IsValid)
	assert.Equal(t, []string{"Branch is closed on sunday"}, result.Errors)
	assert.Empty(t, result.Conflicts)
}

func TestValidateBooking_Valid(t *testing.T) {
	c := candidate(domain.ServiceStylistPair{ServiceID: "cut", StylistID: "s2"})

	result := ValidateBooking(c, hours(), []domain.Appointment{apt1(domain.StatusCompleted)}, nil, 30)

	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
}
