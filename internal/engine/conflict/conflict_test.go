package conflict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var day = types.NewDate(2024, 1, 1)

func appointment(id, branch, tm string, status domain.AppointmentStatus, stylists ...string) domain.Appointment {
	pairs := make([]domain.ServiceStylistPair, 0, len(stylists))
	for i, s := range stylists {
		pairs = append(pairs, domain.ServiceStylistPair{ServiceID: "svc" + string(rune('1'+i)), StylistID: s})
	}
	return domain.Appointment{
		ID:                  id,
		BranchID:            branch,
		AppointmentDate:     day,
		AppointmentTime:     types.TimeString(tm),
		Status:              status,
		ServiceStylistPairs: pairs,
	}
}

func slotQuery() Query {
	return Query{BranchID: ptr.Ptr("b1"), Date: day, Time: "10:00"}
}

func TestCheckTimeSlotConflict_Scenarios(t *testing.T) {
	apt1 := appointment("apt1", "b1", "10:00", domain.StatusConfirmed, "s1")

	t.Run("confirmed appointment conflicts", func(t *testing.T) {
		result := CheckTimeSlotConflict([]domain.Appointment{apt1}, slotQuery())

		assert.True(t, result.HasConflict)
		assert.Equal(t, 1, result.ConflictCount)
		require.Len(t, result.Conflicts, 1)
		assert.Equal(t, "apt1", result.Conflicts[0].ID)
	})

	t.Run("cancelled appointment does not conflict", func(t *testing.T) {
		cancelled := apt1
		cancelled.Status = domain.StatusCancelled

		result := CheckTimeSlotConflict([]domain.Appointment{cancelled}, slotQuery())

		assert.False(t, result.HasConflict)
		assert.Empty(t, result.Conflicts)
		assert.Zero(t, result.ConflictCount)
	})

	t.Run("excluded appointment does not conflict with itself", func(t *testing.T) {
		q := slotQuery()
		q.ExcludeAppointmentID = ptr.Ptr("apt1")

		assert.False(t, CheckTimeSlotConflict([]domain.Appointment{apt1}, q).HasConflict)
	})

	t.Run("different stylist does not conflict", func(t *testing.T) {
		q := slotQuery()
		q.StylistID = ptr.Ptr("s2")

		assert.False(t, CheckTimeSlotConflict([]domain.Appointment{apt1}, q).HasConflict)
	})

	t.Run("same stylist conflicts", func(t *testing.T) {
		q := slotQuery()
		q.StylistID = ptr.Ptr("s1")

		assert.True(t, CheckTimeSlotConflict([]domain.Appointment{apt1}, q).HasConflict)
	})
}

func TestCheckTimeSlotConflict_Filters(t *testing.T) {
	tests := []struct {
		name  string
		appt  domain.Appointment
		query func() Query
		want  bool
	}{
		{
			name:  "other branch",
			appt:  appointment("a", "b2", "10:00", domain.StatusConfirmed, "s1"),
			query: slotQuery,
			want:  false,
		},
		{
			name: "other branch ignored when branch filter is absent",
			appt: appointment("a", "b2", "10:00", domain.StatusConfirmed, "s1"),
			query: func() Query {
				return Query{Date: day, Time: "10:00", StylistID: ptr.Ptr("s1")}
			},
			want: true,
		},
		{
			name: "other date",
			appt: func() domain.Appointment {
				a := appointment("a", "b1", "10:00", domain.StatusConfirmed)
				a.AppointmentDate = day.AddDays(1)
				return a
			}(),
			query: slotQuery,
			want:  false,
		},
		{
			name:  "other time",
			appt:  appointment("a", "b1", "10:30", domain.StatusConfirmed),
			query: slotQuery,
			want:  false,
		},
		{
			name:  "scheduled is active",
			appt:  appointment("a", "b1", "10:00", domain.StatusScheduled),
			query: slotQuery,
			want:  true,
		},
		{
			name:  "in service is active",
			appt:  appointment("a", "b1", "10:00", domain.StatusInService),
			query: slotQuery,
			want:  true,
		},
		{
			name:  "completed is inert",
			appt:  appointment("a", "b1", "10:00", domain.StatusCompleted),
			query: slotQuery,
			want:  false,
		},
		{
			name:  "pending is inert under default policy",
			appt:  appointment("a", "b1", "10:00", domain.StatusPending),
			query: slotQuery,
			want:  false,
		},
		{
			name:  "unknown status is inert",
			appt:  appointment("a", "b1", "10:00", domain.AppointmentStatus("archived")),
			query: slotQuery,
			want:  false,
		},
		{
			name: "stylist filter with no pairs",
			appt: appointment("a", "b1", "10:00", domain.StatusConfirmed),
			query: func() Query {
				q := slotQuery()
				q.StylistID = ptr.Ptr("s1")
				return q
			},
			want: false,
		},
		{
			name: "stylist matched on second pair",
			appt: appointment("a", "b1", "10:00", domain.StatusConfirmed, "s9", "s1"),
			query: func() Query {
				q := slotQuery()
				q.StylistID = ptr.Ptr("s1")
				return q
			},
			want: true,
		},
		{
			name: "any_available sentinel is compared like a stylist id",
			appt: appointment("a", "b1", "10:00", domain.StatusConfirmed, domain.AnyAvailableStylistID),
			query: func() Query {
				q := slotQuery()
				q.StylistID = ptr.Ptr(domain.AnyAvailableStylistID)
				return q
			},
			want: true,
		},
		{
			name: "time compared by value",
			appt: appointment("a", "b1", "9:00", domain.StatusConfirmed),
			query: func() Query {
				q := slotQuery()
				q.Time = "09:00"
				return q
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CheckTimeSlotConflict([]domain.Appointment{tt.appt}, tt.query())
			assert.Equal(t, tt.want, result.HasConflict)
			assert.Equal(t, len(result.Conflicts), result.ConflictCount)
		})
	}
}

func TestCheckTimeSlotConflict_PreservesOrderAndIsIdempotent(t *testing.T) {
	existing := []domain.Appointment{
		appointment("c", "b1", "10:00", domain.StatusConfirmed, "s3"),
		appointment("x", "b1", "10:00", domain.StatusCancelled, "s1"),
		appointment("a", "b1", "10:00", domain.StatusScheduled, "s1"),
		appointment("b", "b1", "10:00", domain.StatusInService, "s2"),
	}

	first := CheckTimeSlotConflict(existing, slotQuery())
	second := CheckTimeSlotConflict(existing, slotQuery())

	require.Len(t, first.Conflicts, 3)
	assert.Equal(t, "c", first.Conflicts[0].ID)
	assert.Equal(t, "a", first.Conflicts[1].ID)
	assert.Equal(t, "b", first.Conflicts[2].ID)
	assert.Equal(t, first, second)
}

func TestCheckTimeSlotConflict_ExclusionNeverReportsSelf(t *testing.T) {
	statuses := []domain.AppointmentStatus{domain.StatusScheduled, domain.StatusConfirmed, domain.StatusInService}

	for _, status := range statuses {
		a := appointment("self", "b1", "10:00", status, "s1")
		q := Query{
			BranchID:             ptr.Ptr("b1"),
			Date:                 day,
			Time:                 "10:00",
			StylistID:            ptr.Ptr("s1"),
			ExcludeAppointmentID: ptr.Ptr("self"),
		}

		assert.False(t, CheckTimeSlotConflict([]domain.Appointment{a}, q).HasConflict, string(status))
	}
}

func TestCheckTimeSlotConflict_EmptyInput(t *testing.T) {
	result := CheckTimeSlotConflict(nil, slotQuery())

	assert.False(t, result.HasConflict)
	assert.NotNil(t, result.Conflicts)
}

func TestDetector_PendingActivePolicy(t *testing.T) {
	pending := appointment("p", "b1", "10:00", domain.StatusPending, "s1")
	detector := NewDetector(PendingActivePolicy())

	assert.True(t, detector.Check([]domain.Appointment{pending}, slotQuery()).HasConflict)
	assert.False(t, detector.IsStylistAvailable([]domain.Appointment{pending}, "s1", day, "10:00", nil))
	assert.True(t, detector.Policy().IsActive(domain.StatusConfirmed))
}

func TestIsStylistAvailable(t *testing.T) {
	existing := []domain.Appointment{
		appointment("a", "b2", "10:00", domain.StatusConfirmed, "s1"),
	}

	assert.False(t, IsStylistAvailable(existing, "s1", day, "10:00", nil))
	assert.True(t, IsStylistAvailable(existing, "s1", day, "10:00", ptr.Ptr("a")))
	assert.True(t, IsStylistAvailable(existing, "s2", day, "10:00", nil))
	assert.True(t, IsStylistAvailable(existing, "s1", day, "10:30", nil))
}
