package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// AppointmentStatus represents the lifecycle status of an appointment.
// The same enum is used by the API, the storage layer and the conflict engine.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusScheduled AppointmentStatus = "scheduled"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusInService AppointmentStatus = "in_service"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// AllStatuses lists every status accepted on write paths
var AllStatuses = []AppointmentStatus{
	StatusPending,
	StatusScheduled,
	StatusConfirmed,
	StatusInService,
	StatusCompleted,
	StatusCancelled,
}

// ParseAppointmentStatus validates a status coming from a client
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	for _, status := range AllStatuses {
		if string(status) == s {
			return status, nil
		}
	}
	return "", ErrUnknownStatus
}

// IsTerminal returns true for statuses that can no longer change
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// statusTransitions allowed moves between statuses
var statusTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:   {StatusScheduled, StatusConfirmed, StatusCancelled},
	StatusScheduled: {StatusConfirmed, StatusInService, StatusCancelled},
	StatusConfirmed: {StatusInService, StatusCancelled},
	StatusInService: {StatusCompleted},
}

// CanTransitionTo returns true if the status may move to next
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// StylistAssignment describes how a service is staffed
type StylistAssignment int

const (
	// StylistUnassigned no stylist chosen yet (in-progress form state)
	StylistUnassigned StylistAssignment = iota
	// StylistAnyAvailable client accepts whichever stylist is free
	StylistAnyAvailable
	// StylistSpecific a concrete stylist was requested
	StylistSpecific
)

// ServiceStylistPair is one service of an appointment and the stylist delivering it
type ServiceStylistPair struct {
	ServiceID   string
	StylistID   string
	StylistName *string
}

// Assignment classifies the stylist id of the pair
func (p ServiceStylistPair) Assignment() StylistAssignment {
	switch p.StylistID {
	case "":
		return StylistUnassigned
	case AnyAvailableStylistID:
		return StylistAnyAvailable
	default:
		return StylistSpecific
	}
}

// DisplayName returns the stylist name if known, the stylist id otherwise
func (p ServiceStylistPair) DisplayName() string {
	if p.StylistName != nil && *p.StylistName != "" {
		return *p.StylistName
	}
	return p.StylistID
}

// Appointment represents a salon appointment occupying a single time slot
type Appointment struct {
	ID                  string
	BranchID            string
	ClientName          string
	ClientPhone         *string
	AppointmentDate     types.Date
	AppointmentTime     types.TimeString
	Status              AppointmentStatus
	ServiceStylistPairs []ServiceStylistPair
	Notes               *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasStylist returns true if any of the appointment's pairs is assigned to stylistID
func (a *Appointment) HasStylist(stylistID string) bool {
	for _, pair := range a.ServiceStylistPairs {
		if pair.StylistID == stylistID {
			return true
		}
	}
	return false
}

// CanBeCancelled returns true if the appointment has not reached a terminal status
func (a *Appointment) CanBeCancelled() bool {
	return !a.Status.IsTerminal() && a.Status != StatusInService
}

// CanBeRescheduled returns true if the appointment can be moved to another slot
func (a *Appointment) CanBeRescheduled() bool {
	return a.Status == StatusPending || a.Status == StatusScheduled || a.Status == StatusConfirmed
}

// BookingCandidate is a proposed booking under validation, never persisted as is
type BookingCandidate struct {
	BranchID            string
	AppointmentDate     types.Date
	AppointmentTime     types.TimeString
	ServiceStylistPairs []ServiceStylistPair
}

// AppointmentsFilter фильтр для получения записей филиала
type AppointmentsFilter struct {
	BranchID        string             // Обязательный параметр
	StartDate       *types.Date        // Начало периода (опционально)
	EndDate         *types.Date        // Конец периода (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	StylistID       *string            // Фильтр по мастеру (опционально)
	IncludeInactive bool               // Включать ли завершённые и отменённые записи
}
