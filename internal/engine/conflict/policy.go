package conflict

import "github.com/m04kA/SMC-SalonBooking/internal/domain"

// Policy decides which statuses occupy a slot.
// Statuses outside ActiveStatuses, including unknown ones, never conflict.
type Policy struct {
	ActiveStatuses []domain.AppointmentStatus
}

// DefaultPolicy active set {scheduled, confirmed, in_service}
func DefaultPolicy() Policy {
	return Policy{ActiveStatuses: domain.ActiveStatuses}
}

// PendingActivePolicy default set plus pending.
// Selected with engine.pending_is_active until the pending/scheduled split is settled.
func PendingActivePolicy() Policy {
	active := make([]domain.AppointmentStatus, 0, len(domain.ActiveStatuses)+1)
	active = append(active, domain.StatusPending)
	active = append(active, domain.ActiveStatuses...)
	return Policy{ActiveStatuses: active}
}

// IsActive reports whether status counts toward conflicts
func (p Policy) IsActive(status domain.AppointmentStatus) bool {
	for _, s := range p.ActiveStatuses {
		if s == status {
			return true
		}
	}
	return false
}
