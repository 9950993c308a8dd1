package domain

import "time"

// BranchSettings booking configuration of a branch
type BranchSettings struct {
	BranchID            string
	OperatingHours      OperatingHours
	SlotDurationMinutes int
	UpdatedAt           time.Time
}

// EffectiveSlotDuration returns the configured duration or the default
func (s *BranchSettings) EffectiveSlotDuration() int {
	if s == nil || s.SlotDurationMinutes <= 0 {
		return DefaultSlotDurationMinutes
	}
	return s.SlotDurationMinutes
}

// DefaultBranchSettings settings used when a branch has none stored: closed every day
func DefaultBranchSettings(branchID string) *BranchSettings {
	return &BranchSettings{
		BranchID:            branchID,
		OperatingHours:      OperatingHours{},
		SlotDurationMinutes: DefaultSlotDurationMinutes,
	}
}
