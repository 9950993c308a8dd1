package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Weekday names used as OperatingHours keys
const (
	Sunday    = "sunday"
	Monday    = "monday"
	Tuesday   = "tuesday"
	Wednesday = "wednesday"
	Thursday  = "thursday"
	Friday    = "friday"
	Saturday  = "saturday"
)

// weekdayNames is indexed by time.Weekday, Sunday = 0
var weekdayNames = [7]string{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// WeekdayName maps a time.Weekday to its lowercase name
func WeekdayName(w time.Weekday) string {
	if w < time.Sunday || w > time.Saturday {
		return ""
	}
	return weekdayNames[w]
}

// IsWeekdayName reports whether s is one of the seven weekday keys
func IsWeekdayName(s string) bool {
	for _, name := range weekdayNames {
		if name == s {
			return true
		}
	}
	return false
}

// DayOfWeekName maps a calendar date to its lowercase weekday name
func DayOfWeekName(date types.Date) string {
	return WeekdayName(date.Weekday())
}

// DaySchedule operating hours of a branch for one weekday
type DaySchedule struct {
	IsOpen bool   `json:"isOpen"`
	Open   string `json:"open"`
	Close  string `json:"close"`
}

// Validate checks that an open day has well-formed hours with close after open
func (d *DaySchedule) Validate() error {
	if !d.IsOpen {
		return nil
	}
	open, err := types.NewTimeStringFromString(d.Open)
	if err != nil {
		return fmt.Errorf("%w: open: %v", ErrInvalidDaySchedule, err)
	}
	closeTime, err := types.NewTimeStringFromString(d.Close)
	if err != nil {
		return fmt.Errorf("%w: close: %v", ErrInvalidDaySchedule, err)
	}
	if !closeTime.IsAfter(open) {
		return fmt.Errorf("%w: close %s must be after open %s", ErrInvalidDaySchedule, closeTime, open)
	}
	return nil
}

// OperatingHours weekly hours of a branch keyed by weekday name.
// A missing day is treated as closed.
type OperatingHours map[string]*DaySchedule

// ForDate returns the schedule for the weekday of date, nil if not configured
func (h OperatingHours) ForDate(date types.Date) *DaySchedule {
	if h == nil {
		return nil
	}
	return h[DayOfWeekName(date)]
}

// Validate checks every configured day
func (h OperatingHours) Validate() error {
	for day, schedule := range h {
		if !IsWeekdayName(day) {
			return fmt.Errorf("%w: unknown weekday %q", ErrInvalidDaySchedule, day)
		}
		if schedule == nil {
			continue
		}
		if err := schedule.Validate(); err != nil {
			return fmt.Errorf("%s: %w", day, err)
		}
	}
	return nil
}
