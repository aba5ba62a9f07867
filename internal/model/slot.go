package model

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidSlotTime = errors.New("model: invalid reminder slot time")
	ErrInvalidSlotDay  = errors.New("model: invalid reminder slot day")
)

// ReminderSlot is one weekly-recurring reminder: a time of day plus the
// ISO weekdays (1 = Monday .. 7 = Sunday) it fires on.
type ReminderSlot struct {
	ID      string `json:"id"`
	Hour    int    `json:"hour"`
	Minute  int    `json:"minute"`
	Days    []int  `json:"days"`
	Enabled bool   `json:"enabled"`
}

func (s ReminderSlot) Validate() error {
	if s.ID == "" {
		return errors.New("model: reminder slot id is required")
	}
	if s.Hour < 0 || s.Hour > 23 || s.Minute < 0 || s.Minute > 59 {
		return fmt.Errorf("%w: %02d:%02d", ErrInvalidSlotTime, s.Hour, s.Minute)
	}
	seen := make(map[int]bool, len(s.Days))
	for _, d := range s.Days {
		if d < 1 || d > 7 {
			return fmt.Errorf("%w: %d", ErrInvalidSlotDay, d)
		}
		if seen[d] {
			return fmt.Errorf("%w: duplicate %d", ErrInvalidSlotDay, d)
		}
		seen[d] = true
	}
	return nil
}

// Clock renders the slot's time of day, e.g. "21:00".
func (s ReminderSlot) Clock() string {
	return fmt.Sprintf("%02d:%02d", s.Hour, s.Minute)
}

// NextOccurrence returns the first instant strictly after from that
// falls on the given ISO weekday at the slot's time of day, in from's
// location. Days outside 1..7 yield the zero time.
func (s ReminderSlot) NextOccurrence(day int, from time.Time) time.Time {
	if day < 1 || day > 7 {
		return time.Time{}
	}
	weekday := time.Weekday(day % 7)
	probe := time.Date(from.Year(), from.Month(), from.Day(), s.Hour, s.Minute, 0, 0, from.Location())
	for !probe.After(from) || probe.Weekday() != weekday {
		probe = probe.AddDate(0, 0, 1)
	}
	return probe
}

var everyDay = []int{1, 2, 3, 4, 5, 6, 7}

// DefaultReminderSlots seeds the first-run reminder schedule:
// 10:00 and 21:00, every day.
func DefaultReminderSlots() []ReminderSlot {
	return []ReminderSlot{
		{ID: "default-morning", Hour: 10, Minute: 0, Days: append([]int(nil), everyDay...), Enabled: true},
		{ID: "default-evening", Hour: 21, Minute: 0, Days: append([]int(nil), everyDay...), Enabled: true},
	}
}
