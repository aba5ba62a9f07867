package model

import (
	"errors"
	"testing"
	"time"
)

func TestReminderSlotValidate(t *testing.T) {
	slot := ReminderSlot{ID: "morning", Hour: 10, Minute: 0, Days: []int{1, 3, 5}, Enabled: true}
	if err := slot.Validate(); err != nil {
		t.Fatalf("expected valid slot, got error: %v", err)
	}

	slot.Hour = 24
	if err := slot.Validate(); err == nil || !errors.Is(err, ErrInvalidSlotTime) {
		t.Fatalf("expected ErrInvalidSlotTime, got: %v", err)
	}

	slot.Hour = 10
	slot.Days = []int{0}
	if err := slot.Validate(); err == nil || !errors.Is(err, ErrInvalidSlotDay) {
		t.Fatalf("expected ErrInvalidSlotDay, got: %v", err)
	}

	slot.Days = []int{2, 2}
	if err := slot.Validate(); err == nil || !errors.Is(err, ErrInvalidSlotDay) {
		t.Fatalf("expected ErrInvalidSlotDay for duplicate, got: %v", err)
	}
}

func TestNextOccurrenceSameDayLaterClock(t *testing.T) {
	// 2024-01-01 is a Monday.
	from := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	slot := ReminderSlot{ID: "s", Hour: 10, Minute: 30, Days: []int{1}}
	got := slot.NextOccurrence(1, from)
	want := time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestNextOccurrenceRollsToNextWeek(t *testing.T) {
	// Already past 10:30 on Monday, next Monday trigger is a week out.
	from := time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC)
	slot := ReminderSlot{ID: "s", Hour: 10, Minute: 30, Days: []int{1}}
	got := slot.NextOccurrence(1, from)
	want := time.Date(2024, 1, 8, 10, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestNextOccurrenceISOSunday(t *testing.T) {
	from := time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC)
	slot := ReminderSlot{ID: "s", Hour: 9, Minute: 0, Days: []int{7}}
	got := slot.NextOccurrence(7, from)
	want := time.Date(2024, 1, 7, 9, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if got.Weekday() != time.Sunday {
		t.Fatalf("expected Sunday, got %v", got.Weekday())
	}
}

func TestNextOccurrenceIsStrictlyAfterFrom(t *testing.T) {
	from := time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)
	slot := ReminderSlot{ID: "s", Hour: 10, Minute: 30, Days: []int{1}}
	got := slot.NextOccurrence(1, from)
	if !got.After(from) {
		t.Fatalf("expected occurrence after %v, got %v", from, got)
	}
}

func TestNextOccurrenceOutOfRangeDayIsZero(t *testing.T) {
	from := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	slot := ReminderSlot{ID: "s", Hour: 10, Minute: 0, Days: []int{-1}}
	for _, day := range []int{-1, 0, 8} {
		if got := slot.NextOccurrence(day, from); !got.IsZero() {
			t.Fatalf("day %d: expected zero time, got %v", day, got)
		}
	}
}

func TestDefaultReminderSlots(t *testing.T) {
	slots := DefaultReminderSlots()
	if len(slots) != 2 {
		t.Fatalf("expected 2 default slots, got %d", len(slots))
	}
	for _, s := range slots {
		if err := s.Validate(); err != nil {
			t.Fatalf("default slot %s invalid: %v", s.ID, err)
		}
		if !s.Enabled {
			t.Fatalf("default slot %s should be enabled", s.ID)
		}
		if len(s.Days) != 7 {
			t.Fatalf("default slot %s should cover every day", s.ID)
		}
	}
	if slots[0].Hour != 10 || slots[1].Hour != 21 {
		t.Fatalf("unexpected default hours: %d, %d", slots[0].Hour, slots[1].Hour)
	}
}
