package model

import (
	"errors"
	"testing"
)

func TestQuestValidateSuccess(t *testing.T) {
	quest := Quest{
		ID:    "quest-1",
		Title: "DAILY QUEST",
		Goals: []Goal{
			{ID: "g-1", Exercise: "PUSH-UPS", Target: 100},
			{ID: "g-2", Exercise: "RUN", Target: 10, Unit: "KM"},
		},
	}
	if err := quest.Validate(); err != nil {
		t.Fatalf("expected valid quest, got error: %v", err)
	}
}

func TestQuestValidateRejectsDuplicateGoalIDs(t *testing.T) {
	quest := Quest{
		ID:    "quest-1",
		Title: "DAILY QUEST",
		Goals: []Goal{
			{ID: "g-1", Exercise: "PUSH-UPS", Target: 100},
			{ID: "g-1", Exercise: "SIT-UPS", Target: 100},
		},
	}
	err := quest.Validate()
	if err == nil || !errors.Is(err, ErrDuplicateGoalID) {
		t.Fatalf("expected ErrDuplicateGoalID, got: %v", err)
	}
}

func TestGoalValidateBounds(t *testing.T) {
	goal := Goal{ID: "g-1", Exercise: "PUSH-UPS", Target: 0}
	if err := goal.Validate(); err == nil || !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget, got: %v", err)
	}

	goal = Goal{ID: "g-1", Exercise: "PUSH-UPS", Target: 100, Current: -1}
	if err := goal.Validate(); err == nil || !errors.Is(err, ErrNegativeCurrent) {
		t.Fatalf("expected ErrNegativeCurrent, got: %v", err)
	}
}

func TestAllGoalsMet(t *testing.T) {
	quest := Quest{
		ID:    "quest-1",
		Title: "DAILY QUEST",
		Goals: []Goal{
			{ID: "g-1", Exercise: "PUSH-UPS", Target: 100, Current: 100},
			{ID: "g-2", Exercise: "RUN", Target: 10, Current: 4, Unit: "KM"},
		},
	}
	if quest.AllGoalsMet() {
		t.Fatal("expected quest with an unmet goal to not be all-met")
	}

	quest.Goals[1].Current = 10
	if !quest.AllGoalsMet() {
		t.Fatal("expected quest with all goals at target to be all-met")
	}

	quest.Goals[0].Current = 180
	if !quest.AllGoalsMet() {
		t.Fatal("expected over-target progress to still count as met")
	}
}

func TestAllGoalsMetVacuousOnEmptyQuest(t *testing.T) {
	quest := Quest{ID: "quest-1", Title: "EMPTY"}
	if !quest.AllGoalsMet() {
		t.Fatal("expected quest with zero goals to be vacuously all-met")
	}
}

func TestWithZeroProgressDoesNotMutateOriginal(t *testing.T) {
	quest := Quest{
		ID:    "quest-1",
		Title: "DAILY QUEST",
		Goals: []Goal{
			{ID: "g-1", Exercise: "PUSH-UPS", Target: 100, Current: 55},
		},
	}
	reset := quest.WithZeroProgress()
	if reset.Goals[0].Current != 0 {
		t.Fatalf("expected reset goal current 0, got %d", reset.Goals[0].Current)
	}
	if quest.Goals[0].Current != 55 {
		t.Fatalf("expected original untouched, got %d", quest.Goals[0].Current)
	}
}

func TestGoalLabel(t *testing.T) {
	goal := Goal{ID: "g-1", Exercise: "RUN", Target: 10, Current: 3, Unit: "KM"}
	if got := goal.Label(); got != "RUN 3/10 KM" {
		t.Fatalf("unexpected label: %q", got)
	}
	goal = Goal{ID: "g-2", Exercise: "PUSH-UPS", Target: 100, Current: 40}
	if got := goal.Label(); got != "PUSH-UPS 40/100" {
		t.Fatalf("unexpected label: %q", got)
	}
}
