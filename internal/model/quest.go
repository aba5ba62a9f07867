package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidTarget   = errors.New("model: goal target must be positive")
	ErrNegativeCurrent = errors.New("model: goal current must not be negative")
	ErrDuplicateGoalID = errors.New("model: duplicate goal id in quest")
)

// Goal is a single measurable target within a quest, e.g. "100 push-ups".
type Goal struct {
	ID       string `json:"id"`
	Exercise string `json:"exercise"`
	Target   int    `json:"target"`
	Current  int    `json:"current"`
	Unit     string `json:"unit,omitempty"`
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.ID) == "" {
		return errors.New("model: goal id is required")
	}
	if strings.TrimSpace(g.Exercise) == "" {
		return errors.New("model: goal exercise is required")
	}
	if g.Target <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTarget, g.Target)
	}
	if g.Current < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeCurrent, g.Current)
	}
	return nil
}

func (g Goal) IsComplete() bool {
	return g.Current >= g.Target
}

// Label renders the goal for display, e.g. "RUN 3/10 KM".
func (g Goal) Label() string {
	if g.Unit != "" {
		return fmt.Sprintf("%s %d/%d %s", g.Exercise, g.Current, g.Target, g.Unit)
	}
	return fmt.Sprintf("%s %d/%d", g.Exercise, g.Current, g.Target)
}

// Quest is a named routine comprising an ordered list of goals.
type Quest struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Goals []Goal `json:"goals"`
}

func (q Quest) Validate() error {
	if strings.TrimSpace(q.ID) == "" {
		return errors.New("model: quest id is required")
	}
	if strings.TrimSpace(q.Title) == "" {
		return errors.New("model: quest title is required")
	}
	seen := make(map[string]bool, len(q.Goals))
	for _, g := range q.Goals {
		if err := g.Validate(); err != nil {
			return err
		}
		if seen[g.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateGoalID, g.ID)
		}
		seen[g.ID] = true
	}
	return nil
}

// AllGoalsMet reports whether every goal has reached its target.
// A quest with no goals is vacuously complete.
func (q Quest) AllGoalsMet() bool {
	for _, g := range q.Goals {
		if !g.IsComplete() {
			return false
		}
	}
	return true
}

// Goal returns the goal with the given id, if present.
func (q Quest) Goal(goalID string) (Goal, bool) {
	for _, g := range q.Goals {
		if g.ID == goalID {
			return g, true
		}
	}
	return Goal{}, false
}

// Clone returns a copy of the quest with its own goals slice.
func (q Quest) Clone() Quest {
	out := q
	out.Goals = append([]Goal(nil), q.Goals...)
	return out
}

// WithZeroProgress returns a copy of the quest with every goal's
// current value reset to zero.
func (q Quest) WithZeroProgress() Quest {
	out := q.Clone()
	for i := range out.Goals {
		out.Goals[i].Current = 0
	}
	return out
}
