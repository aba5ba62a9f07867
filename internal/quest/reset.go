package quest

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sandeepkv93/questd/internal/dateutil"
	"github.com/sandeepkv93/questd/internal/model"
)

// ResetPolicy selects how goal progress is zeroed across a day
// boundary.
type ResetPolicy string

const (
	// ResetPolicyPerQuest zeroes only quests completed on a date
	// before today. In-progress quests carry their counts over.
	ResetPolicyPerQuest ResetPolicy = "per_quest"

	// ResetPolicyGlobal is the legacy behavior: any day rollover
	// since the snapshot was last touched wipes every quest.
	ResetPolicyGlobal ResetPolicy = "global"
)

func ParseResetPolicy(s string) (ResetPolicy, error) {
	switch ResetPolicy(s) {
	case ResetPolicyPerQuest, ResetPolicyGlobal:
		return ResetPolicy(s), nil
	case "":
		return ResetPolicyPerQuest, nil
	default:
		return "", fmt.Errorf("quest: unknown reset policy %q", s)
	}
}

// ResetEngine decides, on startup and on periodic foreground checks,
// which quests must have their goal progress zeroed because a new
// calendar day has started. Running it twice in the same local day is
// a no-op the second time.
type ResetEngine struct {
	repo    *Repository
	tracker *CompletionTracker
	logger  *zap.Logger
	policy  ResetPolicy
	nowFn   func() time.Time
}

func NewResetEngine(repo *Repository, tracker *CompletionTracker, logger *zap.Logger, policy ResetPolicy) *ResetEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if policy == "" {
		policy = ResetPolicyPerQuest
	}
	return &ResetEngine{
		repo:    repo,
		tracker: tracker,
		logger:  logger,
		policy:  policy,
		nowFn:   time.Now,
	}
}

// CheckDailyReset runs one reset pass and reports whether any quest
// was reset. The host calls it after load, on foreground transitions,
// and on a short periodic tick.
func (e *ResetEngine) CheckDailyReset(ctx context.Context) (bool, error) {
	today := dateutil.DateString(e.nowFn())

	var (
		changed bool
		err     error
	)
	switch e.policy {
	case ResetPolicyGlobal:
		changed, err = e.resetGlobal(ctx, today)
	default:
		changed, err = e.resetPerQuest(ctx, today)
	}
	if err != nil {
		return changed, err
	}

	if _, purgeErr := e.tracker.PurgeStale(ctx, today); purgeErr != nil {
		return changed, purgeErr
	}
	return changed, nil
}

// resetPerQuest zeroes each quest whose recorded completion date is
// strictly before today. Quests never completed, or completed today,
// keep their progress. Completion dates are snapshotted up front; the
// rewrite itself happens inside one repository critical section so it
// cannot clobber a concurrent goal mutation.
func (e *ResetEngine) resetPerQuest(ctx context.Context, today string) (bool, error) {
	stale := make(map[string]bool)
	for _, q := range e.repo.Quests() {
		if date, ok := e.tracker.CompletionDate(q.ID); ok && date < today {
			stale[q.ID] = true
		}
	}
	if len(stale) == 0 {
		return false, nil
	}

	var reset []string
	changed, err := e.repo.replaceWhere(ctx, func(quests []model.Quest) bool {
		for i, q := range quests {
			if stale[q.ID] {
				quests[i] = q.WithZeroProgress()
				reset = append(reset, q.ID)
			}
		}
		return len(reset) > 0
	})
	if changed {
		e.logger.Info("daily reset", zap.String("today", today), zap.Strings("quest_ids", reset))
	}
	return changed, err
}

// resetGlobal wipes every quest's progress once the snapshot's last
// active date falls behind today, regardless of completion state.
func (e *ResetEngine) resetGlobal(ctx context.Context, today string) (bool, error) {
	if e.repo.getLastActiveDate() >= today {
		return false, nil
	}

	// The persist stamps today as the last active date, so the next
	// pass within the same day finds nothing to do.
	changed, err := e.repo.replaceWhere(ctx, func(quests []model.Quest) bool {
		for i, q := range quests {
			quests[i] = q.WithZeroProgress()
		}
		return len(quests) > 0
	})
	if changed {
		e.logger.Info("daily reset (global)", zap.String("today", today))
	}
	return changed, err
}
