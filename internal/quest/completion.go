package quest

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sandeepkv93/questd/internal/dateutil"
	"github.com/sandeepkv93/questd/internal/model"
	"github.com/sandeepkv93/questd/internal/storage"
)

// CompletionKey is the storage key for the quest-id -> date map.
const CompletionKey = "quest_completion_v1"

// ErrGoalsNotMet is returned when a quest is marked complete while one
// of its goals is still below target.
var ErrGoalsNotMet = errors.New("quest: not all goals met")

// QuestSource resolves a quest id against the live collection.
// *Repository satisfies it.
type QuestSource interface {
	Quest(id string) (model.Quest, bool)
}

// CompletionTracker records which quests were completed on which local
// calendar date.
type CompletionTracker struct {
	mu      sync.Mutex
	kv      storage.KV
	logger  *zap.Logger
	nowFn   func() time.Time
	source  QuestSource
	byQuest map[string]string
}

func NewCompletionTracker(kv storage.KV, logger *zap.Logger, source QuestSource) *CompletionTracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CompletionTracker{
		kv:      kv,
		logger:  logger,
		nowFn:   time.Now,
		source:  source,
		byQuest: make(map[string]string),
	}
}

// Load reads the persisted completion map. Absent or unreadable data
// starts an empty map.
func (t *CompletionTracker) Load(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	entries := make(map[string]string)
	found, err := t.kv.Load(ctx, CompletionKey, &entries)
	if err != nil {
		t.logger.Warn("loading completion record", zap.Error(err))
		found = false
	}
	if !found {
		entries = make(map[string]string)
	}
	t.byQuest = entries
	return nil
}

// IsCompletedToday reports whether the quest was marked complete today
// and still has every goal at target. The stored entry alone is not
// authoritative: a goal edited back below target un-completes the
// quest even though the date entry remains.
func (t *CompletionTracker) IsCompletedToday(questID string) bool {
	today := dateutil.DateString(t.now())

	t.mu.Lock()
	date, ok := t.byQuest[questID]
	t.mu.Unlock()
	if !ok || date != today {
		return false
	}

	q, ok := t.source.Quest(questID)
	if !ok {
		return false
	}
	return q.AllGoalsMet()
}

// CompletionDate returns the recorded completion date for a quest.
func (t *CompletionTracker) CompletionDate(questID string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	date, ok := t.byQuest[questID]
	return date, ok
}

// Complete records today's date against the quest. Unknown quest ids
// are a no-op; a quest with an unmet goal is rejected with
// ErrGoalsNotMet rather than trusting the caller's gating.
func (t *CompletionTracker) Complete(ctx context.Context, questID string) error {
	q, ok := t.source.Quest(questID)
	if !ok {
		return nil
	}
	if !q.AllGoalsMet() {
		return ErrGoalsNotMet
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	next := copyEntries(t.byQuest)
	next[questID] = dateutil.DateString(t.now())
	t.byQuest = next
	return t.persistLocked(ctx)
}

// Uncomplete removes the entry for the quest.
func (t *CompletionTracker) Uncomplete(ctx context.Context, questID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.byQuest[questID]; !ok {
		return nil
	}
	next := copyEntries(t.byQuest)
	delete(next, questID)
	t.byQuest = next
	return t.persistLocked(ctx)
}

// PurgeStale drops every entry dated strictly before today and reports
// whether anything was removed. It only persists when something was.
func (t *CompletionTracker) PurgeStale(ctx context.Context, today string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	next := copyEntries(t.byQuest)
	changed := false
	for questID, date := range next {
		if date < today {
			delete(next, questID)
			changed = true
		}
	}
	if !changed {
		return false, nil
	}
	t.byQuest = next
	return true, t.persistLocked(ctx)
}

func (t *CompletionTracker) now() time.Time {
	return t.nowFn()
}

func (t *CompletionTracker) persistLocked(ctx context.Context) error {
	if err := t.kv.Save(ctx, CompletionKey, t.byQuest); err != nil {
		t.logger.Error("persisting completion record", zap.Error(err))
		return err
	}
	return nil
}

func copyEntries(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
