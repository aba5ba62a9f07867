// Package quest implements the quest lifecycle: the repository owning
// the quest collection, the daily completion tracker, the daily reset
// engine, and the reminder-slot store. Each persists independently
// through the key-value store and never exposes shared mutable state.
package quest

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sandeepkv93/questd/internal/dateutil"
	"github.com/sandeepkv93/questd/internal/model"
	"github.com/sandeepkv93/questd/internal/storage"
)

// StateKey is the storage key for the durable quest snapshot.
const StateKey = "quests_state_v1"

const (
	DefaultQuestTitle = "NEW QUEST"
	seedQuestTitle    = "DAILY QUEST - TRAIN TO BECOME\nA FORMIDABLE COMBATANT"
)

type persistedState struct {
	Quests         []model.Quest `json:"quests"`
	ActiveQuestID  string        `json:"activeQuestId"`
	LastActiveDate string        `json:"lastActiveDate,omitempty"`
}

// Repository owns the in-memory quest collection and the active-quest
// pointer. Every mutation replaces the collection wholesale and writes
// the full snapshot back to storage.
type Repository struct {
	mu             sync.Mutex
	kv             storage.KV
	logger         *zap.Logger
	nowFn          func() time.Time
	quests         []model.Quest
	activeID       string
	lastActiveDate string
}

func NewRepository(kv storage.KV, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{
		kv:     kv,
		logger: logger,
		nowFn:  time.Now,
	}
}

// Load reads the persisted snapshot. When nothing usable is stored it
// seeds the default quest, makes it active, and persists immediately.
func (r *Repository) Load(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var st persistedState
	found, err := r.kv.Load(ctx, StateKey, &st)
	if err != nil {
		r.logger.Warn("loading quest state", zap.Error(err))
		found = false
	}
	if !found {
		seed := seedQuest()
		r.quests = []model.Quest{seed}
		r.activeID = seed.ID
		r.lastActiveDate = dateutil.DateString(r.nowFn())
		r.logger.Info("seeded default quest", zap.String("quest_id", seed.ID))
		return r.persistLocked(ctx)
	}

	r.quests = st.Quests
	r.activeID = st.ActiveQuestID
	r.lastActiveDate = st.LastActiveDate
	if r.lastActiveDate == "" {
		// Older snapshots predate the field; treat them as touched today.
		r.lastActiveDate = dateutil.DateString(r.nowFn())
	}
	return nil
}

// Quests returns a copy of the quest collection in display order.
func (r *Repository) Quests() []model.Quest {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Quest, 0, len(r.quests))
	for _, q := range r.quests {
		out = append(out, q.Clone())
	}
	return out
}

// Quest returns the quest with the given id, if present.
func (r *Repository) Quest(id string) (model.Quest, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, q := range r.quests {
		if q.ID == id {
			return q.Clone(), true
		}
	}
	return model.Quest{}, false
}

// ActiveQuestID returns the active pointer, which may name a quest
// that no longer exists. Empty means none.
func (r *Repository) ActiveQuestID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.activeID
}

// ActiveQuest resolves the active pointer against the live collection.
// A dangling pointer resolves to no active quest.
func (r *Repository) ActiveQuest() (model.Quest, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, q := range r.quests {
		if q.ID == r.activeID {
			return q.Clone(), true
		}
	}
	return model.Quest{}, false
}

// Create appends a new quest with a fresh id and a single default
// goal. The active pointer is left alone.
func (r *Repository) Create(ctx context.Context, title string) (model.Quest, error) {
	if title == "" {
		title = DefaultQuestTitle
	}
	q := model.Quest{
		ID:    newID("quest"),
		Title: title,
		Goals: []model.Goal{
			{ID: newID("g"), Exercise: "PUSH-UPS", Target: 10},
		},
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	next := append(append([]model.Quest(nil), r.quests...), q)
	r.quests = next
	return q.Clone(), r.persistLocked(ctx)
}

// Update replaces the stored quest matching in.ID wholesale. Unknown
// ids are a no-op.
func (r *Repository) Update(ctx context.Context, in model.Quest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := make([]model.Quest, len(r.quests))
	for i, q := range r.quests {
		if q.ID == in.ID {
			next[i] = in.Clone()
		} else {
			next[i] = q
		}
	}
	r.quests = next
	return r.persistLocked(ctx)
}

// Delete removes the quest with the given id. Deleting the active
// quest moves the pointer to the first remaining quest, or clears it.
func (r *Repository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := make([]model.Quest, 0, len(r.quests))
	for _, q := range r.quests {
		if q.ID != id {
			next = append(next, q)
		}
	}
	r.quests = next
	if r.activeID == id {
		r.activeID = ""
		if len(next) > 0 {
			r.activeID = next[0].ID
		}
	}
	return r.persistLocked(ctx)
}

// SetActive points the active quest at any id, without an existence
// check. Empty clears the pointer.
func (r *Repository) SetActive(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activeID = id
	return r.persistLocked(ctx)
}

// UpdateGoalProgress replaces the named goal's current value verbatim.
// This is the unbounded edit-flow entry point; bounds are the caller's
// concern. Unknown quest or goal ids are a no-op.
func (r *Repository) UpdateGoalProgress(ctx context.Context, questID, goalID string, value int) error {
	return r.mutateGoal(ctx, questID, goalID, func(g model.Goal) model.Goal {
		g.Current = value
		return g
	})
}

// AdjustGoalProgress applies a relative delta through the bounded
// adjustment, clamping the result to [0, 2*target].
func (r *Repository) AdjustGoalProgress(ctx context.Context, questID, goalID string, delta int) error {
	return r.mutateGoal(ctx, questID, goalID, func(g model.Goal) model.Goal {
		return g.Adjusted(delta)
	})
}

func (r *Repository) mutateGoal(ctx context.Context, questID, goalID string, fn func(model.Goal) model.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := make([]model.Quest, len(r.quests))
	for i, q := range r.quests {
		if q.ID != questID {
			next[i] = q
			continue
		}
		updated := q.Clone()
		for j, g := range updated.Goals {
			if g.ID == goalID {
				updated.Goals[j] = fn(g)
			}
		}
		next[i] = updated
	}
	r.quests = next
	return r.persistLocked(ctx)
}

// replaceWhere rewrites the collection in a single critical section:
// fn mutates a copy of the live quests in place and reports whether
// anything changed. The reset engine commits through here so a key
// handler mutating between its read and its write cannot be lost.
func (r *Repository) replaceWhere(ctx context.Context, fn func([]model.Quest) bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]model.Quest, len(r.quests))
	for i, q := range r.quests {
		next[i] = q.Clone()
	}
	if !fn(next) {
		return false, nil
	}
	r.quests = next
	return true, r.persistLocked(ctx)
}

func (r *Repository) getLastActiveDate() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastActiveDate
}

// persistLocked writes the full snapshot, stamping today as the last
// active date. Callers hold r.mu.
func (r *Repository) persistLocked(ctx context.Context) error {
	r.lastActiveDate = dateutil.DateString(r.nowFn())
	st := persistedState{
		Quests:         r.quests,
		ActiveQuestID:  r.activeID,
		LastActiveDate: r.lastActiveDate,
	}
	if err := r.kv.Save(ctx, StateKey, st); err != nil {
		r.logger.Error("persisting quest state", zap.Error(err))
		return err
	}
	return nil
}

func seedQuest() model.Quest {
	return model.Quest{
		ID:    newID("quest"),
		Title: seedQuestTitle,
		Goals: []model.Goal{
			{ID: newID("g"), Exercise: "PUSH-UPS", Target: 100},
			{ID: newID("g"), Exercise: "SIT-UPS", Target: 100},
			{ID: newID("g"), Exercise: "SQUATS", Target: 100},
			{ID: newID("g"), Exercise: "RUN", Target: 10, Unit: "KM"},
		},
	}
}

func newID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}
