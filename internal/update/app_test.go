package update

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sandeepkv93/questd/internal/quest"
	"github.com/sandeepkv93/questd/internal/storage"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	ctx := context.Background()

	kv, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "questd.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { kv.Close() })

	repo := quest.NewRepository(kv, zap.NewNop())
	if err := repo.Load(ctx); err != nil {
		t.Fatalf("loading quests: %v", err)
	}
	tracker := quest.NewCompletionTracker(kv, zap.NewNop(), repo)
	if err := tracker.Load(ctx); err != nil {
		t.Fatalf("loading completions: %v", err)
	}
	reset := quest.NewResetEngine(repo, tracker, zap.NewNop(), quest.ResetPolicyPerQuest)
	slotStore := quest.NewSlotStore(kv, zap.NewNop())
	slots, err := slotStore.Load(ctx)
	if err != nil {
		t.Fatalf("loading slots: %v", err)
	}

	services := Services{Repo: repo, Tracker: tracker, Reset: reset, Slots: slotStore}
	return NewModel(services, slots, DefaultRuntimeConfig(), NoopDesktopNotifier{})
}

func press(t *testing.T, m Model, key tea.KeyMsg) Model {
	t.Helper()
	next, _ := m.Update(key)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("update returned unexpected model type %T", next)
	}
	return out
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestViewSwitchingKeys(t *testing.T) {
	m := newTestModel(t)
	if m.CurrentView != ViewBoard {
		t.Fatalf("expected board as initial view, got %s", m.CurrentView)
	}

	m = press(t, m, runeKey('2'))
	if m.CurrentView != ViewQuests {
		t.Errorf("expected quests view, got %s", m.CurrentView)
	}
	m = press(t, m, runeKey('3'))
	if m.CurrentView != ViewReminders {
		t.Errorf("expected reminders view, got %s", m.CurrentView)
	}
	m = press(t, m, runeKey('1'))
	if m.CurrentView != ViewBoard {
		t.Errorf("expected board view, got %s", m.CurrentView)
	}
}

func TestBoardAdjustKeys(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, runeKey('+'))
	active, ok := m.Services.Repo.ActiveQuest()
	if !ok {
		t.Fatal("expected an active quest after load")
	}
	if active.Goals[0].Current != 1 {
		t.Errorf("expected first goal at 1 after +, got %d", active.Goals[0].Current)
	}

	m = press(t, m, runeKey(']'))
	active, _ = m.Services.Repo.ActiveQuest()
	if active.Goals[0].Current != 11 {
		t.Errorf("expected first goal at 11 after ], got %d", active.Goals[0].Current)
	}

	// A big decrement clamps at zero rather than going negative.
	m = press(t, m, runeKey('['))
	m = press(t, m, runeKey('['))
	active, _ = m.Services.Repo.ActiveQuest()
	if active.Goals[0].Current != 0 {
		t.Errorf("expected first goal clamped at 0, got %d", active.Goals[0].Current)
	}
}

func TestBoardGoalCursorMoves(t *testing.T) {
	m := newTestModel(t)
	active, _ := m.Services.Repo.ActiveQuest()
	if len(active.Goals) < 2 {
		t.Fatalf("seed quest should carry multiple goals, got %d", len(active.Goals))
	}

	m = press(t, m, runeKey('j'))
	if m.GoalCursor != 1 {
		t.Errorf("expected cursor 1 after j, got %d", m.GoalCursor)
	}
	m = press(t, m, runeKey('k'))
	m = press(t, m, runeKey('k'))
	if m.GoalCursor != 0 {
		t.Errorf("cursor should stop at 0, got %d", m.GoalCursor)
	}

	m = press(t, m, runeKey('j'))
	m = press(t, m, runeKey('+'))
	active, _ = m.Services.Repo.ActiveQuest()
	if active.Goals[1].Current != 1 {
		t.Errorf("adjust should target the goal under the cursor, got %d", active.Goals[1].Current)
	}
}

func TestCompleteKeyRejectsUnmetGoals(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, runeKey('c'))
	if !m.Status.IsError {
		t.Error("completing with unmet goals should surface an error status")
	}
	active, _ := m.Services.Repo.ActiveQuest()
	if m.Services.Tracker.IsCompletedToday(active.ID) {
		t.Error("quest must not be marked complete with unmet goals")
	}
}

func TestCompleteAndUndoKeys(t *testing.T) {
	m := newTestModel(t)
	ctx := context.Background()

	active, _ := m.Services.Repo.ActiveQuest()
	for _, g := range active.Goals {
		if err := m.Services.Repo.UpdateGoalProgress(ctx, active.ID, g.ID, g.Target); err != nil {
			t.Fatalf("filling goal %s: %v", g.ID, err)
		}
	}

	m = press(t, m, runeKey('c'))
	if m.Status.IsError {
		t.Fatalf("completing a met quest should succeed, got status %q", m.Status.Text)
	}
	if !m.Services.Tracker.IsCompletedToday(active.ID) {
		t.Error("quest should be completed for today")
	}

	m = press(t, m, runeKey('u'))
	if m.Services.Tracker.IsCompletedToday(active.ID) {
		t.Error("undo should clear today's completion")
	}
}

func TestQuestsViewCreateActivateDelete(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, runeKey('2'))

	m = press(t, m, runeKey('n'))
	quests := m.Services.Repo.Quests()
	if len(quests) != 2 {
		t.Fatalf("expected 2 quests after n, got %d", len(quests))
	}
	if quests[1].Title != quest.DefaultQuestTitle {
		t.Errorf("expected default title, got %q", quests[1].Title)
	}

	m = press(t, m, runeKey('j'))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Services.Repo.ActiveQuestID() != quests[1].ID {
		t.Error("enter should activate the quest under the cursor")
	}

	m = press(t, m, runeKey('d'))
	remaining := m.Services.Repo.Quests()
	if len(remaining) != 1 {
		t.Fatalf("expected 1 quest after delete, got %d", len(remaining))
	}
	if m.Services.Repo.ActiveQuestID() != remaining[0].ID {
		t.Error("deleting the active quest should fall back to the first remaining quest")
	}
}

func TestRemindersToggle(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, runeKey('3'))

	if len(m.Slots) != 2 {
		t.Fatalf("expected 2 default slots, got %d", len(m.Slots))
	}
	wasEnabled := m.Slots[0].Enabled

	m = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.Slots[0].Enabled == wasEnabled {
		t.Error("space should toggle the selected slot")
	}

	// The toggle must survive a reload from storage.
	persisted, err := m.Services.Slots.Load(context.Background())
	if err != nil {
		t.Fatalf("reloading slots: %v", err)
	}
	if persisted[0].Enabled == wasEnabled {
		t.Error("slot toggle was not persisted")
	}
}

func TestPaletteCommands(t *testing.T) {
	m := newTestModel(t)

	m = m.runCommand("add MORNING ROUTINE")
	if m.Status.IsError {
		t.Fatalf("add command failed: %s", m.Status.Text)
	}
	quests := m.Services.Repo.Quests()
	if len(quests) != 2 || quests[1].Title != "MORNING ROUTINE" {
		t.Fatalf("add command did not create the quest: %+v", quests)
	}

	m = m.runCommand("/active 2")
	if m.Services.Repo.ActiveQuestID() != quests[1].ID {
		t.Error("active command should switch the active quest")
	}

	m = m.runCommand("rename 2 EVENING ROUTINE")
	renamed, _ := m.Services.Repo.Quest(quests[1].ID)
	if renamed.Title != "EVENING ROUTINE" {
		t.Errorf("rename command should update the title, got %q", renamed.Title)
	}

	m = m.runCommand("set 1 7")
	active, _ := m.Services.Repo.ActiveQuest()
	if active.Goals[0].Current != 7 {
		t.Errorf("set command should write the value verbatim, got %d", active.Goals[0].Current)
	}

	m = m.runCommand("delete 99")
	if !m.Status.IsError {
		t.Error("deleting a quest that does not exist should report an error")
	}

	m = m.runCommand("frobnicate")
	if !m.Status.IsError {
		t.Error("unknown commands should report an error")
	}
}

func TestResetCheckedMsgUpdatesStatus(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(ResetCheckedMsg{Changed: true})
	m = next.(Model)
	if m.Status.Text == "" || m.Status.IsError {
		t.Errorf("a reset should surface an informational status, got %+v", m.Status)
	}

	next, _ = m.Update(ResetCheckedMsg{Changed: false})
	m = next.(Model)
	if m.Status.IsError {
		t.Error("a no-op check must not surface an error")
	}
}
