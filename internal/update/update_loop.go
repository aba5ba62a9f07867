package update

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/questd/internal/model"
	"github.com/sandeepkv93/questd/internal/scheduler"
	"github.com/sandeepkv93/questd/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		checkResetCmd(m.Services),
		resetTickCmd(m.Config.ResetCheckInterval),
	}
	if m.Services.Scheduler != nil {
		cmds = append(cmds, waitForReminderCmd(m.Services.Scheduler.C()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)

	case SwitchViewMsg:
		m.CurrentView = typed.View
		return m, nil

	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil

	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil

	case ResetTickMsg:
		return m, tea.Batch(
			checkResetCmd(m.Services),
			resetTickCmd(m.Config.ResetCheckInterval),
		)

	case ResetCheckedMsg:
		if typed.Err != nil {
			m.LastError = typed.Err
			m.Status = StatusBar{Text: "error: daily reset check failed", IsError: true}
			return m, nil
		}
		if typed.Changed {
			m.Status = StatusBar{Text: "daily reset applied", IsError: false}
			m.GoalCursor = 0
		}
		return m, nil

	case ReminderDueMsg:
		notification := Notification{
			Title: "Quest Reminder",
			Body:  "Don't forget to complete your quest!",
			At:    typed.Event.TriggerAt,
		}
		m.Notifications = append(m.Notifications, notification)
		if m.DesktopEnabled {
			_ = m.notifier.Send(notification)
		}
		if m.Services.Scheduler != nil {
			return m, waitForReminderCmd(m.Services.Scheduler.C())
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Palette.Active {
		return m.handlePaletteKey(key)
	}

	switch key.String() {
	case "ctrl+c", m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	case "/":
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active", IsError: false}
		return m, nil
	case m.Keys.Board:
		m.CurrentView = ViewBoard
		return m, nil
	case m.Keys.Quests:
		m.CurrentView = ViewQuests
		return m, nil
	case m.Keys.Reminders:
		m.CurrentView = ViewReminders
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	}

	switch m.CurrentView {
	case ViewBoard:
		return m.handleBoardKey(key)
	case ViewQuests:
		return m.handleQuestsKey(key)
	case ViewReminders:
		return m.handleRemindersKey(key)
	}
	return m, nil
}

func (m Model) handleBoardKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	active, ok := m.Services.Repo.ActiveQuest()
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "j", "down":
		if m.GoalCursor < len(active.Goals)-1 {
			m.GoalCursor++
		}
	case "k", "up":
		if m.GoalCursor > 0 {
			m.GoalCursor--
		}
	case "+", "=":
		m = m.adjustSelectedGoal(ctx, active.ID, 1)
	case "-":
		m = m.adjustSelectedGoal(ctx, active.ID, -1)
	case "]":
		m = m.adjustSelectedGoal(ctx, active.ID, 10)
	case "[":
		m = m.adjustSelectedGoal(ctx, active.ID, -10)
	case "c":
		if err := m.Services.Tracker.Complete(ctx, active.ID); err != nil {
			m.LastError = err
			m.Status = StatusBar{Text: "error: " + err.Error(), IsError: true}
		} else {
			m.Status = StatusBar{Text: "quest completed for today", IsError: false}
		}
	case "u":
		if err := m.Services.Tracker.Uncomplete(ctx, active.ID); err != nil {
			m.LastError = err
			m.Status = StatusBar{Text: "error: " + err.Error(), IsError: true}
		} else {
			m.Status = StatusBar{Text: "quest completion undone", IsError: false}
		}
	}
	return m, nil
}

func (m Model) adjustSelectedGoal(ctx context.Context, questID string, delta int) Model {
	active, ok := m.Services.Repo.Quest(questID)
	if !ok || len(active.Goals) == 0 {
		return m
	}
	cursor := m.GoalCursor
	if cursor >= len(active.Goals) {
		cursor = len(active.Goals) - 1
		m.GoalCursor = cursor
	}
	goal := active.Goals[cursor]
	if err := m.Services.Repo.AdjustGoalProgress(ctx, questID, goal.ID, delta); err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: "error: saving progress failed", IsError: true}
		return m
	}
	m.Status = StatusBar{Text: fmt.Sprintf("%s %+d", goal.Exercise, delta), IsError: false}
	return m
}

func (m Model) handleQuestsKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	quests := m.Services.Repo.Quests()

	switch key.String() {
	case "j", "down":
		if m.QuestCursor < len(quests)-1 {
			m.QuestCursor++
		}
	case "k", "up":
		if m.QuestCursor > 0 {
			m.QuestCursor--
		}
	case "enter":
		if m.QuestCursor < len(quests) {
			target := quests[m.QuestCursor]
			if err := m.Services.Repo.SetActive(ctx, target.ID); err != nil {
				m.LastError = err
				m.Status = StatusBar{Text: "error: activating quest failed", IsError: true}
			} else {
				m.GoalCursor = 0
				m.Status = StatusBar{Text: "active quest switched", IsError: false}
			}
		}
	case "n":
		created, err := m.Services.Repo.Create(ctx, "")
		if err != nil {
			m.LastError = err
			m.Status = StatusBar{Text: "error: creating quest failed", IsError: true}
		} else {
			m.Status = StatusBar{Text: "created " + strings.ReplaceAll(created.Title, "\n", " "), IsError: false}
		}
	case "d":
		if m.QuestCursor < len(quests) {
			target := quests[m.QuestCursor]
			if err := m.Services.Repo.Delete(ctx, target.ID); err != nil {
				m.LastError = err
				m.Status = StatusBar{Text: "error: deleting quest failed", IsError: true}
			} else {
				if m.QuestCursor > 0 {
					m.QuestCursor--
				}
				m.Status = StatusBar{Text: "quest deleted", IsError: false}
			}
		}
	}
	return m, nil
}

func (m Model) handleRemindersKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	switch key.String() {
	case "j", "down":
		if m.SlotCursor < len(m.Slots)-1 {
			m.SlotCursor++
		}
	case "k", "up":
		if m.SlotCursor > 0 {
			m.SlotCursor--
		}
	case " ", "space":
		if m.SlotCursor < len(m.Slots) {
			slots := append([]model.ReminderSlot(nil), m.Slots...)
			slots[m.SlotCursor].Enabled = !slots[m.SlotCursor].Enabled
			if err := m.Services.Slots.Save(ctx, slots); err != nil {
				m.LastError = err
				m.Status = StatusBar{Text: "error: saving reminders failed", IsError: true}
				return m, nil
			}
			m.Slots = slots
			if m.Services.Scheduler != nil {
				m.Services.Scheduler.RescheduleAll(slots)
			}
			m.Status = StatusBar{Text: "reminder schedule updated", IsError: false}
		}
	}
	return m, nil
}

func checkResetCmd(services Services) tea.Cmd {
	return func() tea.Msg {
		changed, err := services.Reset.CheckDailyReset(context.Background())
		return ResetCheckedMsg{Changed: changed, Err: err}
	}
}

func resetTickCmd(interval time.Duration) tea.Cmd {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return tea.Tick(interval, func(time.Time) tea.Msg { return ResetTickMsg{} })
}

func waitForReminderCmd(ch <-chan scheduler.ReminderEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ReminderDueMsg{Event: ev}
	}
}

func (m Model) View() string {
	if m.Quitting {
		return "bye\n"
	}

	data := views.AppData{
		Header:     "questd | [1]board [2]quests [3]reminders [/]command [?]help [q]quit",
		Body:       m.renderBody(),
		StatusLine: m.Status.Text,
		Footer:     fmt.Sprintf("view: %s", m.CurrentView),
	}
	if n := len(m.Notifications); n > 0 {
		last := m.Notifications[n-1]
		data.Notification = fmt.Sprintf("%s: %s", last.Title, last.Body)
	}

	out := views.RenderApp(data)
	if m.HelpVisible {
		out += "\n" + m.renderHelpView()
	}
	if m.Palette.Active {
		out += "\ncommand: " + m.commandInput.View()
	}
	return out
}

func (m Model) renderBody() string {
	switch m.CurrentView {
	case ViewQuests:
		return m.renderQuestsPanel()
	case ViewReminders:
		return m.renderRemindersPanel()
	default:
		return m.renderBoardPanel()
	}
}

func (m Model) renderBoardPanel() string {
	active, ok := m.Services.Repo.ActiveQuest()
	if !ok {
		return views.RenderBoardPanel(views.BoardPanelData{HasQuest: false})
	}

	goals := make([]views.BoardGoalData, 0, len(active.Goals))
	for i, g := range active.Goals {
		pct := 0.0
		if g.Target > 0 {
			pct = float64(g.Current) / float64(g.Target)
			if pct > 1 {
				pct = 1
			}
		}
		goals = append(goals, views.BoardGoalData{
			Label:       g.Label(),
			ProgressBar: m.goalProgress.ViewAs(pct),
			Complete:    g.IsComplete(),
			Selected:    i == m.GoalCursor,
		})
	}

	return views.RenderBoardPanel(views.BoardPanelData{
		Title:          active.Title,
		Goals:          goals,
		CompletedToday: m.Services.Tracker.IsCompletedToday(active.ID),
		AllGoalsMet:    active.AllGoalsMet(),
		HasQuest:       true,
	})
}

func (m Model) renderQuestsPanel() string {
	quests := m.Services.Repo.Quests()
	activeID := m.Services.Repo.ActiveQuestID()

	rows := make([]views.QuestRowData, 0, len(quests))
	for i, q := range quests {
		done := 0
		for _, g := range q.Goals {
			if g.IsComplete() {
				done++
			}
		}
		rows = append(rows, views.QuestRowData{
			Title:          q.Title,
			GoalSummary:    fmt.Sprintf("%d/%d goals", done, len(q.Goals)),
			Active:         q.ID == activeID,
			CompletedToday: m.Services.Tracker.IsCompletedToday(q.ID),
			Selected:       i == m.QuestCursor,
		})
	}
	return views.RenderQuestsPanel(views.QuestsPanelData{Rows: rows})
}

func (m Model) renderRemindersPanel() string {
	rows := make([]views.ReminderRowData, 0, len(m.Slots))
	for i, slot := range m.Slots {
		rows = append(rows, views.ReminderRowData{
			Clock:    slot.Clock(),
			Days:     formatDays(slot.Days),
			Enabled:  slot.Enabled,
			Selected: i == m.SlotCursor,
		})
	}

	next := ""
	if m.Services.Scheduler != nil {
		if ev, ok := m.Services.Scheduler.Next(); ok {
			next = ev.TriggerAt.Format("Mon 15:04")
		}
	}
	return views.RenderRemindersPanel(views.RemindersPanelData{Rows: rows, NextTrigger: next})
}

var dayNames = [8]string{"", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func formatDays(days []int) string {
	if len(days) == 7 {
		return "every day"
	}
	out := make([]string, 0, len(days))
	for _, d := range days {
		if d >= 1 && d <= 7 {
			out = append(out, dayNames[d])
		}
	}
	return strings.Join(out, " ")
}
