package views

import (
	"fmt"
	"strings"
)

type BoardGoalData struct {
	Label       string
	ProgressBar string
	Complete    bool
	Selected    bool
}

type BoardPanelData struct {
	Title          string
	Goals          []BoardGoalData
	CompletedToday bool
	AllGoalsMet    bool
	HasQuest       bool
}

type QuestRowData struct {
	Title          string
	GoalSummary    string
	Active         bool
	CompletedToday bool
	Selected       bool
}

type QuestsPanelData struct {
	Rows []QuestRowData
}

type ReminderRowData struct {
	Clock    string
	Days     string
	Enabled  bool
	Selected bool
}

type RemindersPanelData struct {
	Rows        []ReminderRowData
	NextTrigger string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderBoardPanel(data BoardPanelData) string {
	if !data.HasQuest {
		return "no active quest\nactions: [2]quests to pick or create one"
	}

	var b strings.Builder
	for _, line := range strings.Split(data.Title, "\n") {
		b.WriteString(activeStyle.Render(line) + "\n")
	}
	b.WriteString("actions: [j/k]goal [+/-]1 [[/]]10 [c]complete [u]uncomplete\n")

	for _, goal := range data.Goals {
		marker := "  "
		if goal.Selected {
			marker = cursorStyle.Render("> ")
		}
		label := goal.Label
		if goal.Complete {
			label = completeStyle.Render(label + " [OK]")
		}
		b.WriteString(fmt.Sprintf("%s%s\n", marker, label))
		b.WriteString("  " + goal.ProgressBar + "\n")
	}

	switch {
	case data.CompletedToday:
		b.WriteString(completeStyle.Render("QUEST COMPLETE - come back tomorrow"))
	case data.AllGoalsMet:
		b.WriteString("all goals met - press [c] to complete the quest")
	}
	return strings.TrimSpace(b.String())
}

func RenderQuestsPanel(data QuestsPanelData) string {
	var b strings.Builder
	b.WriteString("quests:\n")
	b.WriteString("actions: [j/k]move [enter]activate [n]new [d]delete\n")
	for i, row := range data.Rows {
		marker := "  "
		if row.Selected {
			marker = cursorStyle.Render("> ")
		}
		title := strings.ReplaceAll(row.Title, "\n", " ")
		if row.Active {
			title = activeStyle.Render(title + " *")
		}
		if row.CompletedToday {
			title += " " + completeStyle.Render("[done today]")
		}
		b.WriteString(fmt.Sprintf("%s%d. %s  (%s)\n", marker, i+1, title, row.GoalSummary))
	}
	if len(data.Rows) == 0 {
		b.WriteString("no quests - [n] creates one\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderRemindersPanel(data RemindersPanelData) string {
	var b strings.Builder
	b.WriteString("reminders:\n")
	b.WriteString("actions: [j/k]move [space]toggle\n")
	for _, row := range data.Rows {
		marker := "  "
		if row.Selected {
			marker = cursorStyle.Render("> ")
		}
		state := "off"
		if row.Enabled {
			state = "on "
		}
		b.WriteString(fmt.Sprintf("%s[%s] %s  %s\n", marker, state, row.Clock, row.Days))
	}
	if data.NextTrigger != "" {
		b.WriteString("next: " + data.NextTrigger + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString("# Help\n\n")
	b.WriteString("Current view: " + data.CurrentView + "\n\n")
	for _, binding := range data.Bindings {
		b.WriteString(binding + "\n")
	}
	rendered := RenderMarkdown(b.String())
	if data.HelpView != "" {
		rendered += "\n" + data.HelpView
	}
	return panelStyle.Render(rendered)
}
