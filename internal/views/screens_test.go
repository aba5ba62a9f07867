package views

import (
	"strings"
	"testing"
)

func TestRenderBoardPanelWithoutQuest(t *testing.T) {
	out := RenderBoardPanel(BoardPanelData{HasQuest: false})
	if !strings.Contains(out, "no active quest") {
		t.Errorf("expected empty-board message, got %q", out)
	}
}

func TestRenderBoardPanelMarksCompletion(t *testing.T) {
	out := RenderBoardPanel(BoardPanelData{
		HasQuest: true,
		Title:    "DAILY QUEST",
		Goals: []BoardGoalData{
			{Label: "PUSH-UPS [100/100]", Complete: true, Selected: true},
			{Label: "RUN [0/10] KM"},
		},
		CompletedToday: true,
	})

	if !strings.Contains(out, "PUSH-UPS [100/100]") || !strings.Contains(out, "[OK]") {
		t.Errorf("complete goal badge missing: %q", out)
	}
	if !strings.Contains(out, "RUN [0/10] KM") {
		t.Errorf("incomplete goal missing: %q", out)
	}
	if !strings.Contains(out, "come back tomorrow") {
		t.Errorf("completed-today banner missing: %q", out)
	}
}

func TestRenderBoardPanelOffersCompletion(t *testing.T) {
	out := RenderBoardPanel(BoardPanelData{
		HasQuest:    true,
		Title:       "DAILY QUEST",
		Goals:       []BoardGoalData{{Label: "PUSH-UPS [10/10]", Complete: true}},
		AllGoalsMet: true,
	})
	if !strings.Contains(out, "press [c] to complete") {
		t.Errorf("all-goals-met prompt missing: %q", out)
	}
}

func TestRenderQuestsPanelNumbersRows(t *testing.T) {
	out := RenderQuestsPanel(QuestsPanelData{Rows: []QuestRowData{
		{Title: "DAILY QUEST\nSECOND LINE", Active: true, GoalSummary: "0/4 goals"},
		{Title: "NEW QUEST", CompletedToday: true, GoalSummary: "1/1 goals"},
	}})

	if !strings.Contains(out, "1. ") || !strings.Contains(out, "2. ") {
		t.Errorf("rows should be numbered from 1: %q", out)
	}
	if strings.Contains(out, "SECOND LINE\n") {
		t.Errorf("multi-line titles should be flattened in the list: %q", out)
	}
	if !strings.Contains(out, "[done today]") {
		t.Errorf("completed-today marker missing: %q", out)
	}
}

func TestRenderQuestsPanelEmpty(t *testing.T) {
	out := RenderQuestsPanel(QuestsPanelData{})
	if !strings.Contains(out, "no quests") {
		t.Errorf("expected empty-list message, got %q", out)
	}
}

func TestRenderRemindersPanel(t *testing.T) {
	out := RenderRemindersPanel(RemindersPanelData{
		Rows: []ReminderRowData{
			{Clock: "10:00", Days: "every day", Enabled: true},
			{Clock: "21:00", Days: "Mon Wed Fri", Enabled: false, Selected: true},
		},
		NextTrigger: "Mon 10:00",
	})

	if !strings.Contains(out, "[on ] 10:00") {
		t.Errorf("enabled slot missing: %q", out)
	}
	if !strings.Contains(out, "[off] 21:00") {
		t.Errorf("disabled slot missing: %q", out)
	}
	if !strings.Contains(out, "next: Mon 10:00") {
		t.Errorf("next trigger missing: %q", out)
	}
}

func TestRenderAppComposesSections(t *testing.T) {
	out := RenderApp(AppData{
		Header:     "questd",
		Body:       "board",
		StatusLine: "saved",
		Footer:     "view: Board",
	})
	for _, want := range []string{"questd", "board", "saved", "view: Board"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered app missing %q: %q", want, out)
		}
	}
}
