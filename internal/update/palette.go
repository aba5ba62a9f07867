package update

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/questd/internal/commands"
)

func (m Model) handlePaletteKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.Palette = CommandPaletteState{}
		m.commandInput.Blur()
		m.Status = StatusBar{}
		return m, nil
	case "enter":
		input := m.commandInput.Value()
		m.Palette = CommandPaletteState{}
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		return m.runCommand(input), nil
	}

	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(key)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m Model) runCommand(input string) Model {
	cmd, err := commands.Parse(input)
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: "error: " + err.Error(), IsError: true}
		return m
	}

	result, err := commands.Execute(cmd, m.commandHandlers())
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: "error: " + err.Error(), IsError: true}
		return m
	}
	m.Status = StatusBar{Text: result.Message, IsError: false}
	m.GoalCursor = 0
	return m
}

// commandHandlers binds the palette verbs to the quest services. The
// handlers only read Model state; the returned status flows back
// through runCommand.
func (m *Model) commandHandlers() commands.Handlers {
	ctx := context.Background()

	return commands.Handlers{
		Add: func(args commands.AddArgs) (commands.Result, error) {
			created, err := m.Services.Repo.Create(ctx, args.Title)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "created " + strings.ReplaceAll(created.Title, "\n", " ")}, nil
		},
		Active: func(args commands.ActiveArgs) (commands.Result, error) {
			quest, err := m.questAt(args.Index)
			if err != nil {
				return commands.Result{}, err
			}
			if err := m.Services.Repo.SetActive(ctx, quest.ID); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("quest %d is now active", args.Index)}, nil
		},
		Delete: func(args commands.DeleteArgs) (commands.Result, error) {
			quest, err := m.questAt(args.Index)
			if err != nil {
				return commands.Result{}, err
			}
			if err := m.Services.Repo.Delete(ctx, quest.ID); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("deleted quest %d", args.Index)}, nil
		},
		Rename: func(args commands.RenameArgs) (commands.Result, error) {
			ref, err := m.questAt(args.Index)
			if err != nil {
				return commands.Result{}, err
			}
			q, ok := m.Services.Repo.Quest(ref.ID)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no quest %d", args.Index)}
			}
			q.Title = args.Title
			if err := m.Services.Repo.Update(ctx, q); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "renamed quest to " + args.Title}, nil
		},
		Set: func(args commands.SetArgs) (commands.Result, error) {
			active, ok := m.Services.Repo.ActiveQuest()
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no active quest"}
			}
			if args.GoalIndex > len(active.Goals) {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no goal %d", args.GoalIndex)}
			}
			goal := active.Goals[args.GoalIndex-1]
			if err := m.Services.Repo.UpdateGoalProgress(ctx, active.ID, goal.ID, args.Value); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("%s set to %d", goal.Exercise, args.Value)}, nil
		},
		Done: func() (commands.Result, error) {
			active, ok := m.Services.Repo.ActiveQuest()
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no active quest"}
			}
			if err := m.Services.Tracker.Complete(ctx, active.ID); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "quest completed for today"}, nil
		},
		Undo: func() (commands.Result, error) {
			active, ok := m.Services.Repo.ActiveQuest()
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no active quest"}
			}
			if err := m.Services.Tracker.Uncomplete(ctx, active.ID); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "quest completion undone"}, nil
		},
	}
}

func (m *Model) questAt(index int) (questRef, error) {
	quests := m.Services.Repo.Quests()
	if index > len(quests) {
		return questRef{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no quest %d", index)}
	}
	q := quests[index-1]
	return questRef{ID: q.ID, Title: q.Title}, nil
}

type questRef struct {
	ID    string
	Title string
}
