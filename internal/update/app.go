// Package update holds the bubbletea program state and update loop.
// The core quest services are injected at construction; this package
// only translates key presses and timer ticks into service calls.
package update

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sandeepkv93/questd/internal/model"
	"github.com/sandeepkv93/questd/internal/quest"
	"github.com/sandeepkv93/questd/internal/scheduler"
)

type View string

const (
	ViewBoard     View = "Board"
	ViewQuests    View = "Quests"
	ViewReminders View = "Reminders"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Board     string
	Quests    string
	Reminders string
	Help      string
	Quit      string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	At    time.Time
}

// Services bundles the core collaborators the UI drives.
type Services struct {
	Repo      *quest.Repository
	Tracker   *quest.CompletionTracker
	Reset     *quest.ResetEngine
	Slots     *quest.SlotStore
	Scheduler *scheduler.Engine
}

type Model struct {
	CurrentView    View
	Services       Services
	Config         RuntimeConfig
	GoalCursor     int
	QuestCursor    int
	SlotCursor     int
	Slots          []model.ReminderSlot
	Palette        CommandPaletteState
	HelpVisible    bool
	Notifications  []Notification
	DesktopEnabled bool
	notifier       DesktopNotifier
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error
	// Bubble components used for rich TUI controls
	goalProgress progress.Model
	commandInput textinput.Model
	helpModel    help.Model
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type ResetTickMsg struct{}

type ResetCheckedMsg struct {
	Changed bool
	Err     error
}

type ReminderDueMsg struct {
	Event scheduler.ReminderEvent
}

func NewModel(services Services, slots []model.ReminderSlot, cfg RuntimeConfig, notifier DesktopNotifier) Model {
	if notifier == nil {
		notifier = NoopDesktopNotifier{}
	}

	commandInput := textinput.New()
	commandInput.Placeholder = "add <title> | active <n> | rename <n> <title> | delete <n> | set <goal> <value> | done | undo"
	commandInput.CharLimit = 120

	m := Model{
		CurrentView:    ViewBoard,
		Services:       services,
		Config:         cfg,
		Slots:          slots,
		DesktopEnabled: cfg.DesktopNotifications,
		notifier:       notifier,
		Keys: GlobalKeyMap{
			Board:     "1",
			Quests:    "2",
			Reminders: "3",
			Help:      "?",
			Quit:      "q",
		},
		goalProgress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		commandInput: commandInput,
		helpModel:    help.New(),
	}
	return m
}
