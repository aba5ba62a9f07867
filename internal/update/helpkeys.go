package update

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/questd/internal/views"
)

// helpKeyMap feeds the bubbles help component. It mirrors the bindings
// the update loop actually handles.
type helpKeyMap struct {
	views     key.Binding
	move      key.Binding
	adjust    key.Binding
	bigAdjust key.Binding
	complete  key.Binding
	undo      key.Binding
	palette   key.Binding
	quit      key.Binding
}

func newHelpKeyMap() helpKeyMap {
	return helpKeyMap{
		views: key.NewBinding(
			key.WithKeys("1", "2", "3"),
			key.WithHelp("1/2/3", "board / quests / reminders"),
		),
		move: key.NewBinding(
			key.WithKeys("j", "k", "up", "down"),
			key.WithHelp("j/k", "move cursor"),
		),
		adjust: key.NewBinding(
			key.WithKeys("+", "-"),
			key.WithHelp("+/-", "adjust goal by 1"),
		),
		bigAdjust: key.NewBinding(
			key.WithKeys("[", "]"),
			key.WithHelp("[/]", "adjust goal by 10"),
		),
		complete: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "complete quest for today"),
		),
		undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo today's completion"),
		),
		palette: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "command palette"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k helpKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.views, k.palette, k.quit}
}

func (k helpKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.views, k.move},
		{k.adjust, k.bigAdjust},
		{k.complete, k.undo},
		{k.palette, k.quit},
	}
}

func (m Model) renderHelpView() string {
	keys := newHelpKeyMap()
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings: []string{
			"- `1` / `2` / `3` switch between board, quests and reminders",
			"- `j` / `k` move the cursor",
			"- `+` / `-` adjust the selected goal by one, `[` / `]` by ten",
			"- `c` complete the active quest for today, `u` undo it",
			"- `/` open the command palette, `esc` close it",
			"- `space` toggle a reminder slot",
			"- `q` quit",
		},
		HelpView: m.helpModel.View(keys),
	})
}
