package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/christophergyman/teamboard/internal/window"
)

// control is a button on the control bar
type control struct {
	key    string
	label  string
	window window.Window
}

// controls are the top-level triggers; sub-actions (create, edit, delete,
// invite) open from inside their parent window
var controls = []control{
	{key: "t", label: "TEAM", window: window.Team},
	{key: "b", label: "BOARDS", window: window.Boards},
	{key: "?", label: "HELP", window: window.Help},
}

func controlForKey(key string) (window.Window, bool) {
	for _, c := range controls {
		if c.key == key {
			return c.window, true
		}
	}
	return window.None, false
}

// zoneID names the mouse zone of a control window's button
func zoneID(w window.Window) string {
	return "control-" + w.String()
}

// handleMouse turns a click on a control bar button into its trigger
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.zones == nil || !m.route.Protected() || m.booting {
		return m, nil
	}
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if m.formOpen() {
		return m, nil
	}
	for _, c := range controls {
		if m.zones.Get(zoneID(c.window)).InBounds(msg) {
			return m.activate(c.window)
		}
	}
	return m, nil
}

// formOpen reports whether a text form owns the input
func (m Model) formOpen() bool {
	switch m.windows.Active() {
	case window.CreateBoard, window.EditBoard, window.CreateTask, window.EditTask:
		return true
	}
	return false
}

// renderControlBar renders the header with the control buttons
func (m Model) renderControlBar() string {
	buttons := make([]string, 0, len(controls))
	for _, c := range controls {
		style := ButtonStyle
		if m.windows.IsActive(c.window) {
			style = ActiveButtonStyle
		}
		btn := style.Render(c.label) + " " + DimmedStyle.Render("("+c.key+")")
		if m.zones != nil {
			btn = m.zones.Mark(zoneID(c.window), btn)
		}
		buttons = append(buttons, btn)
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("teamboard"))
	if u := m.state.User; u.IsAuthenticated {
		who := u.Username
		if u.IsAdmin {
			who += " (admin)"
		}
		b.WriteString("  " + SubtitleStyle.Render(who))
	}
	b.WriteString("\n")
	b.WriteString(strings.Join(buttons, "   "))
	return b.String()
}
