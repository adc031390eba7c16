package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/christophergyman/teamboard/internal/route"
	"github.com/christophergyman/teamboard/internal/taskboard"
	"github.com/christophergyman/teamboard/internal/window"
)

// viewHome renders the control bar, the open window and the active board
func (m Model) viewHome() string {
	var b strings.Builder

	b.WriteString(m.renderControlBar())
	b.WriteString("\n")
	b.WriteString(RenderSeparator(m.contentWidth()))
	b.WriteString("\n")

	if w := m.renderWindow(); w != "" {
		b.WriteString(BoxStyle.Render(w))
		b.WriteString("\n")
	}

	if m.loading() {
		b.WriteString(SpinnerStyle.Render(m.spinner.View()))
		b.WriteString(DimmedStyle.Render(" Loading..."))
		b.WriteString("\n")
	}

	b.WriteString(RenderBoard(m.state.ActiveBoard, len(m.state.Boards), m.taskCol, m.taskRow))
	b.WriteString("\n")
	if task, ok := m.selectedTask(); ok && m.windows.Active() == window.None {
		b.WriteString(renderTaskDetail(task, m.state.User.IsAdmin))
		b.WriteString("\n")
	}
	b.WriteString(m.renderStatusLine())
	return b.String()
}

// renderStatusLine shows the last error, or the last completed action
func (m Model) renderStatusLine() string {
	if m.err != nil {
		return ErrorStyle.Render("Error: ") + fmt.Sprintf("%v", m.err)
	}
	if m.status != "" {
		return SuccessStyle.Render(m.status)
	}
	return HelpStyle.Render("t: Team  b: Boards  ←↑↓→: Select task  ?: Help  r: Refresh  L: Logout  q: Quit")
}

func (m Model) contentWidth() int {
	if m.width > 4 {
		return m.width - 4
	}
	return defaultWidth - 4
}

// RenderBoard renders the board's columns side by side, highlighting task
// selRow of column selCol (both in display order)
func RenderBoard(board taskboard.Board, teamBoards int, selCol, selRow int) string {
	if board.IsZero() {
		if teamBoards > 1 {
			return DimmedStyle.Render("No board selected. Press b to pick one.")
		}
		return DimmedStyle.Render("Your team has no boards yet.")
	}

	columns := board.Ordered()
	rendered := make([]string, 0, len(columns))
	for i, col := range columns {
		row := -1
		if i == selCol {
			row = selRow
		}
		rendered = append(rendered, ColumnStyle.Render(renderColumn(col, row)))
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(board.Name))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	return b.String()
}

func renderColumn(col taskboard.Column, selRow int) string {
	var b strings.Builder
	name := taskboard.ColumnName(col.Order)
	if name == "" {
		name = fmt.Sprintf("COLUMN %d", col.Order+1)
	}
	b.WriteString(ColumnHeaderStyle.Render(name))
	b.WriteString("\n")

	if len(col.Tasks) == 0 {
		b.WriteString(DimmedStyle.Render("empty"))
		return b.String()
	}
	for i, task := range col.Tasks {
		if i == selRow {
			b.WriteString(SelectedStyle.Render(task.Title))
		} else {
			b.WriteString(ItemStyle.Render(task.Title))
		}
		if n := len(task.Subtasks); n > 0 {
			done := 0
			for _, st := range task.Subtasks {
				if st.IsDone {
					done++
				}
			}
			progress := fmt.Sprintf(" %d/%d", done, n)
			if done == n {
				b.WriteString(SuccessStyle.Render(progress))
			} else {
				b.WriteString(DimmedStyle.Render(progress))
			}
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderTaskDetail shows the selected task with its numbered subtasks
func renderTaskDetail(task taskboard.Task, admin bool) string {
	var b strings.Builder
	b.WriteString(ColumnHeaderStyle.Render(task.Title))
	b.WriteString("\n")
	if task.Description != "" {
		b.WriteString(task.Description)
		b.WriteString("\n")
	}
	for i, st := range task.OrderedSubtasks() {
		box := "[ ]"
		if st.IsDone {
			box = SuccessStyle.Render("[x]")
		}
		b.WriteString(fmt.Sprintf("  %d %s %s\n", i+1, box, st.Title))
	}
	if admin {
		b.WriteString(RenderKeyBindings("a", "add task", "e", "edit", "d", "delete", "1-9", "toggle subtask"))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderLoading renders a full-screen loading state
func RenderLoading(what string, spinnerView string) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("teamboard"))
	b.WriteString("\n\n")

	b.WriteString(SpinnerStyle.Render(spinnerView))
	b.WriteString(" ")
	b.WriteString(what)
	b.WriteString("...")
	return b.String()
}

// renderAuth renders the login or register screen
func renderAuth(r route.Route, f form, err error, busy bool, spinnerView string) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("teamboard"))
	b.WriteString("\n")
	subtitle := "Sign in"
	other := "register"
	if r == route.Register {
		subtitle = "Create an account"
		other = "sign in"
	}
	b.WriteString(SubtitleStyle.Render(subtitle))
	b.WriteString("\n\n")

	b.WriteString(f.view())
	b.WriteString("\n")

	if busy {
		b.WriteString(SpinnerStyle.Render(spinnerView) + " Working...\n\n")
	}
	if err != nil {
		b.WriteString(ErrorStyle.Render("Error: "))
		b.WriteString(fmt.Sprintf("%v", err))
		b.WriteString("\n\n")
	}

	b.WriteString(RenderKeyBindings("tab", "next field", "enter", "submit", "ctrl+r", other, "esc", "quit"))
	return b.String()
}
