package tui

import (
	"fmt"
	"strings"

	"github.com/christophergyman/teamboard/internal/taskboard"
	"github.com/christophergyman/teamboard/internal/window"
)

// renderWindow renders the body of the open control window, if any
func (m Model) renderWindow() string {
	switch m.windows.Active() {
	case window.Team:
		return m.renderTeam()
	case window.Boards:
		return m.renderBoards()
	case window.CreateBoard:
		return renderForm("New board", m.nameForm)
	case window.EditBoard:
		return renderForm("Rename "+m.targetBoard.Name, m.nameForm)
	case window.DeleteBoard:
		return renderConfirm(fmt.Sprintf("Delete board %q and all of its tasks?", m.targetBoard.Name))
	case window.DeleteMember:
		return renderConfirm(fmt.Sprintf("Remove %s from the team?", m.targetMember.Username))
	case window.CreateTask:
		return renderForm("New task in "+columnTitle(m.targetColumn), m.taskForm)
	case window.EditTask:
		return renderForm("Edit "+m.targetTask.Title, m.taskForm)
	case window.DeleteTask:
		return renderConfirm(fmt.Sprintf("Delete task %q and its subtasks?", m.targetTask.Title))
	case window.InviteMember:
		return m.renderInvite()
	case window.Help:
		return RenderHelp(m.apiURL, m.configPath)
	}
	return ""
}

func (m Model) renderTeam() string {
	var b strings.Builder
	b.WriteString(ColumnHeaderStyle.Render("Team"))
	b.WriteString("\n")

	if len(m.state.Members) == 0 {
		b.WriteString(DimmedStyle.Render("No members."))
		b.WriteString("\n")
	}
	for i, member := range m.state.Members {
		name := member.Username
		if member.IsActive {
			name = MarkStyle.Render("✓ ") + name + MarkStyle.Render(" ✓")
		}
		if i == m.cursor {
			b.WriteString(Cursor() + SelectedStyle.Render(name))
		} else {
			b.WriteString(NoCursor() + ItemStyle.Render(name))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.state.User.IsAdmin {
		b.WriteString(RenderKeyBindings("space", "include/exclude", "i", "invite", "x", "remove"))
	} else {
		b.WriteString(HelpStyle.Render("✓ marks members included in this board"))
	}
	return b.String()
}

func (m Model) renderBoards() string {
	var b strings.Builder
	b.WriteString(ColumnHeaderStyle.Render("Boards"))
	b.WriteString("\n")

	if len(m.state.Boards) == 0 {
		b.WriteString(DimmedStyle.Render("No boards."))
		b.WriteString("\n")
	}
	for i, board := range m.state.Boards {
		name := board.Name
		if m.state.IsActiveBoard(board.ID) {
			name = MarkStyle.Render("» ") + name + MarkStyle.Render(" «")
		}
		if i == m.cursor {
			b.WriteString(Cursor() + SelectedStyle.Render(name))
		} else {
			b.WriteString(NoCursor() + ItemStyle.Render(name))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.state.User.IsAdmin {
		b.WriteString(RenderKeyBindings("enter", "open", "n", "new", "e", "rename", "d", "delete"))
	} else {
		b.WriteString(RenderKeyBinding("enter", "open"))
	}
	return b.String()
}

func renderForm(title string, f form) string {
	var b strings.Builder
	b.WriteString(ColumnHeaderStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(f.view())
	b.WriteString("\n")
	b.WriteString(RenderKeyBindings("enter", "save", "esc", "cancel"))
	return b.String()
}

func renderConfirm(question string) string {
	return WarningStyle.Render(question) + "\n\n" + RenderKeyBindings("y", "confirm", "n", "cancel")
}

func (m Model) renderInvite() string {
	var b strings.Builder
	b.WriteString(ColumnHeaderStyle.Render("Invite a member"))
	b.WriteString("\n\n")
	if m.inviteCode == "" {
		b.WriteString(SpinnerStyle.Render(m.spinner.View()) + " Requesting invite code...")
	} else {
		b.WriteString("Share this code; it is entered on the register screen:\n\n")
		b.WriteString("  " + SelectedStyle.Render(m.inviteCode))
	}
	b.WriteString("\n\n")
	b.WriteString(RenderKeyBinding("enter", "close"))
	return b.String()
}

func columnTitle(col taskboard.Column) string {
	if name := taskboard.ColumnName(col.Order); name != "" {
		return name
	}
	return fmt.Sprintf("column %d", col.Order+1)
}
