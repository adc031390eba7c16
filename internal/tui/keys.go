package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/christophergyman/teamboard/internal/route"
	"github.com/christophergyman/teamboard/internal/window"
)

var errAdminOnly = errors.New("only team admins can do that")

// handleKeyPress processes keyboard input based on current route and window
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.booting {
		return m, nil
	}

	switch m.route {
	case route.Login, route.Register:
		return m.handleAuthKey(msg)
	}

	switch m.windows.Active() {
	case window.CreateBoard, window.EditBoard:
		return m.handleNameFormKey(msg)
	case window.CreateTask, window.EditTask:
		return m.handleTaskFormKey(msg)
	case window.DeleteBoard, window.DeleteMember, window.DeleteTask:
		return m.handleConfirmKey(msg)
	}
	return m.handleHomeKey(msg)
}

func (m Model) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit

	case "tab", "down":
		var cmd tea.Cmd
		m.authForm, cmd = m.authForm.move(1)
		return m, cmd

	case "shift+tab", "up":
		var cmd tea.Cmd
		m.authForm, cmd = m.authForm.move(-1)
		return m, cmd

	case "ctrl+r":
		m.err = nil
		if m.route == route.Login {
			return m.navigate(route.Register), textinput.Blink
		}
		return m.navigate(route.Login), textinput.Blink

	case "enter":
		if m.busy {
			return m, nil
		}
		v := m.authForm.values()
		if err := validateCredentials(v[0], v[1]); err != nil {
			m.err = err
			return m, nil
		}
		m.busy = true
		m.err = nil
		if m.route == route.Register {
			return m, tea.Batch(m.spinner.Tick, m.register(v[0], v[1], v[2], v[3]))
		}
		return m, tea.Batch(m.spinner.Tick, m.login(v[0], v[1]))
	}

	var cmd tea.Cmd
	m.authForm, cmd = m.authForm.update(msg)
	return m, cmd
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key := msg.String(); key == "q" {
		return m, tea.Quit
	}
	if w, ok := controlForKey(msg.String()); ok {
		return m.activate(w)
	}

	switch msg.String() {
	case "esc":
		m.windows.Close()
		return m, nil

	case "r":
		if m.loading() {
			return m, nil
		}
		m.status = ""
		return m, tea.Batch(m.spinner.Tick, m.loadBoard(0))

	case "L":
		return m, m.logout()

	case "up", "k":
		if m.windows.Active() == window.None {
			return m.moveTask(0, -1), nil
		}
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.windows.Active() == window.None {
			return m.moveTask(0, 1), nil
		}
		if m.cursor < m.listLen()-1 {
			m.cursor++
		}
		return m, nil
	}

	switch m.windows.Active() {
	case window.None:
		return m.handleBoardKey(msg)
	case window.Boards:
		return m.handleBoardsKey(msg)
	case window.Team:
		return m.handleTeamKey(msg)
	case window.InviteMember, window.Help:
		if msg.String() == "enter" {
			m.windows.Close()
		}
	}
	return m, nil
}

func (m Model) handleBoardsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if m.loading() || m.cursor >= len(m.state.Boards) {
			return m, nil
		}
		m.windows.Close()
		return m, tea.Batch(m.spinner.Tick, m.loadBoard(m.state.Boards[m.cursor].ID))
	case "n":
		return m.activate(window.CreateBoard)
	case "e":
		return m.activate(window.EditBoard)
	case "d":
		return m.activate(window.DeleteBoard)
	}
	return m, nil
}

func (m Model) handleTeamKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ", "space":
		if !m.state.User.IsAdmin {
			m.err = errAdminOnly
			return m, nil
		}
		if m.busy || m.state.ActiveBoard.IsZero() || m.cursor >= len(m.state.Members) {
			return m, nil
		}
		member := m.state.Members[m.cursor]
		m.busy = true
		return m, m.setBoardMember(m.state.ActiveBoard.ID, member.Username, !member.IsActive)
	case "i":
		return m.activate(window.InviteMember)
	case "x":
		return m.activate(window.DeleteMember)
	}
	return m, nil
}

func (m Model) handleNameFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.windows.Close()
		m.err = nil
		return m, nil

	case "enter":
		if m.busy {
			return m, nil
		}
		name := m.nameForm.values()[0]
		if err := validateBoardName(name); err != nil {
			m.err = err
			return m, nil
		}
		m.busy = true
		m.err = nil
		if m.windows.IsActive(window.EditBoard) {
			return m, m.renameBoard(m.targetBoard.ID, name)
		}
		return m, m.createBoard(name)
	}

	var cmd tea.Cmd
	m.nameForm, cmd = m.nameForm.update(msg)
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if m.busy {
			return m, nil
		}
		m.busy = true
		switch m.windows.Active() {
		case window.DeleteBoard:
			return m, m.deleteBoard(m.targetBoard.ID)
		case window.DeleteTask:
			return m, m.deleteTask(m.targetTask.ID)
		}
		return m, m.deleteMember(m.targetMember.Username)
	case "n", "N", "esc":
		m.windows.Close()
	}
	return m, nil
}

// activate toggles w through the window machine and prepares whatever the
// newly opened window needs. Every trigger, key or mouse, lands here.
func (m Model) activate(w window.Window) (tea.Model, tea.Cmd) {
	if needsAdmin(w) && !m.state.User.IsAdmin {
		m.err = errAdminOnly
		return m, nil
	}
	if needsTarget(w) && !m.captureTarget(w) {
		return m, nil
	}

	m.windows.Trigger(w)()
	m.err = nil

	switch active := m.windows.Active(); active {
	case window.Team, window.Boards:
		m.cursor = m.listCursorFor(active)
	case window.CreateBoard:
		m.nameForm = newBoardNameForm()
		return m, textinput.Blink
	case window.EditBoard:
		m.nameForm = newBoardNameForm().setValue(0, m.targetBoard.Name)
		return m, textinput.Blink
	case window.CreateTask:
		m.taskForm = newTaskForm()
		return m, textinput.Blink
	case window.EditTask:
		m.taskForm = newTaskForm().
			setValue(0, m.targetTask.Title).
			setValue(1, m.targetTask.Description).
			setValue(2, joinSubtasks(m.targetTask))
		return m, textinput.Blink
	case window.InviteMember:
		m.inviteCode = ""
		m.busy = true
		return m, tea.Batch(m.spinner.Tick, m.inviteMember())
	}
	return m, nil
}

// captureTarget remembers which board, member, column or task a window acts
// on. Board windows act on the board under the cursor in the board list, or
// the active board when the list is closed; member windows need the roster;
// task windows use the board cursor.
func (m *Model) captureTarget(w window.Window) bool {
	switch w {
	case window.EditBoard, window.DeleteBoard:
		if m.windows.IsActive(window.Boards) && m.cursor < len(m.state.Boards) {
			m.targetBoard = m.state.Boards[m.cursor]
			return true
		}
		if !m.state.ActiveBoard.IsZero() {
			m.targetBoard = m.state.ActiveBoard.Summary()
			return true
		}
	case window.DeleteMember:
		if m.windows.IsActive(window.Team) && m.cursor < len(m.state.Members) {
			m.targetMember = m.state.Members[m.cursor]
			return true
		}
	case window.CreateTask:
		if col, ok := m.selectedColumn(); ok {
			m.targetColumn = col
			return true
		}
	case window.EditTask, window.DeleteTask:
		if task, ok := m.selectedTask(); ok {
			m.targetTask = task
			return true
		}
	}
	return false
}

// listCursorFor puts the cursor on the active board in the board list
func (m Model) listCursorFor(w window.Window) int {
	if w == window.Boards {
		for i, b := range m.state.Boards {
			if m.state.IsActiveBoard(b.ID) {
				return i
			}
		}
	}
	return 0
}

func needsAdmin(w window.Window) bool {
	switch w {
	case window.CreateBoard, window.EditBoard, window.DeleteBoard,
		window.InviteMember, window.DeleteMember,
		window.CreateTask, window.EditTask, window.DeleteTask:
		return true
	}
	return false
}

func needsTarget(w window.Window) bool {
	switch w {
	case window.EditBoard, window.DeleteBoard, window.DeleteMember,
		window.CreateTask, window.EditTask, window.DeleteTask:
		return true
	}
	return false
}
