package tui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/christophergyman/teamboard/internal/taskboard"
	"github.com/christophergyman/teamboard/internal/window"
)

// selectedColumn returns the column under the board cursor
func (m Model) selectedColumn() (taskboard.Column, bool) {
	cols := m.state.ActiveBoard.Ordered()
	if m.taskCol < 0 || m.taskCol >= len(cols) {
		return taskboard.Column{}, false
	}
	return cols[m.taskCol], true
}

// selectedTask returns the task under the board cursor
func (m Model) selectedTask() (taskboard.Task, bool) {
	col, ok := m.selectedColumn()
	if !ok || m.taskRow < 0 || m.taskRow >= len(col.Tasks) {
		return taskboard.Task{}, false
	}
	return col.Tasks[m.taskRow], true
}

// clampTask keeps the board cursor on the board after a reload
func (m *Model) clampTask() {
	cols := m.state.ActiveBoard.Ordered()
	if m.taskCol >= len(cols) {
		m.taskCol = len(cols) - 1
	}
	if m.taskCol < 0 {
		m.taskCol = 0
	}
	n := 0
	if m.taskCol < len(cols) {
		n = len(cols[m.taskCol].Tasks)
	}
	if m.taskRow >= n {
		m.taskRow = n - 1
	}
	if m.taskRow < 0 {
		m.taskRow = 0
	}
}

// moveTask shifts the board cursor by whole columns or tasks
func (m Model) moveTask(dCol, dRow int) Model {
	if dCol != 0 {
		m.taskCol += dCol
		m.taskRow = 0
	}
	m.taskRow += dRow
	m.clampTask()
	return m
}

// handleBoardKey handles keys acting on the board while no window is open
func (m Model) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "left", "h":
		return m.moveTask(-1, 0), nil
	case "right", "l":
		return m.moveTask(1, 0), nil
	case "a":
		return m.activate(window.CreateTask)
	case "e":
		return m.activate(window.EditTask)
	case "d":
		return m.activate(window.DeleteTask)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		n, _ := strconv.Atoi(key)
		return m.toggleSubtaskAt(n - 1)
	}
	return m, nil
}

// toggleSubtaskAt flips the i-th subtask of the selected task
func (m Model) toggleSubtaskAt(i int) (tea.Model, tea.Cmd) {
	if !m.state.User.IsAdmin {
		m.err = errAdminOnly
		return m, nil
	}
	task, ok := m.selectedTask()
	if !ok || m.busy {
		return m, nil
	}
	subtasks := task.OrderedSubtasks()
	if i < 0 || i >= len(subtasks) {
		return m, nil
	}
	m.busy = true
	m.err = nil
	return m, m.toggleSubtask(subtasks[i].ID, !subtasks[i].IsDone)
}

func (m Model) handleTaskFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.windows.Close()
		m.err = nil
		return m, nil

	case "tab", "down":
		var cmd tea.Cmd
		m.taskForm, cmd = m.taskForm.move(1)
		return m, cmd

	case "shift+tab", "up":
		var cmd tea.Cmd
		m.taskForm, cmd = m.taskForm.move(-1)
		return m, cmd

	case "enter":
		if m.busy {
			return m, nil
		}
		v := m.taskForm.values()
		subtasks := splitSubtasks(v[2])
		if err := validateTask(v[0], subtasks); err != nil {
			m.err = err
			return m, nil
		}
		m.busy = true
		m.err = nil
		if m.windows.IsActive(window.EditTask) {
			return m, m.editTask(editedTask(m.targetTask, v[0], v[1], subtasks))
		}
		return m, m.createTask(m.targetColumn.ID, v[0], v[1], subtasks)
	}

	var cmd tea.Cmd
	m.taskForm, cmd = m.taskForm.update(msg)
	return m, cmd
}
