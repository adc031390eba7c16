package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/christophergyman/teamboard/internal/taskboard"
)

// maxBoardName mirrors the board service's name limit
const maxBoardName = 35

// field describes one input of a form
type field struct {
	label       string
	placeholder string
	secret      bool
	limit       int
}

// form is an ordered set of text inputs with one focused
type form struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

func newForm(fields ...field) form {
	f := form{}
	for i, fd := range fields {
		ti := textinput.New()
		ti.Placeholder = fd.placeholder
		ti.CharLimit = fd.limit
		ti.Width = 30
		if fd.secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		if i == 0 {
			ti.Focus()
		}
		f.labels = append(f.labels, fd.label)
		f.inputs = append(f.inputs, ti)
	}
	return f
}

func newLoginForm() form {
	return newForm(
		field{label: "Username", placeholder: "username", limit: 15},
		field{label: "Password", placeholder: "password", secret: true, limit: 64},
	)
}

func newRegisterForm() form {
	return newForm(
		field{label: "Username", placeholder: "username", limit: 15},
		field{label: "Password", placeholder: "password", secret: true, limit: 64},
		field{label: "Confirm", placeholder: "password again", secret: true, limit: 64},
		field{label: "Invite", placeholder: "invite code (optional)", limit: 64},
	)
}

func newBoardNameForm() form {
	return newForm(field{label: "Name", placeholder: "board name", limit: maxBoardName})
}

func newTaskForm() form {
	return newForm(
		field{label: "Title", placeholder: "task title", limit: taskboard.MaxTitle},
		field{label: "Details", placeholder: "description (optional)", limit: 500},
		field{label: "Subtasks", placeholder: "comma separated (optional)", limit: 500},
	)
}

// values returns the trimmed input values in order
func (f form) values() []string {
	out := make([]string, len(f.inputs))
	for i, in := range f.inputs {
		out[i] = strings.TrimSpace(in.Value())
	}
	return out
}

// setValue replaces the value of input i
func (f form) setValue(i int, v string) form {
	if i >= 0 && i < len(f.inputs) {
		f.inputs[i].SetValue(v)
		f.inputs[i].CursorEnd()
	}
	return f
}

// move shifts the focus by delta, wrapping around
func (f form) move(delta int) (form, tea.Cmd) {
	if len(f.inputs) == 0 {
		return f, nil
	}
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	return f, f.inputs[f.focus].Focus()
}

// update forwards msg to the focused input
func (f form) update(msg tea.Msg) (form, tea.Cmd) {
	if len(f.inputs) == 0 {
		return f, nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

// view renders one labelled input per line
func (f form) view() string {
	var b strings.Builder
	for i, in := range f.inputs {
		label := fmt.Sprintf("%-9s", f.labels[i])
		if i == f.focus {
			b.WriteString(Cursor() + ColumnHeaderStyle.Render(label))
		} else {
			b.WriteString(NoCursor() + DimmedStyle.Render(label))
		}
		b.WriteString(InputStyle.Render(in.View()))
		b.WriteString("\n")
	}
	return b.String()
}

// validateBoardName applies the service's board name rules
func validateBoardName(name string) error {
	if name == "" {
		return fmt.Errorf("board name cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxBoardName {
		return fmt.Errorf("board name cannot be longer than %d characters", maxBoardName)
	}
	return nil
}

// validateCredentials applies the minimal checks worth a round trip
func validateCredentials(username, password string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}
	return nil
}

// validateTask applies the service's task and subtask title rules
func validateTask(title string, subtasks []string) error {
	if title == "" {
		return fmt.Errorf("task title cannot be empty")
	}
	if utf8.RuneCountInString(title) > taskboard.MaxTitle {
		return fmt.Errorf("task title cannot be longer than %d characters", taskboard.MaxTitle)
	}
	for _, st := range subtasks {
		if utf8.RuneCountInString(st) > taskboard.MaxTitle {
			return fmt.Errorf("subtask %q is longer than %d characters", st, taskboard.MaxTitle)
		}
	}
	return nil
}

// splitSubtasks turns the comma separated subtask field into titles
func splitSubtasks(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// joinSubtasks renders a task's subtasks for the subtask field
func joinSubtasks(task taskboard.Task) string {
	titles := make([]string, 0, len(task.Subtasks))
	for _, st := range task.OrderedSubtasks() {
		titles = append(titles, st.Title)
	}
	return strings.Join(titles, ", ")
}

// editedTask applies the form values to task. Subtasks are matched by title
// so the ones kept stay done.
func editedTask(task taskboard.Task, title, description string, subtasks []string) taskboard.Task {
	done := make(map[string]bool, len(task.Subtasks))
	for _, st := range task.Subtasks {
		if st.IsDone {
			done[st.Title] = true
		}
	}
	out := taskboard.Task{ID: task.ID, Title: title, Description: description, Order: task.Order}
	for i, st := range subtasks {
		out.Subtasks = append(out.Subtasks, taskboard.Subtask{Title: st, Order: i, IsDone: done[st]})
	}
	return out
}
