// Package window tracks which management panel is open. At most one is
// open at any time: opening a panel closes whichever was open before, and
// opening the open panel again closes it.
package window

import "sync"

// Window is one of the management panels, or None
type Window int

const (
	None Window = iota
	Team
	Boards
	CreateBoard
	EditBoard
	DeleteBoard
	InviteMember
	DeleteMember
	CreateTask
	EditTask
	DeleteTask
	Help
	count // keep last
)

var names = [...]string{
	None:         "none",
	Team:         "team",
	Boards:       "boards",
	CreateBoard:  "create-board",
	EditBoard:    "edit-board",
	DeleteBoard:  "delete-board",
	InviteMember: "invite-member",
	DeleteMember: "delete-member",
	CreateTask:   "create-task",
	EditTask:     "edit-task",
	DeleteTask:   "delete-task",
	Help:         "help",
}

// All lists every panel, None excluded
func All() []Window {
	out := make([]Window, 0, int(count)-1)
	for w := None + 1; w < count; w++ {
		out = append(out, w)
	}
	return out
}

// Valid reports whether w belongs to the enumeration
func (w Window) Valid() bool {
	return w >= None && w < count
}

func (w Window) String() string {
	if !w.Valid() {
		return "unknown"
	}
	return names[w]
}

// Machine holds the single active window
type Machine struct {
	mu     sync.RWMutex
	active Window
}

// New returns a machine with no window open
func New() *Machine {
	return &Machine{}
}

// Activate toggles w: closes it if it is the open window, otherwise opens it
// in place of whatever was open. Values outside the enumeration are ignored.
func (m *Machine) Activate(w Window) Window {
	if !w.Valid() {
		return m.Active()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == w {
		m.active = None
	} else {
		m.active = w
	}
	return m.active
}

// Close closes whatever window is open
func (m *Machine) Close() {
	m.mu.Lock()
	m.active = None
	m.mu.Unlock()
}

// Active returns the open window
func (m *Machine) Active() Window {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

// IsActive reports whether w is the open window
func (m *Machine) IsActive(w Window) bool {
	return w != None && m.Active() == w
}

// Trigger returns a zero-argument callback activating w, for binding to a
// button, key or menu item.
func (m *Machine) Trigger(w Window) func() {
	return func() { m.Activate(w) }
}
