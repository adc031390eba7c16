// Package tui implements the terminal user interface using Bubble Tea.
//
// # Architecture
//
// The Model holds the current route, the last session snapshot and the
// form state. Session data is owned by the session controller; the Model
// only reads snapshots of it after each load.
//
// # Routes
//
// The route guard runs on every navigation:
//   - Login / Register: forms, reachable only while signed out
//   - Home: control bar, open control window, active board
//
// # Control Windows
//
// TEAM, BOARDS, HELP and their sub-windows (create/edit/delete board,
// invite/delete member, create/edit/delete task) share one window.Machine. Keys and mouse clicks
// both go through Model.activate, so opening one window closes the other.
//
// # Async Command Pattern
//
// No blocking I/O in the UI. Operations return tea.Cmd that execute async:
//
//	loadBoard()   → loadedMsg
//	login()       → authDoneMsg
//	createBoard() → mutationDoneMsg (then loadBoard with the new id)
//	createTask()  → mutationDoneMsg (then loadBoard)
//	inviteMember() → invitedMsg
//
// Every mutation is followed by a refresh. The refresh waits out a load
// already in flight instead of being dropped by it.
//
// # Key Files
//
//   - tui.go: Model definition, Update/View, async commands
//   - keys.go: Keyboard handlers and window activation
//   - tasks.go: Board cursor, task keys and task form handling
//   - header.go: Control bar and mouse zones
//   - windows.go: Control window rendering
//   - board.go: Board, loading and auth screen rendering
//   - forms.go: Text input forms and validation
//   - styles.go: Lipgloss styling
package tui
