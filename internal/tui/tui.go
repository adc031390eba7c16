package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"go.uber.org/zap"

	"github.com/christophergyman/teamboard/internal/route"
	"github.com/christophergyman/teamboard/internal/session"
	"github.com/christophergyman/teamboard/internal/taskboard"
	"github.com/christophergyman/teamboard/internal/window"
)

// Session is the bootstrap controller as seen by the views
type Session interface {
	LoadBoard(ctx context.Context, hint int64) error
	State() session.State
	Reset()
	Wait(ctx context.Context) error
}

// Service performs the mutations the views offer. Each one is followed by
// a LoadBoard refresh; nothing is edited locally.
type Service interface {
	Login(ctx context.Context, username, password string) error
	Register(ctx context.Context, username, password, confirmation, inviteCode string) error
	Logout() error
	CreateBoard(ctx context.Context, teamID int64, name string) (int64, error)
	RenameBoard(ctx context.Context, boardID int64, name string) error
	DeleteBoard(ctx context.Context, boardID int64) error
	SetBoardMember(ctx context.Context, boardID int64, username string, include bool) error
	InviteMember(ctx context.Context, teamID int64) (string, error)
	DeleteMember(ctx context.Context, username string) error
	CreateTask(ctx context.Context, columnID int64, title, description string, subtasks []string) (int64, error)
	EditTask(ctx context.Context, task taskboard.Task) error
	DeleteTask(ctx context.Context, taskID int64) error
	ToggleSubtask(ctx context.Context, subtaskID int64, done bool) error
}

// Deps are the collaborators a Model is built from
type Deps struct {
	Context context.Context
	Session Session
	Service Service
	Windows *window.Machine
	Zones   *zone.Manager
	Logger  *zap.Logger
	// shown in the help window
	APIURL     string
	ConfigPath string
}

// Model is the main Bubbletea model
type Model struct {
	ctx     context.Context
	session Session
	service Service
	windows *window.Machine
	zones   *zone.Manager
	log     *zap.Logger

	apiURL     string
	configPath string

	route   route.Route
	state   session.State
	booting bool // first LoadBoard has not answered yet
	busy    bool // a mutation or login is in flight

	cursor       int
	authForm     form
	nameForm     form
	taskForm     form
	targetBoard  taskboard.BoardSummary
	targetMember taskboard.Member
	inviteCode   string

	// board cursor: column index and task index within it, in display order
	taskCol      int
	taskRow      int
	targetColumn taskboard.Column
	targetTask   taskboard.Task

	spinner spinner.Model
	status  string
	err     error
	width   int
	height  int
}

// Messages for async operations
type loadedMsg struct{ err error }
type authDoneMsg struct{ err error }
type mutationDoneMsg struct {
	op   string
	hint int64
	err  error
}
type loggedOutMsg struct{}
type invitedMsg struct {
	code string
	err  error
}

// New creates a new Model; the session is bootstrapped by Init
func New(d Deps) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	ctx := d.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	windows := d.Windows
	if windows == nil {
		windows = window.New()
	}

	return Model{
		ctx:        ctx,
		session:    d.Session,
		service:    d.Service,
		windows:    windows,
		zones:      d.Zones,
		log:        log,
		apiURL:     d.APIURL,
		configPath: d.ConfigPath,
		route:      route.Login,
		booting:    true,
		authForm:   newLoginForm(),
		nameForm:   newBoardNameForm(),
		taskForm:   newTaskForm(),
		spinner:    s,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadBoard(0))
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadedMsg:
		return m.handleLoaded(msg)

	case authDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.authForm = newLoginForm()
		return m, m.reloadBoard(0)

	case mutationDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.log.Error("mutation failed", zap.String("op", msg.op), zap.Error(msg.err))
			if taskboard.IsAuth(msg.err) {
				return m.sessionLost(msg.err)
			}
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.status = msg.op
		m.windows.Close()
		return m, m.reloadBoard(msg.hint)

	case loggedOutMsg:
		m.session.Reset()
		m.state = m.session.State()
		m.windows.Close()
		m.err = nil
		m.status = ""
		return m.navigate(route.Home), nil

	case invitedMsg:
		m.busy = false
		if msg.err != nil {
			if taskboard.IsAuth(msg.err) {
				return m.sessionLost(msg.err)
			}
			m.err = msg.err
			return m, nil
		}
		m.inviteCode = msg.code
		return m, nil
	}

	if m.route != route.Home {
		var cmd tea.Cmd
		m.authForm, cmd = m.authForm.update(msg)
		return m, cmd
	}
	return m, nil
}

// handleLoaded takes a fresh snapshot after LoadBoard answered
func (m Model) handleLoaded(msg loadedMsg) (tea.Model, tea.Cmd) {
	if errors.Is(msg.err, session.ErrLoadInProgress) {
		return m, nil
	}
	wasBooting := m.booting
	m.booting = false
	m.state = m.session.State()
	m.clampCursor()
	m.clampTask()

	if msg.err != nil {
		if taskboard.IsAuth(msg.err) {
			if wasBooting {
				// no stored session is not an error worth showing
				return m.navigate(route.Home), nil
			}
			return m.sessionLost(msg.err)
		}
		m.err = msg.err
	} else {
		m.err = nil
	}
	return m.navigate(route.Home), nil
}

// sessionLost drops the session and lands on the login screen
func (m Model) sessionLost(err error) (tea.Model, tea.Cmd) {
	m.session.Reset()
	m.state = m.session.State()
	m.windows.Close()
	m.err = err
	return m.navigate(route.Home), nil
}

// navigate moves to target as the route guard allows
func (m Model) navigate(target route.Route) Model {
	next := route.Resolve(target, m.state.User.IsAuthenticated)
	if next != m.route {
		m.log.Debug("navigate", zap.Stringer("from", m.route), zap.Stringer("to", next))
		switch next {
		case route.Login:
			m.authForm = newLoginForm()
		case route.Register:
			m.authForm = newRegisterForm()
		}
	}
	m.route = next
	return m
}

// loadBoard returns a command running the bootstrap pipeline
func (m Model) loadBoard(hint int64) tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: m.session.LoadBoard(m.ctx, hint)}
	}
}

// reloadBoard is loadBoard for refreshes that must not be dropped. When
// another load is in flight it waits for that one and then loads again, so
// the refresh always reflects the mutation before it.
func (m Model) reloadBoard(hint int64) tea.Cmd {
	return func() tea.Msg {
		for {
			err := m.session.LoadBoard(m.ctx, hint)
			if !errors.Is(err, session.ErrLoadInProgress) {
				return loadedMsg{err: err}
			}
			m.log.Debug("refresh waits for load in flight", zap.Int64("hint", hint))
			if err := m.session.Wait(m.ctx); err != nil {
				return loadedMsg{err: err}
			}
		}
	}
}

func (m Model) login(username, password string) tea.Cmd {
	return func() tea.Msg {
		return authDoneMsg{err: m.service.Login(m.ctx, username, password)}
	}
}

func (m Model) register(username, password, confirmation, inviteCode string) tea.Cmd {
	return func() tea.Msg {
		return authDoneMsg{err: m.service.Register(m.ctx, username, password, confirmation, inviteCode)}
	}
}

func (m Model) createBoard(name string) tea.Cmd {
	teamID := m.state.User.TeamID
	return func() tea.Msg {
		id, err := m.service.CreateBoard(m.ctx, teamID, name)
		return mutationDoneMsg{op: "board created", hint: id, err: err}
	}
}

func (m Model) renameBoard(boardID int64, name string) tea.Cmd {
	return func() tea.Msg {
		err := m.service.RenameBoard(m.ctx, boardID, name)
		return mutationDoneMsg{op: "board renamed", err: err}
	}
}

func (m Model) deleteBoard(boardID int64) tea.Cmd {
	return func() tea.Msg {
		err := m.service.DeleteBoard(m.ctx, boardID)
		return mutationDoneMsg{op: "board deleted", err: err}
	}
}

func (m Model) setBoardMember(boardID int64, username string, include bool) tea.Cmd {
	return func() tea.Msg {
		err := m.service.SetBoardMember(m.ctx, boardID, username, include)
		op := "member excluded from board"
		if include {
			op = "member included in board"
		}
		return mutationDoneMsg{op: op, err: err}
	}
}

func (m Model) deleteMember(username string) tea.Cmd {
	return func() tea.Msg {
		err := m.service.DeleteMember(m.ctx, username)
		return mutationDoneMsg{op: "member removed", err: err}
	}
}

func (m Model) createTask(columnID int64, title, description string, subtasks []string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.service.CreateTask(m.ctx, columnID, title, description, subtasks)
		return mutationDoneMsg{op: "task created", err: err}
	}
}

func (m Model) editTask(task taskboard.Task) tea.Cmd {
	return func() tea.Msg {
		err := m.service.EditTask(m.ctx, task)
		return mutationDoneMsg{op: "task saved", err: err}
	}
}

func (m Model) deleteTask(taskID int64) tea.Cmd {
	return func() tea.Msg {
		err := m.service.DeleteTask(m.ctx, taskID)
		return mutationDoneMsg{op: "task deleted", err: err}
	}
}

func (m Model) toggleSubtask(subtaskID int64, done bool) tea.Cmd {
	return func() tea.Msg {
		err := m.service.ToggleSubtask(m.ctx, subtaskID, done)
		op := "subtask reopened"
		if done {
			op = "subtask done"
		}
		return mutationDoneMsg{op: op, err: err}
	}
}

func (m Model) inviteMember() tea.Cmd {
	teamID := m.state.User.TeamID
	return func() tea.Msg {
		code, err := m.service.InviteMember(m.ctx, teamID)
		return invitedMsg{code: code, err: err}
	}
}

func (m Model) logout() tea.Cmd {
	return func() tea.Msg {
		if err := m.service.Logout(); err != nil {
			m.log.Warn("clear token", zap.Error(err))
		}
		return loggedOutMsg{}
	}
}

// loading reports whether the UI should refuse new triggers
func (m Model) loading() bool {
	return m.booting || m.busy || m.session.State().Loading
}

func (m *Model) clampCursor() {
	n := m.listLen()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// listLen is the length of the list the open window shows
func (m Model) listLen() int {
	switch m.windows.Active() {
	case window.Team:
		return len(m.state.Members)
	case window.Boards:
		return len(m.state.Boards)
	}
	return 0
}

// View implements tea.Model
func (m Model) View() string {
	var v string
	switch {
	case m.booting:
		v = RenderLoading("Signing in", m.spinner.View())
	case m.route == route.Home:
		v = m.viewHome()
	default:
		v = renderAuth(m.route, m.authForm, m.err, m.busy, m.spinner.View())
	}
	if m.zones != nil {
		return m.zones.Scan(v)
	}
	return v
}

// ActiveWindow returns the open control window
func (m Model) ActiveWindow() window.Window {
	return m.windows.Active()
}

// Route returns the screen on display
func (m Model) Route() route.Route {
	return m.route
}
